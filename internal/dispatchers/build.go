package dispatchers

import (
	"errors"
	"regexp"
	"strings"
)

// commandNameRe is the command-name token grammar: lowercase letters,
// digits, dash-separated.
var commandNameRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidCommandName reports whether name matches the command-name
// token grammar.
func ValidCommandName(name string) bool {
	return commandNameRe.MatchString(name)
}

// Build validates a descriptor tree and freezes it into an immutable
// Node tree rooted at name. Symbolic action references are resolved
// eagerly against registry. Build is deterministic and idempotent for
// the same descriptor value: a rejected descriptor fails the same way
// every time, and an accepted one yields an equivalent tree.
func Build(name string, descriptor Descriptor, registry *Registry) (*Node, error) {
	if !ValidCommandName(name) {
		return nil, &DescriptorError{Command: name, Reason: ReasonInvalidChildName}
	}
	return build(name, descriptor, nil, registry)
}

func build(name string, descriptor Descriptor, parent *Node, registry *Registry) (*Node, error) {
	node := &Node{
		name:   name,
		parent: parent,
	}
	if parent == nil {
		node.path = []string{name}
	} else {
		node.path = append(append([]string(nil), parent.path...), name)
	}

	usage := descriptor.usageText()
	if usage != "" {
		node.usage = expandUsage(usage, node.path)
		node.scopeOwner = node
	} else if parent != nil {
		node.scopeOwner = parent.scopeOwner
	}
	if node.scopeOwner == nil {
		return nil, &DescriptorError{Command: node.PathString(), Reason: ReasonMissingUsage}
	}

	switch d := descriptor.(type) {
	case Multiplexer:
		if len(d.Children) == 0 {
			return nil, &DescriptorError{Command: node.PathString(), Reason: ReasonNoChildren}
		}

		node.children = make(map[string]*Node, len(d.Children))
		for _, child := range d.Children {
			if !ValidCommandName(child.Name) {
				return nil, &DescriptorError{
					Command: node.PathString(),
					Reason:  ReasonInvalidChildName,
					Detail:  child.Name,
				}
			}
			if _, exists := node.children[child.Name]; exists {
				return nil, &DescriptorError{
					Command: node.PathString(),
					Reason:  ReasonDuplicateChild,
					Detail:  child.Name,
				}
			}

			built, err := build(child.Name, child.Command, node, registry)
			if err != nil {
				return nil, err
			}
			node.children[child.Name] = built
			node.childOrder = append(node.childOrder, child.Name)
		}

	case EndPoint:
		action, err := resolveAction(node.PathString(), d.Action, registry)
		if err != nil {
			return nil, err
		}
		node.action = action

		if d.Policy != nil {
			if err := d.Policy.Validate(); err != nil {
				reason := ReasonInvalidPolicy
				if errors.Is(err, ErrMixedPolicyFields) {
					reason = ReasonMixedPolicy
				}
				return nil, &DescriptorError{
					Command: node.PathString(),
					Reason:  reason,
					Detail:  err.Error(),
				}
			}
			node.policy = d.Policy
		}

	default:
		return nil, &DescriptorError{
			Command: node.PathString(),
			Reason:  ReasonMissingAction,
			Detail:  "unknown descriptor kind",
		}
	}

	return node, nil
}

func resolveAction(command string, ref any, registry *Registry) (*Action, error) {
	switch action := ref.(type) {
	case nil:
		return nil, &DescriptorError{Command: command, Reason: ReasonMissingAction}

	case *Action:
		if action.Func == nil {
			return nil, &DescriptorError{Command: command, Reason: ReasonNotCallable, Detail: action.Name}
		}
		return action, nil

	case string:
		if registry == nil {
			return nil, &DescriptorError{Command: command, Reason: ReasonMissingAction, Detail: "no registry for symbolic reference " + action}
		}
		resolved, err := registry.Lookup(action)
		if err != nil {
			return nil, err
		}
		if resolved.Func == nil {
			return nil, &DescriptorError{Command: command, Reason: ReasonNotCallable, Detail: action}
		}
		return resolved, nil

	default:
		return nil, &DescriptorError{Command: command, Reason: ReasonNotCallable}
	}
}

// expandUsage substitutes the {cmd} placeholder with the node's full
// command path.
func expandUsage(usage string, path []string) string {
	return strings.ReplaceAll(usage, "{cmd}", strings.Join(path, " "))
}
