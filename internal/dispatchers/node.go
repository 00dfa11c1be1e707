package dispatchers

import "strings"

// Node is one built command in the tree. Nodes are created by Build
// and never mutated afterwards; rebuilding the tree is the only way to
// change one.
type Node struct {
	name       string
	path       []string
	parent     *Node
	children   map[string]*Node
	childOrder []string
	usage      string
	scopeOwner *Node
	action     *Action
	policy     Policy
}

// Name returns the command token.
func (n *Node) Name() string { return n.name }

// Path returns the full command path from the root, root name first.
func (n *Node) Path() []string {
	return append([]string(nil), n.path...)
}

// IsEndPoint reports whether this node executes an action.
func (n *Node) IsEndPoint() bool { return n.action != nil }

// Action returns the resolved action of an endpoint, nil otherwise.
func (n *Node) Action() *Action { return n.action }

// Policy returns the aggregation policy, nil for multiplexers and for
// plain local endpoints.
func (n *Node) Policy() Policy { return n.policy }

// Child looks up a direct child by name.
func (n *Node) Child(name string) (*Node, bool) {
	child, ok := n.children[name]
	return child, ok
}

// ChildNames returns direct child names in declaration order.
func (n *Node) ChildNames() []string {
	return append([]string(nil), n.childOrder...)
}

// OwnsGrammar reports whether this node carries its own usage text
// rather than inheriting its grammar scope from an ancestor.
func (n *Node) OwnsGrammar() bool { return n.scopeOwner == n }

// ScopeOwner returns the node whose usage text governs this node's
// grammar scope. For a node with its own usage that is the node itself.
func (n *Node) ScopeOwner() *Node { return n.scopeOwner }

// UsageText returns the usage text governing this node, with the
// {cmd} placeholder already expanded.
func (n *Node) UsageText() string {
	if n.scopeOwner == nil {
		return ""
	}
	return n.scopeOwner.usage
}

// GrammarArgv is the argument vector handed to the grammar parser for
// this endpoint: the command path tokens after the program name,
// followed by the invocation's remaining arguments. Usage text names
// the full path, so the parser needs the path tokens re-prepended.
func (n *Node) GrammarArgv(remaining []string) []string {
	argv := make([]string, 0, len(n.path)-1+len(remaining))
	argv = append(argv, n.path[1:]...)
	return append(argv, remaining...)
}

// ScopeCommandNames returns the command tokens the grammar scope may
// have matched on the way to this node: the scope owner's name and the
// child names of every multiplexer between the scope owner and this
// node's parent. Binding strips these from the option map; command
// tokens from untraversed branches of the same scope fall out as
// silently dropped extras instead.
func (n *Node) ScopeCommandNames() []string {
	owner := n.scopeOwner
	if owner == nil {
		return nil
	}

	names := []string{owner.name}
	for ancestor := n.parent; ancestor != nil; ancestor = ancestor.parent {
		names = append(names, ancestor.childOrder...)
		if ancestor == owner {
			break
		}
	}
	return names
}

// PathString joins the full command path with spaces.
func (n *Node) PathString() string {
	return strings.Join(n.path, " ")
}
