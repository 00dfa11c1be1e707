// Package completions generates shell completion scripts from the
// built command tree.
package completions

import (
	"fmt"
	"strings"

	"github.com/rig-tools/cli/internal/dispatchers"
)

// commandWords returns, for every multiplexer in the tree, the command
// path relative to the root paired with its child names. The root
// appears with an empty path.
func commandWords(root *dispatchers.Node) [][2]string {
	var entries [][2]string

	var walk func(node *dispatchers.Node, path string)
	walk = func(node *dispatchers.Node, path string) {
		children := node.ChildNames()
		if len(children) == 0 {
			return
		}
		entries = append(entries, [2]string{path, strings.Join(children, " ")})
		for _, name := range children {
			child, _ := node.Child(name)
			childPath := name
			if path != "" {
				childPath = path + " " + name
			}
			walk(child, childPath)
		}
	}
	walk(root, "")

	return entries
}

// GenerateBash renders a bash completion script for the tree.
func GenerateBash(root *dispatchers.Node) string {
	binary := root.Name()
	var b strings.Builder

	fmt.Fprintf(&b, "# %s bash completion script\n", binary)
	fmt.Fprintf(&b, "# Generated by '%s completions bash'.\n\n", binary)
	fmt.Fprintf(&b, "_%s_completions() {\n", binary)
	b.WriteString("    local cur path opts i\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    path=\"\"\n")
	b.WriteString("    for ((i=1; i<COMP_CWORD; i++)); do\n")
	b.WriteString("        path=\"$path ${COMP_WORDS[i]}\"\n")
	b.WriteString("    done\n")
	b.WriteString("    path=\"${path# }\"\n\n")
	b.WriteString("    case \"$path\" in\n")
	for _, entry := range commandWords(root) {
		fmt.Fprintf(&b, "        %q) opts=%q ;;\n", entry[0], entry[1])
	}
	b.WriteString("        *) opts=\"\" ;;\n")
	b.WriteString("    esac\n\n")
	b.WriteString("    COMPREPLY=( $(compgen -W \"$opts\" -- \"$cur\") )\n")
	b.WriteString("}\n\n")
	fmt.Fprintf(&b, "complete -F _%s_completions %s\n", binary, binary)

	return b.String()
}

// GenerateZsh renders a zsh completion script for the tree.
func GenerateZsh(root *dispatchers.Node) string {
	binary := root.Name()
	var b strings.Builder

	fmt.Fprintf(&b, "#compdef %s\n", binary)
	fmt.Fprintf(&b, "# %s zsh completion script\n", binary)
	fmt.Fprintf(&b, "# Generated by '%s completions zsh'.\n\n", binary)
	fmt.Fprintf(&b, "_%s() {\n", binary)
	b.WriteString("    local -a opts\n")
	b.WriteString("    local path=\"${(j: :)words[2,CURRENT-1]}\"\n\n")
	b.WriteString("    case \"$path\" in\n")
	for _, entry := range commandWords(root) {
		fmt.Fprintf(&b, "        %q) opts=(%s) ;;\n", entry[0], entry[1])
	}
	b.WriteString("        *) opts=() ;;\n")
	b.WriteString("    esac\n\n")
	b.WriteString("    compadd -a opts\n")
	b.WriteString("}\n\n")
	fmt.Fprintf(&b, "_%s \"$@\"\n", binary)

	return b.String()
}

// Generate renders the script for the named shell.
func Generate(root *dispatchers.Node, shell string) (string, error) {
	switch shell {
	case "bash":
		return GenerateBash(root), nil
	case "zsh":
		return GenerateZsh(root), nil
	default:
		return "", fmt.Errorf("unsupported shell %q (bash and zsh are supported)", shell)
	}
}
