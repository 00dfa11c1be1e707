package dispatchers

import (
	"fmt"
	"io"
	"strings"

	"github.com/rig-tools/cli/internal/ui/style"
)

const suggestionCount = 3

// Resolution is the outcome of walking the command tree. When Halt is
// set the walk already produced terminal output (help text or an
// unknown-command report) and the process should exit with ExitCode
// without executing anything. Otherwise Node is the endpoint to run
// and Argv holds its remaining raw arguments.
type Resolution struct {
	Node     *Node
	Argv     []string
	Halt     bool
	ExitCode int
}

// Dispatch walks the tree from root, consuming one argument token per
// multiplexer level. A --help or -h token is intercepted before child
// lookup and prints the current level's usage to stdout. An unknown
// child name prints the level's usage to stderr with a did-you-mean
// line and resolves to exit code 1 rather than an error. The walk
// stops at the first endpoint reached; the tokens left over are that
// endpoint's grammar input.
func Dispatch(root *Node, argv []string, stdout, stderr io.Writer) (Resolution, error) {
	if root == nil {
		return Resolution{}, fmt.Errorf("dispatch: nil root")
	}

	current := root
	remaining := argv

	for !current.IsEndPoint() {
		if len(remaining) > 0 && isHelpToken(remaining[0]) {
			writeUsage(stdout, current)
			return Resolution{Node: current, Halt: true, ExitCode: 0}, nil
		}

		if len(remaining) == 0 {
			writeUsage(stderr, current)
			return Resolution{Node: current, Halt: true, ExitCode: 1}, nil
		}

		token := remaining[0]
		child, ok := current.Child(token)
		if !ok {
			writeUnknown(stderr, current, token)
			return Resolution{Node: current, Halt: true, ExitCode: 1}, nil
		}

		current = child
		remaining = remaining[1:]
	}

	if len(remaining) > 0 && isHelpToken(remaining[0]) {
		writeUsage(stdout, current)
		return Resolution{Node: current, Halt: true, ExitCode: 0}, nil
	}

	return Resolution{Node: current, Argv: remaining}, nil
}

// ResolvePath walks the tree by exact names with no token
// interpretation. Used by help and completions.
func ResolvePath(root *Node, path []string) (*Node, bool) {
	current := root
	for _, name := range path {
		child, ok := current.Child(name)
		if !ok {
			return nil, false
		}
		current = child
	}
	return current, true
}

func isHelpToken(token string) bool {
	return token == "--help" || token == "-h"
}

func writeUsage(w io.Writer, node *Node) {
	fmt.Fprintln(w, strings.TrimRight(node.UsageText(), "\n"))
}

func writeUnknown(w io.Writer, node *Node, token string) {
	path := strings.Join(append(node.Path(), token), " ")
	fmt.Fprintln(w, style.Error(fmt.Sprintf("unknown command %q", path)))

	if suggestions := SimilarChildren(token, node, suggestionCount); len(suggestions) > 0 {
		fmt.Fprintln(w, style.Info(fmt.Sprintf("did you mean: %s?", strings.Join(suggestions, ", "))))
	}

	fmt.Fprintln(w)
	writeUsage(w, node)
}
