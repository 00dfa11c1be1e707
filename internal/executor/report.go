package executor

import (
	"fmt"
	"io"

	"github.com/rig-tools/cli/internal/render"
	"github.com/rig-tools/cli/internal/ui/style"
)

// Failure records one target that did not produce a usable result.
type Failure struct {
	Host   string
	Detail string
}

// AggregateReport is the merged outcome of one endpoint invocation
// across a session. Failures preserve first-seen order, with
// never-connected targets recorded before per-connection failures.
type AggregateReport struct {
	Successes int
	Failures  []Failure
	ExitCode  int
}

func (r *AggregateReport) addFailure(host, detail string) {
	r.Failures = append(r.Failures, Failure{Host: host, Detail: detail})
}

// writeFailureTable writes the failure count and a small table with
// the given first-column label.
func (r *AggregateReport) writeFailureTable(w io.Writer, label string) error {
	if len(r.Failures) == 0 {
		return nil
	}

	heading := fmt.Sprintf("There were %d unsuccessful runs on hosts:", len(r.Failures))
	fmt.Fprintln(w, style.Warning(heading))

	table := render.NewTable(w)
	if err := table.Header([]string{label, "Error"}); err != nil {
		return err
	}
	for _, failure := range r.Failures {
		if err := table.Row([]any{failure.Host, failure.Detail}); err != nil {
			return err
		}
	}
	return table.Flush()
}
