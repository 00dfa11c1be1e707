package executor

import (
	"fmt"
	"iter"

	"github.com/rig-tools/cli/internal/dispatchers"
	"github.com/rig-tools/cli/internal/render"
	"github.com/rig-tools/cli/internal/session"
)

// Row is one line of tabular output.
type Row []any

// Lister aggregates per-target rows into a single table. With no
// declared columns, the first row an action produces becomes the
// header.
type Lister struct {
	Columns []string
}

func (Lister) PolicyName() string { return "lister" }

func (l Lister) Validate() error {
	for i, column := range l.Columns {
		if column == "" {
			return fmt.Errorf("lister: column %d is empty", i)
		}
	}
	return nil
}

// runLister concatenates rows from every connection, in session order,
// into one table with one header. Per-target failures are recorded and
// reported after the listing.
func (e *Engine) runLister(node *dispatchers.Node, policy Lister, sess *session.Session, bound dispatchers.Bound, report *AggregateReport) {
	e.recordUnconnected(sess, report)

	table := render.NewTable(e.out)
	if err := table.Header(policy.Columns); err != nil {
		fmt.Fprintf(e.errOut, "rig: %v\n", err)
		report.ExitCode = 1
		return
	}

	for _, conn := range sess.Connections() {
		result, err := e.invoke(node.Action(), conn, bound)
		if err != nil {
			e.recordActionFailure(node, conn.Hostname(), err, report)
			continue
		}

		err = forEachRow(result, func(row Row) error {
			if !table.WroteHeader() {
				return table.Header(headerOf(row))
			}
			return table.Row(row)
		})
		if err != nil {
			e.recordActionFailure(node, conn.Hostname(), err, report)
			continue
		}

		report.Successes++
	}

	if err := table.Flush(); err != nil {
		fmt.Fprintf(e.errOut, "rig: %v\n", err)
		report.ExitCode = 1
	}

	_ = report.writeFailureTable(e.errOut, "Host")
}

// forEachRow walks an action's row production. Actions may return an
// eager slice or a lazy sequence.
func forEachRow(result any, fn func(Row) error) error {
	switch rows := result.(type) {
	case nil:
		return nil
	case []Row:
		for _, row := range rows {
			if err := fn(row); err != nil {
				return err
			}
		}
	case [][]any:
		for _, row := range rows {
			if err := fn(row); err != nil {
				return err
			}
		}
	case iter.Seq[Row]:
		for row := range rows {
			if err := fn(row); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("lister action must return rows, got %T", result)
	}
	return nil
}

func headerOf(row Row) []string {
	columns := make([]string, len(row))
	for i, value := range row {
		columns[i] = render.FormatValue(value)
	}
	return columns
}
