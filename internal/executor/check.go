package executor

import (
	"fmt"
	"reflect"

	"github.com/rig-tools/cli/internal/dispatchers"
	"github.com/rig-tools/cli/internal/domain"
	"github.com/rig-tools/cli/internal/grammar"
	"github.com/rig-tools/cli/internal/session"
	"github.com/rig-tools/cli/internal/ui/style"
)

// CheckResult compares each target's action result to an expected
// value, or evaluates a predicate over the parsed options and the
// result. Exactly one of Expect and ExpectFunc must be set. The
// semantic pass/fail is surfaced in the printed report only; the
// process exit code stays 0 when the framework itself completes.
type CheckResult struct {
	Expect     any
	ExpectFunc func(options grammar.Options, result any) bool
}

func (CheckResult) PolicyName() string { return "check-result" }

func (c CheckResult) Validate() error {
	if c.Expect != nil && c.ExpectFunc != nil {
		return fmt.Errorf("%w: Expect and ExpectFunc", dispatchers.ErrMixedPolicyFields)
	}
	if c.Expect == nil && c.ExpectFunc == nil {
		return fmt.Errorf("check-result: an expected value or predicate is required")
	}
	return nil
}

func (c CheckResult) passes(options grammar.Options, result any) bool {
	if c.ExpectFunc != nil {
		return c.ExpectFunc(options, result)
	}
	return reflect.DeepEqual(c.Expect, result)
}

// runCheckResult records pass/fail per target. Success is silent at
// default verbosity; a success count prints at info verbosity.
// Failures keep the raw result for the diagnostic detail.
func (e *Engine) runCheckResult(node *dispatchers.Node, policy CheckResult, sess *session.Session, bound dispatchers.Bound, options grammar.Options, report *AggregateReport) {
	e.recordUnconnected(sess, report)

	for _, conn := range sess.Connections() {
		result, err := e.invoke(node.Action(), conn, bound)
		if err != nil {
			e.recordActionFailure(node, conn.Hostname(), err, report)
			continue
		}

		if policy.passes(options, result) {
			e.logger.Debug("executor: %s passed on %s", node.PathString(), conn.Hostname())
			report.Successes++
			continue
		}

		detail := "failed"
		if e.verbosity >= domain.VerbosityInfo && policy.ExpectFunc == nil {
			detail = fmt.Sprintf("failed (%v != %v)", policy.Expect, result)
		}
		e.logger.Warn("executor: %s failed on %s: expected %v, got %v", node.PathString(), conn.Hostname(), policy.Expect, result)
		report.addFailure(conn.Hostname(), detail)
	}

	if e.verbosity >= domain.VerbosityInfo && report.Successes > 0 {
		fmt.Fprintln(e.out, style.Success(fmt.Sprintf("Successful runs: %d", report.Successes)))
	}

	_ = report.writeFailureTable(e.errOut, "Name")
}
