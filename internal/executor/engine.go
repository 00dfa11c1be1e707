// Package executor runs resolved endpoint commands: locally for plain
// endpoints, fanned out over a session of remote targets for endpoints
// carrying an aggregation policy. The three built-in policies (Lister,
// ShowInstance, CheckResult) live here as well.
package executor

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rig-tools/cli/internal/dispatchers"
	"github.com/rig-tools/cli/internal/domain"
	"github.com/rig-tools/cli/internal/grammar"
	"github.com/rig-tools/cli/internal/session"
	"github.com/rig-tools/cli/internal/ui/style"
	"github.com/rig-tools/cli/internal/usage"
)

const connectFailure = "failed to connect"

// Engine executes resolved endpoints. Fan-out is sequential and
// single-threaded: connections are visited in session order, output
// blocks appear in that same order, and one failing target never
// aborts the rest.
type Engine struct {
	out       io.Writer
	errOut    io.Writer
	logger    domain.Logger
	verbosity domain.Verbosity
}

// New creates an engine writing results to out and failure reports to
// errOut.
func New(out, errOut io.Writer, logger domain.Logger, verbosity domain.Verbosity) *Engine {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Engine{out: out, errOut: errOut, logger: logger, verbosity: verbosity}
}

// Run executes a resolution and returns the process exit code.
func (e *Engine) Run(res dispatchers.Resolution, sess *session.Session) int {
	report := e.RunReport(res, sess)
	return report.ExitCode
}

// RunReport executes a resolution and returns the full aggregate
// report. Halted resolutions (help output, unknown command) pass their
// exit code through without executing anything.
func (e *Engine) RunReport(res dispatchers.Resolution, sess *session.Session) AggregateReport {
	if res.Halt {
		return AggregateReport{ExitCode: res.ExitCode}
	}

	node := res.Node
	if node == nil || !node.IsEndPoint() {
		fmt.Fprintln(e.errOut, "rig: internal error: resolution has no endpoint")
		return AggregateReport{ExitCode: 1}
	}

	options, err := grammar.Parse(node.UsageText(), node.GrammarArgv(res.Argv))
	if err != nil {
		e.logger.Debug("executor: %s: grammar rejected arguments: %v", node.PathString(), err)
		uerr := usage.InvalidGrammar(strings.Join(node.Path()[1:], " "))
		fmt.Fprintln(e.errOut, uerr.Error())
		fmt.Fprintln(e.errOut, strings.TrimRight(node.UsageText(), "\n"))
		return AggregateReport{ExitCode: uerr.GetExitCode()}
	}

	dispatchers.StripCommandTokens(options, node.ScopeCommandNames())

	bound, err := dispatchers.Bind(options, node.Action(), node.PathString(), e.logger)
	if err != nil {
		fmt.Fprintln(e.errOut, err.Error())
		return AggregateReport{ExitCode: usage.ExitCodeFor(err)}
	}

	if node.Policy() == nil {
		return e.runPlain(node, bound)
	}

	if sess == nil {
		sess = session.New(nil, nil)
	}

	report := AggregateReport{}
	switch policy := node.Policy().(type) {
	case Lister:
		e.runLister(node, policy, sess, bound, &report)
	case ShowInstance:
		e.runShowInstance(node, policy, sess, bound, &report)
	case CheckResult:
		e.runCheckResult(node, policy, sess, bound, options, &report)
	default:
		fmt.Fprintf(e.errOut, "rig: internal error: unknown aggregation policy %q\n", node.Policy().PolicyName())
		report.ExitCode = 1
	}
	return report
}

// runPlain executes a local endpoint exactly once with no connection.
// An int result is the exit code.
func (e *Engine) runPlain(node *dispatchers.Node, bound dispatchers.Bound) AggregateReport {
	result, err := e.invoke(node.Action(), nil, bound)
	if err != nil {
		var uerr *usage.Error
		if errors.As(err, &uerr) {
			fmt.Fprintln(e.errOut, uerr.Error())
		} else {
			fmt.Fprintf(e.errOut, "rig: %v\n", err)
		}
		return AggregateReport{Failures: []Failure{{Detail: err.Error()}}, ExitCode: usage.ExitCodeFor(err)}
	}

	report := AggregateReport{Successes: 1}
	if code, ok := result.(int); ok {
		report.ExitCode = code
	}
	return report
}

// invoke calls the action for one connection, converting a panic into
// an error so a misbehaving action degrades to a per-target failure.
func (e *Engine) invoke(action *dispatchers.Action, conn session.Connection, bound dispatchers.Bound) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("action %s panicked: %v", action.Name, r)
		}
	}()
	return action.Func(conn, bound.Positional, bound.Extra)
}

// recordUnconnected appends the session's never-connected targets as
// failures, in attempt order. No action ran for them.
func (e *Engine) recordUnconnected(sess *session.Session, report *AggregateReport) {
	for _, target := range sess.Unconnected() {
		e.logger.Warn("executor: %s: %s: %v", connectFailure, target.Hostname, target.Err)
		report.addFailure(target.Hostname, connectFailure)
	}
}

// recordActionFailure captures an action error for one connection.
// Full detail goes to the log; the report carries the message.
func (e *Engine) recordActionFailure(node *dispatchers.Node, host string, err error, report *AggregateReport) {
	if e.verbosity >= domain.VerbosityDebug {
		e.logger.Error("executor: %s failed on %s: %+v", node.PathString(), host, err)
	} else {
		e.logger.Error("executor: %s failed on %s: %v", node.PathString(), host, err)
	}
	report.addFailure(host, err.Error())
}

// banner frames one host's output block when the session spans more
// than one target.
func (e *Engine) banner(hostname string) {
	line := strings.Repeat("=", 79)
	fmt.Fprintln(e.out, line)
	fmt.Fprintln(e.out, style.Header(fmt.Sprintf("Host: %s", hostname)))
	fmt.Fprintln(e.out, line)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
func (nopLogger) Close() error         { return nil }
