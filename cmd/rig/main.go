package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/rig-tools/cli/internal/app"
	"github.com/rig-tools/cli/internal/cli"
	"github.com/rig-tools/cli/internal/dispatchers"
	"github.com/rig-tools/cli/internal/domain"
	"github.com/rig-tools/cli/internal/executor"
	"github.com/rig-tools/cli/internal/session"
	"github.com/rig-tools/cli/internal/transport"
	"github.com/rig-tools/cli/internal/ui/style"
	"github.com/rig-tools/cli/internal/usage"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type globalFlags struct {
	hosts     []string
	transport string
	fixture   string
	verbose   int
	debug     bool
	noColor   bool
	noPager   bool
	pager     string
	version   bool
	help      bool
}

// newFlagSet declares the global flag set. Interspersed parsing is off
// so flags after the first command token reach the command's own usage
// grammar untouched.
func newFlagSet(flags *globalFlags, stderr io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet("rig", pflag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.SetOutput(stderr)
	fs.Usage = func() {}

	fs.StringArrayVar(&flags.hosts, "host", nil, "Target hostname (repeatable); overrides the inventory")
	fs.StringVar(&flags.transport, "transport", "", "Transport used to reach targets")
	fs.StringVar(&flags.fixture, "fixture", "", "Object-model fixture file for the fixture transport")
	fs.CountVarP(&flags.verbose, "verbose", "v", "Increase output verbosity (repeatable)")
	fs.BoolVar(&flags.debug, "debug", false, "Maximum verbosity and diagnostic logging")
	fs.BoolVar(&flags.noColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&flags.noPager, "no-pager", false, "Never pipe output through a pager")
	fs.StringVar(&flags.pager, "pager", "", "Pager command for long output")
	fs.BoolVar(&flags.version, "version", false, "Show version and exit")
	fs.BoolVarP(&flags.help, "help", "h", false, "Show help")

	return fs
}

func run(argv []string, stdout, stderr io.Writer) int {
	var flags globalFlags
	fs := newFlagSet(&flags, stderr)
	if err := fs.Parse(argv); err != nil {
		fmt.Fprintln(stderr, "See 'rig --help'.")
		return 2
	}
	args := fs.Args()

	if flags.version {
		fmt.Fprintf(stdout, "rig version %s\n", cli.Version)
		return 0
	}

	opts := app.DefaultOptions()
	if f, ok := stdout.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		opts.StyleEnabled = false
	}
	if flags.noColor {
		opts.StyleEnabled = false
	}
	if flags.noPager {
		opts.PagerDisabled = true
	}
	opts.PagerOverride = flags.pager
	opts.Verbosity = max(opts.Verbosity, verbosityFromFlags(flags))
	opts.Out = stdout

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintln(stderr, style.Error(fmt.Sprintf("rig: %v", err)))
		return 1
	}
	defer func() { _ = app.Close(application) }()

	root, err := cli.Build(application)
	if err != nil {
		fmt.Fprintln(stderr, style.Error(fmt.Sprintf("rig: %v", err)))
		return 1
	}

	if flags.help {
		args = append([]string{"--help"}, args...)
	}

	res, err := dispatchers.Dispatch(root, args, stdout, stderr)
	if err != nil {
		fmt.Fprintln(stderr, style.Error(fmt.Sprintf("rig: %v", err)))
		return 1
	}

	var sess *session.Session
	if !res.Halt && res.Node != nil && res.Node.Policy() != nil {
		sess, err = buildSession(flags, application)
		if err != nil {
			fmt.Fprintln(stderr, err.Error())
			return usage.ExitCodeFor(err)
		}
	}

	engine := executor.New(stdout, stderr, application.Logger, opts.Verbosity)
	return engine.Run(res, sess)
}

// buildSession resolves the target list and dials every target. Flags
// win over config; an explicit --host list bypasses the inventory.
func buildSession(flags globalFlags, application *domain.Application) (*session.Session, error) {
	targets := flags.hosts
	if len(targets) == 0 {
		stored, err := application.Inventory.List()
		if err != nil {
			return nil, fmt.Errorf("rig: %w", err)
		}
		for _, target := range stored {
			targets = append(targets, target.Hostname)
		}
	}
	if len(targets) == 0 {
		return nil, usage.NoTargets()
	}

	name := flags.transport
	if name == "" {
		name, _ = application.Config.Get("transport")
	}
	fixturePath := flags.fixture
	if fixturePath == "" {
		fixturePath, _ = application.Config.Get("fixture_path")
	}

	dialer, err := transport.New(name, fixturePath)
	if err != nil {
		return nil, usage.TransportUnavailable(name, err)
	}

	return transport.BuildSession(dialer, targets, application.Logger), nil
}

func verbosityFromFlags(flags globalFlags) domain.Verbosity {
	if flags.debug || flags.verbose >= 2 {
		return domain.VerbosityDebug
	}
	if flags.verbose == 1 {
		return domain.VerbosityInfo
	}
	return domain.VerbosityDefault
}
