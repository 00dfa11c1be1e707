// Package app wires the process-wide application context.
package app

import (
	"io"

	"github.com/google/uuid"

	"github.com/rig-tools/cli/internal/config"
	"github.com/rig-tools/cli/internal/domain"
	"github.com/rig-tools/cli/internal/inventory"
	"github.com/rig-tools/cli/internal/log"
	"github.com/rig-tools/cli/internal/paths"
	"github.com/rig-tools/cli/internal/ui"
	"github.com/rig-tools/cli/internal/ui/style"
)

// Options configures the application factory.
type Options struct {
	// Pager options
	PagerDisabled bool
	PagerOverride string

	// Log options
	LogEnabled bool

	// Style options
	StyleEnabled bool

	// Verbosity of engine progress output.
	Verbosity domain.Verbosity

	// Out receives command output; defaults to stdout.
	Out io.Writer
}

// DefaultOptions returns options seeded from the config file.
func DefaultOptions() Options {
	logEnabled, _ := config.Get("enable_log")
	color, _ := config.Get("color")
	verbosity, _ := config.Get("verbosity")

	return Options{
		LogEnabled:   logEnabled == "true",
		StyleEnabled: color != "never",
		Verbosity:    parseVerbosity(verbosity),
	}
}

// New creates an Application with all dependencies wired up. Each
// invocation gets a run id so interleaved log lines from concurrent
// rig processes stay attributable.
func New(opts Options) (*domain.Application, error) {
	var logger domain.Logger
	if opts.LogEnabled {
		l, err := log.New(paths.LogFilePath(), log.LevelDebug)
		if err != nil {
			// A broken log path degrades to silence, never to a failed run.
			logger = log.NopLogger{}
		} else {
			logger = l
		}
	} else {
		logger = log.NopLogger{}
	}
	logger.Debug("app: run %s starting", uuid.NewString())

	store, err := inventory.New(paths.InventoryPath())
	if err != nil {
		_ = logger.Close()
		return nil, err
	}

	style.Init(opts.StyleEnabled)

	var writerOpts []ui.WriterOption
	if opts.PagerDisabled {
		writerOpts = append(writerOpts, ui.WithPagerDisabled())
	}
	if opts.PagerOverride != "" {
		writerOpts = append(writerOpts, ui.WithPagerOverride(opts.PagerOverride))
	}
	writerOpts = append(writerOpts, ui.WithConfigGetter(config.Get))

	writer := ui.NewWriter(writerOpts...)
	if opts.Out != nil {
		writer = ui.NewWriterTo(opts.Out, writerOpts...)
	}

	return &domain.Application{
		Config:    config.NewProvider(),
		Logger:    logger,
		Output:    writer,
		Inventory: store,
		Verbosity: opts.Verbosity,
	}, nil
}

// Close releases application resources.
func Close(app *domain.Application) error {
	if app.Logger != nil {
		app.Logger.Debug("app: run finished")
		_ = app.Logger.Close()
	}
	if app.Inventory != nil {
		return app.Inventory.Close()
	}
	return nil
}

func parseVerbosity(value string) domain.Verbosity {
	switch value {
	case "1":
		return domain.VerbosityInfo
	case "2":
		return domain.VerbosityDebug
	default:
		return domain.VerbosityDefault
	}
}
