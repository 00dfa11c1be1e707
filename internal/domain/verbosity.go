package domain

// Verbosity controls how much per-host progress the execution engine
// prints. It gates progress and summary output only; failures are
// always recorded and reported regardless of level.
type Verbosity int

const (
	// VerbosityDefault prints result tables and failure summaries only.
	VerbosityDefault Verbosity = iota

	// VerbosityInfo additionally prints success counts and expected-vs-
	// actual detail in failure messages.
	VerbosityInfo

	// VerbosityDebug additionally surfaces full diagnostic detail of
	// per-connection failures in the log.
	VerbosityDebug
)

// Application is the assembled process context: every capability a
// command action may need, wired once at startup.
type Application struct {
	Config    ConfigProvider
	Logger    Logger
	Output    OutputWriter
	Inventory HostInventory
	Verbosity Verbosity
}
