package domain

import (
	"io"
)

// Logger defines logging operations.
type Logger interface {
	// Debug logs a debug message.
	Debug(format string, args ...any)

	// Info logs an info message.
	Info(format string, args ...any)

	// Warn logs a warning message.
	Warn(format string, args ...any)

	// Error logs an error message.
	Error(format string, args ...any)

	// Close closes the logger.
	Close() error
}

// OutputWriter defines output operations.
type OutputWriter interface {
	io.Writer

	// Printf formats and prints to the output.
	Printf(format string, args ...any) (int, error)

	// Println prints a line to the output.
	Println(args ...any) (int, error)

	// Pager displays content through a pager if appropriate.
	Pager(content string)
}

// ConfigProvider defines operations for reading and writing configuration.
type ConfigProvider interface {
	// Get returns the value for a configuration key.
	Get(key string) (string, bool)

	// GetAll returns all configuration values.
	GetAll() (map[string]string, error)

	// Set sets a configuration value.
	Set(key, value string) error

	// Unset removes a configuration value.
	Unset(key string) error
}

// Target is one administrative target stored in the host inventory.
type Target struct {
	ID       string
	Hostname string
	Note     string
	Created  string
}

// HostInventory defines operations for the persistent target inventory.
type HostInventory interface {
	// Add stores a new target hostname. Fails if the hostname exists.
	Add(hostname, note string) (Target, error)

	// Remove deletes a target by hostname. Returns the number removed.
	Remove(hostname string) (int64, error)

	// List returns all targets ordered by creation time.
	List() ([]Target, error)

	// Close closes the inventory store.
	Close() error
}
