package usage

import (
	"fmt"
	"strings"
)

// UnknownCommand is returned when a subcommand name cannot be resolved.
func UnknownCommand(command string, suggestions ...string) *Error {
	message := fmt.Sprintf("rig: '%s' is not a rig command. See 'rig --help'.", command)
	if len(suggestions) > 0 {
		message += fmt.Sprintf("\n\nDid you mean: %s?", strings.Join(suggestions, ", "))
	}
	return &Error{
		Kind:    ErrUnknownCommand,
		Message: message,
	}
}

// InvalidFlag is returned when a flag is not valid in the current context.
func InvalidFlag(flag string) *Error {
	return &Error{
		Kind:    ErrInvalidFlag,
		Message: fmt.Sprintf("rig: invalid flag '%s'", flag),
	}
}

// MissingArgument is returned when a required argument is not provided.
func MissingArgument(arg string) *Error {
	return &Error{
		Kind:    ErrMissingArgument,
		Message: fmt.Sprintf("rig: missing required argument '%s'", arg),
	}
}

// UnboundParameter is returned when a required action parameter has no
// corresponding option in the command's usage grammar.
func UnboundParameter(command, parameter string) *Error {
	return &Error{
		Kind: ErrUnboundParameter,
		Message: fmt.Sprintf(
			"rig: command '%s' expects option '%s', which is not covered by its usage grammar",
			command, parameter),
	}
}

// AmbiguousOption is returned when two raw grammar tokens normalize to
// the same parameter identifier.
func AmbiguousOption(first, second, normalized string) *Error {
	return &Error{
		Kind: ErrAmbiguousOption,
		Message: fmt.Sprintf(
			"rig: option clash for '%s' and '%s', which both translate to '%s'",
			first, second, normalized),
	}
}

// UnrecognizedOption is returned when a raw grammar token matches no
// recognized option shape.
func UnrecognizedOption(token string) *Error {
	return &Error{
		Kind:    ErrUnrecognizedOption,
		Message: fmt.Sprintf("rig: failed to convert option '%s' to a parameter name", token),
	}
}

// InvalidGrammar is returned when the argument vector is rejected by a
// command's usage grammar.
func InvalidGrammar(command string) *Error {
	return &Error{
		Kind:    ErrInvalidGrammar,
		Message: fmt.Sprintf("rig: invalid arguments. See 'rig help %s'.", command),
	}
}

// NoTargets is returned when a session command runs with no hosts
// configured anywhere.
func NoTargets() *Error {
	return &Error{
		Kind:    ErrNoTargets,
		Message: "rig: no target hosts. Use --host or 'rig host add <hostname>'.",
	}
}

// TransportUnavailable is returned when the configured transport cannot
// be constructed.
func TransportUnavailable(name string, err error) *Error {
	return &Error{
		Kind:    ErrTransportUnavailable,
		Message: fmt.Sprintf("rig: transport '%s' unavailable: %v", name, err),
	}
}

// InvalidConfigKey is returned for unknown configuration keys.
func InvalidConfigKey(key string) *Error {
	return &Error{
		Kind:    ErrInvalidConfigKey,
		Message: fmt.Sprintf("rig: unknown configuration key '%s'", key),
	}
}
