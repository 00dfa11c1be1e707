// Package grammar parses usage-string grammars into flat option maps.
//
// It wraps the docopt parser: a command's usage text is the grammar,
// and the argument vector is matched against it. Help handling is
// disabled here because the dispatcher intercepts --help before any
// grammar parse.
package grammar

import (
	"github.com/docopt/docopt-go"
)

// Options is the flat option map produced by a grammar parse. Keys are
// the raw grammar tokens (`<name>`, `NAME`, `-x`, `--long`, or a bare
// command name); values are strings, booleans, counts, or string lists.
type Options map[string]any

// Parse matches argv against the usage grammar and returns the
// resulting option map. The returned error is a user-input error: the
// arguments did not fit the grammar.
func Parse(usageText string, argv []string) (Options, error) {
	parser := &docopt.Parser{
		HelpHandler:   docopt.NoHelpHandler,
		SkipHelpFlags: true,
	}

	opts, err := parser.ParseArgs(usageText, argv, "")
	if err != nil {
		return nil, err
	}

	return Options(opts), nil
}

// Bool returns the option as a boolean; absent or non-boolean values
// return false.
func (o Options) Bool(key string) bool {
	v, ok := o[key]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// String returns the option as a string; absent, nil, or non-string
// values return "".
func (o Options) String(key string) string {
	v, ok := o[key]
	if !ok || v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Strings returns the option as a string list; absent or non-list
// values return nil.
func (o Options) Strings(key string) []string {
	v, ok := o[key]
	if !ok {
		return nil
	}
	list, _ := v.([]string)
	return list
}
