package dispatchers

import (
	"regexp"
	"sort"
	"strings"

	"github.com/rig-tools/cli/internal/domain"
	"github.com/rig-tools/cli/internal/grammar"
	"github.com/rig-tools/cli/internal/usage"
)

// Grammar token shapes. A parsed option map key must match one of
// these to be bindable; anything else is a malformed grammar.
var (
	reBracketArgument = regexp.MustCompile(`^<([^>]+)>$`)
	reUpperArgument   = regexp.MustCompile(`^[A-Z]+(?:[_-][A-Z]+)*$`)
	reShortOption     = regexp.MustCompile(`^-[a-zA-Z]$`)
	reLongOption      = regexp.MustCompile(`^--[a-zA-Z][a-zA-Z0-9_-]*$`)
)

// Bound is the result of binding parsed options to an action's formal
// parameters: one positional value per parameter, in declaration
// order, plus surplus options keyed by normalized name when the action
// accepts them.
type Bound struct {
	Positional []any
	Extra      map[string]any
}

// Normalize lower-cases an identifier and replaces every non-letter
// byte with an underscore. Normalization is idempotent.
func Normalize(identifier string) string {
	var b strings.Builder
	b.Grow(len(identifier))
	for _, r := range strings.ToLower(identifier) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// identifierFor classifies a raw grammar token by shape and returns
// the identifier normalization applies to. Angle-bracket positionals
// contribute their inner name; every other recognized shape
// contributes the literal token.
func identifierFor(token string) (string, bool) {
	if m := reBracketArgument.FindStringSubmatch(token); m != nil {
		return m[1], true
	}
	if reUpperArgument.MatchString(token) ||
		reShortOption.MatchString(token) ||
		reLongOption.MatchString(token) ||
		commandNameRe.MatchString(token) {
		return token, true
	}
	return "", false
}

// Bind converts a parsed option map into arguments for the named
// command's action. Every formal parameter must be satisfied by some
// normalized option; two raw tokens normalizing to the same identifier
// are ambiguous; a token matching no recognized shape is a grammar
// authoring error. Options with no matching parameter are dropped
// silently (with a debug note) unless the action accepts extras. The
// connection handle is never bound here.
func Bind(options grammar.Options, action *Action, command string, logger domain.Logger) (Bound, error) {
	if logger == nil {
		logger = nopLogger{}
	}

	// Deterministic iteration so ambiguity reports are stable.
	tokens := make([]string, 0, len(options))
	for token := range options {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)

	values := make(map[string]any, len(options))
	firstRaw := make(map[string]string, len(options))

	for _, token := range tokens {
		identifier, ok := identifierFor(token)
		if !ok {
			return Bound{}, usage.UnrecognizedOption(token)
		}

		normalized := Normalize(identifier)
		if previous, seen := firstRaw[normalized]; seen {
			return Bound{}, usage.AmbiguousOption(previous, token, normalized)
		}
		firstRaw[normalized] = token
		values[normalized] = options[token]
	}

	declared := make(map[string]bool, len(action.Params))
	bound := Bound{Positional: make([]any, 0, len(action.Params))}

	for _, param := range action.Params {
		declared[param] = true
		value, ok := values[param]
		if !ok {
			return Bound{}, usage.UnboundParameter(command, param)
		}
		bound.Positional = append(bound.Positional, value)
	}

	for _, token := range tokens {
		normalized := Normalize(mustIdentifier(token))
		if declared[normalized] {
			continue
		}
		if action.AcceptsExtra {
			if bound.Extra == nil {
				bound.Extra = make(map[string]any)
			}
			bound.Extra[normalized] = values[normalized]
		} else {
			logger.Debug("bind: %s: dropping option %q (no parameter %q)", command, token, normalized)
		}
	}

	return bound, nil
}

func mustIdentifier(token string) string {
	identifier, _ := identifierFor(token)
	return identifier
}

// StripCommandTokens removes grammar-scope command tokens from a
// parsed option map before binding. The resolver knows which command
// names its walk may have matched; those carry routing information
// only and must not reach the action.
func StripCommandTokens(options grammar.Options, names []string) {
	for _, name := range names {
		delete(options, name)
	}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
func (nopLogger) Close() error         { return nil }
