package config

import "strings"

// keyLine splits a content line into its key and the remainder after
// '='. Blank lines, comment lines, and lines without '=' report false.
func keyLine(line string) (key, rest string, ok bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", "", false
	}

	key, rest, found := strings.Cut(trimmed, "=")
	if !found {
		return "", "", false
	}
	return strings.TrimSpace(key), rest, true
}

// Set rewrites the line holding key, or appends one when the key is
// absent. An inline comment after the old value survives the rewrite.
// Reports whether an existing line was updated.
func Set(lines []string, key, value string) ([]string, bool) {
	for i, line := range lines {
		name, rest, ok := keyLine(line)
		if !ok || name != key {
			continue
		}

		updated := key + "=" + value
		if hash := strings.Index(rest, "#"); hash >= 0 {
			updated += " " + strings.TrimSpace(rest[hash:])
		}
		lines[i] = updated
		return lines, true
	}

	return append(lines, key+"="+value), false
}

// Unset drops the line holding key, leaving comments and unrelated
// lines untouched. Reports whether a line was removed.
func Unset(lines []string, key string) ([]string, bool) {
	kept := make([]string, 0, len(lines))
	removed := false

	for _, line := range lines {
		if name, _, ok := keyLine(line); ok && name == key {
			removed = true
			continue
		}
		kept = append(kept, line)
	}

	return kept, removed
}
