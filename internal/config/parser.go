package config

import "strings"

// Parse converts config file lines into a key/value map. Blank lines
// and comment lines are skipped; inline comments after a value are
// stripped; surrounding double quotes on values are removed.
func Parse(lines []string) (map[string]string, error) {
	cfg := make(map[string]string)

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		parts := strings.SplitN(trimmed, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Strip inline comments outside of quoted values.
		if !strings.HasPrefix(value, "\"") {
			if idx := strings.Index(value, "#"); idx >= 0 {
				value = strings.TrimSpace(value[:idx])
			}
		}

		// Unquote
		if len(value) >= 2 && strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
			value = value[1 : len(value)-1]
		}

		cfg[key] = value
	}

	return cfg, nil
}
