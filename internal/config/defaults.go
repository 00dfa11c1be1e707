package config

// Key describes one recognized configuration key.
type Key struct {
	Name        string
	Default     string
	Description string
}

// Keys lists every recognized configuration key in display order.
var Keys = []Key{
	{Name: "verbosity", Default: "0", Description: "Output verbosity: 0, 1 (info), 2 (debug)"},
	{Name: "enable_log", Default: "true", Description: "Write diagnostics to the log file"},
	{Name: "transport", Default: "fixture", Description: "Transport used to reach target hosts"},
	{Name: "fixture_path", Default: "", Description: "Object-model fixture file for the fixture transport"},
	{Name: "color", Default: "auto", Description: "Colored output: auto, always, never"},
	{Name: "pager", Default: "less -FRSX", Description: "Pager command for long help output"},
}

// IsKnownKey reports whether key is one of the recognized keys.
func IsKnownKey(key string) bool {
	for _, k := range Keys {
		if k.Name == key {
			return true
		}
	}
	return false
}

// Get returns the value for a config key.
// It checks the config file first, then falls back to the default.
// Returns the value and whether it was found (in file or defaults).
func Get(key string) (string, bool) {
	lines, err := ReadLines()
	if err != nil {
		return defaultFor(key)
	}

	cfg, err := Parse(lines)
	if err != nil {
		return defaultFor(key)
	}

	if value, exists := cfg[key]; exists {
		return value, true
	}

	return defaultFor(key)
}

// GetAll returns all config values (user overrides merged with defaults).
func GetAll() (map[string]string, error) {
	result := make(map[string]string)

	for _, k := range Keys {
		result[k.Name] = k.Default
	}

	lines, err := ReadLines()
	if err != nil {
		return result, nil // Return defaults on error
	}

	cfg, err := Parse(lines)
	if err != nil {
		return result, nil
	}

	for key, value := range cfg {
		result[key] = value
	}

	return result, nil
}

func defaultFor(key string) (string, bool) {
	for _, k := range Keys {
		if k.Name == key {
			return k.Default, true
		}
	}
	return "", false
}
