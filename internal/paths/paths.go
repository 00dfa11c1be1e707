package paths

import (
	"os"
	"path/filepath"
)

const appDirName = "rig"

// AppDataDir returns the application data directory for the log file
// and the host inventory database. Uses os.UserConfigDir() which returns:
//   - macOS: ~/Library/Application Support
//   - Linux: $XDG_CONFIG_HOME or ~/.config
//   - Windows: %AppData% (roaming)
func AppDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}

	path := filepath.Join(dir, appDirName)

	// Use restrictive permissions for application data
	_ = os.MkdirAll(path, 0700)

	return path
}

// ConfigFilePath returns the path to the user configuration file.
func ConfigFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".rigrc"), nil
}

// LogFilePath returns the path to the application log file inside
// AppDataDir.
func LogFilePath() string {
	return filepath.Join(AppDataDir(), "rig.log")
}

// InventoryPath returns the path to the host inventory database inside
// AppDataDir.
func InventoryPath() string {
	return filepath.Join(AppDataDir(), "inventory.db")
}
