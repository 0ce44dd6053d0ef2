// Package app provides the application initialization and wiring.
package app

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DefaultDataDir returns the directory holding log files by default.
// Uses ~/.local/state/citybike, falling back to the temp directory.
func DefaultDataDir() string {
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".local", "state", "citybike")
	}
	return filepath.Join(os.TempDir(), "citybike")
}

// ConfigureViper sets up viper with standard config file search paths.
// Config file: citybike.toml
// Search paths (in order): /etc/citybike, ~/.config/citybike, current directory
func ConfigureViper(v *viper.Viper, configPath string) {
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("citybike")
		v.SetConfigType("toml")
		v.AddConfigPath("/etc/citybike")
		v.AddConfigPath("$HOME/.config/citybike")
		v.AddConfigPath(".")
	}
}
