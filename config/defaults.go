package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Run defaults match the original eopod CLI flags
	v.SetDefault("run.retries", 3)
	v.SetDefault("run.retry_delay_seconds", 5.0)
	v.SetDefault("run.timeout_seconds", 300.0)
	v.SetDefault("run.excerpt_chars", 500)

	v.SetDefault("database.path", filepath.Join(Dir(), "podrun.db"))
}

// Dir returns the podrun configuration directory (~/.podrun).
// Falls back to the current directory when the home directory is unknown.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".podrun"
	}
	return filepath.Join(home, ".podrun")
}

// Path returns the path of the primary config file
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}
