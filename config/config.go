// Package config loads and persists podrun configuration.
//
// Configuration lives at ~/.podrun/config.toml and can be overridden with
// PODRUN_* environment variables (e.g. PODRUN_TPU_ZONE).
package config

// Config represents the podrun configuration
type Config struct {
	TPU      TPUConfig      `mapstructure:"tpu"`
	Run      RunConfig      `mapstructure:"run"`
	Database DatabaseConfig `mapstructure:"database"`
}

// TPUConfig identifies the target TPU VM slice
type TPUConfig struct {
	Project string `mapstructure:"project"` // Google Cloud project ID
	Zone    string `mapstructure:"zone"`    // Google Cloud zone (e.g. us-central2-b)
	Name    string `mapstructure:"name"`    // TPU name
}

// Configured reports whether all TPU identity fields are set
func (c TPUConfig) Configured() bool {
	return c.Project != "" && c.Zone != "" && c.Name != ""
}

// RunConfig holds default execution parameters for `podrun run`
type RunConfig struct {
	Retries           int     `mapstructure:"retries"`             // retries after the first attempt (default: 3)
	RetryDelaySeconds float64 `mapstructure:"retry_delay_seconds"` // delay between attempts (default: 5)
	TimeoutSeconds    float64 `mapstructure:"timeout_seconds"`     // per-attempt wall-clock bound (default: 300)
	ExcerptChars      int     `mapstructure:"excerpt_chars"`       // output excerpt length in records (default: 500)
}

// DatabaseConfig configures the SQLite execution history database
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}
