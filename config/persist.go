package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/podrun/podrun/errors"
)

// Save writes TPU credentials to the config file, preserving any other
// sections already present. Creates ~/.podrun if needed.
func Save(tpu TPUConfig) error {
	return SaveTo(Path(), tpu)
}

// SaveTo writes TPU credentials to an explicit config path (used by tests)
func SaveTo(configPath string, tpu TPUConfig) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	// Merge into any existing file rather than clobbering it
	raw := make(map[string]interface{})
	if data, err := os.ReadFile(configPath); err == nil {
		if err := toml.Unmarshal(data, &raw); err != nil {
			return errors.Wrap(err, "failed to parse existing config")
		}
	}

	raw["tpu"] = map[string]interface{}{
		"project": tpu.Project,
		"zone":    tpu.Zone,
		"name":    tpu.Name,
	}

	data, err := toml.Marshal(raw)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return errors.Wrap(err, "failed to write config")
	}

	// Invalidate the cached view so the next Load sees the new values
	Reset()
	return nil
}
