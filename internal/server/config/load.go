package config

import (
	"github.com/yndnr/foldershare-go/internal/infra/confloader"
)

// Load builds the server configuration from the defaults, the YAML file at
// path (skipped when empty), FOLDERSHARE_* variables and overrides, then
// verifies it.
func Load(path string, overrides map[string]any) (*ServerConfig, error) {
	cfg := Default()

	loader := confloader.NewLoader(
		confloader.WithConfigFile(path),
		confloader.WithOverrides(overrides),
	)
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	if err := Verify(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
