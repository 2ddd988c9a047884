package config

import (
	"log/slog"

	"github.com/yndnr/foldershare-go/internal/telemetry/logger"
)

// LogLevelReloader returns a config watcher callback that reloads the
// configuration and applies a changed log.level. Other settings need a
// restart. A configuration that fails to load or verify is ignored.
func LogLevelReloader(path string, overrides map[string]any, log *slog.Logger) func(string) {
	log = logger.OrDefault(log)

	return func(string) {
		cfg, err := Load(path, overrides)
		if err != nil {
			log.Warn("config reload rejected", "path", path, "error", err)
			return
		}

		if cfg.Log.Level == "" || cfg.Log.Level == logger.GetLevel() {
			return
		}
		if err := logger.SetLevel(cfg.Log.Level); err != nil {
			log.Warn("config reload rejected", "path", path, "error", err)
			return
		}
		log.Info("log level changed", "level", logger.GetLevel())
	}
}
