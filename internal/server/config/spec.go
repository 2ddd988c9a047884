package config

import "time"

// ServerConfig is the root configuration for foldershare-server.
type ServerConfig struct {
	Server    ServerSection    `koanf:"server"`
	Share     ShareSection     `koanf:"share"`
	Log       LogSection       `koanf:"log"`
	Telemetry TelemetrySection `koanf:"telemetry"`
}

// ServerSection configures the RPC endpoint.
type ServerSection struct {
	RPC RPCConfig `koanf:"rpc"`

	// ShutdownTimeout bounds the drain of in-flight calls on stop.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// RPCConfig configures the Connect listener.
type RPCConfig struct {
	// Addr is host:port. Port 0 picks a free port.
	Addr string `koanf:"addr"`

	// RateLimit is calls per second allowed per peer address. 0 disables.
	RateLimit float64 `koanf:"rate_limit"`

	// RateBurst is the bucket size per peer.
	RateBurst int `koanf:"rate_burst"`
}

// ShareSection configures what is shared and who may read it.
type ShareSection struct {
	// Folders are the shared roots, snapshotted once at start-up.
	Folders []string `koanf:"folders"`

	// Password is hashed at start-up. Mutually exclusive with PasswordHash.
	Password string `koanf:"password"`

	// PasswordHash is an Argon2id hash in PHC form.
	PasswordHash string `koanf:"password_hash"`

	// ConfinePaths restricts file requests to the shared roots.
	ConfinePaths bool `koanf:"confine_paths"`

	// MaxFileSize is the largest file served, in bytes. 0 means no limit.
	MaxFileSize int64 `koanf:"max_file_size"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// TelemetrySection configures metrics exposure.
type TelemetrySection struct {
	Metrics MetricsConfig `koanf:"metrics"`
}

// MetricsConfig configures the /metrics endpoint.
type MetricsConfig struct {
	Enabled bool `koanf:"enabled"`
}
