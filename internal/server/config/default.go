package config

import "time"

// Default configuration values.
const (
	DefaultRPCAddr         = "0.0.0.0:7070"
	DefaultRateLimit       = 50
	DefaultRateBurst       = 100
	DefaultShutdownTimeout = 10 * time.Second

	DefaultMaxFileSize = 64 << 20

	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			RPC: RPCConfig{
				Addr:      DefaultRPCAddr,
				RateLimit: DefaultRateLimit,
				RateBurst: DefaultRateBurst,
			},
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Share: ShareSection{
			ConfinePaths: true,
			MaxFileSize:  DefaultMaxFileSize,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
