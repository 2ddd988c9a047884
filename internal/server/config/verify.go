package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/yndnr/foldershare-go/internal/telemetry/logger"
)

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if err := verifyServer(&cfg.Server); err != nil {
		return err
	}
	if err := verifyShare(&cfg.Share); err != nil {
		return err
	}
	return verifyLog(&cfg.Log)
}

func verifyServer(cfg *ServerSection) error {
	if _, err := ParsePort(cfg.RPC.Addr); err != nil {
		return fmt.Errorf("server.rpc.addr: %w", err)
	}
	if cfg.RPC.RateLimit < 0 {
		return errors.New("server.rpc.rate_limit must not be negative")
	}
	if cfg.RPC.RateBurst < 0 {
		return errors.New("server.rpc.rate_burst must not be negative")
	}
	if cfg.ShutdownTimeout < 0 {
		return errors.New("server.shutdown_timeout must not be negative")
	}
	return nil
}

func verifyShare(cfg *ShareSection) error {
	if len(cfg.Folders) == 0 {
		return errors.New("share.folders: at least one folder is required")
	}
	seen := make(map[string]bool, len(cfg.Folders))
	for _, f := range cfg.Folders {
		if strings.TrimSpace(f) == "" {
			return errors.New("share.folders: empty folder path")
		}
		if seen[f] {
			return fmt.Errorf("share.folders: %q listed twice", f)
		}
		seen[f] = true
	}

	switch {
	case cfg.Password == "" && cfg.PasswordHash == "":
		return errors.New("share: one of password or password_hash is required")
	case cfg.Password != "" && cfg.PasswordHash != "":
		return errors.New("share: password and password_hash are mutually exclusive")
	}

	if cfg.MaxFileSize < 0 {
		return errors.New("share.max_file_size must not be negative")
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	if _, err := logger.ParseLevel(cfg.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch strings.ToLower(cfg.Format) {
	case "", "text", "console", "json":
		return nil
	default:
		return fmt.Errorf("log.format: unknown format %q", cfg.Format)
	}
}

// ParsePort returns the port of a host:port address, checked to lie in
// [0, 65535].
func ParsePort(addr string) (int, error) {
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return 0, err
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0, fmt.Errorf("invalid port %q", portStr)
	}
	if port < 0 || port > 65535 {
		return 0, fmt.Errorf("port %d out of range [0, 65535]", port)
	}
	return port, nil
}

// WithPort returns addr with its port replaced.
func WithPort(addr string, port int) (string, error) {
	if port < 0 || port > 65535 {
		return "", fmt.Errorf("port %d out of range [0, 65535]", port)
	}
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = ""
	}
	return net.JoinHostPort(host, strconv.Itoa(port)), nil
}
