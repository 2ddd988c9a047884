package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/yndnr/foldershare-go/internal/core/service"
	"github.com/yndnr/foldershare-go/internal/infra/buildinfo"
	"github.com/yndnr/foldershare-go/internal/infra/confloader"
	"github.com/yndnr/foldershare-go/internal/infra/shutdown"
	"github.com/yndnr/foldershare-go/internal/server/config"
	"github.com/yndnr/foldershare-go/internal/server/shareserver"
	"github.com/yndnr/foldershare-go/internal/storage/shareroot"
	"github.com/yndnr/foldershare-go/internal/storage/snapshot"
	"github.com/yndnr/foldershare-go/internal/telemetry/logger"
	"github.com/yndnr/foldershare-go/internal/telemetry/metric"
)

// folderList collects repeated --folder flags.
type folderList []string

func (f *folderList) String() string { return strings.Join(*f, ",") }

func (f *folderList) Set(v string) error {
	*f = append(*f, v)
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var folders folderList
	var (
		configFile  = flag.String("config", "", "Path to configuration file")
		port        = flag.Int("port", -1, "Listen port, overriding server.rpc.addr")
		password    = flag.String("password", "", "Share password, overriding share.password")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Var(&folders, "folder", "Folder to share (repeatable)")
	flag.Parse()

	if *showVersion {
		fmt.Println("foldershare-server " + buildinfo.String())
		return nil
	}

	overrides := flagOverrides(folders, *password)

	cfg, err := loadConfig(*configFile, overrides, *port)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stderr,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	slog.SetDefault(log)

	safe := config.Sanitize(cfg)
	log.Info("starting foldershare-server",
		"version", buildinfo.Version,
		"commit", buildinfo.Commit,
		"config", *configFile,
		"addr", safe.Server.RPC.Addr,
		"folders", safe.Share.Folders)

	srv, err := newServer(cfg, log)
	if err != nil {
		return err
	}

	h := shutdown.NewHandler(cfg.Server.ShutdownTimeout, shutdown.WithLogger(log))
	h.Listen()

	if *configFile != "" {
		if err := watchConfig(h, *configFile, overrides, log); err != nil {
			log.Warn("config watcher disabled", "error", err)
		}
	}

	serveErr := make(chan error, 1)
	go func() {
		err := srv.Serve(h.Stop())
		if err != nil {
			h.Trigger("rpc server failed")
		}
		serveErr <- err
	}()

	hookErr := h.Wait()
	if err := errors.Join(<-serveErr, hookErr); err != nil {
		log.Error("server stopped with errors", "error", err)
		return err
	}

	log.Info("server stopped gracefully", "reason", h.Reason())
	return nil
}

func flagOverrides(folders []string, password string) map[string]any {
	overrides := make(map[string]any)
	if len(folders) > 0 {
		overrides["share.folders"] = []string(folders)
	}
	if password != "" {
		overrides["share.password"] = password
		overrides["share.password_hash"] = ""
	}
	return overrides
}

// loadConfig layers file, env and flag overrides. A non-negative port
// replaces the port of server.rpc.addr.
func loadConfig(path string, overrides map[string]any, port int) (*config.ServerConfig, error) {
	cfg, err := config.Load(path, overrides)
	if err != nil {
		return nil, err
	}

	if port >= 0 {
		addr, err := config.WithPort(cfg.Server.RPC.Addr, port)
		if err != nil {
			return nil, fmt.Errorf("--port: %w", err)
		}
		cfg.Server.RPC.Addr = addr
	}
	return cfg, nil
}

func newServer(cfg *config.ServerConfig, log *slog.Logger) (*shareserver.Server, error) {
	snap, err := snapshot.TakeAll(cfg.Share.Folders, snapshot.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	log.Info("shared tree snapshotted",
		"roots", len(snap.Roots),
		"folders", snap.Stats.Folders,
		"files", snap.Stats.Files,
		"skipped", snap.Stats.Skipped)

	roots, err := shareroot.New(snap.Roots,
		shareroot.WithConfinement(cfg.Share.ConfinePaths),
		shareroot.WithMaxFileSize(cfg.Share.MaxFileSize))
	if err != nil {
		return nil, fmt.Errorf("share roots: %w", err)
	}

	verifier, err := newVerifier(cfg.Share)
	if err != nil {
		return nil, fmt.Errorf("password: %w", err)
	}

	metrics := metric.NewRegistry()
	if err := metrics.Register(metric.NewTreeCollector(snap)); err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}

	svc, err := service.NewShareService(service.ShareConfig{
		Verifier: verifier,
		Snapshot: snap.Nodes,
		Roots:    roots,
		Logger:   log,
		Metrics:  metrics,
	})
	if err != nil {
		return nil, err
	}

	return shareserver.New(shareserver.Config{
		Addr:            cfg.Server.RPC.Addr,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Service:         svc,
		Limiters:        service.NewRateLimiterRegistry(cfg.Server.RPC.RateLimit, cfg.Server.RPC.RateBurst),
		Metrics:         metrics,
		ExposeMetrics:   cfg.Telemetry.Metrics.Enabled,
		Logger:          log,
	})
}

func newVerifier(share config.ShareSection) (*service.Verifier, error) {
	if share.PasswordHash != "" {
		return service.NewVerifier(share.PasswordHash)
	}
	return service.NewPasswordVerifier(share.Password)
}

func watchConfig(h *shutdown.Handler, path string, overrides map[string]any, log *slog.Logger) error {
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		return err
	}
	if err := w.Watch(path); err != nil {
		_ = w.Stop()
		return err
	}

	w.OnChange(config.LogLevelReloader(path, overrides, log))
	w.StartAsync()

	h.OnShutdown(func(context.Context) error {
		return w.Stop()
	})
	return nil
}
