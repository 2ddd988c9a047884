package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/foldershare-go/internal/cli/config"
	"github.com/yndnr/foldershare-go/internal/cli/connection"
	"github.com/yndnr/foldershare-go/internal/cli/output"
	"github.com/yndnr/foldershare-go/internal/cli/prompt"
	"github.com/yndnr/foldershare-go/internal/infra/buildinfo"
	"github.com/yndnr/foldershare-go/internal/telemetry/logger"
)

const (
	metaManager = "connMgr"
	metaConfig  = "cliConfig"

	disconnectTimeout = 5 * time.Second
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "foldershare-cli",
		Usage:   "Browse and fetch files shared by a foldershare-server host",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			ListCommand(),
			GetCommand(),
			ShellCommand(),
			VersionCommand(),
		},
		Before: before,
		After:  after,
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "host to connect to, host:port or URL (default from cli.yaml, else " + config.DefaultServer + ")",
			EnvVars: []string{"FOLDERSHARE_SERVER"},
		},
		&cli.StringFlag{
			Name:    "password",
			Aliases: []string{"p"},
			Usage:   "shared password; prompted for when empty",
			EnvVars: []string{"FOLDERSHARE_PASSWORD"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format: tree, table, json, yaml",
		},
		&cli.BoolFlag{
			Name:    "wide",
			Aliases: []string{"w"},
			Usage:   "show timestamps",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "bound on each call to the host",
		},
		&cli.StringFlag{
			Name:    "config",
			Usage:   "CLI config file",
			EnvVars: []string{"FOLDERSHARE_CLI_CONFIG"},
			Value:   config.DefaultConfigPath(),
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "no progress spinner",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "log connection events to stderr",
		},
	}
}

// Options are the resolved global settings of one invocation.
type Options struct {
	Server   string
	Password string
	Format   output.Format
	Wide     bool
	Timeout  time.Duration
	Quiet    bool
	History  string
}

func before(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	log := logger.Discard()
	if c.Bool("verbose") {
		log, err = logger.New(logger.Config{Level: "debug", Format: "text", Output: c.App.ErrWriter})
		if err != nil {
			return err
		}
	}

	c.App.Metadata[metaConfig] = cfg
	c.App.Metadata[metaManager] = connection.NewManager(connection.WithLogger(log))
	return nil
}

func after(c *cli.Context) error {
	mgr := GetConnectionManager(c)
	if mgr == nil || !mgr.IsConnected() {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
	defer cancel()
	return mgr.Disconnect(ctx)
}

// GetConnectionManager retrieves the connection manager from context.
func GetConnectionManager(c *cli.Context) *connection.Manager {
	if mgr, ok := c.App.Metadata[metaManager].(*connection.Manager); ok {
		return mgr
	}
	return nil
}

// ResolveOptions merges flags and environment over the CLI config file.
func ResolveOptions(c *cli.Context) (*Options, error) {
	cfg, ok := c.App.Metadata[metaConfig].(*config.CLIConfig)
	if !ok {
		cfg = config.Default()
	}

	opts := &Options{
		Server:   cfg.Server,
		Password: c.String("password"),
		Wide:     c.Bool("wide"),
		Timeout:  cfg.Timeout,
		Quiet:    c.Bool("quiet"),
		History:  cfg.History,
	}
	if c.IsSet("server") {
		opts.Server = c.String("server")
	}
	if c.IsSet("timeout") {
		opts.Timeout = c.Duration("timeout")
	}

	formatName := cfg.Output
	if c.IsSet("output") {
		formatName = c.String("output")
	}
	format, err := output.ParseFormat(formatName)
	if err != nil {
		return nil, err
	}
	opts.Format = format

	if opts.Server == "" {
		return nil, errors.New("no server given (use --server or set server in cli.yaml)")
	}
	return opts, nil
}

// Connect opens the session used by the current command.
func Connect(c *cli.Context, opts *Options) (*connection.Session, error) {
	mgr := GetConnectionManager(c)
	if mgr == nil {
		return nil, errors.New("connection manager not initialized")
	}

	if opts.Password == "" {
		pw, err := prompt.Password("Password for "+opts.Server, nil, nil)
		if err != nil {
			return nil, err
		}
		opts.Password = pw
	}

	var spinner *output.Spinner
	if !opts.Quiet {
		spinner = output.NewSpinner(c.App.ErrWriter, "Connecting to "+opts.Server)
		spinner.Start()
	}

	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	session, err := mgr.Connect(ctx, connection.Connection{
		Server:      opts.Server,
		Password:    opts.Password,
		CallTimeout: opts.Timeout,
	})
	if err != nil {
		spinner.Fail("Connection to " + opts.Server + " failed")
		return nil, fmt.Errorf("connect to %s: %w", opts.Server, err)
	}
	spinner.Stop()
	return session, nil
}

// callContext bounds one command's remote work by the call timeout.
func callContext(c *cli.Context, opts *Options) (context.Context, context.CancelFunc) {
	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, opts.Timeout)
}

func stdout(c *cli.Context) io.Writer {
	if c.App.Writer != nil {
		return c.App.Writer
	}
	return os.Stdout
}
