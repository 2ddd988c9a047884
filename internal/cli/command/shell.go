package command

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/foldershare-go/internal/cli/output"
	"github.com/yndnr/foldershare-go/internal/cli/repl"
)

// ShellCommand returns the interactive shell command.
func ShellCommand() *cli.Command {
	return &cli.Command{
		Name:  "shell",
		Usage: "Browse the host interactively over one connection",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "no-history",
				Usage: "do not read or write the history file",
			},
		},
		Action: shellAction,
	}
}

func shellAction(c *cli.Context) error {
	opts, err := ResolveOptions(c)
	if err != nil {
		return err
	}
	session, err := Connect(c, opts)
	if err != nil {
		return err
	}

	historyFile := opts.History
	if c.Bool("no-history") {
		historyFile = ""
	}
	history := repl.NewHistory(historyFile)
	if err := history.Load(); err != nil {
		fmt.Fprintf(c.App.ErrWriter, "warning: history not loaded: %v\n", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		workDir = "."
	}

	shell := repl.New(repl.Config{
		Session:   session,
		Input:     c.App.Reader,
		Output:    stdout(c),
		Formatter: output.NewFormatter(opts.Format, opts.Wide),
		History:   history,
		Timeout:   opts.Timeout,
		WorkDir:   workDir,
	})

	runErr := shell.Run(c.Context)
	if err := history.Save(); err != nil {
		fmt.Fprintf(c.App.ErrWriter, "warning: history not saved: %v\n", err)
	}
	return runErr
}
