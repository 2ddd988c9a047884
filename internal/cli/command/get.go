package command

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/foldershare-go/internal/cli/output"
)

// GetCommand returns the get command.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Fetch one shared file",
		ArgsUsage: "PATH",
		Description: "PATH is the file's path on the host, as shown by list.\n" +
			"The file is saved under its own name in the current directory unless\n" +
			"--dest names a file or directory; --dest - writes it to stdout.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dest",
				Aliases: []string{"d"},
				Usage:   "destination file or directory, or - for stdout",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "overwrite an existing destination file",
			},
		},
		Action: getAction,
	}
}

// getResult is printed for json and yaml output.
type getResult struct {
	Path  string `json:"path" yaml:"path"`
	Saved string `json:"saved" yaml:"saved"`
	Size  int    `json:"size" yaml:"size"`
}

func getAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("get takes exactly one PATH")
	}
	remote := c.Args().First()

	opts, err := ResolveOptions(c)
	if err != nil {
		return err
	}

	dest := c.String("dest")
	toStdout := dest == "-"
	if !toStdout {
		dest, err = destination(remote, dest, c.Bool("force"))
		if err != nil {
			return err
		}
	}

	session, err := Connect(c, opts)
	if err != nil {
		return err
	}

	ctx, cancel := callContext(c, opts)
	defer cancel()

	data, err := session.Fetch(ctx, remote)
	if err != nil {
		return fmt.Errorf("get %s: %w", remote, err)
	}

	if toStdout {
		_, err := stdout(c).Write(data)
		return err
	}

	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("save %s: %w", dest, err)
	}

	switch opts.Format {
	case output.FormatJSON, output.FormatYAML:
		return output.NewFormatter(opts.Format, false).Format(stdout(c), getResult{
			Path:  remote,
			Saved: dest,
			Size:  len(data),
		})
	default:
		fmt.Fprintf(stdout(c), "saved %s (%s) to %s\n", remote, output.FormatSize(int64(len(data))), dest)
		return nil
	}
}

// destination picks the local file for remote. An existing directory
// receives the file under its remote name.
func destination(remote, dest string, force bool) (string, error) {
	name := filepath.Base(remote)
	if name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("%s: not a file path", remote)
	}

	if dest == "" {
		dest = name
	} else if info, err := os.Stat(dest); err == nil && info.IsDir() {
		dest = filepath.Join(dest, name)
	}

	if !force {
		if _, err := os.Stat(dest); err == nil {
			return "", fmt.Errorf("%s already exists (use --force to overwrite)", dest)
		}
	}
	return dest, nil
}
