package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/foldershare-go/internal/cli/output"
	"github.com/yndnr/foldershare-go/internal/core/domain"
)

// ListCommand returns the list command.
func ListCommand() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "Show the host's shared tree",
		ArgsUsage: "[PATH]",
		Description: "Connects, fetches the snapshot of every shared folder and prints it.\n" +
			"With PATH, only the subtree rooted at PATH is printed.",
		Action: listAction,
	}
}

func listAction(c *cli.Context) error {
	if c.NArg() > 1 {
		return fmt.Errorf("list takes at most one PATH")
	}

	opts, err := ResolveOptions(c)
	if err != nil {
		return err
	}
	session, err := Connect(c, opts)
	if err != nil {
		return err
	}

	var data any = session.Tree()
	if path := c.Args().First(); path != "" {
		node, ok := domain.Find(session.Tree(), path)
		if !ok {
			return fmt.Errorf("%s: not in the shared tree", path)
		}
		data = node
	}

	return output.NewFormatter(opts.Format, opts.Wide).Format(stdout(c), data)
}
