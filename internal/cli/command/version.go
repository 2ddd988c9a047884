package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/foldershare-go/internal/cli/output"
	"github.com/yndnr/foldershare-go/internal/infra/buildinfo"
)

// VersionCommand returns the version command.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show build information",
		Action: func(c *cli.Context) error {
			format, err := output.ParseFormat(c.String("output"))
			if err != nil {
				return err
			}
			switch format {
			case output.FormatJSON, output.FormatYAML:
				return output.NewFormatter(format, false).Format(stdout(c), buildinfo.Get())
			default:
				info := buildinfo.Get()
				fmt.Fprintf(stdout(c), "foldershare-cli %s\n", buildinfo.String())
				fmt.Fprintf(stdout(c), "  go:       %s\n", info.GoVersion)
				fmt.Fprintf(stdout(c), "  platform: %s\n", info.Platform)
				return nil
			}
		},
	}
}
