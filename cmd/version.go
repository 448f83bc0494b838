package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// Version is the service version, overridable at build time via
// -ldflags "-X ...cmd.Version=".
var Version = "0.1.0"

// NewVersionCommand returns the version command.
func NewVersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print the service version",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fmt.Println(Version)
			return nil
		},
	}
}
