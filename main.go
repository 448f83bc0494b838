package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/robert-malhotra/go-stac-search/cmd"
)

func main() {
	app := &cli.Command{
		Name:  "go-stac-search",
		Usage: "STAC search service over a geospatial resource catalog",
		Commands: []*cli.Command{
			cmd.NewServeCommand(),
			cmd.NewVersionCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
