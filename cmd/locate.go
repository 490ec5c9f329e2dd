package main

import (
	"context"
	"fmt"

	"github.com/brettbuddin/ApplePhotosPublisher/internal/shared"
	"github.com/urfave/cli/v3"
)

// Locate resolves an identifier to a deep link and hands off to the OS opener.
func (r *Runner) Locate(ctx context.Context, cmd *cli.Command) error {
	identifier := cmd.Args().First()
	if identifier == "" {
		return fmt.Errorf("%w: identifier", shared.ErrMissingArgument)
	}

	url := r.engine.LocateURL(ctx, identifier)
	r.logger.Info("resolved deep link", "identifier", identifier, "url", url)

	if _, err := fmt.Fprintln(r.output, url); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if cmd.Bool("no-open") {
		return nil
	}
	return shared.OpenURL(url)
}

// locateCommand handles open-by-identifier
func locateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "locate",
		Aliases:   []string{"open"},
		Usage:     "Resolve an asset identifier to a Photos deep link and open it",
		ArgsUsage: "<identifier>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "no-open",
				Usage: "Print the deep link without handing off to the OS",
			},
		},
		Action: r.Locate,
	}
}
