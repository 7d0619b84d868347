// Command extentix is the CLI front end for the extent-list search core,
// structured the way the teacher's cmd/lci/main.go lays out its urfave/cli
// app: a global config/root flag set, one subcommand per operator surface.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/extentix/internal/config"
)

func main() {
	app := &cli.App{
		Name:                   "extentix",
		Usage:                  "positional extent-list search core",
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "config file path",
				Value:   "extentix.toml",
			},
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "document collection root",
				Value:   ".",
			},
		},
		Commands: []*cli.Command{
			buildCommand(),
			queryCommand(),
			inspectCommand(),
			copyIndexCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", c.String("config"), err)
	}
	return cfg, nil
}

// ctxWithInterrupt cancels its context on SIGINT/SIGTERM, the same
// graceful-shutdown signal set the teacher's cmd/lci/main.go installed
// before handing a context down to its long-running server loop.
func ctxWithInterrupt() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()
	return ctx, cancel
}
