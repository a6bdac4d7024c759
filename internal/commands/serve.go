package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/klokku/hackathons/internal/app"
	"github.com/urfave/cli/v2"
)

func (r *runner) serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the HTTP API.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "Listen address, overrides the configured one."},
		},
		Action: func(c *cli.Context) error {
			if c.IsSet("addr") {
				r.cfg.Addr = c.String("addr")
			}
			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			application, err := app.NewApplication(ctx, r.cfg)
			if err != nil {
				return err
			}
			return application.Run(ctx)
		},
	}
}
