package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/klokku/hackathons/internal/app"
	"github.com/klokku/hackathons/pkg/calendar"
	"github.com/klokku/hackathons/pkg/hackathon"
	"github.com/urfave/cli/v2"
)

func (r *runner) exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write all hackathons as an iCalendar file.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Value: "-", Usage: "Output file, - for stdout."},
		},
		Action: func(c *cli.Context) error {
			return r.withDependencies(c.Context, func(deps *app.Dependencies) error {
				hackathons, err := deps.HackathonService.List(c.Context)
				if err != nil {
					return err
				}

				if len(hackathons) == 0 {
					fmt.Fprintln(r.opts.Err, hackathon.NoHackathons)
					return calendar.ErrNothingToExport
				}

				out := c.String("out")
				var w io.Writer = r.opts.Out
				if out != "-" && out != "" {
					f, err := os.Create(out)
					if err != nil {
						return fmt.Errorf("failed to create %s: %w", out, err)
					}
					defer f.Close()
					w = f
				}
				if err := calendar.Export(w, hackathons, deps.Clock.Now()); err != nil {
					return err
				}
				if out != "-" && out != "" {
					fmt.Fprintf(r.opts.Err, "Exported %d hackathons to %s\n", len(hackathons), out)
				}
				return nil
			})
		},
	}
}

func (r *runner) publishCommand() *cli.Command {
	return &cli.Command{
		Name:  "publish",
		Usage: "Upload all hackathons to the configured CalDAV calendar.",
		Action: func(c *cli.Context) error {
			return r.withDependencies(c.Context, func(deps *app.Dependencies) error {
				publisher, err := deps.NewPublisher(nil)
				if err != nil {
					return err
				}
				hackathons, err := deps.HackathonService.List(c.Context)
				if err != nil {
					return err
				}
				count, err := publisher.Publish(c.Context, hackathons)
				if err != nil {
					return err
				}
				fmt.Fprintf(r.opts.Out, "Published %d hackathons to %s\n", count, deps.CalDAV.Calendar)
				return nil
			})
		},
	}
}
