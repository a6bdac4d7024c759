package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/klokku/hackathons/internal/app"
	"github.com/klokku/hackathons/pkg/countdown"
	"github.com/klokku/hackathons/pkg/hackathon"
	"github.com/urfave/cli/v2"
)

// countdownLine renders one frame, e.g. "HackMIT: 01 Days 01 Hours 01 Minutes 01 Seconds".
func countdownLine(state countdown.State) string {
	if state.Empty() {
		return hackathon.NoUpcomingEvents + ": " + countdown.Placeholder.String()
	}
	return state.Event.Name + ": " + state.Breakdown.String()
}

func (r *runner) countdownCommand() *cli.Command {
	return &cli.Command{
		Name:  "countdown",
		Usage: "Count down to the next hackathon until interrupted.",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "once", Usage: "Print a single frame and exit."},
		},
		Action: func(c *cli.Context) error {
			return r.withDependencies(c.Context, func(deps *app.Dependencies) error {
				if c.Bool("once") {
					state, err := countdown.Snapshot(c.Context, deps.HackathonService, deps.Clock)
					if err != nil {
						return err
					}
					fmt.Fprintln(r.opts.Out, countdownLine(state))
					return nil
				}

				ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
				defer stop()
				err := deps.NewTimer().Run(ctx, func(state countdown.State) {
					fmt.Fprintf(r.opts.Out, "\r%s\033[K", countdownLine(state))
				})
				fmt.Fprintln(r.opts.Out)
				return err
			})
		},
	}
}
