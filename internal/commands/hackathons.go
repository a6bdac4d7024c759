package commands

import (
	"errors"
	"fmt"

	"github.com/klokku/hackathons/internal/app"
	"github.com/klokku/hackathons/pkg/hackathon"
	"github.com/urfave/cli/v2"
)

func (r *runner) addCommand() *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Add a hackathon.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Usage: "Event name."},
			&cli.StringFlag{Name: "organizer", Usage: "Organizer."},
			&cli.StringFlag{Name: "start", Usage: "Start time, RFC3339 or " + hackathon.FormLayout + "."},
			&cli.StringFlag{Name: "end", Usage: "End time, RFC3339 or " + hackathon.FormLayout + "."},
			&cli.StringFlag{Name: "url", Usage: "Event page."},
			&cli.StringFlag{Name: "description", Usage: "Description."},
		},
		Action: func(c *cli.Context) error {
			toAdd, err := hackathon.FromDTO(hackathon.HackathonDTO{
				Name:        c.String("name"),
				Organizer:   c.String("organizer"),
				StartTime:   c.String("start"),
				EndTime:     c.String("end"),
				Url:         c.String("url"),
				Description: c.String("description"),
			}, r.cfg.Location())
			if err != nil {
				return err
			}

			return r.withDependencies(c.Context, func(deps *app.Dependencies) error {
				stored, err := deps.HackathonService.Add(c.Context, toAdd)
				if err != nil {
					if errors.Is(err, hackathon.ErrMissingRequiredFields) {
						fmt.Fprintln(r.opts.Err, hackathon.RequiredFieldsMessage)
					}
					return err
				}
				fmt.Fprintf(r.opts.Out, "Added %s\n\n%s", stored.Id, hackathon.RenderCard(stored, deps.Location))
				return nil
			})
		},
	}
}

func (r *runner) listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List all hackathons sorted by start time.",
		Action: func(c *cli.Context) error {
			return r.withDependencies(c.Context, func(deps *app.Dependencies) error {
				hackathons, err := deps.HackathonService.List(c.Context)
				if err != nil {
					return err
				}
				fmt.Fprint(r.opts.Out, hackathon.RenderList(hackathons, deps.Location))
				return nil
			})
		},
	}
}

func (r *runner) nextCommand() *cli.Command {
	return &cli.Command{
		Name:  "next",
		Usage: "Show the next upcoming hackathon.",
		Action: func(c *cli.Context) error {
			return r.withDependencies(c.Context, func(deps *app.Dependencies) error {
				next, ok, err := deps.HackathonService.Next(c.Context)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(r.opts.Out, hackathon.NoUpcomingEvents)
					return nil
				}
				fmt.Fprint(r.opts.Out, hackathon.RenderCard(next, deps.Location))
				return nil
			})
		},
	}
}
