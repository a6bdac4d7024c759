package commands

import (
	"context"
	"io"
	"os"

	"github.com/klokku/hackathons/internal/app"
	"github.com/klokku/hackathons/internal/config"
	"github.com/klokku/hackathons/internal/event_bus"
	"github.com/klokku/hackathons/internal/storage"
	"github.com/klokku/hackathons/internal/utils"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

type Options struct {
	Out   io.Writer
	Err   io.Writer
	Clock utils.Clock
}

type runner struct {
	opts Options
	cfg  config.Application
}

// NewApp builds the command line application. Zero Options write to stdout/stderr and use the system clock.
func NewApp(opts Options) *cli.App {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if opts.Clock == nil {
		opts.Clock = utils.SystemClock{}
	}
	r := &runner{opts: opts}

	return &cli.App{
		Name:      "hackathons",
		Usage:     "Track hackathons and count down to the next one.",
		Writer:    opts.Out,
		ErrWriter: opts.Err,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   config.DefaultPath,
				Usage:   "Path to the YAML configuration file.",
				EnvVars: []string{"HACKATHONS_CONFIG"},
			},
		},
		Before: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}
			r.cfg = cfg
			return nil
		},
		Commands: []*cli.Command{
			r.serveCommand(),
			r.addCommand(),
			r.listCommand(),
			r.nextCommand(),
			r.countdownCommand(),
			r.exportCommand(),
			r.publishCommand(),
		},
	}
}

// withDependencies opens the configured storage for the duration of fn.
func (r *runner) withDependencies(ctx context.Context, fn func(deps *app.Dependencies) error) error {
	s, err := storage.Open(ctx, r.cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			log.Errorf("failed to close storage: %v", err)
		}
	}()
	return fn(app.BuildDependencies(s, r.cfg, event_bus.NewEventBus(), r.opts.Clock))
}
