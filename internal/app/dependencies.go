package app

import (
	"net/http"
	"time"

	"github.com/klokku/hackathons/internal/config"
	"github.com/klokku/hackathons/internal/event_bus"
	"github.com/klokku/hackathons/internal/storage"
	"github.com/klokku/hackathons/internal/utils"
	"github.com/klokku/hackathons/pkg/calendar"
	"github.com/klokku/hackathons/pkg/countdown"
	"github.com/klokku/hackathons/pkg/hackathon"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Storage  storage.Storage
	EventBus *event_bus.EventBus
	Clock    utils.Clock
	Location *time.Location
	Interval time.Duration
	CalDAV   config.CalDAV

	HackathonRepo    hackathon.Repository
	HackathonService *hackathon.ServiceImpl
	HackathonHandler *hackathon.Handler

	CountdownHandler *countdown.Handler

	CalendarHandler *calendar.Handler
}

// BuildDependencies wires services and handlers on top of an already opened storage.
func BuildDependencies(s storage.Storage, cfg config.Application, eventBus *event_bus.EventBus, clock utils.Clock) *Dependencies {
	deps := &Dependencies{
		Storage:  s,
		EventBus: eventBus,
		Clock:    clock,
		Location: cfg.Location(),
		Interval: cfg.Countdown.Interval,
		CalDAV:   cfg.CalDAV,
	}

	deps.HackathonRepo = hackathon.NewRepository(s, deps.Location)
	deps.HackathonService = hackathon.NewService(deps.HackathonRepo, eventBus, clock)
	deps.HackathonHandler = hackathon.NewHandler(deps.HackathonService, deps.Location)

	deps.CountdownHandler = countdown.NewHandler(deps.HackathonService, clock, deps.Interval, eventBus)

	deps.CalendarHandler = calendar.NewHandler(deps.HackathonService, clock)

	return deps
}

// NewTimer returns a countdown timer over the next upcoming hackathon.
func (d *Dependencies) NewTimer() *countdown.Timer {
	return countdown.NewTimer(d.HackathonService, d.Clock, d.Interval, d.EventBus)
}

// NewPublisher returns a CalDAV publisher for the configured collection.
func (d *Dependencies) NewPublisher(transport http.RoundTripper) (*calendar.Publisher, error) {
	return calendar.NewPublisher(d.CalDAV, transport, d.Clock)
}
