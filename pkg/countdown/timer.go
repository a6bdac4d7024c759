package countdown

import (
	"context"
	"time"

	"github.com/klokku/hackathons/internal/event_bus"
	"github.com/klokku/hackathons/internal/utils"
	"github.com/klokku/hackathons/pkg/hackathon"
	log "github.com/sirupsen/logrus"
)

type NextFinder interface {
	Next(ctx context.Context) (hackathon.Hackathon, bool, error)
}

// State is one frame of the next-event view. Event is nil when nothing is upcoming.
type State struct {
	Event     *hackathon.Hackathon
	Remaining time.Duration
	Breakdown Breakdown
}

func (s State) Empty() bool {
	return s.Event == nil
}

// Timer drives a live countdown to the next hackathon. It re-reads the next hackathon
// when the displayed one has started and whenever a hackathon is added.
type Timer struct {
	next     NextFinder
	clock    utils.Clock
	interval time.Duration
	eventBus *event_bus.EventBus
	refresh  chan struct{}
}

func NewTimer(next NextFinder, clock utils.Clock, interval time.Duration, eventBus *event_bus.EventBus) *Timer {
	if interval <= 0 {
		interval = time.Second
	}
	return &Timer{
		next:     next,
		clock:    clock,
		interval: interval,
		eventBus: eventBus,
		refresh:  make(chan struct{}, 1),
	}
}

// Refresh asks a running timer to reload the next hackathon. It never blocks.
func (t *Timer) Refresh() {
	select {
	case t.refresh <- struct{}{}:
	default:
	}
}

// Run renders the current state immediately and then once per interval until ctx is done.
// It only fails when the first lookup of the next hackathon fails.
func (t *Timer) Run(ctx context.Context, render func(State)) error {
	ticker := t.clock.NewTicker(t.interval)
	defer ticker.Stop()

	if t.eventBus != nil {
		unsubscribe := event_bus.SubscribeTyped(t.eventBus, event_bus.HackathonAddedType,
			func(e event_bus.EventT[event_bus.HackathonAdded]) error {
				log.Tracef("hackathon %q added, refreshing countdown", e.Data.Name)
				t.Refresh()
				return nil
			})
		defer unsubscribe()
	}

	current, err := t.lookup(ctx)
	if err != nil {
		return err
	}
	render(t.stateOf(current))

	for {
		select {
		case <-ctx.Done():
			log.Trace("countdown stopped")
			return nil
		case <-t.refresh:
			if next, err := t.lookup(ctx); err == nil {
				current = next
			}
			render(t.stateOf(current))
		case <-ticker.C():
			if current == nil {
				continue
			}
			if current.StartTime.Sub(t.clock.Now()) <= 0 {
				// the displayed hackathon has started, roll over to the following one
				// on a failed lookup the old one stays and the next tick retries
				if next, err := t.lookup(ctx); err == nil {
					current = next
				}
			}
			render(t.stateOf(current))
		}
	}
}

func (t *Timer) lookup(ctx context.Context) (*hackathon.Hackathon, error) {
	next, ok, err := t.next.Next(ctx)
	if err != nil {
		log.Errorf("failed to find next hackathon: %v", err)
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &next, nil
}

func (t *Timer) stateOf(current *hackathon.Hackathon) State {
	if current == nil {
		return State{}
	}
	remaining := max(current.StartTime.Sub(t.clock.Now()), 0)
	return State{
		Event:     current,
		Remaining: remaining,
		Breakdown: Decompose(remaining),
	}
}

// Snapshot computes a single state without starting a timer.
func Snapshot(ctx context.Context, next NextFinder, clock utils.Clock) (State, error) {
	t := NewTimer(next, clock, time.Second, nil)
	current, err := t.lookup(ctx)
	if err != nil {
		return State{}, err
	}
	return t.stateOf(current), nil
}
