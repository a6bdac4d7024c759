package hackathon

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/klokku/hackathons/internal/event_bus"
	"github.com/klokku/hackathons/internal/utils"
	log "github.com/sirupsen/logrus"
)

var ErrMissingRequiredFields = errors.New("missing required fields")

// RequiredFieldsMessage is shown to the user when an add is rejected for missing fields.
const RequiredFieldsMessage = "Please fill in all required fields (Name, Start Time, End Time)"

type Service interface {
	Add(ctx context.Context, hackathon Hackathon) (Hackathon, error)
	List(ctx context.Context) ([]Hackathon, error)
	// Next returns the soonest hackathon starting after now; false when there is none.
	Next(ctx context.Context) (Hackathon, bool, error)
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
	clock    utils.Clock
	validate *validator.Validate
}

func NewService(repo Repository, eventBus *event_bus.EventBus, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{
		repo:     repo,
		eventBus: eventBus,
		clock:    clock,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (s *ServiceImpl) Add(ctx context.Context, hackathon Hackathon) (Hackathon, error) {
	if err := s.validate.Struct(hackathon); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			log.Debugf("rejecting hackathon %q: %v", hackathon.Name, validationErrors)
			return Hackathon{}, fmt.Errorf("%w: %v", ErrMissingRequiredFields, validationErrors)
		}
		return Hackathon{}, err
	}

	stored, err := s.repo.Add(ctx, hackathon)
	if err != nil {
		return Hackathon{}, fmt.Errorf("failed to add hackathon: %w", err)
	}
	log.Infof("Added hackathon %q starting %s", stored.Name, stored.StartTime.Format(time.RFC3339))

	if s.eventBus != nil {
		err := s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.HackathonAddedType, event_bus.HackathonAdded{
			Id:        stored.Id,
			Name:      stored.Name,
			StartTime: stored.StartTime,
			EndTime:   stored.EndTime,
		}))
		if err != nil {
			// the hackathon is already stored, subscribers only refresh views
			log.Warnf("failed to publish hackathon added event: %v", err)
		}
	}
	return stored, nil
}

func (s *ServiceImpl) List(ctx context.Context) ([]Hackathon, error) {
	return s.repo.List(ctx)
}

func (s *ServiceImpl) Next(ctx context.Context) (Hackathon, bool, error) {
	hackathons, err := s.repo.List(ctx)
	if err != nil {
		return Hackathon{}, false, err
	}
	next, ok := SelectNext(hackathons, s.clock.Now())
	return next, ok, nil
}

// SelectNext returns the first hackathon of a start-time sorted slice that starts strictly after now.
func SelectNext(sorted []Hackathon, now time.Time) (Hackathon, bool) {
	for _, h := range sorted {
		if h.StartTime.After(now) {
			return h, true
		}
	}
	return Hackathon{}, false
}
