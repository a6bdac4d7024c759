package hackathon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/klokku/hackathons/internal/storage"
	log "github.com/sirupsen/logrus"
)

// StorageKey is the single storage key holding the JSON array of all hackathons.
const StorageKey = "hackathons"

var ErrCorruptStorage = errors.New("stored hackathons cannot be decoded")

type Repository interface {
	Add(ctx context.Context, hackathon Hackathon) (Hackathon, error)
	List(ctx context.Context) ([]Hackathon, error)
}

type RepositoryImpl struct {
	// serializes read-modify-write cycles of the stored array
	mu       sync.Mutex
	storage  storage.Storage
	location *time.Location
	newId    func() (string, error)
}

func NewRepository(s storage.Storage, location *time.Location) *RepositoryImpl {
	if location == nil {
		location = time.Local
	}
	return &RepositoryImpl{storage: s, location: location, newId: newUUID}
}

func newUUID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

type storedHackathon struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Organizer   string `json:"organizer,omitempty"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Url         string `json:"url,omitempty"`
	Description string `json:"description,omitempty"`
}

// Add assigns an id, appends the hackathon, re-sorts by start time and persists the whole collection.
func (r *RepositoryImpl) Add(ctx context.Context, hackathon Hackathon) (Hackathon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	hackathons, err := r.load(ctx)
	if err != nil {
		return Hackathon{}, err
	}

	id, err := r.newId()
	if err != nil {
		return Hackathon{}, fmt.Errorf("could not generate id: %w", err)
	}
	hackathon.Id = id
	hackathons = append(hackathons, hackathon)
	SortByStartTime(hackathons)

	if err := r.save(ctx, hackathons); err != nil {
		return Hackathon{}, err
	}
	return hackathon, nil
}

// List returns the stored collection, or an empty one when nothing was stored yet.
func (r *RepositoryImpl) List(ctx context.Context) ([]Hackathon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *RepositoryImpl) load(ctx context.Context) ([]Hackathon, error) {
	value, ok, err := r.storage.GetItem(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("could not read hackathons: %w", err)
	}
	if !ok {
		return []Hackathon{}, nil
	}

	var stored []storedHackathon
	if err := json.Unmarshal([]byte(value), &stored); err != nil {
		err := fmt.Errorf("%w: %v", ErrCorruptStorage, err)
		log.Error(err)
		return nil, err
	}

	hackathons := make([]Hackathon, 0, len(stored))
	for _, s := range stored {
		h, err := r.fromStored(s)
		if err != nil {
			err := fmt.Errorf("%w: hackathon %q: %v", ErrCorruptStorage, s.Id, err)
			log.Error(err)
			return nil, err
		}
		hackathons = append(hackathons, h)
	}
	return hackathons, nil
}

func (r *RepositoryImpl) save(ctx context.Context, hackathons []Hackathon) error {
	stored := make([]storedHackathon, 0, len(hackathons))
	for _, h := range hackathons {
		stored = append(stored, toStored(h))
	}
	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("could not encode hackathons: %w", err)
	}
	if err := r.storage.SetItem(ctx, StorageKey, string(data)); err != nil {
		return fmt.Errorf("could not store hackathons: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) fromStored(s storedHackathon) (Hackathon, error) {
	start, err := ParseTime(s.StartTime, r.location)
	if err != nil {
		return Hackathon{}, err
	}
	end, err := ParseTime(s.EndTime, r.location)
	if err != nil {
		return Hackathon{}, err
	}
	return Hackathon{
		Id:          s.Id,
		Name:        s.Name,
		Organizer:   s.Organizer,
		StartTime:   start,
		EndTime:     end,
		Url:         s.Url,
		Description: s.Description,
	}, nil
}

func toStored(h Hackathon) storedHackathon {
	return storedHackathon{
		Id:          h.Id,
		Name:        h.Name,
		Organizer:   h.Organizer,
		StartTime:   h.StartTime.Format(time.RFC3339),
		EndTime:     h.EndTime.Format(time.RFC3339),
		Url:         h.Url,
		Description: h.Description,
	}
}

// SortByStartTime orders hackathons by start time, keeping insertion order for equal starts.
func SortByStartTime(hackathons []Hackathon) {
	slices.SortStableFunc(hackathons, func(a, b Hackathon) int {
		return a.StartTime.Compare(b.StartTime)
	})
}
