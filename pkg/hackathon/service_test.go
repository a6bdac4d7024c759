package hackathon

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/klokku/hackathons/internal/event_bus"
	"github.com/klokku/hackathons/internal/storage"
	"github.com/klokku/hackathons/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServiceTest(t *testing.T) (*ServiceImpl, *storage.MemoryStorage, *event_bus.EventBus, *utils.MockClock) {
	s := storage.NewMemoryStorage()
	bus := event_bus.NewEventBus()
	clock := &utils.MockClock{FixedNow: baseTime}
	service := NewService(NewRepository(s, time.UTC), bus, clock)
	return service, s, bus, clock
}

func TestService_AddNValidRecords(t *testing.T) {
	service, _, _, _ := setupServiceTest(t)
	ctx := context.Background()
	offsets := []time.Duration{5 * time.Hour, -time.Hour, 2 * time.Hour, 0, 30 * time.Minute}

	for _, offset := range offsets {
		_, err := service.Add(ctx, createTestHackathon("event", baseTime.Add(offset)))
		require.NoError(t, err)
	}
	hackathons, err := service.List(ctx)

	require.NoError(t, err)
	assert.Len(t, hackathons, len(offsets))
	for i := 1; i < len(hackathons); i++ {
		assert.False(t, hackathons[i].StartTime.Before(hackathons[i-1].StartTime), "not sorted at %d", i)
	}
}

func TestService_AddRejectsMissingRequiredFields(t *testing.T) {
	testCases := []struct {
		name      string
		hackathon Hackathon
	}{
		{name: "empty name", hackathon: Hackathon{StartTime: baseTime, EndTime: baseTime.Add(time.Hour)}},
		{name: "no start", hackathon: Hackathon{Name: "x", EndTime: baseTime.Add(time.Hour)}},
		{name: "no end", hackathon: Hackathon{Name: "x", StartTime: baseTime}},
		{name: "nothing", hackathon: Hackathon{Organizer: "only optional", Url: "https://example.com"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			service, s, bus, _ := setupServiceTest(t)
			ctx := context.Background()
			_, err := service.Add(ctx, createTestHackathon("existing", baseTime.Add(time.Hour)))
			require.NoError(t, err)
			before, _, err := s.GetItem(ctx, StorageKey)
			require.NoError(t, err)
			published := false
			bus.Subscribe(event_bus.HackathonAddedType, func(event_bus.Event) error {
				published = true
				return nil
			})

			_, err = service.Add(ctx, tc.hackathon)

			assert.ErrorIs(t, err, ErrMissingRequiredFields)
			after, _, err := s.GetItem(ctx, StorageKey)
			require.NoError(t, err)
			assert.Equal(t, before, after)
			assert.False(t, published)
		})
	}
}

func TestService_AddPublishesEvent(t *testing.T) {
	service, _, bus, _ := setupServiceTest(t)
	var received []event_bus.HackathonAdded
	event_bus.SubscribeTyped(bus, event_bus.HackathonAddedType, func(e event_bus.EventT[event_bus.HackathonAdded]) error {
		received = append(received, e.Data)
		return nil
	})

	stored, err := service.Add(context.Background(), createTestHackathon("HackZurich", baseTime.Add(time.Hour)))

	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, stored.Id, received[0].Id)
	assert.Equal(t, "HackZurich", received[0].Name)
}

func TestService_AddSucceedsWhenSubscriberFails(t *testing.T) {
	service, _, bus, _ := setupServiceTest(t)
	bus.Subscribe(event_bus.HackathonAddedType, func(event_bus.Event) error {
		return errors.New("view gone")
	})

	_, err := service.Add(context.Background(), createTestHackathon("x", baseTime))

	assert.NoError(t, err)
}

func TestService_AddRepositoryError(t *testing.T) {
	repo := NewRepositoryStub()
	repo.Err = errors.New("disk full")
	service := NewService(repo, nil, &utils.MockClock{FixedNow: baseTime})

	_, err := service.Add(context.Background(), createTestHackathon("x", baseTime))

	assert.ErrorIs(t, err, repo.Err)
}

func TestService_Next(t *testing.T) {
	service, _, _, clock := setupServiceTest(t)
	ctx := context.Background()
	for _, h := range []Hackathon{
		createTestHackathon("past", baseTime.Add(-24*time.Hour)),
		createTestHackathon("now", baseTime),
		createTestHackathon("soon", baseTime.Add(time.Hour)),
		createTestHackathon("later", baseTime.Add(48*time.Hour)),
	} {
		_, err := service.Add(ctx, h)
		require.NoError(t, err)
	}

	next, ok, err := service.Next(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "soon", next.Name, "an event starting exactly now is not upcoming")

	clock.SetNow(baseTime.Add(time.Hour))
	next, ok, err = service.Next(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "later", next.Name)

	clock.SetNow(baseTime.Add(72 * time.Hour))
	_, ok, err = service.Next(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestService_NextEmpty(t *testing.T) {
	service, _, _, _ := setupServiceTest(t)

	_, ok, err := service.Next(context.Background())

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSelectNext(t *testing.T) {
	sorted := NewRepositoryStub(
		createTestHackathon("a", baseTime),
		createTestHackathon("b", baseTime.Add(time.Hour)),
		createTestHackathon("c", baseTime.Add(2*time.Hour)),
	).hackathons

	testCases := []struct {
		name   string
		now    time.Time
		want   string
		wantOk bool
	}{
		{name: "before all", now: baseTime.Add(-time.Minute), want: "a", wantOk: true},
		{name: "exactly at first start", now: baseTime, want: "b", wantOk: true},
		{name: "between", now: baseTime.Add(90 * time.Minute), want: "c", wantOk: true},
		{name: "after all", now: baseTime.Add(3 * time.Hour), wantOk: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := SelectNext(sorted, tc.now)
			assert.Equal(t, tc.wantOk, ok)
			assert.Equal(t, tc.want, got.Name)
		})
	}
}
