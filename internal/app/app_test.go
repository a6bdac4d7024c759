package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/klokku/hackathons/internal/config"
	"github.com/klokku/hackathons/internal/event_bus"
	"github.com/klokku/hackathons/internal/storage"
	"github.com/klokku/hackathons/internal/utils"
	"github.com/klokku/hackathons/pkg/countdown"
	"github.com/klokku/hackathons/pkg/hackathon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func setupRouter(t *testing.T) (*mux.Router, *storage.MemoryStorage) {
	cfg := config.Defaults()
	cfg.Timezone = "UTC"
	s := storage.NewMemoryStorage()
	deps := BuildDependencies(s, cfg, event_bus.NewEventBus(), &utils.MockClock{FixedNow: now})
	return NewRouter(deps), s
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}
	req := httptest.NewRequest(method, path, &payload)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoutes_AddListAndNext(t *testing.T) {
	r, s := setupRouter(t)

	for _, dto := range []hackathon.HackathonDTO{
		{Name: "Later", StartTime: "2025-03-10T09:00", EndTime: "2025-03-11T09:00"},
		{Name: "Past", StartTime: "2025-02-10T09:00", EndTime: "2025-02-11T09:00"},
		{Name: "Sooner", Organizer: "MLH", StartTime: "2025-03-02T09:00:00Z", EndTime: "2025-03-03T09:00:00Z"},
	} {
		w := do(t, r, http.MethodPost, "/api/hackathon", dto)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := do(t, r, http.MethodGet, "/api/hackathon", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []hackathon.HackathonDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&list))
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Past", "Sooner", "Later"}, []string{list[0].Name, list[1].Name, list[2].Name})

	w = do(t, r, http.MethodGet, "/api/hackathon/next", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var next hackathon.HackathonDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&next))
	assert.Equal(t, "Sooner", next.Name)

	raw, found, err := s.GetItem(t.Context(), hackathon.StorageKey)
	require.NoError(t, err)
	require.True(t, found)
	assert.Contains(t, raw, `"organizer":"MLH"`)
}

func TestRoutes_Countdown(t *testing.T) {
	r, _ := setupRouter(t)
	w := do(t, r, http.MethodPost, "/api/hackathon", hackathon.HackathonDTO{
		Name: "HackMIT", StartTime: "2025-03-02T11:01:01Z", EndTime: "2025-03-03T10:00:00Z",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, r, http.MethodGet, "/api/hackathon/next/countdown", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var dto countdown.CountdownDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&dto))
	assert.Equal(t, countdown.Padded{Days: "01", Hours: "01", Minutes: "01", Seconds: "01"}, dto.Display)
}

func TestRoutes_MissingFieldsRejected(t *testing.T) {
	r, s := setupRouter(t)

	w := do(t, r, http.MethodPost, "/api/hackathon", hackathon.HackathonDTO{Name: "No dates"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	_, found, err := s.GetItem(t.Context(), hackathon.StorageKey)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRoutes_NoUpcomingAndEmptyCalendar(t *testing.T) {
	r, _ := setupRouter(t)

	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/api/hackathon/next", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/api/hackathon/calendar.ics", nil).Code)
}

func TestRoutes_CalendarExport(t *testing.T) {
	r, _ := setupRouter(t)
	do(t, r, http.MethodPost, "/api/hackathon", hackathon.HackathonDTO{
		Name: "HackMIT", StartTime: "2025-03-02T09:00", EndTime: "2025-03-03T09:00",
	})

	w := do(t, r, http.MethodGet, "/api/hackathon/calendar.ics", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "SUMMARY:HackMIT"))
}

func TestRoutes_MethodNotAllowed(t *testing.T) {
	r, _ := setupRouter(t)

	w := do(t, r, http.MethodDelete, "/api/hackathon", nil)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
