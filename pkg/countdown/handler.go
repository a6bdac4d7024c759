package countdown

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/klokku/hackathons/internal/event_bus"
	"github.com/klokku/hackathons/internal/utils"
	"github.com/klokku/hackathons/pkg/hackathon"
	log "github.com/sirupsen/logrus"
)

type CountdownDTO struct {
	Event       *hackathon.HackathonDTO `json:"event"`
	Message     string                  `json:"message,omitempty"`
	RemainingMs int64                   `json:"remainingMs"`
	Display     Padded                  `json:"display"`
}

type Handler struct {
	next     NextFinder
	clock    utils.Clock
	interval time.Duration
	eventBus *event_bus.EventBus
}

func NewHandler(next NextFinder, clock utils.Clock, interval time.Duration, eventBus *event_bus.EventBus) *Handler {
	return &Handler{next: next, clock: clock, interval: interval, eventBus: eventBus}
}

// GetCountdown godoc
// @Summary Time remaining until the next hackathon
// @Tags Countdown
// @Produce json
// @Success 200 {object} CountdownDTO
// @Router /api/hackathon/next/countdown [get]
func (h *Handler) GetCountdown(w http.ResponseWriter, r *http.Request) {
	state, err := Snapshot(r.Context(), h.next, h.clock)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(StateToDTO(state)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// StreamCountdown godoc
// @Summary Live countdown as Server-Sent Events
// @Description Sends a "countdown" event every interval until the client disconnects
// @Tags Countdown
// @Produce text/event-stream
// @Router /api/hackathon/next/countdown/stream [get]
func (h *Handler) StreamCountdown(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)
	// the stream outlives the server write timeout
	if err := rc.SetWriteDeadline(time.Time{}); err != nil {
		log.Tracef("cannot clear write deadline: %v", err)
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	log.Debug("Countdown stream opened")
	timer := NewTimer(h.next, h.clock, h.interval, h.eventBus)
	err := timer.Run(r.Context(), func(state State) {
		data, err := json.Marshal(StateToDTO(state))
		if err != nil {
			log.Errorf("failed to encode countdown: %v", err)
			return
		}
		if _, err := fmt.Fprintf(w, "event: countdown\ndata: %s\n\n", data); err != nil {
			log.Debugf("failed to write countdown: %v", err)
			return
		}
		if err := rc.Flush(); err != nil {
			log.Debugf("failed to flush countdown: %v", err)
		}
	})
	if err != nil {
		fmt.Fprintf(w, "event: error\ndata: %q\n\n", err.Error())
		_ = rc.Flush()
	}
	log.Debug("Countdown stream closed")
}

func StateToDTO(state State) CountdownDTO {
	if state.Empty() {
		return CountdownDTO{
			Message: hackathon.NoUpcomingEvents,
			Display: Placeholder,
		}
	}
	event := hackathon.ToDTO(*state.Event)
	return CountdownDTO{
		Event:       &event,
		RemainingMs: state.Remaining.Milliseconds(),
		Display:     state.Breakdown.Padded(),
	}
}
