package calendar

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/klokku/hackathons/internal/rest"
	"github.com/klokku/hackathons/internal/utils"
	"github.com/klokku/hackathons/pkg/hackathon"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	hackathons hackathon.Service
	clock      utils.Clock
}

func NewHandler(hackathons hackathon.Service, clock utils.Clock) *Handler {
	return &Handler{hackathons: hackathons, clock: clock}
}

// ExportCalendar godoc
// @Summary All hackathons as an iCalendar file
// @Tags Calendar
// @Produce text/calendar
// @Success 200 {string} string
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/hackathon/calendar.ics [get]
func (h *Handler) ExportCalendar(w http.ResponseWriter, r *http.Request) {
	hackathons, err := h.hackathons.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var b bytes.Buffer
	if err := Export(&b, hackathons, h.clock.Now()); err != nil {
		if errors.Is(err, ErrNothingToExport) {
			rest.WriteError(w, http.StatusNotFound, hackathon.NoHackathons, "")
			return
		}
		log.Errorf("failed to encode calendar: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="hackathons.ics"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(b.Bytes()); err != nil {
		log.Debugf("failed to write calendar: %v", err)
	}
}
