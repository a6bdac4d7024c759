package hackathon

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/klokku/hackathons/internal/rest"
	log "github.com/sirupsen/logrus"
)

type HackathonDTO struct {
	Id          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Organizer   string `json:"organizer,omitempty"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Url         string `json:"url,omitempty"`
	Description string `json:"description,omitempty"`
}

type Handler struct {
	service  Service
	location *time.Location
}

func NewHandler(service Service, location *time.Location) *Handler {
	return &Handler{service: service, location: location}
}

// ListHackathons godoc
// @Summary List hackathons
// @Description All stored hackathons sorted by start time
// @Tags Hackathon
// @Produce json
// @Success 200 {array} HackathonDTO
// @Router /api/hackathon [get]
func (h *Handler) ListHackathons(w http.ResponseWriter, r *http.Request) {
	log.Trace("Listing hackathons")
	hackathons, err := h.service.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]HackathonDTO, 0, len(hackathons))
	for _, hackathon := range hackathons {
		dtos = append(dtos, ToDTO(hackathon))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// CreateHackathon godoc
// @Summary Add a hackathon
// @Tags Hackathon
// @Accept json
// @Produce json
// @Param hackathon body HackathonDTO true "Hackathon"
// @Success 201 {object} HackathonDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/hackathon [post]
func (h *Handler) CreateHackathon(w http.ResponseWriter, r *http.Request) {
	var dto HackathonDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	log.Debugf("New hackathon request: %+v", dto)

	hackathon, err := FromDTO(dto, h.location)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid time format", err.Error())
		return
	}

	stored, err := h.service.Add(r.Context(), hackathon)
	if err != nil {
		if errors.Is(err, ErrMissingRequiredFields) {
			rest.WriteError(w, http.StatusBadRequest, RequiredFieldsMessage, err.Error())
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(ToDTO(stored)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetNextHackathon godoc
// @Summary The soonest upcoming hackathon
// @Tags Hackathon
// @Produce json
// @Success 200 {object} HackathonDTO
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/hackathon/next [get]
func (h *Handler) GetNextHackathon(w http.ResponseWriter, r *http.Request) {
	next, ok, err := h.service.Next(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		rest.WriteError(w, http.StatusNotFound, NoUpcomingEvents, "")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ToDTO(next)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func ToDTO(h Hackathon) HackathonDTO {
	return HackathonDTO{
		Id:          h.Id,
		Name:        h.Name,
		Organizer:   h.Organizer,
		StartTime:   h.StartTime.Format(time.RFC3339),
		EndTime:     h.EndTime.Format(time.RFC3339),
		Url:         h.Url,
		Description: h.Description,
	}
}

// FromDTO parses the DTO times; missing fields are left empty for the service to reject.
func FromDTO(dto HackathonDTO, location *time.Location) (Hackathon, error) {
	start, err := ParseTime(dto.StartTime, location)
	if err != nil {
		return Hackathon{}, err
	}
	end, err := ParseTime(dto.EndTime, location)
	if err != nil {
		return Hackathon{}, err
	}
	return Hackathon{
		Name:        dto.Name,
		Organizer:   dto.Organizer,
		StartTime:   start,
		EndTime:     end,
		Url:         dto.Url,
		Description: dto.Description,
	}, nil
}
