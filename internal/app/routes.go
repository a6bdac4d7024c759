package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Hackathons
	r.HandleFunc("/api/hackathon", deps.HackathonHandler.ListHackathons).Methods("GET")
	r.HandleFunc("/api/hackathon", deps.HackathonHandler.CreateHackathon).Methods("POST")
	r.HandleFunc("/api/hackathon/next", deps.HackathonHandler.GetNextHackathon).Methods("GET")

	// Countdown
	r.HandleFunc("/api/hackathon/next/countdown", deps.CountdownHandler.GetCountdown).Methods("GET")
	r.HandleFunc("/api/hackathon/next/countdown/stream", deps.CountdownHandler.StreamCountdown).Methods("GET")

	// Calendar
	r.HandleFunc("/api/hackathon/calendar.ics", deps.CalendarHandler.ExportCalendar).Methods("GET")
}
