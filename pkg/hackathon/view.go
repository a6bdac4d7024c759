package hackathon

import (
	"strings"
	"time"
)

const (
	NoHackathons     = "No hackathons or events added yet"
	NoUpcomingEvents = "No upcoming events"
)

// DateTimeLayout renders e.g. "Sat, Mar 1, 10:00 AM".
const DateTimeLayout = "Mon, Jan 2, 03:04 PM"

func FormatDateTime(t time.Time, location *time.Location) string {
	if location != nil {
		t = t.In(location)
	}
	return t.Format(DateTimeLayout)
}

// RenderCard renders one hackathon as a plain text card, skipping the optional lines that are empty.
func RenderCard(h Hackathon, location *time.Location) string {
	var b strings.Builder
	b.WriteString(h.Name)
	b.WriteString("\n")
	if h.Organizer != "" {
		b.WriteString("Organized by " + h.Organizer + "\n")
	}
	b.WriteString(FormatDateTime(h.StartTime, location) + " - " + FormatDateTime(h.EndTime, location) + "\n")
	if h.Description != "" {
		b.WriteString(h.Description + "\n")
	}
	if h.Url != "" {
		b.WriteString("Visit Event Page: " + h.Url + "\n")
	}
	return b.String()
}

func RenderList(hackathons []Hackathon, location *time.Location) string {
	if len(hackathons) == 0 {
		return NoHackathons + "\n"
	}
	cards := make([]string, 0, len(hackathons))
	for _, h := range hackathons {
		cards = append(cards, RenderCard(h, location))
	}
	return strings.Join(cards, "\n")
}
