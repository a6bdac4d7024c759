package event_bus

import "time"

const (
	HackathonAddedType EventType = "hackathon.added"
)

type HackathonAdded struct {
	Id        string
	Name      string
	StartTime time.Time
	EndTime   time.Time
}
