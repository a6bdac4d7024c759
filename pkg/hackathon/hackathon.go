package hackathon

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Hackathon is a single tracked event. Organizer, Url and Description are optional.
type Hackathon struct {
	Id          string
	Name        string    `validate:"required"`
	Organizer   string
	StartTime   time.Time `validate:"required"`
	EndTime     time.Time `validate:"required"`
	Url         string
	Description string
}

// FormLayout is the layout of datetime-local form inputs, a wall clock time without offset.
const FormLayout = "2006-01-02T15:04"

var ErrInvalidTime = errors.New("invalid time")

// ParseTime accepts RFC3339 or FormLayout; the latter is read in loc.
// An empty value yields the zero time so that required-field validation reports it.
func ParseTime(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	for _, layout := range []string{FormLayout, "2006-01-02T15:04:05"} {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q is neither RFC3339 nor %s", ErrInvalidTime, value, FormLayout)
}
