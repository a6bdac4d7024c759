package calendar

import (
	"errors"
	"io"
	"time"

	"github.com/emersion/go-ical"
	"github.com/klokku/hackathons/pkg/hackathon"
)

const (
	productId = "-//klokku//hackathons//EN"
	// Category marks every exported event, mirroring the platform tag of the calendar widget.
	Category = "hackathon"
)

var ErrNothingToExport = errors.New("no hackathons to export")

// NewCalendar builds a VCALENDAR with one VEVENT per hackathon. stamp is used as DTSTAMP.
func NewCalendar(hackathons []hackathon.Hackathon, stamp time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productId)
	for _, h := range hackathons {
		cal.Children = append(cal.Children, eventComponent(h, stamp))
	}
	return cal
}

func eventComponent(h hackathon.Hackathon, stamp time.Time) *ical.Component {
	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, h.Id)
	ve.Props.SetText(ical.PropSummary, h.Name)
	ve.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
	ve.Props.SetDateTime(ical.PropDateTimeStart, h.StartTime.UTC())
	ve.Props.SetDateTime(ical.PropDateTimeEnd, h.EndTime.UTC())
	ve.Props.SetText(ical.PropCategories, Category)

	description := h.Description
	if h.Organizer != "" {
		if description != "" {
			description = "Organized by " + h.Organizer + "\n\n" + description
		} else {
			description = "Organized by " + h.Organizer
		}
	}
	if description != "" {
		ve.Props.SetText(ical.PropDescription, description)
	}
	if h.Url != "" {
		p := ical.NewProp(ical.PropURL)
		p.Value = h.Url
		ve.Props.Set(p)
	}
	return ve
}

// Export writes all hackathons as a single iCalendar stream.
func Export(w io.Writer, hackathons []hackathon.Hackathon, stamp time.Time) error {
	if len(hackathons) == 0 {
		return ErrNothingToExport
	}
	return ical.NewEncoder(w).Encode(NewCalendar(hackathons, stamp))
}
