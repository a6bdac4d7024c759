package countdown

import (
	"fmt"
	"time"
)

// Unit sizes in milliseconds used for the breakdown.
const (
	msPerDay    = 86400000
	msPerHour   = 3600000
	msPerMinute = 60000
	msPerSecond = 1000
)

type Breakdown struct {
	Days    int64
	Hours   int64
	Minutes int64
	Seconds int64
}

// Decompose splits a remaining duration into whole days, hours, minutes and seconds,
// truncating the sub-second rest. Durations at or below zero give an all-zero breakdown.
func Decompose(delta time.Duration) Breakdown {
	ms := delta.Milliseconds()
	if ms <= 0 {
		return Breakdown{}
	}
	return Breakdown{
		Days:    ms / msPerDay,
		Hours:   (ms % msPerDay) / msPerHour,
		Minutes: (ms % msPerHour) / msPerMinute,
		Seconds: (ms % msPerMinute) / msPerSecond,
	}
}

type Padded struct {
	Days    string `json:"days"`
	Hours   string `json:"hours"`
	Minutes string `json:"minutes"`
	Seconds string `json:"seconds"`
}

// Placeholder is shown in every unit when nothing is upcoming.
var Placeholder = Padded{Days: "--", Hours: "--", Minutes: "--", Seconds: "--"}

// Padded zero-pads every unit to two digits. Larger day counts keep all their digits.
func (b Breakdown) Padded() Padded {
	return Padded{
		Days:    pad(b.Days),
		Hours:   pad(b.Hours),
		Minutes: pad(b.Minutes),
		Seconds: pad(b.Seconds),
	}
}

func (b Breakdown) String() string {
	return b.Padded().String()
}

func (p Padded) String() string {
	return fmt.Sprintf("%s Days %s Hours %s Minutes %s Seconds", p.Days, p.Hours, p.Minutes, p.Seconds)
}

func pad(v int64) string {
	return fmt.Sprintf("%02d", v)
}
