package countdown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDecompose(t *testing.T) {
	testCases := []struct {
		name  string
		delta time.Duration
		want  Breakdown
	}{
		{
			name:  "one of each unit",
			delta: 90_061_001 * time.Millisecond,
			want:  Breakdown{Days: 1, Hours: 1, Minutes: 1, Seconds: 1},
		},
		{
			name:  "sub-second rest is truncated",
			delta: 1999 * time.Millisecond,
			want:  Breakdown{Seconds: 1},
		},
		{
			name:  "just under a day",
			delta: 24*time.Hour - time.Millisecond,
			want:  Breakdown{Hours: 23, Minutes: 59, Seconds: 59},
		},
		{
			name:  "many days",
			delta: 123*24*time.Hour + 4*time.Hour,
			want:  Breakdown{Days: 123, Hours: 4},
		},
		{name: "zero", delta: 0, want: Breakdown{}},
		{name: "negative", delta: -5 * time.Second, want: Breakdown{}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Decompose(tc.delta))
		})
	}
}

func TestBreakdown_Padded(t *testing.T) {
	assert.Equal(t, Padded{Days: "01", Hours: "01", Minutes: "01", Seconds: "01"},
		Breakdown{Days: 1, Hours: 1, Minutes: 1, Seconds: 1}.Padded())
	assert.Equal(t, Padded{Days: "123", Hours: "00", Minutes: "10", Seconds: "59"},
		Breakdown{Days: 123, Minutes: 10, Seconds: 59}.Padded())
}

func TestBreakdown_String(t *testing.T) {
	assert.Equal(t, "02 Days 03 Hours 04 Minutes 05 Seconds",
		Breakdown{Days: 2, Hours: 3, Minutes: 4, Seconds: 5}.String())
	assert.Equal(t, "-- Days -- Hours -- Minutes -- Seconds", Placeholder.String())
}
