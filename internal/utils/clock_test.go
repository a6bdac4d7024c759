package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMockClock_AdvanceFiresTickers(t *testing.T) {
	start := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)
	clock := &MockClock{FixedNow: start}
	ticker := clock.NewTicker(time.Second)

	clock.Advance(time.Second)

	assert.Equal(t, start.Add(time.Second), clock.Now())
	select {
	case tick := <-ticker.C():
		assert.Equal(t, start.Add(time.Second), tick)
	default:
		t.Fatal("expected a tick")
	}
}

func TestMockClock_StoppedTickerDoesNotFire(t *testing.T) {
	clock := &MockClock{FixedNow: time.Now()}
	ticker := clock.NewTicker(time.Second)
	ticker.Stop()

	clock.Advance(time.Second)

	assert.Equal(t, 0, clock.Tickers())
	select {
	case <-ticker.C():
		t.Fatal("stopped ticker fired")
	default:
	}
}
