package testutil

import (
	"time"

	"github.com/light-bringer/product-catalog/internal/pkg/clock"
)

// NewFixedClock creates a mock clock fixed at the given time.
func NewFixedClock(t time.Time) clock.Clock {
	return clock.NewMockClock(t)
}

// NewMockClock creates a mock clock that can be controlled in tests.
// It starts at a whole second in UTC so stored timestamps compare equal.
func NewMockClock() *clock.MockClock {
	return clock.NewMockClock(time.Now().UTC().Truncate(time.Second))
}
