package shared_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/ficsit-planner-go/internal/domain/shared"
)

func TestManualClock_Advance(t *testing.T) {
	// Arrange
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := shared.NewManualClock(start)

	// Act
	clock.Advance(90 * time.Second)

	// Assert
	assert.Equal(t, start.Add(90*time.Second), clock.Now())
}

func TestSystemClock_ReportsUTC(t *testing.T) {
	now := shared.SystemClock().Now()

	assert.Equal(t, time.UTC, now.Location())
	assert.WithinDuration(t, time.Now(), now, time.Minute)
}
