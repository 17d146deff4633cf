package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingsCSV(t *testing.T) {
	starts := time.Date(2026, 9, 14, 8, 0, 0, 0, time.UTC)
	out, err := BookingsCSV([]BookingRow{
		{
			ID:            "b-1",
			StudentName:   "Student One",
			StartsAt:      starts,
			DurationHours: 2,
			LessonType:    "online",
			Status:        "pending",
			LessonPrice:   200,
			PlatformFee:   20,
			TotalPrice:    220,
		},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "booking_id")
	assert.Contains(t, lines[1], "b-1")
	assert.Contains(t, lines[1], "2026-09-14T08:00:00Z")
	assert.Contains(t, lines[1], "220")
}

func TestBookingsCSVEmpty(t *testing.T) {
	out, err := BookingsCSV(nil)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(bookingsCSVHeader, ","), strings.TrimSpace(string(out)))
}
