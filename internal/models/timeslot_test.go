package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeSlotStartHour(t *testing.T) {
	cases := []struct {
		slot TimeSlot
		hour int
	}{
		{SlotMorning, 8},
		{SlotAfternoon, 13},
		{SlotEvening, 18},
	}
	for _, tc := range cases {
		hour, err := tc.slot.StartHour()
		require.NoError(t, err)
		assert.Equal(t, tc.hour, hour)
	}

	_, err := TimeSlot("midnight").StartHour()
	assert.Error(t, err)
}

func TestTimeSlotRange(t *testing.T) {
	r, ok := SlotMorning.Range()
	require.True(t, ok)
	assert.Equal(t, "08:00 - 12:00", r)

	_, ok = TimeSlot("noon").Range()
	assert.False(t, ok)
}

func TestProfileOffersSlot(t *testing.T) {
	profile := &TeacherProfile{AvailabilitySlots: []string{"morning", "evening"}}
	assert.True(t, profile.OffersSlot(SlotMorning))
	assert.True(t, profile.OffersSlot(SlotEvening))
	assert.False(t, profile.OffersSlot(SlotAfternoon))

	var nilProfile *TeacherProfile
	assert.False(t, nilProfile.OffersSlot(SlotMorning))
}

func TestValidWeekday(t *testing.T) {
	assert.True(t, ValidWeekday("monday"))
	assert.True(t, ValidWeekday("sunday"))
	assert.False(t, ValidWeekday("Monday"))
	assert.False(t, ValidWeekday("someday"))
}
