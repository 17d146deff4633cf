package models

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeSlot identifies one of the fixed daily windows a teacher can offer.
type TimeSlot string

const (
	SlotMorning   TimeSlot = "morning"
	SlotAfternoon TimeSlot = "afternoon"
	SlotEvening   TimeSlot = "evening"
)

// slotRanges maps each slot to its wall-clock range. This table is the single
// source of truth for slot boundaries; booking start times derive from it.
var slotRanges = map[TimeSlot]string{
	SlotMorning:   "08:00 - 12:00",
	SlotAfternoon: "13:00 - 17:00",
	SlotEvening:   "18:00 - 21:00",
}

// Valid reports whether the slot is one of the supported windows.
func (s TimeSlot) Valid() bool {
	_, ok := slotRanges[s]
	return ok
}

// Range returns the slot's wall-clock range label, e.g. "08:00 - 12:00".
func (s TimeSlot) Range() (string, bool) {
	r, ok := slotRanges[s]
	return r, ok
}

// StartHour parses the opening hour out of the slot's range label.
func (s TimeSlot) StartHour() (int, error) {
	r, ok := slotRanges[s]
	if !ok {
		return 0, fmt.Errorf("unknown time slot %q", string(s))
	}
	start := strings.SplitN(r, " - ", 2)[0]
	hour, err := strconv.Atoi(strings.SplitN(start, ":", 2)[0])
	if err != nil {
		return 0, fmt.Errorf("parse slot start %q: %w", start, err)
	}
	return hour, nil
}

// Weekdays lists the lowercase day names accepted in availability payloads.
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// ValidWeekday reports whether the given day name is a recognised weekday.
func ValidWeekday(day string) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}
