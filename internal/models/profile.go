package models

import (
	"time"

	"github.com/lib/pq"
)

// TeacherProfile is a teacher's public marketplace listing.
type TeacherProfile struct {
	UserID            string         `db:"user_id" json:"user_id"`
	FullName          string         `db:"full_name" json:"full_name"`
	Subject           string         `db:"subject" json:"subject"`
	Location          string         `db:"location" json:"location"`
	LessonType        LessonType     `db:"lesson_type" json:"lesson_type"`
	HourlyRate        int            `db:"hourly_rate" json:"hourly_rate"`
	Bio               string         `db:"bio" json:"bio"`
	AvailabilityDays  pq.StringArray `db:"availability_days" json:"availability_days"`
	AvailabilitySlots pq.StringArray `db:"availability_slots" json:"availability_slots"`
	CreatedAt         time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at" json:"updated_at"`
}

// OffersSlot reports whether the profile advertises the given time slot.
func (p *TeacherProfile) OffersSlot(slot TimeSlot) bool {
	if p == nil {
		return false
	}
	for _, s := range p.AvailabilitySlots {
		if TimeSlot(s) == slot {
			return true
		}
	}
	return false
}

// ProfileFilter captures filtering options for browsing teacher profiles.
type ProfileFilter struct {
	Search     string
	Subject    string
	LessonType *LessonType
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}

// ViewerContext tells the caller which profile panels apply to them.
// A student who is not the owner may book; only the owner may edit.
type ViewerContext struct {
	CanBook bool `json:"can_book"`
	CanEdit bool `json:"can_edit"`
}

// TeacherProfileView is a profile decorated with the caller's viewer context.
type TeacherProfileView struct {
	TeacherProfile
	Viewer ViewerContext `json:"viewer"`
}
