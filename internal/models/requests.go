package models

// UpsertProfileRequest creates or replaces a teacher's public listing.
type UpsertProfileRequest struct {
	FullName          string     `json:"full_name" validate:"required,max=120"`
	Subject           string     `json:"subject" validate:"required,max=80"`
	Location          string     `json:"location" validate:"required,max=120"`
	LessonType        LessonType `json:"lesson_type" validate:"required,oneof=online face-to-face both"`
	HourlyRate        int        `json:"hourly_rate" validate:"required,gt=0"`
	Bio               string     `json:"bio" validate:"max=2000"`
	AvailabilityDays  []string   `json:"availability_days" validate:"required,min=1,dive,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	AvailabilitySlots []string   `json:"availability_slots" validate:"required,min=1,dive,oneof=morning afternoon evening"`
}

// CreateBookingRequest submits a lesson reservation against a teacher profile.
// Prices are never accepted from the client; they are derived from the
// teacher's hourly rate at submission time.
type CreateBookingRequest struct {
	TeacherID     string   `json:"teacher_id" validate:"required,uuid4"`
	Date          string   `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlot      TimeSlot `json:"time_slot" validate:"required,oneof=morning afternoon evening"`
	DurationHours int      `json:"duration_hours" validate:"required,min=1,max=8"`
	Message       *string  `json:"message,omitempty" validate:"omitempty,max=500"`
}

// QuoteRequest asks for a price breakdown without creating a booking.
type QuoteRequest struct {
	TeacherID     string `json:"teacher_id" validate:"required,uuid4"`
	DurationHours int    `json:"duration_hours" validate:"required,min=1,max=8"`
}
