package models

import "time"

// BookingStatus tracks the lifecycle of a lesson reservation.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking represents a lesson reservation awaiting confirmation.
// Price fields are derived server-side: total_price = lesson_price + platform_fee.
type Booking struct {
	ID            string        `db:"id" json:"id"`
	TeacherID     string        `db:"teacher_id" json:"teacher_id"`
	StudentID     string        `db:"student_id" json:"student_id"`
	StartsAt      time.Time     `db:"starts_at" json:"starts_at"`
	DurationHours int           `db:"duration_hours" json:"duration_hours"`
	LessonType    LessonType    `db:"lesson_type" json:"lesson_type"`
	Message       *string       `db:"message" json:"message,omitempty"`
	LessonPrice   int           `db:"lesson_price" json:"lesson_price"`
	PlatformFee   int           `db:"platform_fee" json:"platform_fee"`
	TotalPrice    int           `db:"total_price" json:"total_price"`
	Status        BookingStatus `db:"status" json:"status"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`
}

// BookingFilter captures filtering options for listing bookings.
type BookingFilter struct {
	Status   *BookingStatus
	Page     int
	PageSize int
}
