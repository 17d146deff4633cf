package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"
)

// BookingRow is one exported line of a teacher's received bookings.
type BookingRow struct {
	ID            string
	StudentName   string
	StartsAt      time.Time
	DurationHours int
	LessonType    string
	Status        string
	LessonPrice   int
	PlatformFee   int
	TotalPrice    int
}

var bookingsCSVHeader = []string{
	"booking_id", "student", "starts_at", "duration_hours",
	"lesson_type", "status", "lesson_price", "platform_fee", "total_price",
}

// BookingsCSV renders booking rows into CSV bytes for teacher-side exports.
func BookingsCSV(rows []BookingRow) ([]byte, error) {
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(bookingsCSVHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.ID,
			row.StudentName,
			row.StartsAt.UTC().Format(time.RFC3339),
			strconv.Itoa(row.DurationHours),
			row.LessonType,
			row.Status,
			strconv.Itoa(row.LessonPrice),
			strconv.Itoa(row.PlatformFee),
			strconv.Itoa(row.TotalPrice),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
