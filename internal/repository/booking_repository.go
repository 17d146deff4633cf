package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tutorhive/tutorhive-api/internal/models"
)

const bookingColumns = "id, teacher_id, student_id, starts_at, duration_hours, lesson_type, message, lesson_price, platform_fee, total_price, status, created_at, updated_at"

// BookingRepository manages persistence for lesson reservations.
type BookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository constructs a BookingRepository.
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create inserts a new booking record.
func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = now
	}
	booking.UpdatedAt = now

	const query = `INSERT INTO bookings (id, teacher_id, student_id, starts_at, duration_hours, lesson_type, message, lesson_price, platform_fee, total_price, status, created_at, updated_at)
		VALUES (:id, :teacher_id, :student_id, :starts_at, :duration_hours, :lesson_type, :message, :lesson_price, :platform_fee, :total_price, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, booking); err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

// FindByID fetches a booking by ID.
func (r *BookingRepository) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	query := fmt.Sprintf("SELECT %s FROM bookings WHERE id = $1", bookingColumns)
	var booking models.Booking
	if err := r.db.GetContext(ctx, &booking, query, id); err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListByStudent returns bookings submitted by the given student.
func (r *BookingRepository) ListByStudent(ctx context.Context, studentID string, filter models.BookingFilter) ([]models.Booking, int, error) {
	return r.list(ctx, "student_id", studentID, filter)
}

// ListByTeacher returns bookings received by the given teacher.
func (r *BookingRepository) ListByTeacher(ctx context.Context, teacherID string, filter models.BookingFilter) ([]models.Booking, int, error) {
	return r.list(ctx, "teacher_id", teacherID, filter)
}

func (r *BookingRepository) list(ctx context.Context, column, ownerID string, filter models.BookingFilter) ([]models.Booking, int, error) {
	base := fmt.Sprintf("FROM bookings WHERE %s = $1", column)
	args := []interface{}{ownerID}

	var conditions []string
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, *filter.Status)
	}
	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY starts_at DESC LIMIT %d OFFSET %d", bookingColumns, base, size, offset)
	var bookings []models.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list bookings: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count bookings: %w", err)
	}

	return bookings, total, nil
}

// UpdateStatus transitions a booking to the given status.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error {
	const query = `UPDATE bookings SET status = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, status, time.Now().UTC()); err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	return nil
}
