package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorhive/tutorhive-api/internal/models"
)

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "teacher_id", "student_id", "starts_at", "duration_hours", "lesson_type",
		"message", "lesson_price", "platform_fee", "total_price", "status", "created_at", "updated_at",
	}).AddRow(
		"b1", "t1", "s1", time.Date(2026, 9, 14, 8, 0, 0, 0, time.UTC), 2, "online",
		nil, 200, 20, 220, "pending", time.Now(), time.Now(),
	)
}

func TestBookingRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewBookingRepository(db)

	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(sqlmock.AnyArg(), "t1", "s1", sqlmock.AnyArg(), 2, "online",
			sqlmock.AnyArg(), 200, 20, 220, "pending", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	booking := &models.Booking{
		TeacherID:     "t1",
		StudentID:     "s1",
		StartsAt:      time.Date(2026, 9, 14, 8, 0, 0, 0, time.UTC),
		DurationHours: 2,
		LessonType:    models.LessonTypeOnline,
		LessonPrice:   200,
		PlatformFee:   20,
		TotalPrice:    220,
		Status:        models.BookingPending,
	}
	err := repo.Create(context.Background(), booking)
	require.NoError(t, err)
	assert.NotEmpty(t, booking.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewBookingRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT "+bookingColumns+" FROM bookings WHERE id = $1")).
		WithArgs("b1").
		WillReturnRows(bookingRows())

	booking, err := repo.FindByID(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, "b1", booking.ID)
	assert.Equal(t, 220, booking.TotalPrice)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepositoryListByStudent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewBookingRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT "+bookingColumns+" FROM bookings WHERE student_id = $1 ORDER BY starts_at DESC LIMIT 20 OFFSET 0")).
		WithArgs("s1").
		WillReturnRows(bookingRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM bookings WHERE student_id = $1")).
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	bookings, total, err := repo.ListByStudent(context.Background(), "s1", models.BookingFilter{})
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepositoryListByTeacherWithStatus(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewBookingRepository(db)

	status := models.BookingPending
	mock.ExpectQuery(regexp.QuoteMeta("SELECT "+bookingColumns+" FROM bookings WHERE teacher_id = $1 AND status = $2 ORDER BY starts_at DESC LIMIT 20 OFFSET 0")).
		WithArgs("t1", status).
		WillReturnRows(bookingRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM bookings WHERE teacher_id = $1 AND status = $2")).
		WithArgs("t1", status).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	bookings, total, err := repo.ListByTeacher(context.Background(), "t1", models.BookingFilter{Status: &status})
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepositoryUpdateStatus(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewBookingRepository(db)

	mock.ExpectExec("UPDATE bookings SET status").
		WithArgs("b1", models.BookingCancelled, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateStatus(context.Background(), "b1", models.BookingCancelled))
	assert.NoError(t, mock.ExpectationsWereMet())
}
