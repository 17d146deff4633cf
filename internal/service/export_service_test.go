package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorhive/tutorhive-api/internal/models"
	appErrors "github.com/tutorhive/tutorhive-api/pkg/errors"
)

type mockUserReader struct {
	users map[string]*models.User
}

func (m *mockUserReader) FindByID(ctx context.Context, id string) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

func TestExportBookingsCSV(t *testing.T) {
	repo := &mockBookingRepo{
		listed: []models.Booking{
			{
				ID:            "bk-1",
				TeacherID:     testTeacherID,
				StudentID:     testStudentID,
				StartsAt:      time.Date(2025, 3, 17, 18, 0, 0, 0, time.UTC),
				DurationHours: 2,
				LessonType:    models.LessonTypeOnline,
				Status:        models.BookingPending,
				LessonPrice:   200,
				PlatformFee:   20,
				TotalPrice:    220,
			},
		},
		listedTotal: 1,
	}
	users := &mockUserReader{users: map[string]*models.User{
		testStudentID: {ID: testStudentID, FullName: "Rui Costa"},
	}}
	svc := NewExportService(repo, users, nil)

	data, err := svc.BookingsCSV(context.Background(), &models.JWTClaims{UserID: testTeacherID, Role: models.RoleTeacher}, testTeacherID)
	require.NoError(t, err)

	csv := string(data)
	lines := strings.Split(strings.TrimSpace(csv), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "booking_id")
	assert.Contains(t, lines[1], "bk-1")
	assert.Contains(t, lines[1], "Rui Costa")
	assert.Contains(t, lines[1], "220")
}

func TestExportBookingsCSVStudentForbidden(t *testing.T) {
	svc := NewExportService(&mockBookingRepo{}, &mockUserReader{}, nil)

	_, err := svc.BookingsCSV(context.Background(), studentClaims(), testTeacherID)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestExportBookingsCSVUnknownStudentFallsBackToID(t *testing.T) {
	repo := &mockBookingRepo{
		listed:      []models.Booking{{ID: "bk-2", TeacherID: testTeacherID, StudentID: "ghost"}},
		listedTotal: 1,
	}
	svc := NewExportService(repo, &mockUserReader{}, nil)

	data, err := svc.BookingsCSV(context.Background(), &models.JWTClaims{UserID: testTeacherID, Role: models.RoleTeacher}, testTeacherID)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ghost")
}
