package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/tutorhive/tutorhive-api/internal/models"
	appErrors "github.com/tutorhive/tutorhive-api/pkg/errors"
	"github.com/tutorhive/tutorhive-api/pkg/export"
)

// ExportService renders a teacher's received bookings as CSV.
type ExportService struct {
	bookings bookingRepository
	users    receiptUserReader
	logger   *zap.Logger
}

// NewExportService constructs an ExportService instance.
func NewExportService(bookings bookingRepository, users receiptUserReader, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{bookings: bookings, users: users, logger: logger}
}

// BookingsCSV exports all bookings received by the given teacher. Only the
// owning teacher or an admin may export.
func (s *ExportService) BookingsCSV(ctx context.Context, claims *models.JWTClaims, teacherID string) ([]byte, error) {
	if claims == nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "authentication required")
	}
	if claims.Role != models.RoleAdmin {
		if claims.UserID != teacherID {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "bookings belong to another teacher")
		}
		if claims.Role != models.RoleTeacher {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "only teachers can export their bookings")
		}
	}

	var rows []export.BookingRow
	names := map[string]string{}
	page := 1
	for {
		bookings, total, err := s.bookings.ListByTeacher(ctx, teacherID, models.BookingFilter{Page: page, PageSize: 100})
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list bookings for export")
		}
		for _, b := range bookings {
			rows = append(rows, export.BookingRow{
				ID:            b.ID,
				StudentName:   s.studentName(ctx, names, b.StudentID),
				StartsAt:      b.StartsAt,
				DurationHours: b.DurationHours,
				LessonType:    string(b.LessonType),
				Status:        string(b.Status),
				LessonPrice:   b.LessonPrice,
				PlatformFee:   b.PlatformFee,
				TotalPrice:    b.TotalPrice,
			})
		}
		if len(bookings) == 0 || len(rows) >= total {
			break
		}
		page++
	}

	data, err := export.BookingsCSV(rows)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render bookings csv")
	}
	return data, nil
}

func (s *ExportService) studentName(ctx context.Context, cache map[string]string, studentID string) string {
	if name, ok := cache[studentID]; ok {
		return name
	}
	name := studentID
	user, err := s.users.FindByID(ctx, studentID)
	if err == nil {
		name = user.FullName
	} else if !errors.Is(err, sql.ErrNoRows) {
		s.logger.Warn("failed to resolve student name for export", zap.String("student_id", studentID), zap.Error(err))
	}
	cache[studentID] = name
	return name
}
