package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/tutorhive/tutorhive-api/internal/models"
	appErrors "github.com/tutorhive/tutorhive-api/pkg/errors"
)

type bookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	FindByID(ctx context.Context, id string) (*models.Booking, error)
	ListByStudent(ctx context.Context, studentID string, filter models.BookingFilter) ([]models.Booking, int, error)
	ListByTeacher(ctx context.Context, teacherID string, filter models.BookingFilter) ([]models.Booking, int, error)
	UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error
}

type bookingProfileReader interface {
	FindByUserID(ctx context.Context, userID string) (*models.TeacherProfile, error)
}

type bookingNotifier interface {
	NotifyBookingCreated(booking *models.Booking) error
}

// BookingService provides lesson booking use cases.
type BookingService struct {
	bookings  bookingRepository
	profiles  bookingProfileReader
	audit     profileAuditor
	notifier  bookingNotifier
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewBookingService constructs a BookingService instance.
func NewBookingService(bookings bookingRepository, profiles bookingProfileReader, audit profileAuditor, notifier bookingNotifier, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *BookingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &BookingService{
		bookings:  bookings,
		profiles:  profiles,
		audit:     audit,
		notifier:  notifier,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Quote derives a price breakdown for a prospective booking without creating
// one. A teacher without a published profile quotes as zero.
func (s *BookingService) Quote(ctx context.Context, req models.QuoteRequest) (*Quote, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid quote payload")
	}

	profile, err := s.profiles.FindByUserID(ctx, req.TeacherID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			quote := Quote{}
			return &quote, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch teacher profile")
	}

	quote := CalculateQuote(profile.HourlyRate, req.DurationHours)
	return &quote, nil
}

// Create validates and persists a lesson booking on behalf of a student.
// Prices are derived from the teacher's current hourly rate; the lesson type
// is collapsed from the profile's advertised mode.
func (s *BookingService) Create(ctx context.Context, claims *models.JWTClaims, req models.CreateBookingRequest) (*models.Booking, error) {
	if claims == nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "authentication required")
	}
	if claims.Role != models.RoleStudent {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only students can book lessons")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid booking payload")
	}
	if req.TeacherID == claims.UserID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "cannot book your own profile")
	}

	profile, err := s.profiles.FindByUserID(ctx, req.TeacherID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher profile not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch teacher profile")
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must be formatted as YYYY-MM-DD")
	}
	today := s.now().Truncate(24 * time.Hour)
	if date.Before(today) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "booking date cannot be in the past")
	}

	weekday := strings.ToLower(date.Weekday().String())
	if !containsString(profile.AvailabilityDays, weekday) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "teacher is not available on the requested day")
	}
	if !profile.OffersSlot(req.TimeSlot) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "teacher is not available in the requested time slot")
	}

	startHour, err := req.TimeSlot.StartHour()
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown time slot")
	}
	startsAt := time.Date(date.Year(), date.Month(), date.Day(), startHour, 0, 0, 0, time.UTC)

	quote := CalculateQuote(profile.HourlyRate, req.DurationHours)

	booking := &models.Booking{
		TeacherID:     req.TeacherID,
		StudentID:     claims.UserID,
		StartsAt:      startsAt,
		DurationHours: req.DurationHours,
		LessonType:    models.CollapseLessonType(profile.LessonType),
		Message:       req.Message,
		LessonPrice:   quote.LessonPrice,
		PlatformFee:   quote.PlatformFee,
		TotalPrice:    quote.Total,
		Status:        models.BookingPending,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create booking")
	}

	s.metrics.RecordBookingCreated()

	if s.notifier != nil {
		if err := s.notifier.NotifyBookingCreated(booking); err != nil {
			s.logger.Warn("failed to enqueue booking notification", zap.String("booking_id", booking.ID), zap.Error(err))
		}
	}

	if s.audit != nil {
		payload, _ := json.Marshal(map[string]interface{}{"teacher_id": booking.TeacherID, "total_price": booking.TotalPrice})
		if err := s.audit.CreateAuditLog(ctx, &models.AuditLog{
			UserID:     &claims.UserID,
			Action:     models.AuditActionBookingCreate,
			Resource:   "bookings",
			ResourceID: &booking.ID,
			NewValues:  payload,
		}); err != nil {
			s.logger.Warn("failed to record booking audit log", zap.Error(err))
		}
	}

	return booking, nil
}

// Get loads a booking visible to the calling party.
func (s *BookingService) Get(ctx context.Context, claims *models.JWTClaims, id string) (*models.Booking, error) {
	if claims == nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "authentication required")
	}
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "booking not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch booking")
	}
	if !s.isParty(claims, booking) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "booking belongs to another user")
	}
	return booking, nil
}

// List returns the caller's bookings: submitted ones for students, received
// ones for teachers.
func (s *BookingService) List(ctx context.Context, claims *models.JWTClaims, filter models.BookingFilter) ([]models.Booking, int, error) {
	if claims == nil {
		return nil, 0, appErrors.Clone(appErrors.ErrUnauthorized, "authentication required")
	}
	if filter.Status != nil {
		switch *filter.Status {
		case models.BookingPending, models.BookingConfirmed, models.BookingCancelled:
		default:
			return nil, 0, appErrors.Clone(appErrors.ErrValidation, "unknown booking status filter")
		}
	}

	var (
		bookings []models.Booking
		total    int
		err      error
	)
	if claims.Role == models.RoleTeacher {
		bookings, total, err = s.bookings.ListByTeacher(ctx, claims.UserID, filter)
	} else {
		bookings, total, err = s.bookings.ListByStudent(ctx, claims.UserID, filter)
	}
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list bookings")
	}
	return bookings, total, nil
}

// Cancel transitions a pending booking to cancelled. Only the student who
// submitted the booking may cancel it.
func (s *BookingService) Cancel(ctx context.Context, claims *models.JWTClaims, id string) (*models.Booking, error) {
	if claims == nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "authentication required")
	}
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "booking not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch booking")
	}
	if booking.StudentID != claims.UserID && claims.Role != models.RoleAdmin {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "booking belongs to another user")
	}
	if booking.Status != models.BookingPending {
		return nil, appErrors.Clone(appErrors.ErrConflict, "only pending bookings can be cancelled")
	}

	if err := s.bookings.UpdateStatus(ctx, id, models.BookingCancelled); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to cancel booking")
	}
	booking.Status = models.BookingCancelled

	if s.audit != nil {
		if err := s.audit.CreateAuditLog(ctx, &models.AuditLog{
			UserID:     &claims.UserID,
			Action:     models.AuditActionBookingCancel,
			Resource:   "bookings",
			ResourceID: &booking.ID,
			NewValues:  []byte(`{"status":"cancelled"}`),
		}); err != nil {
			s.logger.Warn("failed to record cancellation audit log", zap.Error(err))
		}
	}

	return booking, nil
}

func (s *BookingService) isParty(claims *models.JWTClaims, booking *models.Booking) bool {
	if claims.Role == models.RoleAdmin {
		return true
	}
	return booking.StudentID == claims.UserID || booking.TeacherID == claims.UserID
}

func containsString(values []string, needle string) bool {
	for _, v := range values {
		if v == needle {
			return true
		}
	}
	return false
}
