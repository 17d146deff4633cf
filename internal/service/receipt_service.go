package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/tutorhive/tutorhive-api/internal/models"
	appErrors "github.com/tutorhive/tutorhive-api/pkg/errors"
	"github.com/tutorhive/tutorhive-api/pkg/export"
	"github.com/tutorhive/tutorhive-api/pkg/storage"
)

type receiptUserReader interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// ReceiptLink points a client at a short-lived signed download for a receipt.
type ReceiptLink struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ReceiptService renders booking receipts to PDF and serves them through
// signed, expiring download tokens.
type ReceiptService struct {
	bookings bookingRepository
	profiles bookingProfileReader
	users    receiptUserReader
	store    *storage.LocalStorage
	signer   *storage.SignedURLSigner
	logger   *zap.Logger
}

// NewReceiptService constructs a ReceiptService instance.
func NewReceiptService(bookings bookingRepository, profiles bookingProfileReader, users receiptUserReader, store *storage.LocalStorage, signer *storage.SignedURLSigner, logger *zap.Logger) *ReceiptService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReceiptService{bookings: bookings, profiles: profiles, users: users, store: store, signer: signer, logger: logger}
}

// Generate renders the receipt for a booking the caller is party to and
// returns a signed download link.
func (s *ReceiptService) Generate(ctx context.Context, claims *models.JWTClaims, bookingID string) (*ReceiptLink, error) {
	if claims == nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "authentication required")
	}
	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "booking not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch booking")
	}
	if booking.StudentID != claims.UserID && booking.TeacherID != claims.UserID && claims.Role != models.RoleAdmin {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "booking belongs to another user")
	}

	receipt := export.Receipt{
		BookingID:     booking.ID,
		StartsAt:      booking.StartsAt,
		DurationHours: booking.DurationHours,
		LessonType:    string(booking.LessonType),
		Status:        string(booking.Status),
		LessonPrice:   booking.LessonPrice,
		PlatformFee:   booking.PlatformFee,
		TotalPrice:    booking.TotalPrice,
	}

	if profile, err := s.profiles.FindByUserID(ctx, booking.TeacherID); err == nil {
		receipt.TeacherName = profile.FullName
		receipt.Subject = profile.Subject
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch teacher profile")
	}

	if student, err := s.users.FindByID(ctx, booking.StudentID); err == nil {
		receipt.StudentName = student.FullName
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch student account")
	}

	data, err := export.RenderReceiptPDF(receipt)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render receipt")
	}

	relPath := fmt.Sprintf("%s.pdf", booking.ID)
	if _, err := s.store.Save(relPath, data); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store receipt")
	}

	token, expiresAt, err := s.signer.Generate(booking.ID, relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign receipt link")
	}

	s.logger.Info("receipt generated", zap.String("booking_id", booking.ID), zap.Time("link_expires_at", expiresAt))
	return &ReceiptLink{Token: token, ExpiresAt: expiresAt}, nil
}

// Open validates a signed token and returns the stored receipt file. The
// caller owns closing the returned handle.
func (s *ReceiptService) Open(token string) (*os.File, string, error) {
	bookingID, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid or expired receipt token")
	}
	file, err := s.store.Open(relPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", appErrors.Clone(appErrors.ErrNotFound, "receipt no longer available")
		}
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open receipt")
	}
	return file, fmt.Sprintf("receipt-%s.pdf", bookingID), nil
}
