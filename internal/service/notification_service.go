package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tutorhive/tutorhive-api/internal/models"
	"github.com/tutorhive/tutorhive-api/pkg/jobs"
)

const (
	jobBookingCreated = "booking.created"
)

// NotificationService fans booking events out to interested parties through a
// background worker queue. Delivery is currently log-based; the queue keeps
// the submission path non-blocking and gives retries for free.
type NotificationService struct {
	queue  *jobs.Queue
	logger *zap.Logger
}

// NewNotificationService constructs the service and its backing queue.
func NewNotificationService(cfg jobs.QueueConfig, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &NotificationService{logger: logger}
	if cfg.Logger == nil {
		cfg.Logger = logger
	}
	s.queue = jobs.NewQueue("notifications", s.handle, cfg)
	return s
}

// Start launches the worker pool.
func (s *NotificationService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the worker pool.
func (s *NotificationService) Stop() {
	s.queue.Stop()
}

// NotifyBookingCreated enqueues a notification for a freshly created booking.
func (s *NotificationService) NotifyBookingCreated(booking *models.Booking) error {
	if booking == nil {
		return fmt.Errorf("booking required")
	}
	return s.queue.Enqueue(jobs.Job{
		ID:      uuid.NewString(),
		Type:    jobBookingCreated,
		Payload: *booking,
	})
}

func (s *NotificationService) handle(ctx context.Context, job jobs.Job) error {
	switch job.Type {
	case jobBookingCreated:
		booking, ok := job.Payload.(models.Booking)
		if !ok {
			return fmt.Errorf("unexpected payload for %s job", job.Type)
		}
		s.logger.Info("booking notification dispatched",
			zap.String("booking_id", booking.ID),
			zap.String("teacher_id", booking.TeacherID),
			zap.String("student_id", booking.StudentID),
			zap.Time("starts_at", booking.StartsAt),
			zap.Int("total_price", booking.TotalPrice),
		)
		return nil
	default:
		return fmt.Errorf("unknown job type %q", job.Type)
	}
}
