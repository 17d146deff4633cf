package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/tutorhive/tutorhive-api/internal/models"
	appErrors "github.com/tutorhive/tutorhive-api/pkg/errors"
)

type profileRepository interface {
	List(ctx context.Context, filter models.ProfileFilter) ([]models.TeacherProfile, int, error)
	FindByUserID(ctx context.Context, userID string) (*models.TeacherProfile, error)
	Upsert(ctx context.Context, profile *models.TeacherProfile) error
}

type profileAuditor interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// ProfileService provides teacher profile use cases.
type ProfileService struct {
	repo      profileRepository
	audit     profileAuditor
	cache     *CacheService
	cacheTTL  time.Duration
	validator *validator.Validate
	logger    *zap.Logger
}

// NewProfileService constructs a ProfileService instance.
func NewProfileService(repo profileRepository, audit profileAuditor, cache *CacheService, cacheTTL time.Duration, validate *validator.Validate, logger *zap.Logger) *ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ProfileService{repo: repo, audit: audit, cache: cache, cacheTTL: cacheTTL, validator: validate, logger: logger}
}

func profileCacheKey(teacherID string) string {
	return fmt.Sprintf("profiles:%s", teacherID)
}

// List returns teacher profiles matching the filter with a total count.
func (s *ProfileService) List(ctx context.Context, filter models.ProfileFilter) ([]models.TeacherProfile, int, error) {
	if filter.LessonType != nil && !filter.LessonType.Valid() {
		return nil, 0, appErrors.Clone(appErrors.ErrValidation, "unknown lesson type filter")
	}
	profiles, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list teacher profiles")
	}
	return profiles, total, nil
}

// Get loads a teacher profile and decorates it with the caller's viewer
// context. viewer may be nil for anonymous requests.
func (s *ProfileService) Get(ctx context.Context, teacherID string, viewer *models.JWTClaims) (*models.TeacherProfileView, error) {
	profile, err := s.load(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	return &models.TeacherProfileView{
		TeacherProfile: *profile,
		Viewer:         viewerContext(teacherID, viewer),
	}, nil
}

// viewerContext derives which profile actions the caller may take. Only the
// owning teacher edits; only students who are not the owner book.
func viewerContext(teacherID string, viewer *models.JWTClaims) models.ViewerContext {
	if viewer == nil {
		return models.ViewerContext{}
	}
	return models.ViewerContext{
		CanEdit: viewer.UserID == teacherID,
		CanBook: viewer.Role == models.RoleStudent && viewer.UserID != teacherID,
	}
}

// Upsert creates or replaces a teacher's public listing. Only the owning
// teacher (or an admin acting on their behalf) may write it.
func (s *ProfileService) Upsert(ctx context.Context, claims *models.JWTClaims, teacherID string, req models.UpsertProfileRequest) (*models.TeacherProfile, error) {
	if claims == nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "authentication required")
	}
	if claims.Role != models.RoleAdmin {
		if claims.UserID != teacherID {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "profile belongs to another user")
		}
		if claims.Role != models.RoleTeacher {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "only teachers can publish a profile")
		}
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid profile payload")
	}

	profile := &models.TeacherProfile{
		UserID:            teacherID,
		FullName:          strings.TrimSpace(req.FullName),
		Subject:           strings.TrimSpace(req.Subject),
		Location:          strings.TrimSpace(req.Location),
		LessonType:        req.LessonType,
		HourlyRate:        req.HourlyRate,
		Bio:               strings.TrimSpace(req.Bio),
		AvailabilityDays:  normaliseList(req.AvailabilityDays),
		AvailabilitySlots: normaliseList(req.AvailabilitySlots),
	}
	if err := s.repo.Upsert(ctx, profile); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save teacher profile")
	}

	if s.cache.Enabled() {
		if err := s.cache.Invalidate(ctx, profileCacheKey(teacherID)); err != nil {
			s.logger.Warn("failed to invalidate profile cache", zap.String("teacher_id", teacherID), zap.Error(err))
		}
	}

	if s.audit != nil {
		payload, _ := json.Marshal(map[string]interface{}{"subject": profile.Subject, "hourly_rate": profile.HourlyRate})
		if err := s.audit.CreateAuditLog(ctx, &models.AuditLog{
			UserID:     &claims.UserID,
			Action:     models.AuditActionProfileUpsert,
			Resource:   "teacher_profiles",
			ResourceID: &teacherID,
			NewValues:  payload,
		}); err != nil {
			s.logger.Warn("failed to record profile audit log", zap.Error(err))
		}
	}

	return profile, nil
}

// load fetches a profile through the cache, falling back to the repository.
func (s *ProfileService) load(ctx context.Context, teacherID string) (*models.TeacherProfile, error) {
	key := profileCacheKey(teacherID)
	if s.cache.Enabled() {
		var cached models.TeacherProfile
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	profile, err := s.repo.FindByUserID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher profile not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch teacher profile")
	}

	if s.cache.Enabled() {
		if err := s.cache.Set(ctx, key, profile, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache teacher profile", zap.String("teacher_id", teacherID), zap.Error(err))
		}
	}
	return profile, nil
}

// normaliseList lowercases and dedupes a day or slot list, preserving order.
func normaliseList(values []string) pq.StringArray {
	seen := make(map[string]struct{}, len(values))
	out := make(pq.StringArray, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
