package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/tutorhive/tutorhive-api/internal/models"
)

const profileColumns = "user_id, full_name, subject, location, lesson_type, hourly_rate, bio, availability_days, availability_slots, created_at, updated_at"

// ProfileRepository manages persistence for public teacher profiles.
type ProfileRepository struct {
	db *sqlx.DB
}

// NewProfileRepository constructs a ProfileRepository.
func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// List returns profiles matching filters along with total count.
func (r *ProfileRepository) List(ctx context.Context, filter models.ProfileFilter) ([]models.TeacherProfile, int, error) {
	base := "FROM teacher_profiles WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Subject != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(subject) = LOWER($%d)", len(args)+1))
		args = append(args, filter.Subject)
	}
	if filter.LessonType != nil {
		conditions = append(conditions, fmt.Sprintf("lesson_type = $%d", len(args)+1))
		args = append(args, *filter.LessonType)
	}
	if filter.Search != "" {
		search := "%" + strings.ToLower(filter.Search) + "%"
		conditions = append(conditions, fmt.Sprintf("(LOWER(full_name) LIKE $%d OR LOWER(subject) LIKE $%d OR LOWER(location) LIKE $%d)", len(args)+1, len(args)+1, len(args)+1))
		args = append(args, search)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	allowedSorts := map[string]string{
		"full_name":   "full_name",
		"subject":     "subject",
		"hourly_rate": "hourly_rate",
		"created_at":  "created_at",
	}
	column, ok := allowedSorts[sortBy]
	if !ok {
		column = "created_at"
	}

	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
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

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", profileColumns, base, column, order, size, offset)
	var profiles []models.TeacherProfile
	if err := r.db.SelectContext(ctx, &profiles, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list teacher profiles: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count teacher profiles: %w", err)
	}

	return profiles, total, nil
}

// FindByUserID fetches the profile owned by the given teacher account.
func (r *ProfileRepository) FindByUserID(ctx context.Context, userID string) (*models.TeacherProfile, error) {
	query := fmt.Sprintf("SELECT %s FROM teacher_profiles WHERE user_id = $1", profileColumns)
	var profile models.TeacherProfile
	if err := r.db.GetContext(ctx, &profile, query, userID); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Upsert creates or replaces a teacher's public listing.
func (r *ProfileRepository) Upsert(ctx context.Context, profile *models.TeacherProfile) error {
	now := time.Now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	const query = `INSERT INTO teacher_profiles (user_id, full_name, subject, location, lesson_type, hourly_rate, bio, availability_days, availability_slots, created_at, updated_at)
		VALUES (:user_id, :full_name, :subject, :location, :lesson_type, :hourly_rate, :bio, :availability_days, :availability_slots, :created_at, :updated_at)
		ON CONFLICT (user_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			subject = EXCLUDED.subject,
			location = EXCLUDED.location,
			lesson_type = EXCLUDED.lesson_type,
			hourly_rate = EXCLUDED.hourly_rate,
			bio = EXCLUDED.bio,
			availability_days = EXCLUDED.availability_days,
			availability_slots = EXCLUDED.availability_slots,
			updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, profile); err != nil {
		return fmt.Errorf("upsert teacher profile: %w", err)
	}
	return nil
}
