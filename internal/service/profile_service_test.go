package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorhive/tutorhive-api/internal/models"
	appErrors "github.com/tutorhive/tutorhive-api/pkg/errors"
)

type mockProfileRepo struct {
	profiles map[string]*models.TeacherProfile
	listed   []models.TeacherProfile
	total    int
	upserted []*models.TeacherProfile
	listErr  error
}

func (m *mockProfileRepo) List(ctx context.Context, filter models.ProfileFilter) ([]models.TeacherProfile, int, error) {
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	return m.listed, m.total, nil
}

func (m *mockProfileRepo) FindByUserID(ctx context.Context, userID string) (*models.TeacherProfile, error) {
	profile, ok := m.profiles[userID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return profile, nil
}

func (m *mockProfileRepo) Upsert(ctx context.Context, profile *models.TeacherProfile) error {
	if m.profiles == nil {
		m.profiles = make(map[string]*models.TeacherProfile)
	}
	m.profiles[profile.UserID] = profile
	m.upserted = append(m.upserted, profile)
	return nil
}

func newProfileService(repo *mockProfileRepo) (*ProfileService, *mockAuditor) {
	audit := &mockAuditor{}
	return NewProfileService(repo, audit, nil, 0, nil, nil), audit
}

func TestProfileGetViewerContext(t *testing.T) {
	repo := &mockProfileRepo{profiles: map[string]*models.TeacherProfile{testTeacherID: fixtureProfile()}}
	svc, _ := newProfileService(repo)

	cases := []struct {
		name   string
		viewer *models.JWTClaims
		want   models.ViewerContext
	}{
		{"anonymous", nil, models.ViewerContext{}},
		{"student viewer may book", studentClaims(), models.ViewerContext{CanBook: true}},
		{"owning teacher may edit", &models.JWTClaims{UserID: testTeacherID, Role: models.RoleTeacher}, models.ViewerContext{CanEdit: true}},
		{"other teacher gets neither", &models.JWTClaims{UserID: "another-teacher", Role: models.RoleTeacher}, models.ViewerContext{}},
		{"student viewing own id cannot book", &models.JWTClaims{UserID: testTeacherID, Role: models.RoleStudent}, models.ViewerContext{CanEdit: true}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			view, err := svc.Get(context.Background(), testTeacherID, tc.viewer)
			require.NoError(t, err)
			assert.Equal(t, tc.want, view.Viewer)
			assert.Equal(t, "Ana Martins", view.FullName)
		})
	}
}

func TestProfileGetNotFound(t *testing.T) {
	svc, _ := newProfileService(&mockProfileRepo{})

	_, err := svc.Get(context.Background(), "missing", nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestProfileUpsert(t *testing.T) {
	repo := &mockProfileRepo{}
	svc, audit := newProfileService(repo)

	claims := &models.JWTClaims{UserID: testTeacherID, Role: models.RoleTeacher}
	profile, err := svc.Upsert(context.Background(), claims, testTeacherID, models.UpsertProfileRequest{
		FullName:          "  Ana Martins ",
		Subject:           "Mathematics",
		Location:          "Lisbon",
		LessonType:        models.LessonTypeBoth,
		HourlyRate:        100,
		AvailabilityDays:  []string{"Monday", "monday", "friday"},
		AvailabilitySlots: []string{"morning", "evening"},
	})
	require.NoError(t, err)

	assert.Equal(t, testTeacherID, profile.UserID)
	assert.Equal(t, "Ana Martins", profile.FullName)
	assert.Equal(t, pq.StringArray{"monday", "friday"}, profile.AvailabilityDays)
	require.Len(t, repo.upserted, 1)
	require.Len(t, audit.logs, 1)
	assert.Equal(t, models.AuditActionProfileUpsert, audit.logs[0].Action)
}

func TestProfileUpsertRejections(t *testing.T) {
	cases := []struct {
		name   string
		claims *models.JWTClaims
		target string
		req    models.UpsertProfileRequest
		code   string
	}{
		{
			name:   "student cannot publish",
			claims: &models.JWTClaims{UserID: testTeacherID, Role: models.RoleStudent},
			target: testTeacherID,
			req:    validUpsertRequest(),
			code:   appErrors.ErrForbidden.Code,
		},
		{
			name:   "cannot write another teacher's profile",
			claims: &models.JWTClaims{UserID: "other-teacher", Role: models.RoleTeacher},
			target: testTeacherID,
			req:    validUpsertRequest(),
			code:   appErrors.ErrForbidden.Code,
		},
		{
			name:   "zero hourly rate",
			claims: &models.JWTClaims{UserID: testTeacherID, Role: models.RoleTeacher},
			target: testTeacherID,
			req: func() models.UpsertProfileRequest {
				r := validUpsertRequest()
				r.HourlyRate = 0
				return r
			}(),
			code: appErrors.ErrValidation.Code,
		},
		{
			name:   "unknown slot",
			claims: &models.JWTClaims{UserID: testTeacherID, Role: models.RoleTeacher},
			target: testTeacherID,
			req: func() models.UpsertProfileRequest {
				r := validUpsertRequest()
				r.AvailabilitySlots = []string{"midnight"}
				return r
			}(),
			code: appErrors.ErrValidation.Code,
		},
		{
			name:   "unknown lesson type",
			claims: &models.JWTClaims{UserID: testTeacherID, Role: models.RoleTeacher},
			target: testTeacherID,
			req: func() models.UpsertProfileRequest {
				r := validUpsertRequest()
				r.LessonType = "hybrid"
				return r
			}(),
			code: appErrors.ErrValidation.Code,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockProfileRepo{}
			svc, _ := newProfileService(repo)

			_, err := svc.Upsert(context.Background(), tc.claims, tc.target, tc.req)
			require.Error(t, err)
			assert.Equal(t, tc.code, appErrors.FromError(err).Code)
			assert.Empty(t, repo.upserted)
		})
	}
}

func TestProfileUpsertAdminOverride(t *testing.T) {
	repo := &mockProfileRepo{}
	svc, _ := newProfileService(repo)

	claims := &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin}
	profile, err := svc.Upsert(context.Background(), claims, testTeacherID, validUpsertRequest())
	require.NoError(t, err)
	assert.Equal(t, testTeacherID, profile.UserID)
}

func validUpsertRequest() models.UpsertProfileRequest {
	return models.UpsertProfileRequest{
		FullName:          "Ana Martins",
		Subject:           "Mathematics",
		Location:          "Lisbon",
		LessonType:        models.LessonTypeOnline,
		HourlyRate:        80,
		AvailabilityDays:  []string{"monday"},
		AvailabilitySlots: []string{"morning"},
	}
}

func TestProfileList(t *testing.T) {
	repo := &mockProfileRepo{listed: []models.TeacherProfile{*fixtureProfile()}, total: 1}
	svc, _ := newProfileService(repo)

	profiles, total, err := svc.List(context.Background(), models.ProfileFilter{Subject: "Mathematics"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, profiles, 1)

	bad := models.LessonType("hybrid")
	_, _, err = svc.List(context.Background(), models.ProfileFilter{LessonType: &bad})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
