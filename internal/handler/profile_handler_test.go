package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorhive/tutorhive-api/internal/middleware"
	"github.com/tutorhive/tutorhive-api/internal/models"
	"github.com/tutorhive/tutorhive-api/internal/service"
)

type fakeProfileRepo struct {
	profiles map[string]*models.TeacherProfile
	listed   []models.TeacherProfile
	total    int
}

func (f *fakeProfileRepo) List(ctx context.Context, filter models.ProfileFilter) ([]models.TeacherProfile, int, error) {
	return f.listed, f.total, nil
}

func (f *fakeProfileRepo) FindByUserID(ctx context.Context, userID string) (*models.TeacherProfile, error) {
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return profile, nil
}

func (f *fakeProfileRepo) Upsert(ctx context.Context, profile *models.TeacherProfile) error {
	if f.profiles == nil {
		f.profiles = make(map[string]*models.TeacherProfile)
	}
	f.profiles[profile.UserID] = profile
	return nil
}

func newProfileHandler(repo *fakeProfileRepo) *ProfileHandler {
	return NewProfileHandler(service.NewProfileService(repo, nil, nil, 0, nil, nil))
}

func getProfile(t *testing.T, handler *ProfileHandler, claims *models.JWTClaims) (*httptest.ResponseRecorder, responseEnvelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/teacher-profiles/"+handlerTeacherID, nil)
	c.Params = gin.Params{{Key: "id", Value: handlerTeacherID}}
	if claims != nil {
		c.Set(middleware.ContextUserKey, claims)
	}

	handler.Get(c)

	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	return rec, envelope
}

func TestProfileHandlerGetViewerContext(t *testing.T) {
	handler := newProfileHandler(&fakeProfileRepo{profiles: map[string]*models.TeacherProfile{
		handlerTeacherID: handlerFixtureProfile(),
	}})

	cases := []struct {
		name    string
		claims  *models.JWTClaims
		canBook bool
		canEdit bool
	}{
		{"anonymous viewer", nil, false, false},
		{"student viewer", &models.JWTClaims{UserID: handlerStudentID, Role: models.RoleStudent}, true, false},
		{"owning teacher", &models.JWTClaims{UserID: handlerTeacherID, Role: models.RoleTeacher}, false, true},
		{"other teacher", &models.JWTClaims{UserID: "someone-else", Role: models.RoleTeacher}, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, envelope := getProfile(t, handler, tc.claims)
			require.Equal(t, http.StatusOK, rec.Code)

			viewer, ok := envelope.Data["viewer"].(map[string]interface{})
			require.True(t, ok)
			assert.Equal(t, tc.canBook, viewer["can_book"])
			assert.Equal(t, tc.canEdit, viewer["can_edit"])
		})
	}
}

func TestProfileHandlerGetNotFound(t *testing.T) {
	handler := newProfileHandler(&fakeProfileRepo{})

	rec, _ := getProfile(t, handler, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProfileHandlerUpsert(t *testing.T) {
	repo := &fakeProfileRepo{}
	handler := newProfileHandler(repo)

	payload := models.UpsertProfileRequest{
		FullName:          "Ana Martins",
		Subject:           "Mathematics",
		Location:          "Lisbon",
		LessonType:        models.LessonTypeBoth,
		HourlyRate:        100,
		AvailabilityDays:  []string{"monday", "friday"},
		AvailabilitySlots: []string{"morning"},
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPut, "/teacher-profiles/"+handlerTeacherID, bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: handlerTeacherID}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: handlerTeacherID, Role: models.RoleTeacher})

	handler.Upsert(c)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, repo.profiles, handlerTeacherID)
	assert.Equal(t, 100, repo.profiles[handlerTeacherID].HourlyRate)
}

func TestProfileHandlerUpsertStudentForbidden(t *testing.T) {
	repo := &fakeProfileRepo{}
	handler := newProfileHandler(repo)

	body, _ := json.Marshal(models.UpsertProfileRequest{})

	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPut, "/teacher-profiles/"+handlerTeacherID, bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: handlerTeacherID}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: handlerStudentID, Role: models.RoleStudent})

	handler.Upsert(c)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, repo.profiles)
}

func TestProfileHandlerList(t *testing.T) {
	handler := newProfileHandler(&fakeProfileRepo{
		listed: []models.TeacherProfile{*handlerFixtureProfile()},
		total:  1,
	})

	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/teacher-profiles?subject=Mathematics&page=1", nil)

	handler.List(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data       []map[string]interface{} `json:"data"`
		Pagination map[string]interface{}   `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, float64(1), envelope.Pagination["total_count"])
}
