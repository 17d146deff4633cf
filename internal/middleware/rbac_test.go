package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/tutorhive/tutorhive-api/internal/models"
)

func performRBAC(t *testing.T, claims *models.JWTClaims, paramID string, allowed ...string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/protected", nil)
	if paramID != "" {
		c.Params = gin.Params{{Key: "id", Value: paramID}}
	}
	if claims != nil {
		c.Set(ContextUserKey, claims)
	}

	RBAC(allowed...)(c)
	if !c.IsAborted() {
		c.Status(http.StatusOK)
	}
	return rec
}

func TestRBACAllowsMatchingRole(t *testing.T) {
	rec := performRBAC(t, &models.JWTClaims{UserID: "u1", Role: models.RoleTeacher}, "", "TEACHER")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRBACRejectsOtherRole(t *testing.T) {
	rec := performRBAC(t, &models.JWTClaims{UserID: "u1", Role: models.RoleStudent}, "", "TEACHER")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRBACRejectsMissingClaims(t *testing.T) {
	rec := performRBAC(t, nil, "", "TEACHER")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRBACSelfAllowsOwner(t *testing.T) {
	rec := performRBAC(t, &models.JWTClaims{UserID: "u1", Role: models.RoleStudent}, "u1", "ADMIN", "SELF")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRBACSelfRejectsOthers(t *testing.T) {
	rec := performRBAC(t, &models.JWTClaims{UserID: "u1", Role: models.RoleStudent}, "u2", "ADMIN", "SELF")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
