package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorhive/tutorhive-api/internal/models"
	"github.com/tutorhive/tutorhive-api/internal/service"
)

const jwtTestSecret = "test-secret"

func testAuthService() *service.AuthService {
	return service.NewAuthService(nil, nil, nil, service.AuthConfig{
		AccessTokenSecret: jwtTestSecret,
		AccessTokenExpiry: time.Minute,
		Issuer:            "tutorhive-api",
	})
}

func signedToken(t *testing.T, secret string) string {
	t.Helper()
	claims := &models.JWTClaims{
		UserID: "u1",
		Role:   models.RoleStudent,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func performJWT(t *testing.T, authHeader string, optional bool) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		c.Request.Header.Set("Authorization", authHeader)
	}

	if optional {
		OptionalJWT(testAuthService())(c)
	} else {
		JWT(testAuthService())(c)
	}
	return rec, c
}

func TestJWTValidToken(t *testing.T) {
	rec, c := performJWT(t, "Bearer "+signedToken(t, jwtTestSecret), false)

	assert.Equal(t, http.StatusOK, rec.Code)
	value, exists := c.Get(ContextUserKey)
	require.True(t, exists)
	assert.Equal(t, "u1", value.(*models.JWTClaims).UserID)
}

func TestJWTMissingHeader(t *testing.T) {
	rec, _ := performJWT(t, "", false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTMalformedHeader(t *testing.T) {
	rec, _ := performJWT(t, "Token abc", false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTWrongSignature(t *testing.T) {
	rec, _ := performJWT(t, "Bearer "+signedToken(t, "other-secret"), false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalJWTInvalidTokenProceeds(t *testing.T) {
	rec, c := performJWT(t, "Bearer not-a-token", true)

	assert.Equal(t, http.StatusOK, rec.Code)
	_, exists := c.Get(ContextUserKey)
	assert.False(t, exists)
}

func TestOptionalJWTValidTokenAttachesClaims(t *testing.T) {
	rec, c := performJWT(t, "Bearer "+signedToken(t, jwtTestSecret), true)

	assert.Equal(t, http.StatusOK, rec.Code)
	_, exists := c.Get(ContextUserKey)
	assert.True(t, exists)
}
