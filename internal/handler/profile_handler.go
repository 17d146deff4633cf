package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tutorhive/tutorhive-api/internal/models"
	"github.com/tutorhive/tutorhive-api/internal/service"
	appErrors "github.com/tutorhive/tutorhive-api/pkg/errors"
	"github.com/tutorhive/tutorhive-api/pkg/response"
)

// ProfileHandler wires HTTP endpoints to the teacher profile service.
type ProfileHandler struct {
	service *service.ProfileService
}

// NewProfileHandler creates a new handler.
func NewProfileHandler(svc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: svc}
}

// List godoc
// @Summary Browse teacher profiles
// @Description List published teacher profiles with filtering and pagination
// @Tags Teacher Profiles
// @Produce json
// @Param search query string false "Free-text search over name, subject and location"
// @Param subject query string false "Filter by subject"
// @Param lesson_type query string false "Filter by lesson type" Enums(online, face-to-face, both)
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param sort_by query string false "Sort column" Enums(full_name, subject, hourly_rate, created_at)
// @Param sort_order query string false "Sort order" Enums(asc, desc)
// @Success 200 {object} response.Envelope
// @Router /teacher-profiles [get]
func (h *ProfileHandler) List(c *gin.Context) {
	filter := models.ProfileFilter{
		Search:    c.Query("search"),
		Subject:   c.Query("subject"),
		Page:      queryInt(c, "page", 1),
		PageSize:  queryInt(c, "page_size", 20),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	if raw := c.Query("lesson_type"); raw != "" {
		lt := models.LessonType(raw)
		filter.LessonType = &lt
	}

	profiles, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, profiles, &models.Pagination{
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalCount: total,
	})
}

// Get godoc
// @Summary Get teacher profile
// @Description Fetch a teacher's public profile with the caller's viewer context
// @Tags Teacher Profiles
// @Produce json
// @Param id path string true "Teacher user ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /teacher-profiles/{id} [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	view, err := h.service.Get(c.Request.Context(), c.Param("id"), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Upsert godoc
// @Summary Publish teacher profile
// @Description Create or replace a teacher's public listing (owner or admin)
// @Tags Teacher Profiles
// @Accept json
// @Produce json
// @Param id path string true "Teacher user ID"
// @Param payload body models.UpsertProfileRequest true "Profile payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Security BearerAuth
// @Router /teacher-profiles/{id} [put]
func (h *ProfileHandler) Upsert(c *gin.Context) {
	var req models.UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid profile payload"))
		return
	}

	profile, err := h.service.Upsert(c.Request.Context(), claimsFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile, nil)
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
