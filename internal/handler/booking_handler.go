package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tutorhive/tutorhive-api/internal/models"
	"github.com/tutorhive/tutorhive-api/internal/service"
	appErrors "github.com/tutorhive/tutorhive-api/pkg/errors"
	"github.com/tutorhive/tutorhive-api/pkg/response"
)

// BookingHandler wires HTTP endpoints to booking, receipt and export services.
type BookingHandler struct {
	bookings *service.BookingService
	receipts *service.ReceiptService
	exports  *service.ExportService
}

// NewBookingHandler creates a new handler.
func NewBookingHandler(bookings *service.BookingService, receipts *service.ReceiptService, exports *service.ExportService) *BookingHandler {
	return &BookingHandler{bookings: bookings, receipts: receipts, exports: exports}
}

// Quote godoc
// @Summary Quote a lesson
// @Description Derive the price breakdown for a teacher and duration without booking
// @Tags Bookings
// @Accept json
// @Produce json
// @Param payload body models.QuoteRequest true "Quote payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /bookings/quote [post]
func (h *BookingHandler) Quote(c *gin.Context) {
	var req models.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid quote payload"))
		return
	}

	quote, err := h.bookings.Quote(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, quote, nil)
}

// Create godoc
// @Summary Book a lesson
// @Description Submit a lesson booking against a teacher profile
// @Tags Bookings
// @Accept json
// @Produce json
// @Param payload body models.CreateBookingRequest true "Booking payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid booking payload"))
		return
	}

	booking, err := h.bookings.Create(c.Request.Context(), claimsFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, booking)
}

// List godoc
// @Summary List bookings
// @Description List the caller's bookings (submitted for students, received for teachers)
// @Tags Bookings
// @Produce json
// @Param status query string false "Filter by status" Enums(pending, confirmed, cancelled)
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	filter := models.BookingFilter{
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 20),
	}
	if raw := c.Query("status"); raw != "" {
		status := models.BookingStatus(raw)
		filter.Status = &status
	}

	bookings, total, err := h.bookings.List(c.Request.Context(), claimsFromContext(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, bookings, &models.Pagination{
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalCount: total,
	})
}

// Get godoc
// @Summary Get booking
// @Description Fetch a booking the caller is party to
// @Tags Bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	booking, err := h.bookings.Get(c.Request.Context(), claimsFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, booking, nil)
}

// Cancel godoc
// @Summary Cancel booking
// @Description Cancel a pending booking the caller submitted
// @Tags Bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	booking, err := h.bookings.Cancel(c.Request.Context(), claimsFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, booking, nil)
}

// Receipt godoc
// @Summary Generate booking receipt
// @Description Render a PDF receipt and return a signed, expiring download link
// @Tags Bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /bookings/{id}/receipt [get]
func (h *BookingHandler) Receipt(c *gin.Context) {
	link, err := h.receipts.Generate(c.Request.Context(), claimsFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, link, nil)
}

// ExportCSV godoc
// @Summary Export received bookings
// @Description Download a teacher's received bookings as CSV (owner or admin)
// @Tags Bookings
// @Produce text/csv
// @Param id path string true "Teacher user ID"
// @Param format query string false "Export format" Enums(csv)
// @Success 200 {string} string "CSV payload"
// @Failure 403 {object} response.Envelope
// @Security BearerAuth
// @Router /teacher-profiles/{id}/bookings/export [get]
func (h *BookingHandler) ExportCSV(c *gin.Context) {
	if format := c.DefaultQuery("format", "csv"); format != "csv" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "unsupported export format"))
		return
	}

	data, err := h.exports.BookingsCSV(c.Request.Context(), claimsFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "bookings.csv"))
	c.Data(http.StatusOK, "text/csv", data)
}
