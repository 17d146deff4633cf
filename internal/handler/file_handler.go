package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tutorhive/tutorhive-api/internal/service"
	appErrors "github.com/tutorhive/tutorhive-api/pkg/errors"
	"github.com/tutorhive/tutorhive-api/pkg/response"
)

// FileHandler serves receipt downloads through signed tokens. The token is
// the only credential; no session is required so links can be shared.
type FileHandler struct {
	receipts *service.ReceiptService
}

// NewFileHandler creates a new handler.
func NewFileHandler(receipts *service.ReceiptService) *FileHandler {
	return &FileHandler{receipts: receipts}
}

// DownloadReceipt godoc
// @Summary Download receipt
// @Description Stream a receipt PDF referenced by a signed token
// @Tags Files
// @Produce application/pdf
// @Param token query string true "Signed download token"
// @Success 200 {file} file
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /files/receipts [get]
func (h *FileHandler) DownloadReceipt(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token query parameter required"))
		return
	}

	file, filename, err := h.receipts.Open(token)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/pdf")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, file); err != nil {
		// Headers are already written; nothing sensible left to send.
		_ = c.Error(err)
	}
}
