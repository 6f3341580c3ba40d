package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/classtrack/classtrack-api/internal/models"
	"github.com/classtrack/classtrack-api/pkg/response"
)

type qrService interface {
	BuildIdentityPayload(ctx context.Context, studentID string) (*models.IdentityPayload, error)
}

// QRHandler exposes the identity payload consumed by the external QR
// image encoder.
type QRHandler struct {
	service qrService
}

// NewQRHandler creates a new handler.
func NewQRHandler(svc qrService) *QRHandler {
	return &QRHandler{service: svc}
}

// IdentityPayload godoc
// @Summary Student identity payload
// @Description Return the structured identity record for QR encoding
// @Tags Students
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{studentId}/qr [get]
func (h *QRHandler) IdentityPayload(c *gin.Context) {
	payload, err := h.service.BuildIdentityPayload(c.Request.Context(), c.Param("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, payload)
}
