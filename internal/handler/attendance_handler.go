package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/classtrack/classtrack-api/internal/models"
	appErrors "github.com/classtrack/classtrack-api/pkg/errors"
	"github.com/classtrack/classtrack-api/pkg/export"
	"github.com/classtrack/classtrack-api/pkg/response"
)

type attendanceService interface {
	Mark(ctx context.Context, studentID string, day *time.Time) (*models.AttendanceEvent, error)
	WeeklyReport(ctx context.Context, studentID string, endDay *time.Time) (*models.WeeklyReport, error)
}

// AttendanceHandler wires HTTP endpoints to the attendance service.
type AttendanceHandler struct {
	service attendanceService
	pdf     *export.PDFExporter
}

// NewAttendanceHandler creates a new handler.
func NewAttendanceHandler(svc attendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: svc, pdf: export.NewPDFExporter()}
}

// Mark godoc
// @Summary Mark attendance
// @Description Record a present event for a student for the given day (default today)
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body models.MarkAttendanceRequest true "Marking payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /attendance [post]
func (h *AttendanceHandler) Mark(c *gin.Context) {
	var req models.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid attendance payload"))
		return
	}
	if req.StudentID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "student id is required"))
		return
	}

	day, err := parseDay(req.Date)
	if err != nil {
		response.Error(c, err)
		return
	}

	event, err := h.service.Mark(c.Request.Context(), req.StudentID, day)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, event)
}

// WeeklyReport godoc
// @Summary Weekly attendance report
// @Description Return the 7-day attendance window ending at the given day (default today)
// @Tags Attendance
// @Produce json
// @Param studentId path string true "Student ID"
// @Param end query string false "End day (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{studentId}/report/weekly [get]
func (h *AttendanceHandler) WeeklyReport(c *gin.Context) {
	end, err := parseDay(c.Query("end"))
	if err != nil {
		response.Error(c, err)
		return
	}

	report, err := h.service.WeeklyReport(c.Request.Context(), c.Param("studentId"), end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, report)
}

// WeeklyReportPDF godoc
// @Summary Weekly attendance report as PDF
// @Tags Attendance
// @Produce application/pdf
// @Param studentId path string true "Student ID"
// @Param end query string false "End day (YYYY-MM-DD)"
// @Success 200 {string} string "PDF payload"
// @Failure 404 {object} response.Envelope
// @Router /students/{studentId}/report/weekly/pdf [get]
func (h *AttendanceHandler) WeeklyReportPDF(c *gin.Context) {
	end, err := parseDay(c.Query("end"))
	if err != nil {
		response.Error(c, err)
		return
	}

	report, err := h.service.WeeklyReport(c.Request.Context(), c.Param("studentId"), end)
	if err != nil {
		response.Error(c, err)
		return
	}

	rows := make([]map[string]string, 0, len(report.Days))
	for _, day := range report.Days {
		rows = append(rows, map[string]string{
			"date":   day.Date,
			"status": string(day.Status),
		})
	}

	title := fmt.Sprintf("Weekly Attendance - %s (%s)", report.Name, report.StudentID)
	payload, err := h.pdf.Render(export.Dataset{Headers: []string{"date", "status"}, Rows: rows}, title)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("weekly_%s.pdf", report.StudentID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", payload)
}

func parseDay(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	day, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "date must be YYYY-MM-DD")
	}
	return &day, nil
}
