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

type rosterService interface {
	AddStudent(ctx context.Context, req models.AddStudentRequest) (*models.AddStudentResponse, error)
	AddStudentsBulk(ctx context.Context, req models.BulkAddRequest) (*models.BulkAddResult, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]models.Student, error)
}

// StudentHandler wires HTTP endpoints to the roster service.
type StudentHandler struct {
	service rosterService
	csv     *export.CSVExporter
}

// NewStudentHandler creates a new handler.
func NewStudentHandler(svc rosterService) *StudentHandler {
	return &StudentHandler{service: svc, csv: export.NewCSVExporter()}
}

// Add godoc
// @Summary Enroll a student
// @Description Enroll one student and return generated credentials
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body models.AddStudentRequest true "Enrollment payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /students [post]
func (h *StudentHandler) Add(c *gin.Context) {
	var req models.AddStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid enrollment payload"))
		return
	}

	res, err := h.service.AddStudent(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, res)
}

// BulkAdd godoc
// @Summary Enroll students in bulk
// @Description Enroll many students from tabular rows; per-row failures are reported, not fatal
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body models.BulkAddRequest true "Bulk enrollment payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /students/bulk [post]
func (h *StudentHandler) BulkAdd(c *gin.Context) {
	var req models.BulkAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid bulk payload"))
		return
	}

	res, err := h.service.AddStudentsBulk(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, res)
}

// ListByTeacher godoc
// @Summary List a teacher's students
// @Description List students owned by a teacher, ordered by name
// @Tags Students
// @Produce json
// @Param id path string true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id}/students [get]
func (h *StudentHandler) ListByTeacher(c *gin.Context) {
	students, err := h.service.ListByTeacher(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"students": students})
}

// ExportCSV godoc
// @Summary Export a teacher's roster as CSV
// @Tags Students
// @Produce text/csv
// @Param teacherId query string true "Teacher ID"
// @Success 200 {string} string "CSV payload"
// @Failure 400 {object} response.Envelope
// @Router /students/export/csv [get]
func (h *StudentHandler) ExportCSV(c *gin.Context) {
	teacherID := c.Query("teacherId")
	if teacherID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "teacherId is required"))
		return
	}

	students, err := h.service.ListByTeacher(c.Request.Context(), teacherID)
	if err != nil {
		response.Error(c, err)
		return
	}

	headers := []string{"student_id", "name", "email", "class", "section", "roll_no", "created_at"}
	rows := make([]map[string]string, 0, len(students))
	for _, s := range students {
		rows = append(rows, map[string]string{
			"student_id": s.StudentID,
			"name":       s.Name,
			"email":      s.Email,
			"class":      s.Class,
			"section":    s.Section,
			"roll_no":    s.RollNo,
			"created_at": s.CreatedAt.Format(time.RFC3339),
		})
	}

	payload, err := h.csv.Render(export.Dataset{Headers: headers, Rows: rows})
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("roster_%s.csv", teacherID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", payload)
}
