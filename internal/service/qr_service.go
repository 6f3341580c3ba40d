package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/classtrack/classtrack-api/internal/models"
	appErrors "github.com/classtrack/classtrack-api/pkg/errors"
)

// QRService assembles the identity payload handed to the external QR
// image encoder.
type QRService struct {
	students attendanceStudentRepository
}

// NewQRService constructs a QRService.
func NewQRService(students attendanceStudentRepository) *QRService {
	return &QRService{students: students}
}

// BuildIdentityPayload projects the student record into the canonical
// identity mapping. Deterministic; no credentials, no attendance data.
func (s *QRService) BuildIdentityPayload(ctx context.Context, studentID string) (*models.IdentityPayload, error) {
	student, err := s.students.FindByStudentID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrStudentNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch student")
	}

	return &models.IdentityPayload{
		StudentID: student.StudentID,
		Name:      student.Name,
		Class:     student.Class,
		Section:   student.Section,
		RollNo:    student.RollNo,
	}, nil
}
