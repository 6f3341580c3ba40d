package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/classtrack/classtrack-api/internal/models"
	"github.com/classtrack/classtrack-api/internal/repository"
	appErrors "github.com/classtrack/classtrack-api/pkg/errors"
	"github.com/classtrack/classtrack-api/pkg/mailer"
)

// studentIDRetries bounds regeneration attempts on a student_id collision.
// The 36^8 id space makes more than one retry vanishingly unlikely.
const studentIDRetries = 5

const welcomeTemplate = `Dear %s,

Your student account has been created successfully.

Student ID: %s
Password: %s
Class: %s
Section: %s
Roll No: %s

Please login to access your dashboard.

Best regards,
School Management System`

type rosterStudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	ListByTeacher(ctx context.Context, teacherID string) ([]models.Student, error)
}

type rosterCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// RosterService enrolls students individually or in bulk and lists a
// teacher's roster.
type RosterService struct {
	students    rosterStudentRepository
	credentials *CredentialService
	mail        mailer.Mailer
	cache       rosterCache
	rosterTTL   time.Duration
	metrics     *MetricsService
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewRosterService constructs a RosterService.
func NewRosterService(students rosterStudentRepository, credentials *CredentialService, mail mailer.Mailer, cache rosterCache, rosterTTL time.Duration, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *RosterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if credentials == nil {
		credentials = NewCredentialService()
	}
	return &RosterService{
		students:    students,
		credentials: credentials,
		mail:        mail,
		cache:       cache,
		rosterTTL:   rosterTTL,
		metrics:     metrics,
		validator:   validate,
		logger:      logger,
	}
}

// AddStudent enrolls one student, mints credentials and returns the
// plaintext password exactly once. A welcome mail is attempted; delivery
// failure is logged and never fails the enrollment.
func (s *RosterService) AddStudent(ctx context.Context, req models.AddStudentRequest) (*models.AddStudentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "all fields are required")
	}

	student, password, err := s.enroll(ctx, models.BulkStudentRow{
		Name:    req.Name,
		Email:   req.Email,
		Class:   req.Class,
		Section: req.Section,
		RollNo:  req.RollNo,
	}, req.TeacherID)
	if err != nil {
		return nil, err
	}

	s.invalidateRoster(ctx, req.TeacherID)
	s.notify(ctx, student, password)

	return &models.AddStudentResponse{StudentID: student.StudentID, Password: password}, nil
}

// AddStudentsBulk processes rows in input order, accumulating per-row
// failures as "Row <n>: <reason>" strings. A bad row never aborts the
// batch; each success triggers its own notification attempt.
func (s *RosterService) AddStudentsBulk(ctx context.Context, req models.BulkAddRequest) (*models.BulkAddResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "teacher id and at least one row are required")
	}

	result := &models.BulkAddResult{
		Added:  make([]models.BulkAddedStudent, 0, len(req.Rows)),
		Errors: make([]string, 0),
	}

	for i, row := range req.Rows {
		student, password, err := s.enroll(ctx, row, req.TeacherID)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s", i+1, rowErrorReason(err, row)))
			continue
		}
		result.Added = append(result.Added, models.BulkAddedStudent{
			StudentID: student.StudentID,
			Name:      student.Name,
			Email:     student.Email,
			Password:  password,
		})
		s.notify(ctx, student, password)
	}

	if len(result.Added) > 0 {
		s.invalidateRoster(ctx, req.TeacherID)
	}

	return result, nil
}

// ListByTeacher returns a teacher's students ordered by name, served from
// cache when fresh.
func (s *RosterService) ListByTeacher(ctx context.Context, teacherID string) ([]models.Student, error) {
	key := repository.RosterKey(teacherID)
	var cached []models.Student
	if s.cache != nil {
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			s.metrics.RecordCacheOperation(true)
			return cached, nil
		}
		s.metrics.RecordCacheOperation(false)
	}

	students, err := s.students.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, students, s.rosterTTL); err != nil {
			s.logger.Warn("failed to cache roster", zap.Error(err))
		}
	}

	return students, nil
}

// enroll performs the generate-hash-persist sequence shared by single and
// bulk enrollment, regenerating the student id on the rare collision.
func (s *RosterService) enroll(ctx context.Context, row models.BulkStudentRow, teacherID string) (*models.Student, string, error) {
	if row.Name == "" || row.Email == "" || row.Class == "" || row.Section == "" || row.RollNo == "" {
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "all fields are required")
	}

	password, err := s.credentials.GeneratePassword()
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to generate password")
	}
	hash, err := s.credentials.HashPassword(password)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	for attempt := 0; attempt < studentIDRetries; attempt++ {
		studentID, err := s.credentials.GenerateStudentID()
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to generate student id")
		}

		student := &models.Student{
			StudentID:    studentID,
			Name:         row.Name,
			Email:        row.Email,
			PasswordHash: hash,
			Class:        row.Class,
			Section:      row.Section,
			RollNo:       row.RollNo,
			TeacherID:    teacherID,
		}

		err = s.students.Create(ctx, student)
		if err == nil {
			s.metrics.RecordEnrollment()
			return student, password, nil
		}
		if errors.Is(err, appErrors.ErrDuplicateStudentID) {
			s.logger.Warn("student id collision, regenerating", zap.String("student_id", studentID))
			continue
		}
		var appErr *appErrors.Error
		if errors.As(err, &appErr) {
			return nil, "", appErr
		}
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}

	return nil, "", appErrors.Clone(appErrors.ErrInternal, "could not allocate a unique student id")
}

// notify performs exactly one delivery attempt. Enrollment success is
// independent of delivery success.
func (s *RosterService) notify(ctx context.Context, student *models.Student, password string) {
	if s.mail == nil {
		return
	}
	body := fmt.Sprintf(welcomeTemplate, student.Name, student.StudentID, password, student.Class, student.Section, student.RollNo)
	if err := s.mail.Send(ctx, student.Email, "Your Student Account Details", body); err != nil {
		s.logger.Error("failed to send enrollment email",
			zap.String("student_id", student.StudentID),
			zap.Error(err),
		)
	}
}

func (s *RosterService) invalidateRoster(ctx context.Context, teacherID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, repository.RosterKey(teacherID)); err != nil {
		s.logger.Warn("failed to invalidate roster cache", zap.Error(err))
	}
}

func rowErrorReason(err error, row models.BulkStudentRow) string {
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		if appErr.Code == appErrors.ErrDuplicateEmail.Code {
			return fmt.Sprintf("student with email %s already exists", row.Email)
		}
		return appErr.Message
	}
	return err.Error()
}
