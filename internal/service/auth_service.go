package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/classtrack/classtrack-api/internal/models"
	appErrors "github.com/classtrack/classtrack-api/pkg/errors"
)

type authTeacherRepository interface {
	Create(ctx context.Context, teacher *models.Teacher) error
	FindByEmail(ctx context.Context, email string) (*models.Teacher, error)
}

type authStudentRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Student, error)
}

// AuthService provides teacher registration and stateless login for both
// roles. No tokens or sessions are issued; every call re-validates
// credentials.
type AuthService struct {
	teachers    authTeacherRepository
	students    authStudentRepository
	credentials *CredentialService
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(teachers authTeacherRepository, students authStudentRepository, credentials *CredentialService, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if credentials == nil {
		credentials = NewCredentialService()
	}
	return &AuthService{teachers: teachers, students: students, credentials: credentials, validator: validate, logger: logger}
}

// RegisterTeacher creates a teacher account.
func (s *AuthService) RegisterTeacher(ctx context.Context, req models.RegisterTeacherRequest) (*models.RegisterTeacherResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "all fields are required")
	}

	hash, err := s.credentials.HashPassword(req.Password)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	teacher := &models.Teacher{Name: req.Name, Email: req.Email, PasswordHash: hash}
	if err := s.teachers.Create(ctx, teacher); err != nil {
		var appErr *appErrors.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create teacher")
	}

	s.logger.Info("teacher registered", zap.String("teacher_id", teacher.ID))
	return &models.RegisterTeacherResponse{TeacherID: teacher.ID}, nil
}

// Login verifies credentials against teachers first, then students. A
// teacher match wins whenever the password verifies; the error never
// reveals whether the email or the password was wrong.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "email and password are required")
	}

	teacher, err := s.teachers.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch teacher")
	}
	if teacher != nil && s.credentials.VerifyPassword(req.Password, teacher.PasswordHash) {
		return &models.LoginResponse{
			Role:   models.RoleTeacher,
			UserID: teacher.ID,
			Name:   teacher.Name,
			Email:  teacher.Email,
		}, nil
	}

	student, err := s.students.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch student")
	}
	if student != nil && s.credentials.VerifyPassword(req.Password, student.PasswordHash) {
		return &models.LoginResponse{
			Role:      models.RoleStudent,
			StudentID: student.StudentID,
			Name:      student.Name,
			Email:     student.Email,
			Class:     student.Class,
			Section:   student.Section,
			RollNo:    student.RollNo,
		}, nil
	}

	return nil, appErrors.ErrInvalidCredentials
}
