package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/classtrack/classtrack-api/internal/models"
	appErrors "github.com/classtrack/classtrack-api/pkg/errors"
)

type mockTeacherRepo struct {
	teachers map[string]models.Teacher
	created  []models.Teacher
}

func (m *mockTeacherRepo) Create(ctx context.Context, teacher *models.Teacher) error {
	if m.teachers == nil {
		m.teachers = make(map[string]models.Teacher)
	}
	if _, ok := m.teachers[teacher.Email]; ok {
		return appErrors.ErrDuplicateEmail
	}
	if teacher.ID == "" {
		teacher.ID = "t-generated"
	}
	m.teachers[teacher.Email] = *teacher
	m.created = append(m.created, *teacher)
	return nil
}

func (m *mockTeacherRepo) FindByEmail(ctx context.Context, email string) (*models.Teacher, error) {
	if t, ok := m.teachers[email]; ok {
		return &t, nil
	}
	return nil, sql.ErrNoRows
}

type mockStudentFinder struct {
	students map[string]models.Student
}

func (m *mockStudentFinder) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	if s, ok := m.students[email]; ok {
		return &s, nil
	}
	return nil, sql.ErrNoRows
}

func newAuthService(teachers *mockTeacherRepo, students *mockStudentFinder) *AuthService {
	return NewAuthService(teachers, students, NewCredentialService(), validator.New(), zap.NewNop())
}

func TestAuthServiceRegisterTeacher(t *testing.T) {
	repo := &mockTeacherRepo{}
	svc := newAuthService(repo, &mockStudentFinder{})

	res, err := svc.RegisterTeacher(context.Background(), models.RegisterTeacherRequest{
		Name:     "Jane Roe",
		Email:    "jane@school.edu",
		Password: "secret-1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.TeacherID)
	require.Len(t, repo.created, 1)
	assert.NotEqual(t, "secret-1", repo.created[0].PasswordHash)
}

func TestAuthServiceRegisterTeacherValidation(t *testing.T) {
	svc := newAuthService(&mockTeacherRepo{}, &mockStudentFinder{})

	_, err := svc.RegisterTeacher(context.Background(), models.RegisterTeacherRequest{Email: "jane@school.edu"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceRegisterTeacherDuplicate(t *testing.T) {
	repo := &mockTeacherRepo{}
	svc := newAuthService(repo, &mockStudentFinder{})

	req := models.RegisterTeacherRequest{Name: "Jane Roe", Email: "jane@school.edu", Password: "secret-1"}
	_, err := svc.RegisterTeacher(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.RegisterTeacher(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrDuplicateEmail.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginTeacher(t *testing.T) {
	repo := &mockTeacherRepo{}
	svc := newAuthService(repo, &mockStudentFinder{})

	_, err := svc.RegisterTeacher(context.Background(), models.RegisterTeacherRequest{
		Name: "Jane Roe", Email: "jane@school.edu", Password: "secret-1",
	})
	require.NoError(t, err)

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "jane@school.edu", Password: "secret-1"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleTeacher, res.Role)
	assert.Equal(t, "Jane Roe", res.Name)
	assert.NotEmpty(t, res.UserID)
	assert.Empty(t, res.StudentID)
}

func TestAuthServiceLoginStudent(t *testing.T) {
	creds := NewCredentialService()
	hash, err := creds.HashPassword("pw123456")
	require.NoError(t, err)

	students := &mockStudentFinder{students: map[string]models.Student{
		"john@school.edu": {
			StudentID:    "AB12CD34",
			Name:         "John Doe",
			Email:        "john@school.edu",
			PasswordHash: hash,
			Class:        "10",
			Section:      "A",
			RollNo:       "42",
		},
	}}
	svc := newAuthService(&mockTeacherRepo{}, students)

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "john@school.edu", Password: "pw123456"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, res.Role)
	assert.Equal(t, "AB12CD34", res.StudentID)
	assert.Equal(t, "10", res.Class)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	repo := &mockTeacherRepo{}
	svc := newAuthService(repo, &mockStudentFinder{})

	_, err := svc.RegisterTeacher(context.Background(), models.RegisterTeacherRequest{
		Name: "Jane Roe", Email: "jane@school.edu", Password: "secret-1",
	})
	require.NoError(t, err)

	// The error must not reveal whether the email or the password failed.
	_, err = svc.Login(context.Background(), models.LoginRequest{Email: "jane@school.edu", Password: "wrongpass"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Message, appErr.Message)
}

func TestAuthServiceLoginUnknownEmail(t *testing.T) {
	svc := newAuthService(&mockTeacherRepo{}, &mockStudentFinder{})

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "nobody@school.edu", Password: "whatever"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginTeacherPrecedence(t *testing.T) {
	creds := NewCredentialService()
	teacherHash, err := creds.HashPassword("teacher-pw")
	require.NoError(t, err)
	studentHash, err := creds.HashPassword("student-pw")
	require.NoError(t, err)

	// Same email on both sides; the teacher account wins when its
	// password verifies.
	teachers := &mockTeacherRepo{teachers: map[string]models.Teacher{
		"shared@school.edu": {ID: "t-1", Name: "Jane Roe", Email: "shared@school.edu", PasswordHash: teacherHash},
	}}
	students := &mockStudentFinder{students: map[string]models.Student{
		"shared@school.edu": {StudentID: "AB12CD34", Name: "John Doe", Email: "shared@school.edu", PasswordHash: studentHash},
	}}
	svc := newAuthService(teachers, students)

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "shared@school.edu", Password: "teacher-pw"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleTeacher, res.Role)

	res, err = svc.Login(context.Background(), models.LoginRequest{Email: "shared@school.edu", Password: "student-pw"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, res.Role)
}
