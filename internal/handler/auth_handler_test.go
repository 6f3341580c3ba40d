package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classtrack/classtrack-api/internal/models"
	appErrors "github.com/classtrack/classtrack-api/pkg/errors"
	"github.com/classtrack/classtrack-api/pkg/response"
)

type authServiceMock struct {
	registerResp *models.RegisterTeacherResponse
	registerErr  error
	loginResp    *models.LoginResponse
	loginErr     error
}

func (m *authServiceMock) RegisterTeacher(ctx context.Context, req models.RegisterTeacherRequest) (*models.RegisterTeacherResponse, error) {
	return m.registerResp, m.registerErr
}

func (m *authServiceMock) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	return m.loginResp, m.loginErr
}

func postJSON(t *testing.T, body string) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return w, c
}

func TestAuthHandlerRegisterTeacher(t *testing.T) {
	mockSvc := &authServiceMock{registerResp: &models.RegisterTeacherResponse{TeacherID: "t-1"}}
	h := NewAuthHandler(mockSvc)

	w, c := postJSON(t, `{"name":"Jane Roe","email":"jane@school.edu","password":"secret-1"}`)
	h.RegisterTeacher(c)

	require.Equal(t, http.StatusCreated, w.Code)
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Nil(t, envelope.Error)
}

func TestAuthHandlerRegisterTeacherInvalidBody(t *testing.T) {
	h := NewAuthHandler(&authServiceMock{})

	w, c := postJSON(t, `{"name":"Jane Roe"`)
	h.RegisterTeacher(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandlerRegisterTeacherDuplicate(t *testing.T) {
	h := NewAuthHandler(&authServiceMock{registerErr: appErrors.ErrDuplicateEmail})

	w, c := postJSON(t, `{"name":"Jane Roe","email":"jane@school.edu","password":"secret-1"}`)
	h.RegisterTeacher(c)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandlerLogin(t *testing.T) {
	mockSvc := &authServiceMock{loginResp: &models.LoginResponse{Role: models.RoleTeacher, UserID: "t-1", Name: "Jane Roe", Email: "jane@school.edu"}}
	h := NewAuthHandler(mockSvc)

	w, c := postJSON(t, `{"email":"jane@school.edu","password":"secret-1"}`)
	h.Login(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"teacher"`)
}

func TestAuthHandlerLoginInvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&authServiceMock{loginErr: appErrors.ErrInvalidCredentials})

	w, c := postJSON(t, `{"email":"jane@school.edu","password":"wrongpass"}`)
	h.Login(c)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid email or password")
}
