package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classtrack/classtrack-api/internal/models"
	appErrors "github.com/classtrack/classtrack-api/pkg/errors"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestTeacherRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectExec("INSERT INTO teachers").
		WithArgs(sqlmock.AnyArg(), "Jane Roe", "jane@school.edu", "hash", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	teacher := &models.Teacher{Name: "Jane Roe", Email: "jane@school.edu", PasswordHash: "hash"}
	require.NoError(t, repo.Create(context.Background(), teacher))
	assert.NotEmpty(t, teacher.ID)
	assert.False(t, teacher.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryCreateDuplicateEmail(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectExec("INSERT INTO teachers").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "teachers_email_key"})

	err := repo.Create(context.Background(), &models.Teacher{Name: "Jane Roe", Email: "jane@school.edu", PasswordHash: "hash"})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrDuplicateEmail.Code, appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryFindByEmail(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at"}).
		AddRow("t-1", "Jane Roe", "jane@school.edu", "hash", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, email, password_hash, created_at FROM teachers WHERE email = $1")).
		WithArgs("jane@school.edu").
		WillReturnRows(rows)

	teacher, err := repo.FindByEmail(context.Background(), "jane@school.edu")
	require.NoError(t, err)
	assert.Equal(t, "t-1", teacher.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryFindByEmailNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectQuery("SELECT id, name, email, password_hash, created_at FROM teachers").
		WithArgs("nobody@school.edu").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByEmail(context.Background(), "nobody@school.edu")
	require.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
