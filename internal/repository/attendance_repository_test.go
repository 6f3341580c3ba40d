package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classtrack/classtrack-api/internal/models"
)

func TestAttendanceRepositoryInsert(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO attendance").
		WithArgs(sqlmock.AnyArg(), "AB12CD34", day, string(models.AttendanceStatusPresent), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("a-1"))

	event := &models.AttendanceEvent{StudentID: "AB12CD34", Date: day, Status: models.AttendanceStatusPresent}
	inserted, err := repo.Insert(context.Background(), event)
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.False(t, event.MarkedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryInsertConflict(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	// ON CONFLICT DO NOTHING returns no rows when the day is taken.
	mock.ExpectQuery("INSERT INTO attendance").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	event := &models.AttendanceEvent{StudentID: "AB12CD34", Date: day, Status: models.AttendanceStatusPresent}
	inserted, err := repo.Insert(context.Background(), event)
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryListBetween(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	from := time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "student_id", "date", "status", "marked_at"}).
		AddRow("a-2", "AB12CD34", time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), "present", time.Now()).
		AddRow("a-1", "AB12CD34", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), "present", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("WHERE student_id = $1 AND date BETWEEN $2 AND $3")).
		WithArgs("AB12CD34", from, to).
		WillReturnRows(rows)

	events, err := repo.ListBetween(context.Background(), "AB12CD34", from, to)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.True(t, events[0].Date.After(events[1].Date))
	assert.NoError(t, mock.ExpectationsWereMet())
}
