package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/classtrack/classtrack-api/internal/models"
)

// AttendanceRepository handles the append-only daily attendance ledger.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Insert writes one attendance event. The (student_id, date) unique
// constraint arbitrates concurrent marking: ON CONFLICT DO NOTHING makes
// the check-then-insert a single atomic statement, and a losing writer
// observes inserted == false rather than an error.
func (r *AttendanceRepository) Insert(ctx context.Context, event *models.AttendanceEvent) (bool, error) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.MarkedAt.IsZero() {
		event.MarkedAt = time.Now().UTC()
	}
	const query = `INSERT INTO attendance (id, student_id, date, status, marked_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (student_id, date) DO NOTHING
        RETURNING id`
	var insertedID string
	err := r.db.QueryRowxContext(ctx, query, event.ID, event.StudentID, event.Date, event.Status, event.MarkedAt).Scan(&insertedID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("insert attendance: %w", err)
	}
	return true, nil
}

// ListBetween returns the events for a student within [from, to],
// most recent first.
func (r *AttendanceRepository) ListBetween(ctx context.Context, studentID string, from, to time.Time) ([]models.AttendanceEvent, error) {
	const query = `SELECT id, student_id, date, status, marked_at
        FROM attendance
        WHERE student_id = $1 AND date BETWEEN $2 AND $3
        ORDER BY date DESC`
	var events []models.AttendanceEvent
	if err := r.db.SelectContext(ctx, &events, query, studentID, from, to); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return events, nil
}
