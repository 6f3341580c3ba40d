package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/classtrack/classtrack-api/internal/models"
	appErrors "github.com/classtrack/classtrack-api/pkg/errors"
)

// TeacherRepository manages persistence for teachers.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// Create inserts a new teacher record. The unique index on email is the
// arbiter for concurrent registrations; a violation surfaces as
// ErrDuplicateEmail.
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	if teacher.ID == "" {
		teacher.ID = uuid.NewString()
	}
	if teacher.CreatedAt.IsZero() {
		teacher.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO teachers (id, name, email, password_hash, created_at)
        VALUES (:id, :name, :email, :password_hash, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, teacher); err != nil {
		if isUniqueViolation(err, "") {
			return appErrors.Clone(appErrors.ErrDuplicateEmail, "teacher with this email already exists")
		}
		return fmt.Errorf("create teacher: %w", err)
	}
	return nil
}

// FindByEmail fetches a teacher by exact email. Returns sql.ErrNoRows when
// no teacher matches.
func (r *TeacherRepository) FindByEmail(ctx context.Context, email string) (*models.Teacher, error) {
	const query = `SELECT id, name, email, password_hash, created_at FROM teachers WHERE email = $1`
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, email); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// FindByID fetches a teacher by surrogate id.
func (r *TeacherRepository) FindByID(ctx context.Context, id string) (*models.Teacher, error) {
	const query = `SELECT id, name, email, password_hash, created_at FROM teachers WHERE id = $1`
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, id); err != nil {
		return nil, err
	}
	return &teacher, nil
}
