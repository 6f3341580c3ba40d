package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/classtrack/classtrack-api/internal/models"
	appErrors "github.com/classtrack/classtrack-api/pkg/errors"
)

// Postgres raises SQLSTATE 23505 on unique constraint violations.
const uniqueViolationCode = "23505"

const (
	studentEmailConstraint = "students_email_key"
	studentIDConstraint    = "students_student_id_key"
)

// isUniqueViolation reports whether err is a unique constraint violation,
// optionally scoped to a named constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != uniqueViolationCode {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// Create inserts a new student record. The unique indexes on email and
// student_id are the arbiters for concurrent enrollments; violations map
// to ErrDuplicateEmail and ErrDuplicateStudentID respectively so callers
// can retry id generation without treating the email as free.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	if student.CreatedAt.IsZero() {
		student.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO students (id, student_id, name, email, password_hash, class, section, roll_no, teacher_id, created_at)
        VALUES (:id, :student_id, :name, :email, :password_hash, :class, :section, :roll_no, :teacher_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		switch {
		case isUniqueViolation(err, studentIDConstraint):
			return appErrors.ErrDuplicateStudentID
		case isUniqueViolation(err, ""):
			return appErrors.Clone(appErrors.ErrDuplicateEmail, fmt.Sprintf("student with email %s already exists", student.Email))
		}
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// FindByEmail fetches a student by exact email. Returns sql.ErrNoRows when
// no student matches.
func (r *StudentRepository) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	const query = `SELECT id, student_id, name, email, password_hash, class, section, roll_no, teacher_id, created_at
        FROM students WHERE email = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, email); err != nil {
		return nil, err
	}
	return &student, nil
}

// FindByStudentID fetches a student by natural key.
func (r *StudentRepository) FindByStudentID(ctx context.Context, studentID string) (*models.Student, error) {
	const query = `SELECT id, student_id, name, email, password_hash, class, section, roll_no, teacher_id, created_at
        FROM students WHERE student_id = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, studentID); err != nil {
		return nil, err
	}
	return &student, nil
}

// ListByTeacher returns all students owned by a teacher, ordered by name.
func (r *StudentRepository) ListByTeacher(ctx context.Context, teacherID string) ([]models.Student, error) {
	const query = `SELECT id, student_id, name, email, password_hash, class, section, roll_no, teacher_id, created_at
        FROM students WHERE teacher_id = $1 ORDER BY name`
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, teacherID); err != nil {
		return nil, fmt.Errorf("list students by teacher: %w", err)
	}
	return students, nil
}
