package models

import "time"

// Student represents a learner enrolled under exactly one teacher. The
// 8-character StudentID is the natural key used by all downstream
// operations; the surrogate ID never leaves the storage layer.
type Student struct {
	ID           string    `db:"id" json:"-"`
	StudentID    string    `db:"student_id" json:"student_id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Class        string    `db:"class" json:"class"`
	Section      string    `db:"section" json:"section"`
	RollNo       string    `db:"roll_no" json:"roll_no"`
	TeacherID    string    `db:"teacher_id" json:"teacher_id"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// AddStudentRequest is the payload for single enrollment.
type AddStudentRequest struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Class     string `json:"class" validate:"required"`
	Section   string `json:"section" validate:"required"`
	RollNo    string `json:"roll_no" validate:"required"`
	TeacherID string `json:"teacher_id" validate:"required"`
}

// AddStudentResponse carries the generated credentials. The plaintext
// password is returned exactly once and never stored.
type AddStudentResponse struct {
	StudentID string `json:"student_id"`
	Password  string `json:"password"`
}

// BulkStudentRow is one tabular row of a bulk import.
type BulkStudentRow struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Class   string `json:"class"`
	Section string `json:"section"`
	RollNo  string `json:"roll_no"`
}

// BulkAddRequest enrolls many students under one teacher.
type BulkAddRequest struct {
	TeacherID string           `json:"teacher_id" validate:"required"`
	Rows      []BulkStudentRow `json:"rows" validate:"required,min=1"`
}

// BulkAddedStudent describes one successfully imported row.
type BulkAddedStudent struct {
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// BulkAddResult is the mixed outcome of a bulk import. A failed row never
// aborts the batch; its reason is recorded as "Row <n>: <reason>".
type BulkAddResult struct {
	Added  []BulkAddedStudent `json:"added_students"`
	Errors []string           `json:"errors"`
}
