package models

import "time"

// Teacher represents an instructor who owns a roster of students.
type Teacher struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// RegisterTeacherRequest is the payload for teacher registration.
type RegisterTeacherRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegisterTeacherResponse confirms a successful registration.
type RegisterTeacherResponse struct {
	TeacherID string `json:"teacher_id"`
}
