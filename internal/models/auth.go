package models

// Role distinguishes the two account kinds that can log in.
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// LoginRequest is the payload for credential verification. There is no
// session state; credentials are re-validated on every call.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the profile of the matched account. Teachers are
// identified by their surrogate id, students by their natural student_id.
type LoginResponse struct {
	Role      Role   `json:"role"`
	UserID    string `json:"user_id,omitempty"`
	StudentID string `json:"student_id,omitempty"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Class     string `json:"class,omitempty"`
	Section   string `json:"section,omitempty"`
	RollNo    string `json:"roll_no,omitempty"`
}
