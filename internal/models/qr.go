package models

// IdentityPayload is the canonical structured record serialized for the
// external QR encoder. It is a pure projection of the student record and
// never includes credentials or attendance data.
type IdentityPayload struct {
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
	Class     string `json:"class"`
	Section   string `json:"section"`
	RollNo    string `json:"roll_no"`
}
