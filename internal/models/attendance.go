package models

import "time"

// AttendanceStatus represents the status recorded for a calendar day.
type AttendanceStatus string

const (
	// AttendanceStatusPresent is the only status the ledger writes.
	AttendanceStatusPresent AttendanceStatus = "present"
	// AttendanceStatusAbsent is synthesized for report days without an
	// event; it is never persisted.
	AttendanceStatusAbsent AttendanceStatus = "absent"
)

// AttendanceEvent is one append-only daily attendance record. At most one
// event exists per (student_id, date) pair.
type AttendanceEvent struct {
	ID        string           `db:"id" json:"id"`
	StudentID string           `db:"student_id" json:"student_id"`
	Date      time.Time        `db:"date" json:"date"`
	Status    AttendanceStatus `db:"status" json:"status"`
	MarkedAt  time.Time        `db:"marked_at" json:"marked_at"`
}

// MarkAttendanceRequest is the payload for marking attendance. Date is
// optional and defaults to today.
type MarkAttendanceRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	Date      string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// WeeklyReportDay is one entry of the 7-day report window.
type WeeklyReportDay struct {
	Date   string           `json:"date"`
	Status AttendanceStatus `json:"status"`
}

// WeeklyReport is the per-student 7-day attendance view, most recent
// day first.
type WeeklyReport struct {
	StudentID string            `json:"student_id"`
	Name      string            `json:"name"`
	Class     string            `json:"class"`
	Section   string            `json:"section"`
	RollNo    string            `json:"roll_no"`
	Days      []WeeklyReportDay `json:"weekly_attendance"`
}
