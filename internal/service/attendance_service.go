package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/classtrack/classtrack-api/internal/models"
	"github.com/classtrack/classtrack-api/internal/repository"
	appErrors "github.com/classtrack/classtrack-api/pkg/errors"
)

const reportWindowDays = 7

type attendanceStudentRepository interface {
	FindByStudentID(ctx context.Context, studentID string) (*models.Student, error)
}

type attendanceEventRepository interface {
	Insert(ctx context.Context, event *models.AttendanceEvent) (bool, error)
	ListBetween(ctx context.Context, studentID string, from, to time.Time) ([]models.AttendanceEvent, error)
}

// AttendanceService marks daily attendance and produces the 7-day report.
type AttendanceService struct {
	events    attendanceEventRepository
	students  attendanceStudentRepository
	cache     rosterCache
	reportTTL time.Duration
	metrics   *MetricsService
	logger    *zap.Logger

	// now is the service clock; overridden in tests.
	now func() time.Time
}

// NewAttendanceService constructs an AttendanceService.
func NewAttendanceService(events attendanceEventRepository, students attendanceStudentRepository, cache rosterCache, reportTTL time.Duration, metrics *MetricsService, logger *zap.Logger) *AttendanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{
		events:    events,
		students:  students,
		cache:     cache,
		reportTTL: reportTTL,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

// Mark records a present event for the given calendar day (today when day
// is nil). A second mark for the same day fails with ErrAlreadyMarked; the
// store's uniqueness constraint is the arbiter under concurrency.
func (s *AttendanceService) Mark(ctx context.Context, studentID string, day *time.Time) (*models.AttendanceEvent, error) {
	student, err := s.findStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	date := truncateToDay(s.now())
	if day != nil {
		date = truncateToDay(*day)
	}

	event := &models.AttendanceEvent{
		StudentID: student.StudentID,
		Date:      date,
		Status:    models.AttendanceStatusPresent,
	}

	inserted, err := s.events.Insert(ctx, event)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to mark attendance")
	}
	if !inserted {
		s.metrics.RecordAttendanceMark("duplicate")
		return nil, appErrors.Clone(appErrors.ErrAlreadyMarked, "attendance already marked for today")
	}

	s.metrics.RecordAttendanceMark("marked")
	s.invalidateReports(ctx, student.StudentID)
	s.logger.Info("attendance marked",
		zap.String("student_id", student.StudentID),
		zap.String("date", date.Format(time.DateOnly)),
	)
	return event, nil
}

// WeeklyReport returns 7 entries for endDay down to endDay-6, most recent
// first. Days without an event are reported absent; absence is inferred,
// never stored.
func (s *AttendanceService) WeeklyReport(ctx context.Context, studentID string, endDay *time.Time) (*models.WeeklyReport, error) {
	student, err := s.findStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	end := truncateToDay(s.now())
	if endDay != nil {
		end = truncateToDay(*endDay)
	}
	start := end.AddDate(0, 0, -(reportWindowDays - 1))

	key := repository.ReportKey(student.StudentID, end.Format(time.DateOnly))
	if s.cache != nil {
		var cached models.WeeklyReport
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			s.metrics.RecordCacheOperation(true)
			return &cached, nil
		}
		s.metrics.RecordCacheOperation(false)
	}

	events, err := s.events.ListBetween(ctx, student.StudentID, start, end)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance")
	}

	recorded := make(map[string]models.AttendanceStatus, len(events))
	for _, ev := range events {
		recorded[ev.Date.Format(time.DateOnly)] = ev.Status
	}

	days := make([]models.WeeklyReportDay, 0, reportWindowDays)
	for i := 0; i < reportWindowDays; i++ {
		date := end.AddDate(0, 0, -i).Format(time.DateOnly)
		status := models.AttendanceStatusAbsent
		if recordedStatus, ok := recorded[date]; ok {
			status = recordedStatus
		}
		days = append(days, models.WeeklyReportDay{Date: date, Status: status})
	}

	report := &models.WeeklyReport{
		StudentID: student.StudentID,
		Name:      student.Name,
		Class:     student.Class,
		Section:   student.Section,
		RollNo:    student.RollNo,
		Days:      days,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, report, s.reportTTL); err != nil {
			s.logger.Warn("failed to cache weekly report", zap.Error(err))
		}
	}

	return report, nil
}

func (s *AttendanceService) findStudent(ctx context.Context, studentID string) (*models.Student, error) {
	student, err := s.students.FindByStudentID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrStudentNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch student")
	}
	return student, nil
}

func (s *AttendanceService) invalidateReports(ctx context.Context, studentID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, repository.ReportKey(studentID, "*")); err != nil {
		s.logger.Warn("failed to invalidate report cache", zap.Error(err))
	}
}

func truncateToDay(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
