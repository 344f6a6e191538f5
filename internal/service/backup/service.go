package backup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/presenz/presenz-backend-go/internal/domain/approval"
	"github.com/presenz/presenz-backend-go/internal/domain/attendance"
	"github.com/presenz/presenz-backend-go/internal/domain/backup"
	"github.com/presenz/presenz-backend-go/internal/domain/employee"
	"github.com/presenz/presenz-backend-go/internal/domain/leave"
	"github.com/presenz/presenz-backend-go/internal/domain/misspunch"
	"github.com/presenz/presenz-backend-go/internal/domain/settings"
	"github.com/presenz/presenz-backend-go/internal/domain/timesheet"
	"github.com/presenz/presenz-backend-go/internal/pkg/database"
	"github.com/presenz/presenz-backend-go/internal/pkg/metrics"
	"github.com/presenz/presenz-backend-go/internal/pkg/sse"
	settingsService "github.com/presenz/presenz-backend-go/internal/service/settings"
)

// Repositories groups every store the backup touches.
type Repositories struct {
	Staff       employee.EmployeeRepository
	Attendance  attendance.AttendanceRepository
	Settings    settings.SettingsRepository
	MissPunches misspunch.MissPunchRepository
	Leaves      leave.LeaveRepository
	Timesheets  timesheet.TimesheetRepository
}

type BackupServiceImpl struct {
	tx      database.Transactor
	repos   Repositories
	hub     sse.Publisher
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewBackupService(tx database.Transactor, repos Repositories, hub sse.Publisher, m *metrics.Metrics) backup.BackupService {
	return &BackupServiceImpl{
		tx:      tx,
		repos:   repos,
		hub:     hub,
		metrics: m,
		now:     time.Now,
	}
}

// Export implements backup.BackupService.
func (s *BackupServiceImpl) Export(ctx context.Context) (backup.Dump, error) {
	dump := backup.Dump{ExportedAt: s.now()}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		staff, err := s.repos.Staff.List(gCtx, employee.ListFilter{IncludeRemoved: true})
		if err != nil {
			return fmt.Errorf("failed to list employees: %w", err)
		}
		dump.Staff = staff
		return nil
	})

	g.Go(func() error {
		days, err := s.repos.Attendance.ListAll(gCtx)
		if err != nil {
			return fmt.Errorf("failed to list attendance: %w", err)
		}
		dump.Attendance = days
		return nil
	})

	g.Go(func() error {
		doc, err := settingsService.Load(gCtx, s.repos.Settings)
		if err != nil {
			return err
		}
		dump.Settings = &doc
		return nil
	})

	g.Go(func() error {
		list, err := s.repos.MissPunches.List(gCtx, "")
		if err != nil {
			return fmt.Errorf("failed to list miss punch requests: %w", err)
		}
		dump.MissPunchRequests = list
		return nil
	})

	g.Go(func() error {
		list, err := s.repos.Leaves.List(gCtx, "")
		if err != nil {
			return fmt.Errorf("failed to list leave requests: %w", err)
		}
		dump.LeaveRequests = list
		return nil
	})

	g.Go(func() error {
		list, err := s.repos.Timesheets.List(gCtx, timesheet.ListTimesheetRequest{})
		if err != nil {
			return fmt.Errorf("failed to list timesheets: %w", err)
		}
		dump.Timesheets = list
		return nil
	})

	if err := g.Wait(); err != nil {
		return backup.Dump{}, err
	}

	s.metrics.Export("backup", "json")
	slog.Info("backup exported", "staff", len(dump.Staff), "attendance_days", len(dump.Attendance))
	return dump, nil
}

// Import implements backup.BackupService. Everything is written in one
// transaction; records without an id get a fresh one.
func (s *BackupServiceImpl) Import(ctx context.Context, req backup.ImportRequest) (backup.ImportResult, error) {
	if err := req.Validate(); err != nil {
		return backup.ImportResult{}, err
	}

	var result backup.ImportResult
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, e := range req.Staff {
			if e.ID == "" {
				e.ID = newID()
			}
			if e.Status == "" {
				e.Status = employee.StatusActive
			}
			if err := s.repos.Staff.Upsert(ctx, e); err != nil {
				return fmt.Errorf("failed to import employee %s: %w", e.ID, err)
			}
			result.Staff++
		}

		for date, day := range req.Attendance {
			d, err := time.Parse(attendance.DateLayout, date)
			if err != nil {
				return backup.ErrInvalidDumpDate
			}
			if err := s.repos.Attendance.ReplaceDay(ctx, d, day); err != nil {
				return fmt.Errorf("failed to import attendance %s: %w", date, err)
			}
			result.AttendanceDays++
		}

		if req.Settings != nil {
			doc := *req.Settings
			doc.Normalize()
			if err := s.repos.Settings.Save(ctx, doc); err != nil {
				return fmt.Errorf("failed to import settings: %w", err)
			}
			result.SettingsRestored = true
		}

		for _, r := range req.MissPunchRequests {
			if r.ID == "" {
				r.ID = newID()
			}
			if r.Status == "" {
				r.Decision = approval.Pending()
			}
			if err := s.repos.MissPunches.Upsert(ctx, r); err != nil {
				return fmt.Errorf("failed to import miss punch request %s: %w", r.ID, err)
			}
			result.MissPunchRequests++
		}

		for _, r := range req.LeaveRequests {
			if r.ID == "" {
				r.ID = newID()
			}
			if r.Status == "" {
				r.Decision = approval.Pending()
			}
			if err := s.repos.Leaves.Upsert(ctx, r); err != nil {
				return fmt.Errorf("failed to import leave request %s: %w", r.ID, err)
			}
			result.LeaveRequests++
		}

		for _, ts := range req.Timesheets {
			if ts.ID == "" {
				ts.ID = newID()
			}
			if err := s.repos.Timesheets.Upsert(ctx, ts); err != nil {
				return fmt.Errorf("failed to import timesheet %s: %w", ts.ID, err)
			}
			result.Timesheets++
		}
		return nil
	})
	if err != nil {
		return backup.ImportResult{}, err
	}

	s.publish(ctx, req)
	slog.Info("backup imported",
		"staff", result.Staff,
		"attendance_days", result.AttendanceDays,
		"miss_punch_requests", result.MissPunchRequests,
		"leave_requests", result.LeaveRequests,
		"timesheets", result.Timesheets,
	)
	return result, nil
}

func (s *BackupServiceImpl) publish(ctx context.Context, req backup.ImportRequest) {
	if staff, err := s.repos.Staff.List(ctx, employee.ListFilter{}); err == nil {
		s.hub.Publish(sse.TopicStaff, sse.Event{Name: "staff", Data: staff})
	} else {
		slog.Error("failed to load staff snapshot", "error", err)
	}

	if req.Settings != nil {
		if doc, err := settingsService.Load(ctx, s.repos.Settings); err == nil {
			s.hub.Publish(sse.TopicSettings, sse.Event{Name: "settings", Data: doc})
		}
	}

	for date, day := range req.Attendance {
		s.hub.Publish(sse.AttendanceTopic(date), sse.Event{Name: "attendance", Data: day})
	}
}

// Stats implements backup.BackupService.
func (s *BackupServiceImpl) Stats(ctx context.Context) (backup.Stats, error) {
	var stats backup.Stats

	g, gCtx := errgroup.WithContext(ctx)
	count := func(dst *int, name string, fn func(context.Context) (int, error)) {
		g.Go(func() error {
			n, err := fn(gCtx)
			if err != nil {
				return fmt.Errorf("failed to count %s: %w", name, err)
			}
			*dst = n
			return nil
		})
	}
	count(&stats.Staff, "employees", s.repos.Staff.Count)
	count(&stats.AttendanceDays, "attendance days", s.repos.Attendance.CountDays)
	count(&stats.MissPunchRequests, "miss punch requests", s.repos.MissPunches.Count)
	count(&stats.LeaveRequests, "leave requests", s.repos.Leaves.Count)
	count(&stats.Timesheets, "timesheets", s.repos.Timesheets.Count)

	if err := g.Wait(); err != nil {
		return backup.Stats{}, err
	}
	return stats, nil
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
