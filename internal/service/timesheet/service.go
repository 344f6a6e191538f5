package timesheet

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/presenz/presenz-backend-go/internal/domain/employee"
	"github.com/presenz/presenz-backend-go/internal/domain/settings"
	"github.com/presenz/presenz-backend-go/internal/domain/timesheet"
	employeeService "github.com/presenz/presenz-backend-go/internal/service/employee"
	settingsService "github.com/presenz/presenz-backend-go/internal/service/settings"
	"github.com/presenz/presenz-backend-go/internal/service/status"
)

type TimesheetServiceImpl struct {
	timesheets timesheet.TimesheetRepository
	staff      employee.EmployeeRepository
	settings   settings.SettingsRepository
}

func NewTimesheetService(timesheets timesheet.TimesheetRepository, staff employee.EmployeeRepository, settingsRepo settings.SettingsRepository) timesheet.TimesheetService {
	return &TimesheetServiceImpl{
		timesheets: timesheets,
		staff:      staff,
		settings:   settingsRepo,
	}
}

// Create implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Create(ctx context.Context, req timesheet.CreateTimesheetRequest) (timesheet.Timesheet, error) {
	emp, err := employeeService.Current(ctx, s.staff)
	if err != nil {
		return timesheet.Timesheet{}, err
	}
	if err := req.Validate(); err != nil {
		return timesheet.Timesheet{}, err
	}

	entries := req.FilledEntries()
	created, err := s.timesheets.Create(ctx, timesheet.Timesheet{
		UserID:     emp.Key(),
		UserEmail:  emp.Email,
		UserName:   emp.Name,
		Date:       req.Date,
		Entries:    entries,
		TotalHours: timesheet.SumHours(entries),
	})
	if err != nil {
		return timesheet.Timesheet{}, fmt.Errorf("failed to create timesheet: %w", err)
	}

	slog.Info("timesheet submitted", "id", created.ID, "employee_key", created.UserID, "date", created.Date, "hours", created.TotalHours.String())
	return created, nil
}

// ListMine implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) ListMine(ctx context.Context, month string) ([]timesheet.Timesheet, error) {
	emp, err := employeeService.Current(ctx, s.staff)
	if err != nil {
		return nil, err
	}
	return s.List(ctx, timesheet.ListTimesheetRequest{UserID: emp.Key(), Month: month})
}

// List implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) List(ctx context.Context, req timesheet.ListTimesheetRequest) ([]timesheet.Timesheet, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	list, err := s.timesheets.List(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to list timesheets: %w", err)
	}
	return list, nil
}

// Template implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Template(ctx context.Context) ([]timesheet.Entry, error) {
	emp, err := employeeService.Current(ctx, s.staff)
	if err != nil {
		return nil, err
	}
	doc, err := settingsService.Load(ctx, s.settings)
	if err != nil {
		return nil, err
	}
	rule := status.ResolveRule(emp, doc.RuleSets)
	return timesheet.HourlyTemplate(rule.StartTime, rule.EndTime), nil
}

// Delete implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Delete(ctx context.Context, id string) error {
	emp, err := employeeService.Current(ctx, s.staff)
	if err != nil {
		return err
	}
	ts, err := s.timesheets.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if ts.UserID != emp.Key() {
		return timesheet.ErrNotOwner
	}
	if err := s.timesheets.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("timesheet deleted", "id", id, "employee_key", ts.UserID)
	return nil
}
