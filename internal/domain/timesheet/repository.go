package timesheet

import "context"

type TimesheetRepository interface {
	Create(ctx context.Context, ts Timesheet) (Timesheet, error)
	GetByID(ctx context.Context, id string) (Timesheet, error)
	// List returns timesheets newest first; empty filter fields match all.
	List(ctx context.Context, filter ListTimesheetRequest) ([]Timesheet, error)
	Delete(ctx context.Context, id string) error
	// Upsert writes a timesheet with its id preserved.
	Upsert(ctx context.Context, ts Timesheet) error
	Count(ctx context.Context) (int, error)
}
