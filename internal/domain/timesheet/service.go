package timesheet

import "context"

type TimesheetService interface {
	// Create records a day's work log for the caller
	Create(ctx context.Context, req CreateTimesheetRequest) (Timesheet, error)

	// ListMine returns the caller's timesheets, optionally for one month
	ListMine(ctx context.Context, month string) ([]Timesheet, error)

	// List returns timesheets across employees (admin)
	List(ctx context.Context, req ListTimesheetRequest) ([]Timesheet, error)

	// Template returns blank hourly rows for the caller's shift
	Template(ctx context.Context) ([]Entry, error)

	// Delete removes one of the caller's timesheets
	Delete(ctx context.Context, id string) error
}
