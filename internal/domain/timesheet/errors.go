package timesheet

import "errors"

var (
	ErrTimesheetNotFound = errors.New("timesheet not found")
	ErrNotOwner          = errors.New("you can only delete your own timesheets")
	ErrNoEntries         = errors.New("please fill in at least one entry")
)
