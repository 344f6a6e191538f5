package attendance

import (
	"context"
)

type AttendanceService interface {
	// PunchIn records the caller's punch-in for today after selfie and geofence checks
	PunchIn(ctx context.Context, req PunchRequest) (PunchResponse, error)

	// PunchOut records the caller's punch-out for today, merging into the punch-in record
	PunchOut(ctx context.Context, req PunchRequest) (PunchResponse, error)

	// GetMyToday returns the caller's entry, verdict and punch eligibility for today
	GetMyToday(ctx context.Context) (TodayResponse, error)

	// GetDay returns every active employee's entry and verdict for a date (admin)
	GetDay(ctx context.Context, date string) (DayResponse, error)

	// Mark writes an admin edit for one employee-day
	Mark(ctx context.Context, req MarkRequest) (Entry, error)

	// Reset marks an employee-day absent
	Reset(ctx context.Context, date, employeeKey string) error

	// MarkAll writes the same status token for every active employee on a date
	MarkAll(ctx context.Context, req MarkAllRequest) error
}
