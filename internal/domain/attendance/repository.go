package attendance

import (
	"context"
	"time"
)

// AttendanceRepository stores one document per date holding every employee's entry.
type AttendanceRepository interface {
	GetDay(ctx context.Context, date time.Time) (Day, error)
	// GetDayForUpdate locks the date's document until the surrounding transaction ends.
	GetDayForUpdate(ctx context.Context, date time.Time) (Day, error)
	// SetEntry merges one employee's entry into the date's document.
	SetEntry(ctx context.Context, date time.Time, key string, entry Entry) error
	// SetEntries merges several entries into the date's document at once.
	SetEntries(ctx context.Context, date time.Time, entries Day) error
	// ReplaceDay overwrites the whole document for date.
	ReplaceDay(ctx context.Context, date time.Time, day Day) error
	ListRange(ctx context.Context, from, to time.Time) (map[string]Day, error)
	ListAll(ctx context.Context) (map[string]Day, error)
	CountDays(ctx context.Context) (int, error)
}
