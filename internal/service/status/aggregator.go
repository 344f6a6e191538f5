package status

import (
	"time"

	"github.com/presenz/presenz-backend-go/internal/domain/attendance"
	"github.com/presenz/presenz-backend-go/internal/domain/employee"
	"github.com/presenz/presenz-backend-go/internal/domain/report"
	"github.com/presenz/presenz-backend-go/internal/domain/settings"
)

// NoPunch is shown for a missing punch time.
const NoPunch = "-"

// Snapshot is the state a range is evaluated against.
type Snapshot struct {
	Settings   settings.Settings
	Attendance map[string]attendance.Day
}

// Entry looks up the raw entry stored for key on date.
func (s Snapshot) Entry(date, key string) *attendance.Entry {
	day, ok := s.Attendance[date]
	if !ok {
		return nil
	}
	e, ok := day[key]
	if !ok {
		return nil
	}
	return &e
}

// AggregateRange evaluates emp on every date from..to inclusive in ascending
// order and accumulates the summary counts.
func AggregateRange(emp employee.Employee, from, to, today time.Time, snap Snapshot) report.Aggregate {
	agg := report.Aggregate{
		From: DateKey(from),
		To:   DateKey(to),
		Days: []report.DayRow{},
	}
	key := emp.Key()

	for d := startOfDay(from); !d.After(to); d = d.AddDate(0, 0, 1) {
		ctx := ResolveContext(d, today, emp, snap.Settings)
		entry := snap.Entry(ctx.Date, key)
		v := Compute(entry, ctx)

		agg.PresentDays += v.Credit
		switch v.Status {
		case attendance.CategoryAbsent, attendance.CategoryShort:
			agg.AbsentDays++
		case attendance.CategoryHalfDay:
			agg.HalfDays++
		case attendance.CategoryHoliday:
			agg.HolidayDays++
		case attendance.CategoryWeeklyOff:
			agg.WeeklyOffDays++
		}
		if v.Late {
			agg.LateDays++
		}
		if v.Duration != nil {
			agg.TotalHours += *v.Duration
		}

		row := report.DayRow{
			Date:     ctx.Date,
			Weekday:  d.Format("Mon"),
			Verdict:  v,
			PunchIn:  NoPunch,
			PunchOut: NoPunch,
			Hours:    v.Duration,
		}
		if entry != nil {
			if entry.HasPunchIn() {
				row.PunchIn = *entry.PunchIn
			}
			if entry.HasPunchOut() {
				row.PunchOut = *entry.PunchOut
			}
		}
		agg.Days = append(agg.Days, row)
	}

	return agg
}

// MonthRange returns the first and last day of a calendar month in loc.
func MonthRange(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return first, first.AddDate(0, 1, -1)
}

// DaysInMonth returns the number of days in a calendar month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
