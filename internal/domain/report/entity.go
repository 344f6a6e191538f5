package report

import "github.com/presenz/presenz-backend-go/internal/domain/attendance"

// DayRow is one date of an employee's evaluated attendance.
type DayRow struct {
	Date     string             `json:"date"`
	Weekday  string             `json:"weekday"`
	Verdict  attendance.Verdict `json:"verdict"`
	PunchIn  string             `json:"punch_in"`
	PunchOut string             `json:"punch_out"`
	Hours    *float64           `json:"hours"`
}

// Aggregate summarizes one employee over a date range.
type Aggregate struct {
	From          string   `json:"from"`
	To            string   `json:"to"`
	PresentDays   float64  `json:"present_days"`
	AbsentDays    int      `json:"absent_days"`
	HalfDays      int      `json:"half_days"`
	LateDays      int      `json:"late_days"`
	HolidayDays   int      `json:"holiday_days"`
	WeeklyOffDays int      `json:"weekly_off_days"`
	TotalHours    float64  `json:"total_hours"`
	Days          []DayRow `json:"days"`
}

// History returns the evaluated days without upcoming ones, newest first.
func (a Aggregate) History() []DayRow {
	out := make([]DayRow, 0, len(a.Days))
	for i := len(a.Days) - 1; i >= 0; i-- {
		if a.Days[i].Verdict.Status == attendance.CategoryUpcoming {
			continue
		}
		out = append(out, a.Days[i])
	}
	return out
}
