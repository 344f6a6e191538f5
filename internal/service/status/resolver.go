// Package status turns raw attendance into day verdicts and range summaries.
// Every function here is pure: the caller supplies "today" and a snapshot of
// settings and attendance.
package status

import (
	"time"

	"github.com/presenz/presenz-backend-go/internal/domain/attendance"
	"github.com/presenz/presenz-backend-go/internal/domain/employee"
	"github.com/presenz/presenz-backend-go/internal/domain/settings"
	"github.com/presenz/presenz-backend-go/internal/domain/shiftrule"
)

// Context is the calendar situation of one employee on one date.
type Context struct {
	Date            string
	Weekday         time.Weekday
	Rule            shiftrule.ShiftRule
	IsGlobalHoliday bool
	IsUnpaidHoliday bool
	IsWeeklyOff     bool
	IsPastOrToday   bool
	IsPast          bool
	HolidayPaid     bool
	WeeklyOffPaid   bool
}

// ResolveRule returns the employee's shift rule. A missing or dangling
// assignment falls back to the first configured rule, and an empty rule list
// to the built-in default.
func ResolveRule(emp employee.Employee, ruleSets []shiftrule.ShiftRule) shiftrule.ShiftRule {
	if len(ruleSets) == 0 {
		return shiftrule.Default()
	}
	if emp.ShiftRuleID != nil {
		for _, r := range ruleSets {
			if r.ID == *emp.ShiftRuleID {
				return r
			}
		}
	}
	return ruleSets[0]
}

// ResolveContext computes the calendar context of date for emp. Dates are
// compared by calendar day in date's and today's own locations.
func ResolveContext(date, today time.Time, emp employee.Employee, s settings.Settings) Context {
	rule := ResolveRule(emp, s.RuleSets)
	key := DateKey(date)
	todayKey := DateKey(today)

	return Context{
		Date:            key,
		Weekday:         date.Weekday(),
		Rule:            rule,
		IsGlobalHoliday: s.IsHoliday(key),
		IsUnpaidHoliday: s.IsUnpaidHoliday(key) || emp.HasUnpaidHoliday(key),
		IsWeeklyOff:     rule.IsWeeklyOff(date.Weekday()),
		IsPastOrToday:   key <= todayKey,
		IsPast:          key < todayKey,
		HolidayPaid:     emp.PaidHolidays.Resolve(rule.HolidaysPaid()),
		WeeklyOffPaid:   emp.PaidWeeklyOffs.Resolve(rule.WeeklyOffsPaid()),
	}
}

// DateKey formats t as the "yyyy-MM-dd" key attendance is stored under.
func DateKey(t time.Time) string {
	return t.Format(attendance.DateLayout)
}
