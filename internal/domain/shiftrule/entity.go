package shiftrule

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// WeekdayNames indexes English weekday names by time.Weekday (Sunday = 0).
var WeekdayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// WeekdayName returns the English name for d regardless of locale.
func WeekdayName(d time.Weekday) string {
	return WeekdayNames[d]
}

// IsWeekdayName reports whether name is one of WeekdayNames.
func IsWeekdayName(name string) bool {
	for _, n := range WeekdayNames {
		if n == name {
			return true
		}
	}
	return false
}

const (
	DefaultID           = "default"
	DefaultName         = "General Shift"
	DefaultStartTime    = "09:00"
	DefaultEndTime      = "18:00"
	DefaultMinHalfDay   = 4.0
	DefaultMinFullDay   = 8.0
	DefaultRadiusMeters = 100.0
)

type ShiftRule struct {
	ID              string   `json:"id" validate:"required,max=64"`
	Name            string   `json:"name" validate:"required,max=100"`
	StartTime       string   `json:"start_time,omitempty" validate:"omitempty,clock"`
	EndTime         string   `json:"end_time,omitempty" validate:"omitempty,clock"`
	MinHalfDayHours float64  `json:"min_half_day_hours" validate:"gte=0,lte=24"`
	MinFullDayHours float64  `json:"min_full_day_hours" validate:"gtefield=MinHalfDayHours,lte=24"`
	WeeklyOffs      []string `json:"weekly_offs" validate:"dive,weekday"`
	PaidHolidays    *bool    `json:"paid_holidays,omitempty"`
	PaidWeeklyOffs  *bool    `json:"paid_weekly_offs,omitempty"`
}

// Default is the built-in rule used when no rule sets are configured.
func Default() ShiftRule {
	return ShiftRule{
		ID:              DefaultID,
		Name:            DefaultName,
		StartTime:       DefaultStartTime,
		EndTime:         DefaultEndTime,
		MinHalfDayHours: DefaultMinHalfDay,
		MinFullDayHours: DefaultMinFullDay,
		WeeklyOffs:      []string{},
	}
}

// IsWeeklyOff reports whether d is one of the rule's weekly off days.
func (r ShiftRule) IsWeeklyOff(d time.Weekday) bool {
	name := WeekdayName(d)
	for _, off := range r.WeeklyOffs {
		if off == name {
			return true
		}
	}
	return false
}

// HolidaysPaid returns the rule's paid-holiday flag; unset means paid.
func (r ShiftRule) HolidaysPaid() bool {
	return r.PaidHolidays == nil || *r.PaidHolidays
}

// WeeklyOffsPaid returns the rule's paid-weekly-off flag; unset means paid.
func (r ShiftRule) WeeklyOffsPaid() bool {
	return r.PaidWeeklyOffs == nil || *r.PaidWeeklyOffs
}

// PayOverride is an employee-level override of a rule's paid flag.
// On the wire it is null (inherit), true (paid) or false (unpaid).
type PayOverride int8

const (
	Inherit PayOverride = iota
	Paid
	Unpaid
)

// Resolve returns the effective flag, falling back to inherited when o is Inherit.
func (o PayOverride) Resolve(inherited bool) bool {
	switch o {
	case Paid:
		return true
	case Unpaid:
		return false
	default:
		return inherited
	}
}

func (o PayOverride) String() string {
	switch o {
	case Paid:
		return "paid"
	case Unpaid:
		return "unpaid"
	default:
		return "inherit"
	}
}

// Bool converts o to a nullable bool for storage.
func (o PayOverride) Bool() *bool {
	switch o {
	case Paid:
		b := true
		return &b
	case Unpaid:
		b := false
		return &b
	default:
		return nil
	}
}

// OverrideFromBool converts a nullable bool back into a PayOverride.
func OverrideFromBool(b *bool) PayOverride {
	if b == nil {
		return Inherit
	}
	if *b {
		return Paid
	}
	return Unpaid
}

func (o PayOverride) MarshalJSON() ([]byte, error) {
	switch o {
	case Paid:
		return []byte("true"), nil
	case Unpaid:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

func (o *PayOverride) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*o = Inherit
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("pay override must be true, false or null: %w", err)
	}
	*o = OverrideFromBool(&b)
	return nil
}
