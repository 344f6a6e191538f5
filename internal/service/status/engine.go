package status

import (
	"time"

	"github.com/presenz/presenz-backend-go/internal/domain/attendance"
)

// Color tokens understood by the web client.
const (
	ColorPresent = "present"
	ColorAbsent  = "absent"
	ColorLate    = "late"
	ColorHalfDay = "orange"
	ColorPaid    = "success"
	ColorMuted   = "secondary"
	ColorNone    = "transparent"
	ColorError   = "gray"
)

const (
	LabelUnmarked        = "Unmarked"
	LabelAbsent          = "Absent"
	LabelLate            = "Late"
	LabelPresent         = "Present"
	LabelWorking         = "Present (On-Site)"
	LabelFullDay         = "Full Day"
	LabelHalfDay         = "Half Day"
	LabelShort           = "Short (Absent)"
	LabelHolidayPaid     = "Holiday (Paid)"
	LabelHolidayUnpaid   = "Holiday (Unpaid)"
	LabelWeeklyOffPaid   = "Weekly Off (Paid)"
	LabelWeeklyOffUnpaid = "Weekly Off (Unpaid)"
	LabelError           = "Error"
)

const day = 24 * time.Hour

// Compute derives the verdict for one employee-day. entry is nil when nothing
// was recorded. Malformed punch times yield an error verdict.
func Compute(entry *attendance.Entry, ctx Context) attendance.Verdict {
	switch {
	case ctx.IsUnpaidHoliday && ctx.IsPastOrToday:
		return holiday(false)
	case ctx.IsUnpaidHoliday:
		return upcoming()
	case ctx.IsGlobalHoliday && ctx.IsPastOrToday:
		return holiday(ctx.HolidayPaid)
	case ctx.IsWeeklyOff && ctx.IsPastOrToday:
		return weeklyOff(ctx.WeeklyOffPaid)
	case ctx.IsGlobalHoliday || ctx.IsWeeklyOff:
		return upcoming()
	case entry == nil:
		if ctx.IsPast {
			return attendance.Verdict{Status: attendance.CategoryAbsent, Label: LabelAbsent, Color: ColorAbsent}
		}
		return upcoming()
	}
	return computeEntry(*entry, ctx)
}

func computeEntry(e attendance.Entry, ctx Context) attendance.Verdict {
	late := e.Status == attendance.StatusLate

	switch {
	case e.Status == attendance.StatusAbsent:
		return attendance.Verdict{Status: attendance.CategoryAbsent, Label: LabelAbsent, Color: ColorAbsent}
	case late && !e.HasPunchIn():
		return attendance.Verdict{Status: attendance.CategoryLate, Label: LabelLate, Color: ColorLate, Late: true}
	case (e.Status == attendance.StatusPresent || late) && e.HasPunchIn():
		if !e.HasPunchOut() {
			return attendance.Verdict{Status: attendance.CategoryWorking, Label: LabelWorking, Color: ColorPresent, Late: late}
		}
		hours, err := Duration(*e.PunchIn, *e.PunchOut)
		if err != nil {
			return attendance.Verdict{Status: attendance.CategoryError, Label: LabelError, Color: ColorError, Late: late}
		}
		v := byDuration(hours, ctx)
		v.Late = late
		return v
	case e.Status == attendance.StatusPresent:
		return attendance.Verdict{Status: attendance.CategoryPresent, Label: LabelPresent, Color: ColorPresent, Credit: 1}
	}
	return attendance.Verdict{Status: attendance.CategoryUnmarked, Label: LabelUnmarked, Color: ColorMuted}
}

func byDuration(hours float64, ctx Context) attendance.Verdict {
	d := hours
	switch {
	case hours >= ctx.Rule.MinFullDayHours:
		return attendance.Verdict{Status: attendance.CategoryPresent, Label: LabelFullDay, Color: ColorPresent, Duration: &d, Credit: 1}
	case hours >= ctx.Rule.MinHalfDayHours:
		return attendance.Verdict{Status: attendance.CategoryHalfDay, Label: LabelHalfDay, Color: ColorHalfDay, Duration: &d, Credit: 0.5}
	default:
		return attendance.Verdict{Status: attendance.CategoryShort, Label: LabelShort, Color: ColorAbsent, Duration: &d}
	}
}

// Duration returns the hours between two "HH:mm:ss" punch times at whole
// minute resolution. A punch-out earlier than the punch-in is taken to be on
// the following day.
func Duration(punchIn, punchOut string) (float64, error) {
	in, err := time.Parse(attendance.TimeLayout, punchIn)
	if err != nil {
		return 0, err
	}
	out, err := time.Parse(attendance.TimeLayout, punchOut)
	if err != nil {
		return 0, err
	}
	diff := out.Sub(in)
	if diff < 0 {
		diff += day
	}
	return float64(int64(diff/time.Minute)) / 60, nil
}

func holiday(paid bool) attendance.Verdict {
	if paid {
		return attendance.Verdict{Status: attendance.CategoryHoliday, Label: LabelHolidayPaid, Color: ColorPaid, Credit: 1}
	}
	return attendance.Verdict{Status: attendance.CategoryHoliday, Label: LabelHolidayUnpaid, Color: ColorMuted}
}

func weeklyOff(paid bool) attendance.Verdict {
	if paid {
		return attendance.Verdict{Status: attendance.CategoryWeeklyOff, Label: LabelWeeklyOffPaid, Color: ColorPaid, Credit: 1}
	}
	return attendance.Verdict{Status: attendance.CategoryWeeklyOff, Label: LabelWeeklyOffUnpaid, Color: ColorMuted}
}

func upcoming() attendance.Verdict {
	return attendance.Verdict{Status: attendance.CategoryUpcoming, Color: ColorNone}
}
