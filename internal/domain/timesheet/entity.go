package timesheet

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Entry struct {
	Time    string          `json:"time" validate:"max=50"`
	Project string          `json:"project" validate:"max=200"`
	Task    string          `json:"task" validate:"max=500"`
	Hours   decimal.Decimal `json:"hours"`
}

// IsBlank reports whether the entry carries no work description.
func (e Entry) IsBlank() bool {
	return strings.TrimSpace(e.Time) == "" &&
		strings.TrimSpace(e.Project) == "" &&
		strings.TrimSpace(e.Task) == ""
}

type Timesheet struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	UserEmail  string          `json:"user_email"`
	UserName   string          `json:"user_name"`
	Date       string          `json:"date"`
	Entries    []Entry         `json:"entries"`
	TotalHours decimal.Decimal `json:"total_hours"`
	CreatedAt  time.Time       `json:"created_at"`
}

// SumHours adds up the hours of every entry.
func SumHours(entries []Entry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Hours)
	}
	return total
}

// HourlyTemplate builds one blank one-hour row per hour between a shift's
// "HH:mm" start and end. A shift without usable bounds yields a single row.
func HourlyTemplate(start, end string) []Entry {
	from, errFrom := hourOf(start)
	to, errTo := hourOf(end)
	if errFrom != nil || errTo != nil || to <= from {
		return []Entry{{Hours: decimal.NewFromInt(1)}}
	}

	rows := make([]Entry, 0, to-from)
	for h := from; h < to; h++ {
		rows = append(rows, Entry{
			Time:  fmt.Sprintf("%s – %s", clock12(h), clock12(h+1)),
			Hours: decimal.NewFromInt(1),
		})
	}
	return rows
}

func hourOf(hhmm string) (int, error) {
	h, _, ok := strings.Cut(hhmm, ":")
	if !ok {
		return 0, fmt.Errorf("invalid clock %q", hhmm)
	}
	return strconv.Atoi(h)
}

func clock12(h int) string {
	suffix := "AM"
	if h%24 >= 12 {
		suffix = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:00 %s", h12, suffix)
}
