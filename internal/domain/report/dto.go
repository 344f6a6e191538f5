package report

import (
	"time"

	"github.com/presenz/presenz-backend-go/internal/pkg/validator"
)

// MonthRequest selects a calendar month as "yyyy-MM"; empty means the current month.
type MonthRequest struct {
	Month string `json:"month"`
}

func (r *MonthRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month != "" {
		if _, ok := validator.IsValidMonth(r.Month); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: ErrInvalidMonth.Error(),
			})
		}
	}

	return errs.Err()
}

// Period resolves the requested month, defaulting to the month containing today.
func (r *MonthRequest) Period(today time.Time) (year int, month time.Month) {
	if t, ok := validator.IsValidMonth(r.Month); ok {
		return t.Year(), t.Month()
	}
	return today.Year(), today.Month()
}

type HistoryRequest struct {
	MonthRequest
	EmployeeKey string `json:"-"`
}

type EmployeeMonthly struct {
	EmployeeID  string    `json:"employee_id"`
	EmployeeKey string    `json:"employee_key"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	ShiftName   string    `json:"shift_name"`
	Summary     Aggregate `json:"summary"`
}

type MonthlyReport struct {
	Month       string            `json:"month"`
	DaysInMonth int               `json:"days_in_month"`
	GeneratedAt time.Time         `json:"generated_at"`
	Employees   []EmployeeMonthly `json:"employees"`
}

// HistoryResponse is an employee's month with an estimated payout.
type HistoryResponse struct {
	Month           string   `json:"month"`
	EmployeeKey     string   `json:"employee_key"`
	Name            string   `json:"name"`
	Salary          string   `json:"salary"`
	DailyRate       string   `json:"daily_rate"`
	EstimatedPayout string   `json:"estimated_payout"`
	PresentDays     float64  `json:"present_days"`
	AbsentDays      int      `json:"absent_days"`
	Days            []DayRow `json:"days"`
}
