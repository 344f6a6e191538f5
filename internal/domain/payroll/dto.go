package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/presenz/presenz-backend-go/internal/pkg/validator"
)

type PayrollRequest struct {
	Month string `json:"month"`
}

func (r *PayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month != "" {
		if _, ok := validator.IsValidMonth(r.Month); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: ErrInvalidPeriod.Error(),
			})
		}
	}

	return errs.Err()
}

// Period resolves the requested month, defaulting to the month containing today.
func (r *PayrollRequest) Period(today time.Time) (year int, month time.Month) {
	if t, ok := validator.IsValidMonth(r.Month); ok {
		return t.Year(), t.Month()
	}
	return today.Year(), today.Month()
}

type PayrollRow struct {
	EmployeeID  string          `json:"employee_id"`
	EmployeeKey string          `json:"employee_key"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Role        string          `json:"role"`
	Salary      decimal.Decimal `json:"salary"`
	DailyRate   decimal.Decimal `json:"daily_rate"`
	PresentDays float64         `json:"present_days"`
	AbsentDays  int             `json:"absent_days"`
	HalfDays    int             `json:"half_days"`
	Payout      decimal.Decimal `json:"payout"`
}

type PayrollSummary struct {
	Month       string          `json:"month"`
	DaysInMonth int             `json:"days_in_month"`
	GeneratedAt time.Time       `json:"generated_at"`
	Rows        []PayrollRow    `json:"rows"`
	Total       decimal.Decimal `json:"total"`
}
