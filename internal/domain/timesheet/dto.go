package timesheet

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/presenz/presenz-backend-go/internal/pkg/validator"
)

var maxEntryHours = decimal.NewFromInt(24)

type CreateTimesheetRequest struct {
	Date    string  `json:"date"`
	Entries []Entry `json:"entries"`
}

// FilledEntries drops rows without any description.
func (r *CreateTimesheetRequest) FilledEntries() []Entry {
	out := make([]Entry, 0, len(r.Entries))
	for _, e := range r.Entries {
		if !e.IsBlank() {
			out = append(out, e)
		}
	}
	return out
}

func (r *CreateTimesheetRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	filled := r.FilledEntries()
	if len(filled) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "entries",
			Message: ErrNoEntries.Error(),
		})
	}
	for i, e := range filled {
		if e.Hours.IsNegative() || e.Hours.GreaterThan(maxEntryHours) {
			errs = append(errs, validator.ValidationError{
				Field:   "entries[" + validator.Itoa(i) + "].hours",
				Message: "hours must be between 0 and 24",
			})
		}
		if err := validator.Struct(e); err != nil {
			var ve validator.ValidationErrors
			if errors.As(err, &ve) {
				for _, fe := range ve {
					fe.Field = "entries[" + validator.Itoa(i) + "]." + fe.Field
					errs = append(errs, fe)
				}
			}
		}
	}

	return errs.Err()
}

// ListTimesheetRequest filters timesheets by owner and "yyyy-MM" month.
type ListTimesheetRequest struct {
	UserID string `json:"user_id"`
	Month  string `json:"month"`
}

func (r *ListTimesheetRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month != "" {
		if _, ok := validator.IsValidMonth(r.Month); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be in YYYY-MM format",
			})
		}
	}

	return errs.Err()
}
