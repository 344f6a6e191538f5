package backup

import (
	"github.com/presenz/presenz-backend-go/internal/pkg/validator"
)

type ImportRequest struct {
	Dump
}

func (r *ImportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Staff == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "staff",
			Message: ErrStaffRequired.Error(),
		})
	}
	for date := range r.Attendance {
		if _, ok := validator.IsValidDate(date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "attendance." + date,
				Message: ErrInvalidDumpDate.Error(),
			})
		}
	}
	if r.Settings != nil {
		if err := validator.Struct(*r.Settings); err != nil {
			return err
		}
	}

	return errs.Err()
}

type ImportResult struct {
	Stats
	SettingsRestored bool `json:"settings_restored"`
}
