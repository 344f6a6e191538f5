package settings

import (
	"github.com/presenz/presenz-backend-go/internal/domain/shiftrule"
	"github.com/presenz/presenz-backend-go/internal/pkg/validator"
)

// UpdateSettingsRequest replaces the whole settings document.
type UpdateSettingsRequest struct {
	Holidays       []string              `json:"holidays"`
	UnpaidHolidays []string              `json:"unpaid_holidays"`
	RuleSets       []shiftrule.ShiftRule `json:"rule_sets"`
	Locations      []Location            `json:"locations"`
}

// Settings returns the normalized document described by the request.
func (r *UpdateSettingsRequest) Settings() Settings {
	s := Settings{
		Holidays:       r.Holidays,
		UnpaidHolidays: r.UnpaidHolidays,
		RuleSets:       r.RuleSets,
		Locations:      r.Locations,
	}
	s.Normalize()
	return s
}

func (r *UpdateSettingsRequest) Validate() error {
	s := r.Settings()
	if len(s.RuleSets) == 0 {
		return validator.ValidationErrors{{
			Field:   "rule_sets",
			Message: ErrRuleSetRequired.Error(),
		}}
	}
	return validator.Struct(s)
}

type HolidayRequest struct {
	Date   string `json:"date"`
	Unpaid bool   `json:"unpaid"`
}

func (r *HolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: ErrInvalidHolidayDate.Error(),
		})
	}

	return errs.Err()
}
