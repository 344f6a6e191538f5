package settings

import "errors"

var (
	ErrRuleSetRequired    = errors.New("at least one shift rule must be configured")
	ErrHolidayNotFound    = errors.New("holiday not found")
	ErrInvalidHolidayDate = errors.New("holiday date must be in YYYY-MM-DD format")
)
