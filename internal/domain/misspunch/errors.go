package misspunch

import "errors"

var (
	ErrRequestNotFound  = errors.New("miss punch request not found")
	ErrFutureDate       = errors.New("cannot request a correction for a future date")
	ErrInvalidPunchType = errors.New("punch_type must be one of: in, out")
)
