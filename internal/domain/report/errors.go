package report

import "errors"

var (
	ErrInvalidMonth     = errors.New("month must be in YYYY-MM format")
	ErrEmployeeNotFound = errors.New("employee not found")
)
