package backup

import "errors"

var (
	ErrStaffRequired   = errors.New("backup must contain a staff list")
	ErrInvalidDumpDate = errors.New("attendance keys must be dates in YYYY-MM-DD format")
)
