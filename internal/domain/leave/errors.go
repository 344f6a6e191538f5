package leave

import "errors"

var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrInvalidLeaveType     = errors.New("leave_type must be one of: casual, sick, earned, personal, other")
	ErrEndBeforeStart       = errors.New("end_date must not be before start_date")
)
