package employee

import "errors"

var (
	ErrEmployeeNotFound          = errors.New("employee not found")
	ErrEmailExists               = errors.New("email already registered")
	ErrUIDExists                 = errors.New("identity already linked to another employee")
	ErrInvalidImage              = errors.New("invalid image: only jpg, jpeg, png allowed")
	ErrUnknownShiftRule          = errors.New("shift rule does not exist")
	ErrUnknownAttendanceLocation = errors.New("attendance location does not exist")
)
