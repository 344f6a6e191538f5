package attendance

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyPunchedIn     = errors.New("you have already punched in today")
	ErrNotPunchedIn         = errors.New("you have not punched in yet")
	ErrAlreadyPunchedOut    = errors.New("you have already punched out today")
	ErrLocationNotSet       = errors.New("Attendance location is not set. Contact admin.")
	ErrOutsideAllowedRadius = errors.New("you are outside the allowed attendance location")
	ErrSelfieRequired       = errors.New("Selfie is required")
	ErrInvalidSelfie        = errors.New("selfie must be a base64 encoded JPEG or PNG data URL")
	ErrInvalidDate          = errors.New("date must be in YYYY-MM-DD format")
	ErrEmployeeKeyRequired  = errors.New("employee key is required")
)

// GeofenceError reports how far outside the allowed radius a punch was attempted.
type GeofenceError struct {
	DistanceMeters int
	RadiusMeters   int
}

func (e *GeofenceError) Error() string {
	return fmt.Sprintf("%s (%dm away, allowed %dm)", ErrOutsideAllowedRadius, e.DistanceMeters, e.RadiusMeters)
}

func (e *GeofenceError) Is(target error) bool {
	return target == ErrOutsideAllowedRadius
}
