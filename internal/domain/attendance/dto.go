package attendance

import (
	"strings"

	"github.com/presenz/presenz-backend-go/internal/pkg/validator"
)

// PunchRequest is sent by an employee punching in or out.
type PunchRequest struct {
	Selfie    string   `json:"selfie"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Accuracy  float64  `json:"accuracy"`
}

func (r *PunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Selfie) {
		errs = append(errs, validator.ValidationError{
			Field:   "selfie",
			Message: ErrSelfieRequired.Error(),
		})
	} else if !strings.HasPrefix(r.Selfie, "data:image/") {
		errs = append(errs, validator.ValidationError{
			Field:   "selfie",
			Message: ErrInvalidSelfie.Error(),
		})
	}

	if r.Latitude == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude is required",
		})
	} else if *r.Latitude < -90 || *r.Latitude > 90 {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude is required",
		})
	} else if *r.Longitude < -180 || *r.Longitude > 180 {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.Accuracy < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "accuracy",
			Message: "accuracy must not be negative",
		})
	}

	return errs.Err()
}

type PunchResponse struct {
	Date           string  `json:"date"`
	Entry          Entry   `json:"entry"`
	Verdict        Verdict `json:"verdict"`
	DistanceMeters int     `json:"distance_meters"`
}

type LocationInfo struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters float64 `json:"radius_meters"`
}

// TodayResponse tells the client what the employee may do right now.
type TodayResponse struct {
	Date          string        `json:"date"`
	Entry         *Entry        `json:"entry"`
	Verdict       Verdict       `json:"verdict"`
	Location      *LocationInfo `json:"location"`
	CanPunchIn    bool          `json:"can_punch_in"`
	CanPunchOut   bool          `json:"can_punch_out"`
	BlockedReason string        `json:"blocked_reason,omitempty"`
}

// MarkRequest is an admin edit of one employee-day. Without punch times the
// entry is stored as a bare status token.
type MarkRequest struct {
	Date        string  `json:"-"`
	EmployeeKey string  `json:"-"`
	Status      string  `json:"status"`
	PunchIn     *string `json:"punch_in"`
	PunchOut    *string `json:"punch_out"`
}

func (r *MarkRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: ErrInvalidDate.Error(),
		})
	}
	if validator.IsEmpty(r.EmployeeKey) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_key",
			Message: ErrEmployeeKeyRequired.Error(),
		})
	}
	if !IsStatusToken(r.Status) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: present, absent, late",
		})
	}
	if r.PunchIn != nil && !validator.IsValidPunchTime(*r.PunchIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "punch_in",
			Message: "punch_in must be in HH:mm:ss format",
		})
	}
	if r.PunchOut != nil && !validator.IsValidPunchTime(*r.PunchOut) {
		errs = append(errs, validator.ValidationError{
			Field:   "punch_out",
			Message: "punch_out must be in HH:mm:ss format",
		})
	}

	return errs.Err()
}

// Entry builds the entry to store for this request.
func (r *MarkRequest) Entry() Entry {
	if r.PunchIn == nil && r.PunchOut == nil {
		return Token(r.Status)
	}
	return Entry{Status: r.Status, PunchIn: r.PunchIn, PunchOut: r.PunchOut}
}

type MarkAllRequest struct {
	Date   string `json:"-"`
	Status string `json:"status"`
}

func (r *MarkAllRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: ErrInvalidDate.Error(),
		})
	}
	if !IsStatusToken(r.Status) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: present, absent, late",
		})
	}

	return errs.Err()
}

// DayStats counts raw status tokens for a date across active staff.
type DayStats struct {
	Total    int `json:"total"`
	Present  int `json:"present"`
	Absent   int `json:"absent"`
	Late     int `json:"late"`
	Unmarked int `json:"unmarked"`
}

type DayRow struct {
	EmployeeID  string  `json:"employee_id"`
	EmployeeKey string  `json:"employee_key"`
	Name        string  `json:"name"`
	Entry       *Entry  `json:"entry"`
	Verdict     Verdict `json:"verdict"`
}

type DayResponse struct {
	Date  string   `json:"date"`
	Rows  []DayRow `json:"rows"`
	Stats DayStats `json:"stats"`
}
