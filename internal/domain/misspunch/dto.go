package misspunch

import (
	"strings"

	"github.com/presenz/presenz-backend-go/internal/domain/approval"
	"github.com/presenz/presenz-backend-go/internal/pkg/validator"
)

type CreateMissPunchRequest struct {
	Date      string    `json:"date"`
	PunchType PunchType `json:"punch_type"`
	PunchTime string    `json:"punch_time"`
	Reason    string    `json:"reason"`
}

// Normalize trims input and expands "HH:mm" punch times to "HH:mm:00".
func (r *CreateMissPunchRequest) Normalize() {
	r.Date = strings.TrimSpace(r.Date)
	r.PunchTime = strings.TrimSpace(r.PunchTime)
	r.Reason = strings.TrimSpace(r.Reason)
	if validator.IsValidClock(r.PunchTime) {
		r.PunchTime += ":00"
	}
}

func (r *CreateMissPunchRequest) Validate() error {
	r.Normalize()
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}
	if r.PunchType != PunchIn && r.PunchType != PunchOut {
		errs = append(errs, validator.ValidationError{
			Field:   "punch_type",
			Message: ErrInvalidPunchType.Error(),
		})
	}
	if !validator.IsValidPunchTime(r.PunchTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "punch_time",
			Message: "punch_time must be in HH:mm or HH:mm:ss format",
		})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	} else if len(r.Reason) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 500 characters",
		})
	}

	return errs.Err()
}

type ListMissPunchRequest struct {
	Status string `json:"status"`
}

func (r *ListMissPunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, err := approval.ParseStatus(r.Status); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: err.Error(),
		})
	}

	return errs.Err()
}
