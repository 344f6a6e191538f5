package leave

import (
	"strings"
	"time"

	"github.com/presenz/presenz-backend-go/internal/domain/approval"
	"github.com/presenz/presenz-backend-go/internal/pkg/validator"
)

type CreateLeaveRequest struct {
	LeaveType LeaveType `json:"leave_type"`
	DateType  DateType  `json:"date_type"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	Reason    string    `json:"reason"`
}

// Normalize trims input and collapses single-day requests to one date.
func (r *CreateLeaveRequest) Normalize() {
	r.StartDate = strings.TrimSpace(r.StartDate)
	r.EndDate = strings.TrimSpace(r.EndDate)
	r.Reason = strings.TrimSpace(r.Reason)
	if r.DateType == "" {
		r.DateType = DateSingle
	}
	if r.DateType == DateSingle {
		r.EndDate = r.StartDate
	}
}

func (r *CreateLeaveRequest) Validate() error {
	r.Normalize()
	var errs validator.ValidationErrors

	if !r.LeaveType.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: ErrInvalidLeaveType.Error(),
		})
	}
	if r.DateType != DateSingle && r.DateType != DateRange {
		errs = append(errs, validator.ValidationError{
			Field:   "date_type",
			Message: "date_type must be one of: single, range",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: ErrEndBeforeStart.Error(),
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	} else if len(r.Reason) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 1000 characters",
		})
	}

	return errs.Err()
}

// Days returns the inclusive day count of a validated request.
func (r *CreateLeaveRequest) Days() int {
	start, _ := time.Parse("2006-01-02", r.StartDate)
	end, _ := time.Parse("2006-01-02", r.EndDate)
	return TotalDays(start, end)
}

type ListLeaveRequest struct {
	Status string `json:"status"`
}

func (r *ListLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, err := approval.ParseStatus(r.Status); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: err.Error(),
		})
	}

	return errs.Err()
}
