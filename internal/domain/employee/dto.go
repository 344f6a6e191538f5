package employee

import (
	"strings"

	"github.com/presenz/presenz-backend-go/internal/domain/shiftrule"
	"github.com/presenz/presenz-backend-go/internal/domain/user"
	"github.com/presenz/presenz-backend-go/internal/pkg/validator"
)

// ProfileRequest carries the editable staff fields shared by create and update.
type ProfileRequest struct {
	Name                 string                `json:"name"`
	Email                string                `json:"email"`
	Role                 string                `json:"role"`
	AccessRole           user.Role             `json:"access_role"`
	ShiftRuleID          *string               `json:"shift_rule_id"`
	AttendanceLocationID *string               `json:"attendance_location_id"`
	Salary               string                `json:"salary"`
	PaidHolidays         shiftrule.PayOverride `json:"paid_holidays"`
	PaidWeeklyOffs       shiftrule.PayOverride `json:"paid_weekly_offs"`
	UnpaidHolidays       []string              `json:"unpaid_holidays"`
	Phone                string                `json:"phone"`
	Address              string                `json:"address"`
	BankDetails          BankDetails           `json:"bank_details"`
}

func (r *ProfileRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Role = strings.TrimSpace(r.Role)
	if r.AccessRole == "" {
		r.AccessRole = user.RoleEmployee
	}
	if r.ShiftRuleID != nil && strings.TrimSpace(*r.ShiftRuleID) == "" {
		r.ShiftRuleID = nil
	}
	if r.AttendanceLocationID != nil && strings.TrimSpace(*r.AttendanceLocationID) == "" {
		r.AttendanceLocationID = nil
	}
}

func (r *ProfileRequest) validate() validator.ValidationErrors {
	r.normalize()
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	if r.AccessRole != user.RoleAdmin && r.AccessRole != user.RoleEmployee {
		errs = append(errs, validator.ValidationError{
			Field:   "access_role",
			Message: "access_role must be one of: Admin, Employee",
		})
	}

	if r.Phone != "" && !validator.IsValidPhoneNumber(r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "phone must contain 7 to 15 digits",
		})
	}

	for i, d := range r.UnpaidHolidays {
		if _, ok := validator.IsValidDate(d); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "unpaid_holidays[" + validator.Itoa(i) + "]",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	return errs
}

type CreateEmployeeRequest struct {
	ProfileRequest
	Password string `json:"password"`
}

func (r *CreateEmployeeRequest) Validate() error {
	errs := r.ProfileRequest.validate()

	if len(r.Password) < 6 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 6 characters long",
		})
	}

	return errs.Err()
}

type UpdateEmployeeRequest struct {
	ID string `json:"-"`
	ProfileRequest
}

func (r *UpdateEmployeeRequest) Validate() error {
	errs := r.ProfileRequest.validate()

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}

	return errs.Err()
}

type ListEmployeeRequest struct {
	Search         string
	IncludeRemoved bool
}
