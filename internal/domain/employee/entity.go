package employee

import (
	"time"

	"github.com/presenz/presenz-backend-go/internal/domain/shiftrule"
	"github.com/presenz/presenz-backend-go/internal/domain/user"
)

type Status string

const (
	StatusActive  Status = "active"
	StatusRemoved Status = "removed"
)

type BankDetails struct {
	AccountNumber string `json:"account_number"`
	IFSCCode      string `json:"ifsc_code"`
	BankName      string `json:"bank_name"`
	Branch        string `json:"branch"`
}

type Employee struct {
	ID                   string                `json:"id"`
	UID                  *string               `json:"uid"`
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
	ProfileImage         *string               `json:"profile_image"`
	Status               Status                `json:"status"`
	JoinedAt             time.Time             `json:"joined_at"`
	CreatedAt            time.Time             `json:"created_at"`
	UpdatedAt            time.Time             `json:"updated_at"`
}

// Key is the identifier attendance records are stored under: the identity
// uid when the employee has an account, otherwise the staff id.
func (e Employee) Key() string {
	if e.UID != nil && *e.UID != "" {
		return *e.UID
	}
	return e.ID
}

// HasUnpaidHoliday reports whether date is one of the employee's personal unpaid holidays.
func (e Employee) HasUnpaidHoliday(date string) bool {
	for _, d := range e.UnpaidHolidays {
		if d == date {
			return true
		}
	}
	return false
}

func (e Employee) IsActive() bool {
	return e.Status != StatusRemoved
}
