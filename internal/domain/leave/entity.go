package leave

import (
	"math"
	"time"

	"github.com/presenz/presenz-backend-go/internal/domain/approval"
)

type LeaveType string

const (
	TypeCasual   LeaveType = "casual"
	TypeSick     LeaveType = "sick"
	TypeEarned   LeaveType = "earned"
	TypePersonal LeaveType = "personal"
	TypeOther    LeaveType = "other"
)

var LeaveTypes = []LeaveType{TypeCasual, TypeSick, TypeEarned, TypePersonal, TypeOther}

func (t LeaveType) Valid() bool {
	for _, lt := range LeaveTypes {
		if lt == t {
			return true
		}
	}
	return false
}

type DateType string

const (
	DateSingle DateType = "single"
	DateRange  DateType = "range"
)

type LeaveRequest struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserEmail string    `json:"user_email"`
	UserName  string    `json:"user_name"`
	LeaveType LeaveType `json:"leave_type"`
	DateType  DateType  `json:"date_type"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	TotalDays int       `json:"total_days"`
	Reason    string    `json:"reason"`
	approval.Decision
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TotalDays counts calendar days from start to end inclusive.
func TotalDays(start, end time.Time) int {
	return int(math.Ceil(end.Sub(start).Hours()/24)) + 1
}
