package misspunch

import (
	"time"

	"github.com/presenz/presenz-backend-go/internal/domain/approval"
)

type PunchType string

const (
	PunchIn  PunchType = "in"
	PunchOut PunchType = "out"
)

// MissPunchRequest asks an admin to record a punch the employee forgot.
type MissPunchRequest struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserEmail string    `json:"user_email"`
	UserName  string    `json:"user_name"`
	Date      string    `json:"date"`
	PunchType PunchType `json:"punch_type"`
	PunchTime string    `json:"punch_time"`
	Reason    string    `json:"reason"`
	approval.Decision
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
