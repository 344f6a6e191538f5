// Package approval holds the pending -> approved | rejected state machine
// shared by employee requests.
package approval

import (
	"errors"
	"strings"
	"time"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// DefaultRejectionReason is recorded when an admin rejects without a reason.
const DefaultRejectionReason = "No reason provided"

var (
	ErrAlreadyProcessed = errors.New("request has already been processed")
	ErrInvalidStatus    = errors.New("status must be one of: pending, approved, rejected")
)

// ParseStatus accepts an empty string as "any status".
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case "", StatusPending, StatusApproved, StatusRejected:
		return Status(s), nil
	}
	return "", ErrInvalidStatus
}

// Decision is the approver metadata stamped on a processed request.
type Decision struct {
	Status          Status     `json:"status"`
	ApprovedBy      *string    `json:"approved_by"`
	ApprovedByName  *string    `json:"approved_by_name"`
	ApprovedAt      *time.Time `json:"approved_at"`
	RejectionReason *string    `json:"rejection_reason"`
}

// Pending is the initial state of every request.
func Pending() Decision {
	return Decision{Status: StatusPending}
}

// Approver identifies the admin making a decision.
type Approver struct {
	UID  string
	Name string
}

// Approve moves a pending decision to approved.
func (d *Decision) Approve(by Approver, at time.Time) error {
	if d.Status != StatusPending {
		return ErrAlreadyProcessed
	}
	d.stamp(StatusApproved, by, at)
	return nil
}

// Reject moves a pending decision to rejected, recording reason or the default.
func (d *Decision) Reject(by Approver, at time.Time, reason string) error {
	if d.Status != StatusPending {
		return ErrAlreadyProcessed
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = DefaultRejectionReason
	}
	d.stamp(StatusRejected, by, at)
	d.RejectionReason = &reason
	return nil
}

func (d *Decision) stamp(status Status, by Approver, at time.Time) {
	uid, name := by.UID, by.Name
	d.Status = status
	d.ApprovedBy = &uid
	d.ApprovedByName = &name
	d.ApprovedAt = &at
}

// RejectRequest is the body of a reject call.
type RejectRequest struct {
	ID     string `json:"-"`
	Reason string `json:"reason"`
}
