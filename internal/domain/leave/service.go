package leave

import (
	"context"

	"github.com/presenz/presenz-backend-go/internal/domain/approval"
)

type LeaveService interface {
	// Create files a leave request for the caller
	Create(ctx context.Context, req CreateLeaveRequest) (LeaveRequest, error)

	// ListMine returns the caller's leave requests, newest first
	ListMine(ctx context.Context) ([]LeaveRequest, error)

	// List returns all leave requests, optionally filtered by status (admin)
	List(ctx context.Context, req ListLeaveRequest) ([]LeaveRequest, error)

	// Approve marks a pending request approved (admin). Attendance is not modified.
	Approve(ctx context.Context, id string) (LeaveRequest, error)

	// Reject marks a pending request rejected (admin)
	Reject(ctx context.Context, req approval.RejectRequest) (LeaveRequest, error)
}
