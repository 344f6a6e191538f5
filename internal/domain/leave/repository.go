package leave

import (
	"context"

	"github.com/presenz/presenz-backend-go/internal/domain/approval"
)

type LeaveRepository interface {
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	// GetByIDForUpdate locks the row for the surrounding transaction.
	GetByIDForUpdate(ctx context.Context, id string) (LeaveRequest, error)
	// List returns requests newest first; an empty status matches all.
	List(ctx context.Context, status approval.Status) ([]LeaveRequest, error)
	ListByUser(ctx context.Context, userID string) ([]LeaveRequest, error)
	UpdateDecision(ctx context.Context, id string, d approval.Decision) error
	// Upsert writes a request with its id preserved.
	Upsert(ctx context.Context, req LeaveRequest) error
	Count(ctx context.Context) (int, error)
}
