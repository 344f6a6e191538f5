package misspunch

import (
	"context"

	"github.com/presenz/presenz-backend-go/internal/domain/approval"
)

type MissPunchService interface {
	// Create files a correction request for the caller
	Create(ctx context.Context, req CreateMissPunchRequest) (MissPunchRequest, error)

	// ListMine returns the caller's requests, newest first
	ListMine(ctx context.Context) ([]MissPunchRequest, error)

	// List returns all requests, optionally filtered by status (admin)
	List(ctx context.Context, req ListMissPunchRequest) ([]MissPunchRequest, error)

	// Approve marks a pending request approved and writes the punch into attendance (admin)
	Approve(ctx context.Context, id string) (MissPunchRequest, error)

	// Reject marks a pending request rejected (admin)
	Reject(ctx context.Context, req approval.RejectRequest) (MissPunchRequest, error)
}
