package misspunch

import (
	"context"

	"github.com/presenz/presenz-backend-go/internal/domain/approval"
)

type MissPunchRepository interface {
	Create(ctx context.Context, req MissPunchRequest) (MissPunchRequest, error)
	GetByID(ctx context.Context, id string) (MissPunchRequest, error)
	// GetByIDForUpdate locks the row for the surrounding transaction.
	GetByIDForUpdate(ctx context.Context, id string) (MissPunchRequest, error)
	// List returns requests newest first; an empty status matches all.
	List(ctx context.Context, status approval.Status) ([]MissPunchRequest, error)
	ListByUser(ctx context.Context, userID string) ([]MissPunchRequest, error)
	UpdateDecision(ctx context.Context, id string, d approval.Decision) error
	// Upsert writes a request with its id preserved.
	Upsert(ctx context.Context, req MissPunchRequest) error
	Count(ctx context.Context) (int, error)
}
