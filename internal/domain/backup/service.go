package backup

import "context"

type BackupService interface {
	// Export dumps every collection (admin)
	Export(ctx context.Context) (Dump, error)

	// Import restores a dump, preserving ids that are present (admin)
	Import(ctx context.Context, req ImportRequest) (ImportResult, error)

	// Stats counts the stored documents per collection (admin)
	Stats(ctx context.Context) (Stats, error)
}
