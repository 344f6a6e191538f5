package settings

import "context"

type SettingsRepository interface {
	// Get returns the stored document; found is false when nothing was saved yet.
	Get(ctx context.Context) (s Settings, found bool, err error)
	// GetForUpdate locks the settings row for the surrounding transaction.
	GetForUpdate(ctx context.Context) (s Settings, found bool, err error)
	Save(ctx context.Context, s Settings) error
}
