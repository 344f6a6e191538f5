package settings

import "context"

type SettingsService interface {
	// Get returns the current settings, or defaults when none were saved
	Get(ctx context.Context) (Settings, error)

	// Update replaces the settings document (admin)
	Update(ctx context.Context, req UpdateSettingsRequest) (Settings, error)

	// AddHoliday marks a date as a paid or unpaid holiday (admin)
	AddHoliday(ctx context.Context, req HolidayRequest) (Settings, error)

	// RemoveHoliday clears a date from both holiday lists (admin)
	RemoveHoliday(ctx context.Context, date string) (Settings, error)
}
