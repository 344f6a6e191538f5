package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/presenz/presenz-backend-go/internal/domain/settings"
	"github.com/presenz/presenz-backend-go/internal/pkg/database"
)

type settingsRepository struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) get(ctx context.Context, lock bool) (settings.Settings, bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT document FROM settings WHERE id = 1`
	if lock {
		query += ` FOR UPDATE`
	}

	var raw []byte
	if err := q.QueryRow(ctx, query).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settings.Settings{}, false, nil
		}
		return settings.Settings{}, false, fmt.Errorf("failed to get settings: %w", err)
	}

	var s settings.Settings
	if err := json.Unmarshal(raw, &s); err != nil {
		return settings.Settings{}, false, fmt.Errorf("failed to decode settings: %w", err)
	}
	return s, true, nil
}

// Get implements settings.SettingsRepository.
func (r *settingsRepository) Get(ctx context.Context) (settings.Settings, bool, error) {
	return r.get(ctx, false)
}

// GetForUpdate implements settings.SettingsRepository.
func (r *settingsRepository) GetForUpdate(ctx context.Context) (settings.Settings, bool, error) {
	return r.get(ctx, true)
}

// Save implements settings.SettingsRepository.
func (r *settingsRepository) Save(ctx context.Context, s settings.Settings) error {
	q := GetQuerier(ctx, r.db)

	doc, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	query := `
		INSERT INTO settings (id, document, updated_at)
		VALUES (1, $1::jsonb, NOW())
		ON CONFLICT (id) DO UPDATE
		SET document = EXCLUDED.document, updated_at = NOW()
	`
	if _, err := q.Exec(ctx, query, string(doc)); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
