package settings

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/presenz/presenz-backend-go/internal/domain/settings"
	"github.com/presenz/presenz-backend-go/internal/pkg/database"
	"github.com/presenz/presenz-backend-go/internal/pkg/sse"
)

type SettingsServiceImpl struct {
	tx   database.Transactor
	repo settings.SettingsRepository
	hub  sse.Publisher
}

func NewSettingsService(tx database.Transactor, repo settings.SettingsRepository, hub sse.Publisher) settings.SettingsService {
	return &SettingsServiceImpl{tx: tx, repo: repo, hub: hub}
}

// Load returns the stored settings or the defaults when nothing was saved.
func Load(ctx context.Context, repo settings.SettingsRepository) (settings.Settings, error) {
	s, found, err := repo.Get(ctx)
	if err != nil {
		return settings.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	if !found {
		return settings.Default(), nil
	}
	s.Normalize()
	return s, nil
}

func (s *SettingsServiceImpl) publish(doc settings.Settings) {
	s.hub.Publish(sse.TopicSettings, sse.Event{Name: "settings", Data: doc})
}

// Get implements settings.SettingsService.
func (s *SettingsServiceImpl) Get(ctx context.Context) (settings.Settings, error) {
	return Load(ctx, s.repo)
}

// Update implements settings.SettingsService.
func (s *SettingsServiceImpl) Update(ctx context.Context, req settings.UpdateSettingsRequest) (settings.Settings, error) {
	if err := req.Validate(); err != nil {
		return settings.Settings{}, err
	}

	doc := req.Settings()
	if err := s.repo.Save(ctx, doc); err != nil {
		return settings.Settings{}, fmt.Errorf("failed to save settings: %w", err)
	}

	slog.Info("settings updated", "rule_sets", len(doc.RuleSets), "locations", len(doc.Locations), "holidays", len(doc.Holidays))
	s.publish(doc)
	return doc, nil
}

// mutate applies fn to the locked settings document and saves it.
func (s *SettingsServiceImpl) mutate(ctx context.Context, fn func(doc *settings.Settings) error) (settings.Settings, error) {
	var doc settings.Settings
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, found, err := s.repo.GetForUpdate(ctx)
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		if !found {
			current = settings.Default()
		}
		current.Normalize()

		if err := fn(&current); err != nil {
			return err
		}
		if err := s.repo.Save(ctx, current); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		doc = current
		return nil
	})
	if err != nil {
		return settings.Settings{}, err
	}

	s.publish(doc)
	return doc, nil
}

// AddHoliday implements settings.SettingsService.
func (s *SettingsServiceImpl) AddHoliday(ctx context.Context, req settings.HolidayRequest) (settings.Settings, error) {
	if err := req.Validate(); err != nil {
		return settings.Settings{}, err
	}

	return s.mutate(ctx, func(doc *settings.Settings) error {
		doc.SetHoliday(req.Date, req.Unpaid)
		return nil
	})
}

// RemoveHoliday implements settings.SettingsService.
func (s *SettingsServiceImpl) RemoveHoliday(ctx context.Context, date string) (settings.Settings, error) {
	return s.mutate(ctx, func(doc *settings.Settings) error {
		if !doc.RemoveHoliday(date) {
			return settings.ErrHolidayNotFound
		}
		return nil
	})
}
