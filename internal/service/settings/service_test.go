package settings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presenz/presenz-backend-go/internal/domain/settings"
	"github.com/presenz/presenz-backend-go/internal/domain/shiftrule"
	"github.com/presenz/presenz-backend-go/internal/pkg/sse"
	"github.com/presenz/presenz-backend-go/internal/pkg/validator"
	"github.com/presenz/presenz-backend-go/internal/repository/memory"
)

func newService(t *testing.T) (settings.SettingsService, *sse.Hub) {
	t.Helper()
	store := memory.NewStore()
	hub := sse.NewHub()
	return NewSettingsService(store.Transactor(), store.Settings(), hub), hub
}

func TestGet_ReturnsDefaultsWhenUnsaved(t *testing.T) {
	svc, _ := newService(t)

	got, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, settings.Default(), got)
}

func TestUpdate(t *testing.T) {
	svc, hub := newService(t)
	events, cleanup := hub.Subscribe(sse.TopicSettings)
	defer cleanup()

	req := settings.UpdateSettingsRequest{
		Holidays: []string{"2024-03-25", "2024-03-08", "2024-03-08"},
		RuleSets: []shiftrule.ShiftRule{{
			ID:              "night",
			Name:            "Night",
			StartTime:       "22:00",
			EndTime:         "06:00",
			MinHalfDayHours: 4,
			MinFullDayHours: 7,
			WeeklyOffs:      []string{"Sunday"},
		}},
		Locations: []settings.Location{{ID: "hq", Name: "HQ", Latitude: 12.97, Longitude: 77.59}},
	}

	got, err := svc.Update(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-08", "2024-03-25"}, got.Holidays)
	assert.Equal(t, shiftrule.DefaultRadiusMeters, got.Locations[0].RadiusMeters)

	select {
	case ev := <-events:
		assert.Equal(t, got, ev.Data)
	case <-time.After(time.Second):
		t.Fatal("expected settings snapshot")
	}

	stored, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, got, stored)
}

func TestUpdate_RejectsInvalidDocument(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Update(context.Background(), settings.UpdateSettingsRequest{})
	var ve validator.ValidationErrors
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "rule_sets", ve[0].Field)

	_, err = svc.Update(context.Background(), settings.UpdateSettingsRequest{
		RuleSets: []shiftrule.ShiftRule{{ID: "a", Name: "A", MinHalfDayHours: 6, MinFullDayHours: 4}},
	})
	require.ErrorAs(t, err, &ve)
}

func TestHolidays(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	got, err := svc.AddHoliday(ctx, settings.HolidayRequest{Date: "2024-03-08"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-08"}, got.Holidays)

	got, err = svc.AddHoliday(ctx, settings.HolidayRequest{Date: "2024-03-08", Unpaid: true})
	require.NoError(t, err)
	assert.Empty(t, got.Holidays)
	assert.Equal(t, []string{"2024-03-08"}, got.UnpaidHolidays)

	got, err = svc.RemoveHoliday(ctx, "2024-03-08")
	require.NoError(t, err)
	assert.Empty(t, got.UnpaidHolidays)

	_, err = svc.RemoveHoliday(ctx, "2024-03-08")
	assert.ErrorIs(t, err, settings.ErrHolidayNotFound)

	_, err = svc.AddHoliday(ctx, settings.HolidayRequest{Date: "08-03-2024"})
	assert.Error(t, err)
}
