package postgresql_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presenz/presenz-backend-go/internal/domain/attendance"
	"github.com/presenz/presenz-backend-go/internal/domain/settings"
	"github.com/presenz/presenz-backend-go/internal/repository/postgresql"
)

func day(s string) time.Time {
	t, err := time.Parse(attendance.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestAttendanceRepository_MissingDayIsEmpty(t *testing.T) {
	db := setupTestDB(t)
	repo := postgresql.NewAttendanceRepository(db)

	got, err := repo.GetDay(context.Background(), day("2024-03-01"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAttendanceRepository_SetEntryMergesKeys(t *testing.T) {
	db := setupTestDB(t)
	repo := postgresql.NewAttendanceRepository(db)
	ctx := context.Background()
	date := day("2024-03-04")

	require.NoError(t, repo.SetEntry(ctx, date, "a", attendance.Token(attendance.StatusAbsent)))
	require.NoError(t, repo.SetEntry(ctx, date, "b", attendance.Entry{PunchIn: strPtr("09:00:00")}))

	got, err := repo.GetDay(ctx, date)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got["a"].IsBare())
	assert.Equal(t, attendance.StatusAbsent, got["a"].Status)
	assert.True(t, got["b"].HasPunchIn())

	require.NoError(t, repo.SetEntry(ctx, date, "a", attendance.Entry{PunchIn: strPtr("10:00:00")}))
	got, err = repo.GetDay(ctx, date)
	require.NoError(t, err)
	assert.False(t, got["a"].IsBare())
	assert.Equal(t, "10:00:00", *got["a"].PunchIn)
}

func TestAttendanceRepository_ConcurrentWritersKeepEveryKey(t *testing.T) {
	db := setupTestDB(t)
	repo := postgresql.NewAttendanceRepository(db)
	ctx := context.Background()
	date := day("2024-03-05")

	keys := []string{"k1", "k2", "k3", "k4", "k5", "k6", "k7", "k8"}
	var wg sync.WaitGroup
	for _, k := range keys {
		wg.Add(1)
		go func(k string) {
			defer wg.Done()
			assert.NoError(t, repo.SetEntry(ctx, date, k, attendance.Token(attendance.StatusPresent)))
		}(k)
	}
	wg.Wait()

	got, err := repo.GetDay(ctx, date)
	require.NoError(t, err)
	assert.Len(t, got, len(keys))
}

func TestAttendanceRepository_ReplaceAndRange(t *testing.T) {
	db := setupTestDB(t)
	repo := postgresql.NewAttendanceRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.SetEntry(ctx, day("2024-02-29"), "a", attendance.Token(attendance.StatusPresent)))
	require.NoError(t, repo.SetEntry(ctx, day("2024-03-01"), "a", attendance.Token(attendance.StatusPresent)))
	require.NoError(t, repo.SetEntry(ctx, day("2024-03-31"), "a", attendance.Token(attendance.StatusLate)))
	require.NoError(t, repo.ReplaceDay(ctx, day("2024-03-01"), attendance.Day{"b": attendance.Token(attendance.StatusAbsent)}))

	days, err := repo.ListRange(ctx, day("2024-03-01"), day("2024-03-31"))
	require.NoError(t, err)
	require.Len(t, days, 2)
	_, hasA := days["2024-03-01"]["a"]
	assert.False(t, hasA)
	assert.Equal(t, attendance.StatusAbsent, days["2024-03-01"]["b"].Status)
	assert.Equal(t, attendance.StatusLate, days["2024-03-31"]["a"].Status)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	n, err := repo.CountDays(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestAttendanceRepository_GetDayForUpdateInsideTransaction(t *testing.T) {
	db := setupTestDB(t)
	repo := postgresql.NewAttendanceRepository(db)
	tx := postgresql.NewTransactor(db)
	ctx := context.Background()
	date := day("2024-03-06")

	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		d, err := repo.GetDayForUpdate(ctx, date)
		if err != nil {
			return err
		}
		assert.Empty(t, d)
		return repo.SetEntry(ctx, date, "a", attendance.Token(attendance.StatusPresent))
	})
	require.NoError(t, err)

	got, err := repo.GetDay(ctx, date)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSettingsRepository_SaveAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := postgresql.NewSettingsRepository(db)
	ctx := context.Background()

	_, found, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	s := settings.Default()
	s.Holidays = []string{"2024-03-08"}
	s.Locations = []settings.Location{{ID: "hq", Name: "HQ", Latitude: 12.97, Longitude: 77.59, RadiusMeters: 150}}
	require.NoError(t, repo.Save(ctx, s))

	got, found, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, s, got)

	s.Holidays = []string{}
	require.NoError(t, repo.Save(ctx, s))
	got, _, err = repo.GetForUpdate(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.Holidays)
}
