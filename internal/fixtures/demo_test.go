package fixtures

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presenz/presenz-backend-go/internal/domain/employee"
	"github.com/presenz/presenz-backend-go/internal/pkg/sse"
	"github.com/presenz/presenz-backend-go/internal/pkg/storage"
	"github.com/presenz/presenz-backend-go/internal/repository/memory"
	employeeService "github.com/presenz/presenz-backend-go/internal/service/employee"
	"github.com/presenz/presenz-backend-go/internal/service/file"
	settingsService "github.com/presenz/presenz-backend-go/internal/service/settings"
)

func newSeeder(t *testing.T, store *memory.Store) Seeder {
	t.Helper()
	hub := sse.NewHub()
	local, err := storage.NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)
	return Seeder{
		Staff:     store.Staff(),
		Settings:  store.Settings(),
		Employees: employeeService.NewEmployeeService(store.Transactor(), store.Staff(), store.Users(), store.Settings(), file.NewFileService(local, 1<<20), nil, hub),
		Config:    settingsService.NewSettingsService(store.Transactor(), store.Settings(), hub),
	}
}

func TestDemoSettings_Valid(t *testing.T) {
	doc := DemoSettings()
	_, ok := doc.FindLocation(HeadOfficeID)
	assert.True(t, ok)
	for _, id := range []string{"default", MorningShift, NightShift} {
		_, ok := doc.FindRule(id)
		assert.True(t, ok, id)
	}
}

func TestSeed_EmptyStore(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	seeded, err := newSeeder(t, store).Seed(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)

	staff, err := store.Staff().List(ctx, employee.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, staff, len(DemoEmployees()))

	doc, found, err := store.Settings().Get(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Len(t, doc.RuleSets, 3)

	admin, err := store.Users().GetByEmail(ctx, "admin@presenz.local")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())
}

func TestSeed_SkipsWhenStaffExist(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	_, err := store.Staff().Create(ctx, employee.Employee{Name: "Existing", Email: "existing@example.com", Salary: "1"})
	require.NoError(t, err)

	seeded, err := newSeeder(t, store).Seed(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)

	_, found, err := store.Settings().Get(ctx)
	require.NoError(t, err)
	assert.False(t, found)
}
