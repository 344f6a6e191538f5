package timesheet

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presenz/presenz-backend-go/internal/domain/auth"
	"github.com/presenz/presenz-backend-go/internal/domain/employee"
	"github.com/presenz/presenz-backend-go/internal/domain/settings"
	"github.com/presenz/presenz-backend-go/internal/domain/shiftrule"
	"github.com/presenz/presenz-backend-go/internal/domain/timesheet"
	"github.com/presenz/presenz-backend-go/internal/domain/user"
	"github.com/presenz/presenz-backend-go/internal/repository/memory"
)

func login(t *testing.T, store *memory.Store, name string, rule *string) context.Context {
	t.Helper()
	uid := "uid-" + name
	_, err := store.Staff().Create(context.Background(), employee.Employee{UID: &uid, Name: name, ShiftRuleID: rule})
	require.NoError(t, err)
	return auth.ContextWithIdentity(context.Background(), auth.Identity{UID: uid, Role: user.RoleEmployee})
}

func entries(hours ...string) []timesheet.Entry {
	out := make([]timesheet.Entry, 0, len(hours))
	for _, h := range hours {
		out = append(out, timesheet.Entry{Project: "Presenz", Task: "Build", Hours: decimal.RequireFromString(h)})
	}
	return out
}

func TestCreateListDelete(t *testing.T) {
	store := memory.NewStore()
	svc := NewTimesheetService(store.Timesheets(), store.Staff(), store.Settings())
	asha := login(t, store, "asha", nil)
	ravi := login(t, store, "ravi", nil)

	march, err := svc.Create(asha, timesheet.CreateTimesheetRequest{
		Date:    "2024-03-01",
		Entries: append(entries("1", "2.5"), timesheet.Entry{Hours: decimal.NewFromInt(1)}),
	})
	require.NoError(t, err)
	assert.Len(t, march.Entries, 2)
	assert.Equal(t, "3.5", march.TotalHours.String())
	assert.Equal(t, "uid-asha", march.UserID)

	_, err = svc.Create(asha, timesheet.CreateTimesheetRequest{Date: "2024-04-02", Entries: entries("8")})
	require.NoError(t, err)
	_, err = svc.Create(ravi, timesheet.CreateTimesheetRequest{Date: "2024-03-02", Entries: entries("4")})
	require.NoError(t, err)

	mine, err := svc.ListMine(asha, "2024-03")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, march.ID, mine[0].ID)

	_, err = svc.ListMine(asha, "March")
	assert.Error(t, err)

	all, err := svc.List(context.Background(), timesheet.ListTimesheetRequest{Month: "2024-03"})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	assert.ErrorIs(t, svc.Delete(ravi, march.ID), timesheet.ErrNotOwner)
	require.NoError(t, svc.Delete(asha, march.ID))
	assert.ErrorIs(t, svc.Delete(asha, march.ID), timesheet.ErrTimesheetNotFound)
}

func TestTemplate_FollowsShiftRule(t *testing.T) {
	store := memory.NewStore()
	svc := NewTimesheetService(store.Timesheets(), store.Staff(), store.Settings())

	doc := settings.Default()
	morning := shiftrule.Default()
	morning.ID, morning.Name, morning.StartTime, morning.EndTime = "morning", "Morning", "06:00", "10:00"
	doc.RuleSets = append(doc.RuleSets, morning)
	require.NoError(t, store.Settings().Save(context.Background(), doc))

	rows, err := svc.Template(login(t, store, "asha", nil))
	require.NoError(t, err)
	assert.Len(t, rows, 9)

	rows, err = svc.Template(login(t, store, "ravi", &morning.ID))
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "6:00 AM – 7:00 AM", rows[0].Time)
}
