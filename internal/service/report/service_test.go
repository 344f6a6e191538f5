package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presenz/presenz-backend-go/internal/domain/attendance"
	"github.com/presenz/presenz-backend-go/internal/domain/auth"
	"github.com/presenz/presenz-backend-go/internal/domain/employee"
	"github.com/presenz/presenz-backend-go/internal/domain/report"
	"github.com/presenz/presenz-backend-go/internal/domain/shiftrule"
	"github.com/presenz/presenz-backend-go/internal/domain/user"
	"github.com/presenz/presenz-backend-go/internal/repository/memory"
	"github.com/presenz/presenz-backend-go/internal/service/status"
)

func newService(t *testing.T) (*ReportServiceImpl, employee.Employee) {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()

	uid := "uid-asha"
	asha, err := store.Staff().Create(ctx, employee.Employee{UID: &uid, Name: "Asha", Email: "asha@example.com", Salary: "₹31,000"})
	require.NoError(t, err)

	for _, day := range []int{1, 4, 5} {
		d := time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC)
		require.NoError(t, store.Attendance().SetEntry(ctx, d, asha.Key(), attendance.Token(attendance.StatusPresent)))
	}
	in, out := "09:00:00", "18:30:00"
	require.NoError(t, store.Attendance().SetEntry(ctx, time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC), asha.Key(),
		attendance.Entry{Status: attendance.StatusPresent, PunchIn: &in, PunchOut: &out}))

	svc := NewReportService(status.Loader{Staff: store.Staff(), Settings: store.Settings(), Attendance: store.Attendance()}, nil, time.UTC).(*ReportServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 4, 10, 12, 0, 0, 0, time.UTC) }
	return svc, asha
}

func TestMonthly(t *testing.T) {
	svc, asha := newService(t)

	monthly, err := svc.Monthly(context.Background(), report.MonthRequest{Month: "2024-03"})
	require.NoError(t, err)
	assert.Equal(t, "2024-03", monthly.Month)
	assert.Equal(t, 31, monthly.DaysInMonth)
	require.Len(t, monthly.Employees, 1)

	row := monthly.Employees[0]
	assert.Equal(t, asha.Key(), row.EmployeeKey)
	assert.Equal(t, shiftrule.DefaultName, row.ShiftName)
	assert.Equal(t, 4.0, row.Summary.PresentDays)
	assert.Equal(t, 27, row.Summary.AbsentDays)
	assert.InDelta(t, 9.5, row.Summary.TotalHours, 0.001)
	assert.Len(t, row.Summary.Days, 31)

	_, err = svc.Monthly(context.Background(), report.MonthRequest{Month: "03-2024"})
	assert.Error(t, err)
}

func TestExportMonthlyCSV(t *testing.T) {
	svc, _ := newService(t)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportMonthlyCSV(context.Background(), report.MonthRequest{Month: "2024-03"}, &buf))

	r := csv.NewReader(strings.NewReader(buf.String()))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1+1+1+31)

	assert.Equal(t, summaryHeader, records[0])
	assert.Equal(t, []string{"Asha", "asha@example.com", shiftrule.DefaultName, "4", "0", "27", "0", "0", "0", "9.5"}, records[1])
	assert.Equal(t, detailHeader, records[2])
	assert.Equal(t, []string{"Asha", "2024-03-01", status.LabelPresent, "-", "-", "-"}, records[3])
	assert.Equal(t, []string{"Asha", "2024-03-06", status.LabelFullDay, "09:00:00", "18:30:00", "9.5"}, records[8])
}

func TestExportMonthlyCSV_UpcomingDaysAreDashes(t *testing.T) {
	svc, _ := newService(t)
	svc.now = func() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC) }

	var buf bytes.Buffer
	require.NoError(t, svc.ExportMonthlyCSV(context.Background(), report.MonthRequest{Month: "2024-03"}, &buf))

	r := csv.NewReader(strings.NewReader(buf.String()))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1+1+1+31)

	assert.Equal(t, []string{"Asha", "2024-03-20", "-", "-", "-", "-"}, records[3+19])
	assert.Equal(t, []string{"Asha", "2024-03-31", "-", "-", "-", "-"}, records[3+30])
}

func TestHistory(t *testing.T) {
	svc, asha := newService(t)
	ctx := auth.ContextWithIdentity(context.Background(), auth.Identity{UID: "uid-asha", Role: user.RoleEmployee})

	mine, err := svc.History(ctx, report.HistoryRequest{MonthRequest: report.MonthRequest{Month: "2024-03"}})
	require.NoError(t, err)
	assert.Equal(t, "31000", mine.Salary)
	assert.Equal(t, "1000", mine.DailyRate)
	assert.Equal(t, "4000", mine.EstimatedPayout)
	require.Len(t, mine.Days, 31)
	assert.Equal(t, "2024-03-31", mine.Days[0].Date)

	byKey, err := svc.History(context.Background(), report.HistoryRequest{
		MonthRequest: report.MonthRequest{Month: "2024-03"},
		EmployeeKey:  asha.Key(),
	})
	require.NoError(t, err)
	assert.Equal(t, mine.EstimatedPayout, byKey.EstimatedPayout)

	_, err = svc.History(context.Background(), report.HistoryRequest{EmployeeKey: "ghost"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestHistory_HidesUpcomingDays(t *testing.T) {
	svc, _ := newService(t)
	svc.now = func() time.Time { return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC) }
	ctx := auth.ContextWithIdentity(context.Background(), auth.Identity{UID: "uid-asha", Role: user.RoleEmployee})

	mine, err := svc.History(ctx, report.HistoryRequest{})
	require.NoError(t, err)
	assert.Equal(t, "2024-03", mine.Month)
	// Today has no entry yet, so it is still upcoming.
	assert.Len(t, mine.Days, 9)
}
