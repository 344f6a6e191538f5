package misspunch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presenz/presenz-backend-go/internal/domain/approval"
	"github.com/presenz/presenz-backend-go/internal/domain/attendance"
	"github.com/presenz/presenz-backend-go/internal/domain/auth"
	"github.com/presenz/presenz-backend-go/internal/domain/employee"
	"github.com/presenz/presenz-backend-go/internal/domain/misspunch"
	"github.com/presenz/presenz-backend-go/internal/domain/user"
	"github.com/presenz/presenz-backend-go/internal/pkg/sse"
	"github.com/presenz/presenz-backend-go/internal/repository/memory"
)

func strPtr(s string) *string { return &s }

type fixture struct {
	store   *memory.Store
	hub     *sse.Hub
	service *MissPunchServiceImpl
	emp     employee.Employee
	empCtx  context.Context
	admin   context.Context
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := memory.NewStore()
	hub := sse.NewHub()
	svc := NewMissPunchService(store.Transactor(), store.MissPunches(), store.Attendance(), store.Staff(), hub, nil, time.UTC).(*MissPunchServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC) }

	emp, err := store.Staff().Create(context.Background(), employee.Employee{UID: strPtr("uid-asha"), Name: "Asha", Email: "asha@example.com"})
	require.NoError(t, err)

	return fixture{
		store:   store,
		hub:     hub,
		service: svc,
		emp:     emp,
		empCtx:  auth.ContextWithIdentity(context.Background(), auth.Identity{UID: "uid-asha", Role: user.RoleEmployee}),
		admin:   auth.ContextWithIdentity(context.Background(), auth.Identity{UID: "uid-admin", Name: "Boss", Role: user.RoleAdmin}),
	}
}

func (f fixture) file(t *testing.T, date string, punchType misspunch.PunchType, at string) misspunch.MissPunchRequest {
	t.Helper()
	req, err := f.service.Create(f.empCtx, misspunch.CreateMissPunchRequest{Date: date, PunchType: punchType, PunchTime: at, Reason: "forgot"})
	require.NoError(t, err)
	return req
}

func TestApplyPunch(t *testing.T) {
	tests := []struct {
		name         string
		existing     *attendance.Entry
		punchType    misspunch.PunchType
		wantPunchIn  string
		wantPunchOut string
	}{
		{
			name:        "punch in on empty day",
			punchType:   misspunch.PunchIn,
			wantPunchIn: "09:00:00",
		},
		{
			name:         "punch out on empty day",
			punchType:    misspunch.PunchOut,
			wantPunchIn:  attendance.PunchPlaceholder,
			wantPunchOut: "18:00:00",
		},
		{
			name:         "punch out over bare token",
			existing:     func() *attendance.Entry { e := attendance.Token(attendance.StatusLate); return &e }(),
			punchType:    misspunch.PunchOut,
			wantPunchIn:  attendance.PunchPlaceholder,
			wantPunchOut: "18:00:00",
		},
		{
			name:         "punch out keeps recorded punch in",
			existing:     &attendance.Entry{Status: attendance.StatusPresent, PunchIn: strPtr("08:45:00")},
			punchType:    misspunch.PunchOut,
			wantPunchIn:  "08:45:00",
			wantPunchOut: "18:00:00",
		},
		{
			name:         "punch in keeps recorded punch out",
			existing:     &attendance.Entry{Status: attendance.StatusPresent, PunchIn: strPtr("???"), PunchOut: strPtr("18:00:00")},
			punchType:    misspunch.PunchIn,
			wantPunchIn:  "09:00:00",
			wantPunchOut: "18:00:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			at := "09:00:00"
			if tt.punchType == misspunch.PunchOut {
				at = "18:00:00"
			}
			got := ApplyPunch(tt.existing, tt.punchType, at)

			assert.False(t, got.IsBare())
			assert.Equal(t, attendance.StatusPresent, got.Status)
			require.NotNil(t, got.PunchIn)
			assert.Equal(t, tt.wantPunchIn, *got.PunchIn)
			if tt.wantPunchOut == "" {
				assert.Nil(t, got.PunchOut)
			} else {
				require.NotNil(t, got.PunchOut)
				assert.Equal(t, tt.wantPunchOut, *got.PunchOut)
			}
		})
	}
}

func TestCreate(t *testing.T) {
	f := newFixture(t)

	req := f.file(t, "2024-03-01", misspunch.PunchOut, "18:30")
	assert.Equal(t, f.emp.Key(), req.UserID)
	assert.Equal(t, "Asha", req.UserName)
	assert.Equal(t, "18:30:00", req.PunchTime)
	assert.Equal(t, approval.StatusPending, req.Status)

	_, err := f.service.Create(f.empCtx, misspunch.CreateMissPunchRequest{Date: "2024-03-05", PunchType: misspunch.PunchIn, PunchTime: "09:00", Reason: "x"})
	assert.ErrorIs(t, err, misspunch.ErrFutureDate)

	_, err = f.service.Create(f.empCtx, misspunch.CreateMissPunchRequest{Date: "2024-03-01", PunchType: "lunch", PunchTime: "09:00", Reason: "x"})
	assert.Error(t, err)

	mine, err := f.service.ListMine(f.empCtx)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestApprove_WritesAttendance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, f.store.Attendance().SetEntry(ctx, d, f.emp.Key(), attendance.Token(attendance.StatusAbsent)))

	events, cleanup := f.hub.Subscribe(sse.AttendanceTopic("2024-03-01"))
	defer cleanup()

	req := f.file(t, "2024-03-01", misspunch.PunchOut, "18:00")
	approved, err := f.service.Approve(f.admin, req.ID)
	require.NoError(t, err)
	assert.Equal(t, approval.StatusApproved, approved.Status)
	assert.Equal(t, "uid-admin", *approved.ApprovedBy)
	assert.Equal(t, "Boss", *approved.ApprovedByName)

	day, err := f.store.Attendance().GetDay(ctx, d)
	require.NoError(t, err)
	entry := day[f.emp.Key()]
	assert.Equal(t, attendance.StatusPresent, entry.Status)
	assert.Equal(t, attendance.PunchPlaceholder, *entry.PunchIn)
	assert.Equal(t, "18:00:00", *entry.PunchOut)
	<-events

	stored, err := f.store.MissPunches().GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, approval.StatusApproved, stored.Status)

	_, err = f.service.Approve(f.admin, req.ID)
	assert.ErrorIs(t, err, approval.ErrAlreadyProcessed)
	_, err = f.service.Reject(f.admin, approval.RejectRequest{ID: req.ID})
	assert.ErrorIs(t, err, approval.ErrAlreadyProcessed)
}

func TestReject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := f.file(t, "2024-03-01", misspunch.PunchIn, "09:10")
	rejected, err := f.service.Reject(f.admin, approval.RejectRequest{ID: req.ID})
	require.NoError(t, err)
	assert.Equal(t, approval.StatusRejected, rejected.Status)
	assert.Equal(t, approval.DefaultRejectionReason, *rejected.RejectionReason)

	day, err := f.store.Attendance().GetDay(ctx, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, day)

	pending, err := f.service.List(ctx, misspunch.ListMissPunchRequest{Status: "pending"})
	require.NoError(t, err)
	assert.Empty(t, pending)

	all, err := f.service.List(ctx, misspunch.ListMissPunchRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = f.service.Approve(f.admin, "missing")
	assert.ErrorIs(t, err, misspunch.ErrRequestNotFound)
}
