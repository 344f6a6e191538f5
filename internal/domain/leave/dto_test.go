package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLeaveRequest_Validate(t *testing.T) {
	tests := []struct {
		name     string
		req      CreateLeaveRequest
		wantErr  string
		wantDays int
	}{
		{
			name:     "single day",
			req:      CreateLeaveRequest{LeaveType: TypeSick, StartDate: "2024-03-04", EndDate: "2024-03-09", Reason: "fever"},
			wantDays: 1,
		},
		{
			name:     "range",
			req:      CreateLeaveRequest{LeaveType: TypeEarned, DateType: DateRange, StartDate: "2024-03-04", EndDate: "2024-03-08", Reason: "trip"},
			wantDays: 5,
		},
		{
			name:    "end before start",
			req:     CreateLeaveRequest{LeaveType: TypeCasual, DateType: DateRange, StartDate: "2024-03-08", EndDate: "2024-03-04", Reason: "x"},
			wantErr: "end_date",
		},
		{
			name:    "unknown type",
			req:     CreateLeaveRequest{LeaveType: "vacation", StartDate: "2024-03-04", Reason: "x"},
			wantErr: "leave_type",
		},
		{
			name:    "missing reason",
			req:     CreateLeaveRequest{LeaveType: TypeOther, StartDate: "2024-03-04"},
			wantErr: "reason",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDays, tt.req.Days())
		})
	}
}

func TestTotalDays(t *testing.T) {
	start := time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, TotalDays(start, start))
	assert.Equal(t, 3, TotalDays(start, start.AddDate(0, 0, 2)))
}
