package backup

import (
	"time"

	"github.com/presenz/presenz-backend-go/internal/domain/attendance"
	"github.com/presenz/presenz-backend-go/internal/domain/employee"
	"github.com/presenz/presenz-backend-go/internal/domain/leave"
	"github.com/presenz/presenz-backend-go/internal/domain/misspunch"
	"github.com/presenz/presenz-backend-go/internal/domain/settings"
	"github.com/presenz/presenz-backend-go/internal/domain/timesheet"
)

// Dump is a full JSON export of the application data.
type Dump struct {
	Staff             []employee.Employee          `json:"staff"`
	Attendance        map[string]attendance.Day    `json:"attendance"`
	Settings          *settings.Settings           `json:"settings"`
	MissPunchRequests []misspunch.MissPunchRequest `json:"miss_punch_requests"`
	LeaveRequests     []leave.LeaveRequest         `json:"leave_requests"`
	Timesheets        []timesheet.Timesheet        `json:"timesheets"`
	ExportedAt        time.Time                    `json:"exported_at"`
}

type Stats struct {
	Staff             int `json:"staff"`
	AttendanceDays    int `json:"attendance_days"`
	MissPunchRequests int `json:"miss_punch_requests"`
	LeaveRequests     int `json:"leave_requests"`
	Timesheets        int `json:"timesheets"`
}
