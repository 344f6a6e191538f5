package fixtures

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/presenz/presenz-backend-go/internal/domain/employee"
	"github.com/presenz/presenz-backend-go/internal/domain/settings"
	"github.com/presenz/presenz-backend-go/internal/domain/shiftrule"
	"github.com/presenz/presenz-backend-go/internal/domain/user"
)

// DemoPassword is shared by every seeded account.
const DemoPassword = "presenz123"

const (
	HeadOfficeID = "head-office"
	MorningShift = "morning"
	NightShift   = "night"
)

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

// ==========================================
// DEFAULT SETTINGS
// ==========================================

// DemoRuleSets returns the general shift plus a morning and a night shift.
func DemoRuleSets() []shiftrule.ShiftRule {
	general := shiftrule.Default()
	general.WeeklyOffs = []string{"Sunday"}

	return []shiftrule.ShiftRule{
		general,
		{
			ID:              MorningShift,
			Name:            "Morning Shift",
			StartTime:       "06:00",
			EndTime:         "14:00",
			MinHalfDayHours: 4,
			MinFullDayHours: 7.5,
			WeeklyOffs:      []string{"Saturday", "Sunday"},
		},
		{
			// Crosses midnight
			ID:              NightShift,
			Name:            "Night Shift",
			StartTime:       "22:00",
			EndTime:         "06:00",
			MinHalfDayHours: 4,
			MinFullDayHours: 8,
			WeeklyOffs:      []string{"Sunday"},
			PaidWeeklyOffs:  boolPtr(false),
		},
	}
}

// DemoSettings returns a settings document with one office location.
func DemoSettings() settings.Settings {
	return settings.Settings{
		Holidays:       []string{},
		UnpaidHolidays: []string{},
		RuleSets:       DemoRuleSets(),
		Locations: []settings.Location{{
			ID:           HeadOfficeID,
			Name:         "Head Office",
			Latitude:     12.9716,
			Longitude:    77.5946,
			RadiusMeters: shiftrule.DefaultRadiusMeters,
		}},
	}
}

// ==========================================
// DEFAULT STAFF
// ==========================================

// DemoEmployees returns an admin and three employees spread across the shifts.
func DemoEmployees() []employee.CreateEmployeeRequest {
	office := strPtr(HeadOfficeID)
	profile := func(name, email, role string, access user.Role, shift *string, salary string) employee.CreateEmployeeRequest {
		return employee.CreateEmployeeRequest{
			ProfileRequest: employee.ProfileRequest{
				Name:                 name,
				Email:                email,
				Role:                 role,
				AccessRole:           access,
				ShiftRuleID:          shift,
				AttendanceLocationID: office,
				Salary:               salary,
			},
			Password: DemoPassword,
		}
	}

	return []employee.CreateEmployeeRequest{
		profile("Office Admin", "admin@presenz.local", "HR Manager", user.RoleAdmin, nil, "60000"),
		profile("Asha Rao", "asha@presenz.local", "Engineer", user.RoleEmployee, nil, "45000"),
		profile("Vikram Shah", "vikram@presenz.local", "Store Associate", user.RoleEmployee, strPtr(MorningShift), "₹28,000"),
		profile("Neha Iyer", "neha@presenz.local", "Security", user.RoleEmployee, strPtr(NightShift), "26000"),
	}
}

// ==========================================
// SEEDER
// ==========================================

// Seeder loads the demo data into an empty deployment.
type Seeder struct {
	Staff     employee.EmployeeRepository
	Settings  settings.SettingsRepository
	Employees employee.EmployeeService
	Config    settings.SettingsService
}

// Seed writes the demo settings and staff unless staff already exist.
// It reports whether anything was written.
func (s Seeder) Seed(ctx context.Context) (bool, error) {
	count, err := s.Staff.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count staff: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	if _, found, err := s.Settings.Get(ctx); err != nil {
		return false, fmt.Errorf("failed to get settings: %w", err)
	} else if !found {
		doc := DemoSettings()
		if _, err := s.Config.Update(ctx, settings.UpdateSettingsRequest{
			Holidays:       doc.Holidays,
			UnpaidHolidays: doc.UnpaidHolidays,
			RuleSets:       doc.RuleSets,
			Locations:      doc.Locations,
		}); err != nil {
			return false, fmt.Errorf("failed to seed settings: %w", err)
		}
	}

	for _, req := range DemoEmployees() {
		if _, err := s.Employees.Create(ctx, req); err != nil {
			return false, fmt.Errorf("failed to seed %s: %w", req.Email, err)
		}
		slog.Info("seeded demo account", "email", req.Email)
	}
	return true, nil
}
