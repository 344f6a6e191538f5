package status

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/presenz/presenz-backend-go/internal/domain/attendance"
	"github.com/presenz/presenz-backend-go/internal/domain/employee"
	"github.com/presenz/presenz-backend-go/internal/domain/settings"
	settingsService "github.com/presenz/presenz-backend-go/internal/service/settings"
)

// Loader reads what range evaluation needs from the repositories.
type Loader struct {
	Staff      employee.EmployeeRepository
	Settings   settings.SettingsRepository
	Attendance attendance.AttendanceRepository
}

// Load fetches active staff, the settings document and the attendance days
// between from and to concurrently.
func (l Loader) Load(ctx context.Context, from, to time.Time) ([]employee.Employee, Snapshot, error) {
	var (
		staff []employee.Employee
		snap  Snapshot
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		list, err := l.Staff.List(gCtx, employee.ListFilter{})
		if err != nil {
			return fmt.Errorf("failed to list employees: %w", err)
		}
		staff = list
		return nil
	})

	g.Go(func() error {
		doc, err := settingsService.Load(gCtx, l.Settings)
		if err != nil {
			return err
		}
		snap.Settings = doc
		return nil
	})

	g.Go(func() error {
		days, err := l.Attendance.ListRange(gCtx, from, to)
		if err != nil {
			return fmt.Errorf("failed to list attendance: %w", err)
		}
		snap.Attendance = days
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, Snapshot{}, err
	}
	return staff, snap, nil
}
