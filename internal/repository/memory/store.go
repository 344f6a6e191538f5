// Package memory implements every repository on top of in-process maps.
// It backs service tests and local runs without PostgreSQL.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/presenz/presenz-backend-go/internal/domain/attendance"
	"github.com/presenz/presenz-backend-go/internal/domain/employee"
	"github.com/presenz/presenz-backend-go/internal/domain/leave"
	"github.com/presenz/presenz-backend-go/internal/domain/misspunch"
	"github.com/presenz/presenz-backend-go/internal/domain/settings"
	"github.com/presenz/presenz-backend-go/internal/domain/timesheet"
	"github.com/presenz/presenz-backend-go/internal/domain/user"
	"github.com/presenz/presenz-backend-go/internal/pkg/database"
)

type refreshToken struct {
	uid       string
	expiresAt time.Time
	revoked   bool
}

// Store holds all collections behind a single mutex.
type Store struct {
	mu sync.Mutex

	// Now is used for generated timestamps; tests may pin it.
	Now func() time.Time

	users      map[string]user.User
	tokens     map[string]refreshToken
	staff      map[string]employee.Employee
	days       map[string]attendance.Day
	settings   *settings.Settings
	missPunch  map[string]misspunch.MissPunchRequest
	leaves     map[string]leave.LeaveRequest
	timesheets map[string]timesheet.Timesheet
}

func NewStore() *Store {
	return &Store{
		Now:        time.Now,
		users:      make(map[string]user.User),
		tokens:     make(map[string]refreshToken),
		staff:      make(map[string]employee.Employee),
		days:       make(map[string]attendance.Day),
		missPunch:  make(map[string]misspunch.MissPunchRequest),
		leaves:     make(map[string]leave.LeaveRequest),
		timesheets: make(map[string]timesheet.Timesheet),
	}
}

func newID() string {
	return uuid.NewString()
}

type transactor struct{}

// Transactor runs fn directly; every store call is already atomic.
func (s *Store) Transactor() database.Transactor {
	return transactor{}
}

func (transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
