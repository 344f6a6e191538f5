package live

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/presenz/presenz-backend-go/internal/domain/attendance"
	"github.com/presenz/presenz-backend-go/internal/domain/employee"
	"github.com/presenz/presenz-backend-go/internal/domain/settings"
	"github.com/presenz/presenz-backend-go/internal/domain/user"
	"github.com/presenz/presenz-backend-go/internal/pkg/sse"
	"github.com/presenz/presenz-backend-go/internal/pkg/validator"
	settingsService "github.com/presenz/presenz-backend-go/internal/service/settings"
)

var (
	ErrUnknownTopic = errors.New("unknown live topic")
	ErrForbidden    = errors.New("live topic requires admin privilege")
)

// Subscription is an open live feed: the current snapshot followed by every change.
type Subscription struct {
	Snapshot sse.Event
	Events   <-chan sse.Event
	Close    func()
}

type LiveService interface {
	Subscribe(ctx context.Context, topic string, role user.Role) (Subscription, error)
}

type LiveServiceImpl struct {
	hub        *sse.Hub
	staff      employee.EmployeeRepository
	settings   settings.SettingsRepository
	attendance attendance.AttendanceRepository
}

func NewLiveService(hub *sse.Hub, staff employee.EmployeeRepository, settingsRepo settings.SettingsRepository, attendanceRepo attendance.AttendanceRepository) LiveService {
	return &LiveServiceImpl{
		hub:        hub,
		staff:      staff,
		settings:   settingsRepo,
		attendance: attendanceRepo,
	}
}

// Subscribe registers before loading the snapshot so no change between the two is lost.
// The staff and attendance feeds carry every employee's records and are Admin only.
func (s *LiveServiceImpl) Subscribe(ctx context.Context, topic string, role user.Role) (Subscription, error) {
	if !sse.IsValidTopic(topic) {
		return Subscription{}, ErrUnknownTopic
	}
	if topic != sse.TopicSettings && role != user.RoleAdmin {
		return Subscription{}, ErrForbidden
	}

	events, cleanup := s.hub.Subscribe(topic)
	snapshot, err := s.snapshot(ctx, topic)
	if err != nil {
		cleanup()
		return Subscription{}, err
	}
	return Subscription{Snapshot: snapshot, Events: events, Close: cleanup}, nil
}

func (s *LiveServiceImpl) snapshot(ctx context.Context, topic string) (sse.Event, error) {
	switch topic {
	case sse.TopicStaff:
		list, err := s.staff.List(ctx, employee.ListFilter{})
		if err != nil {
			return sse.Event{}, fmt.Errorf("failed to list employees: %w", err)
		}
		return sse.Event{Topic: topic, Name: "staff", Data: list}, nil
	case sse.TopicSettings:
		doc, err := settingsService.Load(ctx, s.settings)
		if err != nil {
			return sse.Event{}, err
		}
		return sse.Event{Topic: topic, Name: "settings", Data: doc}, nil
	}

	date, ok := validator.IsValidDate(strings.TrimPrefix(topic, sse.AttendanceTopic("")))
	if !ok {
		return sse.Event{}, ErrUnknownTopic
	}
	day, err := s.attendance.GetDay(ctx, date)
	if err != nil {
		return sse.Event{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return sse.Event{Topic: topic, Name: "attendance", Data: day}, nil
}
