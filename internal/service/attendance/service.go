package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/presenz/presenz-backend-go/internal/domain/attendance"
	"github.com/presenz/presenz-backend-go/internal/domain/employee"
	"github.com/presenz/presenz-backend-go/internal/domain/settings"
	"github.com/presenz/presenz-backend-go/internal/pkg/database"
	"github.com/presenz/presenz-backend-go/internal/pkg/metrics"
	"github.com/presenz/presenz-backend-go/internal/pkg/sse"
	"github.com/presenz/presenz-backend-go/internal/pkg/utils"
	employeeService "github.com/presenz/presenz-backend-go/internal/service/employee"
	"github.com/presenz/presenz-backend-go/internal/service/file"
	settingsService "github.com/presenz/presenz-backend-go/internal/service/settings"
	"github.com/presenz/presenz-backend-go/internal/service/status"
)

const (
	directionIn  = "in"
	directionOut = "out"
)

type AttendanceServiceImpl struct {
	tx         database.Transactor
	attendance attendance.AttendanceRepository
	staff      employee.EmployeeRepository
	settings   settings.SettingsRepository
	files      file.FileService
	hub        sse.Publisher
	metrics    *metrics.Metrics
	loc        *time.Location
	now        func() time.Time
}

type Option func(*AttendanceServiceImpl)

// WithClock replaces time.Now as the source of punch times.
func WithClock(now func() time.Time) Option {
	return func(s *AttendanceServiceImpl) { s.now = now }
}

func NewAttendanceService(
	tx database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	staff employee.EmployeeRepository,
	settingsRepo settings.SettingsRepository,
	files file.FileService,
	hub sse.Publisher,
	m *metrics.Metrics,
	loc *time.Location,
	opts ...Option,
) attendance.AttendanceService {
	if loc == nil {
		loc = time.Local
	}
	s := &AttendanceServiceImpl{
		tx:         tx,
		attendance: attendanceRepo,
		staff:      staff,
		settings:   settingsRepo,
		files:      files,
		hub:        hub,
		metrics:    m,
		loc:        loc,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *AttendanceServiceImpl) today() time.Time {
	return s.now().In(s.loc)
}

func (s *AttendanceServiceImpl) publishDay(ctx context.Context, date time.Time) {
	day, err := s.attendance.GetDay(ctx, date)
	if err != nil {
		slog.Error("failed to load attendance snapshot", "date", status.DateKey(date), "error", err)
		return
	}
	key := status.DateKey(date)
	s.hub.Publish(sse.AttendanceTopic(key), sse.Event{Name: "attendance", Data: day})
}

// punchContext holds what both punch directions need before writing.
type punchContext struct {
	emp      employee.Employee
	settings settings.Settings
	location settings.Location
	distance int
	at       time.Time
}

func (s *AttendanceServiceImpl) preparePunch(ctx context.Context, req attendance.PunchRequest) (punchContext, error) {
	emp, err := employeeService.Current(ctx, s.staff)
	if err != nil {
		return punchContext{}, err
	}

	doc, err := settingsService.Load(ctx, s.settings)
	if err != nil {
		return punchContext{}, err
	}

	if emp.AttendanceLocationID == nil {
		return punchContext{}, attendance.ErrLocationNotSet
	}
	location, ok := doc.FindLocation(*emp.AttendanceLocationID)
	if !ok {
		return punchContext{}, attendance.ErrLocationNotSet
	}

	if err := req.Validate(); err != nil {
		return punchContext{}, err
	}

	within, distance := utils.WithinRadius(*req.Latitude, *req.Longitude, location.Latitude, location.Longitude, location.RadiusMeters)
	if !within {
		return punchContext{}, &attendance.GeofenceError{
			DistanceMeters: distance,
			RadiusMeters:   int(math.Round(location.RadiusMeters)),
		}
	}

	return punchContext{
		emp:      emp,
		settings: doc,
		location: location,
		distance: distance,
		at:       s.today(),
	}, nil
}

// record runs check against the current entry, uploads the selfie and then
// writes the entry built by apply under the day's row lock.
func (s *AttendanceServiceImpl) record(
	ctx context.Context,
	pc punchContext,
	req attendance.PunchRequest,
	direction string,
	check func(existing *attendance.Entry) error,
	apply func(existing *attendance.Entry, selfie *attendance.Selfie, point *attendance.GeoPoint) attendance.Entry,
) (attendance.PunchResponse, error) {
	key := pc.emp.Key()

	day, err := s.attendance.GetDay(ctx, pc.at)
	if err != nil {
		return attendance.PunchResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	if err := check(entryOf(day, key)); err != nil {
		return attendance.PunchResponse{}, err
	}

	url, err := s.files.UploadSelfie(ctx, key, pc.at, direction, req.Selfie)
	if err != nil {
		if errors.Is(err, file.ErrInvalidDataURL) || errors.Is(err, file.ErrUnsupportedType) || errors.Is(err, file.ErrInvalidImage) {
			return attendance.PunchResponse{}, attendance.ErrInvalidSelfie
		}
		return attendance.PunchResponse{}, err
	}

	selfie := &attendance.Selfie{URL: url, CapturedAt: pc.at}
	point := &attendance.GeoPoint{Lat: *req.Latitude, Lng: *req.Longitude, Accuracy: req.Accuracy, CapturedAt: pc.at}

	var entry attendance.Entry
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		day, err := s.attendance.GetDayForUpdate(ctx, pc.at)
		if err != nil {
			return fmt.Errorf("failed to lock attendance: %w", err)
		}
		existing := entryOf(day, key)
		if err := check(existing); err != nil {
			return err
		}
		entry = apply(existing, selfie, point)
		if err := s.attendance.SetEntry(ctx, pc.at, key, entry); err != nil {
			return fmt.Errorf("failed to save attendance: %w", err)
		}
		return nil
	})
	if err != nil {
		if delErr := s.files.DeleteByURL(ctx, url); delErr != nil {
			slog.Warn("failed to delete orphaned selfie", "url", url, "error", delErr)
		}
		return attendance.PunchResponse{}, err
	}

	slog.Info("punch recorded", "employee_key", key, "direction", direction, "time", pc.at.Format(attendance.TimeLayout), "distance_m", pc.distance)
	s.publishDay(ctx, pc.at)

	verdictCtx := status.ResolveContext(pc.at, pc.at, pc.emp, pc.settings)
	return attendance.PunchResponse{
		Date:           status.DateKey(pc.at),
		Entry:          entry,
		Verdict:        status.Compute(&entry, verdictCtx),
		DistanceMeters: pc.distance,
	}, nil
}

func entryOf(day attendance.Day, key string) *attendance.Entry {
	e, ok := day[key]
	if !ok {
		return nil
	}
	return &e
}

// PunchIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) PunchIn(ctx context.Context, req attendance.PunchRequest) (resp attendance.PunchResponse, err error) {
	defer func() { s.metrics.Punch(directionIn, err) }()

	pc, err := s.preparePunch(ctx, req)
	if err != nil {
		return attendance.PunchResponse{}, err
	}

	check := func(existing *attendance.Entry) error {
		if existing != nil && existing.HasPunchIn() {
			return attendance.ErrAlreadyPunchedIn
		}
		return nil
	}
	apply := func(_ *attendance.Entry, selfie *attendance.Selfie, point *attendance.GeoPoint) attendance.Entry {
		punchIn := pc.at.Format(attendance.TimeLayout)
		return attendance.Entry{
			Status:     attendance.StatusPresent,
			PunchIn:    &punchIn,
			SelfieIn:   selfie,
			LocationIn: point,
		}
	}
	return s.record(ctx, pc, req, directionIn, check, apply)
}

// PunchOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) PunchOut(ctx context.Context, req attendance.PunchRequest) (resp attendance.PunchResponse, err error) {
	defer func() { s.metrics.Punch(directionOut, err) }()

	pc, err := s.preparePunch(ctx, req)
	if err != nil {
		return attendance.PunchResponse{}, err
	}

	check := func(existing *attendance.Entry) error {
		switch {
		case existing == nil || !existing.HasPunchIn():
			return attendance.ErrNotPunchedIn
		case existing.HasPunchOut():
			return attendance.ErrAlreadyPunchedOut
		}
		return nil
	}
	apply := func(existing *attendance.Entry, selfie *attendance.Selfie, point *attendance.GeoPoint) attendance.Entry {
		punchOut := pc.at.Format(attendance.TimeLayout)
		merged := existing.Structured()
		merged.PunchOut = &punchOut
		merged.SelfieOut = selfie
		merged.LocationOut = point
		return merged
	}
	return s.record(ctx, pc, req, directionOut, check, apply)
}

// GetMyToday implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMyToday(ctx context.Context) (attendance.TodayResponse, error) {
	emp, err := employeeService.Current(ctx, s.staff)
	if err != nil {
		return attendance.TodayResponse{}, err
	}
	doc, err := settingsService.Load(ctx, s.settings)
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	today := s.today()
	day, err := s.attendance.GetDay(ctx, today)
	if err != nil {
		return attendance.TodayResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	entry := entryOf(day, emp.Key())
	resp := attendance.TodayResponse{
		Date:    status.DateKey(today),
		Entry:   entry,
		Verdict: status.Compute(entry, status.ResolveContext(today, today, emp, doc)),
	}

	if emp.AttendanceLocationID != nil {
		if loc, ok := doc.FindLocation(*emp.AttendanceLocationID); ok {
			resp.Location = &attendance.LocationInfo{
				ID:           loc.ID,
				Name:         loc.Name,
				Latitude:     loc.Latitude,
				Longitude:    loc.Longitude,
				RadiusMeters: loc.RadiusMeters,
			}
		}
	}
	if resp.Location == nil {
		resp.BlockedReason = attendance.ErrLocationNotSet.Error()
		return resp, nil
	}

	punchedIn := entry != nil && entry.HasPunchIn()
	punchedOut := entry != nil && entry.HasPunchOut()
	resp.CanPunchIn = !punchedIn
	resp.CanPunchOut = punchedIn && !punchedOut
	return resp, nil
}

func parseDate(date string) (time.Time, error) {
	t, err := time.Parse(attendance.DateLayout, date)
	if err != nil {
		return time.Time{}, attendance.ErrInvalidDate
	}
	return t, nil
}

// GetDay implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetDay(ctx context.Context, date string) (attendance.DayResponse, error) {
	d, err := parseDate(date)
	if err != nil {
		return attendance.DayResponse{}, err
	}

	staff, err := s.staff.List(ctx, employee.ListFilter{})
	if err != nil {
		return attendance.DayResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}
	doc, err := settingsService.Load(ctx, s.settings)
	if err != nil {
		return attendance.DayResponse{}, err
	}
	day, err := s.attendance.GetDay(ctx, d)
	if err != nil {
		return attendance.DayResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	today := s.today()
	resp := attendance.DayResponse{Date: date, Rows: make([]attendance.DayRow, 0, len(staff))}
	for _, emp := range staff {
		entry := entryOf(day, emp.Key())
		resp.Rows = append(resp.Rows, attendance.DayRow{
			EmployeeID:  emp.ID,
			EmployeeKey: emp.Key(),
			Name:        emp.Name,
			Entry:       entry,
			Verdict:     status.Compute(entry, status.ResolveContext(d, today, emp, doc)),
		})
	}
	resp.Stats = Stats(day, staff)
	return resp, nil
}

// Stats counts raw status tokens of the active staff on one day.
func Stats(day attendance.Day, staff []employee.Employee) attendance.DayStats {
	stats := attendance.DayStats{Total: len(staff)}
	for _, emp := range staff {
		e, ok := day[emp.Key()]
		if !ok {
			stats.Unmarked++
			continue
		}
		switch e.Status {
		case attendance.StatusPresent:
			stats.Present++
		case attendance.StatusAbsent:
			stats.Absent++
		case attendance.StatusLate:
			stats.Late++
		default:
			stats.Unmarked++
		}
	}
	return stats
}

// Mark implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Mark(ctx context.Context, req attendance.MarkRequest) (attendance.Entry, error) {
	if err := req.Validate(); err != nil {
		return attendance.Entry{}, err
	}
	d, err := parseDate(req.Date)
	if err != nil {
		return attendance.Entry{}, err
	}
	if _, err := s.staff.GetByKey(ctx, req.EmployeeKey); err != nil {
		return attendance.Entry{}, err
	}

	entry := req.Entry()
	if err := s.attendance.SetEntry(ctx, d, req.EmployeeKey, entry); err != nil {
		return attendance.Entry{}, fmt.Errorf("failed to save attendance: %w", err)
	}

	slog.Info("attendance marked", "date", req.Date, "employee_key", req.EmployeeKey, "status", entry.Status)
	s.publishDay(ctx, d)
	return entry, nil
}

// Reset implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Reset(ctx context.Context, date, employeeKey string) error {
	_, err := s.Mark(ctx, attendance.MarkRequest{
		Date:        date,
		EmployeeKey: employeeKey,
		Status:      attendance.StatusAbsent,
	})
	return err
}

// MarkAll implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MarkAll(ctx context.Context, req attendance.MarkAllRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	d, err := parseDate(req.Date)
	if err != nil {
		return err
	}

	staff, err := s.staff.List(ctx, employee.ListFilter{})
	if err != nil {
		return fmt.Errorf("failed to list employees: %w", err)
	}
	if len(staff) == 0 {
		return nil
	}

	entries := make(attendance.Day, len(staff))
	for _, emp := range staff {
		entries[emp.Key()] = attendance.Token(req.Status)
	}
	if err := s.attendance.SetEntries(ctx, d, entries); err != nil {
		return fmt.Errorf("failed to save attendance: %w", err)
	}

	slog.Info("attendance marked for all", "date", req.Date, "status", req.Status, "count", len(entries))
	s.publishDay(ctx, d)
	return nil
}
