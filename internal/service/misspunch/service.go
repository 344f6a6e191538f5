package misspunch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/presenz/presenz-backend-go/internal/domain/approval"
	"github.com/presenz/presenz-backend-go/internal/domain/attendance"
	"github.com/presenz/presenz-backend-go/internal/domain/auth"
	"github.com/presenz/presenz-backend-go/internal/domain/employee"
	"github.com/presenz/presenz-backend-go/internal/domain/misspunch"
	"github.com/presenz/presenz-backend-go/internal/pkg/database"
	"github.com/presenz/presenz-backend-go/internal/pkg/metrics"
	"github.com/presenz/presenz-backend-go/internal/pkg/sse"
	employeeService "github.com/presenz/presenz-backend-go/internal/service/employee"
	"github.com/presenz/presenz-backend-go/internal/service/status"
)

const metricKind = "miss_punch"

type MissPunchServiceImpl struct {
	tx         database.Transactor
	requests   misspunch.MissPunchRepository
	attendance attendance.AttendanceRepository
	staff      employee.EmployeeRepository
	hub        sse.Publisher
	metrics    *metrics.Metrics
	loc        *time.Location
	now        func() time.Time
}

func NewMissPunchService(
	tx database.Transactor,
	requests misspunch.MissPunchRepository,
	attendanceRepo attendance.AttendanceRepository,
	staff employee.EmployeeRepository,
	hub sse.Publisher,
	m *metrics.Metrics,
	loc *time.Location,
) misspunch.MissPunchService {
	if loc == nil {
		loc = time.Local
	}
	return &MissPunchServiceImpl{
		tx:         tx,
		requests:   requests,
		attendance: attendanceRepo,
		staff:      staff,
		hub:        hub,
		metrics:    m,
		loc:        loc,
		now:        time.Now,
	}
}

// Create implements misspunch.MissPunchService.
func (s *MissPunchServiceImpl) Create(ctx context.Context, req misspunch.CreateMissPunchRequest) (misspunch.MissPunchRequest, error) {
	emp, err := employeeService.Current(ctx, s.staff)
	if err != nil {
		return misspunch.MissPunchRequest{}, err
	}
	if err := req.Validate(); err != nil {
		return misspunch.MissPunchRequest{}, err
	}
	if req.Date > status.DateKey(s.now().In(s.loc)) {
		return misspunch.MissPunchRequest{}, misspunch.ErrFutureDate
	}

	created, err := s.requests.Create(ctx, misspunch.MissPunchRequest{
		UserID:    emp.Key(),
		UserEmail: emp.Email,
		UserName:  emp.Name,
		Date:      req.Date,
		PunchType: req.PunchType,
		PunchTime: req.PunchTime,
		Reason:    req.Reason,
		Decision:  approval.Pending(),
	})
	if err != nil {
		return misspunch.MissPunchRequest{}, fmt.Errorf("failed to create miss punch request: %w", err)
	}

	slog.Info("miss punch requested", "id", created.ID, "employee_key", created.UserID, "date", created.Date, "punch_type", created.PunchType)
	return created, nil
}

// ListMine implements misspunch.MissPunchService.
func (s *MissPunchServiceImpl) ListMine(ctx context.Context) ([]misspunch.MissPunchRequest, error) {
	emp, err := employeeService.Current(ctx, s.staff)
	if err != nil {
		return nil, err
	}
	list, err := s.requests.ListByUser(ctx, emp.Key())
	if err != nil {
		return nil, fmt.Errorf("failed to list miss punch requests: %w", err)
	}
	return list, nil
}

// List implements misspunch.MissPunchService.
func (s *MissPunchServiceImpl) List(ctx context.Context, req misspunch.ListMissPunchRequest) ([]misspunch.MissPunchRequest, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	list, err := s.requests.List(ctx, approval.Status(req.Status))
	if err != nil {
		return nil, fmt.Errorf("failed to list miss punch requests: %w", err)
	}
	return list, nil
}

// Approve implements misspunch.MissPunchService. The request row and the
// day document are both locked so the punch lands exactly once.
func (s *MissPunchServiceImpl) Approve(ctx context.Context, id string) (misspunch.MissPunchRequest, error) {
	claims, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return misspunch.MissPunchRequest{}, err
	}

	var (
		request misspunch.MissPunchRequest
		date    time.Time
	)
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		request, err = s.requests.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := request.Approve(claims.Approver(), s.now()); err != nil {
			return err
		}

		date, err = time.ParseInLocation(attendance.DateLayout, request.Date, s.loc)
		if err != nil {
			return fmt.Errorf("failed to parse request date: %w", err)
		}
		day, err := s.attendance.GetDayForUpdate(ctx, date)
		if err != nil {
			return fmt.Errorf("failed to lock attendance: %w", err)
		}

		var existing *attendance.Entry
		if e, ok := day[request.UserID]; ok {
			existing = &e
		}
		entry := ApplyPunch(existing, request.PunchType, request.PunchTime)
		if err := s.attendance.SetEntry(ctx, date, request.UserID, entry); err != nil {
			return fmt.Errorf("failed to save attendance: %w", err)
		}
		if err := s.requests.UpdateDecision(ctx, request.ID, request.Decision); err != nil {
			return fmt.Errorf("failed to update miss punch request: %w", err)
		}
		return nil
	})
	if err != nil {
		return misspunch.MissPunchRequest{}, err
	}

	s.metrics.Decision(metricKind, string(approval.StatusApproved))
	slog.Info("miss punch approved", "id", request.ID, "employee_key", request.UserID, "date", request.Date, "approved_by", claims.UID)
	s.publishDay(ctx, date)
	return request, nil
}

// ApplyPunch merges an approved punch into the existing entry. A punch-out
// without a recorded punch-in gets the placeholder punch-in.
func ApplyPunch(existing *attendance.Entry, punchType misspunch.PunchType, punchTime string) attendance.Entry {
	var entry attendance.Entry
	if existing != nil && !existing.IsBare() {
		entry = existing.Structured()
	}
	entry.Status = attendance.StatusPresent

	t := punchTime
	switch punchType {
	case misspunch.PunchIn:
		entry.PunchIn = &t
	case misspunch.PunchOut:
		entry.PunchOut = &t
		if !entry.HasPunchIn() {
			placeholder := attendance.PunchPlaceholder
			entry.PunchIn = &placeholder
		}
	}
	return entry
}

// Reject implements misspunch.MissPunchService.
func (s *MissPunchServiceImpl) Reject(ctx context.Context, req approval.RejectRequest) (misspunch.MissPunchRequest, error) {
	claims, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return misspunch.MissPunchRequest{}, err
	}

	var request misspunch.MissPunchRequest
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		request, err = s.requests.GetByIDForUpdate(ctx, req.ID)
		if err != nil {
			return err
		}
		if err := request.Reject(claims.Approver(), s.now(), req.Reason); err != nil {
			return err
		}
		if err := s.requests.UpdateDecision(ctx, request.ID, request.Decision); err != nil {
			return fmt.Errorf("failed to update miss punch request: %w", err)
		}
		return nil
	})
	if err != nil {
		return misspunch.MissPunchRequest{}, err
	}

	s.metrics.Decision(metricKind, string(approval.StatusRejected))
	slog.Info("miss punch rejected", "id", request.ID, "rejected_by", claims.UID)
	return request, nil
}

func (s *MissPunchServiceImpl) publishDay(ctx context.Context, date time.Time) {
	day, err := s.attendance.GetDay(ctx, date)
	if err != nil {
		slog.Error("failed to load attendance snapshot", "date", status.DateKey(date), "error", err)
		return
	}
	s.hub.Publish(sse.AttendanceTopic(status.DateKey(date)), sse.Event{Name: "attendance", Data: day})
}
