package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/presenz/presenz-backend-go/internal/domain/approval"
	"github.com/presenz/presenz-backend-go/internal/domain/auth"
	"github.com/presenz/presenz-backend-go/internal/domain/employee"
	"github.com/presenz/presenz-backend-go/internal/domain/leave"
	"github.com/presenz/presenz-backend-go/internal/pkg/database"
	"github.com/presenz/presenz-backend-go/internal/pkg/metrics"
	employeeService "github.com/presenz/presenz-backend-go/internal/service/employee"
)

const metricKind = "leave"

type LeaveServiceImpl struct {
	tx       database.Transactor
	requests leave.LeaveRepository
	staff    employee.EmployeeRepository
	metrics  *metrics.Metrics
	now      func() time.Time
}

func NewLeaveService(tx database.Transactor, requests leave.LeaveRepository, staff employee.EmployeeRepository, m *metrics.Metrics) leave.LeaveService {
	return &LeaveServiceImpl{
		tx:       tx,
		requests: requests,
		staff:    staff,
		metrics:  m,
		now:      time.Now,
	}
}

// Create implements leave.LeaveService.
func (s *LeaveServiceImpl) Create(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveRequest, error) {
	emp, err := employeeService.Current(ctx, s.staff)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	created, err := s.requests.Create(ctx, leave.LeaveRequest{
		UserID:    emp.Key(),
		UserEmail: emp.Email,
		UserName:  emp.Name,
		LeaveType: req.LeaveType,
		DateType:  req.DateType,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		TotalDays: req.Days(),
		Reason:    req.Reason,
		Decision:  approval.Pending(),
	})
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	slog.Info("leave requested", "id", created.ID, "employee_key", created.UserID, "start", created.StartDate, "days", created.TotalDays)
	return created, nil
}

// ListMine implements leave.LeaveService.
func (s *LeaveServiceImpl) ListMine(ctx context.Context) ([]leave.LeaveRequest, error) {
	emp, err := employeeService.Current(ctx, s.staff)
	if err != nil {
		return nil, err
	}
	list, err := s.requests.ListByUser(ctx, emp.Key())
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return list, nil
}

// List implements leave.LeaveService.
func (s *LeaveServiceImpl) List(ctx context.Context, req leave.ListLeaveRequest) ([]leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	list, err := s.requests.List(ctx, approval.Status(req.Status))
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return list, nil
}

// Approve implements leave.LeaveService.
func (s *LeaveServiceImpl) Approve(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return s.decide(ctx, id, func(d *approval.Decision, by approval.Approver, at time.Time) error {
		return d.Approve(by, at)
	})
}

// Reject implements leave.LeaveService.
func (s *LeaveServiceImpl) Reject(ctx context.Context, req approval.RejectRequest) (leave.LeaveRequest, error) {
	return s.decide(ctx, req.ID, func(d *approval.Decision, by approval.Approver, at time.Time) error {
		return d.Reject(by, at, req.Reason)
	})
}

func (s *LeaveServiceImpl) decide(ctx context.Context, id string, transition func(*approval.Decision, approval.Approver, time.Time) error) (leave.LeaveRequest, error) {
	claims, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	var request leave.LeaveRequest
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		request, err = s.requests.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := transition(&request.Decision, claims.Approver(), s.now()); err != nil {
			return err
		}
		if err := s.requests.UpdateDecision(ctx, request.ID, request.Decision); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	s.metrics.Decision(metricKind, string(request.Status))
	slog.Info("leave request decided", "id", request.ID, "status", request.Status, "by", claims.UID)
	return request, nil
}
