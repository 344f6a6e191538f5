package memory

import (
	"context"
	"sort"

	"github.com/presenz/presenz-backend-go/internal/domain/approval"
	"github.com/presenz/presenz-backend-go/internal/domain/leave"
	"github.com/presenz/presenz-backend-go/internal/domain/misspunch"
	"github.com/presenz/presenz-backend-go/internal/domain/timesheet"
)

type missPunchRepository struct{ s *Store }

func (s *Store) MissPunches() misspunch.MissPunchRepository {
	return &missPunchRepository{s: s}
}

func (r *missPunchRepository) Create(ctx context.Context, req misspunch.MissPunchRequest) (misspunch.MissPunchRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req.ID = newID()
	req.Decision = approval.Pending()
	now := r.s.Now()
	req.CreatedAt, req.UpdatedAt = now, now
	r.s.missPunch[req.ID] = req
	return req, nil
}

func (r *missPunchRepository) GetByID(ctx context.Context, id string) (misspunch.MissPunchRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req, ok := r.s.missPunch[id]
	if !ok {
		return misspunch.MissPunchRequest{}, misspunch.ErrRequestNotFound
	}
	return req, nil
}

func (r *missPunchRepository) GetByIDForUpdate(ctx context.Context, id string) (misspunch.MissPunchRequest, error) {
	return r.GetByID(ctx, id)
}

func (r *missPunchRepository) list(keep func(misspunch.MissPunchRequest) bool) []misspunch.MissPunchRequest {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []misspunch.MissPunchRequest{}
	for _, req := range r.s.missPunch {
		if keep(req) {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *missPunchRepository) List(ctx context.Context, status approval.Status) ([]misspunch.MissPunchRequest, error) {
	return r.list(func(m misspunch.MissPunchRequest) bool { return status == "" || m.Status == status }), nil
}

func (r *missPunchRepository) ListByUser(ctx context.Context, userID string) ([]misspunch.MissPunchRequest, error) {
	return r.list(func(m misspunch.MissPunchRequest) bool { return m.UserID == userID }), nil
}

func (r *missPunchRepository) UpdateDecision(ctx context.Context, id string, d approval.Decision) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req, ok := r.s.missPunch[id]
	if !ok {
		return misspunch.ErrRequestNotFound
	}
	req.Decision = d
	req.UpdatedAt = r.s.Now()
	r.s.missPunch[id] = req
	return nil
}

func (r *missPunchRepository) Upsert(ctx context.Context, req misspunch.MissPunchRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if req.Status == "" {
		req.Status = approval.StatusPending
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = r.s.Now()
	}
	req.UpdatedAt = r.s.Now()
	r.s.missPunch[req.ID] = req
	return nil
}

func (r *missPunchRepository) Count(ctx context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.missPunch), nil
}

type leaveRepository struct{ s *Store }

func (s *Store) Leaves() leave.LeaveRepository {
	return &leaveRepository{s: s}
}

func (r *leaveRepository) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req.ID = newID()
	req.Decision = approval.Pending()
	now := r.s.Now()
	req.CreatedAt, req.UpdatedAt = now, now
	r.s.leaves[req.ID] = req
	return req, nil
}

func (r *leaveRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req, ok := r.s.leaves[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return req, nil
}

func (r *leaveRepository) GetByIDForUpdate(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return r.GetByID(ctx, id)
}

func (r *leaveRepository) list(keep func(leave.LeaveRequest) bool) []leave.LeaveRequest {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []leave.LeaveRequest{}
	for _, req := range r.s.leaves {
		if keep(req) {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *leaveRepository) List(ctx context.Context, status approval.Status) ([]leave.LeaveRequest, error) {
	return r.list(func(l leave.LeaveRequest) bool { return status == "" || l.Status == status }), nil
}

func (r *leaveRepository) ListByUser(ctx context.Context, userID string) ([]leave.LeaveRequest, error) {
	return r.list(func(l leave.LeaveRequest) bool { return l.UserID == userID }), nil
}

func (r *leaveRepository) UpdateDecision(ctx context.Context, id string, d approval.Decision) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req, ok := r.s.leaves[id]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}
	req.Decision = d
	req.UpdatedAt = r.s.Now()
	r.s.leaves[id] = req
	return nil
}

func (r *leaveRepository) Upsert(ctx context.Context, req leave.LeaveRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if req.Status == "" {
		req.Status = approval.StatusPending
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = r.s.Now()
	}
	req.UpdatedAt = r.s.Now()
	r.s.leaves[req.ID] = req
	return nil
}

func (r *leaveRepository) Count(ctx context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.leaves), nil
}

type timesheetRepository struct{ s *Store }

func (s *Store) Timesheets() timesheet.TimesheetRepository {
	return &timesheetRepository{s: s}
}

func (r *timesheetRepository) Create(ctx context.Context, ts timesheet.Timesheet) (timesheet.Timesheet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ts.ID = newID()
	ts.CreatedAt = r.s.Now()
	r.s.timesheets[ts.ID] = ts
	return ts, nil
}

func (r *timesheetRepository) GetByID(ctx context.Context, id string) (timesheet.Timesheet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ts, ok := r.s.timesheets[id]
	if !ok {
		return timesheet.Timesheet{}, timesheet.ErrTimesheetNotFound
	}
	return ts, nil
}

func (r *timesheetRepository) List(ctx context.Context, filter timesheet.ListTimesheetRequest) ([]timesheet.Timesheet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []timesheet.Timesheet{}
	for _, ts := range r.s.timesheets {
		if filter.UserID != "" && ts.UserID != filter.UserID {
			continue
		}
		if filter.Month != "" && (len(ts.Date) < 7 || ts.Date[:7] != filter.Month) {
			continue
		}
		out = append(out, ts)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *timesheetRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.timesheets[id]; !ok {
		return timesheet.ErrTimesheetNotFound
	}
	delete(r.s.timesheets, id)
	return nil
}

func (r *timesheetRepository) Upsert(ctx context.Context, ts timesheet.Timesheet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if ts.CreatedAt.IsZero() {
		ts.CreatedAt = r.s.Now()
	}
	r.s.timesheets[ts.ID] = ts
	return nil
}

func (r *timesheetRepository) Count(ctx context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.timesheets), nil
}
