package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/presenz/presenz-backend-go/internal/domain/approval"
	"github.com/presenz/presenz-backend-go/internal/domain/leave"
	"github.com/presenz/presenz-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveColumns = `
	id::text, user_id, user_email, user_name, leave_type, date_type,
	to_char(start_date, 'YYYY-MM-DD'), to_char(end_date, 'YYYY-MM-DD'), total_days, reason,
	status, approved_by, approved_by_name, approved_at, rejection_reason, created_at, updated_at`

func scanLeave(row pgx.Row) (leave.LeaveRequest, error) {
	var l leave.LeaveRequest
	var leaveType, dateType, status string
	err := row.Scan(
		&l.ID, &l.UserID, &l.UserEmail, &l.UserName, &leaveType, &dateType,
		&l.StartDate, &l.EndDate, &l.TotalDays, &l.Reason,
		&status, &l.ApprovedBy, &l.ApprovedByName, &l.ApprovedAt, &l.RejectionReason,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}
	l.LeaveType = leave.LeaveType(leaveType)
	l.DateType = leave.DateType(dateType)
	l.Status = approval.Status(status)
	return l, nil
}

func (r *leaveRequestRepositoryImpl) query(ctx context.Context, query string, args ...any) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	list := []leave.LeaveRequest{}
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// Create implements leave.LeaveRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to generate request id: %w", err)
	}

	query := `
		INSERT INTO leave_requests (
			id, user_id, user_email, user_name, leave_type, date_type,
			start_date, end_date, total_days, reason, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7::date, $8::date, $9, $10, $11)
		RETURNING ` + leaveColumns

	created, err := scanLeave(q.QueryRow(ctx, query,
		id.String(), req.UserID, req.UserEmail, req.UserName, string(req.LeaveType), string(req.DateType),
		req.StartDate, req.EndDate, req.TotalDays, req.Reason, string(approval.StatusPending),
	))
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return created, nil
}

// GetByID implements leave.LeaveRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	return scanLeave(q.QueryRow(ctx, `SELECT `+leaveColumns+` FROM leave_requests WHERE id::text = $1`, id))
}

// GetByIDForUpdate implements leave.LeaveRepository.
func (r *leaveRequestRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	return scanLeave(q.QueryRow(ctx, `SELECT `+leaveColumns+` FROM leave_requests WHERE id::text = $1 FOR UPDATE`, id))
}

// List implements leave.LeaveRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, status approval.Status) ([]leave.LeaveRequest, error) {
	query := `
		SELECT ` + leaveColumns + `
		FROM leave_requests
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
	`
	return r.query(ctx, query, string(status))
}

// ListByUser implements leave.LeaveRepository.
func (r *leaveRequestRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]leave.LeaveRequest, error) {
	query := `
		SELECT ` + leaveColumns + `
		FROM leave_requests
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	return r.query(ctx, query, userID)
}

// UpdateDecision implements leave.LeaveRepository.
func (r *leaveRequestRepositoryImpl) UpdateDecision(ctx context.Context, id string, d approval.Decision) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $2, approved_by = $3, approved_by_name = $4, approved_at = $5,
			rejection_reason = $6, updated_at = NOW()
		WHERE id::text = $1
	`
	tag, err := q.Exec(ctx, query, id, string(d.Status), d.ApprovedBy, d.ApprovedByName, d.ApprovedAt, d.RejectionReason)
	if err != nil {
		return fmt.Errorf("failed to update leave request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}

// Upsert implements leave.LeaveRepository.
func (r *leaveRequestRepositoryImpl) Upsert(ctx context.Context, l leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	status := l.Status
	if status == "" {
		status = approval.StatusPending
	}

	query := `
		INSERT INTO leave_requests (
			id, user_id, user_email, user_name, leave_type, date_type, start_date, end_date,
			total_days, reason, status, approved_by, approved_by_name, approved_at, rejection_reason,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7::date, $8::date, $9, $10, $11, $12, $13, $14, $15, COALESCE($16, NOW()), NOW())
		ON CONFLICT (id) DO UPDATE
		SET user_id = EXCLUDED.user_id, user_email = EXCLUDED.user_email, user_name = EXCLUDED.user_name,
			leave_type = EXCLUDED.leave_type, date_type = EXCLUDED.date_type,
			start_date = EXCLUDED.start_date, end_date = EXCLUDED.end_date,
			total_days = EXCLUDED.total_days, reason = EXCLUDED.reason, status = EXCLUDED.status,
			approved_by = EXCLUDED.approved_by, approved_by_name = EXCLUDED.approved_by_name,
			approved_at = EXCLUDED.approved_at, rejection_reason = EXCLUDED.rejection_reason,
			updated_at = NOW()
	`
	_, err := q.Exec(ctx, query,
		l.ID, l.UserID, l.UserEmail, l.UserName, string(l.LeaveType), string(l.DateType), l.StartDate, l.EndDate,
		l.TotalDays, l.Reason, string(status), l.ApprovedBy, l.ApprovedByName, l.ApprovedAt, l.RejectionReason,
		nullTime(l.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert leave request %s: %w", l.ID, err)
	}
	return nil
}

// Count implements leave.LeaveRepository.
func (r *leaveRequestRepositoryImpl) Count(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, r.db)

	var n int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM leave_requests`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count leave requests: %w", err)
	}
	return n, nil
}
