package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/presenz/presenz-backend-go/internal/domain/approval"
	"github.com/presenz/presenz-backend-go/internal/domain/misspunch"
	"github.com/presenz/presenz-backend-go/internal/pkg/database"
)

type missPunchRepository struct {
	db *database.DB
}

func NewMissPunchRepository(db *database.DB) misspunch.MissPunchRepository {
	return &missPunchRepository{db: db}
}

const missPunchColumns = `
	id::text, user_id, user_email, user_name, to_char(day, 'YYYY-MM-DD'), punch_type, punch_time, reason,
	status, approved_by, approved_by_name, approved_at, rejection_reason, created_at, updated_at`

func scanMissPunch(row pgx.Row) (misspunch.MissPunchRequest, error) {
	var m misspunch.MissPunchRequest
	var punchType, status string
	err := row.Scan(
		&m.ID, &m.UserID, &m.UserEmail, &m.UserName, &m.Date, &punchType, &m.PunchTime, &m.Reason,
		&status, &m.ApprovedBy, &m.ApprovedByName, &m.ApprovedAt, &m.RejectionReason,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return misspunch.MissPunchRequest{}, misspunch.ErrRequestNotFound
		}
		return misspunch.MissPunchRequest{}, err
	}
	m.PunchType = misspunch.PunchType(punchType)
	m.Status = approval.Status(status)
	return m, nil
}

func (r *missPunchRepository) query(ctx context.Context, query string, args ...any) ([]misspunch.MissPunchRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list miss-punch requests: %w", err)
	}
	defer rows.Close()

	list := []misspunch.MissPunchRequest{}
	for rows.Next() {
		m, err := scanMissPunch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan miss-punch request: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Create implements misspunch.MissPunchRepository.
func (r *missPunchRepository) Create(ctx context.Context, req misspunch.MissPunchRequest) (misspunch.MissPunchRequest, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return misspunch.MissPunchRequest{}, fmt.Errorf("failed to generate request id: %w", err)
	}

	query := `
		INSERT INTO miss_punch_requests (id, user_id, user_email, user_name, day, punch_type, punch_time, reason, status)
		VALUES ($1, $2, $3, $4, $5::date, $6, $7, $8, $9)
		RETURNING ` + missPunchColumns

	created, err := scanMissPunch(q.QueryRow(ctx, query,
		id.String(), req.UserID, req.UserEmail, req.UserName, req.Date,
		string(req.PunchType), req.PunchTime, req.Reason, string(approval.StatusPending),
	))
	if err != nil {
		return misspunch.MissPunchRequest{}, fmt.Errorf("failed to create miss-punch request: %w", err)
	}
	return created, nil
}

// GetByID implements misspunch.MissPunchRepository.
func (r *missPunchRepository) GetByID(ctx context.Context, id string) (misspunch.MissPunchRequest, error) {
	q := GetQuerier(ctx, r.db)
	return scanMissPunch(q.QueryRow(ctx, `SELECT `+missPunchColumns+` FROM miss_punch_requests WHERE id::text = $1`, id))
}

// GetByIDForUpdate implements misspunch.MissPunchRepository.
func (r *missPunchRepository) GetByIDForUpdate(ctx context.Context, id string) (misspunch.MissPunchRequest, error) {
	q := GetQuerier(ctx, r.db)
	return scanMissPunch(q.QueryRow(ctx, `SELECT `+missPunchColumns+` FROM miss_punch_requests WHERE id::text = $1 FOR UPDATE`, id))
}

// List implements misspunch.MissPunchRepository.
func (r *missPunchRepository) List(ctx context.Context, status approval.Status) ([]misspunch.MissPunchRequest, error) {
	query := `
		SELECT ` + missPunchColumns + `
		FROM miss_punch_requests
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
	`
	return r.query(ctx, query, string(status))
}

// ListByUser implements misspunch.MissPunchRepository.
func (r *missPunchRepository) ListByUser(ctx context.Context, userID string) ([]misspunch.MissPunchRequest, error) {
	query := `
		SELECT ` + missPunchColumns + `
		FROM miss_punch_requests
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	return r.query(ctx, query, userID)
}

// UpdateDecision implements misspunch.MissPunchRepository.
func (r *missPunchRepository) UpdateDecision(ctx context.Context, id string, d approval.Decision) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE miss_punch_requests
		SET status = $2, approved_by = $3, approved_by_name = $4, approved_at = $5,
			rejection_reason = $6, updated_at = NOW()
		WHERE id::text = $1
	`
	tag, err := q.Exec(ctx, query, id, string(d.Status), d.ApprovedBy, d.ApprovedByName, d.ApprovedAt, d.RejectionReason)
	if err != nil {
		return fmt.Errorf("failed to update miss-punch request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return misspunch.ErrRequestNotFound
	}
	return nil
}

// Upsert implements misspunch.MissPunchRepository.
func (r *missPunchRepository) Upsert(ctx context.Context, m misspunch.MissPunchRequest) error {
	q := GetQuerier(ctx, r.db)

	status := m.Status
	if status == "" {
		status = approval.StatusPending
	}

	query := `
		INSERT INTO miss_punch_requests (
			id, user_id, user_email, user_name, day, punch_type, punch_time, reason,
			status, approved_by, approved_by_name, approved_at, rejection_reason, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5::date, $6, $7, $8, $9, $10, $11, $12, $13, COALESCE($14, NOW()), NOW())
		ON CONFLICT (id) DO UPDATE
		SET user_id = EXCLUDED.user_id, user_email = EXCLUDED.user_email, user_name = EXCLUDED.user_name,
			day = EXCLUDED.day, punch_type = EXCLUDED.punch_type, punch_time = EXCLUDED.punch_time,
			reason = EXCLUDED.reason, status = EXCLUDED.status, approved_by = EXCLUDED.approved_by,
			approved_by_name = EXCLUDED.approved_by_name, approved_at = EXCLUDED.approved_at,
			rejection_reason = EXCLUDED.rejection_reason, updated_at = NOW()
	`
	_, err := q.Exec(ctx, query,
		m.ID, m.UserID, m.UserEmail, m.UserName, m.Date, string(m.PunchType), m.PunchTime, m.Reason,
		string(status), m.ApprovedBy, m.ApprovedByName, m.ApprovedAt, m.RejectionReason, nullTime(m.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert miss-punch request %s: %w", m.ID, err)
	}
	return nil
}

// Count implements misspunch.MissPunchRepository.
func (r *missPunchRepository) Count(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, r.db)

	var n int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM miss_punch_requests`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count miss-punch requests: %w", err)
	}
	return n, nil
}
