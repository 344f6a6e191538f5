package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/presenz/presenz-backend-go/internal/domain/timesheet"
	"github.com/presenz/presenz-backend-go/internal/pkg/database"
)

type timesheetRepository struct {
	db *database.DB
}

func NewTimesheetRepository(db *database.DB) timesheet.TimesheetRepository {
	return &timesheetRepository{db: db}
}

const timesheetColumns = `
	id::text, user_id, user_email, user_name, to_char(day, 'YYYY-MM-DD'), entries, total_hours::text, created_at`

func scanTimesheet(row pgx.Row) (timesheet.Timesheet, error) {
	var ts timesheet.Timesheet
	var entries []byte
	var total string
	err := row.Scan(&ts.ID, &ts.UserID, &ts.UserEmail, &ts.UserName, &ts.Date, &entries, &total, &ts.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.Timesheet{}, timesheet.ErrTimesheetNotFound
		}
		return timesheet.Timesheet{}, err
	}

	ts.Entries = []timesheet.Entry{}
	if len(entries) > 0 {
		if err := json.Unmarshal(entries, &ts.Entries); err != nil {
			return timesheet.Timesheet{}, fmt.Errorf("failed to decode timesheet entries: %w", err)
		}
	}
	if ts.TotalHours, err = decimal.NewFromString(total); err != nil {
		return timesheet.Timesheet{}, fmt.Errorf("failed to decode total hours: %w", err)
	}
	return ts, nil
}

func timesheetEntries(ts timesheet.Timesheet) (string, error) {
	entries := ts.Entries
	if entries == nil {
		entries = []timesheet.Entry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("failed to encode timesheet entries: %w", err)
	}
	return string(raw), nil
}

// Create implements timesheet.TimesheetRepository.
func (r *timesheetRepository) Create(ctx context.Context, ts timesheet.Timesheet) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return timesheet.Timesheet{}, fmt.Errorf("failed to generate timesheet id: %w", err)
	}
	entries, err := timesheetEntries(ts)
	if err != nil {
		return timesheet.Timesheet{}, err
	}

	query := `
		INSERT INTO timesheets (id, user_id, user_email, user_name, day, entries, total_hours)
		VALUES ($1, $2, $3, $4, $5::date, $6::jsonb, $7::numeric)
		RETURNING ` + timesheetColumns

	created, err := scanTimesheet(q.QueryRow(ctx, query,
		id.String(), ts.UserID, ts.UserEmail, ts.UserName, ts.Date, entries, ts.TotalHours.String(),
	))
	if err != nil {
		return timesheet.Timesheet{}, fmt.Errorf("failed to create timesheet: %w", err)
	}
	return created, nil
}

// GetByID implements timesheet.TimesheetRepository.
func (r *timesheetRepository) GetByID(ctx context.Context, id string) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)
	return scanTimesheet(q.QueryRow(ctx, `SELECT `+timesheetColumns+` FROM timesheets WHERE id::text = $1`, id))
}

// List implements timesheet.TimesheetRepository.
func (r *timesheetRepository) List(ctx context.Context, filter timesheet.ListTimesheetRequest) ([]timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timesheetColumns + `
		FROM timesheets
		WHERE ($1 = '' OR user_id = $1)
		  AND ($2 = '' OR to_char(day, 'YYYY-MM') = $2)
		ORDER BY day DESC, created_at DESC
	`
	rows, err := q.Query(ctx, query, filter.UserID, filter.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to list timesheets: %w", err)
	}
	defer rows.Close()

	list := []timesheet.Timesheet{}
	for rows.Next() {
		ts, err := scanTimesheet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan timesheet: %w", err)
		}
		list = append(list, ts)
	}
	return list, rows.Err()
}

// Delete implements timesheet.TimesheetRepository.
func (r *timesheetRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM timesheets WHERE id::text = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete timesheet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timesheet.ErrTimesheetNotFound
	}
	return nil
}

// Upsert implements timesheet.TimesheetRepository.
func (r *timesheetRepository) Upsert(ctx context.Context, ts timesheet.Timesheet) error {
	q := GetQuerier(ctx, r.db)

	entries, err := timesheetEntries(ts)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO timesheets (id, user_id, user_email, user_name, day, entries, total_hours, created_at)
		VALUES ($1, $2, $3, $4, $5::date, $6::jsonb, $7::numeric, COALESCE($8, NOW()))
		ON CONFLICT (id) DO UPDATE
		SET user_id = EXCLUDED.user_id, user_email = EXCLUDED.user_email, user_name = EXCLUDED.user_name,
			day = EXCLUDED.day, entries = EXCLUDED.entries, total_hours = EXCLUDED.total_hours
	`
	_, err = q.Exec(ctx, query,
		ts.ID, ts.UserID, ts.UserEmail, ts.UserName, ts.Date, entries, ts.TotalHours.String(), nullTime(ts.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert timesheet %s: %w", ts.ID, err)
	}
	return nil
}

// Count implements timesheet.TimesheetRepository.
func (r *timesheetRepository) Count(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, r.db)

	var n int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM timesheets`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count timesheets: %w", err)
	}
	return n, nil
}
