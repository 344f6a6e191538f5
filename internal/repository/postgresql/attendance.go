package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/presenz/presenz-backend-go/internal/domain/attendance"
	"github.com/presenz/presenz-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func dayKey(date time.Time) string {
	return date.Format(attendance.DateLayout)
}

func decodeDay(raw []byte) (attendance.Day, error) {
	day := attendance.Day{}
	if len(raw) == 0 {
		return day, nil
	}
	if err := json.Unmarshal(raw, &day); err != nil {
		return nil, fmt.Errorf("failed to decode attendance document: %w", err)
	}
	return day, nil
}

func (a *attendanceRepository) getDay(ctx context.Context, date time.Time, lock bool) (attendance.Day, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT records FROM attendance_days WHERE day = $1::date`
	if lock {
		query += ` FOR UPDATE`
	}

	var raw []byte
	err := q.QueryRow(ctx, query, dayKey(date)).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Day{}, nil
		}
		return nil, fmt.Errorf("failed to get attendance for %s: %w", dayKey(date), err)
	}
	return decodeDay(raw)
}

// GetDay implements attendance.AttendanceRepository. A date nobody touched
// yields an empty document.
func (a *attendanceRepository) GetDay(ctx context.Context, date time.Time) (attendance.Day, error) {
	return a.getDay(ctx, date, false)
}

// GetDayForUpdate implements attendance.AttendanceRepository. The row is
// created first so that concurrent writers of a fresh date serialize on it.
func (a *attendanceRepository) GetDayForUpdate(ctx context.Context, date time.Time) (attendance.Day, error) {
	q := GetQuerier(ctx, a.db)

	_, err := q.Exec(ctx, `INSERT INTO attendance_days (day) VALUES ($1::date) ON CONFLICT (day) DO NOTHING`, dayKey(date))
	if err != nil {
		return nil, fmt.Errorf("failed to prepare attendance for %s: %w", dayKey(date), err)
	}
	return a.getDay(ctx, date, true)
}

// SetEntry implements attendance.AttendanceRepository.
func (a *attendanceRepository) SetEntry(ctx context.Context, date time.Time, key string, entry attendance.Entry) error {
	return a.SetEntries(ctx, date, attendance.Day{key: entry})
}

// SetEntries implements attendance.AttendanceRepository. Keys not in entries
// are left untouched.
func (a *attendanceRepository) SetEntries(ctx context.Context, date time.Time, entries attendance.Day) error {
	if len(entries) == 0 {
		return nil
	}
	q := GetQuerier(ctx, a.db)

	patch, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode attendance entries: %w", err)
	}

	query := `
		INSERT INTO attendance_days (day, records, updated_at)
		VALUES ($1::date, $2::jsonb, NOW())
		ON CONFLICT (day) DO UPDATE
		SET records = attendance_days.records || EXCLUDED.records,
			updated_at = NOW()
	`
	if _, err := q.Exec(ctx, query, dayKey(date), string(patch)); err != nil {
		return fmt.Errorf("failed to save attendance for %s: %w", dayKey(date), err)
	}
	return nil
}

// ReplaceDay implements attendance.AttendanceRepository.
func (a *attendanceRepository) ReplaceDay(ctx context.Context, date time.Time, day attendance.Day) error {
	q := GetQuerier(ctx, a.db)

	if day == nil {
		day = attendance.Day{}
	}
	doc, err := json.Marshal(day)
	if err != nil {
		return fmt.Errorf("failed to encode attendance document: %w", err)
	}

	query := `
		INSERT INTO attendance_days (day, records, updated_at)
		VALUES ($1::date, $2::jsonb, NOW())
		ON CONFLICT (day) DO UPDATE
		SET records = EXCLUDED.records, updated_at = NOW()
	`
	if _, err := q.Exec(ctx, query, dayKey(date), string(doc)); err != nil {
		return fmt.Errorf("failed to replace attendance for %s: %w", dayKey(date), err)
	}
	return nil
}

func (a *attendanceRepository) collectDays(rows pgx.Rows) (map[string]attendance.Day, error) {
	defer rows.Close()

	days := make(map[string]attendance.Day)
	for rows.Next() {
		var key string
		var raw []byte
		if err := rows.Scan(&key, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		day, err := decodeDay(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		days[key] = day
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance rows: %w", err)
	}
	return days, nil
}

// ListRange implements attendance.AttendanceRepository. Both bounds are inclusive.
func (a *attendanceRepository) ListRange(ctx context.Context, from, to time.Time) (map[string]attendance.Day, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT to_char(day, 'YYYY-MM-DD'), records
		FROM attendance_days
		WHERE day BETWEEN $1::date AND $2::date
		ORDER BY day
	`
	rows, err := q.Query(ctx, query, dayKey(from), dayKey(to))
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return a.collectDays(rows)
}

// ListAll implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListAll(ctx context.Context) (map[string]attendance.Day, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, `SELECT to_char(day, 'YYYY-MM-DD'), records FROM attendance_days ORDER BY day`)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return a.collectDays(rows)
}

// CountDays implements attendance.AttendanceRepository.
func (a *attendanceRepository) CountDays(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, a.db)

	var n int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM attendance_days`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count attendance days: %w", err)
	}
	return n, nil
}
