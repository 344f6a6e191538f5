package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/presenz/presenz-backend-go/internal/domain/employee"
	"github.com/presenz/presenz-backend-go/internal/domain/shiftrule"
	"github.com/presenz/presenz-backend-go/internal/domain/user"
	"github.com/presenz/presenz-backend-go/internal/pkg/database"
)

type staffRepositoryImpl struct {
	db *database.DB
}

func NewStaffRepository(db *database.DB) employee.EmployeeRepository {
	return &staffRepositoryImpl{db: db}
}

const staffColumns = `
	id, uid, name, email, role, access_role, shift_rule_id, attendance_location_id,
	salary, paid_holidays, paid_weekly_offs, unpaid_holidays, phone, address,
	bank_details, profile_image, status, joined_at, created_at, updated_at`

func scanStaff(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	var accessRole, status string
	var paidHolidays, paidWeeklyOffs *bool

	err := row.Scan(
		&e.ID,
		&e.UID,
		&e.Name,
		&e.Email,
		&e.Role,
		&accessRole,
		&e.ShiftRuleID,
		&e.AttendanceLocationID,
		&e.Salary,
		&paidHolidays,
		&paidWeeklyOffs,
		&e.UnpaidHolidays,
		&e.Phone,
		&e.Address,
		&e.BankDetails,
		&e.ProfileImage,
		&status,
		&e.JoinedAt,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}

	e.AccessRole = user.ParseRole(accessRole)
	e.Status = employee.Status(status)
	e.PaidHolidays = shiftrule.OverrideFromBool(paidHolidays)
	e.PaidWeeklyOffs = shiftrule.OverrideFromBool(paidWeeklyOffs)
	if e.UnpaidHolidays == nil {
		e.UnpaidHolidays = []string{}
	}
	return e, nil
}

func collectStaff(rows pgx.Rows) ([]employee.Employee, error) {
	defer rows.Close()

	list := []employee.Employee{}
	for rows.Next() {
		e, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func mapStaffWriteError(err error) error {
	if isUniqueViolation(err, "idx_staff_uid") {
		return employee.ErrUIDExists
	}
	return err
}

func staffArgs(e employee.Employee) []any {
	unpaid := e.UnpaidHolidays
	if unpaid == nil {
		unpaid = []string{}
	}
	joined := e.JoinedAt
	if joined.IsZero() {
		joined = time.Now()
	}
	return []any{
		e.ID,
		e.UID,
		e.Name,
		e.Email,
		e.Role,
		string(e.AccessRole),
		e.ShiftRuleID,
		e.AttendanceLocationID,
		e.Salary,
		e.PaidHolidays.Bool(),
		e.PaidWeeklyOffs.Bool(),
		unpaid,
		e.Phone,
		e.Address,
		e.BankDetails,
		e.ProfileImage,
		string(e.Status),
		joined,
	}
}

// Create implements employee.EmployeeRepository.
func (r *staffRepositoryImpl) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	if e.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return employee.Employee{}, fmt.Errorf("failed to generate staff id: %w", err)
		}
		e.ID = id.String()
	}
	if e.Status == "" {
		e.Status = employee.StatusActive
	}

	query := `
		INSERT INTO staff (
			id, uid, name, email, role, access_role, shift_rule_id, attendance_location_id,
			salary, paid_holidays, paid_weekly_offs, unpaid_holidays, phone, address,
			bank_details, profile_image, status, joined_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING ` + staffColumns

	created, err := scanStaff(q.QueryRow(ctx, query, staffArgs(e)...))
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create staff: %w", mapStaffWriteError(err))
	}
	return created, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *staffRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + staffColumns + ` FROM staff WHERE id::text = $1`
	return scanStaff(q.QueryRow(ctx, query, id))
}

// GetByKey implements employee.EmployeeRepository.
func (r *staffRepositoryImpl) GetByKey(ctx context.Context, key string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + staffColumns + `
		FROM staff
		WHERE uid = $1 OR (uid IS NULL AND id::text = $1)
		ORDER BY (status = 'removed'), (uid = $1) DESC NULLS LAST
		LIMIT 1
	`
	return scanStaff(q.QueryRow(ctx, query, key))
}

// GetByEmail implements employee.EmployeeRepository.
func (r *staffRepositoryImpl) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + staffColumns + `
		FROM staff
		WHERE LOWER(email) = LOWER($1) AND status <> 'removed'
		LIMIT 1
	`
	return scanStaff(q.QueryRow(ctx, query, email))
}

// List implements employee.EmployeeRepository.
func (r *staffRepositoryImpl) List(ctx context.Context, filter employee.ListFilter) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + staffColumns + `
		FROM staff
		WHERE ($1 OR status <> 'removed')
		  AND ($2 = '' OR name ILIKE '%' || $2 || '%' OR email ILIKE '%' || $2 || '%')
		ORDER BY name, created_at
	`
	rows, err := q.Query(ctx, query, filter.IncludeRemoved, filter.Search)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	return collectStaff(rows)
}

// Update implements employee.EmployeeRepository.
func (r *staffRepositoryImpl) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE staff
		SET uid = $2, name = $3, email = $4, role = $5, access_role = $6, shift_rule_id = $7,
			attendance_location_id = $8, salary = $9, paid_holidays = $10, paid_weekly_offs = $11,
			unpaid_holidays = $12, phone = $13, address = $14, bank_details = $15,
			profile_image = $16, status = $17, joined_at = $18, updated_at = NOW()
		WHERE id::text = $1
		RETURNING ` + staffColumns

	updated, err := scanStaff(q.QueryRow(ctx, query, staffArgs(e)...))
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, err
		}
		return employee.Employee{}, fmt.Errorf("failed to update staff: %w", mapStaffWriteError(err))
	}
	return updated, nil
}

// UpdateProfileImage implements employee.EmployeeRepository.
func (r *staffRepositoryImpl) UpdateProfileImage(ctx context.Context, id string, path *string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE staff SET profile_image = $1, updated_at = NOW() WHERE id::text = $2`, path, id)
	if err != nil {
		return fmt.Errorf("failed to update profile image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// SoftDelete implements employee.EmployeeRepository.
func (r *staffRepositoryImpl) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE staff
		SET status = 'removed', updated_at = NOW()
		WHERE id::text = $1 AND status <> 'removed'
	`
	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to remove staff: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// Upsert implements employee.EmployeeRepository.
func (r *staffRepositoryImpl) Upsert(ctx context.Context, e employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	if e.Status == "" {
		e.Status = employee.StatusActive
	}

	query := `
		INSERT INTO staff (
			id, uid, name, email, role, access_role, shift_rule_id, attendance_location_id,
			salary, paid_holidays, paid_weekly_offs, unpaid_holidays, phone, address,
			bank_details, profile_image, status, joined_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (id) DO UPDATE
		SET uid = EXCLUDED.uid, name = EXCLUDED.name, email = EXCLUDED.email, role = EXCLUDED.role,
			access_role = EXCLUDED.access_role, shift_rule_id = EXCLUDED.shift_rule_id,
			attendance_location_id = EXCLUDED.attendance_location_id, salary = EXCLUDED.salary,
			paid_holidays = EXCLUDED.paid_holidays, paid_weekly_offs = EXCLUDED.paid_weekly_offs,
			unpaid_holidays = EXCLUDED.unpaid_holidays, phone = EXCLUDED.phone,
			address = EXCLUDED.address, bank_details = EXCLUDED.bank_details,
			profile_image = EXCLUDED.profile_image, status = EXCLUDED.status,
			joined_at = EXCLUDED.joined_at, updated_at = NOW()
	`
	if _, err := q.Exec(ctx, query, staffArgs(e)...); err != nil {
		return fmt.Errorf("failed to upsert staff: %w", mapStaffWriteError(err))
	}
	return nil
}

// Count implements employee.EmployeeRepository.
func (r *staffRepositoryImpl) Count(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, r.db)

	var n int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM staff`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count staff: %w", err)
	}
	return n, nil
}
