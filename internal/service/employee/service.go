package employee

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/presenz/presenz-backend-go/internal/domain/auth"
	"github.com/presenz/presenz-backend-go/internal/domain/employee"
	"github.com/presenz/presenz-backend-go/internal/domain/settings"
	"github.com/presenz/presenz-backend-go/internal/domain/user"
	"github.com/presenz/presenz-backend-go/internal/pkg/database"
	"github.com/presenz/presenz-backend-go/internal/pkg/identity"
	"github.com/presenz/presenz-backend-go/internal/pkg/sse"
	authService "github.com/presenz/presenz-backend-go/internal/service/auth"
	"github.com/presenz/presenz-backend-go/internal/service/file"
	settingsService "github.com/presenz/presenz-backend-go/internal/service/settings"
)

type EmployeeServiceImpl struct {
	tx       database.Transactor
	staff    employee.EmployeeRepository
	users    user.UserRepository
	settings settings.SettingsRepository
	files    file.FileService
	provider identity.Provider
	hub      sse.Publisher
}

// NewEmployeeService builds the staff service. provider may be nil, in which
// case accounts exist only in the local users table.
func NewEmployeeService(
	tx database.Transactor,
	staff employee.EmployeeRepository,
	users user.UserRepository,
	settingsRepo settings.SettingsRepository,
	files file.FileService,
	provider identity.Provider,
	hub sse.Publisher,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		tx:       tx,
		staff:    staff,
		users:    users,
		settings: settingsRepo,
		files:    files,
		provider: provider,
		hub:      hub,
	}
}

// publish pushes the current active staff list to live subscribers.
func (s *EmployeeServiceImpl) publish(ctx context.Context) {
	list, err := s.staff.List(ctx, employee.ListFilter{})
	if err != nil {
		slog.Error("failed to load staff snapshot", "error", err)
		return
	}
	s.hub.Publish(sse.TopicStaff, sse.Event{Name: "staff", Data: list})
}

// checkReferences ensures the shift rule and attendance location exist.
func (s *EmployeeServiceImpl) checkReferences(ctx context.Context, req employee.ProfileRequest) error {
	if req.ShiftRuleID == nil && req.AttendanceLocationID == nil {
		return nil
	}
	doc, err := settingsService.Load(ctx, s.settings)
	if err != nil {
		return err
	}
	if req.ShiftRuleID != nil {
		if _, ok := doc.FindRule(*req.ShiftRuleID); !ok {
			return employee.ErrUnknownShiftRule
		}
	}
	if req.AttendanceLocationID != nil {
		if _, ok := doc.FindLocation(*req.AttendanceLocationID); !ok {
			return employee.ErrUnknownAttendanceLocation
		}
	}
	return nil
}

func applyProfile(e *employee.Employee, req employee.ProfileRequest) {
	e.Name = req.Name
	e.Email = req.Email
	e.Role = req.Role
	e.AccessRole = req.AccessRole
	e.ShiftRuleID = req.ShiftRuleID
	e.AttendanceLocationID = req.AttendanceLocationID
	e.Salary = req.Salary
	e.PaidHolidays = req.PaidHolidays
	e.PaidWeeklyOffs = req.PaidWeeklyOffs
	e.UnpaidHolidays = req.UnpaidHolidays
	if e.UnpaidHolidays == nil {
		e.UnpaidHolidays = []string{}
	}
	e.Phone = req.Phone
	e.Address = req.Address
	e.BankDetails = req.BankDetails
}

// Create implements employee.EmployeeService. It provisions a login account
// and the staff profile together; the external account is deleted again when
// the local writes fail.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}
	if err := s.checkReferences(ctx, req.ProfileRequest); err != nil {
		return employee.Employee{}, err
	}

	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return employee.Employee{}, employee.ErrEmailExists
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return employee.Employee{}, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := authService.HashPassword(req.Password)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to hash password: %w", err)
	}

	uid := uuid.NewString()
	if s.provider != nil {
		uid, err = s.provider.CreateUser(ctx, req.Email, req.Password, req.Name)
		if err != nil {
			if errors.Is(err, identity.ErrEmailExists) {
				return employee.Employee{}, employee.ErrEmailExists
			}
			return employee.Employee{}, err
		}
	}

	var created employee.Employee
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		_, err := s.users.Create(ctx, user.User{
			UID:          uid,
			Email:        req.Email,
			Name:         req.Name,
			Role:         req.AccessRole,
			PasswordHash: &hash,
		})
		if err != nil {
			if errors.Is(err, user.ErrUserEmailExists) {
				return employee.ErrEmailExists
			}
			return fmt.Errorf("failed to create user: %w", err)
		}

		e := employee.Employee{UID: &uid}
		applyProfile(&e, req.ProfileRequest)
		created, err = s.staff.Create(ctx, e)
		if err != nil {
			return fmt.Errorf("failed to create employee: %w", err)
		}
		return nil
	})
	if err != nil {
		if s.provider != nil {
			if delErr := s.provider.DeleteUser(ctx, uid); delErr != nil {
				slog.Error("failed to roll back identity account", "uid", uid, "error", delErr)
			}
		}
		return employee.Employee{}, err
	}

	slog.Info("employee created", "employee_id", created.ID, "uid", uid)
	s.publish(ctx)
	return created, nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.Employee, error) {
	return s.staff.GetByID(ctx, id)
}

// GetMe implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetMe(ctx context.Context) (employee.Employee, error) {
	return Current(ctx, s.staff)
}

// Current resolves the active staff record of the authenticated caller.
func Current(ctx context.Context, staff employee.EmployeeRepository) (employee.Employee, error) {
	claims, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return employee.Employee{}, err
	}

	var e employee.Employee
	if claims.EmployeeID != nil {
		e, err = staff.GetByID(ctx, *claims.EmployeeID)
	} else {
		e, err = staff.GetByKey(ctx, claims.UID)
	}
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, user.ErrEmployeeProfileMissing
		}
		return employee.Employee{}, err
	}
	if !e.IsActive() {
		return employee.Employee{}, user.ErrEmployeeProfileMissing
	}
	return e, nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, req employee.ListEmployeeRequest) ([]employee.Employee, error) {
	list, err := s.staff.List(ctx, employee.ListFilter{
		IncludeRemoved: req.IncludeRemoved,
		Search:         req.Search,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return list, nil
}

// Update implements employee.EmployeeService. The linked login account is
// kept in step with the profile's email, name and access role.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}
	if err := s.checkReferences(ctx, req.ProfileRequest); err != nil {
		return employee.Employee{}, err
	}

	var updated employee.Employee
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.staff.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}
		applyProfile(&existing, req.ProfileRequest)

		updated, err = s.staff.Update(ctx, existing)
		if err != nil {
			return err
		}

		if existing.UID == nil {
			return nil
		}
		err = s.users.UpdateProfile(ctx, *existing.UID, existing.Email, existing.Name, existing.AccessRole)
		switch {
		case errors.Is(err, user.ErrUserNotFound):
			slog.Warn("employee has no login account", "employee_id", existing.ID, "uid", *existing.UID)
		case errors.Is(err, user.ErrUserEmailExists):
			return employee.ErrEmailExists
		case err != nil:
			return fmt.Errorf("failed to update user: %w", err)
		}
		return nil
	})
	if err != nil {
		return employee.Employee{}, err
	}

	s.publish(ctx)
	return updated, nil
}

// Remove implements employee.EmployeeService. Staff are soft deleted so
// their attendance history stays attributable.
func (s *EmployeeServiceImpl) Remove(ctx context.Context, id string) error {
	if err := s.staff.SoftDelete(ctx, id); err != nil {
		return err
	}
	slog.Info("employee removed", "employee_id", id)
	s.publish(ctx)
	return nil
}

// UploadProfileImage implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UploadProfileImage(ctx context.Context, id string, r io.Reader, filename string) (employee.Employee, error) {
	existing, err := s.staff.GetByID(ctx, id)
	if err != nil {
		return employee.Employee{}, err
	}

	url, err := s.files.UploadProfileImage(ctx, existing.ID, r, filename)
	if err != nil {
		if errors.Is(err, file.ErrUnsupportedType) || errors.Is(err, file.ErrInvalidImage) {
			return employee.Employee{}, employee.ErrInvalidImage
		}
		return employee.Employee{}, err
	}

	if err := s.staff.UpdateProfileImage(ctx, existing.ID, &url); err != nil {
		return employee.Employee{}, fmt.Errorf("failed to save profile image: %w", err)
	}

	if existing.ProfileImage != nil && *existing.ProfileImage != "" {
		if err := s.files.DeleteByURL(ctx, *existing.ProfileImage); err != nil {
			slog.Warn("failed to delete previous profile image", "employee_id", existing.ID, "error", err)
		}
	}

	existing.ProfileImage = &url
	s.publish(ctx)
	return existing, nil
}
