package response

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/presenz/presenz-backend-go/internal/domain/approval"
	"github.com/presenz/presenz-backend-go/internal/domain/attendance"
	"github.com/presenz/presenz-backend-go/internal/domain/auth"
	"github.com/presenz/presenz-backend-go/internal/domain/backup"
	"github.com/presenz/presenz-backend-go/internal/domain/employee"
	"github.com/presenz/presenz-backend-go/internal/domain/leave"
	"github.com/presenz/presenz-backend-go/internal/domain/misspunch"
	"github.com/presenz/presenz-backend-go/internal/domain/payroll"
	"github.com/presenz/presenz-backend-go/internal/domain/report"
	"github.com/presenz/presenz-backend-go/internal/domain/settings"
	"github.com/presenz/presenz-backend-go/internal/domain/timesheet"
	"github.com/presenz/presenz-backend-go/internal/domain/user"
	"github.com/presenz/presenz-backend-go/internal/pkg/validator"
	"github.com/presenz/presenz-backend-go/internal/service/file"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var geofence *attendance.GeofenceError
	if errors.As(err, &geofence) {
		Forbidden(w, fmt.Sprintf("You are outside the allowed attendance location (%dm away, allowed %dm)", geofence.DistanceMeters, geofence.RadiusMeters))
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrUnknownIdentity):
		Unauthorized(w, "Account is not registered")
	case errors.Is(err, auth.ErrIdentityProviderDisabled):
		BadRequest(w, "External sign-in is not enabled", nil)
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// User domain errors
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrEmployeeProfileMissing):
		Forbidden(w, "No staff profile is linked to this account")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound), errors.Is(err, report.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrUIDExists):
		Conflict(w, "Identity already linked to another employee")
	case errors.Is(err, employee.ErrInvalidImage):
		BadRequest(w, "Invalid image: only jpg, jpeg, png allowed", nil)
	case errors.Is(err, employee.ErrUnknownShiftRule):
		BadRequest(w, "Shift rule does not exist", nil)
	case errors.Is(err, employee.ErrUnknownAttendanceLocation):
		BadRequest(w, "Attendance location does not exist", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrLocationNotSet):
		Forbidden(w, attendance.ErrLocationNotSet.Error())
	case errors.Is(err, attendance.ErrAlreadyPunchedIn):
		Conflict(w, "You have already punched in today")
	case errors.Is(err, attendance.ErrNotPunchedIn):
		Conflict(w, "You have not punched in yet")
	case errors.Is(err, attendance.ErrAlreadyPunchedOut):
		Conflict(w, "You have already punched out today")
	case errors.Is(err, attendance.ErrInvalidSelfie):
		ValidationError(w, map[string]string{"selfie": attendance.ErrInvalidSelfie.Error()})
	case errors.Is(err, attendance.ErrInvalidDate):
		BadRequest(w, "Date must be in YYYY-MM-DD format", nil)
	case errors.Is(err, file.ErrTooLarge):
		BadRequest(w, "File is too large", nil)
	case errors.Is(err, file.ErrUnsupportedType), errors.Is(err, file.ErrInvalidImage), errors.Is(err, file.ErrInvalidDataURL):
		BadRequest(w, "Unsupported or unreadable image", nil)

	// Request workflow errors
	case errors.Is(err, approval.ErrAlreadyProcessed):
		Conflict(w, "Request has already been processed")
	case errors.Is(err, approval.ErrInvalidStatus):
		BadRequest(w, approval.ErrInvalidStatus.Error(), nil)
	case errors.Is(err, misspunch.ErrRequestNotFound):
		NotFound(w, "Miss punch request not found")
	case errors.Is(err, misspunch.ErrFutureDate):
		BadRequest(w, "Cannot request a correction for a future date", nil)
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, timesheet.ErrTimesheetNotFound):
		NotFound(w, "Timesheet not found")
	case errors.Is(err, timesheet.ErrNotOwner):
		Forbidden(w, "You can only delete your own timesheets")

	// Settings, reports and backup
	case errors.Is(err, settings.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, settings.ErrRuleSetRequired):
		BadRequest(w, settings.ErrRuleSetRequired.Error(), nil)
	case errors.Is(err, settings.ErrInvalidHolidayDate):
		BadRequest(w, settings.ErrInvalidHolidayDate.Error(), nil)
	case errors.Is(err, report.ErrInvalidMonth), errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Month must be in YYYY-MM format", nil)
	case errors.Is(err, backup.ErrStaffRequired):
		BadRequest(w, backup.ErrStaffRequired.Error(), nil)
	case errors.Is(err, backup.ErrInvalidDumpDate):
		BadRequest(w, backup.ErrInvalidDumpDate.Error(), nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
