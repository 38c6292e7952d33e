package response

import (
	"errors"
	"net/http"

	"github.com/shiftwise/timeclock-backend-go/internal/domain/attendance"
	"github.com/shiftwise/timeclock-backend-go/internal/domain/auth"
	"github.com/shiftwise/timeclock-backend-go/internal/domain/payroll"
	"github.com/shiftwise/timeclock-backend-go/internal/domain/user"
	"github.com/shiftwise/timeclock-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")

	// Attendance domain errors. Illegal transitions are client mistakes,
	// not server faults.
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "Already clocked in today")
	case errors.Is(err, attendance.ErrNotClockedIn):
		BadRequest(w, "Not clocked in", nil)
	case errors.Is(err, attendance.ErrAlreadyOnBreak):
		Conflict(w, "Already on break")
	case errors.Is(err, attendance.ErrNotOnBreak):
		BadRequest(w, "Not on break", nil)
	case errors.Is(err, attendance.ErrAlreadyClockedOut):
		Conflict(w, "Already clocked out today")
	case errors.Is(err, attendance.ErrUnknownAction):
		BadRequest(w, "Unknown action", nil)
	case errors.Is(err, attendance.ErrEntryNotFound):
		NotFound(w, "Time entry not found")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrPayrollRecordAlreadyExists):
		Conflict(w, "Payroll record already exists for this period")
	case errors.Is(err, payroll.ErrPayrollRecordNotPending):
		Conflict(w, "Payroll record is not pending")
	case errors.Is(err, payroll.ErrNoHourlyRate):
		BadRequest(w, "Employee has no hourly rate configured", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
