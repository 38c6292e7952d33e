package user

import (
	"github.com/shiftwise/timeclock-backend-go/internal/pkg/validator"
)

// CreateUserRequest provisions one account. Only managers reach this.
type CreateUserRequest struct {
	Email              string   `json:"email"`
	Password           string   `json:"password"`
	FullName           string   `json:"full_name"`
	Role               string   `json:"role"`
	HourlyRate         *float64 `json:"hourly_rate,omitempty"`
	OvertimeMultiplier float64  `json:"overtime_multiplier,omitempty"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email"})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "must be at least 8 characters"})
	}
	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "is required"})
	}
	if !validator.IsInSlice(r.Role, []string{string(RoleEmployee), string(RoleManager)}) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "must be employee or manager"})
	}
	if r.HourlyRate != nil && *r.HourlyRate < 0 {
		errs = append(errs, validator.ValidationError{Field: "hourly_rate", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UserResponse struct {
	ID                 string  `json:"id"`
	Email              string  `json:"email"`
	FullName           string  `json:"full_name"`
	Role               string  `json:"role"`
	HourlyRate         *string `json:"hourly_rate,omitempty"`
	OvertimeMultiplier float64 `json:"overtime_multiplier"`
}
