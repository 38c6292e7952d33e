package user

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
)

// User is the identity collaborator's view of an account. The attendance
// and payroll cores only ever see the opaque ID; the rate fields feed pay
// computation.
type User struct {
	ID                 string
	Email              string
	PasswordHash       string
	FullName           string
	Role               Role
	HourlyRate         *decimal.Decimal
	OvertimeMultiplier float64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
