package employee

import (
	"time"

	"github.com/attendly-hq/attendance-backend-go/internal/domain/leave"
)

type Role string

const (
	RoleEmployee  Role = "EMPLOYEE"
	RoleManager   Role = "MANAGER"
	RoleHRManager Role = "HR_MANAGER"
	RoleAdmin     Role = "ADMIN"
)

type Employee struct {
	ID       string
	FullName string
	Email    string
	Role     Role
	IsActive bool
	HireDate time.Time

	// LeaveBalances is a derived cache owned by the balance calculator.
	// The leave request ledger stays the source of truth.
	LeaveBalances []leave.TypeBalance

	CreatedAt time.Time
	UpdatedAt time.Time
}
