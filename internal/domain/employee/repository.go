package employee

import (
	"context"

	"github.com/attendly-hq/attendance-backend-go/internal/domain/leave"
)

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	Create(ctx context.Context, emp Employee) (Employee, error)

	// ListActiveIDs returns the IDs of active employees with the given role.
	// This is the roster the reconciliation engine marks absences against.
	ListActiveIDs(ctx context.Context, role Role) ([]string, error)

	// UpdateLeaveBalances overwrites the cached per-type balances. Only the
	// balance calculator calls this.
	UpdateLeaveBalances(ctx context.Context, employeeID string, balances []leave.TypeBalance) error
}
