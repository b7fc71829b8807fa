package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository is the read-only view the engine gets over the
// time-off ledger. Create exists only so the external request surface and
// tests can seed data; the engine never writes here.
type LeaveRequestRepository interface {
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)

	// FindOverlappingDate returns requests of the given types and status
	// whose [StartDate, EndDate] interval contains date.
	FindOverlappingDate(ctx context.Context, types []Type, status Status, date time.Time) ([]LeaveRequest, error)

	// FindByEmployeeAndYear returns the employee's requests of the given
	// types and status whose StartDate falls within the calendar year.
	FindByEmployeeAndYear(ctx context.Context, employeeID string, types []Type, status Status, year int) ([]LeaveRequest, error)
}
