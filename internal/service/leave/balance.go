// Package leave computes per-employee leave balances from the request
// ledger. Balances are always recomputed from scratch: incremental counters
// drift when requests are edited, cancelled or approved retroactively.
package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/attendly-hq/attendance-backend-go/internal/domain/employee"
	"github.com/attendly-hq/attendance-backend-go/internal/domain/leave"
	"github.com/attendly-hq/attendance-backend-go/internal/pkg/calendar"
)

type BalanceCalculator struct {
	leaveRepo    leave.LeaveRequestRepository
	employeeRepo employee.EmployeeRepository
	quotas       map[leave.Type]int
	now          func() time.Time
}

func NewBalanceCalculator(leaveRepo leave.LeaveRequestRepository, employeeRepo employee.EmployeeRepository) *BalanceCalculator {
	return &BalanceCalculator{
		leaveRepo:    leaveRepo,
		employeeRepo: employeeRepo,
		quotas:       leave.DefaultQuota,
		now:          time.Now,
	}
}

// RecomputeBalance derives the employee's balance for every balance type
// from the requests whose start date falls in the current calendar year,
// writes the result to the employee's cached balance fields, and returns
// it. Requests with invalid date spans contribute zero days; a malformed
// historical record never fails the whole query.
func (c *BalanceCalculator) RecomputeBalance(ctx context.Context, employeeID string) ([]leave.TypeBalance, error) {
	year := c.now().Year()
	types := leave.BalanceTypes()

	approved, err := c.leaveRepo.FindByEmployeeAndYear(ctx, employeeID, types, leave.StatusApproved, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query approved leave requests: %w", err)
	}
	pending, err := c.leaveRepo.FindByEmployeeAndYear(ctx, employeeID, types, leave.StatusPending, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending leave requests: %w", err)
	}

	used := sumDaysByType(approved)
	pend := sumDaysByType(pending)

	balances := make([]leave.TypeBalance, 0, len(types))
	for _, t := range types {
		total := c.quotas[t]
		balances = append(balances, leave.TypeBalance{
			Type:      t,
			Total:     total,
			Used:      used[t],
			Pending:   pend[t],
			Remaining: total - used[t],
		})
	}

	if err := c.employeeRepo.UpdateLeaveBalances(ctx, employeeID, balances); err != nil {
		return nil, fmt.Errorf("failed to cache leave balances: %w", err)
	}

	slog.Debug("Leave balance recomputed", "employee_id", employeeID, "year", year)
	return balances, nil
}

func sumDaysByType(requests []leave.LeaveRequest) map[leave.Type]int {
	days := make(map[leave.Type]int)
	for _, req := range requests {
		span := calendar.InclusiveDays(req.StartDate, req.EndDate)
		if span <= 0 {
			continue
		}
		days[req.Type] += span
	}
	return days
}
