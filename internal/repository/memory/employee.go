package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/attendly-hq/attendance-backend-go/internal/domain/employee"
	"github.com/attendly-hq/attendance-backend-go/internal/domain/leave"
	"github.com/google/uuid"
)

type EmployeeRepository struct {
	mu        sync.RWMutex
	employees map[string]employee.Employee
}

func NewEmployeeRepository() *EmployeeRepository {
	return &EmployeeRepository{
		employees: make(map[string]employee.Employee),
	}
}

// GetByID implements employee.EmployeeRepository.
func (r *EmployeeRepository) GetByID(_ context.Context, id string) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	emp, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

// Create implements employee.EmployeeRepository.
func (r *EmployeeRepository) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.employees {
		if existing.Email == emp.Email {
			return employee.Employee{}, employee.ErrEmailExists
		}
	}

	now := time.Now()
	if emp.ID == "" {
		emp.ID = uuid.NewString()
	}
	emp.CreatedAt = now
	emp.UpdatedAt = now
	r.employees[emp.ID] = emp
	return emp, nil
}

// ListActiveIDs implements employee.EmployeeRepository. IDs are returned
// sorted so batch ordering is deterministic in tests.
func (r *EmployeeRepository) ListActiveIDs(_ context.Context, role employee.Role) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []string
	for id, emp := range r.employees {
		if emp.IsActive && emp.Role == role {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// UpdateLeaveBalances implements employee.EmployeeRepository.
func (r *EmployeeRepository) UpdateLeaveBalances(_ context.Context, employeeID string, balances []leave.TypeBalance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	emp, ok := r.employees[employeeID]
	if !ok {
		return employee.ErrEmployeeNotFound
	}

	emp.LeaveBalances = append([]leave.TypeBalance(nil), balances...)
	emp.UpdatedAt = time.Now()
	r.employees[employeeID] = emp
	return nil
}
