package memory

import (
	"context"
	"sync"
	"time"

	"github.com/attendly-hq/attendance-backend-go/internal/domain/leave"
	"github.com/google/uuid"
)

type LeaveRequestRepository struct {
	mu       sync.RWMutex
	requests []leave.LeaveRequest
}

func NewLeaveRequestRepository() *LeaveRequestRepository {
	return &LeaveRequestRepository{}
}

// Create implements leave.LeaveRequestRepository.
func (r *LeaveRequestRepository) Create(_ context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	req.ID = uuid.NewString()
	req.CreatedAt = now
	req.UpdatedAt = now
	r.requests = append(r.requests, req)
	return req, nil
}

// FindOverlappingDate implements leave.LeaveRequestRepository.
func (r *LeaveRequestRepository) FindOverlappingDate(_ context.Context, types []leave.Type, status leave.Status, date time.Time) ([]leave.LeaveRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := typeSet(types)
	var out []leave.LeaveRequest
	for _, req := range r.requests {
		if req.Status != status || !wanted[req.Type] {
			continue
		}
		if req.Covers(date) {
			out = append(out, req)
		}
	}
	return out, nil
}

// FindByEmployeeAndYear implements leave.LeaveRequestRepository.
func (r *LeaveRequestRepository) FindByEmployeeAndYear(_ context.Context, employeeID string, types []leave.Type, status leave.Status, year int) ([]leave.LeaveRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := typeSet(types)
	var out []leave.LeaveRequest
	for _, req := range r.requests {
		if req.EmployeeID != employeeID || req.Status != status || !wanted[req.Type] {
			continue
		}
		if req.StartDate.Year() == year {
			out = append(out, req)
		}
	}
	return out, nil
}

func typeSet(types []leave.Type) map[leave.Type]bool {
	set := make(map[leave.Type]bool, len(types))
	for _, t := range types {
		set[t] = true
	}
	return set
}
