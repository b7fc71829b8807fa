// Package memory provides in-memory repository implementations guarded by
// mutexes. They back the service tests and local development without a
// database, and enforce the same (employee, date) uniqueness the Postgres
// schema does.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/attendly-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/google/uuid"
)

type attendanceKey struct {
	EmployeeID string
	Date       time.Time
}

type AttendanceRepository struct {
	mu      sync.RWMutex
	records map[attendanceKey]attendance.Attendance
}

func NewAttendanceRepository() *AttendanceRepository {
	return &AttendanceRepository{
		records: make(map[attendanceKey]attendance.Attendance),
	}
}

func keyFor(employeeID string, date time.Time) attendanceKey {
	// UTC-normalize the map key so equal instants compare equal regardless
	// of the wall-clock location they arrived in.
	return attendanceKey{EmployeeID: employeeID, Date: date.UTC()}
}

// Create implements attendance.AttendanceRepository.
func (r *AttendanceRepository) Create(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := keyFor(att.EmployeeID, att.Date)
	if _, exists := r.records[k]; exists {
		return attendance.Attendance{}, attendance.ErrDuplicateRecord
	}

	now := time.Now()
	att.ID = uuid.NewString()
	att.CreatedAt = now
	att.UpdatedAt = now
	r.records[k] = att
	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *AttendanceRepository) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	att, ok := r.records[keyFor(employeeID, date)]
	if !ok {
		return nil, nil
	}
	return &att, nil
}

// ListByDate implements attendance.AttendanceRepository.
func (r *AttendanceRepository) ListByDate(_ context.Context, date time.Time) ([]attendance.Attendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	day := date.UTC()
	var records []attendance.Attendance
	for k, att := range r.records {
		if k.Date.Equal(day) {
			records = append(records, att)
		}
	}
	return records, nil
}

// ListUncheckedOut implements attendance.AttendanceRepository.
func (r *AttendanceRepository) ListUncheckedOut(_ context.Context, date time.Time) ([]attendance.Attendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	day := date.UTC()
	var records []attendance.Attendance
	for k, att := range r.records {
		if k.Date.Equal(day) && att.CheckIn != nil && att.CheckOut == nil {
			records = append(records, att)
		}
	}
	return records, nil
}

// Update implements attendance.AttendanceRepository.
func (r *AttendanceRepository) Update(_ context.Context, att attendance.Attendance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := keyFor(att.EmployeeID, att.Date)
	existing, ok := r.records[k]
	if !ok || existing.ID != att.ID {
		return attendance.ErrAttendanceNotFound
	}

	att.CreatedAt = existing.CreatedAt
	att.UpdatedAt = time.Now()
	r.records[k] = att
	return nil
}

// BulkInsert implements attendance.AttendanceRepository. Mirrors the
// unordered Postgres semantics: duplicates are counted and skipped, and
// never abort the rest of the batch.
func (r *AttendanceRepository) BulkInsert(_ context.Context, records []attendance.Attendance) (attendance.BulkInsertResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result attendance.BulkInsertResult
	now := time.Now()
	for _, att := range records {
		k := keyFor(att.EmployeeID, att.Date)
		if _, exists := r.records[k]; exists {
			result.SkippedDuplicates++
			continue
		}
		att.ID = uuid.NewString()
		att.CreatedAt = now
		att.UpdatedAt = now
		r.records[k] = att
		result.Inserted++
	}
	return result, nil
}
