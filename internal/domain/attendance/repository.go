package attendance

import (
	"context"
	"time"
)

// BulkInsertResult reports what a bulk insert actually did. Rows that lost
// the race on the (employee_id, date) uniqueness constraint are counted as
// skipped, not failed, so callers and tests can assert on both outcomes.
type BulkInsertResult struct {
	Inserted          int
	SkippedDuplicates int
}

// AttendanceRepository defines data access for attendance records. The
// reconciliation engine only ever mutates rows via Update (auto-checkout)
// and inserts via BulkInsert; it never deletes.
type AttendanceRepository interface {
	// Create inserts a single record. Returns ErrDuplicateRecord when a row
	// for the same (employee, date) exists.
	Create(ctx context.Context, att Attendance) (Attendance, error)

	// GetByEmployeeAndDate returns nil when no record exists for that day.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// ListByDate returns every record whose day key equals date.
	ListByDate(ctx context.Context, date time.Time) ([]Attendance, error)

	// ListUncheckedOut returns records on date with a check-in but no
	// check-out, the auto-checkout candidates.
	ListUncheckedOut(ctx context.Context, date time.Time) ([]Attendance, error)

	// Update persists mutable fields of an existing record.
	Update(ctx context.Context, att Attendance) error

	// BulkInsert inserts records in one unordered batch, skipping rows that
	// collide on (employee_id, date). One duplicate never blocks siblings.
	BulkInsert(ctx context.Context, records []Attendance) (BulkInsertResult, error)
}
