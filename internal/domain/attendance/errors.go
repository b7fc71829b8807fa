package attendance

import "errors"

// Attendance domain errors
var (
	ErrAttendanceNotFound = errors.New("attendance record not found")

	// ErrDuplicateRecord means another writer already created the row for
	// that (employee, date). Expected during reconciliation; callers swallow
	// it and let the pre-existing record win.
	ErrDuplicateRecord = errors.New("attendance record already exists for this employee and date")
)
