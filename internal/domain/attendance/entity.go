package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPresent  Status = "present"
	StatusLate     Status = "late"
	StatusAbsent   Status = "absent"
	StatusOnLeave  Status = "on_leave"
	StatusWeekend  Status = "weekend"
	StatusOvertime Status = "overtime"
)

type Attendance struct {
	ID         string
	EmployeeID string
	// Date is the civil-day key, always midnight in the engine timezone.
	// One row per (EmployeeID, Date).
	Date       time.Time
	CheckIn    *time.Time
	CheckOut   *time.Time
	Status     Status
	WorkHours  decimal.Decimal
	Notes      string
	LocationID *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HasCheckIn reports whether the record represents a real clock-in, as
// opposed to a row materialized by the reconciliation engine.
func (a Attendance) HasCheckIn() bool {
	return a.CheckIn != nil
}

// AppendNote adds a system annotation without discarding earlier ones.
func (a *Attendance) AppendNote(note string) {
	if a.Notes == "" {
		a.Notes = note
		return
	}
	a.Notes = a.Notes + "\n" + note
}

// RecalculateWorkHours derives WorkHours from the check-in/check-out pair,
// rounded to two decimals and clamped to zero when the delta is negative.
func (a *Attendance) RecalculateWorkHours() {
	if a.CheckIn == nil || a.CheckOut == nil {
		a.WorkHours = decimal.Zero
		return
	}
	hours := a.CheckOut.Sub(*a.CheckIn).Hours()
	if hours < 0 {
		hours = 0
	}
	a.WorkHours = decimal.NewFromFloat(hours).Round(2)
}
