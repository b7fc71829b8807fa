package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type AttendanceResponse struct {
	ID         string          `json:"id"`
	EmployeeID string          `json:"employee_id"`
	Date       string          `json:"date"`
	CheckIn    *time.Time      `json:"check_in,omitempty"`
	CheckOut   *time.Time      `json:"check_out,omitempty"`
	Status     Status          `json:"status"`
	WorkHours  decimal.Decimal `json:"work_hours"`
	Notes      string          `json:"notes,omitempty"`
	LocationID *string         `json:"location_id,omitempty"`
}

func ToResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		Date:       a.Date.Format("2006-01-02"),
		CheckIn:    a.CheckIn,
		CheckOut:   a.CheckOut,
		Status:     a.Status,
		WorkHours:  a.WorkHours,
		Notes:      a.Notes,
		LocationID: a.LocationID,
	}
}

// DailySummaryResponse is a display aggregate. Absent is derived from
// per-employee records, never from the total-minus-present shortcut.
type DailySummaryResponse struct {
	Date         string `json:"date"`
	Present      int    `json:"present"`
	Late         int    `json:"late"`
	OnLeave      int    `json:"on_leave"`
	Absent       int    `json:"absent"`
	TotalRecords int    `json:"total_records"`
}
