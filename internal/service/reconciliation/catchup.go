package reconciliation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/attendly-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly-hq/attendance-backend-go/internal/domain/leave"
	"github.com/shopspring/decimal"
)

// DefaultCatchUpWindowDays is the trailing window scanned at startup.
const DefaultCatchUpWindowDays = 7

// CatchUpSummary reports what a catch-up scan inserted across the window.
type CatchUpSummary struct {
	DaysScanned  int `json:"days_scanned"`
	OnLeaveCount int `json:"on_leave_count"`
	AbsentCount  int `json:"absent_count"`
}

// ReconcileMissingDays is the startup safety net. It walks the trailing
// window of business days, oldest first, and fills in records for roster
// employees who have none: on_leave when approved leave covers the day,
// absent otherwise. It never mutates existing rows and never re-runs
// auto-checkout, since a day with zero record has nothing to check out.
// This makes it a strict subset of CloseOutDay and idempotent with it.
func (s *Service) ReconcileMissingDays(ctx context.Context, windowDays int) (CatchUpSummary, error) {
	if windowDays <= 0 {
		windowDays = DefaultCatchUpWindowDays
	}

	var summary CatchUpSummary
	today := s.cal.NormalizeToDay(time.Now())
	for offset := windowDays; offset >= 1; offset-- {
		day := today.AddDate(0, 0, -offset)
		if !s.cal.IsBusinessDay(day) {
			continue
		}
		summary.DaysScanned++

		onLeave, absent, err := s.reconcileDay(ctx, day)
		if err != nil {
			return summary, fmt.Errorf("catch-up failed for %s: %w", day.Format("2006-01-02"), err)
		}
		summary.OnLeaveCount += onLeave
		summary.AbsentCount += absent
	}

	slog.Info("Catch-up scan completed",
		"days_scanned", summary.DaysScanned,
		"on_leave", summary.OnLeaveCount,
		"absent", summary.AbsentCount)
	return summary, nil
}

func (s *Service) reconcileDay(ctx context.Context, day time.Time) (int, int, error) {
	roster, err := s.employeeRepo.ListActiveIDs(ctx, s.cfg.RosterRole)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to list active employees: %w", err)
	}

	existing, err := s.attendanceRepo.ListByDate(ctx, day)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to list attendance records: %w", err)
	}
	hasRecord := make(map[string]bool, len(existing))
	for _, att := range existing {
		hasRecord[att.EmployeeID] = true
	}

	var missing []string
	for _, id := range roster {
		if !hasRecord[id] {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return 0, 0, nil
	}

	requests, err := s.leaveRepo.FindOverlappingDate(ctx, leave.BalanceTypes(), leave.StatusApproved, day)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to query approved leave: %w", err)
	}
	leaveType := make(map[string]leave.Type, len(requests))
	for _, req := range requests {
		if _, ok := leaveType[req.EmployeeID]; !ok {
			leaveType[req.EmployeeID] = req.Type
		}
	}

	var leaveRows, absentRows []attendance.Attendance
	for _, id := range missing {
		if t, ok := leaveType[id]; ok {
			leaveRows = append(leaveRows, attendance.Attendance{
				EmployeeID: id,
				Date:       day,
				Status:     attendance.StatusOnLeave,
				WorkHours:  decimal.Zero,
				Notes:      fmt.Sprintf("On approved %s leave (catch-up)", t),
			})
			continue
		}
		absentRows = append(absentRows, attendance.Attendance{
			EmployeeID: id,
			Date:       day,
			Status:     attendance.StatusAbsent,
			WorkHours:  decimal.Zero,
			Notes:      "Marked absent - no attendance record (catch-up)",
		})
	}

	leaveResult, err := s.attendanceRepo.BulkInsert(ctx, leaveRows)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to insert catch-up leave records: %w", err)
	}
	absentResult, err := s.attendanceRepo.BulkInsert(ctx, absentRows)
	if err != nil {
		return leaveResult.Inserted, 0, fmt.Errorf("failed to insert catch-up absence records: %w", err)
	}

	return leaveResult.Inserted, absentResult.Inserted, nil
}
