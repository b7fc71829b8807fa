// Package reconciliation implements the daily attendance close-out: the
// batch that turns raw check-in/out events and approved leave into exactly
// one authoritative record per active employee per business day.
package reconciliation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/attendly-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly-hq/attendance-backend-go/internal/domain/employee"
	"github.com/attendly-hq/attendance-backend-go/internal/domain/leave"
	"github.com/attendly-hq/attendance-backend-go/internal/pkg/calendar"
	"github.com/shopspring/decimal"
)

// Config carries the engine's policy knobs.
type Config struct {
	// DefaultCheckoutHour/Minute is the synthetic check-out applied to
	// records left open at close-out.
	DefaultCheckoutHour   int
	DefaultCheckoutMinute int

	// RosterRole filters which employees absence marking applies to.
	// Admins and managers are not marked absent.
	RosterRole employee.Role
}

// Summary reports what one close-out run did.
type Summary struct {
	Date              time.Time `json:"date"`
	AutoCheckoutCount int       `json:"auto_checkout_count"`
	OnLeaveCount      int       `json:"on_leave_count"`
	AbsentCount       int       `json:"absent_count"`
	SkippedWeekend    bool      `json:"skipped_weekend"`
}

type Service struct {
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRequestRepository
	employeeRepo   employee.EmployeeRepository
	cal            calendar.Policy
	cfg            Config
}

func NewService(
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
	cal calendar.Policy,
	cfg Config,
) *Service {
	return &Service{
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		employeeRepo:   employeeRepo,
		cal:            cal,
		cfg:            cfg,
	}
}

// CloseOutDay finalizes attendance for target's civil day. Safe to re-run
// for any past date: mutations only touch open check-ins, and inserts lose
// gracefully to rows that already exist. Step order matters: auto-checkout
// must settle open sessions before the record/no-record split that drives
// leave materialization and absence marking.
//
// Each step commits independently. A failure aborts the run but leaves
// earlier steps' writes in place; the next run or the startup catch-up
// completes the day.
func (s *Service) CloseOutDay(ctx context.Context, target time.Time) (Summary, error) {
	day := s.cal.NormalizeToDay(target)
	summary := Summary{Date: day}

	if !s.cal.IsBusinessDay(day) {
		slog.Info("Close-out skipped, not a business day", "date", day.Format("2006-01-02"))
		summary.SkippedWeekend = true
		return summary, nil
	}

	autoClosed, err := s.autoCheckout(ctx, day)
	if err != nil {
		return summary, err
	}
	summary.AutoCheckoutCount = autoClosed

	onLeave, onLeaveEmployees, err := s.materializeLeave(ctx, day)
	if err != nil {
		return summary, err
	}
	summary.OnLeaveCount = onLeave

	absent, err := s.markAbsent(ctx, day, onLeaveEmployees)
	if err != nil {
		return summary, err
	}
	summary.AbsentCount = absent

	slog.Info("Close-out completed",
		"date", day.Format("2006-01-02"),
		"auto_checkout", summary.AutoCheckoutCount,
		"on_leave", summary.OnLeaveCount,
		"absent", summary.AbsentCount)
	return summary, nil
}

// autoCheckout closes every record on day that has a check-in but no
// check-out. Always a mutation of an existing row, never an insert.
func (s *Service) autoCheckout(ctx context.Context, day time.Time) (int, error) {
	open, err := s.attendanceRepo.ListUncheckedOut(ctx, day)
	if err != nil {
		return 0, fmt.Errorf("failed to list unchecked-out records: %w", err)
	}

	checkoutAt := s.cal.At(day, s.cfg.DefaultCheckoutHour, s.cfg.DefaultCheckoutMinute)
	closed := 0
	for _, att := range open {
		att.CheckOut = &checkoutAt
		att.RecalculateWorkHours()
		att.AppendNote(fmt.Sprintf("[Auto checkout at %02d:%02d - missing checkout]",
			s.cfg.DefaultCheckoutHour, s.cfg.DefaultCheckoutMinute))

		if err := s.attendanceRepo.Update(ctx, att); err != nil {
			slog.Error("Failed to auto-checkout record",
				"attendance_id", att.ID,
				"employee_id", att.EmployeeID,
				"error", err)
			continue
		}
		closed++
	}

	return closed, nil
}

// materializeLeave inserts on_leave rows for employees whose approved leave
// covers day and who have no record yet. Returns the inserted count and the
// set of employees identified as on leave (including those whose insert was
// skipped because a record beat it).
func (s *Service) materializeLeave(ctx context.Context, day time.Time) (int, map[string]bool, error) {
	requests, err := s.leaveRepo.FindOverlappingDate(ctx, leave.BalanceTypes(), leave.StatusApproved, day)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to query approved leave for %s: %w", day.Format("2006-01-02"), err)
	}

	onLeave := make(map[string]bool, len(requests))
	var rows []attendance.Attendance
	for _, req := range requests {
		if onLeave[req.EmployeeID] {
			continue
		}
		onLeave[req.EmployeeID] = true
		rows = append(rows, attendance.Attendance{
			EmployeeID: req.EmployeeID,
			Date:       day,
			Status:     attendance.StatusOnLeave,
			WorkHours:  decimal.Zero,
			Notes:      fmt.Sprintf("On approved %s leave", req.Type),
		})
	}

	result, err := s.attendanceRepo.BulkInsert(ctx, rows)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to materialize leave records: %w", err)
	}
	if result.SkippedDuplicates > 0 {
		slog.Debug("Leave materialization skipped existing records",
			"date", day.Format("2006-01-02"),
			"skipped", result.SkippedDuplicates)
	}

	return result.Inserted, onLeave, nil
}

// markAbsent inserts absent rows for every active roster employee with no
// record on day, derived per employee by set difference, never by count
// arithmetic.
func (s *Service) markAbsent(ctx context.Context, day time.Time, onLeave map[string]bool) (int, error) {
	roster, err := s.employeeRepo.ListActiveIDs(ctx, s.cfg.RosterRole)
	if err != nil {
		return 0, fmt.Errorf("failed to list active employees: %w", err)
	}

	// Re-read after leave materialization so rows from check-ins, step 2
	// and step 3 are all accounted for.
	existing, err := s.attendanceRepo.ListByDate(ctx, day)
	if err != nil {
		return 0, fmt.Errorf("failed to list attendance records: %w", err)
	}
	hasRecord := make(map[string]bool, len(existing))
	for _, att := range existing {
		hasRecord[att.EmployeeID] = true
	}

	var rows []attendance.Attendance
	for _, id := range roster {
		if hasRecord[id] || onLeave[id] {
			continue
		}
		rows = append(rows, attendance.Attendance{
			EmployeeID: id,
			Date:       day,
			Status:     attendance.StatusAbsent,
			WorkHours:  decimal.Zero,
			Notes:      "Marked absent - no attendance record",
		})
	}

	result, err := s.attendanceRepo.BulkInsert(ctx, rows)
	if err != nil {
		return 0, fmt.Errorf("failed to insert absence records: %w", err)
	}

	return result.Inserted, nil
}
