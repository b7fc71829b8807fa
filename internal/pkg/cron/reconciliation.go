package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/attendly-hq/attendance-backend-go/internal/service/reconciliation"
)

// ReconciliationJobs wires the close-out engine to wall-clock triggers.
// The backstop run re-targets yesterday the next morning in case the
// primary run failed or the process was down; the race between the two
// over the same day is settled by the ledger's uniqueness constraint, not
// by locking.
type ReconciliationJobs struct {
	service      *reconciliation.Service
	loc          *time.Location
	closeOutHour int
	backstopHour int
	windowDays   int
}

func NewReconciliationJobs(service *reconciliation.Service, loc *time.Location, closeOutHour, backstopHour, windowDays int) *ReconciliationJobs {
	return &ReconciliationJobs{
		service:      service,
		loc:          loc,
		closeOutHour: closeOutHour,
		backstopHour: backstopHour,
		windowDays:   windowDays,
	}
}

func (j *ReconciliationJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddDailyJob("attendance_close_out", j.closeOutHour, j.loc, j.closeOutToday)
	scheduler.AddDailyJob("attendance_close_out_backstop", j.backstopHour, j.loc, j.closeOutYesterday)
}

// closeOutToday finalizes the current day at the close-out hour.
func (j *ReconciliationJobs) closeOutToday(ctx context.Context, now time.Time) error {
	slog.Info("Cron: Starting daily close-out", "date", now.Format("2006-01-02"))
	summary, err := j.service.CloseOutDay(ctx, now)
	if err != nil {
		return err
	}
	slog.Info("Cron: Daily close-out done",
		"auto_checkout", summary.AutoCheckoutCount,
		"on_leave", summary.OnLeaveCount,
		"absent", summary.AbsentCount)
	return nil
}

// closeOutYesterday is the backstop: re-runs yesterday's close-out the
// next morning. Idempotent with the primary run.
func (j *ReconciliationJobs) closeOutYesterday(ctx context.Context, now time.Time) error {
	yesterday := now.AddDate(0, 0, -1)
	slog.Info("Cron: Starting backstop close-out", "date", yesterday.Format("2006-01-02"))
	summary, err := j.service.CloseOutDay(ctx, yesterday)
	if err != nil {
		return err
	}
	slog.Info("Cron: Backstop close-out done",
		"auto_checkout", summary.AutoCheckoutCount,
		"on_leave", summary.OnLeaveCount,
		"absent", summary.AbsentCount)
	return nil
}

// RunStartupCatchUp scans the trailing window for days with missing
// records. Called synchronously from main before the scheduler starts so
// absence state is not stale while serving traffic.
func (j *ReconciliationJobs) RunStartupCatchUp(ctx context.Context) error {
	slog.Info("Running startup catch-up scan", "window_days", j.windowDays)
	_, err := j.service.ReconcileMissingDays(ctx, j.windowDays)
	return err
}
