package http

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/attendly-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly-hq/attendance-backend-go/internal/handler/http/response"
	"github.com/attendly-hq/attendance-backend-go/internal/pkg/calendar"
	"github.com/attendly-hq/attendance-backend-go/internal/service/reconciliation"
)

type AttendanceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	DailySummary(w http.ResponseWriter, r *http.Request)
	CloseOut(w http.ResponseWriter, r *http.Request)
	CatchUp(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceRepo attendance.AttendanceRepository
	engine         *reconciliation.Service
	cal            calendar.Policy
}

func NewAttendanceHandler(attendanceRepo attendance.AttendanceRepository, engine *reconciliation.Service, cal calendar.Policy) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceRepo: attendanceRepo,
		engine:         engine,
		cal:            cal,
	}
}

func (h *attendanceHandlerImpl) parseDate(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return h.cal.NormalizeToDay(time.Now()), nil
	}
	parsed, err := time.ParseInLocation("2006-01-02", raw, h.cal.Location())
	if err != nil {
		return time.Time{}, err
	}
	return h.cal.NormalizeToDay(parsed), nil
}

// List implements AttendanceHandler. GET /attendances?date=YYYY-MM-DD
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	date, err := h.parseDate(r)
	if err != nil {
		response.BadRequest(w, "Invalid date, expected YYYY-MM-DD", nil)
		return
	}

	records, err := h.attendanceRepo.ListByDate(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, attendance.ToResponse(rec))
	}
	response.Success(w, out)
}

// DailySummary implements AttendanceHandler. The absent count is derived
// from per-employee records; the old total-minus-present arithmetic is a
// display approximation and is not used here.
func (h *attendanceHandlerImpl) DailySummary(w http.ResponseWriter, r *http.Request) {
	date, err := h.parseDate(r)
	if err != nil {
		response.BadRequest(w, "Invalid date, expected YYYY-MM-DD", nil)
		return
	}

	records, err := h.attendanceRepo.ListByDate(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	summary := attendance.DailySummaryResponse{
		Date:         date.Format("2006-01-02"),
		TotalRecords: len(records),
	}
	for _, rec := range records {
		switch rec.Status {
		case attendance.StatusPresent, attendance.StatusOvertime:
			summary.Present++
		case attendance.StatusLate:
			summary.Late++
		case attendance.StatusOnLeave:
			summary.OnLeave++
		case attendance.StatusAbsent:
			summary.Absent++
		}
	}
	response.Success(w, summary)
}

type closeOutRequest struct {
	Date string `json:"date"`
}

// CloseOut implements AttendanceHandler. POST /attendances/close-out lets
// operators re-run a day's reconciliation; the engine is idempotent so a
// repeated trigger is harmless.
func (h *attendanceHandlerImpl) CloseOut(w http.ResponseWriter, r *http.Request) {
	var req closeOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	target := time.Now()
	if req.Date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", req.Date, h.cal.Location())
		if err != nil {
			response.BadRequest(w, "Invalid date, expected YYYY-MM-DD", nil)
			return
		}
		target = parsed
	}

	summary, err := h.engine.CloseOutDay(r.Context(), target)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Close-out completed", summary)
}

type catchUpRequest struct {
	WindowDays int `json:"window_days"`
}

// CatchUp implements AttendanceHandler. POST /attendances/catch-up re-runs
// the missing-day scan on demand.
func (h *attendanceHandlerImpl) CatchUp(w http.ResponseWriter, r *http.Request) {
	var req catchUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	summary, err := h.engine.ReconcileMissingDays(r.Context(), req.WindowDays)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Catch-up scan completed", summary)
}
