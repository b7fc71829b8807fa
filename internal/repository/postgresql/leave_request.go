package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/attendly-hq/attendance-backend-go/internal/domain/leave"
	"github.com/attendly-hq/attendance-backend-go/internal/pkg/database"
)

type leaveRequestRepository struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepository{db: db}
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			employee_id, type, status, start_date, end_date, reason
		) VALUES (
			$1, $2, $3, $4, $5, $6
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.EmployeeID, req.Type, req.Status, req.StartDate, req.EndDate, req.Reason,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return req, nil
}

// FindOverlappingDate implements leave.LeaveRequestRepository.
// Overlap condition: start_date <= date AND end_date >= date.
func (r *leaveRequestRepository) FindOverlappingDate(ctx context.Context, types []leave.Type, status leave.Status, date time.Time) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, type, status, start_date, end_date, reason, created_at, updated_at
		FROM leave_requests
		WHERE type = ANY($1)
		  AND status = $2
		  AND start_date <= $3
		  AND end_date >= $3
	`

	rows, err := q.Query(ctx, query, typeStrings(types), status, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query overlapping leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		var req leave.LeaveRequest
		err := rows.Scan(
			&req.ID, &req.EmployeeID, &req.Type, &req.Status,
			&req.StartDate, &req.EndDate, &req.Reason,
			&req.CreatedAt, &req.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, rows.Err()
}

// FindByEmployeeAndYear implements leave.LeaveRequestRepository. Requests
// are attributed to the year their start_date falls in.
func (r *leaveRequestRepository) FindByEmployeeAndYear(ctx context.Context, employeeID string, types []leave.Type, status leave.Status, year int) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, type, status, start_date, end_date, reason, created_at, updated_at
		FROM leave_requests
		WHERE employee_id = $1
		  AND type = ANY($2)
		  AND status = $3
		  AND start_date >= $4
		  AND start_date < $5
	`

	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := yearStart.AddDate(1, 0, 0)

	rows, err := q.Query(ctx, query, employeeID, typeStrings(types), status, yearStart, yearEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave requests by year: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		var req leave.LeaveRequest
		err := rows.Scan(
			&req.ID, &req.EmployeeID, &req.Type, &req.Status,
			&req.StartDate, &req.EndDate, &req.Reason,
			&req.CreatedAt, &req.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, rows.Err()
}

func typeStrings(types []leave.Type) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}
