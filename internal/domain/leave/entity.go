package leave

import "time"

type Type string

const (
	TypeLeave        Type = "leave"
	TypeSick         Type = "sick"
	TypeUnpaid       Type = "unpaid"
	TypeCompensatory Type = "compensatory"
	TypeMaternity    Type = "maternity"
	TypeOvertime     Type = "overtime"
	TypeRemote       Type = "remote"
	TypeOther        Type = "other"
)

// BalanceTypes returns the leave types that consume balance and affect
// attendance status. Overtime, remote and other requests are ignored by the
// reconciliation engine and the balance calculator.
func BalanceTypes() []Type {
	return []Type{TypeLeave, TypeSick, TypeUnpaid, TypeCompensatory, TypeMaternity}
}

// IsBalanceType reports whether t participates in attendance and balance logic.
func IsBalanceType(t Type) bool {
	switch t {
	case TypeLeave, TypeSick, TypeUnpaid, TypeCompensatory, TypeMaternity:
		return true
	}
	return false
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// LeaveRequest is the external time-off ledger. The engine and the balance
// calculator treat it as a read-only source of truth.
type LeaveRequest struct {
	ID         string
	EmployeeID string
	Type       Type
	Status     Status
	// StartDate and EndDate bound the request inclusively, day granularity.
	StartDate time.Time
	EndDate   time.Time
	Reason    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Covers reports whether the request interval contains the given day.
func (r LeaveRequest) Covers(day time.Time) bool {
	return !day.Before(r.StartDate) && !day.After(r.EndDate)
}

// DefaultQuota is the static per-type annual entitlement in days.
var DefaultQuota = map[Type]int{
	TypeLeave:        12,
	TypeSick:         30,
	TypeUnpaid:       30,
	TypeCompensatory: 5,
	TypeMaternity:    180,
}

// TypeBalance is the derived per-type balance cached on the employee.
// Recomputed in full on every balance query so edited, cancelled or
// backdated requests are always reflected.
type TypeBalance struct {
	Type      Type `json:"type"`
	Total     int  `json:"total"`
	Used      int  `json:"used"`
	Pending   int  `json:"pending"`
	Remaining int  `json:"remaining"`
}
