package http

import (
	"net/http"

	"github.com/attendly-hq/attendance-backend-go/internal/handler/http/response"
	leaveService "github.com/attendly-hq/attendance-backend-go/internal/service/leave"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

type LeaveHandler interface {
	GetMyBalance(w http.ResponseWriter, r *http.Request)
	GetEmployeeBalance(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	balanceCalculator *leaveService.BalanceCalculator
}

func NewLeaveHandler(balanceCalculator *leaveService.BalanceCalculator) LeaveHandler {
	return &leaveHandlerImpl{
		balanceCalculator: balanceCalculator,
	}
}

// GetMyBalance implements LeaveHandler. The balance is recomputed from the
// request ledger on every call, never read from the cached copy.
func (h *leaveHandlerImpl) GetMyBalance(w http.ResponseWriter, r *http.Request) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	employeeID, ok := claims["sub"].(string)
	if !ok || employeeID == "" {
		response.Unauthorized(w, "Invalid token subject")
		return
	}

	balances, err := h.balanceCalculator.RecomputeBalance(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, balances)
}

// GetEmployeeBalance implements LeaveHandler - admin lookup by employee id.
func (h *leaveHandlerImpl) GetEmployeeBalance(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "Employee id is required", nil)
		return
	}

	balances, err := h.balanceCalculator.RecomputeBalance(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, balances)
}
