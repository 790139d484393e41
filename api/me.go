/*
me.go - Employee portal endpoints

PURPOSE:
  The self-service surface for the employee role: personal dashboard,
  selfie check-in/check-out, and own payment history. The employee id
  comes from the session identity, never from the request, so one
  employee can never act on another's rows.

ENDPOINTS (employee role):
  GET  /api/me/dashboard?month=  profile, month entries, pay summary,
                                 today's attendance state, pending balance
  POST /api/me/checkin           {photo?} open today's entry
  POST /api/me/checkout          {photo?} close today's entry
  GET  /api/me/payments          own disbursement history

SEE ALSO:
  - session.go: attaches the identity this file reads
  - payroll/attendance.go: the transition rules behind checkin/checkout
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/warp/payroll-engine/payroll"
)

// MeDashboard returns the logged-in employee's month view.
// GET /api/me/dashboard?month=YYYY-MM (defaults to current month)
func (h *Handler) MeDashboard(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())
	month, ok := monthParam(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	emp, err := h.Store.GetEmployee(ctx, id.EmployeeID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if emp == nil {
		// Deleted while logged in.
		writeDomainError(w, payroll.ErrEmployeeNotFound)
		return
	}

	entries, err := h.Store.ListWorkEntries(ctx, id.EmployeeID, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list work entries", err)
		return
	}
	totals, err := h.Store.MonthlyTotalsFor(ctx, id.EmployeeID, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to aggregate payroll", err)
		return
	}

	today := payroll.Today()
	state, _, err := h.Tracker.Status(ctx, id.EmployeeID, today)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get attendance state", err)
		return
	}

	earnings, err := h.Store.GetEarnings(ctx, id.EmployeeID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to aggregate earnings", err)
		return
	}

	dto := MeDashboardDTO{
		Employee: toEmployeeDTO(*emp),
		Month:    month,
		Entries:  toWorkEntryDTOs(entries),
		Today:    today,
		State:    string(state),
	}
	if totals != nil {
		summary := toSummaryDTO(payroll.Compute(*totals))
		dto.Summary = &summary
	}
	if earnings != nil {
		outlook := payroll.Outlook(*earnings)
		dto.Paid = money(outlook.TotalPaid)
		dto.Pending = money(outlook.Pending)
	}

	writeJSON(w, http.StatusOK, dto)
}

// CheckIn opens today's entry for the logged-in employee.
// POST /api/me/checkin
func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	h.attendanceTransition(w, r, h.Tracker.CheckIn)
}

// CheckOut closes today's entry for the logged-in employee.
// POST /api/me/checkout
func (h *Handler) CheckOut(w http.ResponseWriter, r *http.Request) {
	h.attendanceTransition(w, r, h.Tracker.CheckOut)
}

func (h *Handler) attendanceTransition(
	w http.ResponseWriter,
	r *http.Request,
	transition func(ctx context.Context, employeeID, photo string) (*payroll.WorkEntry, error),
) {
	id, _ := identityFrom(r.Context())

	// The body is optional; an empty body means no photo.
	var req CheckRequest
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "Invalid request body", err)
			return
		}
	}

	entry, err := transition(r.Context(), id.EmployeeID, req.Photo)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toWorkEntryDTO(*entry))
}

// MePayments returns the logged-in employee's disbursement history.
// GET /api/me/payments
func (h *Handler) MePayments(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())

	payments, err := h.Store.ListPayments(r.Context(), id.EmployeeID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list payments", err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentDTOs(payments))
}
