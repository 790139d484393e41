/*
handlers.go - HTTP API handlers for the payroll back office

PURPOSE:
  Exposes the payroll engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to domain logic.

ENDPOINTS (admin role):
  GET    /api/admin/dashboard          Head counts + per-employee payroll rows
  GET    /api/admin/employees          List employees
  POST   /api/admin/employees          Create employee
  GET    /api/admin/employees/{id}     Get employee
  PUT    /api/admin/employees/{id}     Update employee
  DELETE /api/admin/employees/{id}     Cascading delete
  GET    /api/admin/entries            List work entries (employee/month filters)
  POST   /api/admin/entries            Manual work entry (may set holiday)
  PUT    /api/admin/entries/{id}       Edit entry, recomputes hour buckets
  DELETE /api/admin/entries/{id}
  GET    /api/admin/advances           List advances        POST creates
  DELETE /api/admin/advances/{id}
  GET    /api/admin/expenses           List food expenses   POST creates
  DELETE /api/admin/expenses/{id}
  GET    /api/admin/payments           Earned/paid/pending per employee
  GET    /api/admin/payments/{employee} Payment history + pending
  POST   /api/admin/payments           Record disbursement
  PUT    /api/admin/payments/{id}      Edit payment record
  DELETE /api/admin/payments/{id}
  GET    /api/admin/photos             Review clock photos

ERROR HANDLING:
  Domain errors map onto HTTP statuses in one place (writeDomainError):
  - 400: validation errors
  - 404: unknown employee / record
  - 409: attendance conflicts, duplicate ids
  - 500: everything else

SEE ALSO:
  - dto.go: request/response data structures
  - session.go: auth endpoints and role middleware
  - me.go: employee-portal endpoints
  - server.go: router setup
*/
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    payroll.Store
	Tracker  *payroll.Tracker
	Sessions *SessionManager
}

// NewHandler creates a handler backed by the given store.
func NewHandler(store payroll.Store) *Handler {
	return &Handler{
		Store:    store,
		Tracker:  payroll.NewTracker(store),
		Sessions: NewSessionManager(),
	}
}

// =============================================================================
// DASHBOARD
// =============================================================================

// AdminDashboard returns the census and the monthly payroll table.
// GET /api/admin/dashboard?month=YYYY-MM (defaults to current month)
func (h *Handler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	month, ok := monthParam(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	counts, err := h.Store.CountEmployees(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to count employees", err)
		return
	}
	totals, err := h.Store.MonthlyTotalsAll(ctx, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to aggregate payroll", err)
		return
	}

	writeJSON(w, http.StatusOK, AdminDashboardDTO{
		Month:     month,
		HeadCount: HeadCountDTO(counts),
		Payroll:   toSummaryDTOs(payroll.ComputeAll(totals)),
	})
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns all employees.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetEmployee returns a single employee.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	emp, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if emp == nil {
		writeDomainError(w, payroll.ErrEmployeeNotFound)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(*emp))
}

// CreateEmployee creates a new employee. A taken id yields 409.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req EmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	emp, err := employeeFromRequest(req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := h.Store.SaveEmployee(r.Context(), emp); err != nil {
		writeDomainError(w, err)
		return
	}

	saved, err := h.Store.GetEmployee(r.Context(), emp.EmployeeID)
	if err != nil || saved == nil {
		writeJSON(w, http.StatusCreated, toEmployeeDTO(emp))
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeDTO(*saved))
}

// UpdateEmployee edits an existing employee. The id in the URL wins over
// any id in the body.
func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req EmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	req.EmployeeID = id

	emp, err := employeeFromRequest(req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := h.Store.UpdateEmployee(r.Context(), emp); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(emp))
}

// DeleteEmployee removes an employee and every dependent row.
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.DeleteEmployee(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func employeeFromRequest(req EmployeeRequest) (payroll.Employee, error) {
	if req.EmployeeID == "" {
		return payroll.Employee{}, &payroll.ValidationError{Field: "employee_id", Message: "required"}
	}
	if req.FullName == "" {
		return payroll.Employee{}, &payroll.ValidationError{Field: "full_name", Message: "required"}
	}
	if req.HourlyRate < 0 {
		return payroll.Employee{}, &payroll.ValidationError{Field: "hourly_rate", Message: "must not be negative"}
	}

	status := payroll.EmployeeStatus(req.Status)
	switch status {
	case "":
		status = payroll.StatusActive
	case payroll.StatusActive, payroll.StatusInactive:
	default:
		return payroll.Employee{}, &payroll.ValidationError{Field: "status", Message: "must be Active or Inactive"}
	}

	return payroll.Employee{
		EmployeeID:     req.EmployeeID,
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		HourlyRate:     decimal.NewFromFloat(req.HourlyRate),
		PassportNumber: req.PassportNumber,
		BankName:       req.BankName,
		BankAccount:    req.BankAccount,
		BankAccountNo:  req.BankAccountNo,
		Status:         status,
	}, nil
}

// =============================================================================
// WORK ENTRY HANDLERS
// =============================================================================

// ListWorkEntries returns entries filtered by employee and/or month.
// GET /api/admin/entries?employee=&month=
func (h *Handler) ListWorkEntries(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee")
	month := r.URL.Query().Get("month")
	if month != "" {
		normalized, err := payroll.ParseMonth(month)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		month = normalized
	}

	entries, err := h.Store.ListWorkEntries(r.Context(), employeeID, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list work entries", err)
		return
	}
	writeJSON(w, http.StatusOK, toWorkEntryDTOs(entries))
}

// CreateWorkEntry records a manual attendance row. Unlike selfie check-in,
// manual entry may set the holiday flag; the hour buckets are computed here
// and stored denormalized.
func (h *Handler) CreateWorkEntry(w http.ResponseWriter, r *http.Request) {
	var req WorkEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()
	emp, err := h.Store.GetEmployee(ctx, req.EmployeeID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to look up employee", err)
		return
	}
	if emp == nil {
		writeDomainError(w, payroll.ErrEmployeeNotFound)
		return
	}

	entry, err := workEntryFromRequest(req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := h.Store.InsertWorkEntry(ctx, entry); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toWorkEntryDTO(*entry))
}

// UpdateWorkEntry edits an entry's date and times and recomputes the hour
// buckets. Moving the entry onto a date the employee already has is a 409.
func (h *Handler) UpdateWorkEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var req WorkEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()
	existing, err := h.Store.GetWorkEntryByID(ctx, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get work entry", err)
		return
	}
	if existing == nil {
		writeDomainError(w, payroll.ErrRecordNotFound)
		return
	}

	// The entry keeps its employee; date and clock fields may move.
	req.EmployeeID = existing.EmployeeID
	if req.WorkDate == "" {
		req.WorkDate = existing.WorkDate
	}
	updated, err := workEntryFromRequest(req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	if err := h.Store.UpdateWorkEntry(ctx, *updated); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toWorkEntryDTO(*updated))
}

// DeleteWorkEntry removes an attendance row.
func (h *Handler) DeleteWorkEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.Store.DeleteWorkEntry(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func workEntryFromRequest(req WorkEntryRequest) (*payroll.WorkEntry, error) {
	date, err := payroll.ParseDate(req.WorkDate)
	if err != nil {
		return nil, err
	}

	breakMinutes := payroll.DefaultBreakMinutes
	if req.BreakMinutes != nil {
		breakMinutes = *req.BreakMinutes
	}

	hours, err := payroll.SplitShiftStrings(req.StartTime, req.EndTime, breakMinutes, req.Holiday)
	if err != nil {
		return nil, err
	}

	return &payroll.WorkEntry{
		EmployeeID:    req.EmployeeID,
		WorkDate:      date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		BreakMinutes:  breakMinutes,
		NormalHours:   hours.Normal,
		OvertimeHours: hours.Overtime,
		HolidayHours:  hours.Holiday,
	}, nil
}

// =============================================================================
// DEDUCTION LEDGER HANDLERS (advances and food expenses)
// =============================================================================

// ListAdvances returns advances filtered by employee and/or month.
func (h *Handler) ListAdvances(w http.ResponseWriter, r *http.Request) {
	employeeID, month, ok := ledgerFilters(w, r)
	if !ok {
		return
	}
	advances, err := h.Store.ListAdvances(r.Context(), employeeID, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list advances", err)
		return
	}
	dtos := make([]LedgerEntryDTO, len(advances))
	for i, a := range advances {
		dtos[i] = toAdvanceDTO(a)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateAdvance records a pre-payment deduction.
func (h *Handler) CreateAdvance(w http.ResponseWriter, r *http.Request) {
	req, amount, date, ok := h.decodeLedgerEntry(w, r)
	if !ok {
		return
	}
	advance := &payroll.AdvancePayment{
		EmployeeID: req.EmployeeID,
		Amount:     amount,
		Date:       date,
		Reason:     req.Note,
	}
	if err := h.Store.InsertAdvance(r.Context(), advance); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAdvanceDTO(*advance))
}

// DeleteAdvance removes an advance row.
func (h *Handler) DeleteAdvance(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.Store.DeleteAdvance(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ListFoodExpenses returns food expenses filtered by employee and/or month.
func (h *Handler) ListFoodExpenses(w http.ResponseWriter, r *http.Request) {
	employeeID, month, ok := ledgerFilters(w, r)
	if !ok {
		return
	}
	expenses, err := h.Store.ListFoodExpenses(r.Context(), employeeID, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list food expenses", err)
		return
	}
	dtos := make([]LedgerEntryDTO, len(expenses))
	for i, f := range expenses {
		dtos[i] = toExpenseDTO(f)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateFoodExpense records a meal deduction.
func (h *Handler) CreateFoodExpense(w http.ResponseWriter, r *http.Request) {
	req, amount, date, ok := h.decodeLedgerEntry(w, r)
	if !ok {
		return
	}
	expense := &payroll.FoodExpense{
		EmployeeID:  req.EmployeeID,
		Amount:      amount,
		Date:        date,
		Description: req.Note,
	}
	if err := h.Store.InsertFoodExpense(r.Context(), expense); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExpenseDTO(*expense))
}

// DeleteFoodExpense removes an expense row.
func (h *Handler) DeleteFoodExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.Store.DeleteFoodExpense(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// decodeLedgerEntry validates the shared advance/expense payload: positive
// amount, known employee, date defaulting to today.
func (h *Handler) decodeLedgerEntry(w http.ResponseWriter, r *http.Request) (LedgerEntryRequest, decimal.Decimal, string, bool) {
	var req LedgerEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return req, decimal.Zero, "", false
	}
	if req.Amount <= 0 {
		writeDomainError(w, &payroll.ValidationError{Field: "amount", Message: "must be positive"})
		return req, decimal.Zero, "", false
	}

	date := req.Date
	if date == "" {
		date = payroll.Today()
	}
	date, err := payroll.ParseDate(date)
	if err != nil {
		writeDomainError(w, err)
		return req, decimal.Zero, "", false
	}

	emp, err := h.Store.GetEmployee(r.Context(), req.EmployeeID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to look up employee", err)
		return req, decimal.Zero, "", false
	}
	if emp == nil {
		writeDomainError(w, payroll.ErrEmployeeNotFound)
		return req, decimal.Zero, "", false
	}

	return req, decimal.NewFromFloat(req.Amount), date, true
}

// =============================================================================
// PAYMENT HANDLERS
// =============================================================================

// ListPaymentOutlook returns the earned/paid/pending table for all employees.
// GET /api/admin/payments
func (h *Handler) ListPaymentOutlook(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Store.ListEarnings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to aggregate earnings", err)
		return
	}

	dtos := make([]PaymentOutlookDTO, len(rows))
	for i, row := range rows {
		dtos[i] = toOutlookDTO(payroll.Outlook(row))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetPaymentHistory returns one employee's disbursements plus their
// current outlook.
// GET /api/admin/payments/{employee}
func (h *Handler) GetPaymentHistory(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employee")

	ctx := r.Context()
	row, err := h.Store.GetEarnings(ctx, employeeID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to aggregate earnings", err)
		return
	}
	if row == nil {
		writeDomainError(w, payroll.ErrEmployeeNotFound)
		return
	}
	payments, err := h.Store.ListPayments(ctx, employeeID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list payments", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"outlook":  toOutlookDTO(payroll.Outlook(*row)),
		"payments": toPaymentDTOs(payments),
	})
}

// CreatePayment records a wage disbursement.
func (h *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	payment, err := h.paymentFromRequest(r, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := h.Store.InsertPayment(r.Context(), payment); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPaymentDTO(*payment))
}

// UpdatePayment edits a disbursement record.
func (h *Handler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var req PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	payment, err := h.paymentFromRequest(r, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	payment.ID = id

	if err := h.Store.UpdatePayment(r.Context(), *payment); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentDTO(*payment))
}

// DeletePayment removes a disbursement record.
func (h *Handler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.Store.DeletePayment(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) paymentFromRequest(r *http.Request, req PaymentRequest) (*payroll.PaymentRecord, error) {
	if req.AmountPaid <= 0 {
		return nil, &payroll.ValidationError{Field: "amount_paid", Message: "must be positive"}
	}

	date := req.Date
	if date == "" {
		date = payroll.Today()
	}
	date, err := payroll.ParseDate(date)
	if err != nil {
		return nil, err
	}

	status := payroll.PaymentStatus(req.Status)
	switch status {
	case "":
		status = payroll.PaymentPaid
	case payroll.PaymentPaid, payroll.PaymentPending:
	default:
		return nil, &payroll.ValidationError{Field: "status", Message: "must be paid or pending"}
	}

	emp, err := h.Store.GetEmployee(r.Context(), req.EmployeeID)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, payroll.ErrEmployeeNotFound
	}

	return &payroll.PaymentRecord{
		EmployeeID:  req.EmployeeID,
		Date:        date,
		AmountPaid:  decimal.NewFromFloat(req.AmountPaid),
		PaymentType: req.PaymentType,
		Description: req.Description,
		Status:      status,
	}, nil
}

// =============================================================================
// PHOTO REVIEW
// =============================================================================

// ListPhotos lists clock photos without their payloads.
// GET /api/admin/photos?employee=&date=
func (h *Handler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee")
	date := r.URL.Query().Get("date")
	if date != "" {
		normalized, err := payroll.ParseDate(date)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		date = normalized
	}

	photos, err := h.Store.ListPhotos(r.Context(), employeeID, date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list photos", err)
		return
	}
	dtos := make([]PhotoDTO, len(photos))
	for i, p := range photos {
		dtos[i] = toPhotoDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetPhoto serves one stored photo payload. Reachable by either role.
// GET /api/photos/{id}
func (h *Handler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	photo, err := h.Store.GetPhoto(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get photo", err)
		return
	}
	if photo == nil {
		writeDomainError(w, payroll.ErrRecordNotFound)
		return
	}

	// Employees only ever see their own photos; a foreign id looks absent.
	if who, _ := identityFrom(r.Context()); who.Role == RoleEmployee && photo.EmployeeID != who.EmployeeID {
		writeDomainError(w, payroll.ErrRecordNotFound)
		return
	}

	dto := toPhotoDTO(*photo)
	writeJSON(w, http.StatusOK, map[string]any{
		"photo": dto,
		"data":  photo.Data,
	})
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// monthParam reads ?month= and defaults to the current month.
func monthParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	month := r.URL.Query().Get("month")
	if month == "" {
		return payroll.CurrentMonth(), true
	}
	normalized, err := payroll.ParseMonth(month)
	if err != nil {
		writeDomainError(w, err)
		return "", false
	}
	return normalized, true
}

// ledgerFilters reads the shared ?employee=&month= query filters.
func ledgerFilters(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	employeeID := r.URL.Query().Get("employee")
	month := r.URL.Query().Get("month")
	if month != "" {
		normalized, err := payroll.ParseMonth(month)
		if err != nil {
			writeDomainError(w, err)
			return "", "", false
		}
		month = normalized
	}
	return employeeID, month, true
}

// idParam parses the numeric {id} route parameter.
func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id", err)
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps a domain error onto its HTTP status.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case payroll.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error(), nil)
	case payroll.IsNotFound(err):
		writeError(w, http.StatusNotFound, err.Error(), nil)
	case payroll.IsConflict(err):
		writeError(w, http.StatusConflict, err.Error(), nil)
	default:
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}
