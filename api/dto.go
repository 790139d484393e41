/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

MONEY AND HOURS:
  Internally everything is decimal.Decimal; in responses every monetary
  and hour figure is rounded to 2 decimal places and emitted as a JSON
  number via the money() helper.

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go, me.go: use these types
  - export.go: report rows share the same rounding rule
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// AUTH
// =============================================================================

// LoginRequest covers both roles; Password is admin-only, EmployeeID
// employee-only.
type LoginRequest struct {
	Role       string `json:"role"`
	Username   string `json:"username,omitempty"`
	Password   string `json:"password,omitempty"`
	EmployeeID string `json:"employee_id,omitempty"`
}

// LoginResponse echoes the authenticated identity.
type LoginResponse struct {
	Role       string `json:"role"`
	Username   string `json:"username,omitempty"`
	EmployeeID string `json:"employee_id,omitempty"`
	FullName   string `json:"full_name,omitempty"`
}

// ChangePasswordRequest rotates the admin password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// =============================================================================
// EMPLOYEES
// =============================================================================

// EmployeeDTO represents an employee in API responses.
type EmployeeDTO struct {
	EmployeeID     string  `json:"employee_id"`
	FullName       string  `json:"full_name"`
	Email          string  `json:"email,omitempty"`
	Phone          string  `json:"phone,omitempty"`
	HourlyRate     float64 `json:"hourly_rate"`
	PassportNumber string  `json:"passport_number,omitempty"`
	BankName       string  `json:"bank_name,omitempty"`
	BankAccount    string  `json:"bank_account,omitempty"`
	BankAccountNo  string  `json:"bank_account_no,omitempty"`
	Status         string  `json:"status"`
	CreatedAt      string  `json:"created_at,omitempty"`
}

// EmployeeRequest is the create/update payload. Status defaults to Active
// on create when omitted.
type EmployeeRequest struct {
	EmployeeID     string  `json:"employee_id"`
	FullName       string  `json:"full_name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	HourlyRate     float64 `json:"hourly_rate"`
	PassportNumber string  `json:"passport_number"`
	BankName       string  `json:"bank_name"`
	BankAccount    string  `json:"bank_account"`
	BankAccountNo  string  `json:"bank_account_no"`
	Status         string  `json:"status"`
}

// =============================================================================
// WORK ENTRIES
// =============================================================================

// WorkEntryDTO represents one attendance row.
type WorkEntryDTO struct {
	ID            int64   `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	WorkDate      string  `json:"work_date"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	BreakMinutes  int     `json:"break_minutes"`
	NormalHours   float64 `json:"normal_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
	HolidayHours  float64 `json:"holiday_hours"`
	Open          bool    `json:"open"`
	CreatedAt     string  `json:"created_at,omitempty"`
}

// WorkEntryRequest is the manual-entry payload. BreakMinutes defaults to
// the standard break when nil. Holiday routes all time into the holiday
// bucket; only administrative entry can set it.
type WorkEntryRequest struct {
	EmployeeID   string `json:"employee_id"`
	WorkDate     string `json:"work_date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	BreakMinutes *int   `json:"break_minutes,omitempty"`
	Holiday      bool   `json:"holiday"`
}

// =============================================================================
// DEDUCTION LEDGERS
// =============================================================================

// LedgerEntryDTO represents an advance payment or food expense.
type LedgerEntryDTO struct {
	ID         int64   `json:"id"`
	EmployeeID string  `json:"employee_id"`
	Amount     float64 `json:"amount"`
	Date       string  `json:"date"`
	Note       string  `json:"note,omitempty"`
	CreatedAt  string  `json:"created_at,omitempty"`
}

// LedgerEntryRequest creates an advance or expense. Date defaults to today.
type LedgerEntryRequest struct {
	EmployeeID string  `json:"employee_id"`
	Amount     float64 `json:"amount"`
	Date       string  `json:"date"`
	Note       string  `json:"note"`
}

// =============================================================================
// PAYMENTS
// =============================================================================

// PaymentDTO represents one wage disbursement.
type PaymentDTO struct {
	ID          int64   `json:"id"`
	EmployeeID  string  `json:"employee_id"`
	Date        string  `json:"date"`
	AmountPaid  float64 `json:"amount_paid"`
	PaymentType string  `json:"payment_type,omitempty"`
	Description string  `json:"description,omitempty"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at,omitempty"`
}

// PaymentRequest creates or updates a disbursement record.
type PaymentRequest struct {
	EmployeeID  string  `json:"employee_id"`
	Date        string  `json:"date"`
	AmountPaid  float64 `json:"amount_paid"`
	PaymentType string  `json:"payment_type"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
}

// PaymentOutlookDTO is one row of the admin payments table.
type PaymentOutlookDTO struct {
	EmployeeID    string  `json:"employee_id"`
	FullName      string  `json:"full_name"`
	HourlyRate    float64 `json:"hourly_rate"`
	BankName      string  `json:"bank_name,omitempty"`
	BankAccountNo string  `json:"bank_account_no,omitempty"`
	TotalEarned   float64 `json:"total_earned"`
	TotalPaid     float64 `json:"total_paid"`
	Pending       float64 `json:"pending"`
}

// =============================================================================
// DASHBOARDS
// =============================================================================

// PayrollSummaryDTO is the computed monthly pay breakdown for one employee.
type PayrollSummaryDTO struct {
	EmployeeID    string  `json:"employee_id"`
	FullName      string  `json:"full_name"`
	HourlyRate    float64 `json:"hourly_rate"`
	NormalHours   float64 `json:"normal_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
	HolidayHours  float64 `json:"holiday_hours"`
	NormalPay     float64 `json:"normal_pay"`
	OvertimePay   float64 `json:"overtime_pay"`
	HolidayPay    float64 `json:"holiday_pay"`
	TotalEarnings float64 `json:"total_earnings"`
	Advances      float64 `json:"advances"`
	FoodExpenses  float64 `json:"food_expenses"`
	GrandTotal    float64 `json:"grand_total"`
}

// AdminDashboardDTO is the back-office landing view.
type AdminDashboardDTO struct {
	Month     string              `json:"month"`
	HeadCount HeadCountDTO        `json:"head_count"`
	Payroll   []PayrollSummaryDTO `json:"payroll"`
}

// HeadCountDTO is the employee census.
type HeadCountDTO struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}

// MeDashboardDTO is the employee portal landing view.
type MeDashboardDTO struct {
	Employee EmployeeDTO        `json:"employee"`
	Month    string             `json:"month"`
	Entries  []WorkEntryDTO     `json:"entries"`
	Summary  *PayrollSummaryDTO `json:"summary"`
	Today    string             `json:"today"`
	State    string             `json:"state"` // no_entry | checked_in | checked_out
	Paid     float64            `json:"total_paid"`
	Pending  float64            `json:"pending"`
}

// =============================================================================
// ATTENDANCE
// =============================================================================

// CheckRequest carries the optional base64 selfie for check-in/out.
type CheckRequest struct {
	Photo string `json:"photo,omitempty"`
}

// PhotoDTO lists a stored clock photo without its payload.
type PhotoDTO struct {
	ID         int64  `json:"id"`
	EmployeeID string `json:"employee_id"`
	WorkDate   string `json:"work_date"`
	Type       string `json:"type"`
	CreatedAt  string `json:"created_at,omitempty"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

// money rounds a decimal figure to 2 places for the wire.
func money(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

func rfc3339OrEmpty(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func toEmployeeDTO(e payroll.Employee) EmployeeDTO {
	return EmployeeDTO{
		EmployeeID:     e.EmployeeID,
		FullName:       e.FullName,
		Email:          e.Email,
		Phone:          e.Phone,
		HourlyRate:     money(e.HourlyRate),
		PassportNumber: e.PassportNumber,
		BankName:       e.BankName,
		BankAccount:    e.BankAccount,
		BankAccountNo:  e.BankAccountNo,
		Status:         string(e.Status),
		CreatedAt:      rfc3339OrEmpty(e.CreatedAt),
	}
}

func toWorkEntryDTO(e payroll.WorkEntry) WorkEntryDTO {
	return WorkEntryDTO{
		ID:            e.ID,
		EmployeeID:    e.EmployeeID,
		WorkDate:      e.WorkDate,
		StartTime:     e.StartTime,
		EndTime:       e.EndTime,
		BreakMinutes:  e.BreakMinutes,
		NormalHours:   money(e.NormalHours),
		OvertimeHours: money(e.OvertimeHours),
		HolidayHours:  money(e.HolidayHours),
		Open:          e.Open(),
		CreatedAt:     rfc3339OrEmpty(e.CreatedAt),
	}
}

func toWorkEntryDTOs(entries []payroll.WorkEntry) []WorkEntryDTO {
	dtos := make([]WorkEntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = toWorkEntryDTO(e)
	}
	return dtos
}

func toAdvanceDTO(a payroll.AdvancePayment) LedgerEntryDTO {
	return LedgerEntryDTO{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		Amount:     money(a.Amount),
		Date:       a.Date,
		Note:       a.Reason,
		CreatedAt:  rfc3339OrEmpty(a.CreatedAt),
	}
}

func toExpenseDTO(f payroll.FoodExpense) LedgerEntryDTO {
	return LedgerEntryDTO{
		ID:         f.ID,
		EmployeeID: f.EmployeeID,
		Amount:     money(f.Amount),
		Date:       f.Date,
		Note:       f.Description,
		CreatedAt:  rfc3339OrEmpty(f.CreatedAt),
	}
}

func toPaymentDTO(p payroll.PaymentRecord) PaymentDTO {
	return PaymentDTO{
		ID:          p.ID,
		EmployeeID:  p.EmployeeID,
		Date:        p.Date,
		AmountPaid:  money(p.AmountPaid),
		PaymentType: p.PaymentType,
		Description: p.Description,
		Status:      string(p.Status),
		CreatedAt:   rfc3339OrEmpty(p.CreatedAt),
	}
}

func toPaymentDTOs(payments []payroll.PaymentRecord) []PaymentDTO {
	dtos := make([]PaymentDTO, len(payments))
	for i, p := range payments {
		dtos[i] = toPaymentDTO(p)
	}
	return dtos
}

func toOutlookDTO(o payroll.PaymentOutlook) PaymentOutlookDTO {
	return PaymentOutlookDTO{
		EmployeeID:    o.EmployeeID,
		FullName:      o.FullName,
		HourlyRate:    money(o.HourlyRate),
		BankName:      o.BankName,
		BankAccountNo: o.BankAccountNo,
		TotalEarned:   money(o.TotalEarned),
		TotalPaid:     money(o.TotalPaid),
		Pending:       money(o.Pending),
	}
}

func toSummaryDTO(s payroll.PayrollSummary) PayrollSummaryDTO {
	return PayrollSummaryDTO{
		EmployeeID:    s.EmployeeID,
		FullName:      s.FullName,
		HourlyRate:    money(s.HourlyRate),
		NormalHours:   money(s.NormalHours),
		OvertimeHours: money(s.OvertimeHours),
		HolidayHours:  money(s.HolidayHours),
		NormalPay:     money(s.NormalPay),
		OvertimePay:   money(s.OvertimePay),
		HolidayPay:    money(s.HolidayPay),
		TotalEarnings: money(s.TotalEarnings),
		Advances:      money(s.Advances),
		FoodExpenses:  money(s.FoodExpenses),
		GrandTotal:    money(s.GrandTotal),
	}
}

func toSummaryDTOs(summaries []payroll.PayrollSummary) []PayrollSummaryDTO {
	dtos := make([]PayrollSummaryDTO, len(summaries))
	for i, s := range summaries {
		dtos[i] = toSummaryDTO(s)
	}
	return dtos
}

func toPhotoDTO(p payroll.AttendancePhoto) PhotoDTO {
	return PhotoDTO{
		ID:         p.ID,
		EmployeeID: p.EmployeeID,
		WorkDate:   p.WorkDate,
		Type:       string(p.Type),
		CreatedAt:  rfc3339OrEmpty(p.CreatedAt),
	}
}
