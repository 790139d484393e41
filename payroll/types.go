/*
Package payroll provides the core wage and attendance engine.

PURPOSE:
  This package contains the domain types and algorithms for an hourly
  payroll tracker: splitting a worked shift into normal/overtime/holiday
  buckets, aggregating hours and deductions into monthly pay figures,
  and driving the per-day check-in/check-out state machine.

KEY CONCEPTS IN THIS FILE (types.go):
  - Employee: an hourly worker with an externally assigned id and rate
  - WorkEntry: one attendance row per employee per calendar date
  - AdvancePayment / FoodExpense: immutable deduction ledger entries
  - PaymentRecord: an actual wage disbursement against accrued earnings
  - AttendancePhoto: write-once clock-in/out evidence keyed by
    (employee, date, type), NOT by work entry id

DESIGN PRINCIPLES:
  1. Precision: all money and hour quantities use decimal.Decimal
  2. The calculator is pure: rows in, figures out, no hidden state
  3. Storage access goes through a single Store interface (store.go)

SEE ALSO:
  - shift.go: shift duration splitting
  - calc.go: monthly aggregation and pending balance
  - attendance.go: check-in/check-out transitions
*/
package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// EMPLOYEE
// =============================================================================

type EmployeeStatus string

const (
	StatusActive   EmployeeStatus = "Active"
	StatusInactive EmployeeStatus = "Inactive"
)

// Employee is an hourly worker. EmployeeID is externally assigned and unique;
// it is also the login credential for the employee role.
type Employee struct {
	EmployeeID     string
	FullName       string
	Email          string
	Phone          string
	HourlyRate     decimal.Decimal
	PassportNumber string
	BankName       string
	BankAccount    string
	BankAccountNo  string
	Status         EmployeeStatus
	CreatedAt      time.Time
}

// IsActive reports whether the employee may log in and clock in/out.
func (e Employee) IsActive() bool { return e.Status == StatusActive }

// =============================================================================
// WORK ENTRY - one row per employee per calendar date
// =============================================================================

// WorkEntry records a single day's attendance. An open entry (checked in but
// not out) is signalled by EndTime == StartTime; the hour buckets stay zero
// until check-out or administrative edit populates them.
type WorkEntry struct {
	ID            int64
	EmployeeID    string
	WorkDate      string // "YYYY-MM-DD"
	StartTime     string // "HH:MM"
	EndTime       string // "HH:MM"
	BreakMinutes  int
	NormalHours   decimal.Decimal
	OvertimeHours decimal.Decimal
	HolidayHours  decimal.Decimal
	CreatedAt     time.Time
}

// Open reports whether the entry is still waiting for check-out.
func (w WorkEntry) Open() bool { return w.EndTime == w.StartTime }

// =============================================================================
// DEDUCTION LEDGER ENTRIES
// =============================================================================

// AdvancePayment is a pre-paid sum deducted from future earnings.
// Immutable once created; the only mutation is delete.
type AdvancePayment struct {
	ID         int64
	EmployeeID string
	Amount     decimal.Decimal
	Date       string // "YYYY-MM-DD"
	Reason     string
	CreatedAt  time.Time
}

// FoodExpense has the same shape as AdvancePayment but records a meal
// deduction. Also immutable once created.
type FoodExpense struct {
	ID          int64
	EmployeeID  string
	Amount      decimal.Decimal
	Date        string // "YYYY-MM-DD"
	Description string
	CreatedAt   time.Time
}

// =============================================================================
// PAYMENT RECORD - actual disbursement
// =============================================================================

type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentPending PaymentStatus = "pending"
)

// PaymentRecord is an actual wage disbursement. The only entity with
// create, update and delete operations.
type PaymentRecord struct {
	ID          int64
	EmployeeID  string
	Date        string // "YYYY-MM-DD"
	AmountPaid  decimal.Decimal
	PaymentType string // e.g. "bank_transfer", "cash"
	Description string
	Status      PaymentStatus
	CreatedAt   time.Time
}

// =============================================================================
// ATTENDANCE PHOTO - write-once evidence
// =============================================================================

type PhotoType string

const (
	PhotoCheckIn  PhotoType = "check_in"
	PhotoCheckOut PhotoType = "check_out"
)

// AttendancePhoto stores an opaque base64-encoded image keyed by
// (employee, date, type). It is associated with a WorkEntry only by that
// key, never by foreign key, and is joined at read time.
type AttendancePhoto struct {
	ID         int64
	EmployeeID string
	WorkDate   string // "YYYY-MM-DD"
	Type       PhotoType
	Data       string // base64 payload, never interpreted here
	CreatedAt  time.Time
}

// =============================================================================
// AGGREGATES - inputs and outputs of the payroll calculator
// =============================================================================

// MonthlyTotals is the per-employee, per-month aggregation of work entry
// buckets and deduction ledgers. Missing rows aggregate to zero, never null.
type MonthlyTotals struct {
	EmployeeID    string
	FullName      string
	HourlyRate    decimal.Decimal
	NormalHours   decimal.Decimal
	OvertimeHours decimal.Decimal
	HolidayHours  decimal.Decimal
	Advances      decimal.Decimal
	FoodExpenses  decimal.Decimal
}

// PayrollSummary is the computed pay breakdown for one employee and month.
type PayrollSummary struct {
	MonthlyTotals
	NormalPay     decimal.Decimal
	OvertimePay   decimal.Decimal
	HolidayPay    decimal.Decimal
	TotalEarnings decimal.Decimal
	GrandTotal    decimal.Decimal // earnings - advances - food expenses
}

// LifetimeHours is the all-time hour buckets for one employee, used for the
// pending-balance calculation.
type LifetimeHours struct {
	NormalHours   decimal.Decimal
	OvertimeHours decimal.Decimal
	HolidayHours  decimal.Decimal
}

// PaymentOutlook reconciles accrued earnings against disbursements.
// Pending may be negative when an employee has been overpaid.
type PaymentOutlook struct {
	EmployeeID    string
	FullName      string
	HourlyRate    decimal.Decimal
	BankName      string
	BankAccountNo string
	TotalEarned   decimal.Decimal
	TotalPaid     decimal.Decimal
	Pending       decimal.Decimal
}

// HeadCount is the employee census shown on the admin dashboard.
type HeadCount struct {
	Total    int
	Active   int
	Inactive int
}
