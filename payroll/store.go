/*
store.go - Persistence interface for payroll entities

PURPOSE:
  Defines the single interface between the domain/API layers and the
  database. Handlers depend only on this interface; backend branching
  lives in exactly one implementation per engine.

CAPABILITY SET:
  - Employee CRUD (delete cascades to every dependent table)
  - WorkEntry CRUD keyed by id and by (employee, date)
  - AdvancePayment / FoodExpense: create, list, delete (no update - they
    are immutable ledger entries)
  - PaymentRecord CRUD
  - AttendancePhoto save/get/list, keyed by (employee, date, type)
  - Month-prefix aggregate queries with COALESCE-to-zero semantics
  - Admin credential lookup/update

CONCURRENCY:
  Callers get no transaction isolation or optimistic-concurrency token.
  Check-in uses read-check-then-insert; the UNIQUE(employee_id, work_date)
  index is the backstop that turns the race into ErrDuplicateWorkDate
  instead of a silent double entry.

IMPLEMENTATIONS:
  - store/sqlite: production SQLite store

SEE ALSO:
  - attendance.go: drives transitions through this interface
  - store/sqlite/sqlite.go: concrete implementation
*/
package payroll

import (
	"context"

	"github.com/shopspring/decimal"
)

// EarningsRow pairs an employee with their all-time hour buckets and
// disbursement total. Input to the pending-balance reconciliation.
type EarningsRow struct {
	Employee Employee
	Hours    LifetimeHours
	Paid     decimal.Decimal
}

// Store is the storage capability set for the payroll system.
// Get* methods return (nil, nil) when the record does not exist; callers
// translate that into the NotFound sentinel appropriate for their context.
type Store interface {
	// Employees
	SaveEmployee(ctx context.Context, e Employee) error // ErrDuplicateEmployeeID on taken id
	GetEmployee(ctx context.Context, employeeID string) (*Employee, error)
	ListEmployees(ctx context.Context) ([]Employee, error)
	UpdateEmployee(ctx context.Context, e Employee) error
	DeleteEmployee(ctx context.Context, employeeID string) error // cascades
	CountEmployees(ctx context.Context) (HeadCount, error)

	// Work entries
	GetWorkEntry(ctx context.Context, employeeID, date string) (*WorkEntry, error)
	GetWorkEntryByID(ctx context.Context, id int64) (*WorkEntry, error)
	ListWorkEntries(ctx context.Context, employeeID, month string) ([]WorkEntry, error)
	InsertWorkEntry(ctx context.Context, entry *WorkEntry) error // ErrDuplicateWorkDate on same-day duplicate
	UpdateWorkEntry(ctx context.Context, entry WorkEntry) error
	DeleteWorkEntry(ctx context.Context, id int64) error

	// Advance payments (immutable ledger: no update)
	ListAdvances(ctx context.Context, employeeID, month string) ([]AdvancePayment, error)
	InsertAdvance(ctx context.Context, a *AdvancePayment) error
	DeleteAdvance(ctx context.Context, id int64) error

	// Food expenses (immutable ledger: no update)
	ListFoodExpenses(ctx context.Context, employeeID, month string) ([]FoodExpense, error)
	InsertFoodExpense(ctx context.Context, f *FoodExpense) error
	DeleteFoodExpense(ctx context.Context, id int64) error

	// Payment records
	ListPayments(ctx context.Context, employeeID string) ([]PaymentRecord, error)
	InsertPayment(ctx context.Context, p *PaymentRecord) error
	UpdatePayment(ctx context.Context, p PaymentRecord) error
	DeletePayment(ctx context.Context, id int64) error

	// Attendance photos
	SavePhoto(ctx context.Context, p *AttendancePhoto) error
	GetPhoto(ctx context.Context, id int64) (*AttendancePhoto, error)
	ListPhotos(ctx context.Context, employeeID, date string) ([]AttendancePhoto, error)

	// Aggregates. Month is a "YYYY-MM" prefix filter; employees with no
	// matching rows still appear with zero totals.
	MonthlyTotalsAll(ctx context.Context, month string) ([]MonthlyTotals, error)
	MonthlyTotalsFor(ctx context.Context, employeeID, month string) (*MonthlyTotals, error)
	ListEarnings(ctx context.Context) ([]EarningsRow, error)
	GetEarnings(ctx context.Context, employeeID string) (*EarningsRow, error)

	// Admin credentials
	GetAdminHash(ctx context.Context, username string) (string, error) // "" when unknown
	SetAdminHash(ctx context.Context, username, hash string) error
}
