/*
Package sqlite provides the SQLite-backed implementation of payroll.Store.

PURPOSE:
  Implements the full storage capability set (employee/entry/advance/
  expense/photo/payment CRUD plus the month-prefix aggregate queries)
  using SQLite. The same patterns apply to PostgreSQL - only minor SQL
  dialect differences (strftime vs to_char for the month filter).

KEY TABLES:
  employees:          worker records, employee_id is the natural key
  work_entries:       one attendance row per employee per date
  advance_payments:   immutable advance ledger
  food_expenses:      immutable meal-deduction ledger
  payment_records:    wage disbursements
  attendance_photos:  write-once clock evidence, keyed by (employee, date, type)
  admin_accounts:     bcrypt credential for the administrator role

MONTH FILTER:
  Month scoping is strftime('%Y-%m', date_col) = ?, a lexical prefix match
  on the normalized "YYYY-MM-DD" date strings. Writers must normalize
  dates through payroll.ParseDate.

AGGREGATES:
  Monthly totals join per-table SUM subqueries onto employees so that an
  employee with no matching rows still appears with COALESCE'd zeros, and
  sums are never inflated by join fan-out.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. WAL mode keeps readers from
  blocking the single writer.

USAGE:
  store, err := sqlite.New("./data/payroll.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - payroll/store.go: interface definition
  - payroll/attendance.go: transition logic driving this store
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/warp/payroll-engine/payroll"
)

// DefaultAdminUser is seeded with password "admin" on first migration.
// Change it immediately via the password endpoint.
const DefaultAdminUser = "admin"

// Store implements payroll.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	if err := store.seedAdmin(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed admin account: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		employee_id TEXT PRIMARY KEY,
		full_name TEXT NOT NULL,
		email TEXT,
		phone TEXT,
		hourly_rate REAL NOT NULL,
		passport_number TEXT,
		bank_name TEXT,
		bank_account_name TEXT,
		bank_account_number TEXT,
		status TEXT NOT NULL DEFAULT 'Active',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS work_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		employee_id TEXT NOT NULL,
		work_date TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		break_minutes INTEGER NOT NULL DEFAULT 60,
		normal_hours REAL NOT NULL DEFAULT 0,
		overtime_hours REAL NOT NULL DEFAULT 0,
		holiday_hours REAL NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);

	-- Backstop for the check-in read-check-then-insert race: the losing
	-- concurrent insert fails here instead of producing a second entry.
	CREATE UNIQUE INDEX IF NOT EXISTS idx_work_entries_employee_date
		ON work_entries(employee_id, work_date);
	CREATE INDEX IF NOT EXISTS idx_work_entries_month
		ON work_entries(employee_id, work_date DESC);

	CREATE TABLE IF NOT EXISTS advance_payments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		employee_id TEXT NOT NULL,
		amount REAL NOT NULL,
		payment_date TEXT NOT NULL,
		reason TEXT,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_advance_payments_employee
		ON advance_payments(employee_id, payment_date);

	CREATE TABLE IF NOT EXISTS food_expenses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		employee_id TEXT NOT NULL,
		amount REAL NOT NULL,
		expense_date TEXT NOT NULL,
		description TEXT,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_food_expenses_employee
		ON food_expenses(employee_id, expense_date);

	CREATE TABLE IF NOT EXISTS payment_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		employee_id TEXT NOT NULL,
		payment_date TEXT NOT NULL,
		amount_paid REAL NOT NULL,
		payment_type TEXT NOT NULL,
		description TEXT,
		status TEXT NOT NULL DEFAULT 'paid',
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_payment_records_employee
		ON payment_records(employee_id, payment_date DESC);

	CREATE TABLE IF NOT EXISTS attendance_photos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		employee_id TEXT NOT NULL,
		work_date TEXT NOT NULL,
		photo_type TEXT NOT NULL,
		photo_data TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_attendance_photos_employee_date
		ON attendance_photos(employee_id, work_date);

	CREATE TABLE IF NOT EXISTS admin_accounts (
		username TEXT PRIMARY KEY,
		password_hash TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// seedAdmin inserts the default administrator on a fresh database.
func (s *Store) seedAdmin() error {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM admin_accounts`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO admin_accounts (username, password_hash, updated_at) VALUES (?, ?, ?)`,
		DefaultAdminUser, string(hash), nowRFC3339(),
	)
	return err
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func (s *Store) SaveEmployee(ctx context.Context, e payroll.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO employees
		(employee_id, full_name, email, phone, hourly_rate, passport_number,
		 bank_name, bank_account_name, bank_account_number, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.EmployeeID, e.FullName, e.Email, e.Phone, e.HourlyRate.InexactFloat64(),
		e.PassportNumber, e.BankName, e.BankAccount, e.BankAccountNo,
		string(statusOrActive(e.Status)), nowRFC3339(),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return payroll.ErrDuplicateEmployeeID
		}
		return fmt.Errorf("failed to save employee: %w", err)
	}
	return nil
}

func (s *Store) GetEmployee(ctx context.Context, employeeID string) (*payroll.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT employee_id, full_name, email, phone, hourly_rate, passport_number,
		       bank_name, bank_account_name, bank_account_number, status, created_at
		FROM employees WHERE employee_id = ?`, employeeID)

	e, err := scanEmployee(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Store) ListEmployees(ctx context.Context) ([]payroll.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT employee_id, full_name, email, phone, hourly_rate, passport_number,
		       bank_name, bank_account_name, bank_account_number, status, created_at
		FROM employees ORDER BY created_at DESC, employee_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []payroll.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, *e)
	}
	return employees, rows.Err()
}

func (s *Store) UpdateEmployee(ctx context.Context, e payroll.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE employees SET full_name = ?, email = ?, phone = ?, hourly_rate = ?,
		       passport_number = ?, bank_name = ?, bank_account_name = ?,
		       bank_account_number = ?, status = ?
		WHERE employee_id = ?`,
		e.FullName, e.Email, e.Phone, e.HourlyRate.InexactFloat64(),
		e.PassportNumber, e.BankName, e.BankAccount, e.BankAccountNo,
		string(statusOrActive(e.Status)), e.EmployeeID,
	)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	return notFoundIfZero(res, payroll.ErrEmployeeNotFound)
}

// DeleteEmployee removes the employee and every dependent record atomically.
func (s *Store) DeleteEmployee(ctx context.Context, employeeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM employees WHERE employee_id = ?`, employeeID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return payroll.ErrEmployeeNotFound
	}

	cascades := []string{
		`DELETE FROM work_entries WHERE employee_id = ?`,
		`DELETE FROM advance_payments WHERE employee_id = ?`,
		`DELETE FROM food_expenses WHERE employee_id = ?`,
		`DELETE FROM attendance_photos WHERE employee_id = ?`,
		`DELETE FROM payment_records WHERE employee_id = ?`,
	}
	for _, q := range cascades {
		if _, err := tx.ExecContext(ctx, q, employeeID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) CountEmployees(ctx context.Context) (payroll.HeadCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var hc payroll.HeadCount
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN status = 'Active' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN status = 'Inactive' THEN 1 ELSE 0 END), 0)
		FROM employees`).Scan(&hc.Total, &hc.Active, &hc.Inactive)
	return hc, err
}

// =============================================================================
// WORK ENTRIES
// =============================================================================

func (s *Store) GetWorkEntry(ctx context.Context, employeeID, date string) (*payroll.WorkEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, employee_id, work_date, start_time, end_time, break_minutes,
		       normal_hours, overtime_hours, holiday_hours, created_at
		FROM work_entries WHERE employee_id = ? AND work_date = ?`, employeeID, date)
	return scanWorkEntryMaybe(row)
}

func (s *Store) GetWorkEntryByID(ctx context.Context, id int64) (*payroll.WorkEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, employee_id, work_date, start_time, end_time, break_minutes,
		       normal_hours, overtime_hours, holiday_hours, created_at
		FROM work_entries WHERE id = ?`, id)
	return scanWorkEntryMaybe(row)
}

// ListWorkEntries returns entries newest-first. Empty employeeID means all
// employees; empty month means all months.
func (s *Store) ListWorkEntries(ctx context.Context, employeeID, month string) ([]payroll.WorkEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, employee_id, work_date, start_time, end_time, break_minutes,
		       normal_hours, overtime_hours, holiday_hours, created_at
		FROM work_entries`
	where, args := buildFilter("employee_id", employeeID, "work_date", month)
	query += where + ` ORDER BY work_date DESC, employee_id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []payroll.WorkEntry
	for rows.Next() {
		e, err := scanWorkEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

func (s *Store) InsertWorkEntry(ctx context.Context, entry *payroll.WorkEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO work_entries
		(employee_id, work_date, start_time, end_time, break_minutes,
		 normal_hours, overtime_hours, holiday_hours, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.EmployeeID, entry.WorkDate, entry.StartTime, entry.EndTime, entry.BreakMinutes,
		entry.NormalHours.InexactFloat64(), entry.OvertimeHours.InexactFloat64(),
		entry.HolidayHours.InexactFloat64(), nowRFC3339(),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return payroll.ErrDuplicateWorkDate
		}
		return fmt.Errorf("failed to insert work entry: %w", err)
	}
	entry.ID, _ = res.LastInsertId()
	return nil
}

func (s *Store) UpdateWorkEntry(ctx context.Context, entry payroll.WorkEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE work_entries SET work_date = ?, start_time = ?, end_time = ?,
		       break_minutes = ?, normal_hours = ?, overtime_hours = ?, holiday_hours = ?
		WHERE id = ?`,
		entry.WorkDate, entry.StartTime, entry.EndTime, entry.BreakMinutes,
		entry.NormalHours.InexactFloat64(), entry.OvertimeHours.InexactFloat64(),
		entry.HolidayHours.InexactFloat64(), entry.ID,
	)
	if err != nil {
		// Moving the entry onto a date the employee already has.
		if isUniqueConstraintError(err) {
			return payroll.ErrDuplicateWorkDate
		}
		return fmt.Errorf("failed to update work entry: %w", err)
	}
	return notFoundIfZero(res, payroll.ErrRecordNotFound)
}

func (s *Store) DeleteWorkEntry(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "work_entries", id)
}

// =============================================================================
// ADVANCE PAYMENTS
// =============================================================================

func (s *Store) ListAdvances(ctx context.Context, employeeID, month string) ([]payroll.AdvancePayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, employee_id, amount, payment_date, reason, created_at FROM advance_payments`
	where, args := buildFilter("employee_id", employeeID, "payment_date", month)
	query += where + ` ORDER BY payment_date DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var advances []payroll.AdvancePayment
	for rows.Next() {
		var a payroll.AdvancePayment
		var amount float64
		var createdAt string
		if err := rows.Scan(&a.ID, &a.EmployeeID, &amount, &a.Date, &a.Reason, &createdAt); err != nil {
			return nil, err
		}
		a.Amount = decimal.NewFromFloat(amount)
		a.CreatedAt = parseRFC3339(createdAt)
		advances = append(advances, a)
	}
	return advances, rows.Err()
}

func (s *Store) InsertAdvance(ctx context.Context, a *payroll.AdvancePayment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO advance_payments (employee_id, amount, payment_date, reason, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		a.EmployeeID, a.Amount.InexactFloat64(), a.Date, a.Reason, nowRFC3339(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert advance: %w", err)
	}
	a.ID, _ = res.LastInsertId()
	return nil
}

func (s *Store) DeleteAdvance(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "advance_payments", id)
}

// =============================================================================
// FOOD EXPENSES
// =============================================================================

func (s *Store) ListFoodExpenses(ctx context.Context, employeeID, month string) ([]payroll.FoodExpense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, employee_id, amount, expense_date, description, created_at FROM food_expenses`
	where, args := buildFilter("employee_id", employeeID, "expense_date", month)
	query += where + ` ORDER BY expense_date DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []payroll.FoodExpense
	for rows.Next() {
		var f payroll.FoodExpense
		var amount float64
		var createdAt string
		if err := rows.Scan(&f.ID, &f.EmployeeID, &amount, &f.Date, &f.Description, &createdAt); err != nil {
			return nil, err
		}
		f.Amount = decimal.NewFromFloat(amount)
		f.CreatedAt = parseRFC3339(createdAt)
		expenses = append(expenses, f)
	}
	return expenses, rows.Err()
}

func (s *Store) InsertFoodExpense(ctx context.Context, f *payroll.FoodExpense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO food_expenses (employee_id, amount, expense_date, description, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		f.EmployeeID, f.Amount.InexactFloat64(), f.Date, f.Description, nowRFC3339(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert food expense: %w", err)
	}
	f.ID, _ = res.LastInsertId()
	return nil
}

func (s *Store) DeleteFoodExpense(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "food_expenses", id)
}

// =============================================================================
// PAYMENT RECORDS
// =============================================================================

// ListPayments returns disbursements newest-first. Empty employeeID = all.
func (s *Store) ListPayments(ctx context.Context, employeeID string) ([]payroll.PaymentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, employee_id, payment_date, amount_paid, payment_type, description, status, created_at
		FROM payment_records`
	var args []any
	if employeeID != "" {
		query += ` WHERE employee_id = ?`
		args = append(args, employeeID)
	}
	query += ` ORDER BY payment_date DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []payroll.PaymentRecord
	for rows.Next() {
		var p payroll.PaymentRecord
		var amount float64
		var status, createdAt string
		if err := rows.Scan(&p.ID, &p.EmployeeID, &p.Date, &amount, &p.PaymentType, &p.Description, &status, &createdAt); err != nil {
			return nil, err
		}
		p.AmountPaid = decimal.NewFromFloat(amount)
		p.Status = payroll.PaymentStatus(status)
		p.CreatedAt = parseRFC3339(createdAt)
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (s *Store) InsertPayment(ctx context.Context, p *payroll.PaymentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := p.Status
	if status == "" {
		status = payroll.PaymentPaid
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO payment_records (employee_id, payment_date, amount_paid, payment_type, description, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.EmployeeID, p.Date, p.AmountPaid.InexactFloat64(), p.PaymentType, p.Description, string(status), nowRFC3339(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	p.Status = status
	p.ID, _ = res.LastInsertId()
	return nil
}

func (s *Store) UpdatePayment(ctx context.Context, p payroll.PaymentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE payment_records SET payment_date = ?, amount_paid = ?, payment_type = ?, description = ?, status = ?
		WHERE id = ?`,
		p.Date, p.AmountPaid.InexactFloat64(), p.PaymentType, p.Description, string(p.Status), p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}
	return notFoundIfZero(res, payroll.ErrRecordNotFound)
}

func (s *Store) DeletePayment(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "payment_records", id)
}

// =============================================================================
// ATTENDANCE PHOTOS
// =============================================================================

func (s *Store) SavePhoto(ctx context.Context, p *payroll.AttendancePhoto) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO attendance_photos (employee_id, work_date, photo_type, photo_data, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		p.EmployeeID, p.WorkDate, string(p.Type), p.Data, nowRFC3339(),
	)
	if err != nil {
		return fmt.Errorf("failed to save photo: %w", err)
	}
	p.ID, _ = res.LastInsertId()
	return nil
}

func (s *Store) GetPhoto(ctx context.Context, id int64) (*payroll.AttendancePhoto, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var p payroll.AttendancePhoto
	var photoType, createdAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, employee_id, work_date, photo_type, photo_data, created_at
		FROM attendance_photos WHERE id = ?`, id).
		Scan(&p.ID, &p.EmployeeID, &p.WorkDate, &photoType, &p.Data, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.Type = payroll.PhotoType(photoType)
	p.CreatedAt = parseRFC3339(createdAt)
	return &p, nil
}

// ListPhotos returns photos for an employee, optionally scoped to one date.
func (s *Store) ListPhotos(ctx context.Context, employeeID, date string) ([]payroll.AttendancePhoto, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, employee_id, work_date, photo_type, photo_data, created_at
		FROM attendance_photos WHERE employee_id = ?`
	args := []any{employeeID}
	if date != "" {
		query += ` AND work_date = ?`
		args = append(args, date)
	}
	query += ` ORDER BY work_date DESC, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []payroll.AttendancePhoto
	for rows.Next() {
		var p payroll.AttendancePhoto
		var photoType, createdAt string
		if err := rows.Scan(&p.ID, &p.EmployeeID, &p.WorkDate, &photoType, &p.Data, &createdAt); err != nil {
			return nil, err
		}
		p.Type = payroll.PhotoType(photoType)
		p.CreatedAt = parseRFC3339(createdAt)
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

// =============================================================================
// AGGREGATES
// =============================================================================

const monthlyTotalsQuery = `
	SELECT e.employee_id, e.full_name, e.hourly_rate,
	       COALESCE(w.normal_hours, 0), COALESCE(w.overtime_hours, 0), COALESCE(w.holiday_hours, 0),
	       COALESCE(a.total, 0), COALESCE(f.total, 0)
	FROM employees e
	LEFT JOIN (
		SELECT employee_id,
		       SUM(normal_hours) AS normal_hours,
		       SUM(overtime_hours) AS overtime_hours,
		       SUM(holiday_hours) AS holiday_hours
		FROM work_entries WHERE strftime('%Y-%m', work_date) = ?
		GROUP BY employee_id
	) w ON e.employee_id = w.employee_id
	LEFT JOIN (
		SELECT employee_id, SUM(amount) AS total
		FROM advance_payments WHERE strftime('%Y-%m', payment_date) = ?
		GROUP BY employee_id
	) a ON e.employee_id = a.employee_id
	LEFT JOIN (
		SELECT employee_id, SUM(amount) AS total
		FROM food_expenses WHERE strftime('%Y-%m', expense_date) = ?
		GROUP BY employee_id
	) f ON e.employee_id = f.employee_id`

// MonthlyTotalsAll aggregates hours and deductions for every employee in the
// given "YYYY-MM" month. Employees with no rows appear with zero totals.
func (s *Store) MonthlyTotalsAll(ctx context.Context, month string) ([]payroll.MonthlyTotals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, monthlyTotalsQuery+` ORDER BY e.full_name, e.employee_id`,
		month, month, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []payroll.MonthlyTotals
	for rows.Next() {
		t, err := scanMonthlyTotals(rows)
		if err != nil {
			return nil, err
		}
		totals = append(totals, *t)
	}
	return totals, rows.Err()
}

// MonthlyTotalsFor aggregates a single employee's month. Returns (nil, nil)
// for an unknown employee.
func (s *Store) MonthlyTotalsFor(ctx context.Context, employeeID, month string) (*payroll.MonthlyTotals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, monthlyTotalsQuery+` WHERE e.employee_id = ?`,
		month, month, month, employeeID)
	t, err := scanMonthlyTotals(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

const earningsQuery = `
	SELECT e.employee_id, e.full_name, e.email, e.phone, e.hourly_rate, e.passport_number,
	       e.bank_name, e.bank_account_name, e.bank_account_number, e.status, e.created_at,
	       COALESCE(w.normal_hours, 0), COALESCE(w.overtime_hours, 0), COALESCE(w.holiday_hours, 0),
	       COALESCE(p.total, 0)
	FROM employees e
	LEFT JOIN (
		SELECT employee_id,
		       SUM(normal_hours) AS normal_hours,
		       SUM(overtime_hours) AS overtime_hours,
		       SUM(holiday_hours) AS holiday_hours
		FROM work_entries GROUP BY employee_id
	) w ON e.employee_id = w.employee_id
	LEFT JOIN (
		SELECT employee_id, SUM(amount_paid) AS total
		FROM payment_records WHERE status = 'paid'
		GROUP BY employee_id
	) p ON e.employee_id = p.employee_id`

// ListEarnings returns the lifetime hour buckets and disbursement total for
// every employee, ordered by name. Only disbursements marked paid count
// against the pending balance.
func (s *Store) ListEarnings(ctx context.Context) ([]payroll.EarningsRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, earningsQuery+` ORDER BY e.full_name, e.employee_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []payroll.EarningsRow
	for rows.Next() {
		r, err := scanEarningsRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *r)
	}
	return result, rows.Err()
}

// GetEarnings returns one employee's lifetime row, or (nil, nil) if unknown.
func (s *Store) GetEarnings(ctx context.Context, employeeID string) (*payroll.EarningsRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, earningsQuery+` WHERE e.employee_id = ?`, employeeID)
	r, err := scanEarningsRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// =============================================================================
// ADMIN CREDENTIALS
// =============================================================================

func (s *Store) GetAdminHash(ctx context.Context, username string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var hash string
	err := s.db.QueryRowContext(ctx,
		`SELECT password_hash FROM admin_accounts WHERE username = ?`, username).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return hash, nil
}

func (s *Store) SetAdminHash(ctx context.Context, username, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`UPDATE admin_accounts SET password_hash = ?, updated_at = ? WHERE username = ?`,
		hash, nowRFC3339(), username)
	if err != nil {
		return err
	}
	return notFoundIfZero(res, payroll.ErrRecordNotFound)
}

// =============================================================================
// HELPERS
// =============================================================================

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (*payroll.Employee, error) {
	var e payroll.Employee
	var rate float64
	var status, createdAt string
	err := row.Scan(&e.EmployeeID, &e.FullName, &e.Email, &e.Phone, &rate,
		&e.PassportNumber, &e.BankName, &e.BankAccount, &e.BankAccountNo, &status, &createdAt)
	if err != nil {
		return nil, err
	}
	e.HourlyRate = decimal.NewFromFloat(rate)
	e.Status = payroll.EmployeeStatus(status)
	e.CreatedAt = parseRFC3339(createdAt)
	return &e, nil
}

func scanWorkEntry(row rowScanner) (*payroll.WorkEntry, error) {
	var w payroll.WorkEntry
	var normal, overtime, holiday float64
	var createdAt string
	err := row.Scan(&w.ID, &w.EmployeeID, &w.WorkDate, &w.StartTime, &w.EndTime,
		&w.BreakMinutes, &normal, &overtime, &holiday, &createdAt)
	if err != nil {
		return nil, err
	}
	w.NormalHours = decimal.NewFromFloat(normal)
	w.OvertimeHours = decimal.NewFromFloat(overtime)
	w.HolidayHours = decimal.NewFromFloat(holiday)
	w.CreatedAt = parseRFC3339(createdAt)
	return &w, nil
}

func scanWorkEntryMaybe(row rowScanner) (*payroll.WorkEntry, error) {
	w, err := scanWorkEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return w, nil
}

func scanMonthlyTotals(row rowScanner) (*payroll.MonthlyTotals, error) {
	var t payroll.MonthlyTotals
	var rate, normal, overtime, holiday, advances, food float64
	err := row.Scan(&t.EmployeeID, &t.FullName, &rate, &normal, &overtime, &holiday, &advances, &food)
	if err != nil {
		return nil, err
	}
	t.HourlyRate = decimal.NewFromFloat(rate)
	t.NormalHours = decimal.NewFromFloat(normal)
	t.OvertimeHours = decimal.NewFromFloat(overtime)
	t.HolidayHours = decimal.NewFromFloat(holiday)
	t.Advances = decimal.NewFromFloat(advances)
	t.FoodExpenses = decimal.NewFromFloat(food)
	return &t, nil
}

func scanEarningsRow(row rowScanner) (*payroll.EarningsRow, error) {
	var r payroll.EarningsRow
	var rate, normal, overtime, holiday, paid float64
	var status, createdAt string
	err := row.Scan(&r.Employee.EmployeeID, &r.Employee.FullName, &r.Employee.Email,
		&r.Employee.Phone, &rate, &r.Employee.PassportNumber, &r.Employee.BankName,
		&r.Employee.BankAccount, &r.Employee.BankAccountNo, &status, &createdAt,
		&normal, &overtime, &holiday, &paid)
	if err != nil {
		return nil, err
	}
	r.Employee.HourlyRate = decimal.NewFromFloat(rate)
	r.Employee.Status = payroll.EmployeeStatus(status)
	r.Employee.CreatedAt = parseRFC3339(createdAt)
	r.Hours = payroll.LifetimeHours{
		NormalHours:   decimal.NewFromFloat(normal),
		OvertimeHours: decimal.NewFromFloat(overtime),
		HolidayHours:  decimal.NewFromFloat(holiday),
	}
	r.Paid = decimal.NewFromFloat(paid)
	return &r, nil
}

func (s *Store) deleteByID(ctx context.Context, table string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return notFoundIfZero(res, payroll.ErrRecordNotFound)
}

// buildFilter assembles an optional WHERE clause from an exact-match column
// and a month-prefix date column.
func buildFilter(idCol, idVal, dateCol, month string) (string, []any) {
	var conds []string
	var args []any
	if idVal != "" {
		conds = append(conds, idCol+" = ?")
		args = append(args, idVal)
	}
	if month != "" {
		conds = append(conds, "strftime('%Y-%m', "+dateCol+") = ?")
		args = append(args, month)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func notFoundIfZero(res sql.Result, sentinel error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sentinel
	}
	return nil
}

func statusOrActive(s payroll.EmployeeStatus) payroll.EmployeeStatus {
	if s == "" {
		return payroll.StatusActive
	}
	return s
}

func isUniqueConstraintError(err error) bool {
	return err != nil && (strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "duplicate key"))
}

func nowRFC3339() string { return time.Now().UTC().Format(time.RFC3339) }

func parseRFC3339(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}
