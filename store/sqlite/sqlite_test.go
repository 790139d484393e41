package sqlite_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/store/sqlite"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func saveEmployee(t *testing.T, store *sqlite.Store, id, name, rate string) {
	t.Helper()
	err := store.SaveEmployee(context.Background(), payroll.Employee{
		EmployeeID: id,
		FullName:   name,
		HourlyRate: dec(rate),
		Status:     payroll.StatusActive,
	})
	require.NoError(t, err)
}

func insertEntry(t *testing.T, store *sqlite.Store, employeeID, date, normal, overtime, holiday string) *payroll.WorkEntry {
	t.Helper()
	entry := &payroll.WorkEntry{
		EmployeeID:    employeeID,
		WorkDate:      date,
		StartTime:     "09:00",
		EndTime:       "18:00",
		BreakMinutes:  60,
		NormalHours:   dec(normal),
		OvertimeHours: dec(overtime),
		HolidayHours:  dec(holiday),
	}
	require.NoError(t, store.InsertWorkEntry(context.Background(), entry))
	return entry
}

// =============================================================================
// EMPLOYEE TESTS
// =============================================================================

func TestStore_EmployeeRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.SaveEmployee(ctx, payroll.Employee{
		EmployeeID:     "E-1",
		FullName:       "Alex Doe",
		Email:          "alex@example.com",
		Phone:          "555-0101",
		HourlyRate:     dec("12.5"),
		PassportNumber: "P1234",
		BankName:       "First Bank",
		BankAccountNo:  "0001",
		Status:         payroll.StatusActive,
	})
	require.NoError(t, err)

	got, err := store.GetEmployee(ctx, "E-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Alex Doe", got.FullName)
	assert.Equal(t, "First Bank", got.BankName)
	assert.True(t, got.HourlyRate.Equal(dec("12.5")), "rate = %s", got.HourlyRate)
	assert.True(t, got.IsActive())
	assert.False(t, got.CreatedAt.IsZero())
}

func TestStore_GetEmployee_MissingReturnsNilNil(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetEmployee(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_DuplicateEmployeeID(t *testing.T) {
	// GIVEN: E-1 exists
	// WHEN: Creating another employee with the same id
	// THEN: ErrDuplicateEmployeeID, surfaced distinctly

	store := newTestStore(t)
	saveEmployee(t, store, "E-1", "Alex Doe", "10")

	err := store.SaveEmployee(context.Background(), payroll.Employee{
		EmployeeID: "E-1",
		FullName:   "Impostor",
		HourlyRate: dec("10"),
	})
	assert.ErrorIs(t, err, payroll.ErrDuplicateEmployeeID)
}

func TestStore_UpdateEmployee_Missing(t *testing.T) {
	store := newTestStore(t)

	err := store.UpdateEmployee(context.Background(), payroll.Employee{
		EmployeeID: "ghost",
		FullName:   "Ghost",
		HourlyRate: dec("1"),
	})
	assert.ErrorIs(t, err, payroll.ErrEmployeeNotFound)
}

func TestStore_CountEmployees(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	saveEmployee(t, store, "E-1", "A", "10")
	saveEmployee(t, store, "E-2", "B", "10")
	require.NoError(t, store.SaveEmployee(ctx, payroll.Employee{
		EmployeeID: "E-3",
		FullName:   "C",
		HourlyRate: dec("10"),
		Status:     payroll.StatusInactive,
	}))

	counts, err := store.CountEmployees(ctx)
	require.NoError(t, err)
	assert.Equal(t, payroll.HeadCount{Total: 3, Active: 2, Inactive: 1}, counts)
}

func TestStore_DeleteEmployee_Cascades(t *testing.T) {
	// GIVEN: An employee with entries, advances, expenses, payments and photos
	// WHEN: Deleting the employee
	// THEN: Every dependent row disappears in the same transaction

	store := newTestStore(t)
	ctx := context.Background()
	saveEmployee(t, store, "E-1", "Alex Doe", "10")

	insertEntry(t, store, "E-1", "2025-03-10", "8", "0", "0")
	require.NoError(t, store.InsertAdvance(ctx, &payroll.AdvancePayment{
		EmployeeID: "E-1", Amount: dec("20"), Date: "2025-03-11",
	}))
	require.NoError(t, store.InsertFoodExpense(ctx, &payroll.FoodExpense{
		EmployeeID: "E-1", Amount: dec("5"), Date: "2025-03-11",
	}))
	require.NoError(t, store.InsertPayment(ctx, &payroll.PaymentRecord{
		EmployeeID: "E-1", AmountPaid: dec("50"), Date: "2025-03-12", Status: payroll.PaymentPaid,
	}))
	require.NoError(t, store.SavePhoto(ctx, &payroll.AttendancePhoto{
		EmployeeID: "E-1", WorkDate: "2025-03-10", Type: payroll.PhotoCheckIn, Data: "aW4=",
	}))

	require.NoError(t, store.DeleteEmployee(ctx, "E-1"))

	emp, err := store.GetEmployee(ctx, "E-1")
	require.NoError(t, err)
	assert.Nil(t, emp)

	entries, err := store.ListWorkEntries(ctx, "E-1", "")
	require.NoError(t, err)
	assert.Empty(t, entries)

	advances, err := store.ListAdvances(ctx, "E-1", "")
	require.NoError(t, err)
	assert.Empty(t, advances)

	expenses, err := store.ListFoodExpenses(ctx, "E-1", "")
	require.NoError(t, err)
	assert.Empty(t, expenses)

	payments, err := store.ListPayments(ctx, "E-1")
	require.NoError(t, err)
	assert.Empty(t, payments)

	photos, err := store.ListPhotos(ctx, "E-1", "")
	require.NoError(t, err)
	assert.Empty(t, photos)
}

func TestStore_DeleteEmployee_Missing(t *testing.T) {
	store := newTestStore(t)
	err := store.DeleteEmployee(context.Background(), "ghost")
	assert.ErrorIs(t, err, payroll.ErrEmployeeNotFound)
}

// =============================================================================
// WORK ENTRY TESTS
// =============================================================================

func TestStore_DuplicateWorkDate(t *testing.T) {
	// GIVEN: An entry for E-1 on 2025-03-10
	// WHEN: Inserting a second entry for the same employee and date
	// THEN: ErrDuplicateWorkDate from the unique index

	store := newTestStore(t)
	saveEmployee(t, store, "E-1", "Alex Doe", "10")
	insertEntry(t, store, "E-1", "2025-03-10", "8", "0", "0")

	err := store.InsertWorkEntry(context.Background(), &payroll.WorkEntry{
		EmployeeID: "E-1",
		WorkDate:   "2025-03-10",
		StartTime:  "10:00",
		EndTime:    "12:00",
	})
	assert.ErrorIs(t, err, payroll.ErrDuplicateWorkDate)
}

func TestStore_ListWorkEntries_MonthFilter(t *testing.T) {
	// GIVEN: Entries in March and April
	// WHEN: Listing with month=2025-03
	// THEN: Only the March entries come back

	store := newTestStore(t)
	saveEmployee(t, store, "E-1", "Alex Doe", "10")
	insertEntry(t, store, "E-1", "2025-03-10", "8", "0", "0")
	insertEntry(t, store, "E-1", "2025-03-11", "8", "0", "0")
	insertEntry(t, store, "E-1", "2025-04-01", "8", "0", "0")

	entries, err := store.ListWorkEntries(context.Background(), "E-1", "2025-03")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, "2025-03", payroll.MonthOf(e.WorkDate))
	}
}

func TestStore_WorkEntryUpdateAndDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	saveEmployee(t, store, "E-1", "Alex Doe", "10")
	entry := insertEntry(t, store, "E-1", "2025-03-10", "8", "0", "0")

	entry.EndTime = "20:00"
	entry.OvertimeHours = dec("2")
	require.NoError(t, store.UpdateWorkEntry(ctx, *entry))

	got, err := store.GetWorkEntryByID(ctx, entry.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "20:00", got.EndTime)
	assert.True(t, got.OvertimeHours.Equal(dec("2")))

	require.NoError(t, store.DeleteWorkEntry(ctx, entry.ID))
	assert.ErrorIs(t, store.DeleteWorkEntry(ctx, entry.ID), payroll.ErrRecordNotFound)
}

func TestStore_UpdateWorkEntry_MovesDate(t *testing.T) {
	// GIVEN: A stored entry
	// WHEN: Updating it with a different work date
	// THEN: The new date is persisted, not just echoed

	store := newTestStore(t)
	ctx := context.Background()
	saveEmployee(t, store, "E-1", "Alex Doe", "10")
	entry := insertEntry(t, store, "E-1", "2025-03-10", "8", "0", "0")

	entry.WorkDate = "2025-03-20"
	require.NoError(t, store.UpdateWorkEntry(ctx, *entry))

	got, err := store.GetWorkEntryByID(ctx, entry.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2025-03-20", got.WorkDate)

	onOldDate, err := store.GetWorkEntry(ctx, "E-1", "2025-03-10")
	require.NoError(t, err)
	assert.Nil(t, onOldDate)
}

func TestStore_UpdateWorkEntry_OccupiedDateConflicts(t *testing.T) {
	// GIVEN: Two entries on different days
	// WHEN: Moving one onto the other's date
	// THEN: The one-entry-per-day index rejects the move

	store := newTestStore(t)
	ctx := context.Background()
	saveEmployee(t, store, "E-1", "Alex Doe", "10")
	insertEntry(t, store, "E-1", "2025-03-10", "8", "0", "0")
	second := insertEntry(t, store, "E-1", "2025-03-11", "8", "0", "0")

	second.WorkDate = "2025-03-10"
	err := store.UpdateWorkEntry(ctx, *second)
	assert.ErrorIs(t, err, payroll.ErrDuplicateWorkDate)
}

// =============================================================================
// AGGREGATE TESTS
// =============================================================================

func TestStore_MonthlyTotals_ZeroActivityEmployee(t *testing.T) {
	// GIVEN: An employee with no entries, advances or expenses
	// WHEN: Aggregating the month
	// THEN: The employee still appears, every figure zero

	store := newTestStore(t)
	saveEmployee(t, store, "E-1", "Alex Doe", "10")

	totals, err := store.MonthlyTotalsAll(context.Background(), "2025-03")
	require.NoError(t, err)
	require.Len(t, totals, 1)

	row := totals[0]
	assert.Equal(t, "E-1", row.EmployeeID)
	assert.True(t, row.NormalHours.IsZero())
	assert.True(t, row.OvertimeHours.IsZero())
	assert.True(t, row.HolidayHours.IsZero())
	assert.True(t, row.Advances.IsZero())
	assert.True(t, row.FoodExpenses.IsZero())
}

func TestStore_MonthlyTotals_SumsWithoutFanOut(t *testing.T) {
	// GIVEN: Two entries, two advances and one expense in the month
	// WHEN: Aggregating
	// THEN: Each column is the plain sum of its own table, uninflated by
	//       the other tables' row counts

	store := newTestStore(t)
	ctx := context.Background()
	saveEmployee(t, store, "E-1", "Alex Doe", "10")

	insertEntry(t, store, "E-1", "2025-03-10", "8", "2", "0")
	insertEntry(t, store, "E-1", "2025-03-11", "0", "0", "8")
	require.NoError(t, store.InsertAdvance(ctx, &payroll.AdvancePayment{
		EmployeeID: "E-1", Amount: dec("20"), Date: "2025-03-12",
	}))
	require.NoError(t, store.InsertAdvance(ctx, &payroll.AdvancePayment{
		EmployeeID: "E-1", Amount: dec("30"), Date: "2025-03-13",
	}))
	require.NoError(t, store.InsertFoodExpense(ctx, &payroll.FoodExpense{
		EmployeeID: "E-1", Amount: dec("10"), Date: "2025-03-14",
	}))

	totals, err := store.MonthlyTotalsFor(ctx, "E-1", "2025-03")
	require.NoError(t, err)
	require.NotNil(t, totals)

	assert.True(t, totals.NormalHours.Equal(dec("8")), "normal = %s", totals.NormalHours)
	assert.True(t, totals.OvertimeHours.Equal(dec("2")), "overtime = %s", totals.OvertimeHours)
	assert.True(t, totals.HolidayHours.Equal(dec("8")), "holiday = %s", totals.HolidayHours)
	assert.True(t, totals.Advances.Equal(dec("50")), "advances = %s", totals.Advances)
	assert.True(t, totals.FoodExpenses.Equal(dec("10")), "food = %s", totals.FoodExpenses)
}

func TestStore_MonthlyTotals_ScopedToMonth(t *testing.T) {
	// GIVEN: Activity in March and April
	// WHEN: Aggregating March
	// THEN: April rows do not leak in

	store := newTestStore(t)
	ctx := context.Background()
	saveEmployee(t, store, "E-1", "Alex Doe", "10")
	insertEntry(t, store, "E-1", "2025-03-10", "8", "0", "0")
	insertEntry(t, store, "E-1", "2025-04-10", "8", "0", "0")
	require.NoError(t, store.InsertAdvance(ctx, &payroll.AdvancePayment{
		EmployeeID: "E-1", Amount: dec("20"), Date: "2025-04-01",
	}))

	totals, err := store.MonthlyTotalsFor(ctx, "E-1", "2025-03")
	require.NoError(t, err)
	require.NotNil(t, totals)
	assert.True(t, totals.NormalHours.Equal(dec("8")))
	assert.True(t, totals.Advances.IsZero())
}

func TestStore_Earnings_LifetimeScope(t *testing.T) {
	// GIVEN: Hours across two months and one disbursement
	// WHEN: Reading the earnings row
	// THEN: Hours sum across all time; paid reflects only "paid" records

	store := newTestStore(t)
	ctx := context.Background()
	saveEmployee(t, store, "E-1", "Alex Doe", "10")
	insertEntry(t, store, "E-1", "2025-03-10", "8", "0", "0")
	insertEntry(t, store, "E-1", "2025-04-10", "8", "2", "0")
	require.NoError(t, store.InsertPayment(ctx, &payroll.PaymentRecord{
		EmployeeID: "E-1", AmountPaid: dec("100"), Date: "2025-04-15", Status: payroll.PaymentPaid,
	}))
	require.NoError(t, store.InsertPayment(ctx, &payroll.PaymentRecord{
		EmployeeID: "E-1", AmountPaid: dec("40"), Date: "2025-04-20", Status: payroll.PaymentPending,
	}))

	row, err := store.GetEarnings(ctx, "E-1")
	require.NoError(t, err)
	require.NotNil(t, row)

	assert.True(t, row.Hours.NormalHours.Equal(dec("16")), "normal = %s", row.Hours.NormalHours)
	assert.True(t, row.Hours.OvertimeHours.Equal(dec("2")))
	assert.True(t, row.Paid.Equal(dec("100")), "paid = %s (pending payments must not count)", row.Paid)
}

// =============================================================================
// PHOTO TESTS
// =============================================================================

func TestStore_PhotoRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	saveEmployee(t, store, "E-1", "Alex Doe", "10")

	photo := &payroll.AttendancePhoto{
		EmployeeID: "E-1",
		WorkDate:   "2025-03-10",
		Type:       payroll.PhotoCheckIn,
		Data:       "aW1hZ2U=",
	}
	require.NoError(t, store.SavePhoto(ctx, photo))
	require.NotZero(t, photo.ID)

	got, err := store.GetPhoto(ctx, photo.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "aW1hZ2U=", got.Data)
	assert.Equal(t, payroll.PhotoCheckIn, got.Type)
}

// =============================================================================
// ADMIN CREDENTIAL TESTS
// =============================================================================

func TestStore_AdminSeededWithDefaultPassword(t *testing.T) {
	// GIVEN: A fresh database
	// WHEN: Reading the seeded admin hash
	// THEN: bcrypt verifies the default password

	store := newTestStore(t)

	hash, err := store.GetAdminHash(context.Background(), sqlite.DefaultAdminUser)
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("admin")))
}

func TestStore_SetAdminHash_Rotates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	newHash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, store.SetAdminHash(ctx, sqlite.DefaultAdminUser, string(newHash)))

	hash, err := store.GetAdminHash(ctx, sqlite.DefaultAdminUser)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("admin")))
}

func TestStore_GetAdminHash_UnknownUser(t *testing.T) {
	store := newTestStore(t)

	hash, err := store.GetAdminHash(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, hash)
}
