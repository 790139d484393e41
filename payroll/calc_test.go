package payroll_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// MONTHLY PAY BREAKDOWN TESTS
// =============================================================================

func TestCompute_FullBreakdown(t *testing.T) {
	// GIVEN: Rate 10, 8 normal + 2 overtime hours, 20 advance, 10 food
	// WHEN: Computing the monthly summary
	// THEN: 80 normal pay + 30 overtime pay = 110 earnings, 80 grand total

	s := payroll.Compute(payroll.MonthlyTotals{
		EmployeeID:    "E-1",
		HourlyRate:    dec("10"),
		NormalHours:   dec("8"),
		OvertimeHours: dec("2"),
		Advances:      dec("20"),
		FoodExpenses:  dec("10"),
	})

	assert.True(t, s.NormalPay.Equal(dec("80")), "normal pay = %s", s.NormalPay)
	assert.True(t, s.OvertimePay.Equal(dec("30")), "overtime pay = %s", s.OvertimePay)
	assert.True(t, s.HolidayPay.IsZero())
	assert.True(t, s.TotalEarnings.Equal(dec("110")), "earnings = %s", s.TotalEarnings)
	assert.True(t, s.GrandTotal.Equal(dec("80")), "grand total = %s", s.GrandTotal)
}

func TestCompute_HolidayPremium(t *testing.T) {
	// GIVEN: Rate 10 and 8 holiday hours
	// WHEN: Computing
	// THEN: Holiday pay at 1.5x = 120

	s := payroll.Compute(payroll.MonthlyTotals{
		HourlyRate:   dec("10"),
		HolidayHours: dec("8"),
	})

	assert.True(t, s.HolidayPay.Equal(dec("120")), "holiday pay = %s", s.HolidayPay)
	assert.True(t, s.TotalEarnings.Equal(dec("120")))
}

func TestCompute_ZeroTotals(t *testing.T) {
	// GIVEN: An employee with no activity this month
	// WHEN: Computing
	// THEN: Every figure is zero, never null or negative

	s := payroll.Compute(payroll.MonthlyTotals{HourlyRate: dec("15")})

	assert.True(t, s.TotalEarnings.IsZero())
	assert.True(t, s.GrandTotal.IsZero())
}

func TestCompute_DeductionsCanExceedEarnings(t *testing.T) {
	// GIVEN: 1 normal hour at rate 10, but a 50 advance
	// WHEN: Computing
	// THEN: Grand total goes negative; deductions are never clamped

	s := payroll.Compute(payroll.MonthlyTotals{
		HourlyRate:  dec("10"),
		NormalHours: dec("1"),
		Advances:    dec("50"),
	})

	assert.True(t, s.GrandTotal.Equal(dec("-40")), "grand total = %s", s.GrandTotal)
}

func TestCompute_Idempotent(t *testing.T) {
	// Same inputs, same outputs. The calculator holds no state.
	in := payroll.MonthlyTotals{
		HourlyRate:    dec("12.5"),
		NormalHours:   dec("160"),
		OvertimeHours: dec("12"),
		HolidayHours:  dec("8"),
		Advances:      dec("300"),
		FoodExpenses:  dec("45.5"),
	}

	first := payroll.Compute(in)
	second := payroll.Compute(in)

	assert.True(t, first.GrandTotal.Equal(second.GrandTotal))
	assert.True(t, first.TotalEarnings.Equal(second.TotalEarnings))
}

func TestComputeAll_PreservesOrder(t *testing.T) {
	totals := []payroll.MonthlyTotals{
		{EmployeeID: "E-1", HourlyRate: dec("10"), NormalHours: dec("1")},
		{EmployeeID: "E-2", HourlyRate: dec("20"), NormalHours: dec("1")},
	}

	summaries := payroll.ComputeAll(totals)

	assert.Len(t, summaries, 2)
	assert.Equal(t, "E-1", summaries[0].EmployeeID)
	assert.Equal(t, "E-2", summaries[1].EmployeeID)
	assert.True(t, summaries[1].TotalEarnings.Equal(dec("20")))
}

// =============================================================================
// PENDING BALANCE TESTS
// =============================================================================

func TestLifetimeEarnings_PremiumMultipliers(t *testing.T) {
	// GIVEN: 100 normal, 10 overtime, 6 holiday hours at rate 10
	// WHEN: Valuing lifetime hours
	// THEN: 1000 + (16 * 10 * 1.5) = 1240

	earned := payroll.LifetimeEarnings(payroll.LifetimeHours{
		NormalHours:   dec("100"),
		OvertimeHours: dec("10"),
		HolidayHours:  dec("6"),
	}, dec("10"))

	assert.True(t, earned.Equal(dec("1240")), "earned = %s", earned)
}

func TestPendingBalance_MayGoNegative(t *testing.T) {
	// GIVEN: 100 earned, 150 already paid
	// WHEN: Reconciling
	// THEN: Pending is -50 (overpaid), not clamped to zero

	pending := payroll.PendingBalance(dec("100"), dec("150"))
	assert.True(t, pending.Equal(dec("-50")), "pending = %s", pending)
}

func TestOutlook_ReconcilesEarningsRow(t *testing.T) {
	// GIVEN: An employee with lifetime hours and prior disbursements
	// WHEN: Building the payments-view row
	// THEN: earned, paid and pending line up

	row := payroll.EarningsRow{
		Employee: payroll.Employee{
			EmployeeID: "E-7",
			FullName:   "Dana Smith",
			HourlyRate: dec("10"),
			BankName:   "First Bank",
		},
		Hours: payroll.LifetimeHours{NormalHours: dec("100")},
		Paid:  dec("400"),
	}

	outlook := payroll.Outlook(row)

	assert.Equal(t, "E-7", outlook.EmployeeID)
	assert.Equal(t, "First Bank", outlook.BankName)
	assert.True(t, outlook.TotalEarned.Equal(dec("1000")))
	assert.True(t, outlook.TotalPaid.Equal(dec("400")))
	assert.True(t, outlook.Pending.Equal(dec("600")))
}

func TestPremiumRate_Is150Percent(t *testing.T) {
	assert.True(t, payroll.PremiumRate.Equal(decimal.NewFromFloat(1.5)))
}
