/*
calc.go - Payroll calculator

PURPOSE:
  Pure arithmetic over aggregated rows. Given monthly hour buckets,
  deductions and an hourly rate, produce the pay breakdown; given
  lifetime hours and payments, produce the pending balance.

RATES:
  - normal hours:   1.0x hourly rate
  - overtime hours: 1.5x hourly rate
  - holiday hours:  1.5x hourly rate

PENDING BALANCE:
  pending = lifetime earnings - lifetime payments. Lifetime earnings are
  valued with the same 1.5x overtime/holiday multipliers as the monthly
  figures, so the employee dashboard and the admin payments view agree.
  Pending may be negative (overpaid employee).

SEE ALSO:
  - store.go: MonthlyTotals/LifetimeHours come from the aggregate queries
  - api/export.go: report rows round these figures to 2 decimal places
*/
package payroll

import (
	"github.com/shopspring/decimal"
)

// PremiumRate is the multiplier applied to overtime and holiday hours.
var PremiumRate = decimal.NewFromFloat(1.5)

// Compute derives the full pay breakdown from aggregated monthly totals.
// It is a pure function: same inputs always yield the same output.
func Compute(t MonthlyTotals) PayrollSummary {
	normalPay := t.NormalHours.Mul(t.HourlyRate)
	overtimePay := t.OvertimeHours.Mul(t.HourlyRate).Mul(PremiumRate)
	holidayPay := t.HolidayHours.Mul(t.HourlyRate).Mul(PremiumRate)
	earnings := normalPay.Add(overtimePay).Add(holidayPay)

	return PayrollSummary{
		MonthlyTotals: t,
		NormalPay:     normalPay,
		OvertimePay:   overtimePay,
		HolidayPay:    holidayPay,
		TotalEarnings: earnings,
		GrandTotal:    earnings.Sub(t.Advances).Sub(t.FoodExpenses),
	}
}

// ComputeAll derives summaries for a batch of employees, preserving order.
func ComputeAll(totals []MonthlyTotals) []PayrollSummary {
	summaries := make([]PayrollSummary, len(totals))
	for i, t := range totals {
		summaries[i] = Compute(t)
	}
	return summaries
}

// LifetimeEarnings values all-time hour buckets at the employee's rate,
// using the same premium multipliers as the monthly calculation.
func LifetimeEarnings(h LifetimeHours, hourlyRate decimal.Decimal) decimal.Decimal {
	premium := h.OvertimeHours.Add(h.HolidayHours).Mul(hourlyRate).Mul(PremiumRate)
	return h.NormalHours.Mul(hourlyRate).Add(premium)
}

// PendingBalance reconciles lifetime earnings against total disbursements.
// Negative means the employee has been overpaid.
func PendingBalance(earned, paid decimal.Decimal) decimal.Decimal {
	return earned.Sub(paid)
}

// Outlook builds the earned/paid/pending reconciliation for one employee.
func Outlook(row EarningsRow) PaymentOutlook {
	earned := LifetimeEarnings(row.Hours, row.Employee.HourlyRate)
	return PaymentOutlook{
		EmployeeID:    row.Employee.EmployeeID,
		FullName:      row.Employee.FullName,
		HourlyRate:    row.Employee.HourlyRate,
		BankName:      row.Employee.BankName,
		BankAccountNo: row.Employee.BankAccountNo,
		TotalEarned:   earned,
		TotalPaid:     row.Paid,
		Pending:       PendingBalance(earned, row.Paid),
	}
}
