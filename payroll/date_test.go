package payroll_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-engine/payroll"
)

func TestParseDate(t *testing.T) {
	date, err := payroll.ParseDate("2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", date)

	for _, bad := range []string{"", "2025-3-10", "10/03/2025", "2025-13-01"} {
		_, err := payroll.ParseDate(bad)
		assert.True(t, payroll.IsValidation(err), "ParseDate(%q) should fail", bad)
	}
}

func TestParseMonth(t *testing.T) {
	month, err := payroll.ParseMonth("2025-03")
	require.NoError(t, err)
	assert.Equal(t, "2025-03", month)

	_, err = payroll.ParseMonth("2025-3")
	assert.True(t, payroll.IsValidation(err))
}

func TestMonthOf(t *testing.T) {
	// GIVEN: A normalized date
	// WHEN: Taking its month prefix
	// THEN: It matches the month the aggregate queries scope on

	assert.Equal(t, "2025-03", payroll.MonthOf("2025-03-10"))
	assert.Equal(t, "2025-12", payroll.MonthOf("2025-12-31"))

	// Short input passes through untouched.
	assert.Equal(t, "2025", payroll.MonthOf("2025"))
}

func TestCurrentMonth_IsMonthOfToday(t *testing.T) {
	assert.Equal(t, payroll.MonthOf(payroll.Today()), payroll.CurrentMonth())
	assert.Equal(t, time.Now().Format(payroll.MonthLayout), payroll.CurrentMonth())
}
