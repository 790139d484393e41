/*
shift.go - Shift duration splitter

PURPOSE:
  Converts a clocked shift (start, end, break, holiday flag) into the
  (normal, overtime, holiday) hour triple that feeds the payroll
  calculator.

RULES:
  - total hours = (end - start - break) / 60, same calendar day
  - holiday shift: everything lands in the holiday bucket
  - otherwise: normal = min(total, 8), overtime = max(total - 8, 0)
  - end before start (overnight) is rejected as a validation error;
    so is a break longer than the shift itself

SEE ALSO:
  - attendance.go: invokes the splitter on check-out (holiday always false)
  - calc.go: applies rate multipliers to the buckets
*/
package payroll

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// DefaultBreakMinutes is applied when the caller supplies no break.
	DefaultBreakMinutes = 60

	// NormalDailyHours is the daily threshold above which time is overtime.
	NormalDailyHours = 8

	minutesPerHour = 60
	minutesPerDay  = 24 * 60
)

// Clock is a time of day expressed as minutes since midnight.
type Clock int

// ParseClock parses an "HH:MM" time-of-day string.
func ParseClock(s string) (Clock, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, &ValidationError{Field: "time", Message: fmt.Sprintf("invalid time %q, use HH:MM", s)}
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, &ValidationError{Field: "time", Message: fmt.Sprintf("invalid hour in %q", s)}
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, &ValidationError{Field: "time", Message: fmt.Sprintf("invalid minute in %q", s)}
	}
	return Clock(h*minutesPerHour + m), nil
}

// String formats the clock back to "HH:MM".
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/minutesPerHour, int(c)%minutesPerHour)
}

// ShiftHours is the split result. Exactly one of the following holds:
// holiday shifts have Normal == Overtime == 0; non-holiday shifts have
// Holiday == 0 and Normal + Overtime equal to the total worked hours.
type ShiftHours struct {
	Normal   decimal.Decimal
	Overtime decimal.Decimal
	Holiday  decimal.Decimal
}

// Total returns the sum of all three buckets.
func (s ShiftHours) Total() decimal.Decimal {
	return s.Normal.Add(s.Overtime).Add(s.Holiday)
}

// SplitShift splits a same-day shift into hour buckets.
//
// Overnight shifts (end before start) and breaks that exceed the worked time
// are rejected; the stored entry is never allowed to carry negative hours.
func SplitShift(start, end Clock, breakMinutes int, holiday bool) (ShiftHours, error) {
	if start < 0 || int(start) >= minutesPerDay || end < 0 || int(end) >= minutesPerDay {
		return ShiftHours{}, &ValidationError{Field: "time", Message: "time of day out of range"}
	}
	if breakMinutes < 0 {
		return ShiftHours{}, &ValidationError{Field: "break_minutes", Message: "break minutes must not be negative"}
	}
	if end < start {
		return ShiftHours{}, &ValidationError{Field: "end_time", Message: "end time before start time; overnight shifts are not supported"}
	}

	workedMinutes := int(end) - int(start) - breakMinutes
	if workedMinutes < 0 {
		return ShiftHours{}, &ValidationError{Field: "break_minutes", Message: "break exceeds worked time"}
	}

	total := decimal.NewFromInt(int64(workedMinutes)).Div(decimal.NewFromInt(minutesPerHour))

	if holiday {
		return ShiftHours{
			Normal:   decimal.Zero,
			Overtime: decimal.Zero,
			Holiday:  total,
		}, nil
	}

	threshold := decimal.NewFromInt(NormalDailyHours)
	normal := decimal.Min(total, threshold)
	overtime := decimal.Max(total.Sub(threshold), decimal.Zero)

	return ShiftHours{
		Normal:   normal,
		Overtime: overtime,
		Holiday:  decimal.Zero,
	}, nil
}

// SplitShiftStrings is SplitShift over raw "HH:MM" strings, the form work
// entries are stored in.
func SplitShiftStrings(startTime, endTime string, breakMinutes int, holiday bool) (ShiftHours, error) {
	start, err := ParseClock(startTime)
	if err != nil {
		return ShiftHours{}, err
	}
	end, err := ParseClock(endTime)
	if err != nil {
		return ShiftHours{}, err
	}
	return SplitShift(start, end, breakMinutes, holiday)
}
