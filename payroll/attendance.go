/*
attendance.go - Per-day check-in/check-out state machine

PURPOSE:
  Drives the attendance transitions for one employee and calendar day:

    NoEntry -> CheckedIn -> CheckedOut (terminal for the day)

  CheckedIn is signalled by end_time == start_time (the "open" sentinel);
  check-out rewrites end_time and populates the hour buckets via the
  shift splitter. No further same-day transition is permitted.

KNOWN RACE:
  Two concurrent check-ins for the same employee are not serialized here;
  the transition is read-check-then-insert. The storage layer's unique
  (employee_id, work_date) index turns the losing insert into
  ErrDuplicateWorkDate. Acceptable for single-actor-per-employee usage.

SEE ALSO:
  - shift.go: bucket computation on check-out
  - store.go: persistence interface
*/
package payroll

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// AttendanceState is the per-day state of one employee.
type AttendanceState string

const (
	StateNoEntry    AttendanceState = "no_entry"
	StateCheckedIn  AttendanceState = "checked_in"
	StateCheckedOut AttendanceState = "checked_out"
)

// StateOf derives the attendance state from a (possibly missing) entry.
func StateOf(entry *WorkEntry) AttendanceState {
	switch {
	case entry == nil:
		return StateNoEntry
	case entry.Open():
		return StateCheckedIn
	default:
		return StateCheckedOut
	}
}

// Tracker executes attendance transitions against a Store.
type Tracker struct {
	store Store

	// now is swappable for tests.
	now func() time.Time
}

// NewTracker creates a tracker using the wall clock.
func NewTracker(store Store) *Tracker {
	return &Tracker{store: store, now: time.Now}
}

// NewTrackerWithClock creates a tracker with a custom clock source.
func NewTrackerWithClock(store Store, now func() time.Time) *Tracker {
	return &Tracker{store: store, now: now}
}

// Status returns today's state and entry for an employee.
func (t *Tracker) Status(ctx context.Context, employeeID, date string) (AttendanceState, *WorkEntry, error) {
	entry, err := t.store.GetWorkEntry(ctx, employeeID, date)
	if err != nil {
		return StateNoEntry, nil, err
	}
	return StateOf(entry), entry, nil
}

// CheckIn opens today's work entry. Fails with ErrAlreadyCheckedIn when a
// same-day entry exists in any state. The optional photo is write-once
// evidence; an empty payload attaches nothing and never blocks the
// transition.
func (t *Tracker) CheckIn(ctx context.Context, employeeID, photo string) (*WorkEntry, error) {
	now := t.now()
	date := now.Format(DateLayout)
	clock := now.Format("15:04")

	existing, err := t.store.GetWorkEntry(ctx, employeeID, date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyCheckedIn
	}

	entry := &WorkEntry{
		EmployeeID:    employeeID,
		WorkDate:      date,
		StartTime:     clock,
		EndTime:       clock, // open sentinel
		BreakMinutes:  DefaultBreakMinutes,
		NormalHours:   decimal.Zero,
		OvertimeHours: decimal.Zero,
		HolidayHours:  decimal.Zero,
	}
	if err := t.store.InsertWorkEntry(ctx, entry); err != nil {
		if errors.Is(err, ErrDuplicateWorkDate) {
			return nil, ErrAlreadyCheckedIn
		}
		return nil, err
	}

	if photo != "" {
		err := t.store.SavePhoto(ctx, &AttendancePhoto{
			EmployeeID: employeeID,
			WorkDate:   date,
			Type:       PhotoCheckIn,
			Data:       photo,
		})
		if err != nil {
			return nil, err
		}
	}

	return entry, nil
}

// CheckOut closes today's entry and populates the hour buckets. Selfie-based
// check-out never classifies holiday time; only administrative manual entry
// can set the holiday flag.
func (t *Tracker) CheckOut(ctx context.Context, employeeID, photo string) (*WorkEntry, error) {
	now := t.now()
	date := now.Format(DateLayout)
	clock := now.Format("15:04")

	entry, err := t.store.GetWorkEntry(ctx, employeeID, date)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrNotCheckedInYet
	}
	if !entry.Open() {
		return nil, ErrAlreadyCheckedOut
	}

	start, err := ParseClock(entry.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := ParseClock(clock)
	if err != nil {
		return nil, err
	}

	// End equal to start is the open sentinel; a same-minute check-out
	// closes on the next minute so the day cannot linger as checked in.
	if end == start {
		end++
		clock = end.String()
	}

	// A short shift can be smaller than the scheduled break; clamp the break
	// so the day closes with zero hours instead of refusing the check-out.
	breakMinutes := entry.BreakMinutes
	if worked := int(end) - int(start); worked < breakMinutes {
		breakMinutes = worked
	}

	hours, err := SplitShift(start, end, breakMinutes, false)
	if err != nil {
		return nil, err
	}

	entry.EndTime = clock
	entry.BreakMinutes = breakMinutes
	entry.NormalHours = hours.Normal
	entry.OvertimeHours = hours.Overtime
	entry.HolidayHours = hours.Holiday
	if err := t.store.UpdateWorkEntry(ctx, *entry); err != nil {
		return nil, err
	}

	if photo != "" {
		err := t.store.SavePhoto(ctx, &AttendancePhoto{
			EmployeeID: employeeID,
			WorkDate:   date,
			Type:       PhotoCheckOut,
			Data:       photo,
		})
		if err != nil {
			return nil, err
		}
	}

	return entry, nil
}
