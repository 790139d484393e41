package payroll_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

// fakeClock is a mutable wall clock for driving same-day transitions.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) set(hour, minute int) {
	c.t = time.Date(c.t.Year(), c.t.Month(), c.t.Day(), hour, minute, 0, 0, time.UTC)
}

func newTestTracker(t *testing.T) (*payroll.Tracker, *sqlite.Store, *fakeClock) {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	clock := &fakeClock{t: time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)}
	tracker := payroll.NewTrackerWithClock(store, clock.now)

	require.NoError(t, store.SaveEmployee(context.Background(), payroll.Employee{
		EmployeeID: "E-1",
		FullName:   "Alex Doe",
		HourlyRate: dec("10"),
		Status:     payroll.StatusActive,
	}))

	return tracker, store, clock
}

// =============================================================================
// TRANSITION TESTS
// =============================================================================

func TestTracker_CheckInOpensEntry(t *testing.T) {
	// GIVEN: No entry for today
	// WHEN: Checking in at 09:00
	// THEN: An open entry exists with zero hour buckets and the default break

	tracker, _, _ := newTestTracker(t)
	ctx := context.Background()

	entry, err := tracker.CheckIn(ctx, "E-1", "")
	require.NoError(t, err)

	assert.Equal(t, "2025-03-10", entry.WorkDate)
	assert.Equal(t, "09:00", entry.StartTime)
	assert.True(t, entry.Open(), "entry should be open after check-in")
	assert.Equal(t, payroll.DefaultBreakMinutes, entry.BreakMinutes)
	assert.True(t, entry.NormalHours.IsZero())

	state, _, err := tracker.Status(ctx, "E-1", "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, payroll.StateCheckedIn, state)
}

func TestTracker_DoubleCheckInRejected(t *testing.T) {
	// GIVEN: An open entry for today
	// WHEN: Checking in again
	// THEN: ErrAlreadyCheckedIn

	tracker, _, _ := newTestTracker(t)
	ctx := context.Background()

	_, err := tracker.CheckIn(ctx, "E-1", "")
	require.NoError(t, err)

	_, err = tracker.CheckIn(ctx, "E-1", "")
	assert.ErrorIs(t, err, payroll.ErrAlreadyCheckedIn)
}

func TestTracker_CheckOutClosesAndSplits(t *testing.T) {
	// GIVEN: Checked in at 09:00
	// WHEN: Checking out at 18:00 (default 60 minute break)
	// THEN: Entry closes with 8 normal hours

	tracker, store, clock := newTestTracker(t)
	ctx := context.Background()

	_, err := tracker.CheckIn(ctx, "E-1", "")
	require.NoError(t, err)

	clock.set(18, 0)
	entry, err := tracker.CheckOut(ctx, "E-1", "")
	require.NoError(t, err)

	assert.Equal(t, "18:00", entry.EndTime)
	assert.False(t, entry.Open())
	assert.True(t, entry.NormalHours.Equal(dec("8")), "normal = %s", entry.NormalHours)
	assert.True(t, entry.OvertimeHours.IsZero())
	assert.True(t, entry.HolidayHours.IsZero(), "selfie check-out never books holiday time")

	// Persisted, not just returned
	stored, err := store.GetWorkEntry(ctx, "E-1", "2025-03-10")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.NormalHours.Equal(dec("8")))
}

func TestTracker_CheckOutWithOvertime(t *testing.T) {
	// GIVEN: Checked in at 09:00
	// WHEN: Checking out at 20:00
	// THEN: 8 normal + 2 overtime

	tracker, _, clock := newTestTracker(t)
	ctx := context.Background()

	_, err := tracker.CheckIn(ctx, "E-1", "")
	require.NoError(t, err)

	clock.set(20, 0)
	entry, err := tracker.CheckOut(ctx, "E-1", "")
	require.NoError(t, err)

	assert.True(t, entry.NormalHours.Equal(dec("8")))
	assert.True(t, entry.OvertimeHours.Equal(dec("2")))
}

func TestTracker_CheckOutBeforeCheckInRejected(t *testing.T) {
	// GIVEN: No entry for today
	// WHEN: Checking out
	// THEN: ErrNotCheckedInYet

	tracker, _, _ := newTestTracker(t)

	_, err := tracker.CheckOut(context.Background(), "E-1", "")
	assert.ErrorIs(t, err, payroll.ErrNotCheckedInYet)
}

func TestTracker_DoubleCheckOutRejected(t *testing.T) {
	// GIVEN: A closed entry for today
	// WHEN: Checking out again
	// THEN: ErrAlreadyCheckedOut; check-out is terminal for the day

	tracker, _, clock := newTestTracker(t)
	ctx := context.Background()

	_, err := tracker.CheckIn(ctx, "E-1", "")
	require.NoError(t, err)

	clock.set(18, 0)
	_, err = tracker.CheckOut(ctx, "E-1", "")
	require.NoError(t, err)

	clock.set(19, 0)
	_, err = tracker.CheckOut(ctx, "E-1", "")
	assert.ErrorIs(t, err, payroll.ErrAlreadyCheckedOut)
}

func TestTracker_CheckInAfterCheckOutRejected(t *testing.T) {
	// GIVEN: A closed entry for today
	// WHEN: Checking in again the same day
	// THEN: ErrAlreadyCheckedIn; one entry per employee per day

	tracker, _, clock := newTestTracker(t)
	ctx := context.Background()

	_, err := tracker.CheckIn(ctx, "E-1", "")
	require.NoError(t, err)
	clock.set(18, 0)
	_, err = tracker.CheckOut(ctx, "E-1", "")
	require.NoError(t, err)

	clock.set(19, 0)
	_, err = tracker.CheckIn(ctx, "E-1", "")
	assert.ErrorIs(t, err, payroll.ErrAlreadyCheckedIn)
}

func TestTracker_ShortShiftClampsBreak(t *testing.T) {
	// GIVEN: Checked in at 09:00
	// WHEN: Checking out at 09:30, less than the 60 minute default break
	// THEN: Check-out succeeds with zero hours instead of failing validation

	tracker, _, clock := newTestTracker(t)
	ctx := context.Background()

	_, err := tracker.CheckIn(ctx, "E-1", "")
	require.NoError(t, err)

	clock.set(9, 30)
	entry, err := tracker.CheckOut(ctx, "E-1", "")
	require.NoError(t, err)

	assert.False(t, entry.Open())
	assert.True(t, entry.NormalHours.IsZero())
	assert.Equal(t, 30, entry.BreakMinutes, "break clamps to the worked duration")
}

func TestTracker_SameMinuteCheckOutStillCloses(t *testing.T) {
	// GIVEN: Checked in at 09:00
	// WHEN: Checking out in the same minute
	// THEN: The entry closes on 09:01 rather than staying on the open sentinel

	tracker, _, _ := newTestTracker(t)
	ctx := context.Background()

	_, err := tracker.CheckIn(ctx, "E-1", "")
	require.NoError(t, err)

	entry, err := tracker.CheckOut(ctx, "E-1", "")
	require.NoError(t, err)

	assert.Equal(t, "09:01", entry.EndTime)
	assert.False(t, entry.Open())
	assert.True(t, entry.NormalHours.IsZero())

	state, stored, err := tracker.Status(ctx, "E-1", "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, payroll.StateCheckedOut, state)
	require.NotNil(t, stored)
	assert.Equal(t, "09:01", stored.EndTime)

	_, err = tracker.CheckOut(ctx, "E-1", "")
	assert.ErrorIs(t, err, payroll.ErrAlreadyCheckedOut)
}

func TestTracker_PhotosStoredOnTransitions(t *testing.T) {
	// GIVEN: Check-in and check-out each carrying a selfie
	// WHEN: Running both transitions
	// THEN: Two photos exist for (employee, date), typed check_in/check_out

	tracker, store, clock := newTestTracker(t)
	ctx := context.Background()

	_, err := tracker.CheckIn(ctx, "E-1", "aW4=")
	require.NoError(t, err)
	clock.set(18, 0)
	_, err = tracker.CheckOut(ctx, "E-1", "b3V0")
	require.NoError(t, err)

	photos, err := store.ListPhotos(ctx, "E-1", "2025-03-10")
	require.NoError(t, err)
	require.Len(t, photos, 2)

	types := map[payroll.PhotoType]string{}
	for _, p := range photos {
		types[p.Type] = p.Data
	}
	assert.Equal(t, "aW4=", types[payroll.PhotoCheckIn])
	assert.Equal(t, "b3V0", types[payroll.PhotoCheckOut])
}

func TestTracker_IndependentDays(t *testing.T) {
	// GIVEN: A closed entry yesterday
	// WHEN: Checking in today
	// THEN: Allowed; the state machine is scoped per calendar day

	tracker, _, clock := newTestTracker(t)
	ctx := context.Background()

	_, err := tracker.CheckIn(ctx, "E-1", "")
	require.NoError(t, err)
	clock.set(18, 0)
	_, err = tracker.CheckOut(ctx, "E-1", "")
	require.NoError(t, err)

	clock.t = clock.t.AddDate(0, 0, 1)
	clock.set(9, 0)
	entry, err := tracker.CheckIn(ctx, "E-1", "")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-11", entry.WorkDate)
}

func TestStateOf(t *testing.T) {
	assert.Equal(t, payroll.StateNoEntry, payroll.StateOf(nil))
	assert.Equal(t, payroll.StateCheckedIn, payroll.StateOf(&payroll.WorkEntry{StartTime: "09:00", EndTime: "09:00"}))
	assert.Equal(t, payroll.StateCheckedOut, payroll.StateOf(&payroll.WorkEntry{StartTime: "09:00", EndTime: "17:00"}))
}
