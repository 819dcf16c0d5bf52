package gesture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stackgrid/internal/geometry"
	"stackgrid/internal/schedule"
)

type recorder struct {
	calls    []string
	last     geometry.Point
	velocity geometry.Point
}

func (r *recorder) Began(p geometry.Point) {
	r.calls = append(r.calls, "began")
	r.last = p
}

func (r *recorder) Changed(p, v geometry.Point) {
	r.calls = append(r.calls, "changed")
	r.last = p
	r.velocity = v
}

func (r *recorder) Ended(p geometry.Point) {
	r.calls = append(r.calls, "ended")
	r.last = p
}

func (r *recorder) Cancelled() {
	r.calls = append(r.calls, "cancelled")
}

func setup() (*schedule.Manual, *recorder, *LongPress) {
	sched := schedule.NewManual(time.Unix(100, 0))
	rec := &recorder{}
	return sched, rec, NewLongPress(sched, 150*time.Millisecond, rec)
}

func at(sched *schedule.Manual, kind Kind, x, y float64) Event {
	return Event{Kind: kind, Position: geometry.Point{X: x, Y: y}, Time: sched.Now()}
}

func TestTrackerVelocity(t *testing.T) {
	var tr Tracker
	start := time.Unix(0, 0)
	assert.Equal(t, geometry.Point{}, tr.Velocity())

	tr.Add(geometry.Point{X: 0, Y: 0}, start)
	assert.Equal(t, geometry.Point{}, tr.Velocity())

	tr.Add(geometry.Point{X: 10, Y: -5}, start.Add(100*time.Millisecond))
	v := tr.Velocity()
	assert.InDelta(t, 100, v.X, 1e-9)
	assert.InDelta(t, -50, v.Y, 1e-9)
	assert.Equal(t, geometry.Point{X: 10, Y: -5}, tr.Location())

	tr.Add(geometry.Point{X: 20, Y: 0}, start.Add(100*time.Millisecond))
	assert.Equal(t, geometry.Point{}, tr.Velocity())
}

func TestLongPressBeginsAfterDuration(t *testing.T) {
	sched, rec, lp := setup()

	lp.Handle(at(sched, Down, 10, 10))
	assert.Equal(t, Possible, lp.Phase())

	sched.Advance(100 * time.Millisecond)
	assert.Empty(t, rec.calls)

	sched.Advance(50 * time.Millisecond)
	assert.Equal(t, []string{"began"}, rec.calls)
	assert.Equal(t, geometry.Point{X: 10, Y: 10}, rec.last)
	assert.True(t, lp.Active())
}

func TestLongPressSmallJitterStillBegins(t *testing.T) {
	sched, rec, lp := setup()

	lp.Handle(at(sched, Down, 10, 10))
	lp.Handle(at(sched, Move, 14, 13))
	sched.Advance(150 * time.Millisecond)

	assert.Equal(t, []string{"began"}, rec.calls)
	assert.Equal(t, geometry.Point{X: 14, Y: 13}, rec.last)
}

func TestLongPressFailsWhenMovedEarly(t *testing.T) {
	sched, rec, lp := setup()

	lp.Handle(at(sched, Down, 10, 10))
	lp.Handle(at(sched, Move, 40, 10))
	sched.Advance(time.Second)

	assert.Equal(t, Failed, lp.Phase())
	assert.Empty(t, rec.calls)
}

func TestLongPressFailsOnEarlyRelease(t *testing.T) {
	sched, rec, lp := setup()

	lp.Handle(at(sched, Down, 10, 10))
	sched.Advance(50 * time.Millisecond)
	lp.Handle(at(sched, Up, 10, 10))
	sched.Advance(time.Second)

	assert.Equal(t, Failed, lp.Phase())
	assert.Empty(t, rec.calls)
	assert.Equal(t, 0, sched.Pending())
}

func TestLongPressFullGesture(t *testing.T) {
	sched, rec, lp := setup()

	lp.Handle(at(sched, Down, 0, 0))
	sched.Advance(150 * time.Millisecond)
	sched.Advance(10 * time.Millisecond)
	lp.Handle(at(sched, Move, 1, 0))
	sched.Advance(10 * time.Millisecond)
	lp.Handle(at(sched, Move, 3, 0))
	lp.Handle(at(sched, Up, 3, 0))

	assert.Equal(t, []string{"began", "changed", "changed", "ended"}, rec.calls)
	assert.InDelta(t, 200, rec.velocity.X, 1e-6)
	assert.Equal(t, Ended, lp.Phase())

	// a new press starts from scratch
	lp.Handle(at(sched, Down, 50, 50))
	assert.Equal(t, Possible, lp.Phase())
}

func TestLongPressDisableCancelsActiveGesture(t *testing.T) {
	sched, rec, lp := setup()

	lp.Handle(at(sched, Down, 0, 0))
	sched.Advance(200 * time.Millisecond)
	require.True(t, lp.Active())

	lp.SetEnabled(false)
	assert.Equal(t, []string{"began", "cancelled"}, rec.calls)

	lp.Handle(at(sched, Move, 5, 5))
	lp.Handle(at(sched, Down, 5, 5))
	sched.Advance(time.Second)
	assert.Equal(t, []string{"began", "cancelled"}, rec.calls)

	lp.SetEnabled(true)
	lp.Handle(at(sched, Down, 5, 5))
	sched.Advance(time.Second)
	assert.Equal(t, []string{"began", "cancelled", "began"}, rec.calls)
}

func TestLongPressDisableDropsPendingPress(t *testing.T) {
	sched, rec, lp := setup()

	lp.Handle(at(sched, Down, 0, 0))
	lp.SetEnabled(false)
	sched.Advance(time.Second)

	assert.Empty(t, rec.calls)
	assert.Equal(t, Failed, lp.Phase())
}

func TestLongPressCancelEvent(t *testing.T) {
	sched, rec, lp := setup()

	lp.Handle(at(sched, Down, 0, 0))
	sched.Advance(200 * time.Millisecond)
	lp.Handle(at(sched, Cancel, 0, 0))

	assert.Equal(t, []string{"began", "cancelled"}, rec.calls)
	assert.Equal(t, Cancelled, lp.Phase())
}
