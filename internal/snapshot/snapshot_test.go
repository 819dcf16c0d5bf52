package snapshot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stackgrid/internal/geometry"
	"stackgrid/internal/transition"
)

type view struct{ name string }

func (view) SetAlpha(float64) {}
func (view) SetScale(float64) {}

func newTestSnapshot() *Snapshot {
	s := New(geometry.Point{X: 50, Y: 50})
	s.Set(SlotDrag, view{"drag"}, geometry.Size{Width: 110, Height: 110})
	s.Set(SlotStack, view{"stack"}, geometry.Size{Width: 80, Height: 80})
	s.Set(SlotNormal, view{"normal"}, geometry.Size{Width: 100, Height: 100})
	return s
}

func TestShowSwitchesActiveSlot(t *testing.T) {
	s := newTestSnapshot()
	now := time.Now()

	s.ShowDrag()
	f := s.Frame(now)
	assert.Equal(t, transition.Drag, s.State())
	assert.Equal(t, view{"drag"}, f.Active().View)
	for _, sl := range f.Slots {
		assert.Equal(t, geometry.Size{Width: 110, Height: 110}, sl.Size)
	}

	s.ShowStack()
	f = s.Frame(now)
	assert.Equal(t, transition.StackDrag, s.State())
	assert.Equal(t, view{"stack"}, f.Active().View)
	assert.Equal(t, 0.0, f.Slots[SlotDrag].Alpha)
	assert.Equal(t, geometry.Size{Width: 80, Height: 80}, f.Slots[SlotNormal].Size)

	s.ShowNormal()
	assert.Equal(t, transition.Normal, s.State())
}

func TestShowWithMissingSlotKeepsState(t *testing.T) {
	s := New(geometry.Point{})
	s.Set(SlotNormal, view{"normal"}, geometry.Size{Width: 10, Height: 10})
	s.ShowNormal()
	s.ShowStack()
	assert.Equal(t, transition.Normal, s.State())
}

func TestShowVanished(t *testing.T) {
	s := newTestSnapshot()
	s.ShowDrag()
	s.ShowVanished()
	for _, sl := range s.Frame(time.Now()).Slots {
		assert.True(t, sl.Size.IsZero())
	}
}

func TestAnimateInterpolates(t *testing.T) {
	s := newTestSnapshot()
	s.ShowNormal()
	start := time.Unix(1000, 0)

	s.Animate(100*time.Millisecond, start, func() {
		s.SetCenter(geometry.Point{X: 150, Y: 50})
		s.ShowDrag()
	})

	require.True(t, s.Animating(start.Add(50*time.Millisecond)))
	mid := s.Frame(start.Add(50 * time.Millisecond))
	assert.InDelta(t, 100, mid.Center.X, 1e-9)
	assert.InDelta(t, 105, mid.Slots[SlotDrag].Size.Width, 1e-9)
	assert.InDelta(t, 0.5, mid.Slots[SlotDrag].Alpha, 1e-9)

	end := s.Frame(start.Add(200 * time.Millisecond))
	assert.Equal(t, geometry.Point{X: 150, Y: 50}, end.Center)
	assert.False(t, s.Animating(start.Add(200*time.Millisecond)))
}

func TestAnimateZeroDurationIsImmediate(t *testing.T) {
	s := newTestSnapshot()
	now := time.Unix(0, 0)
	s.Animate(0, now, func() { s.SetCenter(geometry.Point{X: 1, Y: 2}) })
	assert.False(t, s.Animating(now))
	assert.Equal(t, geometry.Point{X: 1, Y: 2}, s.Frame(now).Center)
}

func TestRefreshReappliesState(t *testing.T) {
	s := newTestSnapshot()
	s.ShowStack()
	s.Set(SlotStack, view{"stack2"}, geometry.Size{Width: 70, Height: 70})
	s.Refresh()
	f := s.Frame(time.Now())
	assert.Equal(t, view{"stack2"}, f.Active().View)
	assert.Equal(t, geometry.Size{Width: 70, Height: 70}, f.Slots[SlotDrag].Size)
}
