package stacking

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"stackgrid/internal/autoscroll"
	"stackgrid/internal/geometry"
	"stackgrid/internal/gesture"
	"stackgrid/internal/schedule"
	"stackgrid/internal/snapshot"
	"stackgrid/internal/transition"
)

// Layout is the drag-to-reorder-and-stack engine. It turns a pointer
// stream into reorder and merge requests on its DataSource and keeps the
// floating snapshot, the cell transitions and auto-scrolling in step.
//
// A Layout is not safe for concurrent use. Every method, and every
// callback the Scheduler runs, must be called from the owner's event loop.
type Layout struct {
	cfg      Config
	data     DataSource
	delegate Delegate
	logger   *log.Logger
	sched    schedule.Scheduler

	container  Container
	recognizer *gesture.LongPress
	scroll     *autoscroll.Driver

	state    state
	snap     *snapshot.Snapshot
	velocity geometry.Point
}

// Option configures a Layout
type Option func(*Layout)

// WithConfig replaces the default configuration
func WithConfig(cfg Config) Option {
	return func(l *Layout) { l.cfg = cfg }
}

// WithLogger sets the logger used for debug tracing
func WithLogger(logger *log.Logger) Option {
	return func(l *Layout) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithDataSource sets the owner of the item sequence
func WithDataSource(ds DataSource) Option {
	return func(l *Layout) {
		if ds != nil {
			l.data = ds
		}
	}
}

// WithDelegate sets the lifecycle observer
func WithDelegate(d Delegate) Option {
	return func(l *Layout) {
		if d != nil {
			l.delegate = d
		}
	}
}

// New creates a detached Layout whose timers and animations run on sched
func New(sched schedule.Scheduler, opts ...Option) *Layout {
	l := &Layout{
		cfg:      DefaultConfig(),
		data:     DefaultDataSource{},
		delegate: NopDelegate{},
		logger:   log.New(io.Discard),
		sched:    sched,
		state:    idleState{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Config returns the active configuration
func (l *Layout) Config() Config {
	return l.cfg
}

// SetConfig replaces the configuration. Values take effect on the next
// attach for the recognizer and auto-scroll tick, immediately otherwise.
func (l *Layout) SetConfig(cfg Config) {
	l.cfg = cfg
	if l.recognizer != nil {
		l.recognizer.Duration = cfg.LongPressDuration
	}
}

// Attach binds the layout to a container and installs the long-press
// recognizer. Attaching to a new container detaches the old one first.
func (l *Layout) Attach(c Container) {
	if c == nil {
		return
	}
	if l.container != nil {
		l.Detach()
	}
	l.container = c
	l.recognizer = gesture.NewLongPress(l.sched, l.cfg.LongPressDuration, recognizerHandler{l})
	l.scroll = autoscroll.NewDriver(l.sched, c, l.cfg.ScrollTick, l.autoScrolled)
	l.scroll.SetLogger(l.logger)
	l.logger.Debug("layout attached")
}

// Detach cancels any drag, stops auto-scrolling and releases the
// container. A settle animation in flight completes without notifying.
func (l *Layout) Detach() {
	if l.container == nil {
		return
	}
	l.CancelDrag()
	if _, ok := l.state.(settlingState); ok {
		l.state = idleState{}
		l.snap = nil
	}
	l.scroll.Stop()
	l.scroll = nil
	l.recognizer = nil
	l.container = nil
	l.logger.Debug("layout detached")
}

// Attached reports whether a container is bound
func (l *Layout) Attached() bool {
	return l.container != nil
}

// Phase returns the current state
func (l *Layout) Phase() Phase {
	return l.state.phase()
}

// Session returns a copy of the active session, including one that is
// settling
func (l *Layout) Session() (Session, bool) {
	var s *session
	switch st := l.state.(type) {
	case draggingState:
		s = st.s
	case hoveringState:
		s = st.s
	case settlingState:
		s = st.s
	default:
		return Session{}, false
	}
	out := Session{
		ID:                 s.id,
		Source:             s.source,
		Destination:        s.destination,
		StackTarget:        stackTarget(l.state),
		Pointer:            s.pointer,
		MovedOutsideRadius: s.moved,
	}
	if s.origin != nil {
		out.Origin = *s.origin
	}
	return out, true
}

// Snapshot returns the floating snapshot, or nil when no drag is shown
func (l *Layout) Snapshot() *snapshot.Snapshot {
	return l.snap
}

// IsHidden reports whether the cell at index must be left out of normal
// rendering because the snapshot stands in for it
func (l *Layout) IsHidden(index int) bool {
	s, ok := live(l.state)
	return ok && s.destination == index
}

// Recognizer returns the installed long-press recognizer, or nil when
// detached
func (l *Layout) Recognizer() *gesture.LongPress {
	return l.recognizer
}

// ScrollRequest returns the active auto-scroll request, or nil
func (l *Layout) ScrollRequest() *autoscroll.Request {
	if l.scroll == nil {
		return nil
	}
	return l.scroll.Request()
}

// HandlePointer feeds a raw pointer event through the long-press
// recognizer, which drives BeginDrag, Move, EndDrag and CancelDrag
func (l *Layout) HandlePointer(ev gesture.Event) {
	if l.recognizer == nil {
		return
	}
	l.recognizer.Handle(ev)
}

// Interrupt aborts the gesture in progress, as on focus loss
func (l *Layout) Interrupt() {
	if l.recognizer != nil {
		l.recognizer.Cancel()
	}
	l.CancelDrag()
}

// BeginDrag picks up the item at index with the pointer at p. It reports
// whether a drag started; every failed precondition is a silent no-op.
func (l *Layout) BeginDrag(p geometry.Point, index int) bool {
	c := l.container
	if c == nil || l.state.phase() != Idle {
		return false
	}
	if !l.data.CanSelect(index) {
		return false
	}
	cell, ok := c.Cell(index)
	if !ok {
		return false
	}
	frame, ok := c.FrameOf(index)
	if !ok {
		return false
	}

	s := &session{id: uuid.New(), source: index, destination: index}
	l.state = draggingState{s: s}
	l.velocity = geometry.Point{}
	l.updatePointer(s, p)

	l.delegate.WillBeginDragging(index)

	l.snap = snapshot.New(frame.Center())
	l.captureSnapshot(index, cell)

	l.delegate.DidBeginDragging(index)

	d := l.duration(index, transition.Normal, transition.Drag)
	l.snap.Animate(d, l.sched.Now(), func() {
		l.snap.SetCenter(p)
		l.snap.ShowDrag()
	})
	l.sched.After(d, c.Feedback)

	c.InvalidateLayout()
	l.logger.Debug("drag began", "session", s.id, "index", index)
	return true
}

// Move handles a pointer update during a drag. velocity is the pointer
// speed in points per second.
func (l *Layout) Move(p, velocity geometry.Point) {
	s, ok := live(l.state)
	if !ok || l.container == nil {
		return
	}
	l.velocity = velocity
	l.updatePointer(s, p)
	l.leaveStackZone(s)

	req := autoscroll.Classify(s.pointer, l.container.Bounds(), l.container.ContentSize(),
		l.cfg.TriggerInsets, l.cfg.MaxScrollSpeed)
	l.scroll.Set(req)
	if req != nil {
		return
	}

	l.snap.SetCenter(s.pointer)
	if math.Abs(velocity.X) < l.cfg.MaxTriggerVelocity && math.Abs(velocity.Y) < l.cfg.MaxTriggerVelocity {
		l.resolveHover(s)
	}
}

// EndDrag drops the item. Over a valid stack target it merges; otherwise
// the reorder settles at the current destination. The recognizer stays
// disabled until the settle animation completes.
func (l *Layout) EndDrag() {
	s, ok := live(l.state)
	c := l.container
	if !ok || c == nil {
		return
	}
	l.scroll.Set(nil)

	dest := s.destination
	target := stackTarget(l.state)
	l.delegate.WillEndDragging(dest)

	if target >= 0 && l.data.CanMoveInto(dest, target) {
		if frame, ok := c.FrameOf(target); ok {
			l.merge(s, target, frame.Center())
			return
		}
	}
	l.settle(s)
}

// CancelDrag abandons the drag without committing anything further.
// Reorders already applied while dragging are kept. A drag that is
// already settling is left to finish.
func (l *Layout) CancelDrag() {
	s, ok := live(l.state)
	if !ok {
		return
	}
	if l.scroll != nil {
		l.scroll.Set(nil)
	}
	l.setStackTarget(s, -1)
	l.state = idleState{}
	l.snap = nil
	if l.recognizer != nil && l.recognizer.Active() {
		l.recognizer.Cancel()
	}
	if l.container != nil {
		l.container.InvalidateLayout()
	}
	l.logger.Debug("drag cancelled", "session", s.id, "destination", s.destination)
}

func (l *Layout) merge(s *session, target int, center geometry.Point) {
	c := l.container
	dest := s.destination

	l.setStackTarget(s, -1)
	l.data.MergeItem(dest, target)

	batch := Batch{Deleted: []int{dest}}
	if l.data.ShouldRefreshMergedTarget(target) {
		batch.Reloaded = []int{target}
	}
	l.beginSettling(s)
	c.PerformBatchUpdates(batch, nil)

	d := l.duration(dest, transition.Drag, transition.Normal)
	l.snap.Animate(d, l.sched.Now(), func() {
		l.snap.SetCenter(center)
		l.snap.ShowVanished()
	})

	// the target slot shifts down once the dragged slot before it is gone
	landed := target
	if target > dest {
		landed--
	}
	l.logger.Debug("drag merged", "session", s.id, "source", dest, "target", target, "landed", landed)
	l.sched.After(d, func() { l.finish(s, landed, false) })
}

func (l *Layout) settle(s *session) {
	dest := s.destination
	l.setStackTarget(s, -1)

	center := l.snap.Center()
	if frame, ok := l.container.FrameOf(dest); ok {
		center = frame.Center()
	}
	l.beginSettling(s)

	d := l.duration(dest, transition.Drag, transition.Normal)
	l.snap.Animate(d, l.sched.Now(), func() {
		l.snap.SetCenter(center)
		l.snap.ShowNormal()
	})
	l.logger.Debug("drag settling", "session", s.id, "source", s.source, "destination", dest)
	l.sched.After(d, func() { l.finish(s, dest, true) })
}

func (l *Layout) beginSettling(s *session) {
	l.state = settlingState{s: s}
	if l.recognizer != nil {
		l.recognizer.SetEnabled(false)
	}
}

// finish tears the session down once the settle animation has run
func (l *Layout) finish(s *session, index int, reorder bool) {
	st, ok := l.state.(settlingState)
	if !ok || st.s != s {
		return
	}
	l.state = idleState{}
	l.snap = nil
	if l.recognizer != nil {
		l.recognizer.SetEnabled(true)
	}

	c := l.container
	if c != nil {
		c.Feedback()
	}
	l.delegate.DidEndDragging(index)
	if reorder && s.source != s.destination {
		l.data.FinalizeMove(s.source, s.destination)
	}
	if c != nil {
		c.InvalidateLayout()
	}
	l.logger.Debug("drag ended", "session", s.id, "index", index)
}

// updatePointer records p and latches the trigger-radius flag
func (l *Layout) updatePointer(s *session, p geometry.Point) {
	if s.origin != nil && p == s.pointer {
		return
	}
	s.pointer = p
	if s.origin == nil {
		origin := p
		s.origin = &origin
		return
	}
	if !s.moved && geometry.Distance(*s.origin, p) > l.cfg.TriggerRadius {
		s.moved = true
		l.logger.Debug("moved outside trigger radius", "session", s.id)
		l.delegate.DidMoveOutsideTriggerRadius(s.destination)
	}
}

// leaveStackZone clears the stack target once the pointer has left its
// centre zone
func (l *Layout) leaveStackZone(s *session) {
	target := stackTarget(l.state)
	if target < 0 {
		return
	}
	frame, ok := l.container.FrameOf(target)
	if ok && geometry.InStackZone(s.pointer, frame, l.cfg.StackZone) {
		return
	}
	l.setStackTarget(s, -1)
}

// resolveHover decides between stacking onto and reordering with the
// item under the pointer
func (l *Layout) resolveHover(s *session) {
	c := l.container
	index, ok := c.IndexAt(s.pointer)
	if !ok || index == s.destination {
		return
	}
	if _, ok := c.Cell(index); !ok {
		return
	}
	frame, ok := c.FrameOf(index)
	if !ok {
		return
	}

	if geometry.InStackZone(s.pointer, frame, l.cfg.StackZone) && l.data.CanMoveInto(s.destination, index) {
		l.setStackTarget(s, index)
		return
	}

	l.setStackTarget(s, -1)
	from := s.destination
	l.data.MoveItem(from, index)
	s.destination = index
	c.PerformBatchUpdates(Batch{Deleted: []int{from}, Inserted: []int{index}}, c.Feedback)
	c.InvalidateLayout()
	l.logger.Debug("item reordered", "session", s.id, "from", from, "to", index)
}

// setStackTarget switches the hovered stack, -1 meaning none, and runs the
// matching snapshot and cell transitions
func (l *Layout) setStackTarget(s *session, target int) {
	prev := stackTarget(l.state)
	if prev == target {
		return
	}
	if target < 0 {
		l.state = draggingState{s: s}
	} else {
		l.state = hoveringState{s: s, target: target}
	}

	now := l.sched.Now()
	if target < 0 {
		d := l.duration(prev, transition.Normal, transition.Drag)
		l.snap.Animate(d, now, l.snap.ShowDrag)
	} else {
		d := l.duration(target, transition.Drag, transition.StackDrag)
		l.snap.Animate(d, now, l.snap.ShowStack)
	}

	if prev >= 0 {
		if cell, ok := l.container.Cell(prev); ok {
			transition.Apply(l.animatorFor(prev), cell, transition.StackBase, transition.Normal)
		}
	}
	if target >= 0 {
		if cell, ok := l.container.Cell(target); ok {
			transition.Apply(l.animatorFor(target), cell, transition.Normal, transition.StackBase)
		}
	}
	l.logger.Debug("stack target changed", "session", s.id, "from", prev, "to", target)
}

// autoScrolled runs after every auto-scroll step. The viewport moved under
// a stationary pointer, so the pointer moves by the same translation.
func (l *Layout) autoScrolled(translation geometry.Point) {
	s, ok := live(l.state)
	if !ok || l.container == nil {
		return
	}
	l.updatePointer(s, s.pointer.Add(translation))
	l.leaveStackZone(s)
	l.snap.SetCenter(s.pointer)
	l.resolveHover(s)
	l.container.InvalidateLayout()
}

// captureSnapshot renders the cell in each representation at zero
// duration and stores the copies in the snapshot. The cell is left in its
// normal appearance.
func (l *Layout) captureSnapshot(index int, cell transition.View) {
	animator := l.animatorFor(index)
	for _, rep := range []struct {
		slot  snapshot.Slot
		state transition.State
	}{
		{snapshot.SlotDrag, transition.Drag},
		{snapshot.SlotStack, transition.StackDrag},
		{snapshot.SlotNormal, transition.Normal},
	} {
		animator.Animate(transition.Context{View: cell, From: transition.Normal, To: rep.state})
		view, size := l.container.Capture(index)
		l.snap.Set(rep.slot, view, size)
	}
	l.snap.Refresh()
}

func (l *Layout) animatorFor(index int) transition.Animator {
	return transition.Resolve(l.delegate.AnimatorFor(index))
}

func (l *Layout) duration(index int, from, to transition.State) time.Duration {
	return transition.Apply(l.animatorFor(index), nil, from, to)
}

// recognizerHandler adapts the long-press callbacks to the layout
type recognizerHandler struct {
	l *Layout
}

func (h recognizerHandler) Began(p geometry.Point) {
	if h.l.container == nil {
		return
	}
	if index, ok := h.l.container.IndexAt(p); ok {
		h.l.BeginDrag(p, index)
	}
}

func (h recognizerHandler) Changed(p, velocity geometry.Point) {
	h.l.Move(p, velocity)
}

func (h recognizerHandler) Ended(p geometry.Point) {
	if s, ok := live(h.l.state); ok {
		h.l.updatePointer(s, p)
	}
	h.l.EndDrag()
}

func (h recognizerHandler) Cancelled() {
	h.l.CancelDrag()
}
