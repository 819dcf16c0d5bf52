package ui

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	zone "github.com/lrstanley/bubblezone"

	"stackgrid/internal/board"
	"stackgrid/internal/config"
	"stackgrid/internal/domain"
	"stackgrid/internal/eventbus"
	"stackgrid/internal/gesture"
	"stackgrid/internal/stacking"
	"stackgrid/internal/transition"
	"stackgrid/internal/ui/views"
)

const (
	headerRows    = 2 // title bar and rule
	footerRows    = 2 // status line and key help
	wheelRows     = 3
	frameInterval = time.Second / 30
	restDelay     = 60 * time.Millisecond
)

// Toolbar actions, also used as bubblezone ids
const (
	actionReset    = "reset"
	actionAnimator = "animator"
	actionJournal  = "journal"
	actionHelp     = "help"
	actionQuit     = "quit"
)

var toolbarActions = []string{actionReset, actionAnimator, actionJournal, actionHelp, actionQuit}

// Options carries the model's collaborators
type Options struct {
	Config    *config.Config
	ConfigSvc config.ConfigService
	Bus       eventbus.EventBus
	Board     *board.Board
	Events    <-chan eventbus.DomainEvent
	Logger    *log.Logger
	Clock     func() time.Time
}

// Model represents the UI state
type Model struct {
	cfg       *config.Config
	configSvc config.ConfigService
	board     *board.Board
	events    <-chan eventbus.DomainEvent
	logger    *log.Logger

	sched    *Scheduler
	grid     *Grid
	layout   *stacking.Layout
	delegate *hostDelegate
	frames   func()
	rest     func()

	width  int
	height int
	keys   keyMap
	help   help.Model
	zones  *zone.Manager

	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	journal      Journal
	status       string
	statusErr    bool
	quitting     bool

	// Program reference for terminal management
	pager *PagerOps
}

// NewModel creates a new UI model
func NewModel(opts Options) (*Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	layoutCfg, err := cfg.Drag.Layout()
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	b := opts.Board
	if b == nil {
		b = board.New(cfg.Board, opts.Bus)
	}

	m := &Model{
		cfg:          cfg,
		configSvc:    opts.ConfigSvc,
		board:        b,
		events:       opts.Events,
		logger:       logger.WithPrefix("ui"),
		sched:        NewScheduler(opts.Clock),
		keys:         newKeyMap(),
		help:         help.New(),
		zones:        zone.New(),
		renderer:     views.NewRenderer(),
		helpRenderer: NewHelpRenderer(),
	}
	m.grid = NewGrid(b, cfg.Grid)
	m.delegate = &hostDelegate{
		bus:      opts.Bus,
		board:    b,
		logger:   m.logger,
		animator: animatorNamed(cfg.Drag.Animator),
	}
	m.layout = stacking.New(m.sched,
		stacking.WithConfig(layoutCfg),
		stacking.WithLogger(logger),
		stacking.WithDataSource(b),
		stacking.WithDelegate(m.delegate),
	)
	m.delegate.layout = m.layout
	m.layout.Attach(m.grid)
	return m, nil
}

// SetProgram gives the model the program it runs in, which the pager
// needs to borrow the terminal
func (m *Model) SetProgram(p *tea.Program) {
	m.pager = NewPagerOps(p)
}

// Layout exposes the drag engine
func (m *Model) Layout() *stacking.Layout {
	return m.layout
}

// Grid exposes the container
func (m *Model) Grid() *Grid {
	return m.grid
}

func (m *Model) Init() tea.Cmd {
	return m.listen()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	m.syncFrames()
	return m, tea.Batch(cmd, m.sched.Commands())
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.grid.Resize(msg.Width, m.boardHeight())
		m.help.Width = msg.Width
		return nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.BlurMsg:
		m.drive(m.layout.Interrupt)
		return nil

	case timerMsg:
		m.drive(func() { m.sched.Fire(msg) })
		return nil

	case EventMsg:
		m.handleEvent(msg.Event)
		return m.listen()

	case eventsClosedMsg:
		return nil

	case pagerMsg:
		if msg.err != nil {
			m.setError(fmt.Sprintf("%s: %v", msg.title, msg.err))
		}
		return nil
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.runAction(actionQuit)
	case key.Matches(msg, m.keys.Help):
		return m.runAction(actionHelp)
	case key.Matches(msg, m.keys.Journal):
		return m.runAction(actionJournal)
	case key.Matches(msg, m.keys.Cancel):
		m.drive(m.layout.Interrupt)
	case key.Matches(msg, m.keys.Reset):
		return m.runAction(actionReset)
	case key.Matches(msg, m.keys.Animator):
		return m.runAction(actionAnimator)
	case key.Matches(msg, m.keys.Up):
		m.scroll(-1)
	case key.Matches(msg, m.keys.Down):
		m.scroll(1)
	case key.Matches(msg, m.keys.PageUp):
		m.scroll(-m.boardHeight())
	case key.Matches(msg, m.keys.PageDown):
		m.scroll(m.boardHeight())
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		for _, id := range toolbarActions {
			if m.zones.Get(id).InBounds(msg) {
				return m.runAction(id)
			}
		}
	}

	if tea.MouseEvent(msg).IsWheel() {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scroll(-wheelRows)
		case tea.MouseButtonWheelDown:
			m.scroll(wheelRows)
		}
		return nil
	}

	var kind gesture.Kind
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		kind = gesture.Down
	case tea.MouseActionMotion:
		kind = gesture.Move
	case tea.MouseActionRelease:
		kind = gesture.Up
	default:
		return nil
	}

	m.disarmRest()
	m.drive(func() { m.pointer(kind, msg.X, msg.Y) })
	if kind == gesture.Move {
		m.armRest(msg.X, msg.Y)
	}
	return nil
}

// pointer feeds a terminal position to the engine in content points
func (m *Model) pointer(kind gesture.Kind, x, y int) {
	m.layout.HandlePointer(gesture.Event{
		Kind:     kind,
		Position: m.grid.ToPoint(x, y-headerRows),
		Time:     m.sched.Now(),
	})
}

// armRest replays a pointer that stopped moving. Terminals report motion
// only, so the last sample's velocity would otherwise stick and hovering
// would never resolve.
func (m *Model) armRest(x, y int) {
	if r := m.layout.Recognizer(); r == nil || !r.Active() {
		return
	}
	m.rest = m.sched.After(restDelay, func() {
		m.rest = nil
		m.pointer(gesture.Move, x, y)
	})
}

func (m *Model) disarmRest() {
	if m.rest != nil {
		m.rest()
		m.rest = nil
	}
}

func (m *Model) runAction(action string) tea.Cmd {
	switch action {
	case actionQuit:
		m.quit()
		return tea.Quit
	case actionHelp:
		return m.openPager("help", m.helpRenderer.renderHelpContent())
	case actionJournal:
		return m.openPager("journal", m.journal.String())
	case actionReset:
		m.resetBoard()
	case actionAnimator:
		m.toggleAnimator()
	}
	return nil
}

// drive runs fn and reports a drag that fn abandoned. The engine has no
// cancel callback, so a live drag going idle without DidEndDragging is how
// a cancellation shows.
func (m *Model) drive(fn func()) {
	before, ok := m.layout.Session()
	wasLive := ok && m.layout.Phase() != stacking.Settling
	fn()
	if wasLive && m.layout.Phase() == stacking.Idle && !m.delegate.ended {
		m.delegate.cancelled(before.Destination)
		m.setStatus("drag cancelled")
	}
}

// syncFrames keeps a repaint timer running while anything moves
func (m *Model) syncFrames() {
	busy := m.layout.Phase() != stacking.Idle || m.layout.Snapshot() != nil
	switch {
	case busy && m.frames == nil:
		m.frames = m.sched.Every(frameInterval, func(time.Duration) {})
	case !busy && m.frames != nil:
		m.frames()
		m.frames = nil
	}
}

func (m *Model) scroll(rows int) {
	if m.layout.Phase() != stacking.Idle {
		return
	}
	m.grid.ScrollBy(rows)
}

func (m *Model) resetBoard() {
	if m.layout.Phase() == stacking.Settling {
		m.setError("wait for the drop to finish")
		return
	}
	m.drive(m.layout.Interrupt)
	m.board.Reset(config.DefaultBoard())
	m.grid.Sync()
	m.setStatus("board reset")
}

func (m *Model) toggleAnimator() {
	if m.layout.Phase() != stacking.Idle {
		m.setError("cannot switch animators during a drag")
		return
	}
	if m.cfg.Drag.Animator == config.AnimatorStack {
		m.cfg.Drag.Animator = config.AnimatorDefault
	} else {
		m.cfg.Drag.Animator = config.AnimatorStack
	}
	m.delegate.animator = animatorNamed(m.cfg.Drag.Animator)
	m.setStatus("animator: " + m.cfg.Drag.Animator)
	m.saveConfig()
}

func (m *Model) openPager(title, content string) tea.Cmd {
	if m.pager == nil {
		m.setError(title + ": pager unavailable")
		return nil
	}
	m.drive(m.layout.Interrupt)
	return m.pager.pagerCmd(title, content)
}

func (m *Model) quit() {
	if m.quitting {
		return
	}
	m.quitting = true
	m.drive(m.layout.Interrupt)
	m.layout.Detach()
	if m.cfg.UI.AutosaveOnExit {
		m.saveConfig()
	}
}

func (m *Model) handleEvent(e eventbus.DomainEvent) {
	m.journal.Add(m.sched.Now(), e)
	switch ev := e.(type) {
	case domain.BoardChangedEvent:
		m.saveConfig()
	case domain.ErrorEvent:
		m.setError(describeEvent(ev))
	}
}

func (m *Model) saveConfig() {
	if m.configSvc == nil {
		return
	}
	m.cfg.Board = m.board.Stacks()
	if err := m.configSvc.Save(m.cfg); err != nil {
		m.logger.Error("failed to save config", "err", err)
		m.setError(fmt.Sprintf("save failed: %v", err))
		m.delegate.publish(domain.ErrorEvent{Message: "save failed", Err: err})
	}
}

func (m *Model) listen() tea.Cmd {
	if m.events == nil {
		return nil
	}
	events := m.events
	return func() tea.Msg {
		e, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return EventMsg{Event: e}
	}
}

func (m *Model) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *Model) setError(s string) {
	m.status, m.statusErr = s, true
}

func (m *Model) boardHeight() int {
	footer := footerRows
	if !m.cfg.UI.ShowStatus {
		footer--
	}
	return max(m.height-headerRows-footer, 0)
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}
	styles := m.renderer.Styles()

	header := styles.Title.Render("stackgrid") + "  " + m.renderToolbar()
	rule := styles.Dim.Render(strings.Repeat("─", m.width))

	sections := []string{header, rule, m.renderBoard()}
	if m.cfg.UI.ShowStatus {
		sections = append(sections, m.renderStatus())
	}
	sections = append(sections, m.help.View(m.keys))
	return m.zones.Scan(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) renderToolbar() string {
	styles := m.renderer.Styles()
	labels := map[string]string{
		actionReset:    "reset",
		actionAnimator: "animator: " + m.cfg.Drag.Animator,
		actionJournal:  fmt.Sprintf("journal (%d)", m.journal.Len()),
		actionHelp:     "help",
		actionQuit:     "quit",
	}
	buttons := make([]string, 0, len(toolbarActions))
	for _, id := range toolbarActions {
		style := styles.Button
		if id == actionAnimator && m.cfg.Drag.Animator == config.AnimatorStack {
			style = styles.ButtonOn
		}
		buttons = append(buttons, m.zones.Mark(id, style.Render(labels[id])))
	}
	return strings.Join(buttons, " ")
}

func (m *Model) renderBoard() string {
	height := m.boardHeight()
	top, left := m.grid.TopRow(), m.grid.LeftColumn()
	target := -1
	if s, ok := m.layout.Session(); ok {
		target = s.StackTarget
	}

	var cards []views.Card
	for i := 0; i < m.board.Len(); i++ {
		if m.layout.IsHidden(i) {
			continue
		}
		x, y, w, h := m.grid.CellRect(i)
		x, y = x-left, y-top
		if y+h < 0 || y >= height || x >= m.width {
			continue
		}
		v, ok := m.grid.View(i)
		if !ok {
			continue
		}
		stack, _ := m.board.At(i)
		card := cardFor(stack, v, x, y, w, h)
		if i == target && card.Indicator == 0 {
			// animators without a stack outline still mark the target
			card.Indicator = 0.01
		}
		cards = append(cards, card)
	}

	view := views.BoardView{Width: m.width, Height: height, Cards: cards}
	if snap := m.layout.Snapshot(); snap != nil {
		frame := snap.Frame(m.sched.Now())
		active := frame.Active()
		if cv, ok := active.View.(*CellView); ok && active.Alpha > 0 {
			w := int(math.Round(active.Size.Width / PointsPerColumn))
			h := int(math.Round(active.Size.Height / PointsPerRow))
			cx := frame.Center.X/PointsPerColumn - float64(left)
			cy := frame.Center.Y/PointsPerRow - float64(top)
			card := cardFor(cv.Stack, cv, int(math.Round(cx-float64(w)/2)), int(math.Round(cy-float64(h)/2)), w, h)
			card.Alpha = active.Alpha
			view.Floating = &card
		}
	}
	return m.renderer.RenderBoard(view)
}

func (m *Model) renderStatus() string {
	styles := m.renderer.Styles()
	var parts []string

	phase := m.layout.Phase()
	switch phase {
	case stacking.Idle:
		parts = append(parts, styles.StatusIdle.Render(phase.String()))
	case stacking.HoveringStack:
		parts = append(parts, styles.StatusStack.Render(phase.String()))
	default:
		parts = append(parts, styles.StatusDrag.Render(phase.String()))
	}

	if s, ok := m.layout.Session(); ok {
		detail := fmt.Sprintf("#%d → #%d", s.Source, s.Destination)
		if s.StackTarget >= 0 {
			detail += fmt.Sprintf(" onto #%d", s.StackTarget)
		}
		parts = append(parts, detail)
	}
	if req := m.layout.ScrollRequest(); req != nil {
		parts = append(parts, styles.Scroll.Render(fmt.Sprintf("scrolling %s", req.Direction)))
	}
	parts = append(parts, fmt.Sprintf("%d stacks", m.board.Len()))
	if rows := m.grid.Rows(); rows > m.boardHeight() {
		parts = append(parts, styles.Scroll.Render(fmt.Sprintf("rows %d-%d/%d", m.grid.TopRow()+1, min(rows, m.grid.TopRow()+m.boardHeight()), rows)))
	}

	switch {
	case m.status != "" && m.statusErr:
		parts = append(parts, styles.StatusError.Render(m.status))
	case m.status != "":
		parts = append(parts, m.status)
	}
	return styles.Status.Render(strings.Join(parts, " · "))
}

func cardFor(stack domain.Stack, v *CellView, x, y, w, h int) views.Card {
	card := views.Card{
		X: x, Y: y, W: w, H: h,
		Title:      stack.Title(),
		Count:      stack.Len(),
		Alpha:      v.Alpha,
		Scale:      v.Scale,
		Indicator:  v.Indicator,
		LabelAlpha: v.LabelAlpha,
	}
	if !stack.IsSingle() {
		card.Detail = stack.Names(", ")
	}
	return card
}

func animatorNamed(name string) transition.Animator {
	if name == config.AnimatorStack {
		return transition.NewStackAnimator()
	}
	return transition.DefaultAnimator{}
}
