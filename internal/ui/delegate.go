package ui

import (
	"github.com/charmbracelet/log"

	"stackgrid/internal/board"
	"stackgrid/internal/domain"
	"stackgrid/internal/eventbus"
	"stackgrid/internal/stacking"
	"stackgrid/internal/transition"
)

// hostDelegate turns engine callbacks into domain events
type hostDelegate struct {
	bus      eventbus.EventBus
	board    *board.Board
	layout   *stacking.Layout
	logger   *log.Logger
	animator transition.Animator

	session string
	index   int
	ended   bool
}

var _ stacking.Delegate = (*hostDelegate)(nil)

func (d *hostDelegate) WillBeginDragging(index int) {
	d.ended = false
	d.index = index
	d.session = ""
	if s, ok := d.layout.Session(); ok {
		d.session = s.ID.String()
	}
}

func (d *hostDelegate) DidBeginDragging(index int) {
	title := ""
	if s, ok := d.board.At(index); ok {
		title = s.Title()
	}
	d.logger.Debug("drag began", "session", d.session, "index", index)
	d.publish(domain.DragBeganEvent{Session: d.session, Index: index, Title: title})
}

func (d *hostDelegate) DidMoveOutsideTriggerRadius(index int) {
	d.publish(domain.MovedOutsideRadiusEvent{Session: d.session, Index: index})
}

func (d *hostDelegate) WillEndDragging(index int) {
	d.index = index
}

func (d *hostDelegate) DidEndDragging(index int) {
	d.ended = true
	d.index = index
	d.logger.Debug("drag ended", "session", d.session, "index", index)
	d.publish(domain.DragEndedEvent{Session: d.session, Index: index})
}

func (d *hostDelegate) AnimatorFor(int) transition.Animator {
	return d.animator
}

// cancelled reports a drag that went idle without ending. Reorders made
// during the drag stay on the board, so they are committed here.
func (d *hostDelegate) cancelled(index int) {
	d.ended = true
	d.index = index
	d.logger.Debug("drag cancelled", "session", d.session, "index", d.index)
	d.publish(domain.DragCancelledEvent{Session: d.session, Index: d.index})
	d.board.Commit()
}

func (d *hostDelegate) publish(e eventbus.DomainEvent) {
	if d.bus != nil {
		d.bus.Publish(e)
	}
}
