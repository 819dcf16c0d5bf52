// Package board holds the host's ordered collection of stacks and applies
// the mutations the drag engine requests.
package board

import (
	"sync"

	"stackgrid/internal/domain"
	"stackgrid/internal/eventbus"
	"stackgrid/internal/stacking"
)

var _ stacking.DataSource = (*Board)(nil)

// Board is an ordered list of stacks. It is safe for concurrent use.
type Board struct {
	mu     sync.RWMutex
	stacks []domain.Stack
	bus    eventbus.EventBus
}

// New creates a board holding a copy of stacks. bus may be nil.
func New(stacks []domain.Stack, bus eventbus.EventBus) *Board {
	return &Board{stacks: clone(stacks), bus: bus}
}

// Len returns the number of slots
func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.stacks)
}

// At returns a copy of the stack at index
func (b *Board) At(index int) (domain.Stack, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.valid(index) {
		return domain.Stack{}, false
	}
	return b.stacks[index].Clone(), true
}

// Stacks returns a copy of every stack in order
func (b *Board) Stacks() []domain.Stack {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return clone(b.stacks)
}

// Reset replaces the board contents
func (b *Board) Reset(stacks []domain.Stack) {
	b.mu.Lock()
	b.stacks = clone(stacks)
	b.mu.Unlock()
	b.Commit()
}

// Commit announces the current contents, e.g. after a cancelled drag left
// reorders behind
func (b *Board) Commit() {
	b.publish(domain.BoardChangedEvent{Stacks: b.Stacks()})
}

// CanSelect reports whether index holds a stack
func (b *Board) CanSelect(index int) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.valid(index)
}

// CanMoveInto refuses merging a stack onto a single item
func (b *Board) CanMoveInto(source, target int) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.valid(source) || !b.valid(target) || source == target {
		return false
	}
	return !(!b.stacks[source].IsSingle() && b.stacks[target].IsSingle())
}

// MoveItem removes the stack at source and inserts it at destination
func (b *Board) MoveItem(source, destination int) {
	b.mu.Lock()
	if !b.valid(source) || !b.valid(destination) || source == destination {
		b.mu.Unlock()
		return
	}
	s := b.stacks[source]
	b.stacks = append(b.stacks[:source], b.stacks[source+1:]...)
	b.stacks = append(b.stacks[:destination], append([]domain.Stack{s}, b.stacks[destination:]...)...)
	b.mu.Unlock()

	b.publish(domain.ItemMovedEvent{From: source, To: destination, Stack: s.Clone()})
}

// MergeItem folds the stack at source into the one at target and removes
// the source slot. A single item dropped on another single item leads the
// new stack; anything dropped on a stack is appended to it; a stack dropped
// on a stack goes first.
func (b *Board) MergeItem(source, target int) {
	b.mu.Lock()
	if !b.valid(source) || !b.valid(target) || source == target {
		b.mu.Unlock()
		return
	}
	src, dst := b.stacks[source], b.stacks[target]

	var items []domain.Item
	switch {
	case src.IsSingle() && !dst.IsSingle():
		items = append(append(items, dst.Items...), src.Items...)
	default:
		items = append(append(items, src.Items...), dst.Items...)
	}
	result := domain.NewStack(items...)
	b.stacks[target] = result
	b.stacks = append(b.stacks[:source], b.stacks[source+1:]...)
	b.mu.Unlock()

	b.publish(domain.ItemMergedEvent{Source: source, Target: target, Result: result.Clone()})
	b.Commit()
}

// ShouldRefreshMergedTarget always asks for the merged cell to be redrawn
func (b *Board) ShouldRefreshMergedTarget(int) bool {
	return true
}

// FinalizeMove announces a settled reorder
func (b *Board) FinalizeMove(source, destination int) {
	b.publish(domain.MoveFinalizedEvent{From: source, To: destination})
	b.Commit()
}

func (b *Board) valid(index int) bool {
	return index >= 0 && index < len(b.stacks)
}

func (b *Board) publish(e eventbus.DomainEvent) {
	if b.bus != nil {
		b.bus.Publish(e)
	}
}

func clone(stacks []domain.Stack) []domain.Stack {
	out := make([]domain.Stack, len(stacks))
	for i, s := range stacks {
		out[i] = s.Clone()
	}
	return out
}
