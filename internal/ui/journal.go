package ui

import (
	"fmt"
	"strings"
	"time"

	"stackgrid/internal/domain"
	"stackgrid/internal/eventbus"
)

const journalLimit = 500

// Journal keeps the most recent domain events as display lines
type Journal struct {
	lines []string
}

// Add appends a line for e, dropping the oldest once full
func (j *Journal) Add(at time.Time, e eventbus.DomainEvent) {
	j.lines = append(j.lines, fmt.Sprintf("%s  %-18s %s", at.Format("15:04:05.000"), e.Type(), describeEvent(e)))
	if over := len(j.lines) - journalLimit; over > 0 {
		j.lines = append(j.lines[:0:0], j.lines[over:]...)
	}
}

func (j *Journal) Len() int {
	return len(j.lines)
}

// Last returns the newest line, if any
func (j *Journal) Last() string {
	if len(j.lines) == 0 {
		return ""
	}
	return j.lines[len(j.lines)-1]
}

func (j *Journal) String() string {
	if len(j.lines) == 0 {
		return "No events yet"
	}
	return strings.Join(j.lines, "\n")
}

func describeEvent(e eventbus.DomainEvent) string {
	switch ev := e.(type) {
	case domain.DragBeganEvent:
		return fmt.Sprintf("#%d %q session %s", ev.Index, ev.Title, short(ev.Session))
	case domain.DragEndedEvent:
		return fmt.Sprintf("#%d session %s", ev.Index, short(ev.Session))
	case domain.DragCancelledEvent:
		return fmt.Sprintf("#%d session %s", ev.Index, short(ev.Session))
	case domain.MovedOutsideRadiusEvent:
		return fmt.Sprintf("#%d session %s", ev.Index, short(ev.Session))
	case domain.ItemMovedEvent:
		return fmt.Sprintf("%q %d → %d", ev.Stack.Title(), ev.From, ev.To)
	case domain.ItemMergedEvent:
		return fmt.Sprintf("%d onto %d: %s", ev.Source, ev.Target, ev.Result.Names(", "))
	case domain.MoveFinalizedEvent:
		return fmt.Sprintf("%d → %d", ev.From, ev.To)
	case domain.BoardChangedEvent:
		return fmt.Sprintf("%d stacks", len(ev.Stacks))
	case domain.ConfigLoadedEvent:
		return fmt.Sprintf("%s (%d stacks)", ev.Path, ev.Stacks)
	case domain.ConfigSavedEvent:
		return ev.Path
	case domain.ErrorEvent:
		if ev.Err != nil {
			return fmt.Sprintf("%s: %v", ev.Message, ev.Err)
		}
		return ev.Message
	default:
		return ""
	}
}

func short(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
