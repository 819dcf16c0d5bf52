package ui

import (
	"stackgrid/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// eventsClosedMsg reports that the event channel was closed
type eventsClosedMsg struct{}
