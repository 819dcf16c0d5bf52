package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventDragBegan          EventType = "DragBegan"
	EventDragEnded          EventType = "DragEnded"
	EventDragCancelled      EventType = "DragCancelled"
	EventMovedOutsideRadius EventType = "MovedOutsideRadius"
	EventItemMoved          EventType = "ItemMoved"
	EventItemMerged         EventType = "ItemMerged"
	EventMoveFinalized      EventType = "MoveFinalized"
	EventBoardChanged       EventType = "BoardChanged"
	EventConfigLoaded       EventType = "ConfigLoaded"
	EventConfigSaved        EventType = "ConfigSaved"
	EventError              EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// DragBeganEvent is emitted when an item is picked up
type DragBeganEvent struct {
	Session string
	Index   int
	Title   string
}

func (e DragBeganEvent) Type() EventType { return EventDragBegan }

// DragEndedEvent is emitted once a dropped item has settled
type DragEndedEvent struct {
	Session string
	Index   int
}

func (e DragEndedEvent) Type() EventType { return EventDragEnded }

// DragCancelledEvent is emitted when a drag is abandoned
type DragCancelledEvent struct {
	Session string
	Index   int
}

func (e DragCancelledEvent) Type() EventType { return EventDragCancelled }

// MovedOutsideRadiusEvent is emitted the first time a drag leaves the
// trigger radius around its origin
type MovedOutsideRadiusEvent struct {
	Session string
	Index   int
}

func (e MovedOutsideRadiusEvent) Type() EventType { return EventMovedOutsideRadius }

// ItemMovedEvent is emitted when a stack changes position
type ItemMovedEvent struct {
	From  int
	To    int
	Stack Stack
}

func (e ItemMovedEvent) Type() EventType { return EventItemMoved }

// ItemMergedEvent is emitted when a stack is merged into another
type ItemMergedEvent struct {
	Source int
	Target int
	Result Stack
}

func (e ItemMergedEvent) Type() EventType { return EventItemMerged }

// MoveFinalizedEvent is emitted when a reorder has settled with a net change
type MoveFinalizedEvent struct {
	From int
	To   int
}

func (e MoveFinalizedEvent) Type() EventType { return EventMoveFinalized }

// BoardChangedEvent carries the board contents after a mutation
type BoardChangedEvent struct {
	Stacks []Stack
}

func (e BoardChangedEvent) Type() EventType { return EventBoardChanged }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path   string
	Stacks int
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
