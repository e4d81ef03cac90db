package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventQueryIssued       EventType = "QueryIssued"
	EventCategoryFailed    EventType = "CategoryFailed"
	EventComponentSelected EventType = "ComponentSelected"
	EventOverlayOpened     EventType = "OverlayOpened"
	EventOverlayClosed     EventType = "OverlayClosed"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// QueryIssuedEvent is emitted when a query fans out to the catalog
type QueryIssuedEvent struct {
	Query      string
	Generation uint64
	Categories int
}

func (e QueryIssuedEvent) Type() EventType { return EventQueryIssued }

// CategoryFailedEvent is emitted when a category's request fails.
// The category renders empty; this event exists for logging.
type CategoryFailedEvent struct {
	Category string
	Query    string
	Err      error
}

func (e CategoryFailedEvent) Type() EventType { return EventCategoryFailed }

// ComponentSelectedEvent is emitted once per confirmed selection
type ComponentSelectedEvent struct {
	Selection Selection
}

func (e ComponentSelectedEvent) Type() EventType { return EventComponentSelected }

// OverlayOpenedEvent is emitted when the search overlay opens
type OverlayOpenedEvent struct{}

func (e OverlayOpenedEvent) Type() EventType { return EventOverlayOpened }

// OverlayClosedEvent is emitted when the search overlay closes
type OverlayClosedEvent struct {
	Query string // query at the time of closing
}

func (e OverlayClosedEvent) Type() EventType { return EventOverlayClosed }
