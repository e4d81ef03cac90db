package navigation

// Idle is the cursor value when no item is active
const Idle = -1

// State holds all navigation-related state
type State struct {
	Active         int // Idle or a valid global index
	ViewportOffset int // first visible line of the result region
	ViewportHeight int
}

// CursorMovedEvent reports a change of the active index
type CursorMovedEvent struct {
	OldIndex int
	NewIndex int
}
