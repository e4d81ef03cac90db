package navigation

// Service owns the cursor over the aggregated result list
type Service struct {
	state   *State
	onMoved func(CursorMovedEvent)
}

// NewService creates an idle navigation service
func NewService() *Service {
	return &Service{
		state: &State{
			Active:         Idle,
			ViewportHeight: 10,
		},
	}
}

// OnMoved registers a callback for cursor changes
func (s *Service) OnMoved(fn func(CursorMovedEvent)) {
	s.onMoved = fn
}

// Active returns the active global index or Idle
func (s *Service) Active() int {
	return s.state.Active
}

// IsIdle reports whether no item is active
func (s *Service) IsIdle() bool {
	return s.state.Active == Idle
}

// Reset positions the cursor after a query edit.
// A non-empty query lands on the first item once there is one.
func (s *Service) Reset(query string, size int) {
	s.state.ViewportOffset = 0
	if query == "" || size <= 0 {
		s.set(Idle)
		return
	}
	s.set(0)
}

// Resize reconciles the cursor with a changed result list
func (s *Service) Resize(query string, size int) {
	switch {
	case size <= 0:
		s.set(Idle)
	case s.state.Active == Idle:
		if query != "" {
			s.set(0)
		}
	case s.state.Active >= size:
		s.set(size - 1)
	}
}

// Down moves to the next item without wrapping
func (s *Service) Down(size int) {
	if size <= 0 {
		return
	}
	next := s.state.Active + 1
	if next > size-1 {
		next = size - 1
	}
	s.set(next)
}

// Up moves to the previous item without wrapping
func (s *Service) Up(size int) {
	if size <= 0 || s.state.Active == Idle {
		return
	}
	prev := s.state.Active - 1
	if prev < 0 {
		prev = 0
	}
	s.set(prev)
}

// Hover makes g active if it is in range
func (s *Service) Hover(g, size int) {
	if g < 0 || g >= size {
		return
	}
	s.set(g)
}

// Clear returns to Idle and scrolls back to the top
func (s *Service) Clear() {
	s.state.ViewportOffset = 0
	s.set(Idle)
}

// SetViewportHeight updates the number of lines of the result region
func (s *Service) SetViewportHeight(height int) {
	if height < 1 {
		height = 1
	}
	s.state.ViewportHeight = height
}

// ViewportHeight returns the number of lines of the result region
func (s *Service) ViewportHeight() int {
	return s.state.ViewportHeight
}

// Scroll adjusts the viewport so line stays visible and returns the offset.
// total is the number of lines in the result region.
func (s *Service) Scroll(line, total int) int {
	h := s.state.ViewportHeight
	if line >= 0 {
		if line < s.state.ViewportOffset {
			s.state.ViewportOffset = line
		} else if line >= s.state.ViewportOffset+h {
			s.state.ViewportOffset = line - h + 1
		}
	}

	if maxOffset := total - h; s.state.ViewportOffset > maxOffset {
		s.state.ViewportOffset = maxOffset
	}
	if s.state.ViewportOffset < 0 {
		s.state.ViewportOffset = 0
	}
	return s.state.ViewportOffset
}

// ViewportOffset returns the first visible line
func (s *Service) ViewportOffset() int {
	return s.state.ViewportOffset
}

func (s *Service) set(index int) {
	old := s.state.Active
	s.state.Active = index
	if old != index && s.onMoved != nil {
		s.onMoved(CursorMovedEvent{OldIndex: old, NewIndex: index})
	}
}
