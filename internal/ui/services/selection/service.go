package selection

import (
	"partsearch/internal/domain"
	"partsearch/internal/eventbus"
	"partsearch/internal/ui/logic"
)

// Service emits confirmed selections
type Service struct {
	state   *State
	handler Handler
	bus     eventbus.EventBus
}

// NewService creates a selection service. handler may be nil.
func NewService(handler Handler, bus eventbus.EventBus) *Service {
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	return &Service{
		state:   &State{},
		handler: handler,
		bus:     bus,
	}
}

// Select confirms the item at global index g of view.
// Out of range indices select nothing.
func (s *Service) Select(view logic.View, g int) (domain.Selection, bool) {
	entry, ok := view.At(g)
	if !ok {
		return domain.Selection{}, false
	}

	sel := domain.Selection{Item: entry.Item, Category: entry.Category.Name}
	if s.handler != nil {
		s.handler(sel.Item, sel.Category)
	}

	s.state.Last = &sel
	s.state.Count++
	s.bus.Publish(eventbus.ComponentSelectedEvent{Selection: sel})
	return sel, true
}

// Last returns the most recent selection
func (s *Service) Last() (domain.Selection, bool) {
	if s.state.Last == nil {
		return domain.Selection{}, false
	}
	return *s.state.Last, true
}

// Count returns the number of selections made
func (s *Service) Count() int {
	return s.state.Count
}
