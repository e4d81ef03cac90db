package query

import (
	"log/slog"

	"partsearch/internal/catalog"
	"partsearch/internal/domain"
	"partsearch/internal/eventbus"
)

// Service is the query session of one overlay
type Service struct {
	state       *State
	catalog     *catalog.Catalog
	hitsPerPage int
	bus         eventbus.EventBus
}

// NewService creates a query session over the catalog.
// hitsPerPage is the cap for categories without a cap of their own.
func NewService(cat *catalog.Catalog, hitsPerPage int, bus eventbus.EventBus) *Service {
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	s := &Service{
		catalog:     cat,
		hitsPerPage: hitsPerPage,
		bus:         bus,
	}
	s.state = newState()
	return s
}

func newState() *State {
	return &State{
		Issued:  make(map[string]uint64),
		Results: make(map[string]domain.ResultSet),
		Pending: make(map[string]bool),
	}
}

// Query returns the current query
func (s *Service) Query() string {
	return s.state.Query
}

// Generation returns the current generation
func (s *Service) Generation() uint64 {
	return s.state.Generation
}

// Catalog returns the session's catalog
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// SetQuery stores a new query and returns its generation.
// An empty query drops every result set right away; otherwise the previous
// sets stay visible until their categories answer the new query.
func (s *Service) SetQuery(text string) uint64 {
	s.state.Generation++
	s.state.Query = text
	s.state.Closed = false

	if text == "" {
		s.state.Results = make(map[string]domain.ResultSet)
		s.state.Pending = make(map[string]bool)
	}
	return s.state.Generation
}

// Requests returns one request per category for the given generation.
// It returns nil when the generation was superseded or the query is empty.
func (s *Service) Requests(generation uint64) []Request {
	if s.state.Closed || generation != s.state.Generation || s.state.Query == "" {
		return nil
	}

	reqs := make([]Request, 0, s.catalog.Len())
	for _, c := range s.catalog.Categories() {
		s.state.Issued[c.Name] = generation
		s.state.Pending[c.Name] = true
		reqs = append(reqs, Request{
			Category: c.Name,
			Query:    s.state.Query,
			Limit:    s.catalog.Limit(c.Name, s.hitsPerPage),
			Token:    generation,
		})
	}

	s.bus.Publish(eventbus.QueryIssuedEvent{
		Query:      s.state.Query,
		Generation: generation,
		Categories: len(reqs),
	})
	return reqs
}

// Apply stores a response if it answers the latest request of its category
// in the current generation. It reports whether the response was accepted.
func (s *Service) Apply(resp Response) bool {
	if s.state.Closed {
		return false
	}
	if _, ok := s.catalog.Lookup(resp.Category); !ok {
		slog.Warn("query_response_unknown_category", slog.String("category", resp.Category))
		return false
	}
	if resp.Token != s.state.Generation || resp.Token != s.state.Issued[resp.Category] {
		slog.Debug("query_response_stale",
			slog.String("category", resp.Category),
			slog.Uint64("token", resp.Token),
			slog.Uint64("generation", s.state.Generation))
		return false
	}

	delete(s.state.Pending, resp.Category)

	if resp.Err != nil {
		s.state.Results[resp.Category] = domain.ResultSet{
			Category: resp.Category,
			Query:    resp.Query,
			Err:      resp.Err,
		}
		s.bus.Publish(eventbus.CategoryFailedEvent{
			Category: resp.Category,
			Query:    resp.Query,
			Err:      resp.Err,
		})
		return true
	}

	items := resp.Items
	if limit := s.catalog.Limit(resp.Category, s.hitsPerPage); limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	s.state.Results[resp.Category] = domain.ResultSet{
		Category: resp.Category,
		Query:    resp.Query,
		Items:    items,
	}
	return true
}

// Close ends the session. Responses still in flight are discarded when
// they arrive; the next SetQuery reopens it.
func (s *Service) Close() {
	gen := s.state.Generation + 1
	s.state = newState()
	s.state.Generation = gen
	s.state.Closed = true
}

// Sets returns the current result sets keyed by category name
func (s *Service) Sets() map[string]domain.ResultSet {
	return s.state.Results
}

// Pending reports whether a category is still waiting for its response
func (s *Service) Pending(category string) bool {
	return s.state.Pending[category]
}

// PendingSet returns the categories still waiting for a response
func (s *Service) PendingSet() map[string]bool {
	return s.state.Pending
}

// Loading reports whether any category is still waiting
func (s *Service) Loading() bool {
	return len(s.state.Pending) > 0
}
