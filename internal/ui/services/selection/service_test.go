package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partsearch/internal/catalog"
	"partsearch/internal/domain"
	"partsearch/internal/eventbus"
	"partsearch/internal/ui/logic"
)

type recordBus struct {
	events []eventbus.DomainEvent
}

func (b *recordBus) Publish(e eventbus.DomainEvent) { b.events = append(b.events, e) }

func (b *recordBus) Subscribe(eventbus.EventType, eventbus.EventHandler) func() { return func() {} }

func testView(t *testing.T) logic.View {
	t.Helper()
	cat, err := catalog.New([]catalog.Category{{Name: "cpu"}, {Name: "video-card"}})
	require.NoError(t, err)
	return logic.Aggregate(cat, map[string]domain.ResultSet{
		"cpu":        {Category: "cpu", Items: []domain.Item{{"objectID": "A"}, {"objectID": "B"}}},
		"video-card": {Category: "video-card", Items: []domain.Item{{"objectID": "C", "price": 499}}},
	})
}

func TestSelectInvokesHandlerOnce(t *testing.T) {
	var calls []domain.Selection
	bus := &recordBus{}
	s := NewService(func(item domain.Item, category string) {
		calls = append(calls, domain.Selection{Item: item, Category: category})
	}, bus)

	view := testView(t)
	sel, ok := s.Select(view, 1)
	require.True(t, ok)

	require.Len(t, calls, 1)
	assert.Equal(t, "B", calls[0].Item.ID())
	assert.Equal(t, "cpu", calls[0].Category)
	assert.Equal(t, sel, calls[0])

	require.Len(t, bus.events, 1)
	assert.Equal(t, eventbus.ComponentSelectedEvent{Selection: sel}, bus.events[0])
}

func TestSelectPassesItemUnmodified(t *testing.T) {
	var got domain.Item
	s := NewService(func(item domain.Item, category string) { got = item }, nil)

	view := testView(t)
	_, ok := s.Select(view, 2)
	require.True(t, ok)
	assert.Equal(t, domain.Item{"objectID": "C", "price": 499}, got)
}

func TestSelectOutOfRange(t *testing.T) {
	called := false
	s := NewService(func(domain.Item, string) { called = true }, nil)

	view := testView(t)
	for _, g := range []int{-1, 3, 100} {
		_, ok := s.Select(view, g)
		assert.False(t, ok)
	}
	assert.False(t, called)
	assert.Zero(t, s.Count())
}

func TestLast(t *testing.T) {
	s := NewService(nil, nil)
	_, ok := s.Last()
	assert.False(t, ok)

	_, ok = s.Select(testView(t), 0)
	require.True(t, ok)

	last, ok := s.Last()
	require.True(t, ok)
	assert.Equal(t, "A", last.Item.ID())
	assert.Equal(t, 1, s.Count())
}
