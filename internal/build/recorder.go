package build

import (
	"context"
	"log/slog"
	"time"

	"partsearch/internal/eventbus"
)

// Record subscribes the store to ComponentSelected events. onAdded, when
// set, is called after each pick is stored. The returned function
// unsubscribes.
func (s *Store) Record(bus eventbus.EventBus, onAdded func(Pick)) func() {
	return bus.Subscribe(eventbus.EventComponentSelected, func(e eventbus.DomainEvent) {
		ev, ok := e.(eventbus.ComponentSelectedEvent)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		p, err := s.Add(ctx, ev.Selection)
		if err != nil {
			slog.Error("build_add_failed",
				slog.String("category", ev.Selection.Category),
				slog.String("object_id", ev.Selection.Item.ID()),
				slog.String("error", err.Error()))
			return
		}
		slog.Info("build_pick_added",
			slog.Int64("id", p.ID),
			slog.String("category", p.Category),
			slog.String("object_id", p.ObjectID))
		if onAdded != nil {
			onAdded(p)
		}
	})
}
