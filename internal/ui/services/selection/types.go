package selection

import "partsearch/internal/domain"

// Handler receives a confirmed selection: the item exactly as the provider
// returned it and the name of the category that contained it.
type Handler func(item domain.Item, category string)

// State holds selection state
type State struct {
	Last  *domain.Selection
	Count int
}
