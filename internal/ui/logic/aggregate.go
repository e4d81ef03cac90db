package logic

import (
	"partsearch/internal/catalog"
	"partsearch/internal/domain"
)

// Section is one non-empty category of the aggregate view
type Section struct {
	Category catalog.Category
	Offset   int // global index of the first item
	Items    []domain.Item
	Pending  bool
}

// Entry is one item of the flattened view
type Entry struct {
	GlobalIndex int
	Local       int // offset inside its section
	Category    catalog.Category
	Item        domain.Item
}

// View is the ordered, flattened result list across all categories
type View struct {
	Sections []Section
	Entries  []Entry
}

// Len returns the number of selectable items
func (v View) Len() int {
	return len(v.Entries)
}

// At returns the entry at global index g
func (v View) At(g int) (Entry, bool) {
	if g < 0 || g >= len(v.Entries) {
		return Entry{}, false
	}
	return v.Entries[g], true
}

// Offsets returns the exclusive prefix sum of counts: the global index at
// which each category's items start
func Offsets(counts []int) []int {
	offsets := make([]int, len(counts))
	next := 0
	for i, n := range counts {
		offsets[i] = next
		if n > 0 {
			next += n
		}
	}
	return offsets
}

// Aggregate flattens the per-category result sets in catalog order.
// Categories without items are skipped and leave no gap. The result only
// depends on the sets, never on the order they arrived in.
func Aggregate(cat *catalog.Catalog, sets map[string]domain.ResultSet) View {
	return AggregatePending(cat, sets, nil)
}

// AggregatePending is Aggregate with per-category pending flags carried
// onto the sections
func AggregatePending(cat *catalog.Catalog, sets map[string]domain.ResultSet, pending map[string]bool) View {
	counts := make([]int, cat.Len())
	for i := 0; i < cat.Len(); i++ {
		counts[i] = sets[cat.At(i).Name].Len()
	}
	offsets := Offsets(counts)

	total := 0
	if n := len(counts); n > 0 {
		total = offsets[n-1] + counts[n-1]
	}

	view := View{Entries: make([]Entry, 0, total)}
	for i := 0; i < cat.Len(); i++ {
		if counts[i] == 0 {
			continue
		}
		c := cat.At(i)
		set := sets[c.Name]
		view.Sections = append(view.Sections, Section{
			Category: c,
			Offset:   offsets[i],
			Items:    set.Items,
			Pending:  pending[c.Name],
		})
		for local, item := range set.Items {
			view.Entries = append(view.Entries, Entry{
				GlobalIndex: offsets[i] + local,
				Local:       local,
				Category:    c,
				Item:        item,
			})
		}
	}
	return view
}
