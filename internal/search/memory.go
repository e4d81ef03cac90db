package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"

	"partsearch/internal/domain"
)

// MemoryProvider serves hits from an in-process fixture.
// Matching is case-insensitive; every query term must appear in the name.
type MemoryProvider struct {
	items map[string][]domain.Item
}

// NewMemoryProvider creates a provider over category -> items
func NewMemoryProvider(items map[string][]domain.Item) *MemoryProvider {
	if items == nil {
		items = make(map[string][]domain.Item)
	}
	return &MemoryProvider{items: items}
}

// LoadFixture reads a JSON object of category name -> array of hits
func LoadFixture(path string) (*MemoryProvider, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixture: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.UseNumber()

	var items map[string][]domain.Item
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return NewMemoryProvider(items), nil
}

// Categories returns the fixture's category names
func (p *MemoryProvider) Categories() []string {
	names := make([]string, 0, len(p.items))
	for name := range p.items {
		names = append(names, name)
	}
	return names
}

// Search returns the first limit items whose name contains every query term
func (p *MemoryProvider) Search(ctx context.Context, category, query string, limit int) ([]domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	items, ok := p.items[category]
	if !ok {
		return nil, &ProviderError{Index: category, StatusCode: http.StatusNotFound, Message: "Index does not exist"}
	}

	terms := strings.Fields(strings.ToLower(query))
	var out []domain.Item
	for _, it := range items {
		if limit > 0 && len(out) >= limit {
			break
		}
		if matchesAll(strings.ToLower(it.Name()), terms) {
			out = append(out, it)
		}
	}
	return out, nil
}

func matchesAll(name string, terms []string) bool {
	for _, term := range terms {
		if !strings.Contains(name, term) {
			return false
		}
	}
	return true
}

// ListIndices reports every fixture category as an index
func (p *MemoryProvider) ListIndices(ctx context.Context) ([]IndexInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	infos := make([]IndexInfo, 0, len(p.items))
	for name, items := range p.items {
		infos = append(infos, IndexInfo{Name: name, Entries: len(items)})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}
