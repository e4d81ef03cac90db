package search

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partsearch/internal/domain"
)

func testFixture() *MemoryProvider {
	return NewMemoryProvider(map[string][]domain.Item{
		"cpu": {
			{"objectID": "c1", "name": "AMD Ryzen 5 7600X"},
			{"objectID": "c2", "name": "AMD Ryzen 7 7800X3D"},
			{"objectID": "c3", "name": "Intel Core i7-14700K"},
			{"objectID": "c4", "name": "AMD Ryzen 9 7950X"},
		},
		"video-card": {
			{"objectID": "g1", "name": "GeForce RTX 4070"},
		},
	})
}

func TestMemoryProviderMatchesAllTerms(t *testing.T) {
	p := testFixture()
	ctx := context.Background()

	items, err := p.Search(ctx, "cpu", "ryzen 7", 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "c2", items[0].ID())

	items, err = p.Search(ctx, "cpu", "RYZEN", 2)
	require.NoError(t, err)
	assert.Len(t, items, 2, "limit caps the hits")

	items, err = p.Search(ctx, "video-card", "ryzen", 3)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMemoryProviderUnknownCategory(t *testing.T) {
	_, err := testFixture().Search(context.Background(), "toaster", "x", 3)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryProviderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := testFixture().Search(ctx, "cpu", "x", 3)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadFixture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parts.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"cpu": [{"objectID": "c1", "name": "AMD Ryzen 5 7600X", "price": 229.99}],
		"memory": [{"objectID": "m1", "name": "Corsair Vengeance 32GB"}]
	}`), 0644))

	p, err := LoadFixture(path)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"cpu", "memory"}, p.Categories())

	items, err := p.Search(context.Background(), "cpu", "ryzen", 3)
	require.NoError(t, err)
	require.Len(t, items, 1)
	price, ok := items[0].Price()
	require.True(t, ok)
	assert.Equal(t, "229.99", price)

	_, err = LoadFixture(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
