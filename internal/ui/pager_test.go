package ui

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partsearch/internal/domain"
)

func TestFormatItem(t *testing.T) {
	item := domain.Item{
		"objectID":         "A",
		"name":             "AMD Ryzen 5 7600",
		"price":            json.Number("199.99"),
		"socket":           "AM5",
		"_highlightResult": map[string]any{"name": map[string]any{"value": "<em>AMD</em>"}},
	}

	out, err := FormatItem(item, "cpu")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "AMD Ryzen 5 7600\n"))
	assert.Contains(t, out, "category: cpu")
	assert.Contains(t, out, "price:    $199.99")
	assert.Contains(t, out, `"socket": "AM5"`)
	assert.NotContains(t, out, "_highlightResult")
}

func TestShowItemWithoutProgram(t *testing.T) {
	err := NewPager().ShowItem(domain.Item{"objectID": "A"}, "cpu")
	assert.Error(t, err)
}
