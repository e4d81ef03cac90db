package cmd

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partsearch/internal/build"
	"partsearch/internal/domain"
)

func addPicks(t *testing.T, path string, sels ...domain.Selection) {
	t.Helper()
	store, err := build.Open(path)
	require.NoError(t, err)
	defer store.Close()

	for _, sel := range sels {
		_, err := store.Add(context.Background(), sel)
		require.NoError(t, err)
	}
}

func TestBuildCmd_Empty(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := run(t, env.args("build")...)
	require.NoError(t, err)
	assert.Equal(t, "No parts picked yet\n", out)
}

func TestBuildCmd_ListAndClear(t *testing.T) {
	env := newTestEnv(t)
	addPicks(t, env.db,
		domain.Selection{Category: "cpu", Item: domain.Item{"objectID": "c1", "name": "AMD Ryzen 5 5600X", "price": json.Number("199.99")}},
		domain.Selection{Category: "memory", Item: domain.Item{"objectID": "m1", "name": "Corsair Vengeance DDR5 32GB"}},
	)

	out, _, err := run(t, env.args("build")...)
	require.NoError(t, err)
	assert.Contains(t, out, "CATEGORY")
	assert.Contains(t, out, "AMD Ryzen 5 5600X")
	assert.Contains(t, out, "$199.99")
	assert.Contains(t, out, "RAM")
	assert.Less(t, strings.Index(out, "Corsair"), strings.Index(out, "Ryzen"), "most recent first")

	out, _, err = run(t, env.args("build", "--limit", "1")...)
	require.NoError(t, err)
	assert.Contains(t, out, "1 of 2 picks shown")

	out, _, err = run(t, env.args("build", "--clear")...)
	require.NoError(t, err)
	assert.Equal(t, "Removed 2 picks\n", out)

	out, _, err = run(t, env.args("build")...)
	require.NoError(t, err)
	assert.Equal(t, "No parts picked yet\n", out)
}
