package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearAlgoliaEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"ALGOLIA_APP_ID", "NEXT_PUBLIC_ALGOLIA_APP_ID",
		"ALGOLIA_SEARCH_API_KEY", "NEXT_PUBLIC_ALGOLIA_SEARCH_API_KEY",
		"ALGOLIA_WRITE_API_KEY", "ALGOLIA_ADMIN_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	d, err := cfg.DebounceDuration()
	require.NoError(t, err)
	assert.Equal(t, 150*time.Millisecond, d)
	assert.Equal(t, 3, cfg.Search.HitsPerPage)
	assert.True(t, cfg.Search.CloseOnSelect)
}

func TestParseKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
[algolia]
app_id = "APP"

[search]
hits_per_page = 5
`))
	require.NoError(t, err)

	assert.Equal(t, "APP", cfg.Algolia.AppID)
	assert.Equal(t, 5, cfg.Search.HitsPerPage)
	assert.Equal(t, "150ms", cfg.Search.Debounce)
	assert.True(t, cfg.UI.Mouse)
}

func TestParseInvalidTOML(t *testing.T) {
	_, err := Parse([]byte("[search\n"))
	assert.Error(t, err)
}

func TestValidateRejectsCaps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Search.HitsPerPage = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid)

	cfg.Search.HitsPerPage = MaxHitsPerPage + 1
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
}

func TestValidateRejectsDuration(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Search.Debounce = "soon"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid)

	cfg.Search.Debounce = "-1s"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
}

func TestValidateRejectsUnknownCategory(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Search.Categories = []string{"cpu", "toaster"}
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
}

func TestCatalogMergesOverrides(t *testing.T) {
	cfg, err := Parse([]byte(`
[[category]]
name = "video-card"
label = "GPUs"
hits_per_page = 5

[[category]]
name = "thermal-paste"
label = "Thermal Paste"
`))
	require.NoError(t, err)

	cat, err := cfg.Catalog()
	require.NoError(t, err)

	gpu, ok := cat.Lookup("video-card")
	require.True(t, ok)
	assert.Equal(t, "GPUs", gpu.Label)
	assert.NotEmpty(t, gpu.Icon, "unset fields keep the default")
	assert.Equal(t, 5, cat.Limit("video-card", 3))

	pos, ok := cat.Position("thermal-paste")
	require.True(t, ok)
	assert.Equal(t, cat.Len()-1, pos, "new categories are appended")
}

func TestCatalogSubset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Search.Categories = []string{"memory", "cpu"}

	cat, err := cfg.Catalog()
	require.NoError(t, err)
	assert.Equal(t, []string{"memory", "cpu"}, cat.Names())
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	clearAlgoliaEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	svc := NewService(path)

	cfg := DefaultConfig()
	cfg.Algolia.AppID = "APP"
	cfg.Search.HitsPerPage = 7
	cfg.UI.Mouse = false
	require.NoError(t, svc.Save(cfg))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, "APP", loaded.Algolia.AppID)
	assert.Equal(t, 7, loaded.Search.HitsPerPage)
	assert.False(t, loaded.UI.Mouse)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearAlgoliaEnv(t)
	svc := NewService(filepath.Join(t.TempDir(), "absent.toml"))

	cfg, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Search, cfg.Search)
}

func TestLoadFromPathMissing(t *testing.T) {
	svc := NewService("")
	_, err := svc.LoadFromPath(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLoadFromPathInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[search]\nhits_per_page = 0\n"), 0644))

	_, err := NewService(path).Load()
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestApplyEnv(t *testing.T) {
	clearAlgoliaEnv(t)
	t.Setenv("NEXT_PUBLIC_ALGOLIA_APP_ID", "PUBLIC")
	t.Setenv("ALGOLIA_SEARCH_API_KEY", "search-key")

	cfg := DefaultConfig()
	cfg.Algolia.AppID = "FILE"
	cfg.Algolia.AdminAPIKey = "admin-from-file"
	ApplyEnv(cfg)

	assert.Equal(t, "PUBLIC", cfg.Algolia.AppID)
	assert.Equal(t, "search-key", cfg.Algolia.SearchAPIKey)
	assert.Equal(t, "admin-from-file", cfg.Algolia.AdminAPIKey)
	assert.True(t, cfg.HasCredentials())

	t.Setenv("ALGOLIA_APP_ID", "PRIVATE")
	ApplyEnv(cfg)
	assert.Equal(t, "PRIVATE", cfg.Algolia.AppID, "the unprefixed name wins")
}

func TestLoadDotEnv(t *testing.T) {
	clearAlgoliaEnv(t)
	os.Unsetenv("ALGOLIA_APP_ID")
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("ALGOLIA_APP_ID=FROMDOTENV\n"), 0644))

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), path))
	t.Cleanup(func() { os.Unsetenv("ALGOLIA_APP_ID") })

	assert.Equal(t, "FROMDOTENV", os.Getenv("ALGOLIA_APP_ID"))
}
