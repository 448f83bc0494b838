package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
bind = ":9090"
base_url = "https://stac.example.com/"
title = "Example STAC"
search_timeout = "45s"
max_depth = 8
workers = 4

[collections.local]
title = "Local"
description = "local records"

[collections.local.provider]
type = "filesystem"
dir = "/data/stac"

[[collections.local.links]]
rel = "license"
href = "https://example.com/license"

[collections.up.provider]
type = "remote"
url = "https://upstream.example.com/catalog"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Bind)
	assert.Equal(t, "https://stac.example.com", cfg.BaseURL)
	assert.Equal(t, "https://stac.example.com/stac", cfg.StacBaseURL())
	assert.Equal(t, 45*time.Second, cfg.SearchTimeout.Duration)
	assert.Equal(t, 8, cfg.MaxDepth)
	assert.Equal(t, 4, cfg.Workers)

	require.Contains(t, cfg.Collections, "local")
	local := cfg.Collections["local"]
	assert.Equal(t, "filesystem", local.Provider.Type)
	assert.Equal(t, "/data/stac", local.Provider.Dir)
	require.Len(t, local.Links, 1)
	assert.Equal(t, "license", local.Links[0].Rel)

	assert.Equal(t, []string{"local", "up"}, cfg.CollectionIDs())
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultBind, cfg.Bind)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultSearchTimeout, cfg.SearchTimeout.Duration)
	assert.Equal(t, DefaultMaxDepth, cfg.MaxDepth)
	assert.Empty(t, cfg.Collections)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoadConfigBadTOML(t *testing.T) {
	path := writeConfig(t, "bind = [broken")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigRequiresProviderType(t *testing.T) {
	path := writeConfig(t, `
[collections.local]
title = "Local"
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "provider type is required")
}
