package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStoreSetGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("parse.chunk_limit", int64(800)))
	require.NoError(t, store.Set("embedding.enabled", true))
	require.NoError(t, store.Set("embedding.model", "nomic-embed-text"))
	require.NoError(t, store.Set("search.keyword_weight", 0.7))

	assert.Equal(t, 800, store.GetInt("parse.chunk_limit"))
	assert.True(t, store.GetBool("embedding.enabled"))
	assert.Equal(t, "nomic-embed-text", store.GetString("embedding.model"))
	assert.Equal(t, 0.7, store.GetFloat("search.keyword_weight"))
}

func TestConfigStoreMissingKeys(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	_, ok := store.Get("absent")
	assert.False(t, ok)
	assert.Equal(t, "", store.GetString("absent"))
	assert.Equal(t, 0, store.GetInt("absent"))
	assert.Equal(t, 0.0, store.GetFloat("absent"))
	assert.False(t, store.GetBool("absent"))
}

func TestConfigStoreTypeMismatch(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("key", "string value"))

	assert.Equal(t, 0, store.GetInt("key"))
	assert.False(t, store.GetBool("key"))
	assert.Equal(t, 0.0, store.GetFloat("key"))
}

func TestConfigStorePersistence(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("parse.route_threshold", 0.6))

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, 0.6, reloaded.GetFloat("parse.route_threshold"))
}

func TestConfigStoreFlattensNestedTables(t *testing.T) {
	dir := t.TempDir()
	content := "[parse]\nchunk_limit = 900\n\n[embedding]\nenabled = true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, 900, store.GetInt("parse.chunk_limit"))
	assert.True(t, store.GetBool("embedding.enabled"))
}

func TestConfigStoreIntFromFloatKey(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("count", 5))
	assert.Equal(t, 5, store.GetInt("count"))
	assert.Equal(t, 5.0, store.GetFloat("count"))
}
