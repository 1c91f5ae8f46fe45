package featureflags

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFlags(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "features.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestStore_MissingFileUsesDefaults(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nope.yaml"), nil)

	assert.True(t, s.Enabled("instagram_feed"))
	assert.True(t, s.Enabled("storefront_cart"))
	assert.False(t, s.Enabled("unknown_flag"))
}

func TestStore_FileOverridesDefaults(t *testing.T) {
	path := writeFlags(t, "flags:\n  instagram_feed: false\n  seasonal_menu: true\n")
	s := New(path, nil)

	f, err := s.Flags()
	require.NoError(t, err)

	assert.False(t, f["instagram_feed"])
	assert.True(t, f["storefront_cart"])
	assert.True(t, f["seasonal_menu"])
}

func TestStore_CachesUntilCleared(t *testing.T) {
	path := writeFlags(t, "flags:\n  seasonal_menu: true\n")
	s := New(path, nil)

	require.True(t, s.Enabled("seasonal_menu"))

	require.NoError(t, os.WriteFile(path, []byte("flags:\n  seasonal_menu: false\n"), 0o600))
	assert.True(t, s.Enabled("seasonal_menu"), "cached value should survive file edits")

	s.Clear()
	assert.False(t, s.Enabled("seasonal_menu"))
}

func TestStore_BadYAML(t *testing.T) {
	path := writeFlags(t, "flags: [not, a, map\n")
	s := New(path, nil)

	_, err := s.Flags()
	require.Error(t, err)
	assert.False(t, s.Enabled("instagram_feed"))
}
