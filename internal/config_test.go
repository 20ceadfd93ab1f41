package internal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "phototag.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("Should use defaults without a config file", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		t.Setenv("HOME", t.TempDir())

		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, DefaultBestWord, cfg.BestWord)
		assert.Equal(t, DefaultSignature, cfg.Signature)
		assert.Equal(t, DefaultBestRating, cfg.BestRating)
		assert.Equal(t, []string{".jpg", ".jpeg"}, cfg.ImageExt)
		assert.True(t, cfg.PathKeywords)
		assert.True(t, cfg.Normalize)
		assert.Equal(t, 2*time.Second, cfg.WatchSettle)
	})

	t.Run("Should read a toml file", func(t *testing.T) {
		path := writeConfig(t, `
image_extensions = ["JPG", "png"]
best_word = "top"
best_rating = 5
populate_path_keywords = false
keyword_base = "/home/anna/Photos"
watch_settle = "500ms"

[[dictionary]]
pattern = "^Nagyi$"
replacement = "Nagymama"

[[dictionary]]
pattern = "^Misc$"
`)
		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, []string{".jpg", ".png"}, cfg.ImageExt)
		assert.Equal(t, "top", cfg.BestWord)
		assert.Equal(t, 5, cfg.BestRating)
		assert.False(t, cfg.PathKeywords)
		assert.Equal(t, "/home/anna/Photos", cfg.KeywordBase)
		assert.Equal(t, 500*time.Millisecond, cfg.WatchSettle)
		require.Len(t, cfg.Dictionary, 2)
		assert.Equal(t, DictionaryEntry{Pattern: "^Nagyi$", Replacement: "Nagymama"}, cfg.Dictionary[0])
		assert.Empty(t, cfg.Dictionary[1].Replacement)
	})

	t.Run("Should let the environment override the file", func(t *testing.T) {
		path := writeConfig(t, `best_word = "top"`)
		t.Setenv("PHOTOTAG_BEST_WORD", "legjobb")

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "legjobb", cfg.BestWord)
	})

	t.Run("Should reject an invalid dictionary pattern", func(t *testing.T) {
		path := writeConfig(t, `
[[dictionary]]
pattern = "("
replacement = "x"
`)
		_, err := LoadConfig(path)
		assert.ErrorContains(t, err, "invalid config")
	})

	t.Run("Should reject a watch settle below the minimum", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, `watch_settle = "1ns"`))
		assert.ErrorContains(t, err, "watch_settle")
	})

	t.Run("Should reject an empty best word", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, `best_word = " "`))
		assert.ErrorContains(t, err, "best_word")
	})
}

func TestConfig_JournalDirectory(t *testing.T) {
	cfg := DefaultConfig()
	cfg.JournalDir = "/var/log/phototag"
	dir, err := cfg.JournalDirectory()
	require.NoError(t, err)
	assert.Equal(t, "/var/log/phototag", dir)
}
