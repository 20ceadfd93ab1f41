package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifier_IsMainFolder(t *testing.T) {
	c := NewClassifier(DefaultBestWord)

	t.Run("Should match date prefixed folders", func(t *testing.T) {
		for _, p := range []string{
			"/photos/2010-07-15 Vacation",
			"/photos/2010_07_15_Trip",
			"/photos/2010-07 Summer",
			"/photos/2010-0715",
			"2011-12-24",
			"/photos/2010-07-15 Vacation/",
		} {
			assert.True(t, c.IsMainFolder(p), p)
		}
	})

	t.Run("Should reject generic names", func(t *testing.T) {
		for _, p := range []string{
			"/photos/Holidays",
			"/photos/2010",
			"/photos/201-07-15",
			"/photos/Trip 2010-07-15",
			"/photos/2010-07-15 Vacation/best",
			"",
		} {
			assert.False(t, c.IsMainFolder(p), p)
		}
	})
}

func TestClassifier_IsBestFolder(t *testing.T) {
	c := NewClassifier(DefaultBestWord)

	t.Run("Should match the best word anywhere in the last segment", func(t *testing.T) {
		for _, p := range []string{
			"/photos/2010-07-15 Vacation/best",
			"/photos/2010-07-15 Vacation/the best of",
			"/photos/2010-07-15 Vacation/bestof/",
			`C:\photos\best`,
		} {
			assert.True(t, c.IsBestFolder(p), p)
		}
	})

	t.Run("Should be case sensitive", func(t *testing.T) {
		assert.False(t, c.IsBestFolder("/photos/BEST"))
		assert.False(t, c.IsBestFolder("/photos/Best"))
	})

	t.Run("Should only look at the last segment", func(t *testing.T) {
		assert.False(t, c.IsBestFolder("/photos/best/raw"))
		assert.False(t, c.IsBestFolder(""))
	})

	t.Run("Should use the configured word", func(t *testing.T) {
		top := NewClassifier("top+")
		assert.True(t, top.IsBestFolder("/photos/top+ picks"))
		assert.False(t, top.IsBestFolder("/photos/best"))
	})
}

func TestFolderDate(t *testing.T) {
	t.Run("Should extract year month and day", func(t *testing.T) {
		y, m, d, ok := FolderDate("/photos/2010-07-15 Family")
		assert.True(t, ok)
		assert.Equal(t, []int{2010, 7, 15}, []int{y, m, d})
	})

	t.Run("Should leave the day empty for month folders", func(t *testing.T) {
		y, m, d, ok := FolderDate("/photos/2010_07 Summer")
		assert.True(t, ok)
		assert.Equal(t, []int{2010, 7, 0}, []int{y, m, d})
	})

	t.Run("Should fail for other folders", func(t *testing.T) {
		_, _, _, ok := FolderDate("/photos/Family")
		assert.False(t, ok)
	})
}
