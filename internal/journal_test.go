package internal

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readJournal(t *testing.T, path string) []JournalEvent {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var events []JournalEvent
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var ev JournalEvent
		require.NoError(t, json.Unmarshal(sc.Bytes(), &ev))
		events = append(events, ev)
	}
	require.NoError(t, sc.Err())
	return events
}

func TestJournal(t *testing.T) {
	t.Run("Should write one line per event", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "runs")
		j, err := NewJournal(dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, j.ID+".jsonl"), j.Path)

		rating := 2
		j.LogRunStart("/Photos", ModeForce, 3)
		j.LogTagged("/Photos/a.jpg", []string{"best"}, &rating)
		j.LogSkipped("/Photos/b.jpg", "already tagged")
		j.LogError(CategorizeError("/Photos/c.jpg", &DecodeError{Path: "/Photos/c.jpg", Err: errors.New("truncated")}))
		j.LogRunEnd(&WalkResult{Visited: 3, Modified: 1, Failed: 1, Failures: []*ProcessError{{}}})
		require.NoError(t, j.Close())

		events := readJournal(t, j.Path)
		require.Len(t, events, 5)

		assert.Equal(t, "run_start", events[0].Event)
		assert.Equal(t, "force", events[0].Mode)
		assert.Equal(t, 3, events[0].TotalFiles)

		assert.Equal(t, "tagged", events[1].Event)
		require.NotNil(t, events[1].Rating)
		assert.Equal(t, 2, *events[1].Rating)

		assert.Equal(t, "already tagged", events[2].Reason)

		assert.Equal(t, "error", events[3].Event)
		assert.Equal(t, string(ErrorCategoryDecode), events[3].ErrorCategory)

		assert.Equal(t, "run_end", events[4].Event)
		assert.Equal(t, 1, events[4].Skipped)
		assert.Equal(t, 1, events[4].ErrorCount)

		for _, ev := range events {
			assert.NotEmpty(t, ev.Ts)
		}
	})

	t.Run("Should ignore calls on a nil journal", func(t *testing.T) {
		var j *Journal
		j.LogTagged("/Photos/a.jpg", nil, nil)
		j.LogRunEnd(&WalkResult{})
		assert.NoError(t, j.Close())
	})
}
