package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommit_NewestWins(t *testing.T) {
	repo := NewRepository()
	key := ViewKey{ChatID: 1, Page: "stats"}

	first := repo.Begin(key)
	second := repo.Begin(key)
	require.Greater(t, second, first)

	// second request resolves first, then the slow first one lands
	assert.True(t, repo.Commit(key, second, Snapshot{Text: "Rushing Offense"}))
	assert.False(t, repo.Commit(key, first, Snapshot{Text: "Total Offense"}))

	snap, ok := repo.Get(key)
	require.True(t, ok)
	assert.Equal(t, "Rushing Offense", snap.Text)
	assert.Equal(t, second, snap.RequestID)
	assert.False(t, snap.CommittedAt.IsZero())
}

func TestCommit_ViewsAreIndependent(t *testing.T) {
	repo := NewRepository()
	stats := ViewKey{ChatID: 1, Page: "stats"}
	scores := ViewKey{ChatID: 1, Page: "scores"}
	other := ViewKey{ChatID: 2, Page: "stats"}

	a := repo.Begin(stats)
	b := repo.Begin(scores)
	c := repo.Begin(other)

	assert.True(t, repo.Commit(stats, a, Snapshot{Text: "a"}))
	assert.True(t, repo.Commit(scores, b, Snapshot{Text: "b"}))
	assert.True(t, repo.Commit(other, c, Snapshot{Err: "Error loading Total Offense statistics"}))

	snap, _ := repo.Get(other)
	assert.Equal(t, "Error loading Total Offense statistics", snap.Err)
}

func TestCommit_UnknownView(t *testing.T) {
	repo := NewRepository()
	assert.False(t, repo.Commit(ViewKey{ChatID: 9, Page: "teams"}, 1, Snapshot{Text: "x"}))

	_, ok := repo.Get(ViewKey{ChatID: 9, Page: "teams"})
	assert.False(t, ok)
	assert.Zero(t, repo.Latest(ViewKey{ChatID: 9, Page: "teams"}))
}

func TestBegin_Concurrent(t *testing.T) {
	repo := NewRepository()
	key := ViewKey{ChatID: 1, Page: "scores"}

	var wg sync.WaitGroup
	ids := make(chan uint64, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- repo.Begin(key)
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[uint64]bool)
	var kept int
	for id := range ids {
		assert.False(t, seen[id])
		seen[id] = true
		if repo.Commit(key, id, Snapshot{Text: "scores"}) {
			kept++
		}
	}
	assert.Equal(t, 1, kept)
	assert.Equal(t, uint64(50), repo.Latest(key))
}
