package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddScore_SortedDescending(t *testing.T) {
	p := Default()
	now := time.Now()

	for _, score := range []int{300, 100, 500, 200} {
		p.AddScore("classic", score, now)
	}

	entries := p.Leaderboard("classic")
	require.Len(t, entries, 4)
	assert.Equal(t, []int{500, 300, 200, 100}, scores(entries))
}

func TestAddScore_CapsAtTen(t *testing.T) {
	p := Default()
	now := time.Now()

	// Insert 11 scores: 100, 200, ..., 1100.
	for i := 1; i <= 11; i++ {
		p.AddScore("classic", i*100, now)
	}

	entries := p.Leaderboard("classic")
	require.Len(t, entries, MaxLeaderboardEntries)
	assert.Equal(t, 1100, entries[0].Score)
	assert.Equal(t, 200, entries[9].Score, "the lowest score is dropped")
}

func TestAddScore_TiesKeepInsertionOrder(t *testing.T) {
	p := Default()
	base := time.Now()

	p.AddScore("classic", 500, base)
	p.AddScore("classic", 500, base.Add(time.Minute))
	p.AddScore("classic", 500, base.Add(2*time.Minute))

	entries := p.Leaderboard("classic")
	require.Len(t, entries, 3)
	assert.Equal(t, base, entries[0].Timestamp)
	assert.Equal(t, base.Add(time.Minute), entries[1].Timestamp)
	assert.Equal(t, base.Add(2*time.Minute), entries[2].Timestamp)
}

func TestAddScore_ModesAreIndependent(t *testing.T) {
	p := Default()
	now := time.Now()

	p.AddScore("classic", 100, now)
	p.AddScore("timeattack", 900, now)

	assert.Len(t, p.Leaderboard("classic"), 1)
	assert.Len(t, p.Leaderboard("timeattack"), 1)
	assert.Empty(t, p.Leaderboard("survival"))
}

func TestAddScore_CarriesIdentity(t *testing.T) {
	p := Default()
	p.Identity.DisplayName = "Dana"
	p.Identity.IsGuest = false

	p.AddScore("classic", 42, time.Now())

	entry := p.Leaderboard("classic")[0]
	assert.Equal(t, "Dana", entry.DisplayName)
	assert.False(t, entry.IsGuest)
}

func scores(entries []ScoreEntry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Score
	}
	return out
}
