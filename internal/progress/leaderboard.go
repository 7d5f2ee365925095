package progress

import (
	"sort"
	"time"
)

// MaxLeaderboardEntries caps each per-mode leaderboard.
const MaxLeaderboardEntries = 10

// AddScore records a finished run on the mode's leaderboard: append,
// stable sort descending by score, trim to the cap. Stability keeps
// earlier runs ahead on ties.
func (p *Progress) AddScore(mode string, score int, at time.Time) {
	if p.Leaderboards == nil {
		p.Leaderboards = make(map[string][]ScoreEntry)
	}

	entries := append(p.Leaderboards[mode], ScoreEntry{
		Score:       score,
		Timestamp:   at,
		DisplayName: p.Identity.DisplayName,
		IsGuest:     p.Identity.IsGuest,
	})
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	if len(entries) > MaxLeaderboardEntries {
		entries = entries[:MaxLeaderboardEntries]
	}
	p.Leaderboards[mode] = entries
}

// Leaderboard returns the ordered entries for a mode, for display.
func (p *Progress) Leaderboard(mode string) []ScoreEntry {
	return p.Leaderboards[mode]
}
