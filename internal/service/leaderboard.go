package service

import (
	"cmp"
	"slices"

	"github.com/aliskhannn/quizzible/internal/domain/entities"
)

type LeaderboardEntry struct {
	Stats    entities.SessionStats
	Accuracy float64
	Current  bool // most recently appended session
}

// Leaderboard ranks a profile's sessions two ways.
type Leaderboard struct {
	ByStreak   []LeaderboardEntry
	ByAccuracy []LeaderboardEntry
}

// BuildLeaderboard sorts sessions by longest streak and by accuracy, both
// descending. Ties keep history order.
func BuildLeaderboard(stats []entities.SessionStats) Leaderboard {
	entries := make([]LeaderboardEntry, len(stats))
	for i, s := range stats {
		entries[i] = LeaderboardEntry{
			Stats:    s,
			Accuracy: s.Accuracy(),
			Current:  i == len(stats)-1,
		}
	}

	byStreak := slices.Clone(entries)
	slices.SortStableFunc(byStreak, func(a, b LeaderboardEntry) int {
		return cmp.Compare(b.Stats.LongestStreak, a.Stats.LongestStreak)
	})

	byAccuracy := slices.Clone(entries)
	slices.SortStableFunc(byAccuracy, func(a, b LeaderboardEntry) int {
		return cmp.Compare(b.Accuracy, a.Accuracy)
	})

	return Leaderboard{ByStreak: byStreak, ByAccuracy: byAccuracy}
}
