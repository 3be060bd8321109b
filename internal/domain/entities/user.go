package entities

import (
	"slices"
	"time"
)

// UserProfile is a locally registered learner. Name is the unique key.
type UserProfile struct {
	Name         string         `json:"name"`
	BookProgress []BookProgress `json:"bookProgress"`
	Stats        []SessionStats `json:"stats"`
}

// NewUserProfile creates an empty profile.
func NewUserProfile(name string) *UserProfile {
	return &UserProfile{
		Name:         name,
		BookProgress: []BookProgress{},
		Stats:        []SessionStats{},
	}
}

// Clone returns a deep copy so callers can't mutate stored state.
func (p UserProfile) Clone() UserProfile {
	out := UserProfile{
		Name:         p.Name,
		BookProgress: make([]BookProgress, 0, len(p.BookProgress)),
		Stats:        slices.Clone(p.Stats),
	}
	if out.Stats == nil {
		out.Stats = []SessionStats{}
	}
	for _, bp := range p.BookProgress {
		out.BookProgress = append(out.BookProgress, BookProgress{
			Book:          bp.Book,
			KnownChapters: slices.Clone(bp.KnownChapters),
			KnownVerses:   slices.Clone(bp.KnownVerses),
		})
	}
	return out
}

// SessionStats summarizes one quiz session. Date is the session start.
type SessionStats struct {
	Date           time.Time `json:"date"`
	CorrectAnswers int       `json:"correctAnswers"`
	TotalQuestions int       `json:"totalQuestions"`
	LongestStreak  int       `json:"longestStreak"`
}

// Accuracy returns the percentage of correct answers, 0 when nothing was asked.
func (s SessionStats) Accuracy() float64 {
	if s.TotalQuestions == 0 {
		return 0
	}
	return float64(s.CorrectAnswers) / float64(s.TotalQuestions) * 100
}
