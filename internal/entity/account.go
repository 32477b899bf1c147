package entity

import "github.com/samber/lo"

// UserAccount is the persisted record for one user, keyed by username in the
// userData document.
type UserAccount struct {
	Password        string         `json:"password"`
	LearnedWords    []string       `json:"learnedWords"`
	InProgressWords []string       `json:"inProgressWords"`
	WordStreaks     map[string]int `json:"wordStreaks"`
	CurrentStreak   int            `json:"currentStreak"`
	BestStreak      int            `json:"bestStreak"`
	Settings        *SettingsPatch `json:"settings,omitempty"`

	// WordProgress is the counter map written by the older quiz flow. It is
	// merged into WordStreaks on load and never written back.
	WordProgress map[string]int `json:"wordProgress,omitempty"`
}

// NewUserAccount returns a fresh account with zero counters and empty sets.
func NewUserAccount(password string) *UserAccount {
	return &UserAccount{
		Password:        password,
		LearnedWords:    []string{},
		InProgressWords: []string{},
		WordStreaks:     map[string]int{},
	}
}

// Normalize initialises missing collections and restores the account
// invariants: the learned and in-progress sets are disjoint, streaks are
// non-negative and BestStreak >= CurrentStreak.
func (a *UserAccount) Normalize() {
	if a.WordStreaks == nil {
		a.WordStreaks = map[string]int{}
	}
	a.LearnedWords = lo.Uniq(lo.Compact(a.LearnedWords))
	a.InProgressWords = lo.Uniq(lo.Compact(a.InProgressWords))
	a.InProgressWords = lo.Without(a.InProgressWords, a.LearnedWords...)
	for w, s := range a.WordStreaks {
		if s < 0 {
			a.WordStreaks[w] = 0
		}
	}
	if a.CurrentStreak < 0 {
		a.CurrentStreak = 0
	}
	if a.BestStreak < a.CurrentStreak {
		a.BestStreak = a.CurrentStreak
	}
}

// IsLearned reports whether word is in the learned set.
func (a *UserAccount) IsLearned(word string) bool {
	return lo.Contains(a.LearnedWords, word)
}

// IsInProgress reports whether word is in the in-progress set.
func (a *UserAccount) IsInProgress(word string) bool {
	return lo.Contains(a.InProgressWords, word)
}

// MarkLearned moves word into the learned set.
func (a *UserAccount) MarkLearned(word string) {
	a.InProgressWords = lo.Without(a.InProgressWords, word)
	if !a.IsLearned(word) {
		a.LearnedWords = append(a.LearnedWords, word)
	}
}

// MarkInProgress moves word into the in-progress set.
func (a *UserAccount) MarkInProgress(word string) {
	a.LearnedWords = lo.Without(a.LearnedWords, word)
	if !a.IsInProgress(word) {
		a.InProgressWords = append(a.InProgressWords, word)
	}
}

// Streak returns the per-word streak, zero when untracked.
func (a *UserAccount) Streak(word string) int {
	return a.WordStreaks[word]
}
