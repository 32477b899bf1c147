// Package mastery turns answer verdicts into per-word streaks and an
// aggregate completion percentage.
package mastery

import (
	"fmt"
	"math"

	"github.com/bluemanta7/MantaMind/internal/entity"
	"github.com/bluemanta7/MantaMind/internal/usecase/corpus"
)

// Transition is the set change caused by one answer.
type Transition int

const (
	NoTransition Transition = iota
	Learned
	Demoted
)

// Apply updates acct for one answer on word and reports the set transition.
func Apply(acct *entity.UserAccount, word string, correct bool, threshold int) Transition {
	if acct.WordStreaks == nil {
		acct.WordStreaks = map[string]int{}
	}

	if !correct {
		acct.WordStreaks[word] = 0
		acct.CurrentStreak = 0
		wasLearned := acct.IsLearned(word)
		acct.MarkInProgress(word)
		if wasLearned {
			return Demoted
		}
		return NoTransition
	}

	acct.WordStreaks[word]++
	acct.CurrentStreak++
	if acct.CurrentStreak > acct.BestStreak {
		acct.BestStreak = acct.CurrentStreak
	}
	if acct.IsLearned(word) {
		return NoTransition
	}
	if acct.WordStreaks[word] >= threshold {
		acct.MarkLearned(word)
		return Learned
	}
	acct.MarkInProgress(word)
	return NoTransition
}

// Snapshot is the derived progress of one account.
type Snapshot struct {
	CurrentStreak int
	BestStreak    int
	Percentage    int
	ProgressSum   float64
	ProgressGoal  int
	WordThreshold int
	Learned       int
	InProgress    int
}

// Compute derives the snapshot of acct. With a loaded corpus every word earns
// min(streak/threshold, 1) points; without one each learned word is a point.
func Compute(acct *entity.UserAccount, c *corpus.Corpus, s entity.Settings) Snapshot {
	threshold := max(1, s.WordThreshold)
	goal := max(1, s.ProgressTargetWords)
	snap := Snapshot{ProgressGoal: goal, WordThreshold: threshold}
	if acct == nil {
		return snap
	}

	snap.CurrentStreak = acct.CurrentStreak
	snap.BestStreak = acct.BestStreak
	snap.Learned = len(acct.LearnedWords)
	snap.InProgress = len(acct.InProgressWords)

	if c.Len() > 0 {
		for _, w := range c.Words() {
			snap.ProgressSum += credit(acct.Streak(w), threshold)
		}
	} else {
		snap.ProgressSum = float64(snap.Learned)
	}
	snap.Percentage = min(int(math.Round(snap.ProgressSum/float64(goal)*100)), 100)
	return snap
}

func credit(streak, threshold int) float64 {
	return math.Min(float64(streak)/float64(max(1, threshold)), 1)
}

// Label is the short target summary shown under the progress bar.
func (s Snapshot) Label() string {
	return fmt.Sprintf("Per-word: %d • Questions goal: %d", s.WordThreshold, s.ProgressGoal)
}

// Details is the long read-out of the progress computation.
func (s Snapshot) Details() string {
	return fmt.Sprintf("Progress details:\n- Word threshold: %d\n- Progress goal (questions): %d\n- Progress sum (points): %.2f\n- Percentage: %d%%",
		s.WordThreshold, s.ProgressGoal, s.ProgressSum, s.Percentage)
}

// Row is the per-word line of a progress report.
type Row struct {
	Word    string  `json:"word"`
	State   string  `json:"state"`
	Streak  int     `json:"streak"`
	Credit  float64 `json:"credit"`
	Learned bool    `json:"learned"`
}

const (
	StateLearned    = "learned"
	StateInProgress = "in-progress"
	StateNew        = "new"
)

// Rows reports every corpus word against acct in corpus order.
func Rows(acct *entity.UserAccount, c *corpus.Corpus, s entity.Settings) []Row {
	words := c.Words()
	rows := make([]Row, 0, len(words))
	for _, w := range words {
		r := Row{Word: w, State: StateNew}
		if acct != nil {
			r.Streak = acct.Streak(w)
			switch {
			case acct.IsLearned(w):
				r.State, r.Learned = StateLearned, true
			case acct.IsInProgress(w):
				r.State = StateInProgress
			}
		}
		r.Credit = credit(r.Streak, s.WordThreshold)
		rows = append(rows, r)
	}
	return rows
}
