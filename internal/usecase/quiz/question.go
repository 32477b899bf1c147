// Package quiz builds question rounds from the word corpus and drives the
// challenge state machine.
package quiz

import (
	"fmt"
	"strings"

	"github.com/bluemanta7/MantaMind/internal/entity"
)

// QuestionType is the closed set of question kinds a round can take.
type QuestionType string

const (
	DefinitionMatch QuestionType = "definition-match"
	SentenceChoice  QuestionType = "choose-sentence"
	FormMatch       QuestionType = "form-match"
	Matching        QuestionType = "matching"
)

// Selection is the user's answer. Choice indexes Options for single-choice
// questions; Pairs maps a left index to a displayed right index for matching.
type Selection struct {
	Choice int
	Pairs  map[int]int
}

// Result is the verdict for one word. Each result feeds one mastery record.
type Result struct {
	Word    string
	Correct bool
}

// Question is a rendered round with its own correctness check.
type Question interface {
	Type() QuestionType
	// Word is the target word of the round.
	Word() string
	Prompt() string
	Options() []string
	CorrectAnswer() string
	// Targets lists every word the round scores.
	Targets() []string
	Check(sel Selection) ([]Result, error)
}

// ChoiceQuestion is a single-answer question: definition, sentence or form match.
type ChoiceQuestion struct {
	kind     QuestionType
	word     string
	prompt   string
	sentence string
	options  []string
	correct  int
}

var _ Question = (*ChoiceQuestion)(nil)

func (q *ChoiceQuestion) Type() QuestionType { return q.kind }
func (q *ChoiceQuestion) Word() string       { return q.word }
func (q *ChoiceQuestion) Prompt() string     { return q.prompt }
func (q *ChoiceQuestion) Targets() []string  { return []string{q.word} }

// Sentence is the blanked sentence of a form-match question, empty otherwise.
func (q *ChoiceQuestion) Sentence() string { return q.sentence }

func (q *ChoiceQuestion) Options() []string {
	return append([]string(nil), q.options...)
}

// CorrectIndex is the position of the correct option.
func (q *ChoiceQuestion) CorrectIndex() int { return q.correct }

func (q *ChoiceQuestion) CorrectAnswer() string { return q.options[q.correct] }

func (q *ChoiceQuestion) Check(sel Selection) ([]Result, error) {
	if sel.Pairs != nil {
		return nil, fmt.Errorf("%w: this question takes a single option, not pairs", entity.ErrInvalidSelection)
	}
	if sel.Choice < 0 || sel.Choice >= len(q.options) {
		return nil, fmt.Errorf("%w: choose an option between 1 and %d", entity.ErrInvalidSelection, len(q.options))
	}
	correct := q.options[sel.Choice] == q.options[q.correct]
	return []Result{{Word: q.word, Correct: correct}}, nil
}

// MatchingQuestion pairs words with shuffled definitions.
type MatchingQuestion struct {
	word        string
	words       []string
	definitions []string
	// answer[i] is the displayed index of words[i]'s definition.
	answer []int
}

var _ Question = (*MatchingQuestion)(nil)

func (q *MatchingQuestion) Type() QuestionType { return Matching }
func (q *MatchingQuestion) Word() string       { return q.word }
func (q *MatchingQuestion) Prompt() string     { return "Match each word to its definition:" }

// Left returns the words in display order.
func (q *MatchingQuestion) Left() []string { return append([]string(nil), q.words...) }

// Options returns the definitions in display order.
func (q *MatchingQuestion) Options() []string {
	return append([]string(nil), q.definitions...)
}

func (q *MatchingQuestion) Targets() []string { return q.Left() }

// Answer returns the displayed definition index for each left word.
func (q *MatchingQuestion) Answer() []int { return append([]int(nil), q.answer...) }

func (q *MatchingQuestion) CorrectAnswer() string {
	parts := make([]string, len(q.words))
	for i, w := range q.words {
		parts[i] = w + " → " + q.definitions[q.answer[i]]
	}
	return strings.Join(parts, "; ")
}

// Check scores every pair independently; a missing pair is incorrect.
// A selection without a pair map is rejected.
func (q *MatchingQuestion) Check(sel Selection) ([]Result, error) {
	if sel.Pairs == nil {
		return nil, fmt.Errorf("%w: this question takes word=definition pairs", entity.ErrInvalidSelection)
	}
	for l, r := range sel.Pairs {
		if l < 0 || l >= len(q.words) || r < 0 || r >= len(q.definitions) {
			return nil, fmt.Errorf("%w: pair %d=%d is out of range", entity.ErrInvalidSelection, l+1, r+1)
		}
	}
	results := make([]Result, len(q.words))
	for i, w := range q.words {
		r, ok := sel.Pairs[i]
		results[i] = Result{Word: w, Correct: ok && r == q.answer[i]}
	}
	return results, nil
}
