package quiz

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	"github.com/bluemanta7/MantaMind/internal/entity"
	"github.com/bluemanta7/MantaMind/internal/usecase/corpus"
)

// SentenceFallback replaces sentences that are empty or would repeat another option.
const SentenceFallback = "This sentence contains " + entity.BlankMarker + "."

const (
	maxChoices     = 4
	maxDistractors = maxChoices - 1
	minMatchPairs  = 2
	maxMatchPairs  = 5
)

// formPlaceholders pad form options when the corpus cannot supply four
// distinct variants. They are distinct so options never repeat.
var formPlaceholders = []string{"None of the above", "Not listed", "No such form", "Unknown form"}

var longWord = regexp.MustCompile(`\b[A-Za-z]{4,}\b`)

// Builder produces option sets from the corpus.
type Builder struct {
	rng    *rand.Rand
	corpus *corpus.Corpus
}

// NewBuilder constructs a builder over c.
func NewBuilder(rng *rand.Rand, c *corpus.Corpus) *Builder {
	return &Builder{rng: rng, corpus: c}
}

// Corpus returns the corpus the builder draws from.
func (b *Builder) Corpus() *corpus.Corpus { return b.corpus }

// Build constructs a question of the requested kind for target. Kinds that
// cannot be built from the available data fall back to SentenceChoice.
func (b *Builder) Build(kind QuestionType, target entity.VocabEntry) Question {
	switch kind {
	case DefinitionMatch:
		if q, ok := b.definitionQuestion(target); ok {
			return q
		}
	case FormMatch:
		if q, ok := b.formQuestion(target); ok {
			return q
		}
	case Matching:
		if q, ok := b.Matching(target); ok {
			return q
		}
	}
	return b.sentenceQuestion(target)
}

func (b *Builder) definitionQuestion(target entity.VocabEntry) (*ChoiceQuestion, bool) {
	if !target.HasDefinition() {
		return nil, false
	}
	options, correct := b.DefinitionOptions(target)
	return &ChoiceQuestion{
		kind:    DefinitionMatch,
		word:    target.Word,
		prompt:  fmt.Sprintf("What does %q mean?", target.Word),
		options: options,
		correct: correct,
	}, true
}

func (b *Builder) sentenceQuestion(target entity.VocabEntry) *ChoiceQuestion {
	options, correct := b.SentenceOptions(target)
	return &ChoiceQuestion{
		kind:    SentenceChoice,
		word:    target.Word,
		prompt:  fmt.Sprintf("Which sentence uses %q correctly?", target.Word),
		options: options,
		correct: correct,
	}
}

func (b *Builder) formQuestion(target entity.VocabEntry) (*ChoiceQuestion, bool) {
	sentence, options, correct, ok := b.FormOptions(target)
	if !ok {
		return nil, false
	}
	return &ChoiceQuestion{
		kind:     FormMatch,
		word:     target.Word,
		prompt:   fmt.Sprintf("Which variant of %q fits the sentence?", target.Word),
		sentence: sentence,
		options:  options,
		correct:  correct,
	}, true
}

// DefinitionOptions returns the target definition plus up to three
// definitions of other entries, shuffled, and the index of the correct one.
func (b *Builder) DefinitionOptions(target entity.VocabEntry) ([]string, int) {
	seen := map[string]bool{entity.NormalizeWordToken(target.Definition): true}
	var pool []string
	for _, e := range b.others(target) {
		key := entity.NormalizeWordToken(e.Definition)
		if !e.HasDefinition() || seen[key] {
			continue
		}
		seen[key] = true
		pool = append(pool, e.Definition)
	}
	corpus.Shuffle(b.rng, pool)
	if len(pool) > maxDistractors {
		pool = pool[:maxDistractors]
	}
	return b.shuffleWithAnswer(target.Definition, pool)
}

// SentenceOptions returns one correct and up to three distractor sentences.
// Every corpus word is blanked in every option. A repeat is replaced by
// SentenceFallback, or by a numbered copy of it once that is taken, so the
// option count does not shrink.
func (b *Builder) SentenceOptions(target entity.VocabEntry) ([]string, int) {
	correct := b.scrub(blankWord(target.FirstExample(), target.Word), target.Word)

	var pool []entity.VocabEntry
	for _, e := range b.others(target) {
		if e.FirstExample() != "" {
			pool = append(pool, e)
		}
	}
	corpus.Shuffle(b.rng, pool)
	if len(pool) > maxDistractors {
		pool = pool[:maxDistractors]
	}

	seen := map[string]bool{strings.ToLower(correct): true}
	var distractors []string
	for _, e := range pool {
		s := b.scrub(e.FirstExample(), target.Word)
		if seen[strings.ToLower(s)] {
			s = SentenceFallback
			for n := 2; seen[strings.ToLower(s)]; n++ {
				s = fmt.Sprintf("%s (%d)", SentenceFallback, n)
			}
		}
		seen[strings.ToLower(s)] = true
		distractors = append(distractors, s)
	}
	return b.shuffleWithAnswer(correct, distractors)
}

// FormOptions picks one of the target's forms and returns its blanked
// sentence with exactly four variant options. ok is false when the target
// has no forms.
func (b *Builder) FormOptions(target entity.VocabEntry) (sentence string, options []string, correct int, ok bool) {
	variants := target.Variants()
	if len(variants) == 0 {
		return "", nil, 0, false
	}
	form := target.Forms[b.rng.Intn(len(target.Forms))]
	if form.Variant == "" {
		form.Variant = variants[0]
	}

	sentence = form.Sentence
	if !strings.Contains(sentence, entity.BlankMarker) {
		sentence = blankWord(sentence, form.Variant)
	}
	sentence = b.scrub(sentence, target.Word)

	seen := map[string]bool{strings.ToLower(form.Variant): true}
	var distractors []string
	add := func(v string) {
		key := strings.ToLower(v)
		if v == "" || seen[key] || len(distractors) >= maxDistractors {
			return
		}
		seen[key] = true
		distractors = append(distractors, v)
	}

	for _, v := range variants {
		add(v)
	}
	var foreign []string
	for _, e := range b.others(target) {
		foreign = append(foreign, e.Variants()...)
	}
	corpus.Shuffle(b.rng, foreign)
	for _, v := range foreign {
		add(v)
	}
	for _, v := range formPlaceholders {
		add(v)
	}

	options, correct = b.shuffleWithAnswer(form.Variant, distractors)
	return sentence, options, correct, true
}

// Matching builds a matching round of two to five pairs. The target is
// included when it has a definition. ok is false when fewer than two entries
// with distinct definitions exist.
func (b *Builder) Matching(target entity.VocabEntry) (*MatchingQuestion, bool) {
	targetKey := entity.NormalizeWordToken(target.Definition)
	seen := map[string]bool{targetKey: true}
	var pool []entity.VocabEntry
	for _, e := range b.others(target) {
		key := entity.NormalizeWordToken(e.Definition)
		if !e.HasDefinition() || seen[key] {
			continue
		}
		seen[key] = true
		pool = append(pool, e)
	}
	corpus.Shuffle(b.rng, pool)
	if target.HasDefinition() {
		pool = append([]entity.VocabEntry{target}, pool...)
	}
	if len(pool) < minMatchPairs {
		return nil, false
	}

	limit := min(maxMatchPairs, len(pool))
	count := minMatchPairs + b.rng.Intn(max(1, limit-1))
	pairs := pool[:count]
	corpus.Shuffle(b.rng, pairs)

	order := b.rng.Perm(count)
	q := &MatchingQuestion{
		word:        target.Word,
		words:       make([]string, count),
		definitions: make([]string, count),
		answer:      make([]int, count),
	}
	for i, e := range pairs {
		q.words[i] = e.Word
		q.definitions[order[i]] = e.Definition
		q.answer[i] = order[i]
	}
	return q, true
}

// others lists every corpus entry except the target.
func (b *Builder) others(target entity.VocabEntry) []entity.VocabEntry {
	key := entity.NormalizeWordToken(target.Word)
	var out []entity.VocabEntry
	for _, e := range b.corpus.Entries() {
		if entity.NormalizeWordToken(e.Word) != key {
			out = append(out, e)
		}
	}
	return out
}

// scrub blanks every corpus word and the target in s, then guarantees a blank
// exists and the sentence is not empty.
func (b *Builder) scrub(s, target string) string {
	if re := b.corpus.WordsRegexp(); re != nil {
		s = re.ReplaceAllString(s, entity.BlankMarker)
	}
	if target != "" {
		s = wordPattern(target).ReplaceAllString(s, entity.BlankMarker)
	}
	if !strings.Contains(s, entity.BlankMarker) {
		s = replaceFirst(longWord, s)
	}
	if strings.TrimSpace(s) == "" {
		s = SentenceFallback
	}
	return s
}

func (b *Builder) shuffleWithAnswer(answer string, distractors []string) ([]string, int) {
	options := append([]string{answer}, distractors...)
	order := b.rng.Perm(len(options))
	out := make([]string, len(options))
	correct := 0
	for i, j := range order {
		out[j] = options[i]
		if i == 0 {
			correct = j
		}
	}
	return out, correct
}

// blankWord blanks the first occurrence of word in s. If the word is absent
// and s has no blank, the first word of four or more letters is blanked.
func blankWord(s, word string) string {
	if strings.Contains(s, entity.BlankMarker) {
		return s
	}
	if word != "" {
		if loc := wordPattern(word).FindStringIndex(s); loc != nil {
			return s[:loc[0]] + entity.BlankMarker + s[loc[1]:]
		}
	}
	return replaceFirst(longWord, s)
}

func wordPattern(word string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
}

func replaceFirst(re *regexp.Regexp, s string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + entity.BlankMarker + s[loc[1]:]
}

// RevealExample returns the entry's first example with the word blanked, or
// "" when the entry has no example.
func RevealExample(e entity.VocabEntry) string {
	ex := e.FirstExample()
	if ex == "" {
		return ""
	}
	return blankWord(ex, e.Word)
}
