// Package corpus loads the vocabulary list and derives the form variants used
// by form-match questions.
package corpus

import (
	"regexp"
	"sort"
	"strings"

	"github.com/bluemanta7/MantaMind/internal/entity"
)

// Corpus is the session's vocabulary. It is built once and not mutated.
type Corpus struct {
	entries []entity.VocabEntry
	index   map[string]int
	wordsRe *regexp.Regexp
}

// New builds a corpus from entries in the given order. Entries with an empty
// word or a word already present (case-insensitive) are skipped.
func New(entries []entity.VocabEntry) *Corpus {
	c := &Corpus{index: make(map[string]int, len(entries))}
	for _, e := range entries {
		key := strings.ToLower(e.Word)
		if key == "" {
			continue
		}
		if _, dup := c.index[key]; dup {
			continue
		}
		c.index[key] = len(c.entries)
		c.entries = append(c.entries, e.Clone())
	}
	c.wordsRe = wordsPattern(c.Words())
	return c
}

// wordsPattern builds one case-insensitive alternation over every word.
// Longer words come first so "lucidity" is not cut short by "lucid".
func wordsPattern(words []string) *regexp.Regexp {
	if len(words) == 0 {
		return nil
	}
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	sort.SliceStable(quoted, func(i, j int) bool { return len(quoted[i]) > len(quoted[j]) })
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// At returns a copy of the i-th entry.
func (c *Corpus) At(i int) (entity.VocabEntry, bool) {
	if c == nil || i < 0 || i >= len(c.entries) {
		return entity.VocabEntry{}, false
	}
	return c.entries[i].Clone(), true
}

// Entries returns copies of all entries in corpus order.
func (c *Corpus) Entries() []entity.VocabEntry {
	if c == nil {
		return nil
	}
	out := make([]entity.VocabEntry, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.Clone()
	}
	return out
}

// Find looks a word up case-insensitively.
func (c *Corpus) Find(word string) (entity.VocabEntry, bool) {
	i := c.IndexOf(word)
	if i < 0 {
		return entity.VocabEntry{}, false
	}
	return c.entries[i].Clone(), true
}

// IndexOf returns the position of word, or -1.
func (c *Corpus) IndexOf(word string) int {
	if c == nil {
		return -1
	}
	i, ok := c.index[strings.ToLower(word)]
	if !ok {
		return -1
	}
	return i
}

// Words returns every vocabulary word in corpus order.
func (c *Corpus) Words() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.Word
	}
	return out
}

// WordsRegexp matches any corpus word on word boundaries, ignoring case.
// It is nil for an empty corpus.
func (c *Corpus) WordsRegexp() *regexp.Regexp {
	if c == nil {
		return nil
	}
	return c.wordsRe
}
