package entity

import "strings"

// BlankMarker is the placeholder used for the missing word in example sentences.
const BlankMarker = "____"

// MaxForms caps the number of form variants kept per entry.
const MaxForms = 4

// FormType tags a form variant. The tag is informational; source data may carry
// free text such as "noun" or "verb" which augmentation uses as POS evidence.
type FormType string

const (
	FormBase       FormType = "base"
	FormNounPlural FormType = "noun-plural"
	FormGerund     FormType = "gerund"
	FormPast       FormType = "past"
)

// FormVariant is one inflected form of a vocabulary word.
type FormVariant struct {
	Type     FormType `json:"type"`
	Variant  string   `json:"variant"`
	Sentence string   `json:"sentence,omitempty"`
}

// VocabEntry is a single word of the corpus.
type VocabEntry struct {
	Word       string        `json:"word" validate:"required"`
	Definition string        `json:"definition"`
	Examples   []string      `json:"examples,omitempty"`
	Synonyms   []string      `json:"synonyms,omitempty"`
	Forms      []FormVariant `json:"forms,omitempty"`
}

// FirstExample returns the first example sentence, or "" if there is none.
func (e *VocabEntry) FirstExample() string {
	if len(e.Examples) == 0 {
		return ""
	}
	return e.Examples[0]
}

// HasDefinition reports whether the entry carries a usable definition.
func (e *VocabEntry) HasDefinition() bool {
	return strings.TrimSpace(e.Definition) != ""
}

// Variants returns the variant strings of the entry's forms in order.
func (e *VocabEntry) Variants() []string {
	out := make([]string, 0, len(e.Forms))
	for _, f := range e.Forms {
		if f.Variant != "" {
			out = append(out, f.Variant)
		}
	}
	return out
}

// Clone returns a deep copy so callers can mutate forms without aliasing.
func (e VocabEntry) Clone() VocabEntry {
	e.Examples = append([]string(nil), e.Examples...)
	e.Synonyms = append([]string(nil), e.Synonyms...)
	e.Forms = append([]FormVariant(nil), e.Forms...)
	return e
}
