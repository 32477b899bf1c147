package corpus

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bluemanta7/MantaMind/internal/entity"
)

var (
	nounTag    = regexp.MustCompile(`(?i)\bnoun\b`)
	verbTag    = regexp.MustCompile(`(?i)\bverb\b`)
	infinitive = regexp.MustCompile(`(?i)^to\s+`)
)

// AugmentForms fills entry.Forms with the base form and naively derived
// inflections until the entry holds entity.MaxForms variants. It returns the
// variants it appended. Running it again on the result adds nothing.
func AugmentForms(entry *entity.VocabEntry) []entity.FormVariant {
	if entry == nil || entry.Word == "" {
		return nil
	}

	forms, existing := uniqueForms(entry.Forms)

	var added []entity.FormVariant
	for _, c := range candidates(entry, forms, existing) {
		if len(forms)+len(added) >= entity.MaxForms {
			break
		}
		key := strings.ToLower(c.Variant)
		if existing[key] {
			continue
		}
		existing[key] = true
		added = append(added, c)
	}

	forms = append(forms, added...)
	if len(forms) > entity.MaxForms {
		forms = forms[:entity.MaxForms]
	}
	entry.Forms = forms
	return added
}

// uniqueForms drops empty and case-insensitively repeated variants, keeping
// the first occurrence.
func uniqueForms(in []entity.FormVariant) ([]entity.FormVariant, map[string]bool) {
	seen := make(map[string]bool, len(in))
	out := make([]entity.FormVariant, 0, len(in))
	for _, f := range in {
		key := strings.ToLower(f.Variant)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, f)
	}
	return out, seen
}

func candidates(entry *entity.VocabEntry, forms []entity.FormVariant, existing map[string]bool) []entity.FormVariant {
	base := entry.Word
	baseLower := strings.ToLower(base)
	example := markBase(entry.FirstExample(), base)

	var nouns, verbs []string
	for _, f := range forms {
		if nounTag.MatchString(string(f.Type)) {
			nouns = append(nouns, f.Variant)
		}
		if verbTag.MatchString(string(f.Type)) {
			verbs = append(verbs, f.Variant)
		}
	}

	var out []entity.FormVariant
	if !existing[baseLower] {
		out = append(out, entity.FormVariant{
			Type:     entity.FormBase,
			Variant:  baseLower,
			Sentence: fillBlank(example, base, fmt.Sprintf("The %s was noted.", base)),
		})
	}

	if len(nouns) > 0 {
		noun := nouns[0]
		for _, n := range nouns {
			if strings.ToLower(n) == baseLower {
				noun = n
				break
			}
		}
		plural := noun + "s"
		out = append(out, entity.FormVariant{
			Type:     entity.FormNounPlural,
			Variant:  plural,
			Sentence: fillBlank(example, plural, fmt.Sprintf("The %s were noted.", plural)),
		})
	}

	if len(verbs) == 0 && infinitive.MatchString(entry.Definition) {
		verbs = []string{baseLower}
	}
	for _, v := range verbs {
		ing := gerund(v)
		ed := pastTense(v)
		out = append(out,
			entity.FormVariant{Type: entity.FormGerund, Variant: ing, Sentence: fillBlank(example, ing, ing+" was observed.")},
			entity.FormVariant{Type: entity.FormPast, Variant: ed, Sentence: fillBlank(example, ed, ed+" occurred.")},
		)
	}
	return out
}

func gerund(v string) string {
	if strings.HasSuffix(v, "e") && len(v) > 2 {
		return strings.TrimSuffix(v, "e") + "ing"
	}
	return v + "ing"
}

func pastTense(v string) string {
	if strings.HasSuffix(v, "e") {
		return v + "d"
	}
	return v + "ed"
}

// markBase blanks the first occurrence of base in an example that carries
// no blank marker, so derived sentences show the variant in its place.
func markBase(example, base string) string {
	if example == "" || strings.Contains(example, entity.BlankMarker) {
		return example
	}
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(base) + `\b`)
	if loc := re.FindStringIndex(example); loc != nil {
		return example[:loc[0]] + entity.BlankMarker + example[loc[1]:]
	}
	return example
}

func fillBlank(example, variant, fallback string) string {
	if example == "" {
		return fallback
	}
	return strings.ReplaceAll(example, entity.BlankMarker, variant)
}

// ReportEntry lists the variants augmentation would add to one word.
type ReportEntry struct {
	Word  string               `json:"word"`
	Added []entity.FormVariant `json:"added"`
}

// AugmentReport runs augmentation on copies of entries and reports what it
// would add. Entries that would not change are omitted.
func AugmentReport(entries []entity.VocabEntry) []ReportEntry {
	var report []ReportEntry
	for _, e := range entries {
		clone := e.Clone()
		if added := AugmentForms(&clone); len(added) > 0 {
			report = append(report, ReportEntry{Word: e.Word, Added: added})
		}
	}
	return report
}
