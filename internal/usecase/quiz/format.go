package quiz

import "github.com/bluemanta7/MantaMind/internal/entity"

// Format is one of the formats the first round of a challenge is drawn from.
type Format string

const (
	FormatDefinition Format = "multiple-definition"
	FormatWord       Format = "multiple-word"
	FormatSentence   Format = "choose-sentence"
	FormatForm       Format = "form-match"
	FormatMatching   Format = "matching"
)

// QuestionType maps the format onto the question kind that renders it.
func (f Format) QuestionType() QuestionType {
	switch f {
	case FormatSentence:
		return SentenceChoice
	case FormatForm:
		return FormMatch
	case FormatMatching:
		return Matching
	default:
		return DefinitionMatch
	}
}

// EnabledFormats lists the formats the settings allow, in a stable order.
func EnabledFormats(s entity.Settings) []Format {
	var out []Format
	if s.MultipleChoice {
		out = append(out, FormatDefinition, FormatWord, FormatSentence)
	}
	if s.FormMatch {
		out = append(out, FormatForm)
	}
	if s.Matching {
		out = append(out, FormatMatching)
	}
	return out
}

// stepType returns the question kind of a step in the per-word cycle.
func stepType(step int) QuestionType {
	return QuestionType(entity.ChallengeSteps[step])
}
