package entity

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Theme names a colour theme for the front end.
type Theme string

const (
	ThemeBlue   Theme = "blue"
	ThemeRed    Theme = "red"
	ThemePurple Theme = "purple"
	ThemeDark   Theme = "dark"
)

// ParseTheme converts an arbitrary string into a supported Theme; ok is false
// for unknown names.
func ParseTheme(name string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(name))) {
	case ThemeBlue:
		return ThemeBlue, true
	case ThemeRed:
		return ThemeRed, true
	case ThemePurple:
		return ThemePurple, true
	case ThemeDark:
		return ThemeDark, true
	default:
		return "", false
	}
}

const (
	DefaultWordThreshold       = 3
	DefaultProgressTargetWords = 10
)

// Settings is the fully resolved configuration of the quiz for one user.
type Settings struct {
	MultipleChoice      bool
	Matching            bool
	FormMatch           bool
	WordThreshold       int
	ProgressTargetWords int
	Theme               Theme
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		MultipleChoice:      true,
		Matching:            false,
		FormMatch:           false,
		WordThreshold:       DefaultWordThreshold,
		ProgressTargetWords: DefaultProgressTargetWords,
		Theme:               ThemeBlue,
	}
}

// SettingsPatch is one stored layer of settings. Absent keys stay nil so
// layers can be merged key by key.
type SettingsPatch struct {
	MultipleChoice      *FlexBool `json:"multipleChoice,omitempty"`
	Matching            *FlexBool `json:"matching,omitempty"`
	FormMatch           *FlexBool `json:"formMatch,omitempty"`
	WordThreshold       *FlexInt  `json:"wordThreshold,omitempty"`
	ProgressTargetWords *FlexInt  `json:"progressTargetWords,omitempty"`
	Theme               *string   `json:"theme,omitempty"`
	ProgressTarget      *FlexInt  `json:"progressTarget,omitempty"` // legacy per-word threshold
}

// Apply overlays the keys defined in p onto s. The legacy progressTarget key
// only counts when the layer has no wordThreshold of its own.
func (p *SettingsPatch) Apply(s Settings) Settings {
	if p == nil {
		return s
	}
	if v, ok := p.MultipleChoice.Get(); ok {
		s.MultipleChoice = v
	}
	if v, ok := p.Matching.Get(); ok {
		s.Matching = v
	}
	if v, ok := p.FormMatch.Get(); ok {
		s.FormMatch = v
	}
	switch {
	case p.WordThreshold != nil:
		if v := int(*p.WordThreshold); v > 0 {
			s.WordThreshold = v
		}
	case p.ProgressTarget != nil:
		if v := int(*p.ProgressTarget); v > 0 {
			s.WordThreshold = v
		}
	}
	if p.ProgressTargetWords != nil {
		if v := int(*p.ProgressTargetWords); v > 0 {
			s.ProgressTargetWords = v
		}
	}
	if p.Theme != nil {
		if t, ok := ParseTheme(*p.Theme); ok {
			s.Theme = t
		}
	}
	return s
}

// FlexInt decodes from a JSON number or a numeric string. Anything else
// decodes to zero, which resolution treats as "use the default".
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	var n json.Number
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*f = 0
			return nil
		}
		n = json.Number(strings.TrimSpace(s))
	} else {
		n = json.Number(data)
	}
	if i, err := strconv.Atoi(n.String()); err == nil {
		*f = FlexInt(i)
		return nil
	}
	if fl, err := n.Float64(); err == nil {
		*f = FlexInt(int(fl))
		return nil
	}
	*f = 0
	return nil
}

// FlexBool decodes from a JSON bool, a string such as "true" or "0", or a
// number. Anything else decodes as unset so the next settings layer applies.
type FlexBool struct {
	Value bool
	Valid bool
}

// NewFlexBool returns a set FlexBool holding v.
func NewFlexBool(v bool) *FlexBool {
	return &FlexBool{Value: v, Valid: true}
}

// Get reports the value and whether it is set. It is safe on a nil receiver.
func (f *FlexBool) Get() (bool, bool) {
	if f == nil || !f.Valid {
		return false, false
	}
	return f.Value, true
}

func (f FlexBool) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

func (f *FlexBool) UnmarshalJSON(data []byte) error {
	*f = FlexBool{}
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = FlexBool{Value: b, Valid: true}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if v, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			*f = FlexBool{Value: v, Valid: true}
		}
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexBool{Value: n != 0, Valid: true}
	}
	return nil
}
