package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserAccount_NormalizeRestoresInvariants(t *testing.T) {
	acc := &UserAccount{
		LearnedWords:    []string{"lucid", "lucid", ""},
		InProgressWords: []string{"lucid", "terse"},
		WordStreaks:     map[string]int{"terse": -2},
		CurrentStreak:   4,
		BestStreak:      1,
	}
	acc.Normalize()

	assert.Equal(t, []string{"lucid"}, acc.LearnedWords)
	assert.Equal(t, []string{"terse"}, acc.InProgressWords)
	assert.Equal(t, 0, acc.WordStreaks["terse"])
	assert.Equal(t, 4, acc.BestStreak)
}

func TestUserAccount_MarkMovesBetweenSets(t *testing.T) {
	acc := NewUserAccount("pw")
	acc.MarkInProgress("lucid")
	acc.MarkLearned("lucid")
	assert.True(t, acc.IsLearned("lucid"))
	assert.False(t, acc.IsInProgress("lucid"))

	acc.MarkInProgress("lucid")
	assert.False(t, acc.IsLearned("lucid"))
	assert.True(t, acc.IsInProgress("lucid"))
}

func TestSettingsPatch_Apply(t *testing.T) {
	var p SettingsPatch
	require.NoError(t, json.Unmarshal([]byte(`{"formMatch":true,"wordThreshold":"5","progressTargetWords":0,"theme":"RED"}`), &p))

	s := p.Apply(DefaultSettings())
	assert.True(t, s.MultipleChoice)
	assert.True(t, s.FormMatch)
	assert.Equal(t, 5, s.WordThreshold)
	assert.Equal(t, DefaultProgressTargetWords, s.ProgressTargetWords)
	assert.Equal(t, ThemeRed, s.Theme)
}

func TestSettingsPatch_LegacyProgressTarget(t *testing.T) {
	var legacy SettingsPatch
	require.NoError(t, json.Unmarshal([]byte(`{"progressTarget":4}`), &legacy))
	assert.Equal(t, 4, legacy.Apply(DefaultSettings()).WordThreshold)

	var both SettingsPatch
	require.NoError(t, json.Unmarshal([]byte(`{"progressTarget":4,"wordThreshold":2}`), &both))
	assert.Equal(t, 2, both.Apply(DefaultSettings()).WordThreshold)
}

func TestFlexInt_UnmarshalGarbage(t *testing.T) {
	var f FlexInt
	require.NoError(t, json.Unmarshal([]byte(`"abc"`), &f))
	assert.Equal(t, FlexInt(0), f)
	require.NoError(t, json.Unmarshal([]byte(`7.9`), &f))
	assert.Equal(t, FlexInt(7), f)
}

func TestFlexBool_Unmarshal(t *testing.T) {
	tests := []struct {
		in    string
		want  bool
		valid bool
	}{
		{in: `true`, want: true, valid: true},
		{in: `false`, valid: true},
		{in: `"true"`, want: true, valid: true},
		{in: `" 0 "`, valid: true},
		{in: `1`, want: true, valid: true},
		{in: `"maybe"`},
		{in: `[1]`},
		{in: `null`},
	}
	for _, tt := range tests {
		var f FlexBool
		require.NoError(t, json.Unmarshal([]byte(tt.in), &f), tt.in)
		v, ok := f.Get()
		assert.Equal(t, tt.valid, ok, tt.in)
		assert.Equal(t, tt.want, v, tt.in)
	}
}

func TestSettingsPatch_StringBools(t *testing.T) {
	var p SettingsPatch
	require.NoError(t, json.Unmarshal([]byte(`{"multipleChoice":"false","matching":"yes","formMatch":"1"}`), &p))

	s := p.Apply(DefaultSettings())
	assert.False(t, s.MultipleChoice)
	assert.Equal(t, DefaultSettings().Matching, s.Matching)
	assert.True(t, s.FormMatch)

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"multipleChoice":false,"matching":null,"formMatch":true}`, string(out))
}
