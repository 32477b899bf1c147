package filterexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rowSchema = Schema{
	"word":    KindString,
	"state":   KindString,
	"streak":  KindInt,
	"credit":  KindNumber,
	"learned": KindBool,
}

func TestCompileAndMatch(t *testing.T) {
	row := map[string]any{"word": "lucid", "state": "in-progress", "streak": 2, "credit": 2.0 / 3, "learned": false}

	tests := []struct {
		filter string
		want   bool
	}{
		{"", true},
		{"streak >= 2 && state == 'in-progress'", true},
		{"learned", false},
		{"credit > 0.5", true},
		{"streak > 0.5", true},
		{"word.startsWith('lu') || learned", true},
		{"word in ['zeal', 'abate']", false},
	}
	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			prg, err := Compile(tt.filter, rowSchema)
			require.NoError(t, err)
			got, err := prg.Match(row)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompileErrors(t *testing.T) {
	for _, filter := range []string{"streak >", "unknown == 1", "streak + 1"} {
		_, err := Compile(filter, rowSchema)
		assert.Error(t, err, filter)
	}

	_, err := Compile("x", Schema{})
	assert.Error(t, err)

	_, err = Compile("x", Schema{"x": "date"})
	assert.Error(t, err)
}

func TestProgramString(t *testing.T) {
	prg, err := Compile("  learned ", rowSchema)
	require.NoError(t, err)
	assert.Equal(t, "learned", prg.String())

	var none *Program
	assert.Equal(t, "", none.String())
}
