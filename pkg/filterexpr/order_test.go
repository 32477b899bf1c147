package filterexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rowOrder = OrderSchema{
	DefaultPrimary: "word",
	FallbackKey:    "word",
	Fields:         []string{"word", "streak", "credit"},
}

func TestParseOrderBy(t *testing.T) {
	tests := []struct {
		raw  string
		want Order
	}{
		{"", Order{PrimaryKey: "word", SecondaryKey: "streak"}},
		{"streak desc", Order{PrimaryKey: "streak", PrimaryDesc: true, SecondaryKey: "word"}},
		{"credit ASC, streak desc", Order{PrimaryKey: "credit", SecondaryKey: "streak", SecondaryDesc: true}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseOrderBy(tt.raw, rowOrder)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOrderByErrors(t *testing.T) {
	for _, raw := range []string{"state", "streak sideways", "streak desc now", "streak, streak", "word, streak, credit"} {
		_, err := ParseOrderBy(raw, rowOrder)
		assert.Error(t, err, raw)
	}

	_, err := ParseOrderBy("", OrderSchema{FallbackKey: "word", Fields: []string{"word"}})
	assert.Error(t, err)
	_, err = ParseOrderBy("", OrderSchema{DefaultPrimary: "word", FallbackKey: "word", Fields: []string{"word"}})
	assert.Error(t, err)
}
