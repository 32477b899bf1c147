package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluemanta7/MantaMind/internal/entity"
)

func TestCorpus_Lookup(t *testing.T) {
	c := New([]entity.VocabEntry{
		{Word: "Lucid"},
		{Word: "lucidity"},
		{Word: "LUCID"},
		{Word: ""},
	})

	require.Equal(t, 2, c.Len())
	assert.Equal(t, []string{"Lucid", "lucidity"}, c.Words())
	assert.Equal(t, 0, c.IndexOf("lucid"))
	assert.Equal(t, -1, c.IndexOf("zeal"))

	e, ok := c.Find("LUCIDITY")
	require.True(t, ok)
	assert.Equal(t, "lucidity", e.Word)

	_, ok = c.At(5)
	assert.False(t, ok)
}

func TestCorpus_EntriesAreCopies(t *testing.T) {
	c := New([]entity.VocabEntry{{Word: "zeal", Synonyms: []string{"ardor"}}})
	e, _ := c.At(0)
	e.Synonyms[0] = "changed"

	again, _ := c.At(0)
	assert.Equal(t, "ardor", again.Synonyms[0])
}

func TestCorpus_WordsRegexp(t *testing.T) {
	c := New([]entity.VocabEntry{{Word: "lucid"}, {Word: "lucidity"}, {Word: "a.b"}})
	re := c.WordsRegexp()
	require.NotNil(t, re)

	assert.Equal(t, "____ and ____, not lucidly, ____",
		re.ReplaceAllString("Lucid and LUCIDITY, not lucidly, a.b", entity.BlankMarker))
	assert.Nil(t, New(nil).WordsRegexp())
}
