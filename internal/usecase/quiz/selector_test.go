package quiz

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluemanta7/MantaMind/internal/entity"
)

type fakeSettings struct{ s entity.Settings }

func (f fakeSettings) Settings(context.Context) entity.Settings { return f.s }

type fakeRecorder struct {
	calls []Result
	err   error
}

func (f *fakeRecorder) Record(_ context.Context, word string, correct bool) error {
	f.calls = append(f.calls, Result{Word: word, Correct: correct})
	return f.err
}

type fakeSaver struct {
	saves int
	last  entity.SessionState
}

func (f *fakeSaver) SaveSession(_ context.Context, s *entity.SessionState) error {
	f.saves++
	f.last = *s
	return nil
}

type fakeRenderer struct {
	questions []Question
	reveals   [][]Result
	gaveUp    []bool
	hints     []string
}

func (f *fakeRenderer) ShowQuestion(q Question) { f.questions = append(f.questions, q) }
func (f *fakeRenderer) ShowReveal(_ Question, r []Result, gaveUp bool) {
	f.reveals = append(f.reveals, r)
	f.gaveUp = append(f.gaveUp, gaveUp)
}
func (f *fakeRenderer) ShowHint(text string) { f.hints = append(f.hints, text) }

type selectorFixture struct {
	sel      *Selector
	session  *entity.SessionState
	recorder *fakeRecorder
	saver    *fakeSaver
	renderer *fakeRenderer
}

func newSelectorFixture(settings entity.Settings) *selectorFixture {
	logger, _ := test.NewNullLogger()
	f := &selectorFixture{
		session:  &entity.SessionState{CurrentUser: "ada"},
		recorder: &fakeRecorder{},
		saver:    &fakeSaver{},
		renderer: &fakeRenderer{},
	}
	rng := rand.New(rand.NewSource(11))
	f.sel = NewSelector(f.session, NewBuilder(rng, newFixtureCorpus(fixtureEntries())),
		fakeSettings{settings}, f.recorder, f.saver, f.renderer, rng, logger)
	return f
}

func correctSelection(q Question) Selection {
	switch v := q.(type) {
	case *ChoiceQuestion:
		return Selection{Choice: v.CorrectIndex()}
	case *MatchingQuestion:
		pairs := map[int]int{}
		for i, r := range v.Answer() {
			pairs[i] = r
		}
		return Selection{Pairs: pairs}
	}
	return Selection{}
}

func TestSelector_NoFormatsEnabled(t *testing.T) {
	s := entity.DefaultSettings()
	s.MultipleChoice = false
	f := newSelectorFixture(s)

	err := f.sel.Dispatch(context.Background(), Event{Kind: Advance})

	require.ErrorIs(t, err, entity.ErrNoFormatsEnabled)
	assert.Equal(t, NotStarted, f.sel.State())
	assert.False(t, f.session.ChallengeStarted)
	assert.Empty(t, f.renderer.questions)
}

func TestSelector_StartAnswerAdvanceCycle(t *testing.T) {
	ctx := context.Background()
	f := newSelectorFixture(entity.DefaultSettings())

	require.NoError(t, f.sel.Start(ctx))
	assert.Equal(t, AwaitingAnswer, f.sel.State())
	assert.True(t, f.saver.last.ChallengeStarted)
	start := f.session.WordIndex
	word := f.session.CurrentWord.Word
	assert.Contains(t, []QuestionType{DefinitionMatch, SentenceChoice}, f.sel.Current().Type())

	require.ErrorIs(t, f.sel.Advance(ctx), entity.ErrAnswerPending)

	steps := []QuestionType{SentenceChoice, FormMatch, DefinitionMatch}
	for i, want := range steps {
		q := f.sel.Current()
		require.NoError(t, f.sel.Dispatch(ctx, Event{Kind: AnswerSelected, Selection: correctSelection(q)}))
		assert.Equal(t, AnswerRevealed, f.sel.State())
		require.ErrorIs(t, f.sel.Answer(ctx, Selection{}), entity.ErrNotAwaitingAnswer)

		require.NoError(t, f.sel.Dispatch(ctx, Event{Kind: Advance}))
		assert.Equal(t, want, f.sel.Current().Type(), "step %d", i)
	}

	assert.Equal(t, 0, f.session.StepIndex)
	assert.Equal(t, (start+1)%6, f.session.WordIndex)
	assert.NotEqual(t, word, f.session.CurrentWord.Word)
	require.Len(t, f.recorder.calls, 3)
	for _, c := range f.recorder.calls {
		assert.Equal(t, Result{Word: word, Correct: true}, c)
	}
	assert.Equal(t, f.session.WordIndex, f.saver.last.WordIndex)
}

func TestSelector_InvalidSelectionKeepsRound(t *testing.T) {
	ctx := context.Background()
	f := newSelectorFixture(entity.DefaultSettings())
	require.NoError(t, f.sel.Start(ctx))

	err := f.sel.Answer(ctx, Selection{Choice: 99})

	require.ErrorIs(t, err, entity.ErrInvalidSelection)
	assert.Equal(t, AwaitingAnswer, f.sel.State())
	assert.Empty(t, f.recorder.calls)
}

func TestSelector_WrongSelectionShapeKeepsRound(t *testing.T) {
	ctx := context.Background()

	t.Run("pairs for a choice question", func(t *testing.T) {
		f := newSelectorFixture(entity.DefaultSettings())
		require.NoError(t, f.sel.Start(ctx))
		require.IsType(t, &ChoiceQuestion{}, f.sel.Current())

		err := f.sel.Answer(ctx, Selection{Pairs: map[int]int{0: 0}})

		require.ErrorIs(t, err, entity.ErrInvalidSelection)
		assert.Equal(t, AwaitingAnswer, f.sel.State())
		assert.Empty(t, f.recorder.calls)
	})

	t.Run("choice for a matching question", func(t *testing.T) {
		s := entity.DefaultSettings()
		s.MultipleChoice = false
		s.Matching = true
		f := newSelectorFixture(s)
		require.NoError(t, f.sel.Start(ctx))
		require.IsType(t, &MatchingQuestion{}, f.sel.Current())

		err := f.sel.Answer(ctx, Selection{Choice: 0})

		require.ErrorIs(t, err, entity.ErrInvalidSelection)
		assert.Equal(t, AwaitingAnswer, f.sel.State())
		assert.Empty(t, f.recorder.calls)
	})
}

func TestSelector_GiveUpRecordsEveryTargetIncorrect(t *testing.T) {
	ctx := context.Background()
	s := entity.DefaultSettings()
	s.MultipleChoice = false
	s.Matching = true
	f := newSelectorFixture(s)
	require.NoError(t, f.sel.Start(ctx))
	q, ok := f.sel.Current().(*MatchingQuestion)
	require.True(t, ok)

	require.NoError(t, f.sel.Dispatch(ctx, Event{Kind: GiveUp}))

	require.Len(t, f.recorder.calls, len(q.Left()))
	for _, c := range f.recorder.calls {
		assert.False(t, c.Correct)
	}
	assert.Equal(t, []bool{true}, f.renderer.gaveUp)
	require.ErrorIs(t, f.sel.GiveUp(ctx), entity.ErrNotAwaitingAnswer)
}

func TestSelector_MatchingRecordsEachPair(t *testing.T) {
	ctx := context.Background()
	s := entity.DefaultSettings()
	s.MultipleChoice = false
	s.Matching = true
	f := newSelectorFixture(s)
	require.NoError(t, f.sel.Start(ctx))
	q := f.sel.Current().(*MatchingQuestion)

	require.NoError(t, f.sel.Answer(ctx, correctSelection(q)))

	assert.Len(t, f.recorder.calls, len(q.Left()))
	assert.Contains(t, q.Left(), f.session.CurrentWord.Word)
}

func TestSelector_RecorderErrorSurfaces(t *testing.T) {
	ctx := context.Background()
	f := newSelectorFixture(entity.DefaultSettings())
	f.recorder.err = entity.ErrNotLoggedIn
	require.NoError(t, f.sel.Start(ctx))

	err := f.sel.Answer(ctx, correctSelection(f.sel.Current()))
	assert.True(t, errors.Is(err, entity.ErrNotLoggedIn))
	assert.Equal(t, AwaitingAnswer, f.sel.State())
	assert.Empty(t, f.renderer.reveals)
	require.ErrorIs(t, f.sel.Advance(ctx), entity.ErrAnswerPending)

	f.recorder.err = nil
	require.NoError(t, f.sel.Answer(ctx, correctSelection(f.sel.Current())))
	assert.Equal(t, AnswerRevealed, f.sel.State())
	assert.Len(t, f.renderer.reveals, 1)
}

func TestSelector_Resume(t *testing.T) {
	ctx := context.Background()

	t.Run("by stored word", func(t *testing.T) {
		f := newSelectorFixture(entity.DefaultSettings())
		f.session.ChallengeStarted = true
		f.session.StepIndex = 2
		f.session.CurrentWord = &entity.VocabEntry{Word: "ABATE"}

		require.NoError(t, f.sel.Resume(ctx))
		assert.Equal(t, FormMatch, f.sel.Current().Type())
		assert.Equal(t, "abate", f.sel.Current().Word())
		assert.Equal(t, f.sel.builder.Corpus().IndexOf("abate"), f.session.WordIndex)
	})

	t.Run("by index", func(t *testing.T) {
		f := newSelectorFixture(entity.DefaultSettings())
		f.session.ChallengeStarted = true
		f.session.WordIndex = 3

		require.NoError(t, f.sel.Dispatch(ctx, Event{Kind: Advance}))
		want, _ := f.sel.builder.Corpus().At(3)
		assert.Equal(t, want.Word, f.sel.Current().Word())
		assert.Equal(t, DefinitionMatch, f.sel.Current().Type())
	})

	t.Run("unknown word", func(t *testing.T) {
		f := newSelectorFixture(entity.DefaultSettings())
		f.session.ChallengeStarted = true
		f.session.CurrentWord = &entity.VocabEntry{Word: "missing"}

		require.ErrorIs(t, f.sel.Resume(ctx), entity.ErrInvalidTask)
		assert.Equal(t, NotStarted, f.sel.State())
	})

	t.Run("index out of range", func(t *testing.T) {
		f := newSelectorFixture(entity.DefaultSettings())
		f.session.ChallengeStarted = true
		f.session.WordIndex = 42

		require.ErrorIs(t, f.sel.Resume(ctx), entity.ErrInvalidTask)
	})

	t.Run("nothing to resume", func(t *testing.T) {
		f := newSelectorFixture(entity.DefaultSettings())
		require.NoError(t, f.sel.Resume(ctx))
		assert.Nil(t, f.sel.Current())
	})
}

func TestSelector_Hint(t *testing.T) {
	ctx := context.Background()
	f := newSelectorFixture(entity.DefaultSettings())
	require.ErrorIs(t, f.sel.Dispatch(ctx, Event{Kind: HintRequested}), entity.ErrNotAwaitingAnswer)

	f.session.ChallengeStarted = true
	f.session.CurrentWord = &entity.VocabEntry{Word: "lucid"}
	require.NoError(t, f.sel.Resume(ctx))
	require.NoError(t, f.sel.Dispatch(ctx, Event{Kind: HintRequested}))
	assert.Equal(t, []string{"Synonyms: clear, coherent"}, f.renderer.hints)

	assert.Equal(t, NoSynonymsHint, HintText(entity.VocabEntry{Word: "zeal"}))
}

func TestEnabledFormats(t *testing.T) {
	s := entity.DefaultSettings()
	assert.Equal(t, []Format{FormatDefinition, FormatWord, FormatSentence}, EnabledFormats(s))

	s.FormMatch, s.Matching = true, true
	assert.Len(t, EnabledFormats(s), 5)
	assert.Equal(t, DefinitionMatch, FormatWord.QuestionType())
	assert.Equal(t, Matching, FormatMatching.QuestionType())
}
