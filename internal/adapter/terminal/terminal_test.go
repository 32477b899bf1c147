package terminal

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluemanta7/MantaMind/internal/adapter/repository"
	"github.com/bluemanta7/MantaMind/internal/entity"
	"github.com/bluemanta7/MantaMind/internal/usecase/account"
	"github.com/bluemanta7/MantaMind/internal/usecase/corpus"
	"github.com/bluemanta7/MantaMind/internal/usecase/mastery"
	"github.com/bluemanta7/MantaMind/internal/usecase/quiz"
)

func testEntries() []entity.VocabEntry {
	return []entity.VocabEntry{
		{Word: "lucid", Definition: "expressed clearly", Examples: []string{"Her lucid essay impressed everyone."}, Synonyms: []string{"clear"}},
		{Word: "candid", Definition: "truthful and straightforward", Examples: []string{"A candid reply is welcome."}},
		{Word: "abate", Definition: "to become less intense", Examples: []string{"The storm began to abate."}},
		{Word: "zeal", Definition: "great energy or enthusiasm", Examples: []string{"She worked with zeal."}},
	}
}

type harness struct {
	out      *bytes.Buffer
	session  *entity.SessionState
	accounts *account.Service
	repl     func(script string) *REPL
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	logger, _ := test.NewNullLogger()
	store := repository.NewMemoryStore()
	session := &entity.SessionState{}
	accounts := account.NewService(store, session, logger)
	c := corpus.New(testEntries())

	out := &bytes.Buffer{}
	renderer := NewRenderer(out)
	renderer.SetCorpus(c)
	engine := mastery.NewEngine(accounts, renderer, logger)
	engine.SetCorpus(c)
	rng := rand.New(rand.NewSource(7))
	sel := quiz.NewSelector(session, quiz.NewBuilder(rng, c), accounts, engine, accounts, renderer, rng, logger)

	return &harness{
		out:      out,
		session:  session,
		accounts: accounts,
		repl: func(script string) *REPL {
			return NewREPL(accounts, sel, engine, renderer, NewPrompter(strings.NewReader(script), out), out, logger)
		},
	}
}

func TestREPLSession(t *testing.T) {
	h := newHarness(t)
	script := strings.Join([]string{
		"start",
		"signup alice",
		"pw",
		"next",
		"1",
		"hint",
		"next",
		"giveup",
		"giveup",
		"settings wordThreshold 5",
		"settings",
		"settings bogus 1",
		"bogus",
		"exit",
		"start",
	}, "\n")

	require.NoError(t, h.repl(script).Run(context.Background()))
	out := h.out.String()

	assert.Contains(t, out, "⚠ "+entity.ErrNotLoggedIn.Error())
	assert.Contains(t, out, "Welcome, alice!")
	assert.Contains(t, out, "Per-word: 3 • Questions goal: 10")
	assert.Contains(t, out, "Answer: ")
	assert.Contains(t, out, "⚠ "+entity.ErrNotAwaitingAnswer.Error())
	assert.Contains(t, out, "You gave up on this one.")
	assert.Contains(t, out, "Set wordThreshold = 5 (user).")
	assert.Contains(t, out, "⚠ "+entity.ErrInvalidSetting.Error())
	assert.Contains(t, out, "Unknown command: bogus")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "Bye!"))

	assert.True(t, h.session.ChallengeStarted)
	assert.Equal(t, 1, h.session.StepIndex)
	assert.Equal(t, 5, h.accounts.Settings(context.Background()).WordThreshold)

	acct, err := h.accounts.Account(context.Background(), "alice")
	require.NoError(t, err)
	assert.NotEmpty(t, acct.InProgressWords)
}

func TestREPLStopsAtEOF(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.repl("help\nlogin").Run(context.Background()))
	out := h.out.String()
	assert.Contains(t, out, "match 1=2 2=1")
	assert.Contains(t, out, "Username: ")
}

func TestREPLLoginAndLogout(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.accounts.Signup(ctx, "bob", "secret"))
	require.NoError(t, h.accounts.Logout(ctx))

	script := "login bob\nwrong\nlogin\nbob\nsecret\nstart\nlogout\nprogress\n"
	require.NoError(t, h.repl(script).Run(ctx))
	out := h.out.String()

	assert.Contains(t, out, "⚠ "+entity.ErrInvalidCredentials.Error())
	assert.Contains(t, out, "Welcome, bob!")
	assert.Contains(t, out, "Logged out.")
	assert.False(t, h.session.ChallengeStarted)
	_, err := h.accounts.RequireLogin(ctx)
	assert.ErrorIs(t, err, entity.ErrNotLoggedIn)
}

func TestParsePairs(t *testing.T) {
	got, err := ParsePairs([]string{"1=2", "2=1", " 3=3"})
	require.NoError(t, err)
	assert.Equal(t, map[int]int{0: 1, 1: 0, 2: 2}, got)

	for _, args := range [][]string{nil, {"1-2"}, {"a=1"}, {"0=1"}, {"1=2", "1=3"}} {
		_, err := ParsePairs(args)
		assert.ErrorIs(t, err, entity.ErrInvalidSelection, "%v", args)
	}
}

func TestRendererMatchingAndReveal(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	c := corpus.New(testEntries())
	b := quiz.NewBuilder(rng, c)
	target, _ := c.Find("zeal")
	q, ok := b.Matching(target)
	require.True(t, ok)

	out := &bytes.Buffer{}
	r := NewRenderer(out)
	r.SetCorpus(c)
	r.ShowQuestion(q)
	for i, w := range q.Left() {
		assert.Contains(t, out.String(), "  "+strconv.Itoa(i+1)+". "+w)
	}

	out.Reset()
	results, err := q.Check(quiz.Selection{Pairs: map[int]int{0: q.Answer()[0]}})
	require.NoError(t, err)
	r.ShowReveal(q, results, false)
	assert.Contains(t, out.String(), markWrong+" Not quite.")
	assert.Contains(t, out.String(), markCorrect+" "+q.Left()[0]+" → ")
	assert.Contains(t, out.String(), "Definition: great energy or enthusiasm")
	assert.Contains(t, out.String(), "Example: She worked with ____.")
}

func TestRendererChoiceReveal(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	c := corpus.New(testEntries())
	target, _ := c.Find("lucid")
	q := quiz.NewBuilder(rng, c).Build(quiz.DefinitionMatch, target).(*quiz.ChoiceQuestion)

	out := &bytes.Buffer{}
	r := NewRenderer(out)
	r.ShowQuestion(q)
	assert.Contains(t, out.String(), "  1) ")

	out.Reset()
	results, err := q.Check(quiz.Selection{Choice: q.CorrectIndex()})
	require.NoError(t, err)
	r.ShowReveal(q, results, false)
	assert.Contains(t, out.String(), markCorrect+" Correct!")
	assert.Contains(t, out.String(), strconv.Itoa(q.CorrectIndex()+1)+") "+markCorrect+" expressed clearly")
	assert.Equal(t, len(q.Options())-1, strings.Count(out.String(), markWrong))
}

func TestRendererProgress(t *testing.T) {
	assert.Equal(t, "[░░░░░░░░░░░░░░░░░░░░]   0%", ProgressBar(-5))
	assert.Equal(t, "[██████████░░░░░░░░░░]  50%", ProgressBar(50))
	assert.Equal(t, "[████████████████████] 100%", ProgressBar(140))

	out := &bytes.Buffer{}
	r := NewRenderer(out)
	r.ProgressChanged(mastery.Snapshot{CurrentStreak: 2, BestStreak: 4, Percentage: 30, WordThreshold: 3, ProgressGoal: 30})
	r.Completed()
	r.ShowHint(quiz.NoSynonymsHint)
	r.ShowError(errors.New("boom"))

	assert.Contains(t, out.String(), "Streak: 2 (best 4)")
	assert.Contains(t, out.String(), "Per-word: 3 • Questions goal: 30")
	assert.Contains(t, out.String(), CompletionBanner)
	assert.Contains(t, out.String(), "💡 "+quiz.NoSynonymsHint)
	assert.Contains(t, out.String(), "⚠ boom")
}

func TestPromptPassword(t *testing.T) {
	oldRead, oldTerm := readPassword, isTerminal
	t.Cleanup(func() { readPassword, isTerminal = oldRead, oldTerm })

	out := &bytes.Buffer{}
	p := NewPrompter(strings.NewReader("plain\n"), out)
	got, err := p.Password("Password")
	require.NoError(t, err)
	assert.Equal(t, "plain", got)

	isTerminal = func(int) bool { return true }
	readPassword = func(int) ([]byte, error) { return []byte("hidden"), nil }
	p.fd = 0
	got, err = p.Password("Password")
	require.NoError(t, err)
	assert.Equal(t, "hidden", got)

	readPassword = func(int) ([]byte, error) { return nil, errors.New("no tty") }
	_, err = p.Password("Password")
	assert.Error(t, err)
}
