package quiz

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/bluemanta7/MantaMind/internal/entity"
)

// NoSynonymsHint is shown when the target word has no synonyms.
const NoSynonymsHint = "No synonyms available for this word."

// State is the phase of the current round.
type State int

const (
	NotStarted State = iota
	AwaitingAnswer
	AnswerRevealed
)

func (s State) String() string {
	switch s {
	case AwaitingAnswer:
		return "awaiting-answer"
	case AnswerRevealed:
		return "answer-revealed"
	default:
		return "not-started"
	}
}

// EventKind enumerates what the front end can ask of the selector.
type EventKind int

const (
	AnswerSelected EventKind = iota + 1
	GiveUp
	Advance
	HintRequested
)

// Event is one user interaction. Selection is read only for AnswerSelected.
type Event struct {
	Kind      EventKind
	Selection Selection
}

// SettingsProvider resolves the active user's settings.
type SettingsProvider interface {
	Settings(ctx context.Context) entity.Settings
}

// Recorder consumes one answer verdict for one word.
type Recorder interface {
	Record(ctx context.Context, word string, correct bool) error
}

// SessionSaver persists the session resume state.
type SessionSaver interface {
	SaveSession(ctx context.Context, s *entity.SessionState) error
}

// Renderer displays rounds. It never drives the selector itself.
type Renderer interface {
	ShowQuestion(q Question)
	ShowReveal(q Question, results []Result, gaveUp bool)
	ShowHint(text string)
}

// Selector is the challenge state machine.
type Selector struct {
	session  *entity.SessionState
	builder  *Builder
	settings SettingsProvider
	recorder Recorder
	saver    SessionSaver
	renderer Renderer
	rng      *rand.Rand
	logger   logrus.FieldLogger

	state   State
	current Question
}

// NewSelector wires a selector around the shared session state.
func NewSelector(
	session *entity.SessionState,
	builder *Builder,
	settings SettingsProvider,
	recorder Recorder,
	saver SessionSaver,
	renderer Renderer,
	rng *rand.Rand,
	logger logrus.FieldLogger,
) *Selector {
	return &Selector{
		session:  session,
		builder:  builder,
		settings: settings,
		recorder: recorder,
		saver:    saver,
		renderer: renderer,
		rng:      rng,
		logger:   logger,
	}
}

// State returns the current phase.
func (s *Selector) State() State { return s.state }

// Current returns the question on screen, or nil.
func (s *Selector) Current() Question { return s.current }

// Reset drops the round on screen. The session itself is left to its owner.
func (s *Selector) Reset() {
	s.state = NotStarted
	s.current = nil
}

// Dispatch routes an event to its transition.
func (s *Selector) Dispatch(ctx context.Context, ev Event) error {
	switch ev.Kind {
	case AnswerSelected:
		return s.Answer(ctx, ev.Selection)
	case GiveUp:
		return s.GiveUp(ctx)
	case Advance:
		return s.Advance(ctx)
	case HintRequested:
		return s.Hint()
	default:
		return fmt.Errorf("unknown event kind %d", ev.Kind)
	}
}

// Start begins a challenge on a random word with a format drawn from the
// enabled ones.
func (s *Selector) Start(ctx context.Context) error {
	c := s.builder.Corpus()
	if c.Len() == 0 {
		return entity.ErrCorpusUnavailable
	}
	formats := EnabledFormats(s.settings.Settings(ctx))
	if len(formats) == 0 {
		return entity.ErrNoFormatsEnabled
	}

	idx := s.rng.Intn(c.Len())
	entry, _ := c.At(idx)
	format := formats[s.rng.Intn(len(formats))]

	s.session.ChallengeStarted = true
	s.session.StepIndex = 0
	s.session.WordIndex = idx
	s.session.CurrentWord = &entry

	s.logger.WithFields(logrus.Fields{"word": entry.Word, "format": format}).Debug("challenge started")
	return s.present(ctx, s.builder.Build(format.QuestionType(), entry))
}

// Answer checks sel against the current question and records one verdict per
// scored word.
func (s *Selector) Answer(ctx context.Context, sel Selection) error {
	if s.state != AwaitingAnswer || s.current == nil {
		return entity.ErrNotAwaitingAnswer
	}
	results, err := s.current.Check(sel)
	if err != nil {
		return err
	}
	return s.reveal(ctx, results, false)
}

// GiveUp reveals the answer and records every scored word as incorrect.
func (s *Selector) GiveUp(ctx context.Context) error {
	if s.state != AwaitingAnswer || s.current == nil {
		return entity.ErrNotAwaitingAnswer
	}
	targets := s.current.Targets()
	results := make([]Result, len(targets))
	for i, w := range targets {
		results[i] = Result{Word: w}
	}
	return s.reveal(ctx, results, true)
}

// reveal records every result before leaving AwaitingAnswer, so a failed
// record leaves the round open for another attempt.
func (s *Selector) reveal(ctx context.Context, results []Result, gaveUp bool) error {
	for _, r := range results {
		if err := s.recorder.Record(ctx, r.Word, r.Correct); err != nil {
			return fmt.Errorf("record %q: %w", r.Word, err)
		}
	}
	s.state = AnswerRevealed
	s.renderer.ShowReveal(s.current, results, gaveUp)
	return nil
}

// Advance moves to the next step of the per-word cycle, or to the next word
// after the last step. Before a challenge exists it starts one.
func (s *Selector) Advance(ctx context.Context) error {
	switch s.state {
	case AwaitingAnswer:
		return entity.ErrAnswerPending
	case NotStarted:
		if s.session.ChallengeStarted {
			return s.Resume(ctx)
		}
		return s.Start(ctx)
	}

	c := s.builder.Corpus()
	if c.Len() == 0 {
		return entity.ErrCorpusUnavailable
	}
	s.session.StepIndex++
	if s.session.StepIndex >= len(entity.ChallengeSteps) {
		s.session.StepIndex = 0
		s.session.WordIndex = (s.session.WordIndex + 1) % c.Len()
		entry, _ := c.At(s.session.WordIndex)
		s.session.CurrentWord = &entry
	}
	return s.loadStep(ctx)
}

// Resume restores a challenge persisted by an earlier session. It is a no-op
// when no challenge was in progress.
func (s *Selector) Resume(ctx context.Context) error {
	if !s.session.ChallengeStarted {
		return nil
	}
	c := s.builder.Corpus()
	if c.Len() == 0 {
		return entity.ErrCorpusUnavailable
	}

	if s.session.CurrentWord != nil {
		idx := c.IndexOf(s.session.CurrentWord.Word)
		if idx < 0 {
			return fmt.Errorf("%w: %q", entity.ErrInvalidTask, s.session.CurrentWord.Word)
		}
		s.session.WordIndex = idx
	} else if s.session.WordIndex < 0 || s.session.WordIndex >= c.Len() {
		return fmt.Errorf("%w: index %d", entity.ErrInvalidTask, s.session.WordIndex)
	}
	entry, _ := c.At(s.session.WordIndex)
	s.session.CurrentWord = &entry
	s.session.ClampStep()
	return s.loadStep(ctx)
}

func (s *Selector) loadStep(ctx context.Context) error {
	entry := *s.session.CurrentWord
	return s.present(ctx, s.builder.Build(stepType(s.session.StepIndex), entry))
}

func (s *Selector) present(ctx context.Context, q Question) error {
	if err := s.saver.SaveSession(ctx, s.session); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.current = q
	s.state = AwaitingAnswer
	s.renderer.ShowQuestion(q)
	return nil
}

// Hint shows the target's synonyms.
func (s *Selector) Hint() error {
	if s.current == nil || s.session.CurrentWord == nil {
		return entity.ErrNotAwaitingAnswer
	}
	s.renderer.ShowHint(HintText(*s.session.CurrentWord))
	return nil
}

// HintText formats the synonym hint for an entry.
func HintText(e entity.VocabEntry) string {
	if len(e.Synonyms) == 0 {
		return NoSynonymsHint
	}
	return "Synonyms: " + strings.Join(e.Synonyms, ", ")
}
