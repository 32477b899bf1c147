package mastery

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/bluemanta7/MantaMind/internal/entity"
	"github.com/bluemanta7/MantaMind/internal/usecase/corpus"
)

// AccountStore is what the engine needs from the account service.
type AccountStore interface {
	RequireLogin(ctx context.Context) (string, error)
	Account(ctx context.Context, username string) (*entity.UserAccount, error)
	SaveAccount(ctx context.Context, username string, acct *entity.UserAccount) error
	Settings(ctx context.Context) entity.Settings
}

// Observer is told about every progress change and about reaching 100%.
type Observer interface {
	ProgressChanged(s Snapshot)
	Completed()
}

// Engine owns per-word streak state of the active user.
type Engine struct {
	accounts AccountStore
	corpus   *corpus.Corpus
	observer Observer
	logger   logrus.FieldLogger

	last Snapshot
}

// NewEngine constructs an engine. The corpus can be attached later with SetCorpus.
func NewEngine(accounts AccountStore, observer Observer, logger logrus.FieldLogger) *Engine {
	return &Engine{accounts: accounts, observer: observer, logger: logger}
}

// SetCorpus switches the percentage from learned counts to partial credit.
func (e *Engine) SetCorpus(c *corpus.Corpus) { e.corpus = c }

// Snapshot returns the most recently computed progress.
func (e *Engine) Snapshot() Snapshot { return e.last }

// Init computes the progress from stored state without firing Completed.
func (e *Engine) Init(ctx context.Context) (Snapshot, error) {
	settings := e.accounts.Settings(ctx)
	user, err := e.accounts.RequireLogin(ctx)
	if err != nil {
		e.last = Compute(nil, e.corpus, settings)
		return e.last, err
	}
	acct, err := e.accounts.Account(ctx, user)
	if err != nil {
		return Snapshot{}, err
	}
	e.last = Compute(acct, e.corpus, settings)
	e.observer.ProgressChanged(e.last)
	return e.last, nil
}

// Record applies one answer for the active user and persists it before
// returning. Completed fires only when this answer raises the user's own
// percentage to 100; the baseline is taken from the stored account, not from
// the last snapshot, so it holds without Init and across user switches.
func (e *Engine) Record(ctx context.Context, word string, correct bool) error {
	user, err := e.accounts.RequireLogin(ctx)
	if err != nil {
		return err
	}
	acct, err := e.accounts.Account(ctx, user)
	if err != nil {
		return err
	}
	settings := e.accounts.Settings(ctx)
	prev := Compute(acct, e.corpus, settings).Percentage

	switch Apply(acct, word, correct, settings.WordThreshold) {
	case Learned:
		e.logger.WithFields(logrus.Fields{"user": user, "word": word, "streak": acct.Streak(word)}).Info("word learned")
	case Demoted:
		e.logger.WithFields(logrus.Fields{"user": user, "word": word}).Info("word moved back to in-progress")
	}
	if err := e.accounts.SaveAccount(ctx, user, acct); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}

	e.last = Compute(acct, e.corpus, settings)
	e.observer.ProgressChanged(e.last)
	if prev < 100 && e.last.Percentage == 100 {
		e.observer.Completed()
	}
	return nil
}
