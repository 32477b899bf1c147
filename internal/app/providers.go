package app

import (
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bluemanta7/MantaMind/internal/adapter/terminal"
	"github.com/bluemanta7/MantaMind/internal/entity"
	"github.com/bluemanta7/MantaMind/internal/infrastructure/config"
	"github.com/bluemanta7/MantaMind/internal/repository"
	"github.com/bluemanta7/MantaMind/internal/usecase/account"
	"github.com/bluemanta7/MantaMind/internal/usecase/corpus"
	"github.com/bluemanta7/MantaMind/internal/usecase/mastery"
)

// provideRand seeds the process random source from quiz.seed, or from the
// clock when the seed is zero.
func provideRand(cfg *config.Config) *rand.Rand {
	seed := cfg.Quiz.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func provideSession() *entity.SessionState {
	return &entity.SessionState{}
}

// provideAccounts builds the account service and restores the stored session.
func provideAccounts(ctx context.Context, store repository.KeyValueStore, session *entity.SessionState, logger logrus.FieldLogger) (*account.Service, error) {
	svc := account.NewService(store, session, logger)
	if _, err := svc.LoadSession(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

func provideLoader(cfg *config.Config, rng *rand.Rand, logger logrus.FieldLogger) *corpus.Loader {
	return corpus.NewLoader(cfg.Corpus.Sources, cfg.Corpus.Timeout, rng, logger)
}

// provideCorpus never fails: an unavailable corpus is logged and replaced by
// an empty one, so accounts and settings keep working while rounds refuse to
// start.
func provideCorpus(ctx context.Context, loader *corpus.Loader, logger logrus.FieldLogger) *corpus.Corpus {
	c, err := loader.Load(ctx)
	if err != nil {
		logger.WithError(err).Error("word corpus unavailable, challenges cannot start")
		return corpus.New(nil)
	}
	return c
}

func provideRenderer(out io.Writer, c *corpus.Corpus) *terminal.Renderer {
	r := terminal.NewRenderer(out)
	r.SetCorpus(c)
	return r
}

func provideEngine(accounts mastery.AccountStore, observer mastery.Observer, c *corpus.Corpus, logger logrus.FieldLogger) *mastery.Engine {
	e := mastery.NewEngine(accounts, observer, logger)
	e.SetCorpus(c)
	return e
}
