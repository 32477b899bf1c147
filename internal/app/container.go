package app

import (
	"github.com/sirupsen/logrus"

	"github.com/bluemanta7/MantaMind/internal/adapter/terminal"
	"github.com/bluemanta7/MantaMind/internal/entity"
	"github.com/bluemanta7/MantaMind/internal/infrastructure/config"
	"github.com/bluemanta7/MantaMind/internal/repository"
	"github.com/bluemanta7/MantaMind/internal/usecase/account"
	"github.com/bluemanta7/MantaMind/internal/usecase/backup"
	"github.com/bluemanta7/MantaMind/internal/usecase/corpus"
	"github.com/bluemanta7/MantaMind/internal/usecase/mastery"
	"github.com/bluemanta7/MantaMind/internal/usecase/quiz"
)

// Container aggregates the store-backed dependencies produced by Wire.
type Container struct {
	Config   *config.Config
	Logger   *logrus.Logger
	Store    repository.KeyValueStore
	Session  *entity.SessionState
	Accounts *account.Service
	Backup   *backup.Service
}

// Player aggregates everything the interactive quiz needs.
type Player struct {
	Logger   *logrus.Logger
	Accounts *account.Service
	Corpus   *corpus.Corpus
	Selector *quiz.Selector
	Engine   *mastery.Engine
	REPL     *terminal.REPL
}
