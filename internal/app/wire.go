//go:build wireinject
// +build wireinject

package app

import (
	"context"
	"io"

	"github.com/google/wire"
	"github.com/sirupsen/logrus"

	"github.com/bluemanta7/MantaMind/internal/adapter/terminal"
	"github.com/bluemanta7/MantaMind/internal/infrastructure/config"
	"github.com/bluemanta7/MantaMind/internal/infrastructure/database"
	"github.com/bluemanta7/MantaMind/internal/infrastructure/logging"
	"github.com/bluemanta7/MantaMind/internal/usecase/account"
	"github.com/bluemanta7/MantaMind/internal/usecase/backup"
	"github.com/bluemanta7/MantaMind/internal/usecase/mastery"
	"github.com/bluemanta7/MantaMind/internal/usecase/quiz"
)

var configSet = wire.NewSet(
	config.Load,
	logging.NewLogger,
	wire.Bind(new(logrus.FieldLogger), new(*logrus.Logger)),
)

var storeSet = wire.NewSet(
	database.NewStore,
	provideSession,
	provideAccounts,
	backup.NewService,
)

var quizSet = wire.NewSet(
	provideRand,
	provideLoader,
	provideCorpus,
	quiz.NewBuilder,
	provideEngine,
	quiz.NewSelector,
	wire.Bind(new(mastery.AccountStore), new(*account.Service)),
	wire.Bind(new(mastery.Observer), new(*terminal.Renderer)),
	wire.Bind(new(quiz.SettingsProvider), new(*account.Service)),
	wire.Bind(new(quiz.SessionSaver), new(*account.Service)),
	wire.Bind(new(quiz.Recorder), new(*mastery.Engine)),
	wire.Bind(new(quiz.Renderer), new(*terminal.Renderer)),
)

var terminalSet = wire.NewSet(
	provideRenderer,
	terminal.NewPrompter,
	terminal.NewREPL,
	wire.Bind(new(terminal.Accounts), new(*account.Service)),
	wire.Bind(new(terminal.Quiz), new(*quiz.Selector)),
	wire.Bind(new(terminal.Progress), new(*mastery.Engine)),
)

// Initialize builds the store-backed container using Wire.
func Initialize(ctx context.Context) (*Container, func(), error) {
	wire.Build(
		configSet,
		storeSet,
		wire.Struct(new(Container), "*"),
	)
	return nil, nil, nil
}

// InitializePlay builds the interactive quiz using Wire. The corpus is loaded
// while building.
func InitializePlay(ctx context.Context, in io.Reader, out io.Writer) (*Player, func(), error) {
	wire.Build(
		configSet,
		database.NewStore,
		provideSession,
		provideAccounts,
		quizSet,
		terminalSet,
		wire.Struct(new(Player), "*"),
	)
	return nil, nil, nil
}
