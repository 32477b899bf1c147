package logging

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/bluemanta7/MantaMind/internal/infrastructure/config"
)

// NewLogger builds a configured logrus logger from application config. Output
// goes to stderr so interactive output on stdout stays readable.
func NewLogger(cfg *config.Config) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	logger.SetLevel(level)
	if cfg.Log.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger, nil
}
