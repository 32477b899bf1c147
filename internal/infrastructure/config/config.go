package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/bluemanta7/MantaMind/pkg/validator"
)

// Config holds all configuration for our application
type Config struct {
	Store  StoreConfig  `mapstructure:"store"`
	Corpus CorpusConfig `mapstructure:"corpus"`
	Quiz   QuizConfig   `mapstructure:"quiz"`
	Log    LogConfig    `mapstructure:"log"`
}

// StoreConfig selects the persistent key-value store
type StoreConfig struct {
	Driver string `mapstructure:"driver" validate:"oneof=memory sqlite3 postgres"`
	DSN    string `mapstructure:"dsn" validate:"required_unless=Driver memory"`
	LogSQL bool   `mapstructure:"log_sql"`
}

// CorpusConfig lists the candidate locations of the word corpus
type CorpusConfig struct {
	Sources []string      `mapstructure:"sources" validate:"min=1,dive,required"`
	Timeout time.Duration `mapstructure:"timeout" validate:"min=0"`
}

// QuizConfig holds quiz tuning; a zero seed means seed from the clock
type QuizConfig struct {
	Seed int64 `mapstructure:"seed"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn warning error fatal panic"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

var configFile string

// SetFile points Load at an explicit config file instead of the search path.
func SetFile(path string) {
	configFile = strings.TrimSpace(path)
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("mantamind")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("$HOME/.config/mantamind")
	}

	// Set default values
	setDefaults()

	// Enable reading from environment variables
	viper.SetEnvPrefix("mantamind")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read configuration file
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	config.Store.Driver = strings.ToLower(strings.TrimSpace(config.Store.Driver))
	config.Log.Format = strings.ToLower(strings.TrimSpace(config.Log.Format))

	if err := validator.ValidateStruct(config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Store defaults
	viper.SetDefault("store.driver", "sqlite3")
	viper.SetDefault("store.dsn", "mantamind.db")
	viper.SetDefault("store.log_sql", false)

	// Corpus defaults
	viper.SetDefault("corpus.sources", []string{"./data.json", "./data/data.json", "/data.json"})
	viper.SetDefault("corpus.timeout", 10*time.Second)

	// Quiz defaults
	viper.SetDefault("quiz.seed", 0)

	// Log defaults
	viper.SetDefault("log.level", "warn")
	viper.SetDefault("log.format", "text")
}
