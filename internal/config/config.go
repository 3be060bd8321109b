package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string    `mapstructure:"env"` // current application environment (local, dev, production etc)
	TelegramAPIToken string    `mapstructure:"-"`   // Telegram API token loaded from environment
	LogPath          string    `mapstructure:"log_path"`
	Data             Data      `mapstructure:"data"`
	Storage          Storage   `mapstructure:"storage"`
	DB               DB        `mapstructure:"database"`
	Quiz             Quiz      `mapstructure:"quiz"`
	Narration        Narration `mapstructure:"narration"`
	Profiles         Profiles  `mapstructure:"profiles"`
	Reminders        Reminders `mapstructure:"reminders"`
}

// Data points at the bundled CSV datasets.
type Data struct {
	QuestionsPath string `mapstructure:"questions_path"`
	VersesPath    string `mapstructure:"verses_path"`
}

// Storage selects the key-value backend.
type Storage struct {
	Driver     string `mapstructure:"driver"` // sqlite or postgres
	SQLitePath string `mapstructure:"sqlite_path"`
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Quiz holds countdown parameters. Countdown is measured in ticks.
type Quiz struct {
	Countdown    int           `mapstructure:"countdown"`
	TickInterval time.Duration `mapstructure:"tick_interval"`
}

// Narration configures the external text-to-speech program.
type Narration struct {
	Command string   `mapstructure:"command"` // empty means autodetect
	Rate    float64  `mapstructure:"rate"`
	Voice   string   `mapstructure:"voice"`
	Voices  []string `mapstructure:"voices"` // choices offered in learn mode
}

// Profiles configures loading of persisted profiles.
type Profiles struct {
	LegacyBook string `mapstructure:"legacy_book"` // book assigned to flat knownChapters/knownVerses records
}

// Reminders configures the daily verse job of the bot.
type Reminders struct {
	Schedule string `mapstructure:"schedule"`
}

// Load reads configuration for the terminal application.
func Load() (*Config, error) {
	return load(false)
}

// LoadBot reads configuration for the Telegram bot, which additionally
// requires the bot token.
func LoadBot() (*Config, error) {
	return load(true)
}

func load(bot bool) (*Config, error) {
	// A missing .env is fine, real deployments pass the environment directly.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	v.SetDefault("env", "local")
	v.SetDefault("log_path", "quizzible.log")
	v.SetDefault("data.questions_path", "assets/data/questions.csv")
	v.SetDefault("data.verses_path", "assets/data/verses.csv")
	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.sqlite_path", "quizzible.db")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("quiz.countdown", 20)
	v.SetDefault("quiz.tick_interval", "1s")
	v.SetDefault("narration.command", "")
	v.SetDefault("narration.rate", 1.0)
	v.SetDefault("narration.voice", "")
	v.SetDefault("narration.voices", []string{"", "en-us", "en-gb"})
	v.SetDefault("profiles.legacy_book", "Luke")
	v.SetDefault("reminders.schedule", "0 8 * * *")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.DB.URL = v.GetString("database_url")
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")

	if cfg.Quiz.Countdown <= 0 {
		return nil, fmt.Errorf("quiz.countdown must be positive, got %d", cfg.Quiz.Countdown)
	}
	if cfg.Quiz.TickInterval <= 0 {
		return nil, fmt.Errorf("quiz.tick_interval must be positive, got %s", cfg.Quiz.TickInterval)
	}

	switch cfg.Storage.Driver {
	case "sqlite":
	case "postgres":
		if cfg.DB.URL == "" {
			return nil, ErrMissingEnvironmentVariables
		}
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.Storage.Driver)
	}

	if bot && cfg.TelegramAPIToken == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	return &cfg, nil
}
