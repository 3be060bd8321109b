package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("QUIZ_COUNTDOWN", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Storage.Driver != "sqlite" {
		t.Errorf("Storage.Driver = %q, want sqlite", cfg.Storage.Driver)
	}
	if cfg.Quiz.Countdown != 20 || cfg.Quiz.TickInterval != time.Second {
		t.Errorf("Quiz = %+v, want 20 ticks of 1s", cfg.Quiz)
	}
	if cfg.Profiles.LegacyBook != "Luke" {
		t.Errorf("Profiles.LegacyBook = %q, want Luke", cfg.Profiles.LegacyBook)
	}
	if cfg.Reminders.Schedule != "0 8 * * *" {
		t.Errorf("Reminders.Schedule = %q", cfg.Reminders.Schedule)
	}
	if len(cfg.Narration.Voices) == 0 {
		t.Error("Narration.Voices is empty")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("QUIZ_COUNTDOWN", "5")
	t.Setenv("STORAGE_DRIVER", "sqlite")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Quiz.Countdown != 5 {
		t.Errorf("Quiz.Countdown = %d, want 5", cfg.Quiz.Countdown)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "mongo")
		if _, err := Load(); err == nil {
			t.Fatal("Load() error = nil, want unknown driver")
		}
	})

	t.Run("postgres without url", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "postgres")
		t.Setenv("DATABASE_URL", "")
		if _, err := Load(); !errors.Is(err, ErrMissingEnvironmentVariables) {
			t.Fatalf("Load() error = %v, want ErrMissingEnvironmentVariables", err)
		}
	})

	t.Run("bot without token", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "sqlite")
		t.Setenv("TELEGRAM_API_TOKEN", "")
		if _, err := LoadBot(); !errors.Is(err, ErrMissingEnvironmentVariables) {
			t.Fatalf("LoadBot() error = %v, want ErrMissingEnvironmentVariables", err)
		}
	})
}
