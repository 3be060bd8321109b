package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/aliskhannn/quizzible/internal/config"
	"github.com/aliskhannn/quizzible/internal/delivery/tui"
	"github.com/aliskhannn/quizzible/internal/infra"
	"github.com/aliskhannn/quizzible/internal/logger"
	"github.com/aliskhannn/quizzible/internal/repository"
	"github.com/aliskhannn/quizzible/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "quizzible: %v\n", err)
		os.Exit(1)
	}
}

// run owns every deferred cleanup so storage is closed and logs are flushed
// before main exits.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	lg, err := logger.NewFile(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = lg.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	kv, closeKV, err := infra.OpenKV(ctx, cfg, lg)
	if err != nil {
		lg.Error("failed to open storage", zap.Error(err))
		return fmt.Errorf("open storage: %w", err)
	}
	defer closeKV()

	questions, verses := infra.LoadData(cfg, lg)
	questionRepo := repository.NewQuestionRepository(questions)
	verseRepo := repository.NewVerseRepository(verses)

	profiles, err := service.NewProfileStore(ctx, repository.NewProfileRepository(kv, cfg.Profiles.LegacyBook, lg), lg)
	if err != nil {
		lg.Error("failed to load profiles", zap.Error(err))
		return fmt.Errorf("load profiles: %w", err)
	}

	defaults := repository.NarrationSettings{Rate: cfg.Narration.Rate, Voice: cfg.Narration.Voice}

	m := tui.New(ctx, tui.Deps{
		Profiles: profiles,
		Progress: service.NewProgressService(questionRepo, profiles),
		Quiz:     service.NewQuizService(questionRepo, verseRepo, profiles, cfg.Quiz.Countdown, lg),
		Browser:  service.NewBrowser(verseRepo, questionRepo),
		Settings: repository.NewSettingsRepository(kv),
		NewSpeaker: func(s repository.NarrationSettings) (service.Speaker, error) {
			speaker, err := service.NewCommandSpeaker(cfg.Narration.Command, s)
			if err != nil {
				return nil, err
			}
			return speaker, nil
		},
		NarrationDefaults: defaults,
		Voices:            cfg.Narration.Voices,
		TickInterval:      cfg.Quiz.TickInterval,
		Logger:            lg,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		lg.Error("program stopped", zap.Error(err))
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
