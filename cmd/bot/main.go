package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/quizzible/internal/config"
	"github.com/aliskhannn/quizzible/internal/delivery/telegram"
	"github.com/aliskhannn/quizzible/internal/infra"
	"github.com/aliskhannn/quizzible/internal/logger"
	"github.com/aliskhannn/quizzible/internal/repository"
	"github.com/aliskhannn/quizzible/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// run owns every deferred cleanup so storage is closed and logs are flushed
// before main exits.
func run() error {
	cfg, err := config.LoadBot()
	if err != nil {
		return err
	}

	lg, err := logger.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Error("failed to create bot", zap.Error(err))
		return fmt.Errorf("create bot: %w", err)
	}

	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Start the bot"},
		{Command: "progress", Description: "Show known verses"},
		{Command: "know", Description: "Know a chapter up to a verse (/know John 3 16)"},
		{Command: "forget", Description: "Forget a chapter or book (/forget John 3)"},
		{Command: "quiz", Description: "Start a quiz"},
		{Command: "learn", Description: "Read a chapter (/learn John 3)"},
		{Command: "leaderboard", Description: "Your best sessions"},
		{Command: "daily", Description: "Daily verse on or off"},
		{Command: "help", Description: "Help"},
	}

	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	bot.Debug = cfg.Env != "production"
	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

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

	progressService := service.NewProgressService(questionRepo, profiles)
	quizService := service.NewQuizService(questionRepo, verseRepo, profiles, cfg.Quiz.Countdown, lg)
	reminderService := service.NewReminderService(
		repository.NewReminderRepository(kv),
		progressService,
		verseRepo,
		cfg.Reminders.Schedule,
		lg,
	)

	handler := telegram.NewHandler(
		bot,
		lg,
		profiles,
		progressService,
		quizService,
		reminderService,
		func() *service.Browser { return service.NewBrowser(verseRepo, questionRepo) },
		cfg.Quiz.TickInterval,
	)

	reminderService.SetNotifier(handler)
	go reminderService.Start(ctx)

	if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("handler stopped", zap.Error(err))
	}

	lg.Info("shutdown signal received")
	return nil
}
