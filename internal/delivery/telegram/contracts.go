package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/quizzible/internal/domain/entities"
	"github.com/aliskhannn/quizzible/internal/service"
)

// BotClient is the part of *tgbotapi.BotAPI the handler uses.
type BotClient interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

type ProfileService interface {
	Get(name string) (entities.UserProfile, error)
	GetOrCreate(name string) (entities.UserProfile, bool, error)
	Commit(ctx context.Context) error
}

type ProgressService interface {
	Eligible(ctx context.Context, name string) ([]entities.Question, error)
	Selection(ctx context.Context, name string) (*service.Selection, error)
	Know(ctx context.Context, name, book string, chapter, highest int) (*service.Selection, error)
	Forget(ctx context.Context, name, book string, chapter int) (*service.Selection, error)
}

type QuizService interface {
	Start(ctx context.Context, name string) (*entities.QuizSession, error)
	Next(session *entities.QuizSession) error
	Hint(ctx context.Context, session *entities.QuizSession) string
	Finish(ctx context.Context, name string, session *entities.QuizSession) (entities.SessionStats, error)
}

type ReminderService interface {
	Subscribe(ctx context.Context, chatID int64, profile string) error
	Unsubscribe(ctx context.Context, chatID int64) error
}

// BrowserFactory returns a fresh learn-mode browser for one user.
type BrowserFactory func() *service.Browser
