package service

import (
	"context"

	"github.com/aliskhannn/quizzible/internal/domain/entities"
	"github.com/aliskhannn/quizzible/internal/repository"
)

type ProfileRepository interface {
	Load(ctx context.Context) ([]entities.UserProfile, error)
	Save(ctx context.Context, profiles []entities.UserProfile) error
}

type QuestionRepository interface {
	GetAll(ctx context.Context) ([]entities.Question, error)
	GetByVerse(ctx context.Context, book string, chapter, verse int) ([]entities.Question, error)
}

type VerseRepository interface {
	Get(ctx context.Context, book string, chapter, verse int) (entities.Verse, error)
	Books(ctx context.Context) ([]string, error)
	Chapters(ctx context.Context, book string) ([]int, error)
	Chapter(ctx context.Context, book string, chapter int) ([]entities.Verse, error)
}

type SettingsRepository interface {
	GetNarration(ctx context.Context, defaults repository.NarrationSettings) (repository.NarrationSettings, error)
	SaveNarration(ctx context.Context, s repository.NarrationSettings) error
}

type ReminderRepository interface {
	GetAll(ctx context.Context) ([]repository.ReminderSubscription, error)
	Set(ctx context.Context, sub repository.ReminderSubscription) error
	Delete(ctx context.Context, chatID int64) error
}

// ReminderNotifier sends reminder notifications to users.
type ReminderNotifier interface {
	SendDailyVerse(chatID int64, verse entities.Verse) error
}
