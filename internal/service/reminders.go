package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/aliskhannn/quizzible/internal/domain/entities"
	"github.com/aliskhannn/quizzible/internal/repository"
)

// ReminderService sends subscribed chats a verse they are learning once a day.
type ReminderService struct {
	reminderRepo ReminderRepository
	progress     *ProgressService
	verses       VerseRepository
	notifier     ReminderNotifier
	schedule     string
	logger       *zap.Logger

	pick func(n int) int
}

// NewReminderService creates a new reminder service.
func NewReminderService(
	reminderRepo ReminderRepository,
	progress *ProgressService,
	verses VerseRepository,
	schedule string,
	logger *zap.Logger,
) *ReminderService {
	return &ReminderService{
		reminderRepo: reminderRepo,
		progress:     progress,
		verses:       verses,
		schedule:     schedule,
		logger:       logger,
		pick:         rand.Intn,
	}
}

// SetNotifier sets the notifier (called after handler is created).
func (s *ReminderService) SetNotifier(notifier ReminderNotifier) {
	s.notifier = notifier
}

// Start runs the cron schedule until ctx is cancelled.
func (s *ReminderService) Start(ctx context.Context) {
	s.logger.Info("reminder service started", zap.String("schedule", s.schedule))

	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(s.schedule, func() {
		s.logger.Info("cron triggered: sending daily verses")
		if err := s.sendDailyVerses(ctx); err != nil {
			s.logger.Error("failed to send daily verses", zap.Error(err))
		}
	})
	if err != nil {
		s.logger.Error("failed to add cron job", zap.Error(err))
		return
	}

	c.Start()
	s.logger.Info("cron scheduler started")

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("reminder service stopped")
}

// Subscribe enables the daily verse for chatID using profile's progress.
func (s *ReminderService) Subscribe(ctx context.Context, chatID int64, profile string) error {
	if err := s.reminderRepo.Set(ctx, repository.ReminderSubscription{ChatID: chatID, Profile: profile}); err != nil {
		return fmt.Errorf("set reminder: %w", err)
	}
	s.logger.Info("daily verse enabled", zap.Int64("chat_id", chatID), zap.String("profile", profile))
	return nil
}

// Unsubscribe disables the daily verse for chatID.
func (s *ReminderService) Unsubscribe(ctx context.Context, chatID int64) error {
	if err := s.reminderRepo.Delete(ctx, chatID); err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}
	s.logger.Info("daily verse disabled", zap.Int64("chat_id", chatID))
	return nil
}

// sendDailyVerses notifies every subscriber concurrently.
func (s *ReminderService) sendDailyVerses(ctx context.Context) error {
	if s.notifier == nil {
		return fmt.Errorf("notifier not initialized")
	}

	subs, err := s.reminderRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("get reminders: %w", err)
	}

	const maxConcurrent = 10
	sem := make(chan struct{}, maxConcurrent)
	var wg sync.WaitGroup
	var mu sync.Mutex
	sent := 0

	for _, sub := range subs {
		sub := sub
		wg.Add(1)
		sem <- struct{}{}

		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			ok, err := s.sendDailyVerse(ctx, sub)
			if err != nil {
				s.logger.Error("failed to send daily verse",
					zap.Int64("chat_id", sub.ChatID),
					zap.Error(err))
				return
			}
			if ok {
				mu.Lock()
				sent++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	s.logger.Info("daily verses processed",
		zap.Int("subscribers", len(subs)),
		zap.Int("total_sent", sent),
	)
	return nil
}

func (s *ReminderService) sendDailyVerse(ctx context.Context, sub repository.ReminderSubscription) (bool, error) {
	eligible, err := s.progress.Eligible(ctx, sub.Profile)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			s.logger.Debug("reminder profile missing", zap.String("profile", sub.Profile))
			return false, nil
		}
		return false, fmt.Errorf("get eligible questions: %w", err)
	}
	if len(eligible) == 0 {
		return false, nil
	}

	q := eligible[s.pick(len(eligible))]
	verse, err := s.verses.Get(ctx, q.Book, q.Chapter, q.Verse)
	if err != nil {
		if !errors.Is(err, repository.ErrVerseNotFound) {
			return false, fmt.Errorf("get verse: %w", err)
		}
		verse = entities.Verse{Book: q.Book, Chapter: q.Chapter, Verse: q.Verse, Content: HintPlaceholder}
	}

	if err := s.notifier.SendDailyVerse(sub.ChatID, verse); err != nil {
		return false, fmt.Errorf("send notification: %w", err)
	}
	return true, nil
}
