package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/quizzible/internal/domain/entities"
	"github.com/aliskhannn/quizzible/internal/repository"
)

// HintPlaceholder is shown when a question's verse has no text.
const HintPlaceholder = "Verse text unavailable."

var ErrNoEligibleQuestions = errors.New("no eligible questions")

type QuizService struct {
	questions QuestionRepository
	verses    VerseRepository
	profiles  *ProfileStore
	countdown int
	logger    *zap.Logger

	pick func(n int) int
	now  func() time.Time
}

func NewQuizService(
	questions QuestionRepository,
	verses VerseRepository,
	profiles *ProfileStore,
	countdown int,
	logger *zap.Logger,
) *QuizService {
	return &QuizService{
		questions: questions,
		verses:    verses,
		profiles:  profiles,
		countdown: countdown,
		logger:    logger,
		pick:      rand.Intn,
		now:       time.Now,
	}
}

// Start opens a session over the named user's eligible questions and
// presents the first one.
func (s *QuizService) Start(ctx context.Context, name string) (*entities.QuizSession, error) {
	p, err := s.profiles.Get(name)
	if err != nil {
		return nil, err
	}

	all, err := s.questions.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get questions: %w", err)
	}

	session := entities.NewQuizSession(EligibleQuestions(all, p.BookProgress), s.countdown, s.now())
	if len(session.Eligible) == 0 {
		return session, ErrNoEligibleQuestions
	}

	if err := s.Next(session); err != nil {
		return nil, err
	}

	s.logger.Debug("quiz started",
		zap.String("profile", name),
		zap.Int("eligible", len(session.Eligible)),
	)

	return session, nil
}

// Next presents a random eligible question as a new instance.
// Questions are drawn with replacement.
func (s *QuizService) Next(session *entities.QuizSession) error {
	if len(session.Eligible) == 0 {
		return ErrNoEligibleQuestions
	}
	q := session.Eligible[s.pick(len(session.Eligible))]
	return session.Present(q, uuid.New())
}

// Hint returns the verse text of the current question.
func (s *QuizService) Hint(ctx context.Context, session *entities.QuizSession) string {
	if session.Current == nil {
		return HintPlaceholder
	}
	q := session.Current

	v, err := s.verses.Get(ctx, q.Book, q.Chapter, q.Verse)
	if err != nil {
		if !errors.Is(err, repository.ErrVerseNotFound) {
			s.logger.Warn("failed to get verse", zap.String("ref", q.Ref()), zap.Error(err))
		}
		return HintPlaceholder
	}
	if v.Content == "" {
		return HintPlaceholder
	}
	return v.Content
}

// Finish ends the session, appends its stats to the profile and commits.
func (s *QuizService) Finish(ctx context.Context, name string, session *entities.QuizSession) (entities.SessionStats, error) {
	stats, err := session.End()
	if err != nil {
		return entities.SessionStats{}, err
	}

	if err := s.profiles.AppendSession(name, stats); err != nil {
		return stats, fmt.Errorf("append session: %w", err)
	}
	if err := s.profiles.Commit(ctx); err != nil {
		return stats, fmt.Errorf("commit profiles: %w", err)
	}

	s.logger.Info("quiz finished",
		zap.String("profile", name),
		zap.Int("correct", stats.CorrectAnswers),
		zap.Int("total", stats.TotalQuestions),
		zap.Int("longest_streak", stats.LongestStreak),
	)

	return stats, nil
}

// RunCountdown calls tick every interval until tick reports the answer was
// revealed or ctx is cancelled.
func RunCountdown(ctx context.Context, interval time.Duration, tick func() bool) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if tick() {
				return
			}
		}
	}
}
