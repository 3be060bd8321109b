package telegram

import (
	"context"
	"errors"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/quizzible/internal/domain/entities"
	"github.com/aliskhannn/quizzible/internal/service"
	"github.com/aliskhannn/quizzible/internal/storage"
)

// maxAlertLength is the Telegram limit for callback answer texts.
const maxAlertLength = 200

const shutdownTimeout = 5 * time.Second

// toast is the text shown when answering a pressed button.
type toast struct {
	text  string
	alert bool
}

func (h *Handler) quizStartHandler(from *tgbotapi.User) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		name, _, err := h.ensureProfile(ctx, from)
		if err != nil {
			return err
		}

		session, err := h.quiz.Start(ctx, name)
		if err != nil {
			return fmt.Errorf("start quiz: %w", err)
		}

		live := &storage.LiveQuiz{Session: session, Profile: name, ChatID: chatID}
		if prev := h.quizzes.Store(from.ID, live); prev != nil {
			if _, err := h.quiz.Finish(ctx, prev.Profile, prev.Session); err != nil {
				h.logger.Warn("failed to finish replaced quiz", zap.Error(err))
			}
		}

		return h.presentQuestion(ctx, from.ID)
	}
}

// presentQuestion sends the current question of the user's quiz and starts
// its countdown.
func (h *Handler) presentQuestion(ctx context.Context, userID int64) error {
	var (
		msg      tgbotapi.MessageConfig
		instance uuid.UUID
	)
	err := h.quizzes.Update(userID, func(q *storage.LiveQuiz) error {
		instance = q.Session.InstanceID
		msg = newHTMLMessage(q.ChatID, h.renderQuestion(q.Session))
		msg.ReplyMarkup = buildQuestionKeyboard(instance)
		return nil
	})
	if err != nil {
		return err
	}

	sent, err := h.bot.Send(msg)
	if err != nil {
		return fmt.Errorf("send question: %w", err)
	}

	countdownCtx, cancel := context.WithCancel(ctx)
	err = h.quizzes.Update(userID, func(q *storage.LiveQuiz) error {
		if q.Session.InstanceID != instance || q.Session.State != entities.QuizAwaitingAnswer {
			cancel()
			return nil
		}
		q.MessageID = sent.MessageID
		q.StartCountdown(cancel)
		return nil
	})
	if err != nil {
		cancel()
		return nil
	}

	go service.RunCountdown(countdownCtx, h.tickInterval, func() bool {
		return h.tick(userID, instance)
	})

	return nil
}

// tick advances the countdown of one question instance. It reports true
// once the countdown has nothing left to do.
func (h *Handler) tick(userID int64, instance uuid.UUID) bool {
	var (
		edit *tgbotapi.EditMessageTextConfig
		done = true
	)
	_ = h.quizzes.Update(userID, func(q *storage.LiveQuiz) error {
		s := q.Session
		if s.InstanceID != instance || s.State != entities.QuizAwaitingAnswer {
			return nil
		}
		if !s.Tick(instance) {
			done = false
			return nil
		}
		q.StopCountdown()
		e := answerEdit(q)
		edit = &e
		return nil
	})

	if edit != nil {
		_ = h.send(*edit)
	}
	return done
}

func (h *Handler) handleQuizCallback(cb *tgbotapi.CallbackQuery, data callbackData, t *toast) HandlerFunc {
	userID := cb.From.ID

	switch data.param(0) {
	case quizStart:
		return h.quizStartHandler(cb.From)
	case quizNext:
		return h.quizNextHandler(userID, t)
	case quizEnd:
		return h.quizEndHandler(userID, t)
	}

	instance, err := uuid.Parse(data.param(1))
	if err != nil {
		return func(context.Context, int64) error {
			return fmt.Errorf("invalid quiz callback %q: %w", data.Raw, err)
		}
	}

	switch data.param(0) {
	case quizReveal:
		return h.quizRevealHandler(userID, instance, t)
	case quizHint:
		return h.quizHintHandler(userID, instance, t)
	case quizCorrect:
		return h.quizGradeHandler(userID, instance, true, t)
	case quizWrong:
		return h.quizGradeHandler(userID, instance, false, t)
	default:
		return func(context.Context, int64) error {
			return fmt.Errorf("unknown quiz callback %q", data.Raw)
		}
	}
}

// updateInstance runs fn on the user's quiz when instance is still the
// presented question. A stale or missing quiz is reported through t.
func (h *Handler) updateInstance(userID int64, instance uuid.UUID, t *toast, fn func(q *storage.LiveQuiz) error) error {
	err := h.quizzes.Update(userID, func(q *storage.LiveQuiz) error {
		if q.Session.InstanceID != instance {
			t.text = msgStaleButton
			return nil
		}
		return fn(q)
	})
	if errors.Is(err, storage.ErrNoLiveQuiz) {
		t.text = msgQuizGone
		return nil
	}
	return err
}

func (h *Handler) quizRevealHandler(userID int64, instance uuid.UUID, t *toast) HandlerFunc {
	return func(_ context.Context, _ int64) error {
		var edit *tgbotapi.EditMessageTextConfig
		err := h.updateInstance(userID, instance, t, func(q *storage.LiveQuiz) error {
			if err := q.Session.Reveal(); err != nil {
				// Already revealed by the countdown.
				if errors.Is(err, entities.ErrInvalidTransition) {
					return nil
				}
				return err
			}
			q.StopCountdown()
			e := answerEdit(q)
			edit = &e
			return nil
		})
		if err != nil || edit == nil {
			return err
		}
		return h.send(*edit)
	}
}

func (h *Handler) quizHintHandler(userID int64, instance uuid.UUID, t *toast) HandlerFunc {
	return func(ctx context.Context, _ int64) error {
		return h.updateInstance(userID, instance, t, func(q *storage.LiveQuiz) error {
			hint := h.quiz.Hint(ctx, q.Session)
			if r := []rune(hint); len(r) > maxAlertLength {
				hint = string(r[:maxAlertLength-1]) + "…"
			}
			t.text = hint
			t.alert = true
			return nil
		})
	}
}

func (h *Handler) quizGradeHandler(userID int64, instance uuid.UUID, correct bool, t *toast) HandlerFunc {
	return func(_ context.Context, _ int64) error {
		var edit *tgbotapi.EditMessageTextConfig
		err := h.updateInstance(userID, instance, t, func(q *storage.LiveQuiz) error {
			counted, err := q.Session.Report(correct)
			if err != nil {
				if errors.Is(err, entities.ErrInvalidTransition) {
					t.text = msgStaleButton
					return nil
				}
				return err
			}
			if !counted {
				return nil
			}

			s := q.Session
			verdict := msgGradedWrong
			if correct {
				verdict = msgGradedCorrect
			}
			text := fmt.Sprintf(msgGraded, esc(s.Current.Ref()), esc(s.Current.Prompt), esc(s.Current.Answer), verdict, s.Streak)
			kb := buildNextKeyboard()
			e := newHTMLEdit(q.ChatID, q.MessageID, text, &kb)
			edit = &e
			return nil
		})
		if err != nil || edit == nil {
			return err
		}
		return h.send(*edit)
	}
}

func (h *Handler) quizNextHandler(userID int64, t *toast) HandlerFunc {
	return func(ctx context.Context, _ int64) error {
		presented := false
		err := h.quizzes.Update(userID, func(q *storage.LiveQuiz) error {
			if q.Session.State != entities.QuizAnswerShown {
				t.text = msgStaleButton
				return nil
			}
			if err := h.quiz.Next(q.Session); err != nil {
				return fmt.Errorf("next question: %w", err)
			}
			presented = true
			return nil
		})
		if errors.Is(err, storage.ErrNoLiveQuiz) {
			t.text = msgQuizGone
			return nil
		}
		if err != nil || !presented {
			return err
		}
		return h.presentQuestion(ctx, userID)
	}
}

func (h *Handler) quizEndHandler(userID int64, t *toast) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		live := h.quizzes.Delete(userID)
		if live == nil {
			t.text = msgQuizGone
			return nil
		}

		stats, err := h.quiz.Finish(ctx, live.Profile, live.Session)
		if err != nil {
			return fmt.Errorf("finish quiz: %w", err)
		}

		msg := newHTMLMessage(chatID, renderSummary(stats))
		msg.ReplyMarkup = buildSummaryKeyboard()
		return h.send(msg)
	}
}

// finishAll saves the stats of every quiz still running.
func (h *Handler) finishAll() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for _, live := range h.quizzes.DeleteAll() {
		if _, err := h.quiz.Finish(ctx, live.Profile, live.Session); err != nil {
			h.logger.Warn("failed to finish quiz on shutdown",
				zap.String("profile", live.Profile),
				zap.Error(err),
			)
		}
	}
}

func (h *Handler) renderQuestion(s *entities.QuizSession) string {
	wait := time.Duration(s.Countdown) * h.tickInterval
	return fmt.Sprintf(msgQuestion, esc(s.Current.Ref()), esc(s.Current.Prompt), wait)
}

func answerEdit(q *storage.LiveQuiz) tgbotapi.EditMessageTextConfig {
	s := q.Session
	text := fmt.Sprintf(msgAnswer, esc(s.Current.Ref()), esc(s.Current.Prompt), esc(s.Current.Answer))
	kb := buildGradeKeyboard(s.InstanceID)
	return newHTMLEdit(q.ChatID, q.MessageID, text, &kb)
}

func renderSummary(stats entities.SessionStats) string {
	return fmt.Sprintf(msgQuizSummary,
		stats.CorrectAnswers, stats.TotalQuestions, stats.Accuracy(), stats.LongestStreak)
}
