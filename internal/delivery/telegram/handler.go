package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/quizzible/internal/service"
	"github.com/aliskhannn/quizzible/internal/storage"
)

type Handler struct {
	bot          BotClient
	logger       *zap.Logger
	profiles     ProfileService
	progress     ProgressService
	quiz         QuizService
	reminders    ReminderService
	newBrowser   BrowserFactory
	tickInterval time.Duration

	quizzes  *storage.QuizStorage
	browsers *storage.UserStore[*service.Browser]
}

func NewHandler(
	bot BotClient,
	logger *zap.Logger,
	profiles ProfileService,
	progress ProgressService,
	quiz QuizService,
	reminders ReminderService,
	newBrowser BrowserFactory,
	tickInterval time.Duration,
) *Handler {
	return &Handler{
		bot:          bot,
		logger:       logger,
		profiles:     profiles,
		progress:     progress,
		quiz:         quiz,
		reminders:    reminders,
		newBrowser:   newBrowser,
		tickInterval: tickInterval,
		quizzes:      storage.NewQuizStorage(),
		browsers:     storage.NewUserStore[*service.Browser](),
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			h.finishAll()
			return ctx.Err()
		case update := <-updates:
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID
	from := update.Message.From

	if !update.Message.IsCommand() {
		_ = h.send(newPlainMessage(chatID, msgUseCommands))
		return
	}

	args := strings.Fields(update.Message.CommandArguments())

	var fn HandlerFunc
	switch update.Message.Command() {
	case "start":
		fn = h.startHandler(from)
	case "help":
		fn = h.helpHandler()
	case "progress":
		fn = h.progressHandler(from, 0)
	case "know":
		fn = h.knowHandler(from, args)
	case "forget":
		fn = h.forgetHandler(from, args)
	case "quiz":
		fn = h.quizStartHandler(from)
	case "learn":
		fn = h.learnHandler(from, args)
	case "leaderboard":
		fn = h.leaderboardHandler(from)
	case "daily":
		fn = h.dailyHandler(from, args)
	default:
		fn = func(_ context.Context, chatID int64) error {
			return h.send(newPlainMessage(chatID, msgUnknownCommand))
		}
	}

	h.withErrorHandling(fn)(ctx, chatID)
}

// profileName names the profile of a Telegram user.
func profileName(from *tgbotapi.User) string {
	if from.UserName != "" {
		return "@" + from.UserName
	}
	return fmt.Sprintf("tg%d", from.ID)
}

// ensureProfile returns the profile name of from, creating the profile on
// first contact.
func (h *Handler) ensureProfile(ctx context.Context, from *tgbotapi.User) (string, bool, error) {
	name := profileName(from)

	_, created, err := h.profiles.GetOrCreate(name)
	if err != nil {
		return "", false, fmt.Errorf("get profile: %w", err)
	}
	if created {
		if err := h.profiles.Commit(ctx); err != nil {
			return "", false, fmt.Errorf("commit profiles: %w", err)
		}
		h.logger.Info("profile created",
			zap.Int64("user_id", from.ID),
			zap.String("profile", name),
		)
	}

	return name, created, nil
}

func (h *Handler) sendError(chatID int64, err string) {
	_ = h.send(newHTMLMessage(chatID, err))
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return err
	}
	return nil
}

// answerCallback removes the loading indicator of a pressed button.
func (h *Handler) answerCallback(cb *tgbotapi.CallbackQuery, text string, alert bool) {
	answer := tgbotapi.NewCallback(cb.ID, text)
	answer.ShowAlert = alert
	if _, err := h.bot.Request(answer); err != nil {
		h.logger.Warn("callback answer error", zap.Error(err))
	}
}

func newHTMLMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	return msg
}

func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

func newHTMLEdit(chatID int64, messageID int, text string, kb *tgbotapi.InlineKeyboardMarkup) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	edit.ReplyMarkup = kb
	return edit
}

// esc escapes user and dataset text for HTML messages.
func esc(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeHTML, s)
}
