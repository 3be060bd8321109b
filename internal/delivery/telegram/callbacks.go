package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	var t toast
	// Remove the user's "clock" once the button is handled.
	defer func() { h.answerCallback(cb, t.text, t.alert) }()

	if cb.Message == nil {
		return
	}

	data := decodeCallback(cb.Data)

	var fn HandlerFunc
	switch data.Action {
	case actionQuiz:
		fn = h.handleQuizCallback(cb, data, &t)
	case actionLearn:
		fn = h.learnJumpHandler(cb, data, &t)
	case actionProgress:
		fn = h.progressHandler(cb.From, cb.Message.MessageID)
	case actionLeaderboard:
		fn = h.leaderboardHandler(cb.From)
	default:
		h.logger.Warn("unknown callback", zap.String("data", cb.Data))
		return
	}

	h.withErrorHandling(fn)(ctx, cb.Message.Chat.ID)
}
