package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/quizzible/internal/service"
	"github.com/aliskhannn/quizzible/internal/storage"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

// userErrors are failures the user can act on; they get a specific reply
// instead of msgInternalError.
var userErrors = []struct {
	err  error
	text string
}{
	{service.ErrNoEligibleQuestions, msgNoEligible},
	{service.ErrProfileNotFound, msgProfileMissing},
	{storage.ErrNoLiveQuiz, msgQuizGone},
}

// withErrorHandling runs fn and replies to the chat when it fails.
func (h *Handler) withErrorHandling(fn HandlerFunc) func(ctx context.Context, chatID int64) {
	return func(ctx context.Context, chatID int64) {
		err := fn(ctx, chatID)
		if err == nil {
			return
		}

		for _, ue := range userErrors {
			if errors.Is(err, ue.err) {
				h.logger.Debug("handler rejected request",
					zap.Int64("chat_id", chatID),
					zap.Error(err),
				)
				h.sendError(chatID, ue.text)
				return
			}
		}

		h.logger.Error("handle error",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		h.sendError(chatID, msgInternalError)
	}
}
