package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/quizzible/internal/domain/entities"
)

// SendDailyVerse delivers the daily reminder verse to a subscribed chat.
func (h *Handler) SendDailyVerse(chatID int64, verse entities.Verse) error {
	msg := newHTMLMessage(chatID, fmt.Sprintf(msgDailyVerse, esc(verse.Ref()), esc(verse.Content)))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Start quiz", buildQuizCallback(quizStart)),
		),
	)

	if _, err := h.bot.Send(msg); err != nil {
		return fmt.Errorf("send daily verse: %w", err)
	}
	return nil
}
