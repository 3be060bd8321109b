package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
)

// buildQuestionKeyboard builds keyboard shown while the answer is hidden.
func buildQuestionKeyboard(instance uuid.UUID) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👁 Show answer", buildQuizInstanceCallback(quizReveal, instance)),
			tgbotapi.NewInlineKeyboardButtonData("💡 Hint", buildQuizInstanceCallback(quizHint, instance)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏹ End quiz", buildQuizCallback(quizEnd)),
		),
	)
}

// buildGradeKeyboard builds keyboard for self-grading a revealed answer.
func buildGradeKeyboard(instance uuid.UUID) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ I was right", buildQuizInstanceCallback(quizCorrect, instance)),
			tgbotapi.NewInlineKeyboardButtonData("❌ I was wrong", buildQuizInstanceCallback(quizWrong, instance)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏹ End quiz", buildQuizCallback(quizEnd)),
		),
	)
}

func buildNextKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➡️ Next question", buildQuizCallback(quizNext)),
			tgbotapi.NewInlineKeyboardButtonData("⏹ End quiz", buildQuizCallback(quizEnd)),
		),
	)
}

// buildProgressKeyboard builds keyboard for progress screen.
func buildProgressKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Refresh", buildProgressCallback()),
			tgbotapi.NewInlineKeyboardButtonData("🎯 Start quiz", buildQuizCallback(quizStart)),
		),
	)
}

func buildSummaryKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 New quiz", buildQuizCallback(quizStart)),
			tgbotapi.NewInlineKeyboardButtonData("🏆 Leaderboard", buildLeaderboardCallback()),
		),
	)
}

// buildLearnKeyboard builds pagination keyboard for a chapter. There is no
// read-aloud button in chat.
func buildLearnKeyboard(index, total int) *tgbotapi.InlineKeyboardMarkup {
	if total <= 1 {
		return nil
	}

	var row []tgbotapi.InlineKeyboardButton
	if index > 0 {
		row = append(row,
			tgbotapi.NewInlineKeyboardButtonData("⏮", buildLearnJumpCallback(0)),
			tgbotapi.NewInlineKeyboardButtonData("◀️ Previous", buildLearnJumpCallback(index-1)),
		)
	}
	if index < total-1 {
		row = append(row,
			tgbotapi.NewInlineKeyboardButtonData("Next ▶️", buildLearnJumpCallback(index+1)),
			tgbotapi.NewInlineKeyboardButtonData("⏭", buildLearnJumpCallback(total-1)),
		)
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(row)
	return &kb
}
