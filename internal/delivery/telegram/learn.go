package telegram

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/quizzible/internal/domain/entities"
	"github.com/aliskhannn/quizzible/internal/service"
)

const msgLearnExpired = "Send /learn again to reopen this chapter."

func (h *Handler) learnHandler(from *tgbotapi.User, args []string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		bookArg, nums, ok := splitBookArgs(args, 1)
		if !ok {
			return h.send(newHTMLMessage(chatID, msgLearnUsage))
		}
		chapter := nums[0]

		if _, _, err := h.ensureProfile(ctx, from); err != nil {
			return err
		}

		b := h.newBrowser()
		books, err := b.Books(ctx)
		if err != nil {
			return fmt.Errorf("get books: %w", err)
		}
		book, ok := entities.FindBook(books, bookArg)
		if !ok {
			return h.send(newHTMLMessage(chatID, fmt.Sprintf(msgNoVerses, esc(bookArg))))
		}

		b.SelectBook(book)
		chapters, err := b.Chapters(ctx)
		if err != nil {
			return fmt.Errorf("get chapters: %w", err)
		}
		if !slices.Contains(chapters, chapter) {
			return h.send(newHTMLMessage(chatID, fmt.Sprintf(msgNoChapterText, esc(book), chapter, joinInts(chapters))))
		}
		if err := b.SelectChapter(ctx, chapter); err != nil {
			return err
		}

		h.browsers.Set(from.ID, b)

		text, err := renderLearn(ctx, b)
		if err != nil {
			return err
		}
		msg := newHTMLMessage(chatID, text)
		if kb := buildLearnKeyboard(b.Index(), b.Len()); kb != nil {
			msg.ReplyMarkup = kb
		}
		return h.send(msg)
	}
}

func (h *Handler) learnJumpHandler(cb *tgbotapi.CallbackQuery, data callbackData, t *toast) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if data.param(0) != learnJump {
			return fmt.Errorf("unknown learn callback %q", data.Raw)
		}
		index, err := strconv.Atoi(data.param(1))
		if err != nil {
			return fmt.Errorf("invalid learn callback %q: %w", data.Raw, err)
		}

		b, ok := h.browsers.Get(cb.From.ID)
		if !ok {
			t.text = msgLearnExpired
			return nil
		}
		b.Jump(index)

		text, err := renderLearn(ctx, b)
		if err != nil {
			return err
		}
		return h.send(newHTMLEdit(chatID, cb.Message.MessageID, text, buildLearnKeyboard(b.Index(), b.Len())))
	}
}

// renderLearn shows the current verse with its questions, answers hidden
// behind spoilers.
func renderLearn(ctx context.Context, b *service.Browser) (string, error) {
	v, ok := b.Current()
	if !ok {
		return fmt.Sprintf(msgNoChapterText, esc(b.Book()), b.Chapter(), ""), nil
	}

	questions, err := b.QuestionsForCurrent(ctx)
	if err != nil {
		return "", fmt.Errorf("get questions: %w", err)
	}

	content := v.Content
	if content == "" {
		content = service.HintPlaceholder
	}

	var extra strings.Builder
	if len(questions) > 0 {
		extra.WriteString("\n\n<b>Questions</b>")
		for _, q := range questions {
			fmt.Fprintf(&extra, "\n• %s <tg-spoiler>%s</tg-spoiler>", esc(q.Prompt), esc(q.Answer))
		}
	}

	return fmt.Sprintf(msgLearnVerse, esc(v.Ref()), b.Index()+1, b.Len(), esc(content), extra.String()), nil
}
