package telegram

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/quizzible/internal/domain/entities"
	"github.com/aliskhannn/quizzible/internal/service"
)

const leaderboardRows = 5

func (h *Handler) startHandler(from *tgbotapi.User) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		name, created, err := h.ensureProfile(ctx, from)
		if err != nil {
			return err
		}

		text := fmt.Sprintf(msgWelcomeBack, esc(name))
		if created {
			text = fmt.Sprintf(msgWelcome, esc(name))
		}
		return h.send(newHTMLMessage(chatID, text))
	}
}

func (h *Handler) helpHandler() HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		return h.send(newHTMLMessage(chatID, msgHelp))
	}
}

// progressHandler shows the known verses. A non-zero messageID edits that
// message instead of sending a new one.
func (h *Handler) progressHandler(from *tgbotapi.User, messageID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		name, _, err := h.ensureProfile(ctx, from)
		if err != nil {
			return err
		}

		sel, err := h.progress.Selection(ctx, name)
		if err != nil {
			return fmt.Errorf("get selection: %w", err)
		}
		eligible, err := h.progress.Eligible(ctx, name)
		if err != nil {
			return fmt.Errorf("get eligible questions: %w", err)
		}

		text := renderProgress(sel, len(eligible))
		kb := buildProgressKeyboard()

		if messageID != 0 {
			return h.send(newHTMLEdit(chatID, messageID, text, &kb))
		}
		msg := newHTMLMessage(chatID, text)
		msg.ReplyMarkup = kb
		return h.send(msg)
	}
}

func (h *Handler) knowHandler(from *tgbotapi.User, args []string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		bookArg, nums, ok := splitBookArgs(args, 2)
		if !ok {
			return h.send(newHTMLMessage(chatID, msgKnowUsage))
		}
		chapter, highest := nums[0], nums[1]

		name, _, err := h.ensureProfile(ctx, from)
		if err != nil {
			return err
		}

		sel, err := h.progress.Selection(ctx, name)
		if err != nil {
			return fmt.Errorf("get selection: %w", err)
		}

		book, ok := entities.FindBook(sel.AvailableBooks(), bookArg)
		if !ok {
			text := fmt.Sprintf(msgUnknownBook, esc(bookArg), esc(strings.Join(sel.AvailableBooks(), ", ")))
			return h.send(newHTMLMessage(chatID, text))
		}
		if !slices.Contains(sel.AvailableChapters(book), chapter) {
			text := fmt.Sprintf(msgUnknownChapter, esc(book), chapter, joinInts(sel.AvailableChapters(book)))
			return h.send(newHTMLMessage(chatID, text))
		}
		if highest <= 0 {
			return h.send(newHTMLMessage(chatID, msgKnowUsage))
		}

		sel, err = h.progress.Know(ctx, name, book, chapter, highest)
		if err != nil {
			return fmt.Errorf("know %s %d: %w", book, chapter, err)
		}

		h.logger.Info("progress updated",
			zap.String("profile", name),
			zap.String("book", book),
			zap.Int("chapter", chapter),
			zap.Int("highest_verse", highest),
		)

		text := fmt.Sprintf(msgKnowSaved, esc(book), chapter, highest, renderKnown(sel))
		return h.send(newHTMLMessage(chatID, text))
	}
}

func (h *Handler) forgetHandler(from *tgbotapi.User, args []string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if len(args) == 0 {
			return h.send(newHTMLMessage(chatID, msgForgetUsage))
		}

		bookArg, nums, ok := splitBookArgs(args, 1)
		chapter := 0
		if ok {
			chapter = nums[0]
		} else {
			bookArg = strings.Join(args, " ")
		}

		name, _, err := h.ensureProfile(ctx, from)
		if err != nil {
			return err
		}

		sel, err := h.progress.Selection(ctx, name)
		if err != nil {
			return fmt.Errorf("get selection: %w", err)
		}

		known := make([]string, 0)
		for _, b := range sel.Books() {
			known = append(known, b.Book)
		}
		book, found := entities.FindBook(known, bookArg)
		if !found {
			return h.send(newHTMLMessage(chatID, fmt.Sprintf(msgNotKnown, esc(bookArg))))
		}

		sel, err = h.progress.Forget(ctx, name, book, chapter)
		if err != nil {
			return fmt.Errorf("forget %s %d: %w", book, chapter, err)
		}

		return h.send(newHTMLMessage(chatID, fmt.Sprintf(msgForgotten, renderKnown(sel))))
	}
}

func (h *Handler) leaderboardHandler(from *tgbotapi.User) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		name, _, err := h.ensureProfile(ctx, from)
		if err != nil {
			return err
		}

		p, err := h.profiles.Get(name)
		if err != nil {
			return fmt.Errorf("get profile: %w", err)
		}

		if len(p.Stats) == 0 {
			return h.send(newHTMLMessage(chatID, msgNoSessions))
		}

		board := service.BuildLeaderboard(p.Stats)
		streak := renderBoard(board.ByStreak, func(e service.LeaderboardEntry) string {
			return fmt.Sprintf("%d in a row", e.Stats.LongestStreak)
		})
		accuracy := renderBoard(board.ByAccuracy, func(e service.LeaderboardEntry) string {
			return fmt.Sprintf("%.0f%% (%d/%d)", e.Accuracy, e.Stats.CorrectAnswers, e.Stats.TotalQuestions)
		})

		return h.send(newHTMLMessage(chatID, fmt.Sprintf(msgLeaderboard, streak, accuracy)))
	}
}

func (h *Handler) dailyHandler(from *tgbotapi.User, args []string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if len(args) != 1 {
			return h.send(newHTMLMessage(chatID, msgDailyUsage))
		}

		name, _, err := h.ensureProfile(ctx, from)
		if err != nil {
			return err
		}

		switch strings.ToLower(args[0]) {
		case "on":
			if err := h.reminders.Subscribe(ctx, chatID, name); err != nil {
				return fmt.Errorf("subscribe: %w", err)
			}
			return h.send(newPlainMessage(chatID, msgDailySubscribed))
		case "off":
			if err := h.reminders.Unsubscribe(ctx, chatID); err != nil {
				return fmt.Errorf("unsubscribe: %w", err)
			}
			return h.send(newPlainMessage(chatID, msgDailyUnsubscribed))
		default:
			return h.send(newHTMLMessage(chatID, msgDailyUsage))
		}
	}
}

// splitBookArgs splits "<book words...> n1 ... nk" into the book name and k
// trailing integers.
func splitBookArgs(args []string, k int) (string, []int, bool) {
	if len(args) <= k {
		return "", nil, false
	}

	nums := make([]int, 0, k)
	for _, a := range args[len(args)-k:] {
		n, err := strconv.Atoi(a)
		if err != nil {
			return "", nil, false
		}
		nums = append(nums, n)
	}

	return strings.Join(args[:len(args)-k], " "), nums, true
}

func renderProgress(sel *service.Selection, eligible int) string {
	if len(sel.Books()) == 0 {
		return msgNoProgress
	}
	return fmt.Sprintf(msgProgress, renderKnown(sel), eligible)
}

// renderKnown lists known chapters per book with a bar of the chapters
// covered out of those that have questions.
func renderKnown(sel *service.Selection) string {
	books := sel.Books()
	if len(books) == 0 {
		return msgNoProgress
	}

	var sb strings.Builder
	for i, b := range books {
		if i > 0 {
			sb.WriteString("\n")
		}
		total := len(sel.AvailableChapters(b.Book))
		fmt.Fprintf(&sb, "<b>%s</b> %s %d/%d\n",
			esc(b.Book), buildProgressBar(len(b.Chapters), total, 10), len(b.Chapters), total)

		chapters := slices.Clone(b.Chapters)
		slices.SortFunc(chapters, func(a, b service.ChapterSelection) int { return a.Chapter - b.Chapter })
		for _, c := range chapters {
			fmt.Fprintf(&sb, "  Chapter %d: verses 1-%d\n", c.Chapter, c.HighestVerse)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func renderBoard(entries []service.LeaderboardEntry, value func(service.LeaderboardEntry) string) string {
	var sb strings.Builder
	for i, e := range entries {
		if i == leaderboardRows {
			break
		}
		mark := "  "
		if e.Current {
			mark = "▶ "
		}
		fmt.Fprintf(&sb, "%s%d. %s  %s\n", mark, i+1, e.Stats.Date.UTC().Format("2006-01-02 15:04"), value(e))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// buildProgressBar draws a bar of length cells filled by current/total.
func buildProgressBar(current, total, length int) string {
	if total <= 0 {
		return strings.Repeat("░", length)
	}

	filled := current * length / total
	filled = max(0, min(filled, length))

	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
