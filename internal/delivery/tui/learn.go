package tui

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/aliskhannn/quizzible/internal/service"
)

type learnStage int

const (
	learnBooks learnStage = iota
	learnChapters
	learnVerses
)

const (
	minRate  = 0.5
	maxRate  = 2.0
	rateStep = 0.1
	maxPass  = 9
)

// narrationMsg carries one event, or the end, of a narration task.
type narrationMsg struct {
	task   *service.NarrationTask
	event  service.NarrationEvent
	closed bool
}

func listenNarration(task *service.NarrationTask) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-task.Events()
		return narrationMsg{task: task, event: e, closed: !ok}
	}
}

func (m *Model) openLearn() {
	books, err := m.deps.Browser.Books(m.ctx)
	if err != nil {
		m.setError("load books", err)
		return
	}
	if len(books) == 0 {
		m.setInfo("No verse texts are available.")
		return
	}
	m.learnBooks = books
	m.learnStage = learnBooks
	m.learnCursor = max(0, slices.Index(books, m.deps.Browser.Book()))
	m.screen = screenLearn
}

func (m *Model) updateLearn(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch m.learnStage {
	case learnBooks:
		return m.updateLearnBooks(key)
	case learnChapters:
		return m.updateLearnChapters(key)
	default:
		return m.updateLearnVerses(key)
	}
}

func (m *Model) updateLearnBooks(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "up", "k":
		if m.learnCursor > 0 {
			m.learnCursor--
		}
	case "down", "j":
		if m.learnCursor < len(m.learnBooks)-1 {
			m.learnCursor++
		}
	case "esc":
		m.screen = screenMenu
	case "enter":
		m.deps.Browser.SelectBook(m.learnBooks[m.learnCursor])
		chapters, err := m.deps.Browser.Chapters(m.ctx)
		if err != nil {
			m.setError("load chapters", err)
			return m, nil
		}
		m.learnChapters = chapters
		m.learnCursor = 0
		m.learnStage = learnChapters
	}
	return m, nil
}

func (m *Model) updateLearnChapters(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "up", "k":
		if m.learnCursor > 0 {
			m.learnCursor--
		}
	case "down", "j":
		if m.learnCursor < len(m.learnChapters)-1 {
			m.learnCursor++
		}
	case "esc":
		m.learnStage = learnBooks
		m.learnCursor = max(0, slices.Index(m.learnBooks, m.deps.Browser.Book()))
	case "enter":
		if len(m.learnChapters) == 0 {
			break
		}
		if err := m.deps.Browser.SelectChapter(m.ctx, m.learnChapters[m.learnCursor]); err != nil {
			m.setError("load chapter", err)
			return m, nil
		}
		m.learnStage = learnVerses
		m.loadVerseQuestions()
	}
	return m, nil
}

func (m *Model) updateLearnVerses(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	b := m.deps.Browser

	switch key.String() {
	case "left", "h":
		b.Prev()
		return m, m.afterMove()
	case "right", "l":
		b.Next()
		return m, m.afterMove()
	case "home", "g":
		b.Jump(0)
		return m, m.afterMove()
	case "end", "G":
		b.Jump(b.Len() - 1)
		return m, m.afterMove()
	case "r":
		if m.narration != nil {
			m.stopNarration()
			return m, nil
		}
		return m, m.startNarration()
	case "+":
		if m.narration != nil {
			m.narration.AddRepeat()
		} else {
			m.passes = min(m.passes+1, maxPass)
		}
	case "-":
		if m.narration == nil {
			m.passes = max(m.passes-1, 1)
		}
	case "[":
		return m, m.changeNarration(func() { m.narrationSettings.Rate = max(minRate, m.narrationSettings.Rate-rateStep) })
	case "]":
		return m, m.changeNarration(func() { m.narrationSettings.Rate = min(maxRate, m.narrationSettings.Rate+rateStep) })
	case "v":
		return m, m.changeNarration(m.nextVoice)
	case "esc":
		m.stopNarration()
		m.learnStage = learnChapters
		m.learnCursor = max(0, slices.Index(m.learnChapters, b.Chapter()))
	}
	return m, nil
}

// afterMove refreshes the verse panel and restarts narration from the new verse.
func (m *Model) afterMove() tea.Cmd {
	m.loadVerseQuestions()
	if m.narration == nil {
		return nil
	}
	m.stopNarration()
	return m.startNarration()
}

func (m *Model) changeNarration(apply func()) tea.Cmd {
	apply()
	if err := m.deps.Settings.SaveNarration(m.ctx, m.narrationSettings); err != nil {
		m.logger.Warn("failed to save narration settings", zap.Error(err))
	}
	if m.narration == nil {
		return nil
	}
	m.stopNarration()
	return m.startNarration()
}

func (m *Model) nextVoice() {
	voices := m.deps.Voices
	if len(voices) == 0 {
		return
	}
	i := slices.Index(voices, m.narrationSettings.Voice)
	m.narrationSettings.Voice = voices[(i+1)%len(voices)]
}

func (m *Model) loadVerseQuestions() {
	qs, err := m.deps.Browser.QuestionsForCurrent(m.ctx)
	if err != nil {
		m.setError("load questions", err)
		return
	}
	m.verseQuestions = qs
}

func (m *Model) startNarration() tea.Cmd {
	b := m.deps.Browser
	if b.Len() == 0 {
		return nil
	}

	speaker, err := m.deps.NewSpeaker(m.narrationSettings)
	if errors.Is(err, service.ErrNarrationUnsupported) {
		m.setError("Read aloud is not supported on this system.", nil)
		return nil
	}
	if err != nil {
		m.setError("start narration", err)
		return nil
	}

	task := service.StartNarration(m.ctx, speaker, b.Verses(), b.Index(), m.passes)
	m.narration = task
	return listenNarration(task)
}

func (m *Model) stopNarration() {
	if m.narration == nil {
		return
	}
	m.narration.Cancel()
	m.narration = nil
}

func (m *Model) handleNarration(msg narrationMsg) (tea.Model, tea.Cmd) {
	if msg.task != m.narration {
		return m, nil
	}
	if msg.closed {
		m.narration = nil
		return m, nil
	}

	switch msg.event.Kind {
	case service.NarrationVerseStarted:
		m.deps.Browser.Jump(msg.event.Index)
		m.loadVerseQuestions()
	case service.NarrationFinished:
		m.setInfo("Finished reading.")
	case service.NarrationFailed:
		m.setError("read aloud", msg.event.Err)
	}
	return m, listenNarration(msg.task)
}

func (m *Model) viewLearn() string {
	var b strings.Builder
	b.WriteString(m.header("Learn"))

	switch m.learnStage {
	case learnBooks:
		b.WriteString("Choose a book:\n")
		for i, book := range m.learnBooks {
			b.WriteString(fmt.Sprintf("%s %s\n", cursorMark(m.learnCursor == i), book))
		}
		b.WriteString(help("↑/↓: navigate | enter: open | esc: menu"))

	case learnChapters:
		b.WriteString(fmt.Sprintf("Choose a chapter of %s:\n", styleRef.Render(m.deps.Browser.Book())))
		for i, c := range m.learnChapters {
			b.WriteString(fmt.Sprintf("%s Chapter %d\n", cursorMark(m.learnCursor == i), c))
		}
		b.WriteString(help("↑/↓: navigate | enter: open | esc: books"))

	default:
		b.WriteString(m.viewVerse())
	}
	return b.String()
}

func (m *Model) viewVerse() string {
	var b strings.Builder
	br := m.deps.Browser

	v, ok := br.Current()
	if !ok {
		b.WriteString("This chapter has no verses.\n")
		b.WriteString(help("esc: chapters"))
		return b.String()
	}

	b.WriteString(fmt.Sprintf("%s %s\n\n",
		styleRef.Render(v.Ref()),
		styleSubtle.Render(fmt.Sprintf("[%d/%d]", br.Index()+1, br.Len()))))
	b.WriteString(styleVerse.Render(v.Content) + "\n\n")

	for _, q := range m.verseQuestions {
		b.WriteString("  Q: " + q.Prompt + "\n")
		b.WriteString("  A: " + styleCorrect.Render(q.Answer) + "\n")
	}
	if len(m.verseQuestions) > 0 {
		b.WriteString("\n")
	}

	voice := m.narrationSettings.Voice
	if voice == "" {
		voice = "default"
	}
	settings := fmt.Sprintf("rate %.1f | voice %s", m.narrationSettings.Rate, voice)
	if m.narration != nil {
		b.WriteString(styleInfo.Render(fmt.Sprintf("Reading aloud, %d pass(es) left | %s", m.narration.Remaining(), settings)) + "\n")
	} else {
		b.WriteString(styleSubtle.Render(fmt.Sprintf("%d pass(es) | %s", m.passes, settings)) + "\n")
	}

	b.WriteString(help("←/→: verse | g/G: first/last | r: read aloud/stop | +/-: passes | [/]: rate | v: voice | esc: chapters"))
	return b.String()
}
