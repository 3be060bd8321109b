package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/aliskhannn/quizzible/internal/domain/entities"
	"github.com/aliskhannn/quizzible/internal/service"
)

// tickMsg is one countdown step of a question instance.
type tickMsg struct {
	instance uuid.UUID
}

func (m *Model) tick(instance uuid.UUID) tea.Cmd {
	return tea.Tick(m.deps.TickInterval, func(time.Time) tea.Msg {
		return tickMsg{instance: instance}
	})
}

func (m *Model) startQuiz() (tea.Model, tea.Cmd) {
	session, err := m.deps.Quiz.Start(m.ctx, m.profile)
	if errors.Is(err, service.ErrNoEligibleQuestions) {
		m.openSelection()
		m.setInfo("Choose the verses you know before taking a quiz.")
		return m, nil
	}
	if err != nil {
		m.setError("start quiz", err)
		return m, nil
	}

	m.session = session
	m.lastStats = nil
	m.resetHint()
	m.screen = screenQuiz
	return m, m.tick(session.InstanceID)
}

// handleTick advances the countdown. Ticks scheduled for an earlier
// question instance stop here without rescheduling.
func (m *Model) handleTick(msg tickMsg) (tea.Model, tea.Cmd) {
	s := m.session
	if s == nil || s.State != entities.QuizAwaitingAnswer || msg.instance != s.InstanceID {
		return m, nil
	}
	if s.Tick(msg.instance) {
		return m, nil
	}
	return m, m.tick(msg.instance)
}

func (m *Model) resetHint() {
	m.hint = ""
	m.showHint = false
}

func (m *Model) nextQuestion() tea.Cmd {
	if err := m.deps.Quiz.Next(m.session); err != nil {
		m.setError("next question", err)
		return nil
	}
	m.resetHint()
	return m.tick(m.session.InstanceID)
}

func (m *Model) endQuiz() {
	stats, err := m.deps.Quiz.Finish(m.ctx, m.profile, m.session)
	if err != nil {
		m.setError("save session", err)
	}
	m.lastStats = &stats
}

func (m *Model) updateQuiz(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || m.session == nil {
		return m, nil
	}
	s := m.session

	switch s.State {
	case entities.QuizEnded:
		switch key.String() {
		case "enter", "esc", "q":
			m.session = nil
			m.screen = screenMenu
		}
		return m, nil

	case entities.QuizAwaitingAnswer:
		switch key.String() {
		case " ", "enter":
			if err := s.Reveal(); err != nil {
				m.setError("reveal", err)
			}
		case "h":
			m.toggleHint()
		case "esc", "q":
			m.endQuiz()
		}

	case entities.QuizAnswerShown:
		switch key.String() {
		case "y", "n":
			recorded, err := s.Report(key.String() == "y")
			if err != nil {
				m.setError("record answer", err)
			} else if !recorded {
				m.setInfo("Already recorded for this question.")
			}
		case " ", "enter", "right":
			return m, m.nextQuestion()
		case "h":
			m.toggleHint()
		case "esc", "q":
			m.endQuiz()
		}
	}
	return m, nil
}

func (m *Model) toggleHint() {
	if m.hint == "" {
		m.hint = m.deps.Quiz.Hint(m.ctx, m.session)
	}
	m.showHint = !m.showHint
}

func (m *Model) viewQuiz() string {
	var b strings.Builder
	b.WriteString(m.header("Quiz"))

	s := m.session
	if s == nil {
		return b.String()
	}

	if s.State == entities.QuizEnded {
		stats := s.Stats
		if m.lastStats != nil {
			stats = *m.lastStats
		}
		b.WriteString(styleCorrect.Render("Session complete") + "\n\n")
		b.WriteString(fmt.Sprintf("Questions:      %d\n", stats.TotalQuestions))
		b.WriteString(fmt.Sprintf("Correct:        %d (%.0f%%)\n", stats.CorrectAnswers, stats.Accuracy()))
		b.WriteString(fmt.Sprintf("Longest streak: %d\n", stats.LongestStreak))
		b.WriteString(help("enter: back to menu"))
		return b.String()
	}

	q := s.Current
	b.WriteString(styleRef.Render(q.Ref()) + "\n")
	b.WriteString(q.Prompt + "\n\n")

	b.WriteString(renderBar(float64(s.Remaining)/float64(s.Countdown), 30))
	b.WriteString(fmt.Sprintf(" %d\n\n", s.Remaining))

	if m.showHint {
		b.WriteString(styleVerse.Render(styleSubtle.Render(m.hint)) + "\n\n")
	}

	if s.State == entities.QuizAnswerShown {
		b.WriteString("Answer: " + styleCorrect.Render(q.Answer) + "\n")
		if !s.Graded() {
			b.WriteString("Did you get it right? " + styleCorrect.Render("y") + "/" + styleIncorrect.Render("n") + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("Streak: %d | Correct: %d/%d\n",
		s.Streak, s.Stats.CorrectAnswers, s.Stats.TotalQuestions))

	if s.State == entities.QuizAwaitingAnswer {
		b.WriteString(help("space: show answer | h: hint | esc: end session"))
	} else {
		b.WriteString(help("y/n: grade yourself | enter: next question | h: hint | esc: end session"))
	}
	return b.String()
}
