package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aliskhannn/quizzible/internal/service"
)

const leaderboardRows = 10

func (m *Model) openLeaderboard() {
	p, err := m.deps.Profiles.Get(m.profile)
	if err != nil {
		m.setError("open leaderboard", err)
		return
	}
	m.board = service.BuildLeaderboard(p.Stats)
	m.screen = screenLeaderboard
}

func (m *Model) updateLeaderboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "enter", "q":
			m.screen = screenMenu
		}
	}
	return m, nil
}

func (m *Model) viewLeaderboard() string {
	var b strings.Builder
	b.WriteString(m.header("Leaderboard"))

	if len(m.board.ByStreak) == 0 {
		b.WriteString("No sessions yet. Take a quiz first.\n")
		b.WriteString(help("esc: menu"))
		return b.String()
	}

	streak := renderBoard("Longest streak", m.board.ByStreak, func(e service.LeaderboardEntry) string {
		return fmt.Sprintf("%3d", e.Stats.LongestStreak)
	})
	accuracy := renderBoard("Accuracy", m.board.ByAccuracy, func(e service.LeaderboardEntry) string {
		return fmt.Sprintf("%3.0f%% %s", e.Accuracy, renderBar(e.Accuracy/100, 10))
	})
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, stylePanel.Render(streak), stylePanel.Render(accuracy)))
	b.WriteString("\n" + styleSubtle.Render("Highlighted: your latest session"))
	b.WriteString(help("esc: menu"))
	return b.String()
}

func renderBoard(title string, entries []service.LeaderboardEntry, value func(service.LeaderboardEntry) string) string {
	var b strings.Builder
	b.WriteString(styleHeader.Render(title) + "\n")
	for i, e := range entries {
		if i == leaderboardRows {
			break
		}
		line := fmt.Sprintf("%2d. %s  %s", i+1, e.Stats.Date.Local().Format("2006-01-02 15:04"), value(e))
		if e.Current {
			line = styleHighlight.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
