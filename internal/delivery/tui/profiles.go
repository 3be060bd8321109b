package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aliskhannn/quizzible/internal/service"
)

var menuItems = []string{"Quiz", "Learn", "Known verses", "Leaderboard", "Switch profile"}

func (m *Model) reloadProfiles() {
	m.profiles = m.deps.Profiles.List()
	m.cursor = min(m.cursor, len(m.profiles))
}

func (m *Model) selectProfile(name string) {
	m.profile = name
	m.screen = screenMenu
	m.menuCursor = 0
}

func (m *Model) startCreating() tea.Cmd {
	m.creating = true
	m.nameInput.SetValue("")
	return m.nameInput.Focus()
}

func (m *Model) updateProfiles(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.creating {
		return m.updateNameInput(msg)
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "esc", "q":
		m.shutdown()
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		// the row after the last profile is "new profile"
		if m.cursor < len(m.profiles) {
			m.cursor++
		}
	case "n":
		return m, m.startCreating()
	case "enter":
		if m.cursor == len(m.profiles) {
			return m, m.startCreating()
		}
		m.selectProfile(m.profiles[m.cursor].Name)
	}
	return m, nil
}

func (m *Model) updateNameInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEsc:
			m.creating = false
			m.nameInput.Blur()
			return m, nil

		case tea.KeyEnter:
			p, err := m.deps.Profiles.Create(m.nameInput.Value())
			switch {
			case errors.Is(err, service.ErrEmptyName):
				m.setError("Please enter a name", nil)
				return m, nil
			case errors.Is(err, service.ErrProfileExists):
				m.setError(fmt.Sprintf("A profile named %q already exists", strings.TrimSpace(m.nameInput.Value())), nil)
				return m, nil
			case err != nil:
				m.setError("create profile", err)
				return m, nil
			}

			if err := m.deps.Profiles.Commit(m.ctx); err != nil {
				m.setError("save profiles", err)
			}
			m.creating = false
			m.nameInput.Blur()
			m.reloadProfiles()
			m.selectProfile(p.Name)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m *Model) viewProfiles() string {
	var b strings.Builder
	b.WriteString(m.header("Profiles"))

	if len(m.profiles) == 0 {
		b.WriteString("No profiles yet.\n")
	}
	for i, p := range m.profiles {
		line := fmt.Sprintf("%s %s", cursorMark(m.cursor == i), p.Name)
		if n := len(p.Stats); n > 0 {
			line += styleSubtle.Render(fmt.Sprintf("  %d sessions", n))
		}
		b.WriteString(line + "\n")
	}
	b.WriteString(fmt.Sprintf("%s %s\n", cursorMark(m.cursor == len(m.profiles)), styleCorrect.Render("+ New profile")))

	if m.creating {
		b.WriteString("\n" + m.nameInput.View() + "\n")
		b.WriteString(help("enter: create | esc: cancel"))
		return b.String()
	}

	b.WriteString(help("↑/↓: navigate | enter: select | n: new profile | esc: quit"))
	return b.String()
}

func (m *Model) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.menuCursor > 0 {
			m.menuCursor--
		}
	case "down", "j":
		if m.menuCursor < len(menuItems)-1 {
			m.menuCursor++
		}
	case "esc":
		m.screen = screenProfiles
		m.reloadProfiles()
	case "enter":
		switch m.menuCursor {
		case 0:
			return m.startQuiz()
		case 1:
			m.openLearn()
		case 2:
			m.openSelection()
		case 3:
			m.openLeaderboard()
		case 4:
			m.screen = screenProfiles
			m.reloadProfiles()
		}
	}
	return m, nil
}

func (m *Model) viewMenu() string {
	var b strings.Builder
	b.WriteString(m.header("Menu"))
	for i, item := range menuItems {
		line := fmt.Sprintf("%s %s", cursorMark(m.menuCursor == i), item)
		if m.menuCursor == i {
			line = styleHighlight.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString(help("↑/↓: navigate | enter: open | esc: profiles | ctrl+c: quit"))
	return b.String()
}
