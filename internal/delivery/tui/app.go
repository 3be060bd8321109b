// Package tui is the terminal front end of Quizzible.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/aliskhannn/quizzible/internal/domain/entities"
	"github.com/aliskhannn/quizzible/internal/repository"
	"github.com/aliskhannn/quizzible/internal/service"
)

// SpeakerFactory builds a speaker for the given preferences.
type SpeakerFactory func(settings repository.NarrationSettings) (service.Speaker, error)

// Deps are the services the UI drives.
type Deps struct {
	Profiles          *service.ProfileStore
	Progress          *service.ProgressService
	Quiz              *service.QuizService
	Browser           *service.Browser
	Settings          service.SettingsRepository
	NewSpeaker        SpeakerFactory
	NarrationDefaults repository.NarrationSettings
	Voices            []string
	TickInterval      time.Duration
	Logger            *zap.Logger
}

type screen int

const (
	screenProfiles screen = iota
	screenMenu
	screenSelection
	screenQuiz
	screenLearn
	screenLeaderboard
)

// Model is the root bubbletea model.
type Model struct {
	ctx    context.Context
	deps   Deps
	logger *zap.Logger

	screen    screen
	status    string
	statusErr bool

	// profiles
	profiles  []entities.UserProfile
	cursor    int
	nameInput textinput.Model
	creating  bool
	profile   string

	menuCursor int

	// selection editor
	selection *service.Selection
	selCursor int
	picker    *picker

	// quiz
	session   *entities.QuizSession
	hint      string
	showHint  bool
	lastStats *entities.SessionStats

	// learn
	learnStage        learnStage
	learnCursor       int
	learnBooks        []string
	learnChapters     []int
	verseQuestions    []entities.Question
	narration         *service.NarrationTask
	narrationSettings repository.NarrationSettings
	passes            int

	board service.Leaderboard
}

// New creates the root model. ctx bounds every blocking call the UI makes.
func New(ctx context.Context, deps Deps) *Model {
	ti := textinput.New()
	ti.Placeholder = "Profile name..."
	ti.CharLimit = 40
	ti.Width = 40
	ti.Prompt = "> "

	settings, err := deps.Settings.GetNarration(ctx, deps.NarrationDefaults)
	if err != nil {
		deps.Logger.Warn("failed to load narration settings", zap.Error(err))
		settings = deps.NarrationDefaults
	}

	m := &Model{
		ctx:               ctx,
		deps:              deps,
		logger:            deps.Logger,
		screen:            screenProfiles,
		nameInput:         ti,
		narrationSettings: settings,
		passes:            1,
	}
	m.reloadProfiles()
	return m
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m.handleTick(msg)
	case narrationMsg:
		return m.handleNarration(msg)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.shutdown()
			return m, tea.Quit
		}
		m.status = ""
	}

	switch m.screen {
	case screenProfiles:
		return m.updateProfiles(msg)
	case screenMenu:
		return m.updateMenu(msg)
	case screenSelection:
		return m.updateSelection(msg)
	case screenQuiz:
		return m.updateQuiz(msg)
	case screenLearn:
		return m.updateLearn(msg)
	case screenLeaderboard:
		return m.updateLeaderboard(msg)
	default:
		return m, nil
	}
}

func (m *Model) View() string {
	var body string
	switch m.screen {
	case screenProfiles:
		body = m.viewProfiles()
	case screenMenu:
		body = m.viewMenu()
	case screenSelection:
		body = m.viewSelection()
	case screenQuiz:
		body = m.viewQuiz()
	case screenLearn:
		body = m.viewLearn()
	case screenLeaderboard:
		body = m.viewLeaderboard()
	default:
		body = "Unknown screen."
	}

	if m.status == "" {
		return body
	}
	style := styleInfo
	if m.statusErr {
		style = styleError
	}
	return body + "\n\n" + style.Render(m.status)
}

// shutdown stops background work and saves an unfinished quiz.
func (m *Model) shutdown() {
	m.stopNarration()

	if m.session != nil && m.session.State != entities.QuizEnded && m.session.State != entities.QuizNotStarted {
		if _, err := m.deps.Quiz.Finish(m.ctx, m.profile, m.session); err != nil {
			m.logger.Error("failed to finish quiz on exit", zap.Error(err))
		}
	}
	if err := m.deps.Profiles.Commit(m.ctx); err != nil {
		m.logger.Error("failed to commit profiles on exit", zap.Error(err))
	}
}

func (m *Model) setInfo(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Model) setError(action string, err error) {
	m.statusErr = true
	if err == nil {
		m.status = action
		return
	}
	m.status = fmt.Sprintf("%s: %v", action, err)
	m.logger.Error(action, zap.Error(err))
}

func (m *Model) header(title string) string {
	var b strings.Builder
	b.WriteString(styleHeader.Render("Quizzible: " + title))
	if m.profile != "" {
		b.WriteString(styleSubtle.Render(" · " + m.profile))
	}
	b.WriteString("\n\n")
	return b.String()
}

func help(keys string) string {
	return "\n" + styleSubtle.Render(keys)
}
