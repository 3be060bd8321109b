package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/aliskhannn/quizzible/internal/domain/entities"
	"github.com/aliskhannn/quizzible/internal/repository"
	"github.com/aliskhannn/quizzible/internal/service"
	"github.com/aliskhannn/quizzible/internal/storage"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	ctx := context.Background()
	logger := zap.NewNop()
	kv := storage.NewMemoryKV()

	questions := repository.NewQuestionRepository([]entities.Question{
		{Book: "John", Chapter: 3, Verse: 16, ID: "1", Prompt: "Who so loved the world?", Answer: "God"},
	})
	verses := repository.NewVerseRepository([]entities.Verse{
		{Book: "John", Chapter: 3, Verse: 16, Content: "For God so loved the world"},
	})

	profiles, err := service.NewProfileStore(ctx, repository.NewProfileRepository(kv, "Luke", logger), logger)
	if err != nil {
		t.Fatalf("NewProfileStore() error = %v", err)
	}

	return New(ctx, Deps{
		Profiles: profiles,
		Progress: service.NewProgressService(questions, profiles),
		Quiz:     service.NewQuizService(questions, verses, profiles, 3, logger),
		Browser:  service.NewBrowser(verses, questions),
		Settings: repository.NewSettingsRepository(kv),
		NewSpeaker: func(repository.NarrationSettings) (service.Speaker, error) {
			return nil, service.ErrNarrationUnsupported
		},
		NarrationDefaults: repository.NarrationSettings{Rate: 1},
		TickInterval:      time.Second,
		Logger:            logger,
	})
}

func press(m *Model, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m.Update(msg)
	}
}

func createProfile(t *testing.T, m *Model, name string) {
	t.Helper()
	press(m, "n", name, "enter")
	if m.profile != name || m.screen != screenMenu {
		t.Fatalf("after creating profile: profile %q, screen %d", m.profile, m.screen)
	}
}

func TestCreateProfile(t *testing.T) {
	m := newTestModel(t)
	createProfile(t, m, "anna")

	press(m, "esc", "n", "anna", "enter")
	if !m.statusErr || !strings.Contains(m.status, "already exists") {
		t.Fatalf("status = %q, want duplicate error", m.status)
	}
}

func TestQuizWithoutProgressOpensSelection(t *testing.T) {
	m := newTestModel(t)
	createProfile(t, m, "anna")

	press(m, "enter")
	if m.screen != screenSelection {
		t.Fatalf("screen = %d, want selection", m.screen)
	}
	if m.statusErr || m.status == "" {
		t.Fatalf("status = %q, want an explanation", m.status)
	}
}

func TestSelectionThenQuizIgnoresStaleTicks(t *testing.T) {
	m := newTestModel(t)
	createProfile(t, m, "anna")

	// menu: Known verses, add John, add chapter 3, pick verse 16, save
	press(m, "j", "j", "enter", "b", "enter", "c", "enter", "right", "s")
	if m.screen != screenMenu {
		t.Fatalf("screen = %d after save, status %q", m.screen, m.status)
	}

	press(m, "k", "k", "enter")
	if m.screen != screenQuiz || m.session == nil {
		t.Fatalf("quiz did not start, status %q", m.status)
	}

	first := m.session.InstanceID
	m.Update(tickMsg{instance: first})
	if m.session.Remaining != 2 {
		t.Fatalf("Remaining = %d after one tick, want 2", m.session.Remaining)
	}

	press(m, " ", "y", "enter")
	if m.session.InstanceID == first {
		t.Fatal("next question reused the instance id")
	}

	m.Update(tickMsg{instance: first})
	if m.session.Remaining != 3 {
		t.Fatalf("stale tick changed Remaining to %d", m.session.Remaining)
	}

	for i := 0; i < 3; i++ {
		m.Update(tickMsg{instance: m.session.InstanceID})
	}
	if m.session.State != entities.QuizAnswerShown {
		t.Fatalf("State = %s after countdown, want answer_shown", m.session.State)
	}

	press(m, "esc")
	if m.session.State != entities.QuizEnded || m.lastStats == nil {
		t.Fatalf("session not finished: %s", m.session.State)
	}
	if m.lastStats.TotalQuestions != 2 || m.lastStats.CorrectAnswers != 1 {
		t.Fatalf("stats = %+v", *m.lastStats)
	}

	p, _ := m.deps.Profiles.Get("anna")
	if len(p.Stats) != 1 {
		t.Fatalf("profile has %d sessions, want 1", len(p.Stats))
	}
}

func TestLearnNarrationUnsupported(t *testing.T) {
	m := newTestModel(t)
	createProfile(t, m, "anna")

	press(m, "j", "enter", "enter", "enter")
	if m.screen != screenLearn || m.learnStage != learnVerses {
		t.Fatalf("screen %d stage %d, want learn verses", m.screen, m.learnStage)
	}
	if len(m.verseQuestions) != 1 {
		t.Fatalf("verseQuestions = %+v", m.verseQuestions)
	}

	press(m, "r")
	if m.narration != nil || !m.statusErr || !strings.Contains(m.status, "not supported") {
		t.Fatalf("narration %v, status %q", m.narration, m.status)
	}
}
