package entities

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransition = errors.New("invalid quiz transition")
	ErrSessionEnded      = errors.New("quiz session already ended")
)

// QuizState is the state of a quiz session.
type QuizState int

const (
	QuizNotStarted QuizState = iota
	QuizAwaitingAnswer
	QuizAnswerShown
	QuizEnded
)

func (s QuizState) String() string {
	switch s {
	case QuizNotStarted:
		return "not_started"
	case QuizAwaitingAnswer:
		return "awaiting_answer"
	case QuizAnswerShown:
		return "answer_shown"
	case QuizEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// QuizSession is one continuous quiz-taking interval.
//
// Every presented question gets a fresh instance ID. Timer ticks carry the
// instance they were scheduled for, so a tick that outlives its question is
// ignored rather than revealing the next one early.
type QuizSession struct {
	State      QuizState
	Eligible   []Question // questions the session draws from
	Current    *Question
	InstanceID uuid.UUID
	Countdown  int // ticks granted per question
	Remaining  int // ticks left for the current question
	Streak     int
	Stats      SessionStats

	graded bool
}

// NewQuizSession creates a session in NotStarted. Stats.Date is fixed here.
func NewQuizSession(eligible []Question, countdown int, startedAt time.Time) *QuizSession {
	return &QuizSession{
		State:     QuizNotStarted,
		Eligible:  eligible,
		Countdown: countdown,
		Stats:     SessionStats{Date: startedAt},
	}
}

// Present shows q as a new question instance and restarts the countdown.
// Allowed from NotStarted and AnswerShown.
func (s *QuizSession) Present(q Question, instance uuid.UUID) error {
	switch s.State {
	case QuizEnded:
		return ErrSessionEnded
	case QuizNotStarted, QuizAnswerShown:
	default:
		return ErrInvalidTransition
	}

	s.Current = &q
	s.InstanceID = instance
	s.Remaining = s.Countdown
	s.State = QuizAwaitingAnswer
	s.graded = false
	return nil
}

// Tick advances the countdown of the given instance by one unit and reports
// whether the tick revealed the answer. Ticks for any other instance or
// outside AwaitingAnswer are ignored.
func (s *QuizSession) Tick(instance uuid.UUID) bool {
	if s.State != QuizAwaitingAnswer || instance != s.InstanceID {
		return false
	}

	s.Remaining--
	if s.Remaining > 0 {
		return false
	}

	s.reveal()
	return true
}

// Reveal shows the answer of the current question.
func (s *QuizSession) Reveal() error {
	switch s.State {
	case QuizEnded:
		return ErrSessionEnded
	case QuizAwaitingAnswer:
		s.reveal()
		return nil
	default:
		return ErrInvalidTransition
	}
}

func (s *QuizSession) reveal() {
	s.Remaining = 0
	s.State = QuizAnswerShown
	s.Stats.TotalQuestions++
}

// Report records the self-graded outcome of the shown answer. Only the first
// report of a question instance counts; later ones return false.
func (s *QuizSession) Report(correct bool) (bool, error) {
	switch s.State {
	case QuizEnded:
		return false, ErrSessionEnded
	case QuizAnswerShown:
	default:
		return false, ErrInvalidTransition
	}

	if s.graded {
		return false, nil
	}
	s.graded = true

	if !correct {
		s.Streak = 0
		return true, nil
	}

	s.Stats.CorrectAnswers++
	s.Streak++
	if s.Streak > s.Stats.LongestStreak {
		s.Stats.LongestStreak = s.Streak
	}
	return true, nil
}

// Graded reports whether the current instance already has an outcome.
func (s *QuizSession) Graded() bool {
	return s.graded
}

// End closes the session and returns its final stats.
func (s *QuizSession) End() (SessionStats, error) {
	if s.State == QuizEnded {
		return SessionStats{}, ErrSessionEnded
	}
	s.State = QuizEnded
	s.Remaining = 0
	return s.Stats, nil
}
