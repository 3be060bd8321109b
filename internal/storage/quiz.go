package storage

import (
	"context"
	"errors"
	"sync"

	"github.com/aliskhannn/quizzible/internal/domain/entities"
)

var ErrNoLiveQuiz = errors.New("no live quiz")

// LiveQuiz is a quiz running in a chat.
type LiveQuiz struct {
	Session   *entities.QuizSession
	Profile   string
	ChatID    int64
	MessageID int // message showing the current question

	stop context.CancelFunc
}

// StartCountdown records the cancel func of a new countdown, stopping the
// previous one.
func (q *LiveQuiz) StartCountdown(stop context.CancelFunc) {
	q.StopCountdown()
	q.stop = stop
}

// StopCountdown cancels the running countdown, if any.
func (q *LiveQuiz) StopCountdown() {
	if q.stop != nil {
		q.stop()
		q.stop = nil
	}
}

// QuizStorage provides in-memory storage for live quizzes by user ID.
// Every access to a LiveQuiz happens under the storage lock.
type QuizStorage struct {
	mu      sync.Mutex
	quizzes map[int64]*LiveQuiz
}

// NewQuizStorage creates a new QuizStorage.
func NewQuizStorage() *QuizStorage {
	return &QuizStorage{
		quizzes: make(map[int64]*LiveQuiz),
	}
}

// Store saves the quiz of userID and returns the one it replaced, with its
// countdown stopped.
func (s *QuizStorage) Store(userID int64, q *LiveQuiz) *LiveQuiz {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.quizzes[userID]
	if prev != nil {
		prev.StopCountdown()
	}
	s.quizzes[userID] = q
	return prev
}

// Update runs fn on the quiz of userID while holding the lock.
func (s *QuizStorage) Update(userID int64, fn func(q *LiveQuiz) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.quizzes[userID]
	if !ok {
		return ErrNoLiveQuiz
	}
	return fn(q)
}

// Delete removes the quiz of userID, stopping its countdown.
func (s *QuizStorage) Delete(userID int64) *LiveQuiz {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := s.quizzes[userID]
	if q != nil {
		q.StopCountdown()
	}
	delete(s.quizzes, userID)
	return q
}

// DeleteAll removes every live quiz, stopping their countdowns.
func (s *QuizStorage) DeleteAll() []*LiveQuiz {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*LiveQuiz, 0, len(s.quizzes))
	for id, q := range s.quizzes {
		q.StopCountdown()
		out = append(out, q)
		delete(s.quizzes, id)
	}
	return out
}
