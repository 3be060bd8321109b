package storage

import "sync"

// UserStore keeps one value per chat user in memory.
type UserStore[T any] struct {
	mu    sync.RWMutex
	items map[int64]T
}

func NewUserStore[T any]() *UserStore[T] {
	return &UserStore[T]{items: make(map[int64]T)}
}

func (s *UserStore[T]) Set(userID int64, v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[userID] = v
}

func (s *UserStore[T]) Get(userID int64) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[userID]
	return v, ok
}

func (s *UserStore[T]) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, userID)
}
