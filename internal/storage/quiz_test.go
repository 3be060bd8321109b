package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aliskhannn/quizzible/internal/domain/entities"
)

func TestQuizStorageStopsCountdowns(t *testing.T) {
	s := NewQuizStorage()

	ctx1, cancel1 := context.WithCancel(context.Background())
	first := &LiveQuiz{Session: entities.NewQuizSession(nil, 3, time.Now())}
	first.StartCountdown(cancel1)
	s.Store(1, first)

	if prev := s.Store(1, &LiveQuiz{}); prev != first {
		t.Fatalf("Store() returned %v, want previous quiz", prev)
	}
	if ctx1.Err() == nil {
		t.Fatal("replacing a quiz left its countdown running")
	}

	ctx2, cancel2 := context.WithCancel(context.Background())
	err := s.Update(1, func(q *LiveQuiz) error {
		q.StartCountdown(cancel2)
		return nil
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	s.Delete(1)
	if ctx2.Err() == nil {
		t.Fatal("Delete() left the countdown running")
	}

	if err := s.Update(1, func(*LiveQuiz) error { return nil }); !errors.Is(err, ErrNoLiveQuiz) {
		t.Fatalf("Update() error = %v, want ErrNoLiveQuiz", err)
	}
}

func TestUserStore(t *testing.T) {
	s := NewUserStore[string]()
	s.Set(1, "a")

	if v, ok := s.Get(1); !ok || v != "a" {
		t.Fatalf("Get() = %q, %v", v, ok)
	}
	s.Delete(1)
	if _, ok := s.Get(1); ok {
		t.Fatal("Get() after Delete() found a value")
	}
}
