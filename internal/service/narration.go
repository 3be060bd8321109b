package service

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/aliskhannn/quizzible/internal/domain/entities"
)

// Speaker reads text aloud and returns when it is done or ctx is cancelled.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

type NarrationEventKind int

const (
	NarrationVerseStarted NarrationEventKind = iota
	NarrationFinished
	NarrationFailed
)

// NarrationEvent reports the progress of a NarrationTask.
type NarrationEvent struct {
	Kind  NarrationEventKind
	Index int // verse index for NarrationVerseStarted
	Err   error
}

// NarrationTask reads a chapter aloud in the background.
type NarrationTask struct {
	cancel    context.CancelFunc
	done      chan struct{}
	events    chan NarrationEvent
	remaining atomic.Int32
}

// StartNarration reads verses from index start to the end, then repeats the
// whole chapter until passes are used up. passes below 1 counts as 1.
func StartNarration(ctx context.Context, speaker Speaker, verses []entities.Verse, start, passes int) *NarrationTask {
	ctx, cancel := context.WithCancel(ctx)
	t := &NarrationTask{
		cancel: cancel,
		done:   make(chan struct{}),
		events: make(chan NarrationEvent),
	}
	t.remaining.Store(int32(max(passes, 1)))

	go t.run(ctx, speaker, verses, max(start, 0))

	return t
}

// Events delivers task progress. The channel is closed when the task stops.
func (t *NarrationTask) Events() <-chan NarrationEvent {
	return t.events
}

// AddRepeat schedules one more pass over the chapter.
func (t *NarrationTask) AddRepeat() {
	t.remaining.Add(1)
}

// Remaining returns the passes left, including the current one.
func (t *NarrationTask) Remaining() int {
	return int(t.remaining.Load())
}

// Cancel stops speech and waits for the task to exit. No event is delivered
// after Cancel returns.
func (t *NarrationTask) Cancel() {
	t.cancel()
	<-t.done
}

func (t *NarrationTask) run(ctx context.Context, speaker Speaker, verses []entities.Verse, index int) {
	defer close(t.events)
	defer close(t.done)

	for {
		for i := index; i < len(verses); i++ {
			if !t.emit(ctx, NarrationEvent{Kind: NarrationVerseStarted, Index: i}) {
				return
			}
			if !t.speak(ctx, speaker, fmt.Sprintf("Verse %d", verses[i].Verse)) {
				return
			}
			if !t.speak(ctx, speaker, verses[i].Content) {
				return
			}
		}

		if t.remaining.Add(-1) <= 0 {
			t.emit(ctx, NarrationEvent{Kind: NarrationFinished})
			return
		}
		index = 0
	}
}

func (t *NarrationTask) speak(ctx context.Context, speaker Speaker, text string) bool {
	if ctx.Err() != nil {
		return false
	}

	err := speaker.Speak(ctx, text)
	if ctx.Err() != nil {
		return false
	}
	if err != nil {
		t.emit(ctx, NarrationEvent{Kind: NarrationFailed, Err: err})
		return false
	}
	return true
}

func (t *NarrationTask) emit(ctx context.Context, e NarrationEvent) bool {
	if ctx.Err() != nil {
		return false
	}
	select {
	case t.events <- e:
		return true
	case <-ctx.Done():
		return false
	}
}
