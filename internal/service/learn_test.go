package service

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aliskhannn/quizzible/internal/domain/entities"
	"github.com/aliskhannn/quizzible/internal/repository"
)

func sampleVerses() []entities.Verse {
	return []entities.Verse{
		{Book: "Luke", Chapter: 2, Verse: 2, Content: "second"},
		{Book: "Luke", Chapter: 2, Verse: 1, Content: "first"},
		{Book: "Luke", Chapter: 2, Verse: 3, Content: "third"},
		{Book: "John", Chapter: 3, Verse: 16, Content: "For God so loved the world"},
	}
}

func TestBrowserNavigation(t *testing.T) {
	ctx := context.Background()
	b := NewBrowser(repository.NewVerseRepository(sampleVerses()), repository.NewQuestionRepository(sampleQuestions()))

	if _, ok := b.Current(); ok {
		t.Fatal("Current() before selection reported a verse")
	}

	b.SelectBook("Luke")
	if err := b.SelectChapter(ctx, 2); err != nil {
		t.Fatalf("SelectChapter() error = %v", err)
	}
	if v, _ := b.Current(); v.Verse != 1 {
		t.Fatalf("Current() = %+v, want verse 1", v)
	}

	b.Prev()
	if b.Index() != 0 {
		t.Fatalf("Prev() at start moved to %d", b.Index())
	}
	b.Next()
	b.Next()
	b.Next()
	if b.Index() != 2 || b.Index() != b.Len()-1 {
		t.Fatalf("Next() past end at %d", b.Index())
	}
	b.Jump(-5)
	if b.Index() != 0 {
		t.Fatalf("Jump(-5) = %d, want 0", b.Index())
	}
	b.Jump(1)

	qs, err := b.QuestionsForCurrent(ctx)
	if err != nil {
		t.Fatalf("QuestionsForCurrent() error = %v", err)
	}
	if len(qs) != 1 || qs[0].ID != "e" {
		t.Fatalf("QuestionsForCurrent() = %+v", qs)
	}

	b.SelectBook("John")
	if b.Chapter() != 0 || b.Len() != 0 {
		t.Fatalf("SelectBook() kept chapter %d with %d verses", b.Chapter(), b.Len())
	}
}

type recordingSpeaker struct {
	mu     sync.Mutex
	spoken []string
	err    error
	block  bool
	gate   chan struct{}
}

func (s *recordingSpeaker) Speak(ctx context.Context, text string) error {
	s.mu.Lock()
	s.spoken = append(s.spoken, text)
	s.mu.Unlock()

	if s.block {
		<-ctx.Done()
		return ctx.Err()
	}
	if s.gate != nil {
		select {
		case <-s.gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return s.err
}

func (s *recordingSpeaker) texts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.spoken...)
}

func collect(t *testing.T, task *NarrationTask) []NarrationEvent {
	t.Helper()

	var events []NarrationEvent
	timeout := time.After(2 * time.Second)
	for {
		select {
		case e, ok := <-task.Events():
			if !ok {
				return events
			}
			events = append(events, e)
		case <-timeout:
			t.Fatal("narration did not finish")
		}
	}
}

func chapterVerses() []entities.Verse {
	return []entities.Verse{
		{Book: "Luke", Chapter: 2, Verse: 1, Content: "first"},
		{Book: "Luke", Chapter: 2, Verse: 2, Content: "second"},
	}
}

func TestNarrationRepeats(t *testing.T) {
	speaker := &recordingSpeaker{}
	task := StartNarration(context.Background(), speaker, chapterVerses(), 1, 2)

	events := collect(t, task)

	var indexes []int
	for _, e := range events[:len(events)-1] {
		indexes = append(indexes, e.Index)
	}
	if !reflect.DeepEqual(indexes, []int{1, 0, 1}) {
		t.Fatalf("verse events = %v, want [1 0 1]", indexes)
	}
	if events[len(events)-1].Kind != NarrationFinished {
		t.Fatalf("last event = %+v, want finished", events[len(events)-1])
	}

	spoken := strings.Join(speaker.texts(), "|")
	if spoken != "Verse 2|second|Verse 1|first|Verse 2|second" {
		t.Fatalf("spoken = %q", spoken)
	}
}

func TestNarrationCancel(t *testing.T) {
	speaker := &recordingSpeaker{block: true}
	task := StartNarration(context.Background(), speaker, chapterVerses(), 0, 1)

	e := <-task.Events()
	if e.Kind != NarrationVerseStarted || e.Index != 0 {
		t.Fatalf("first event = %+v", e)
	}

	task.Cancel()

	if _, ok := <-task.Events(); ok {
		t.Fatal("event delivered after Cancel")
	}
}

func TestNarrationAddRepeat(t *testing.T) {
	speaker := &recordingSpeaker{gate: make(chan struct{})}
	task := StartNarration(context.Background(), speaker, chapterVerses()[:1], 0, 1)

	<-task.Events()
	task.AddRepeat()
	if task.Remaining() != 2 {
		t.Fatalf("Remaining() = %d, want 2", task.Remaining())
	}
	close(speaker.gate)

	events := collect(t, task)
	if len(events) != 2 || events[0].Kind != NarrationVerseStarted || events[1].Kind != NarrationFinished {
		t.Fatalf("events after AddRepeat = %+v", events)
	}
}

func TestNarrationSpeakerFailure(t *testing.T) {
	speaker := &recordingSpeaker{err: errors.New("boom")}
	task := StartNarration(context.Background(), speaker, chapterVerses(), 0, 1)

	events := collect(t, task)
	last := events[len(events)-1]
	if last.Kind != NarrationFailed || last.Err == nil {
		t.Fatalf("last event = %+v, want failure", last)
	}
}

func TestCommandSpeakerUnsupported(t *testing.T) {
	_, err := NewCommandSpeaker("quizzible-no-such-tts", repository.NarrationSettings{Rate: 1})
	if !errors.Is(err, ErrNarrationUnsupported) {
		t.Fatalf("NewCommandSpeaker() error = %v, want ErrNarrationUnsupported", err)
	}
}

func TestCommandSpeakerArgs(t *testing.T) {
	s := &CommandSpeaker{program: "/usr/bin/espeak-ng", settings: repository.NarrationSettings{Rate: 1.2, Voice: "en-gb"}}
	if got := strings.Join(s.args("hi"), " "); got != "-s 210 -v en-gb -- hi" {
		t.Fatalf("args() = %q", got)
	}

	s = &CommandSpeaker{program: "/usr/bin/say", settings: repository.NarrationSettings{}}
	if got := strings.Join(s.args("hi"), " "); got != "-r 175" {
		t.Fatalf("args() = %q", got)
	}
}

func TestCommandSpeakerTextIsNeverAnOption(t *testing.T) {
	const text = "-w /tmp/out.wav"
	ctx := context.Background()

	espeak := &CommandSpeaker{program: "/usr/bin/espeak", settings: repository.NarrationSettings{Rate: 1}}
	args := espeak.command(ctx, text).Args
	if n := len(args); n < 2 || args[n-2] != "--" || args[n-1] != text {
		t.Fatalf("espeak args = %q, want text after --", args)
	}

	say := &CommandSpeaker{program: "/usr/bin/say", settings: repository.NarrationSettings{Rate: 1}}
	cmd := say.command(ctx, text)
	for _, a := range cmd.Args {
		if a == text {
			t.Fatalf("say args = %q, text passed as an argument", cmd.Args)
		}
	}
	if cmd.Stdin == nil {
		t.Fatal("say gets no text on stdin")
	}
}
