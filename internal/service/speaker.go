package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aliskhannn/quizzible/internal/repository"
)

var ErrNarrationUnsupported = errors.New("text-to-speech is not available")

// speechPrograms are tried in order when no command is configured.
var speechPrograms = []string{"espeak-ng", "espeak", "say"}

// baseWordsPerMinute is the speaking speed at rate 1.0.
const baseWordsPerMinute = 175

// CommandSpeaker speaks through an external text-to-speech program.
type CommandSpeaker struct {
	program  string
	settings repository.NarrationSettings
}

// NewCommandSpeaker resolves command, or the first available known program
// when command is empty.
func NewCommandSpeaker(command string, settings repository.NarrationSettings) (*CommandSpeaker, error) {
	candidates := speechPrograms
	if command != "" {
		candidates = []string{command}
	}

	for _, name := range candidates {
		path, err := exec.LookPath(name)
		if err == nil {
			return &CommandSpeaker{program: path, settings: settings}, nil
		}
	}

	return nil, fmt.Errorf("%w: tried %s", ErrNarrationUnsupported, strings.Join(candidates, ", "))
}

// Speak runs the program and blocks until it exits. Cancelling ctx kills it.
func (s *CommandSpeaker) Speak(ctx context.Context, text string) error {
	if err := s.command(ctx, text).Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("run %s: %w", filepath.Base(s.program), err)
	}
	return nil
}

// command builds the program invocation. Text never lands where it could be
// parsed as an option: espeak gets it after "--", say reads it from stdin.
func (s *CommandSpeaker) command(ctx context.Context, text string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, s.program, s.args(text)...)
	if s.isSay() {
		cmd.Stdin = strings.NewReader(text)
	}
	return cmd
}

func (s *CommandSpeaker) isSay() bool {
	return filepath.Base(s.program) == "say"
}

func (s *CommandSpeaker) args(text string) []string {
	rate := s.settings.Rate
	if rate <= 0 {
		rate = 1
	}
	wpm := strconv.Itoa(int(math.Round(baseWordsPerMinute * rate)))

	if s.isSay() {
		args := []string{"-r", wpm}
		if s.settings.Voice != "" {
			args = append(args, "-v", s.settings.Voice)
		}
		return args
	}

	args := []string{"-s", wpm}
	if s.settings.Voice != "" {
		args = append(args, "-v", s.settings.Voice)
	}
	return append(args, "--", text)
}
