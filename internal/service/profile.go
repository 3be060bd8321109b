package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/aliskhannn/quizzible/internal/domain/entities"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrProfileExists   = errors.New("profile already exists")
	ErrEmptyName       = errors.New("profile name is empty")
)

// ProfileStore owns every user profile. Mutations stay in memory until
// Commit writes the whole list back.
type ProfileStore struct {
	mu       sync.Mutex
	repo     ProfileRepository
	profiles []entities.UserProfile
	dirty    bool
	logger   *zap.Logger
}

// NewProfileStore loads the persisted profiles.
func NewProfileStore(ctx context.Context, repo ProfileRepository, logger *zap.Logger) (*ProfileStore, error) {
	profiles, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	logger.Info("profiles loaded", zap.Int("count", len(profiles)))

	return &ProfileStore{
		repo:     repo,
		profiles: profiles,
		logger:   logger,
	}, nil
}

// List returns copies of all profiles in creation order.
func (s *ProfileStore) List() []entities.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entities.UserProfile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, p.Clone())
	}
	return out
}

// Get returns a copy of the named profile.
func (s *ProfileStore) Get(name string) (entities.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(name)
	if i < 0 {
		return entities.UserProfile{}, ErrProfileNotFound
	}
	return s.profiles[i].Clone(), nil
}

// Create registers a new empty profile.
func (s *ProfileStore) Create(name string) (entities.UserProfile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return entities.UserProfile{}, ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(name) >= 0 {
		return entities.UserProfile{}, fmt.Errorf("%w: %s", ErrProfileExists, name)
	}

	p := entities.NewUserProfile(name)
	s.profiles = append(s.profiles, *p)
	s.dirty = true

	s.logger.Info("profile created", zap.String("name", name))
	return p.Clone(), nil
}

// GetOrCreate returns the named profile, creating it when missing.
func (s *ProfileStore) GetOrCreate(name string) (entities.UserProfile, bool, error) {
	p, err := s.Get(strings.TrimSpace(name))
	if err == nil {
		return p, false, nil
	}
	if !errors.Is(err, ErrProfileNotFound) {
		return entities.UserProfile{}, false, err
	}

	p, err = s.Create(name)
	if err != nil {
		return entities.UserProfile{}, false, err
	}
	return p, true, nil
}

// SetProgress replaces the book progress of the named profile.
func (s *ProfileStore) SetProgress(name string, progress []entities.BookProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(name)
	if i < 0 {
		return ErrProfileNotFound
	}

	p := entities.UserProfile{Name: name, BookProgress: progress}.Clone()
	s.profiles[i].BookProgress = p.BookProgress
	s.dirty = true
	return nil
}

// AppendSession adds a finished session to the profile history.
func (s *ProfileStore) AppendSession(name string, stats entities.SessionStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(name)
	if i < 0 {
		return ErrProfileNotFound
	}
	s.profiles[i].Stats = append(s.profiles[i].Stats, stats)
	s.dirty = true
	return nil
}

// Commit persists all profiles if anything changed since the last commit.
// Failed writes keep the store dirty so a later Commit retries them.
func (s *ProfileStore) Commit(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty {
		return nil
	}

	if err := s.repo.Save(ctx, s.profiles); err != nil {
		s.logger.Error("failed to commit profiles", zap.Error(err))
		return err
	}
	s.dirty = false

	s.logger.Debug("profiles committed", zap.Int("count", len(s.profiles)))
	return nil
}

func (s *ProfileStore) indexOf(name string) int {
	for i := range s.profiles {
		if s.profiles[i].Name == name {
			return i
		}
	}
	return -1
}
