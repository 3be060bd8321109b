package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/aliskhannn/quizzible/internal/domain/entities"
)

// ProfilesKey is the storage key holding the serialized profile array.
const ProfilesKey = "userProfiles"

// KVStore is a whole-value key-value store.
type KVStore interface {
	Save(ctx context.Context, key string, value []byte) error
	Load(ctx context.Context, key string) ([]byte, bool, error)
}

// storedProfile accepts both the current and the legacy flat profile shape.
type storedProfile struct {
	Name          string                  `json:"name"`
	BookProgress  []entities.BookProgress `json:"bookProgress"`
	Stats         []entities.SessionStats `json:"stats"`
	KnownChapters []int                   `json:"knownChapters"`
	KnownVerses   []int                   `json:"knownVerses"`
}

// ProfileRepository persists all profiles as one value under ProfilesKey.
type ProfileRepository struct {
	kv         KVStore
	legacyBook string
	logger     *zap.Logger
}

// NewProfileRepository creates a ProfileRepository. legacyBook is assigned to
// records that predate per-book progress; empty drops such records.
func NewProfileRepository(kv KVStore, legacyBook string, logger *zap.Logger) *ProfileRepository {
	return &ProfileRepository{kv: kv, legacyBook: legacyBook, logger: logger}
}

// Load returns the valid persisted profiles. Malformed entries are dropped,
// an unreadable payload yields an empty list.
func (r *ProfileRepository) Load(ctx context.Context) ([]entities.UserProfile, error) {
	data, ok, err := r.kv.Load(ctx, ProfilesKey)
	if err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}
	if !ok {
		return []entities.UserProfile{}, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		r.logger.Warn("discarding unreadable profiles payload", zap.Error(err))
		return []entities.UserProfile{}, nil
	}

	profiles := make([]entities.UserProfile, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for i, item := range raw {
		p, ok := r.decode(item)
		if !ok {
			r.logger.Debug("dropping malformed profile", zap.Int("index", i))
			continue
		}
		if _, dup := seen[p.Name]; dup {
			r.logger.Debug("dropping duplicate profile", zap.String("name", p.Name))
			continue
		}
		seen[p.Name] = struct{}{}
		profiles = append(profiles, p)
	}

	return profiles, nil
}

func (r *ProfileRepository) decode(item json.RawMessage) (entities.UserProfile, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(item, &fields); err != nil {
		return entities.UserProfile{}, false
	}

	var sp storedProfile
	if err := json.Unmarshal(item, &sp); err != nil {
		return entities.UserProfile{}, false
	}

	sp.Name = strings.TrimSpace(sp.Name)
	if sp.Name == "" {
		return entities.UserProfile{}, false
	}

	p := entities.NewUserProfile(sp.Name)
	if sp.Stats != nil {
		p.Stats = sp.Stats
	}

	_, current := fields["bookProgress"]
	_, legacy := fields["knownChapters"]
	switch {
	case current:
		for _, bp := range sp.BookProgress {
			if strings.TrimSpace(bp.Book) == "" {
				continue
			}
			bp.Normalize()
			p.BookProgress = append(p.BookProgress, bp)
		}
	case legacy && r.legacyBook != "":
		bp := entities.BookProgress{
			Book:          r.legacyBook,
			KnownChapters: sp.KnownChapters,
			KnownVerses:   sp.KnownVerses,
		}
		bp.Normalize()
		if len(bp.KnownChapters) > 0 {
			p.BookProgress = append(p.BookProgress, bp)
		}
		r.logger.Info("migrated legacy profile",
			zap.String("name", p.Name),
			zap.String("book", r.legacyBook),
		)
	default:
		return entities.UserProfile{}, false
	}

	return *p, true
}

// Save overwrites the persisted profile array.
func (r *ProfileRepository) Save(ctx context.Context, profiles []entities.UserProfile) error {
	if profiles == nil {
		profiles = []entities.UserProfile{}
	}

	data, err := json.Marshal(profiles)
	if err != nil {
		return fmt.Errorf("marshal profiles: %w", err)
	}

	if err := r.kv.Save(ctx, ProfilesKey, data); err != nil {
		return fmt.Errorf("save profiles: %w", err)
	}

	return nil
}
