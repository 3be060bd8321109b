package repository

import (
	"context"
	"fmt"
	"strconv"
)

const (
	SpeechRateKey    = "speechRate"
	SelectedVoiceKey = "selectedVoice"
)

// NarrationSettings are the read-aloud preferences of the learn mode.
type NarrationSettings struct {
	Rate  float64
	Voice string
}

// SettingsRepository persists narration preferences, one key each.
type SettingsRepository struct {
	kv KVStore
}

func NewSettingsRepository(kv KVStore) *SettingsRepository {
	return &SettingsRepository{kv: kv}
}

// GetNarration returns stored preferences, falling back to defaults for
// anything absent or unreadable.
func (r *SettingsRepository) GetNarration(ctx context.Context, defaults NarrationSettings) (NarrationSettings, error) {
	out := defaults

	data, ok, err := r.kv.Load(ctx, SpeechRateKey)
	if err != nil {
		return defaults, fmt.Errorf("load speech rate: %w", err)
	}
	if ok {
		if rate, err := strconv.ParseFloat(string(data), 64); err == nil && rate > 0 {
			out.Rate = rate
		}
	}

	data, ok, err = r.kv.Load(ctx, SelectedVoiceKey)
	if err != nil {
		return defaults, fmt.Errorf("load voice: %w", err)
	}
	if ok {
		out.Voice = string(data)
	}

	return out, nil
}

// SaveNarration stores both preferences.
func (r *SettingsRepository) SaveNarration(ctx context.Context, s NarrationSettings) error {
	rate := strconv.FormatFloat(s.Rate, 'f', -1, 64)
	if err := r.kv.Save(ctx, SpeechRateKey, []byte(rate)); err != nil {
		return fmt.Errorf("save speech rate: %w", err)
	}
	if err := r.kv.Save(ctx, SelectedVoiceKey, []byte(s.Voice)); err != nil {
		return fmt.Errorf("save voice: %w", err)
	}
	return nil
}
