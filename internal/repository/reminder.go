package repository

import (
	"context"
	"encoding/json"
	"fmt"
)

const ReminderChatsKey = "reminderChats"

// ReminderSubscription links a Telegram chat to the profile it quizzes.
type ReminderSubscription struct {
	ChatID  int64  `json:"chatId"`
	Profile string `json:"profile"`
}

// ReminderRepository persists daily verse subscriptions as one value.
type ReminderRepository struct {
	kv KVStore
}

func NewReminderRepository(kv KVStore) *ReminderRepository {
	return &ReminderRepository{kv: kv}
}

// GetAll returns every subscription.
func (r *ReminderRepository) GetAll(ctx context.Context) ([]ReminderSubscription, error) {
	data, ok, err := r.kv.Load(ctx, ReminderChatsKey)
	if err != nil {
		return nil, fmt.Errorf("load reminders: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var subs []ReminderSubscription
	if err := json.Unmarshal(data, &subs); err != nil {
		return nil, fmt.Errorf("unmarshal reminders: %w", err)
	}
	return subs, nil
}

// Set adds or replaces the subscription of chatID.
func (r *ReminderRepository) Set(ctx context.Context, sub ReminderSubscription) error {
	subs, err := r.GetAll(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range subs {
		if subs[i].ChatID == sub.ChatID {
			subs[i] = sub
			replaced = true
		}
	}
	if !replaced {
		subs = append(subs, sub)
	}

	return r.save(ctx, subs)
}

// Delete removes the subscription of chatID.
func (r *ReminderRepository) Delete(ctx context.Context, chatID int64) error {
	subs, err := r.GetAll(ctx)
	if err != nil {
		return err
	}

	kept := subs[:0]
	for _, s := range subs {
		if s.ChatID != chatID {
			kept = append(kept, s)
		}
	}

	return r.save(ctx, kept)
}

func (r *ReminderRepository) save(ctx context.Context, subs []ReminderSubscription) error {
	if subs == nil {
		subs = []ReminderSubscription{}
	}
	data, err := json.Marshal(subs)
	if err != nil {
		return fmt.Errorf("marshal reminders: %w", err)
	}
	if err := r.kv.Save(ctx, ReminderChatsKey, data); err != nil {
		return fmt.Errorf("save reminders: %w", err)
	}
	return nil
}
