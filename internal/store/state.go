package store

import (
	"fmt"
	"strconv"
	"time"
)

// ActiveTimeMessage returns the live display descriptor for a chat.
func (s *Store) ActiveTimeMessage(chatID int64) (ActiveTimeMessage, bool) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	m, ok := s.state.ActiveTimeMessages[chatKey(chatID)]
	return m, ok
}

// AllActiveTimeMessages returns every persisted live display descriptor,
// keyed by chat id. Used once at startup to reconcile stale entries.
func (s *Store) AllActiveTimeMessages() map[int64]ActiveTimeMessage {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	out := make(map[int64]ActiveTimeMessage, len(s.state.ActiveTimeMessages))
	for k, v := range s.state.ActiveTimeMessages {
		chatID, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			continue
		}
		out[chatID] = v
	}
	return out
}

// SetActiveTimeMessage records the live display message for a chat.
func (s *Store) SetActiveTimeMessage(chatID int64, messageID int) error {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	s.state.ActiveTimeMessages[chatKey(chatID)] = ActiveTimeMessage{
		MessageID: messageID,
		StartedAt: time.Now().UTC().Format(time.RFC3339),
	}
	return s.saveState()
}

// ClearActiveTimeMessage drops the live display descriptor for a chat.
func (s *Store) ClearActiveTimeMessage(chatID int64) error {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	delete(s.state.ActiveTimeMessages, chatKey(chatID))
	return s.saveState()
}

// OwnerOnlyMode reports whether the bot is restricted to the basic command
// set for everyone but the owner.
func (s *Store) OwnerOnlyMode() bool {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.state.OwnerOnlyMode
}

// SetOwnerOnlyMode toggles the global restriction flag.
func (s *Store) SetOwnerOnlyMode(enabled bool) error {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	s.state.OwnerOnlyMode = enabled
	return s.saveState()
}

func deleteKey(chatID int64, messageID int) string {
	return fmt.Sprintf("%d:%d", chatID, messageID)
}

// ScheduleDelete records a message for deletion at the given time. A zero
// deadline means never and is not recorded.
func (s *Store) ScheduleDelete(chatID int64, messageID int, deleteAt time.Time) error {
	if deleteAt.IsZero() {
		return nil
	}

	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	s.state.ScheduledDeletes[deleteKey(chatID, messageID)] = ScheduledDelete{
		ChatID:    chatID,
		MessageID: messageID,
		DeleteAt:  deleteAt.UTC().Format(time.RFC3339),
	}
	return s.saveState()
}

// PendingDelete pairs a due deletion with its state key for removal.
type PendingDelete struct {
	Key       string
	ChatID    int64
	MessageID int
}

// PendingDeletes returns every scheduled deletion whose deadline has passed.
// Entries with unparseable deadlines are returned as due so they get cleaned
// up rather than lingering forever.
func (s *Store) PendingDeletes(now time.Time) []PendingDelete {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	var pending []PendingDelete
	for key, item := range s.state.ScheduledDeletes {
		due, err := time.Parse(time.RFC3339, item.DeleteAt)
		if err != nil || !now.Before(due) {
			pending = append(pending, PendingDelete{
				Key:       key,
				ChatID:    item.ChatID,
				MessageID: item.MessageID,
			})
		}
	}
	return pending
}

// RemoveScheduledDelete drops a scheduled deletion entry.
func (s *Store) RemoveScheduledDelete(key string) error {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	delete(s.state.ScheduledDeletes, key)
	return s.saveState()
}
