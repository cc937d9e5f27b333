package ratelimit

import (
	"fmt"
	"sync"
	"time"
)

type key struct {
	chatID  int64
	userID  int64
	command string
}

// Limiter enforces a per-chat, per-user, per-command cooldown. State lives in
// memory only; a restart clears all cooldowns.
type Limiter struct {
	mu   sync.Mutex
	last map[key]time.Time

	// now is swapped in tests for a fixed clock.
	now func() time.Time
}

func NewLimiter() *Limiter {
	return &Limiter{
		last: make(map[key]time.Time),
		now:  time.Now,
	}
}

// Check reports whether the user may run the command now. When allowed, the
// attempt is recorded and starts a new cooldown window. When denied, the
// remaining wait is returned and the window is left untouched, so repeated
// denied attempts do not push the window further out.
func (l *Limiter) Check(chatID, userID int64, command string, cooldown time.Duration) (bool, time.Duration) {
	if cooldown <= 0 {
		return true, 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	k := key{chatID: chatID, userID: userID, command: command}
	now := l.now()
	if last, ok := l.last[k]; ok {
		elapsed := now.Sub(last)
		if elapsed < cooldown {
			return false, cooldown - elapsed
		}
	}
	l.last[k] = now
	return true, 0
}

// Reset clears the cooldown window for one user in one chat.
func (l *Limiter) Reset(chatID, userID int64, command string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.last, key{chatID: chatID, userID: userID, command: command})
}

// WaitMessage renders a deny notice with the remaining wait rounded up to
// whole seconds.
func WaitMessage(remaining time.Duration) string {
	secs := int((remaining + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return fmt.Sprintf("⏳ Please wait %ds before using this command again.", secs)
}
