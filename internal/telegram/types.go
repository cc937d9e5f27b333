package telegram

import (
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dickrael/time-bot/internal/permission"
	"github.com/dickrael/time-bot/internal/ratelimit"
	"github.com/dickrael/time-bot/internal/store"
	"github.com/dickrael/time-bot/internal/tasks"
	"github.com/dickrael/time-bot/internal/timezone"
)

// BotConfig configuration of the bot
type BotConfig struct {
	Token          string
	Debug          bool
	UpdatesTimeout int
	OwnerID        int64
	LiveInterval   time.Duration
}

// Bot telegram interaction client
type Bot struct {
	Bot    *tgbotapi.BotAPI
	Config BotConfig

	Store    *store.Store
	Timezone *timezone.Service
	Limiter  *ratelimit.Limiter
	Perms    *permission.Checker

	// Tasks is wired after construction since the task manager edits
	// messages through the bot.
	Tasks *tasks.Manager

	notices  noticeTracker
	username string
}

// noticeTracker remembers the last cooldown notice sent to each user in each
// chat, so a repeated denial replaces the old notice instead of stacking a
// new one under it.
type noticeTracker struct {
	mu    sync.Mutex
	byKey map[noticeKey]int
}

type noticeKey struct {
	chatID int64
	userID int64
}

// take removes and returns the tracked notice for the user, if any.
func (t *noticeTracker) take(chatID, userID int64) (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	k := noticeKey{chatID: chatID, userID: userID}
	id, ok := t.byKey[k]
	if ok {
		delete(t.byKey, k)
	}
	return id, ok
}

// set tracks the latest notice for the user.
func (t *noticeTracker) set(chatID, userID int64, messageID int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.byKey == nil {
		t.byKey = make(map[noticeKey]int)
	}
	t.byKey[noticeKey{chatID: chatID, userID: userID}] = messageID
}

// Message a telegram message struct
type Message struct {
	ChatID    int64
	MessageID int
	Text      string
}
