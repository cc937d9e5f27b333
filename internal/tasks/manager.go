package tasks

import (
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/dickrael/time-bot/internal/store"
	"github.com/dickrael/time-bot/internal/timezone"
)

var (
	liveEdits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "timebot",
		Subsystem: "telegram_bot",
		Name:      "live_edits",
		Help:      "The total number of successful live display edits",
	})
	liveEditFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "timebot",
		Subsystem: "telegram_bot",
		Name:      "live_edit_failures",
		Help:      "The total number of failed live display edits",
	})
)

func init() {
	prometheus.MustRegister(liveEdits, liveEditFailures)
}

// Messenger is the slice of the Telegram client the task manager needs.
type Messenger interface {
	SendMessageHTML(chatID int64, text string) (int, error)
	EditMessageHTML(chatID int64, messageID int, text string) error
	DeleteMessage(chatID int64, messageID int) error
}

// permanentEditErrors are API failures that no retry will fix. Any of these
// ends the live loop for the chat.
var permanentEditErrors = []string{
	"message not found",
	"message to edit not found",
	"message was deleted",
	"message_id_invalid",
	"chat not found",
	"bot was kicked",
	"have no rights",
	"chat_write_forbidden",
	"user_banned_in_channel",
}

// IsPermanentEditError reports whether an edit failure is unrecoverable.
func IsPermanentEditError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range permanentEditErrors {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

func isNotModifiedError(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "message is not modified")
}

const maxConsecutiveEditErrors = 5

// Manager owns the live time displays and the auto-delete worker. At most
// one live loop runs per chat; starting a new one cancels the old.
type Manager struct {
	store     *store.Store
	tz        *timezone.Service
	messenger Messenger
	interval  time.Duration

	mu    sync.Mutex
	tasks map[int64]chan struct{}

	quit     chan struct{}
	quitOnce sync.Once
	wg       sync.WaitGroup
}

func NewManager(st *store.Store, tz *timezone.Service, messenger Messenger, interval time.Duration) *Manager {
	return &Manager{
		store:     st,
		tz:        tz,
		messenger: messenger,
		interval:  interval,
		tasks:     make(map[int64]chan struct{}),
		quit:      make(chan struct{}),
	}
}

// StartLive begins updating the given message every interval. An existing
// live loop for the chat is stopped first, so its message goes stale.
func (m *Manager) StartLive(chatID int64, messageID int) error {
	m.mu.Lock()
	if old, ok := m.tasks[chatID]; ok {
		close(old)
		delete(m.tasks, chatID)
		log.Infof("superseding live display in chat %d", chatID)
	}
	stop := make(chan struct{})
	m.tasks[chatID] = stop
	m.mu.Unlock()

	if err := m.store.SetActiveTimeMessage(chatID, messageID); err != nil {
		return err
	}

	m.wg.Add(1)
	go m.updateLoop(chatID, messageID, stop)
	log.Infof("started live display in chat %d, message %d", chatID, messageID)
	return nil
}

// StopLive cancels the live loop for a chat. Returns false when none runs.
func (m *Manager) StopLive(chatID int64) bool {
	m.mu.Lock()
	stop, ok := m.tasks[chatID]
	if ok {
		close(stop)
		delete(m.tasks, chatID)
	}
	m.mu.Unlock()
	if !ok {
		return false
	}
	// The loop no longer owns the map entry, so clear its descriptor here.
	if err := m.store.ClearActiveTimeMessage(chatID); err != nil {
		log.Warnf("clearing live descriptor for chat %d: %s", chatID, err)
	}
	return true
}

// IsLive reports whether a chat has a running live display.
func (m *Manager) IsLive(chatID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.tasks[chatID]
	return ok
}

// ActiveCount returns the number of running live displays.
func (m *Manager) ActiveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// Refresh pushes the current board to a chat's live message immediately.
// Used after /addtime and /removetime so the change shows without waiting
// for the next tick.
func (m *Manager) Refresh(chatID int64) bool {
	if !m.IsLive(chatID) {
		return false
	}
	active, ok := m.store.ActiveTimeMessage(chatID)
	if !ok {
		return false
	}
	text := m.renderBoard(chatID)
	if err := m.messenger.EditMessageHTML(chatID, active.MessageID, text); err != nil && !isNotModifiedError(err) {
		log.Warnf("refreshing live message in chat %d: %s", chatID, err)
		return false
	}
	return true
}

// Restore re-announces a fresh live display in every chat that had one
// before the last shutdown. The old message is deleted best-effort rather
// than edited, since its handle may be gone.
func (m *Manager) Restore() {
	for chatID, active := range m.store.AllActiveTimeMessages() {
		if err := m.messenger.DeleteMessage(chatID, active.MessageID); err != nil {
			log.Debugf("deleting stale live message %d in chat %d: %s", active.MessageID, chatID, err)
		}
		messageID, err := m.messenger.SendMessageHTML(chatID, m.renderBoard(chatID))
		if err != nil {
			log.Errorf("re-announcing live display in chat %d: %s", chatID, err)
			if clearErr := m.store.ClearActiveTimeMessage(chatID); clearErr != nil {
				log.Warnf("clearing live descriptor for chat %d: %s", chatID, clearErr)
			}
			continue
		}
		if err := m.StartLive(chatID, messageID); err != nil {
			log.Errorf("restoring live display in chat %d: %s", chatID, err)
		}
	}
}

// Shutdown stops every loop and waits for them to finish.
func (m *Manager) Shutdown() {
	m.quitOnce.Do(func() { close(m.quit) })
	m.wg.Wait()
	log.Info("task manager stopped")
}

func (m *Manager) renderBoard(chatID int64) string {
	cfg := m.store.GroupConfig(chatID)
	return m.tz.FormatAllTimes(m.store.Timezones(chatID), true, cfg.ShowUTCOffset, m.interval)
}

func (m *Manager) updateLoop(chatID int64, messageID int, stop chan struct{}) {
	defer m.wg.Done()
	defer m.cleanup(chatID, stop)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	var lastText string
	consecutiveErrors := 0

	for {
		select {
		case <-stop:
			log.Infof("live display in chat %d cancelled", chatID)
			return
		case <-m.quit:
			return
		case <-ticker.C:
		}

		text := m.renderBoard(chatID)
		if text == lastText {
			continue
		}

		err := m.messenger.EditMessageHTML(chatID, messageID, text)
		switch {
		case err == nil:
			lastText = text
			consecutiveErrors = 0
			liveEdits.Inc()
		case isNotModifiedError(err):
			lastText = text
		case IsPermanentEditError(err):
			liveEditFailures.Inc()
			log.Infof("live display in chat %d ended: %s", chatID, err)
			return
		default:
			liveEditFailures.Inc()
			consecutiveErrors++
			if consecutiveErrors >= maxConsecutiveEditErrors {
				log.Warnf("live display in chat %d stopped after %d consecutive errors", chatID, consecutiveErrors)
				return
			}
			log.Warnf("editing live message in chat %d: %s", chatID, err)
		}
	}
}

// cleanup removes the loop's descriptor unless a newer loop already owns the
// chat, in which case its state is left alone.
func (m *Manager) cleanup(chatID int64, stop chan struct{}) {
	m.mu.Lock()
	current, ok := m.tasks[chatID]
	owned := ok && current == stop
	if owned {
		delete(m.tasks, chatID)
	}
	m.mu.Unlock()

	if owned {
		if err := m.store.ClearActiveTimeMessage(chatID); err != nil {
			log.Warnf("clearing live descriptor for chat %d: %s", chatID, err)
		}
	}
}

// RunAutoDelete drains due scheduled deletions every five seconds until
// Shutdown. One pass runs immediately so deletions pending from before a
// restart are handled without delay.
func (m *Manager) RunAutoDelete() {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.processPendingDeletes()
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-m.quit:
				return
			case <-ticker.C:
				m.processPendingDeletes()
			}
		}
	}()
	log.Info("auto-delete worker started")
}

func (m *Manager) processPendingDeletes() {
	for _, pending := range m.store.PendingDeletes(time.Now()) {
		if err := m.messenger.DeleteMessage(pending.ChatID, pending.MessageID); err != nil {
			log.Debugf("auto-deleting message %d in chat %d: %s", pending.MessageID, pending.ChatID, err)
		}
		// Forget the entry either way; a failed delete will not succeed
		// on retry once the message is inaccessible.
		if err := m.store.RemoveScheduledDelete(pending.Key); err != nil {
			log.Warnf("removing delete entry %s: %s", pending.Key, err)
		}
	}
}
