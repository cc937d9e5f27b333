package tasks

import (
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/dickrael/time-bot/internal/store"
	"github.com/dickrael/time-bot/internal/timezone"
)

type fakeMessenger struct {
	mu      sync.Mutex
	sends   []int64
	edits   []int
	deletes []int
	nextID  int
	editErr error
	sendErr error
}

func (f *fakeMessenger) SendMessageHTML(chatID int64, text string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return 0, f.sendErr
	}
	f.sends = append(f.sends, chatID)
	f.nextID++
	return 1000 + f.nextID, nil
}

func (f *fakeMessenger) EditMessageHTML(chatID int64, messageID int, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits = append(f.edits, messageID)
	return f.editErr
}

func (f *fakeMessenger) DeleteMessage(chatID int64, messageID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, messageID)
	return nil
}

func (f *fakeMessenger) editCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.edits)
}

func (f *fakeMessenger) lastEdit() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.edits) == 0 {
		return 0
	}
	return f.edits[len(f.edits)-1]
}

func newTestManager(t *testing.T, msg Messenger, interval time.Duration) (*Manager, *store.Store) {
	t.Helper()
	st, err := store.Open(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	tz := timezone.NewService(st)
	m := NewManager(st, tz, msg, interval)
	t.Cleanup(m.Shutdown)
	return m, st
}

func waitFor(t *testing.T, cond func() bool, what string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestStartLiveSupersedesExisting(t *testing.T) {
	msg := &fakeMessenger{}
	m, st := newTestManager(t, msg, time.Hour)

	if err := m.StartLive(100, 1); err != nil {
		t.Fatalf("StartLive: %v", err)
	}
	if err := m.StartLive(100, 2); err != nil {
		t.Fatalf("StartLive: %v", err)
	}

	if got := m.ActiveCount(); got != 1 {
		t.Errorf("ActiveCount = %d, want 1", got)
	}
	active, ok := st.ActiveTimeMessage(100)
	if !ok || active.MessageID != 2 {
		t.Errorf("active message = %+v, %v; want message 2", active, ok)
	}

	// The superseded loop must not clear the new loop's descriptor while
	// it winds down.
	time.Sleep(50 * time.Millisecond)
	if _, ok := st.ActiveTimeMessage(100); !ok {
		t.Error("new descriptor cleared by superseded loop")
	}
}

func TestStopLiveCancelsBeforeNextTick(t *testing.T) {
	msg := &fakeMessenger{}
	m, st := newTestManager(t, msg, time.Hour)

	m.StartLive(100, 1)
	if !m.StopLive(100) {
		t.Fatal("StopLive found no task")
	}
	if m.StopLive(100) {
		t.Error("second StopLive reported a task")
	}

	waitFor(t, func() bool {
		_, ok := st.ActiveTimeMessage(100)
		return !ok
	}, "descriptor cleanup")
	if msg.editCount() != 0 {
		t.Errorf("cancelled loop still edited %d times", msg.editCount())
	}
}

func TestLiveLoopEditsAndSkipsUnchangedText(t *testing.T) {
	msg := &fakeMessenger{}
	m, st := newTestManager(t, msg, 20*time.Millisecond)
	st.AddTimezone(100, "UTC", "UTC", 7)

	m.StartLive(100, 1)
	waitFor(t, func() bool { return msg.editCount() >= 1 }, "first edit")

	// The board text only changes once a minute, so the five or so ticks
	// in the next 100ms must produce at most one more edit, and that only
	// if the wall clock happens to cross a minute boundary.
	base := msg.editCount()
	time.Sleep(100 * time.Millisecond)
	if got := msg.editCount(); got > base+1 {
		t.Errorf("unchanged text re-sent: %d edits after baseline %d", got, base)
	}
	if msg.lastEdit() != 1 {
		t.Errorf("edited message %d, want 1", msg.lastEdit())
	}
}

func TestPermanentEditErrorEndsLoop(t *testing.T) {
	msg := &fakeMessenger{editErr: errors.New("Bad Request: message to edit not found")}
	m, st := newTestManager(t, msg, 10*time.Millisecond)
	st.AddTimezone(100, "UTC", "UTC", 7)

	m.StartLive(100, 1)
	waitFor(t, func() bool { return !m.IsLive(100) }, "loop exit")
	waitFor(t, func() bool {
		_, ok := st.ActiveTimeMessage(100)
		return !ok
	}, "descriptor cleanup")
	if msg.editCount() != 1 {
		t.Errorf("loop edited %d times after permanent error, want 1", msg.editCount())
	}
}

func TestIsPermanentEditError(t *testing.T) {
	cases := []struct {
		err       error
		permanent bool
	}{
		{nil, false},
		{errors.New("Bad Request: message to edit not found"), true},
		{errors.New("Forbidden: bot was kicked from the group chat"), true},
		{errors.New("Bad Request: CHAT_WRITE_FORBIDDEN"), true},
		{errors.New("Too Many Requests: retry after 5"), false},
		{errors.New("connection reset by peer"), false},
	}
	for _, tc := range cases {
		if got := IsPermanentEditError(tc.err); got != tc.permanent {
			t.Errorf("IsPermanentEditError(%v) = %v, want %v", tc.err, got, tc.permanent)
		}
	}
}

func TestRefreshRequiresRunningLoop(t *testing.T) {
	msg := &fakeMessenger{}
	m, st := newTestManager(t, msg, time.Hour)
	st.AddTimezone(100, "UTC", "UTC", 7)

	if m.Refresh(100) {
		t.Error("Refresh succeeded without a live loop")
	}

	m.StartLive(100, 1)
	if !m.Refresh(100) {
		t.Error("Refresh failed with a live loop running")
	}
	if msg.lastEdit() != 1 {
		t.Errorf("Refresh edited message %d, want 1", msg.lastEdit())
	}
}

func TestRestoreAnnouncesFreshDisplays(t *testing.T) {
	msg := &fakeMessenger{}
	m, st := newTestManager(t, msg, time.Hour)

	st.SetActiveTimeMessage(100, 11)
	st.SetActiveTimeMessage(200, 22)

	m.Restore()
	if got := m.ActiveCount(); got != 2 {
		t.Errorf("ActiveCount after Restore = %d, want 2", got)
	}

	// The stale messages are deleted and replaced, never edited in place.
	msg.mu.Lock()
	sends := len(msg.sends)
	deletes := append([]int(nil), msg.deletes...)
	msg.mu.Unlock()
	if sends != 2 {
		t.Errorf("sent %d fresh displays, want 2", sends)
	}
	if len(deletes) != 2 {
		t.Errorf("deleted %d stale messages, want 2", len(deletes))
	}
	for _, chatID := range []int64{100, 200} {
		active, ok := st.ActiveTimeMessage(chatID)
		if !ok {
			t.Errorf("no descriptor for chat %d after Restore", chatID)
			continue
		}
		if active.MessageID == 11 || active.MessageID == 22 {
			t.Errorf("chat %d still points at stale message %d", chatID, active.MessageID)
		}
	}
}

func TestRestoreClearsDescriptorWhenAnnounceFails(t *testing.T) {
	msg := &fakeMessenger{sendErr: errors.New("Forbidden: bot was blocked by the user")}
	m, st := newTestManager(t, msg, time.Hour)

	st.SetActiveTimeMessage(100, 11)

	m.Restore()
	if got := m.ActiveCount(); got != 0 {
		t.Errorf("ActiveCount = %d, want 0", got)
	}
	if _, ok := st.ActiveTimeMessage(100); ok {
		t.Error("descriptor kept for a chat the bot cannot post in")
	}
}

func TestAutoDeleteDrainsDueEntries(t *testing.T) {
	msg := &fakeMessenger{}
	m, st := newTestManager(t, msg, time.Hour)

	st.ScheduleDelete(100, 1, time.Now().Add(-time.Second))
	st.ScheduleDelete(100, 2, time.Now().Add(time.Hour))

	m.RunAutoDelete()
	waitFor(t, func() bool {
		msg.mu.Lock()
		defer msg.mu.Unlock()
		return len(msg.deletes) >= 1
	}, "auto delete pass")

	msg.mu.Lock()
	deletes := append([]int(nil), msg.deletes...)
	msg.mu.Unlock()
	if len(deletes) != 1 || deletes[0] != 1 {
		t.Errorf("deletes = %v, want [1]", deletes)
	}
	if got := st.PendingDeletes(time.Now()); len(got) != 0 {
		t.Errorf("due entry not removed: %+v", got)
	}
}
