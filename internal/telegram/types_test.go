package telegram

import "testing"

func TestNoticeTrackerReplacesPerUser(t *testing.T) {
	var tracker noticeTracker

	if _, ok := tracker.take(100, 7); ok {
		t.Error("empty tracker returned a notice")
	}

	tracker.set(100, 7, 41)
	tracker.set(100, 7, 42)
	id, ok := tracker.take(100, 7)
	if !ok || id != 42 {
		t.Errorf("take = %d, %v; want latest notice 42", id, ok)
	}

	// take removes the entry, so a second denial after deletion starts clean.
	if _, ok := tracker.take(100, 7); ok {
		t.Error("taken notice still tracked")
	}
}

func TestNoticeTrackerKeysByChatAndUser(t *testing.T) {
	var tracker noticeTracker

	tracker.set(100, 7, 1)
	tracker.set(100, 8, 2)
	tracker.set(200, 7, 3)

	if id, ok := tracker.take(100, 7); !ok || id != 1 {
		t.Errorf("take(100, 7) = %d, %v; want 1", id, ok)
	}
	if id, ok := tracker.take(100, 8); !ok || id != 2 {
		t.Errorf("take(100, 8) = %d, %v; want 2", id, ok)
	}
	if id, ok := tracker.take(200, 7); !ok || id != 3 {
		t.Errorf("take(200, 7) = %d, %v; want 3", id, ok)
	}
}
