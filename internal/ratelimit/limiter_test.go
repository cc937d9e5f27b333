package ratelimit

import (
	"testing"
	"time"
)

func fixedLimiter(at *time.Time) *Limiter {
	l := NewLimiter()
	l.now = func() time.Time { return *at }
	return l
}

func TestCheckAllowsFirstUse(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	l := fixedLimiter(&now)

	ok, remaining := l.Check(100, 7, "time", 30*time.Second)
	if !ok || remaining != 0 {
		t.Errorf("first use: %v, %v", ok, remaining)
	}
}

func TestCheckDeniesWithinWindow(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	l := fixedLimiter(&now)

	l.Check(100, 7, "time", 30*time.Second)
	now = now.Add(10 * time.Second)

	ok, remaining := l.Check(100, 7, "time", 30*time.Second)
	if ok {
		t.Fatal("second use inside window allowed")
	}
	if remaining != 20*time.Second {
		t.Errorf("remaining = %v, want 20s", remaining)
	}
}

func TestCheckAllowsAfterWindow(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	l := fixedLimiter(&now)

	l.Check(100, 7, "time", 30*time.Second)
	now = now.Add(30 * time.Second)

	if ok, _ := l.Check(100, 7, "time", 30*time.Second); !ok {
		t.Error("use at window boundary denied")
	}
}

func TestDeniedAttemptDoesNotExtendWindow(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	l := fixedLimiter(&now)

	l.Check(100, 7, "time", 30*time.Second)
	now = now.Add(29 * time.Second)
	l.Check(100, 7, "time", 30*time.Second) // denied

	now = now.Add(time.Second)
	if ok, remaining := l.Check(100, 7, "time", 30*time.Second); !ok {
		t.Errorf("window extended by denied attempt, remaining %v", remaining)
	}
}

func TestKeysAreIndependent(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	l := fixedLimiter(&now)

	l.Check(100, 7, "time", 30*time.Second)

	if ok, _ := l.Check(100, 8, "time", 30*time.Second); !ok {
		t.Error("other user blocked")
	}
	if ok, _ := l.Check(200, 7, "time", 30*time.Second); !ok {
		t.Error("other chat blocked")
	}
	if ok, _ := l.Check(100, 7, "when", 30*time.Second); !ok {
		t.Error("other command blocked")
	}
}

func TestZeroCooldownDisablesLimit(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	l := fixedLimiter(&now)

	for i := 0; i < 3; i++ {
		if ok, _ := l.Check(100, 7, "time", 0); !ok {
			t.Fatal("zero cooldown denied")
		}
	}
}

func TestReset(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	l := fixedLimiter(&now)

	l.Check(100, 7, "time", 30*time.Second)
	l.Reset(100, 7, "time")
	if ok, _ := l.Check(100, 7, "time", 30*time.Second); !ok {
		t.Error("denied after reset")
	}
}

func TestWaitMessageRoundsUp(t *testing.T) {
	if got := WaitMessage(1500 * time.Millisecond); got != "⏳ Please wait 2s before using this command again." {
		t.Errorf("WaitMessage = %q", got)
	}
	if got := WaitMessage(100 * time.Millisecond); got != "⏳ Please wait 1s before using this command again." {
		t.Errorf("WaitMessage floor = %q", got)
	}
}
