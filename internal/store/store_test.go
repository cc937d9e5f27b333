package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(dir, 0)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s, dir
}

func TestOpenMissingFilesYieldsDefaults(t *testing.T) {
	s, _ := openTestStore(t)

	group := s.Group(100)
	if len(group.Timezones) != 0 {
		t.Errorf("new group has %d timezones, want 0", len(group.Timezones))
	}
	if group.Config.CooldownSeconds != DefaultCooldownSeconds {
		t.Errorf("new group cooldown = %d, want %d", group.Config.CooldownSeconds, DefaultCooldownSeconds)
	}
	if _, ok := s.UserTimezone(1); ok {
		t.Error("UserTimezone on empty store reported a record")
	}
	if s.OwnerOnlyMode() {
		t.Error("owner-only mode enabled on empty store")
	}
}

func TestGroupRoundTrip(t *testing.T) {
	s, dir := openTestStore(t)

	if ok, err := s.AddTimezone(100, "Europe/London", "London", 7); err != nil || !ok {
		t.Fatalf("AddTimezone = %v, %v", ok, err)
	}
	if ok, err := s.AddTimezone(100, "Asia/Tokyo", "Tokyo", 7); err != nil || !ok {
		t.Fatalf("AddTimezone = %v, %v", ok, err)
	}
	if err := s.SetGroupConfig(100, GroupConfig{CooldownSeconds: 60, ShowUTCOffset: true}); err != nil {
		t.Fatalf("SetGroupConfig: %v", err)
	}

	// Reopen from disk and compare.
	s2, err := Open(dir, 0)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	group := s2.Group(100)
	if len(group.Timezones) != 2 {
		t.Fatalf("reloaded group has %d timezones, want 2", len(group.Timezones))
	}
	if group.Timezones[0].TZ != "Europe/London" || group.Timezones[1].TZ != "Asia/Tokyo" {
		t.Errorf("insertion order not preserved: %v", group.Timezones)
	}
	if group.Config.CooldownSeconds != 60 || !group.Config.ShowUTCOffset {
		t.Errorf("config not round-tripped: %+v", group.Config)
	}
}

func TestAddTimezoneRejectsDuplicateZone(t *testing.T) {
	s, _ := openTestStore(t)

	if ok, _ := s.AddTimezone(100, "Asia/Tokyo", "Tokyo", 7); !ok {
		t.Fatal("first add rejected")
	}
	if ok, _ := s.AddTimezone(100, "Asia/Tokyo", "Tokio", 8); ok {
		t.Error("duplicate canonical zone accepted")
	}
	if got := len(s.Timezones(100)); got != 1 {
		t.Errorf("group has %d entries, want 1", got)
	}
}

func TestRemoveTimezoneByNameFragment(t *testing.T) {
	s, _ := openTestStore(t)
	s.AddTimezone(100, "America/New_York", "New York", 7)

	name, ok, err := s.RemoveTimezone(100, "york")
	if err != nil || !ok {
		t.Fatalf("RemoveTimezone = %v, %v", ok, err)
	}
	if name != "New York" {
		t.Errorf("removed name = %q, want %q", name, "New York")
	}
	if _, ok, _ := s.RemoveTimezone(100, "york"); ok {
		t.Error("second remove reported success")
	}
}

func TestInterruptedSaveKeepsCommittedContent(t *testing.T) {
	s, dir := openTestStore(t)
	if _, err := s.AddTimezone(100, "Europe/London", "London", 7); err != nil {
		t.Fatalf("AddTimezone: %v", err)
	}

	// Simulate a crash mid-write: a half-written temp file next to the
	// committed document must not affect the next load.
	tmp := filepath.Join(dir, "groups.json.tmp")
	if err := os.WriteFile(tmp, []byte(`{"100": {"timezo`), 0o644); err != nil {
		t.Fatalf("write temp: %v", err)
	}

	s2, err := Open(dir, 0)
	if err != nil {
		t.Fatalf("reopen after simulated crash: %v", err)
	}
	if got := len(s2.Timezones(100)); got != 1 {
		t.Errorf("committed content lost: %d entries, want 1", got)
	}
}

func TestCorruptFileRecoversFromBackup(t *testing.T) {
	s, dir := openTestStore(t)
	s.AddTimezone(100, "Europe/London", "London", 7)
	// Second save refreshes groups.json.bak with the one-entry version.
	s.AddTimezone(100, "Asia/Tokyo", "Tokyo", 7)

	path := filepath.Join(dir, "groups.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("corrupt file: %v", err)
	}

	s2, err := Open(dir, 0)
	if err != nil {
		t.Fatalf("reopen with backup: %v", err)
	}
	if got := len(s2.Timezones(100)); got != 1 {
		t.Errorf("backup recovery yielded %d entries, want 1", got)
	}
}

func TestGroupConfigDefaultsWhenFieldMissing(t *testing.T) {
	dir := t.TempDir()
	raw := `{"100": {"timezones": [], "config": {"show_utc_offset": true}}}`
	if err := os.WriteFile(filepath.Join(dir, "groups.json"), []byte(raw), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	s, err := Open(dir, 0)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	cfg := s.GroupConfig(100)
	if cfg.CooldownSeconds != DefaultCooldownSeconds {
		t.Errorf("missing cooldown defaulted to %d, want %d", cfg.CooldownSeconds, DefaultCooldownSeconds)
	}
	if !cfg.ShowUTCOffset {
		t.Error("explicit show_utc_offset lost")
	}
}

func TestConfiguredDefaultCooldownApplies(t *testing.T) {
	dir := t.TempDir()
	raw := `{
		"100": {"timezones": [], "config": {"show_utc_offset": true}},
		"200": {"timezones": [], "config": {"cooldown_seconds": 0}}
	}`
	if err := os.WriteFile(filepath.Join(dir, "groups.json"), []byte(raw), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	s, err := Open(dir, 45)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got := s.GroupConfig(300).CooldownSeconds; got != 45 {
		t.Errorf("new group cooldown = %d, want configured 45", got)
	}
	if got := s.GroupConfig(100).CooldownSeconds; got != 45 {
		t.Errorf("missing cooldown field loaded as %d, want configured 45", got)
	}
	if got := s.GroupConfig(200).CooldownSeconds; got != 0 {
		t.Errorf("explicit zero cooldown loaded as %d, want 0", got)
	}
}

func TestUnknownFieldsIgnored(t *testing.T) {
	dir := t.TempDir()
	raw := `{"5": {"timezone": "Asia/Tokyo", "display_name": "Tokyo", "set_at": "2026-01-01T00:00:00Z", "future_field": 42}}`
	if err := os.WriteFile(filepath.Join(dir, "users.json"), []byte(raw), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	s, err := Open(dir, 0)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	user, ok := s.UserTimezone(5)
	if !ok || user.Timezone != "Asia/Tokyo" {
		t.Errorf("UserTimezone = %+v, %v", user, ok)
	}
}

func TestScheduledDeletes(t *testing.T) {
	s, _ := openTestStore(t)
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	s.ScheduleDelete(100, 1, now.Add(10*time.Second))
	s.ScheduleDelete(100, 2, now.Add(time.Hour))

	pending := s.PendingDeletes(now.Add(30 * time.Second))
	if len(pending) != 1 || pending[0].MessageID != 1 {
		t.Fatalf("PendingDeletes = %+v, want message 1 only", pending)
	}

	s.RemoveScheduledDelete(pending[0].Key)
	if got := s.PendingDeletes(now.Add(30 * time.Second)); len(got) != 0 {
		t.Errorf("entry not removed: %+v", got)
	}
}

func TestStateRoundTrip(t *testing.T) {
	s, dir := openTestStore(t)
	s.SetActiveTimeMessage(100, 555)
	s.SetOwnerOnlyMode(true)

	s2, err := Open(dir, 0)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	m, ok := s2.ActiveTimeMessage(100)
	if !ok || m.MessageID != 555 {
		t.Errorf("ActiveTimeMessage = %+v, %v", m, ok)
	}
	if !s2.OwnerOnlyMode() {
		t.Error("owner-only mode lost")
	}

	s2.ClearActiveTimeMessage(100)
	if _, ok := s2.ActiveTimeMessage(100); ok {
		t.Error("descriptor survived clear")
	}
}

func TestIntegrityKeyedByFileName(t *testing.T) {
	s, dir := openTestStore(t)
	s.AddTimezone(100, "Europe/London", "London", 7)

	if err := os.WriteFile(filepath.Join(dir, "users.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("corrupt file: %v", err)
	}

	integrity := s.Integrity()
	for _, name := range []string{"groups.json", "users.json", "state.json", "cache.json"} {
		if _, ok := integrity[name]; !ok {
			t.Errorf("no entry for %s: %v", name, integrity)
		}
	}

	groups := integrity["groups.json"]
	if groups.Status != "ok" || groups.Size == 0 {
		t.Errorf("groups.json = %+v, want ok with non-zero size", groups)
	}
	if got := integrity["users.json"].Status; got != "corrupted" {
		t.Errorf("users.json status = %q, want corrupted", got)
	}
	if got := integrity["state.json"].Status; got != "missing" {
		t.Errorf("state.json status = %q, want missing", got)
	}
}

func TestCacheRoundTrip(t *testing.T) {
	s, dir := openTestStore(t)
	s.CacheZone("NYC", "America/New_York")

	if tz, ok := s.CachedZone("nyc"); !ok || tz != "America/New_York" {
		t.Errorf("CachedZone = %q, %v", tz, ok)
	}

	s2, err := Open(dir, 0)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if tz, ok := s2.CachedZone("nyc"); !ok || tz != "America/New_York" {
		t.Errorf("persisted CachedZone = %q, %v", tz, ok)
	}
	if s2.CacheSize() != 1 {
		t.Errorf("CacheSize = %d, want 1", s2.CacheSize())
	}
}
