package store

import "encoding/json"

// DefaultCooldownSeconds is applied when a group has no explicit cooldown.
const DefaultCooldownSeconds = 30

// TimezoneEntry is a single timezone configured for a group.
type TimezoneEntry struct {
	TZ          string `json:"tz"`
	DisplayName string `json:"display_name"`
	AddedBy     int64  `json:"added_by"`
	AddedAt     string `json:"added_at"`
}

// GroupConfig holds per-group settings.
type GroupConfig struct {
	CooldownSeconds int  `json:"cooldown_seconds"`
	ShowUTCOffset   bool `json:"show_utc_offset"`
}

// UnmarshalJSON marks an absent cooldown_seconds with -1 so the store can
// fill in its configured default at load time, while keeping an explicit 0
// as 0.
func (c *GroupConfig) UnmarshalJSON(data []byte) error {
	type alias GroupConfig
	a := alias{CooldownSeconds: -1}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*c = GroupConfig(a)
	return nil
}

// GroupData is the complete record for one group. Timezones keep insertion
// order, which is the display order; entries are unique by canonical zone id.
type GroupData struct {
	Timezones []TimezoneEntry `json:"timezones"`
	Config    GroupConfig     `json:"config"`
}

// NewGroupData returns an empty group with the given default cooldown.
func NewGroupData(cooldownSeconds int) GroupData {
	return GroupData{Config: GroupConfig{CooldownSeconds: cooldownSeconds}}
}

// UserData is one user's timezone preference.
type UserData struct {
	Timezone    string `json:"timezone"`
	DisplayName string `json:"display_name"`
	SetAt       string `json:"set_at"`
}

// ActiveTimeMessage tracks a live time display message being edited.
type ActiveTimeMessage struct {
	MessageID int    `json:"message_id"`
	StartedAt string `json:"started_at"`
}

// ScheduledDelete tracks a message scheduled for deletion.
type ScheduledDelete struct {
	ChatID    int64  `json:"chat_id"`
	MessageID int    `json:"message_id"`
	DeleteAt  string `json:"delete_at"`
}

// StateData is the process runtime state.
type StateData struct {
	ActiveTimeMessages map[string]ActiveTimeMessage `json:"active_time_messages"`
	OwnerOnlyMode      bool                         `json:"owner_only_mode"`
	ScheduledDeletes   map[string]ScheduledDelete   `json:"scheduled_deletes"`
}

func newStateData() StateData {
	return StateData{
		ActiveTimeMessages: make(map[string]ActiveTimeMessage),
		ScheduledDeletes:   make(map[string]ScheduledDelete),
	}
}

func (s *StateData) normalize() {
	if s.ActiveTimeMessages == nil {
		s.ActiveTimeMessages = make(map[string]ActiveTimeMessage)
	}
	if s.ScheduledDeletes == nil {
		s.ScheduledDeletes = make(map[string]ScheduledDelete)
	}
}

// CacheData holds resolver memoization persisted across restarts.
type CacheData struct {
	AliasCache map[string]string `json:"alias_cache"`
}

func newCacheData() CacheData {
	return CacheData{AliasCache: make(map[string]string)}
}

func (c *CacheData) normalize() {
	if c.AliasCache == nil {
		c.AliasCache = make(map[string]string)
	}
}
