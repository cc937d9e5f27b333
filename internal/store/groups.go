package store

import (
	"strconv"
	"strings"
	"time"
)

func chatKey(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}

// Group returns a copy of the group record, creating an empty one in memory
// if the chat has never been configured. Nothing is persisted until an admin
// actually adds a timezone or edits the config.
func (s *Store) Group(chatID int64) GroupData {
	s.groupsMu.Lock()
	defer s.groupsMu.Unlock()

	group, ok := s.groups[chatKey(chatID)]
	if !ok {
		return NewGroupData(s.defaultCooldown)
	}
	return copyGroup(group)
}

func copyGroup(g GroupData) GroupData {
	out := g
	out.Timezones = make([]TimezoneEntry, len(g.Timezones))
	copy(out.Timezones, g.Timezones)
	return out
}

// AddTimezone appends a timezone to a group, preserving insertion order.
// Returns false if the canonical zone id is already configured.
func (s *Store) AddTimezone(chatID int64, tzID, displayName string, addedBy int64) (bool, error) {
	s.groupsMu.Lock()
	defer s.groupsMu.Unlock()

	key := chatKey(chatID)
	group, ok := s.groups[key]
	if !ok {
		group = NewGroupData(s.defaultCooldown)
	}

	for _, entry := range group.Timezones {
		if entry.TZ == tzID {
			return false, nil
		}
	}

	group.Timezones = append(group.Timezones, TimezoneEntry{
		TZ:          tzID,
		DisplayName: displayName,
		AddedBy:     addedBy,
		AddedAt:     time.Now().UTC().Format(time.RFC3339),
	})
	s.groups[key] = group

	return true, s.saveGroups()
}

// RemoveTimezone removes the first entry matching query against the zone id,
// display name, or a substring of either. Returns the removed display name.
func (s *Store) RemoveTimezone(chatID int64, query string) (string, bool, error) {
	s.groupsMu.Lock()
	defer s.groupsMu.Unlock()

	key := chatKey(chatID)
	group, ok := s.groups[key]
	if !ok {
		return "", false, nil
	}

	q := strings.ToLower(query)
	for i, entry := range group.Timezones {
		if strings.Contains(strings.ToLower(entry.TZ), q) ||
			strings.Contains(strings.ToLower(entry.DisplayName), q) {
			removed := entry.DisplayName
			group.Timezones = append(group.Timezones[:i], group.Timezones[i+1:]...)
			s.groups[key] = group
			return removed, true, s.saveGroups()
		}
	}
	return "", false, nil
}

// Timezones returns the group's entries in display order.
func (s *Store) Timezones(chatID int64) []TimezoneEntry {
	return s.Group(chatID).Timezones
}

// GroupConfig returns the group's settings.
func (s *Store) GroupConfig(chatID int64) GroupConfig {
	return s.Group(chatID).Config
}

// SetGroupConfig updates the group's settings, creating the group if needed.
func (s *Store) SetGroupConfig(chatID int64, cfg GroupConfig) error {
	s.groupsMu.Lock()
	defer s.groupsMu.Unlock()

	key := chatKey(chatID)
	group, ok := s.groups[key]
	if !ok {
		group = NewGroupData(s.defaultCooldown)
	}
	group.Config = cfg
	s.groups[key] = group
	return s.saveGroups()
}
