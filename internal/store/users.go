package store

import (
	"strconv"
	"time"
)

func userKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

// UserTimezone returns a user's timezone preference, if set.
func (s *Store) UserTimezone(userID int64) (UserData, bool) {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	user, ok := s.users[userKey(userID)]
	return user, ok
}

// SetUserTimezone creates or overwrites a user's timezone preference.
func (s *Store) SetUserTimezone(userID int64, tzID, displayName string) error {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	s.users[userKey(userID)] = UserData{
		Timezone:    tzID,
		DisplayName: displayName,
		SetAt:       time.Now().UTC().Format(time.RFC3339),
	}
	return s.saveUsers()
}
