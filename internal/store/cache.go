package store

import "strings"

// CachedZone returns a memoized resolution for a normalized query.
func (s *Store) CachedZone(query string) (string, bool) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	tz, ok := s.cache.AliasCache[strings.ToLower(query)]
	return tz, ok
}

// CacheZone memoizes a successful resolution.
func (s *Store) CacheZone(query, tzID string) error {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	s.cache.AliasCache[strings.ToLower(query)] = tzID
	return s.saveCache()
}

// CacheSize reports the number of memoized resolutions.
func (s *Store) CacheSize() int {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	return len(s.cache.AliasCache)
}
