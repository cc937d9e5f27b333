package timezone

import (
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/dickrael/time-bot/internal/store"
)

// Service resolves user queries to IANA zones and renders time displays.
type Service struct {
	store *store.Store

	// now is swapped in tests for a fixed clock.
	now func() time.Time
}

func NewService(st *store.Store) *Service {
	return &Service{
		store: st,
		now:   time.Now,
	}
}

func validZone(tzID string) bool {
	if tzID == "" || tzID == "Local" {
		return false
	}
	_, err := time.LoadLocation(tzID)
	return err == nil
}

// DisplayName derives a readable name from an IANA identifier,
// e.g. "America/New_York" becomes "New York".
func DisplayName(tzID string) string {
	if i := strings.LastIndex(tzID, "/"); i >= 0 {
		return strings.ReplaceAll(tzID[i+1:], "_", " ")
	}
	return tzID
}

// Resolve maps a free-form query to a canonical zone identifier and display
// name. Lookup order: persisted cache, alias table, country names, exact
// identifier, case-insensitive identifier, city name, then fuzzy substring
// with the shortest match winning. Every successful resolution is cached.
func (s *Service) Resolve(query string) (string, string, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", "", false
	}
	lower := strings.ToLower(query)

	if cached, ok := s.store.CachedZone(lower); ok && validZone(cached) {
		return cached, DisplayName(cached), true
	}

	if tzID, ok := aliasTable[lower]; ok {
		if validZone(tzID) {
			return s.cacheAndReturn(lower, tzID)
		}
		log.Warnf("alias %q points to unknown zone %q", lower, tzID)
	}

	if tzID, ok := countryDefaultZone[lower]; ok && validZone(tzID) {
		return s.cacheAndReturn(lower, tzID)
	}

	// Exact identifier. Area/Location form only, so a bare abbreviation
	// never sneaks past the alias table.
	if strings.Contains(query, "/") && validZone(query) {
		return s.cacheAndReturn(lower, query)
	}

	if strings.Contains(query, "/") {
		for _, tz := range zoneNames {
			if strings.ToLower(tz) == lower {
				return s.cacheAndReturn(lower, tz)
			}
		}
	}

	// City name: last path segment with underscores as spaces.
	for _, tz := range zoneNames {
		i := strings.LastIndex(tz, "/")
		if i < 0 {
			continue
		}
		city := strings.ToLower(strings.ReplaceAll(tz[i+1:], "_", " "))
		if lower == city {
			return s.cacheAndReturn(lower, tz)
		}
	}

	// Fuzzy pass. Shortest identifier containing the query wins.
	var best string
	for _, tz := range zoneNames {
		if strings.Contains(strings.ToLower(tz), lower) {
			if best == "" || len(tz) < len(best) {
				best = tz
			}
		}
	}
	if best != "" {
		return s.cacheAndReturn(lower, best)
	}

	log.Debugf("could not resolve timezone query %q", query)
	return "", "", false
}

func (s *Service) cacheAndReturn(query, tzID string) (string, string, bool) {
	if err := s.store.CacheZone(query, tzID); err != nil {
		log.Warnf("caching resolution %q -> %q: %s", query, tzID, err)
	}
	return tzID, DisplayName(tzID), true
}

// CountryAndFlag returns the country name and flag emoji for a zone, or
// empty strings when the zone is not in the country table.
func CountryAndFlag(tzID string) (string, string) {
	code, ok := zoneCountryCode[tzID]
	if !ok {
		return "", ""
	}
	return countryNames[code], flagFromCode(code)
}

// flagFromCode builds a regional-indicator flag emoji from an ISO 3166-1
// alpha-2 code.
func flagFromCode(code string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(code) {
		if r < 'A' || r > 'Z' {
			return ""
		}
		b.WriteRune(0x1F1E6 + r - 'A')
	}
	return b.String()
}

// ClockEmoji picks the clock face for an hour of day.
func ClockEmoji(hour int) string {
	return clockEmojis[((hour%24)+24)%24]
}
