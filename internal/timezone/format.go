package timezone

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/dickrael/time-bot/internal/store"
	"github.com/dickrael/time-bot/lib/helpers"
)

// Now returns the current wall-clock time in the given zone, falling back to
// UTC when the zone cannot be loaded.
func (s *Service) Now(tzID string) time.Time {
	loc, err := time.LoadLocation(tzID)
	if err != nil {
		log.Errorf("loading zone %q: %s", tzID, err)
		return s.now().UTC()
	}
	return s.now().In(loc)
}

// FormatOffset renders a zone offset as UTC+5, UTC-4 or UTC+5:30.
func FormatOffset(t time.Time) string {
	_, seconds := t.Zone()
	if seconds == 0 {
		return "UTC+0"
	}
	sign := "+"
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	hours := seconds / 3600
	mins := (seconds % 3600) / 60
	if mins == 0 {
		return fmt.Sprintf("UTC%s%d", sign, hours)
	}
	return fmt.Sprintf("UTC%s%d:%02d", sign, hours, mins)
}

// locationLine builds the "🇺🇿 Tashkent, Uzbekistan" part of an entry.
func locationLine(tzID, displayName string) string {
	name := helpers.EscapeHTML(displayName)
	country, flag := CountryAndFlag(tzID)
	switch {
	case country != "" && flag != "":
		return fmt.Sprintf("%s %s, %s", flag, name, country)
	case country != "":
		return fmt.Sprintf("%s, %s", name, country)
	default:
		return name
	}
}

// FormatAllTimes renders the group time board as HTML. Entries are sorted by
// current UTC offset, earliest first, inside a blockquote. A live footer is
// appended when the message belongs to a running live display.
func (s *Service) FormatAllTimes(entries []store.TimezoneEntry, live bool, showOffset bool, liveInterval time.Duration) string {
	if len(entries) == 0 {
		return "No timezones configured for this group.\n\n" +
			"Admins can add timezones with /addtime <code>&lt;city&gt;</code>"
	}

	type zoneTime struct {
		entry store.TimezoneEntry
		t     time.Time
	}
	times := make([]zoneTime, 0, len(entries))
	for _, e := range entries {
		times = append(times, zoneTime{entry: e, t: s.Now(e.TZ)})
	}
	sort.SliceStable(times, func(i, j int) bool {
		_, oi := times[i].t.Zone()
		_, oj := times[j].t.Zone()
		return oi < oj
	})

	rows := make([]string, 0, len(times))
	for _, zt := range times {
		row := fmt.Sprintf("%s: <b>%s</b>", locationLine(zt.entry.TZ, zt.entry.DisplayName), zt.t.Format("15:04"))
		if showOffset {
			row += fmt.Sprintf(" (%s)", FormatOffset(zt.t))
		}
		rows = append(rows, row)
	}

	var b strings.Builder
	b.WriteString("<b>Current Times</b>\n\n")
	b.WriteString("<blockquote>")
	b.WriteString(strings.Join(rows, "\n"))
	b.WriteString("</blockquote>")
	if live {
		fmt.Fprintf(&b, "\n\n<i>🔄 Live updates every %ds</i>", int(liveInterval.Seconds()))
	}
	return b.String()
}

// ConversionTarget is one destination zone for ConvertTime.
type ConversionTarget struct {
	TZ          string
	DisplayName string
}

// ConvertTime interprets timeStr as today's wall-clock time in fromTZ and
// renders it in each target zone, marking day rollovers with (+1 day) or
// (-1 day). The second return is false when timeStr cannot be parsed.
func (s *Service) ConvertTime(timeStr, fromTZ string, targets []ConversionTarget) (string, bool) {
	hour, minute, ok := ParseClock(timeStr)
	if !ok {
		return "", false
	}

	srcLoc, err := time.LoadLocation(fromTZ)
	if err != nil {
		log.Errorf("loading source zone %q: %s", fromTZ, err)
		return "", false
	}
	now := s.now().In(srcLoc)
	src := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, srcLoc)

	var b strings.Builder
	b.WriteString("<b>Time Conversion</b>\n\n")
	fmt.Fprintf(&b, "%s in <b>%s</b>\n\n", helpers.EscapeHTML(timeStr), locationLine(fromTZ, DisplayName(fromTZ)))

	rows := make([]string, 0, len(targets))
	for _, target := range targets {
		loc, err := time.LoadLocation(target.TZ)
		if err != nil {
			log.Errorf("converting to %q: %s", target.TZ, err)
			rows = append(rows, fmt.Sprintf("%s: conversion error", helpers.EscapeHTML(target.DisplayName)))
			continue
		}
		dst := src.In(loc)

		marker := ""
		switch dayDelta(src, dst) {
		case 1:
			marker = " (+1 day)"
		case -1:
			marker = " (-1 day)"
		}

		// Personal entries are tagged "(you)" and skip the country suffix.
		location := helpers.EscapeHTML(target.DisplayName)
		if !strings.Contains(target.DisplayName, "(you)") {
			location = locationLine(target.TZ, target.DisplayName)
		}
		rows = append(rows, fmt.Sprintf("%s: <b>%s</b>%s", location, dst.Format("15:04"), marker))
	}

	b.WriteString("<blockquote>")
	b.WriteString(strings.Join(rows, "\n"))
	b.WriteString("</blockquote>")
	return b.String(), true
}

func dayDelta(src, dst time.Time) int {
	sy, sm, sd := src.Date()
	dy, dm, dd := dst.Date()
	a := time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC)
	b := time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// UserTimeDisplay renders the personal time card used by /timehere.
func (s *Service) UserTimeDisplay(tzID, displayName string) string {
	t := s.Now(tzID)
	return fmt.Sprintf(
		"<b>Your Current Time</b>\n\n<b>%s</b>\n%s\n<b>%s %s</b>",
		locationLine(tzID, displayName),
		t.Format("Monday, January 02, 2006"),
		ClockEmoji(t.Hour()),
		t.Format("15:04:05"),
	)
}

var (
	clock24Re      = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	clockCompactRe = regexp.MustCompile(`^(\d{2})(\d{2})$`)
	clock12Re      = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*(am|pm)$`)
	clockHourRe    = regexp.MustCompile(`^(\d{1,2})$`)
)

// ParseClock accepts "15:04", "1504", "3pm", "3:04pm" and bare hours.
func ParseClock(raw string) (int, int, bool) {
	raw = strings.ToLower(strings.TrimSpace(raw))

	if m := clock24Re.FindStringSubmatch(raw); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour <= 23 && minute <= 59 {
			return hour, minute, true
		}
		return 0, 0, false
	}

	if m := clockCompactRe.FindStringSubmatch(raw); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour <= 23 && minute <= 59 {
			return hour, minute, true
		}
		return 0, 0, false
	}

	if m := clock12Re.FindStringSubmatch(raw); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		if hour < 1 || hour > 12 || minute > 59 {
			return 0, 0, false
		}
		if m[3] == "pm" && hour != 12 {
			hour += 12
		} else if m[3] == "am" && hour == 12 {
			hour = 0
		}
		return hour, minute, true
	}

	if m := clockHourRe.FindStringSubmatch(raw); m != nil {
		hour, _ := strconv.Atoi(m[1])
		if hour <= 23 {
			return hour, 0, true
		}
	}

	return 0, 0, false
}
