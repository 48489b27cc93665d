package domain

import (
	"strconv"
	"strings"
	"time"
)

// DaySet is a bitmask over the days of the week, Monday = bit 0.
type DaySet uint8

const (
	Monday DaySet = 1 << iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

func (d DaySet) Has(day DaySet) bool      { return d&day != 0 }
func (d DaySet) Intersects(o DaySet) bool { return d&o != 0 }
func (d DaySet) IsEmpty() bool            { return d == 0 }

var dayNames = []struct {
	day  DaySet
	name string
}{
	{Monday, "Mo"}, {Tuesday, "Tu"}, {Wednesday, "We"}, {Thursday, "Th"},
	{Friday, "Fr"}, {Saturday, "Sa"}, {Sunday, "Su"},
}

func (d DaySet) String() string {
	var b strings.Builder
	for _, dn := range dayNames {
		if d.Has(dn.day) {
			b.WriteString(dn.name)
		}
	}
	return b.String()
}

// Weekdays returns the set as time.Weekday values in Monday-first order.
func (d DaySet) Weekdays() []time.Weekday {
	order := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}
	var out []time.Weekday
	for i, wd := range order {
		if d.Has(1 << uint(i)) {
			out = append(out, wd)
		}
	}
	return out
}

// MeetingTime is the structured form of one meeting pattern: a set of
// days plus a [Start,End) interval in minutes from midnight. Async
// meetings (online/asynchronous, TBA, unparseable input) carry no days
// and no interval and never conflict with anything.
type MeetingTime struct {
	Days  DaySet `json:"days"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Async bool   `json:"async"`
}

// ConflictsWith reports whether two meeting times overlap in wall-clock
// time on at least one shared day. Intervals are half-open, so
// back-to-back meetings (9:00-9:50 and 9:50-10:40) do not conflict.
func (m MeetingTime) ConflictsWith(o MeetingTime) bool {
	if m.Async || o.Async {
		return false
	}
	if !m.Days.Intersects(o.Days) {
		return false
	}
	return m.Start < o.End && o.Start < m.End
}

var asyncMeeting = MeetingTime{Async: true}

// ParseMeetingTime parses a single "days time-range" encoding such as
// "MWF 09:00 AM-09:50 AM" or "TTh 1:00-2:15pm". It is total: anything
// it cannot make sense of (including "TBA" and "Online") comes back as
// an asynchronous meeting.
func ParseMeetingTime(raw string) MeetingTime {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return asyncMeeting
	}

	// Split the leading day codes from the time range at the first digit.
	split := strings.IndexFunc(raw, func(r rune) bool { return r >= '0' && r <= '9' })
	if split <= 0 {
		return asyncMeeting
	}

	days, ok := parseDays(strings.TrimSpace(raw[:split]))
	if !ok || days.IsEmpty() {
		return asyncMeeting
	}

	start, end, ok := parseTimeRange(raw[split:])
	if !ok || start >= end {
		return asyncMeeting
	}

	return MeetingTime{Days: days, Start: start, End: end}
}

// ParseSchedule parses a full days_time column value, which may hold
// several meeting patterns joined with ";" (one per meeting row on the
// source page).
func ParseSchedule(raw string) []MeetingTime {
	parts := strings.Split(raw, ";")
	out := make([]MeetingTime, 0, len(parts))
	for _, p := range parts {
		out = append(out, ParseMeetingTime(p))
	}
	return out
}

// parseDays scans compound day codes. Multi-letter codes take priority
// so "Th" is Thursday rather than Tuesday+something and "Sa" is
// Saturday rather than Sunday+something. A lone "S" means Sunday, "U"
// is accepted as an alternate Sunday code.
func parseDays(s string) (DaySet, bool) {
	var days DaySet
	i := 0
	for i < len(s) {
		rest := s[i:]
		switch {
		case hasFold(rest, "Th"):
			days |= Thursday
			i += 2
		case hasFold(rest, "Tu"):
			days |= Tuesday
			i += 2
		case hasFold(rest, "Sa"):
			days |= Saturday
			i += 2
		case hasFold(rest, "Su"):
			days |= Sunday
			i += 2
		case hasFold(rest, "Mo"):
			days |= Monday
			i += 2
		case hasFold(rest, "We"):
			days |= Wednesday
			i += 2
		case hasFold(rest, "Fr"):
			days |= Friday
			i += 2
		case hasFold(rest, "M"):
			days |= Monday
			i++
		case hasFold(rest, "T"):
			days |= Tuesday
			i++
		case hasFold(rest, "W"):
			days |= Wednesday
			i++
		case hasFold(rest, "F"):
			days |= Friday
			i++
		case hasFold(rest, "S"):
			days |= Sunday
			i++
		case hasFold(rest, "U"):
			days |= Sunday
			i++
		case rest[0] == ' ' || rest[0] == ',':
			i++
		default:
			return 0, false
		}
	}
	return days, true
}

func hasFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// parseTimeRange parses "09:00 AM-09:50 AM" or "1:00-2:15pm" into
// minutes from midnight. When the start carries no am/pm marker it
// borrows the end's, flipping to the morning if that would put the
// start after the end.
func parseTimeRange(s string) (int, int, bool) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	endMin, endMer, ok := parseClock(parts[1])
	if !ok {
		return 0, 0, false
	}
	startMin, startMer, ok := parseClock(parts[0])
	if !ok {
		return 0, 0, false
	}
	if startMer == "" {
		startMer = endMer
	}
	if endMer == "" {
		endMer = startMer
	}
	start := toMinutes(startMin, startMer)
	end := toMinutes(endMin, endMer)
	if start >= end && startMer == "pm" {
		// "9:00-1:00pm" style: the start was actually a morning time.
		start = toMinutes(startMin, "am")
	}
	return start, end, true
}

// parseClock parses "h:mm" with an optional am/pm suffix, returning
// the raw 12-hour value and the meridiem ("" when absent).
func parseClock(s string) (int, string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	mer := ""
	switch {
	case strings.HasSuffix(s, "am"):
		mer = "am"
		s = strings.TrimSpace(strings.TrimSuffix(s, "am"))
	case strings.HasSuffix(s, "pm"):
		mer = "pm"
		s = strings.TrimSpace(strings.TrimSuffix(s, "pm"))
	case strings.HasSuffix(s, "a.m."):
		mer = "am"
		s = strings.TrimSpace(strings.TrimSuffix(s, "a.m."))
	case strings.HasSuffix(s, "p.m."):
		mer = "pm"
		s = strings.TrimSpace(strings.TrimSuffix(s, "p.m."))
	}
	hm := strings.SplitN(s, ":", 2)
	if len(hm) != 2 {
		return 0, "", false
	}
	h, err := strconv.Atoi(strings.TrimSpace(hm[0]))
	if err != nil || h < 0 || h > 23 {
		return 0, "", false
	}
	m, err := strconv.Atoi(strings.TrimSpace(hm[1]))
	if err != nil || m < 0 || m > 59 {
		return 0, "", false
	}
	return h*60 + m, mer, true
}

// toMinutes normalizes a 12-hour clock value: 12:00am is midnight,
// 12:00pm is noon. Values already past 12 hours (24-hour input) pass
// through unchanged.
func toMinutes(min int, mer string) int {
	h := min / 60
	switch mer {
	case "am":
		if h == 12 {
			min -= 12 * 60
		}
	case "pm":
		if h < 12 {
			min += 12 * 60
		}
	}
	return min
}
