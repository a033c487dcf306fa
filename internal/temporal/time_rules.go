package temporal

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	reHourMinute    = regexp.MustCompile(`\b(\d{1,2}):(\d{2})(?:\s*(?:h|hs|hrs|am|pm))?\b`)
	reHourHMinute   = regexp.MustCompile(`\b(\d{1,2})\s*h\s*(\d{2})\b`)
	reHourH         = regexp.MustCompile(`\b(\d{1,2})\s*(?:h|hs|hrs|horas?)\b`)
	reHourPM        = regexp.MustCompile(`\b(\d{1,2})\s*pm\b`)
	reHourAM        = regexp.MustCompile(`\b(\d{1,2})\s*am\b`)
	reHourDayPart   = regexp.MustCompile(`\b(\d{1,2})\s+(?:da|de|a)\s+(?:manha|tarde|noite|madrugada)\b`)
	reHourAs        = regexp.MustCompile(`\bas\s+(\d{1,2})\b`)
	reBareNumber    = regexp.MustCompile(`\b\d{1,2}\b`)
	reAfternoonMark = regexp.MustCompile(`(?:^|[^a-z])(?:pm|tarde|noite)\b`)
	reAnteMeridiem  = regexp.MustCompile(`(?:^|[^a-z])am\b`)
	reMidnightMark  = regexp.MustCompile(`\b(?:noite|madrugada)\b`)
	reFollowingWord = regexp.MustCompile(`^\s+([a-z]+)`)
	rePrecedingWord = regexp.MustCompile(`([a-z]+)\s+$`)
)

// DefaultTimeRules is the time rule order, most specific first.
func DefaultTimeRules() []Rule[ClockTime] {
	return []Rule[ClockTime]{
		NewRule("hh_mm", func(text string, _ time.Time) Match[ClockTime] {
			return hourMinute(reHourMinute, text)
		}),
		NewRule("hh_h_mm", func(text string, _ time.Time) Match[ClockTime] {
			return hourMinute(reHourHMinute, text)
		}),
		NewRule("hh_h", func(text string, _ time.Time) Match[ClockTime] {
			return hourMinute(reHourH, text)
		}),
		NewRule("hh_pm", func(text string, _ time.Time) Match[ClockTime] {
			return meridiemHour(reHourPM, text)
		}),
		NewRule("hh_am", func(text string, _ time.Time) Match[ClockTime] {
			return meridiemHour(reHourAM, text)
		}),
		NewRule("qualified_hour", qualifiedHour),
		NewRule("bare_number", bareNumber),
	}
}

// hourMinute reads the hour from group 1 and optional minutes from group 2.
func hourMinute(re *regexp.Regexp, text string) Match[ClockTime] {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return NoMatch[ClockTime]()
	}
	c := ClockTime{}
	c.Hour, _ = strconv.Atoi(m[1])
	if len(m) > 2 && m[2] != "" {
		c.Minute, _ = strconv.Atoi(m[2])
	}
	if !c.Valid() {
		return NoMatch[ClockTime]()
	}
	return Matched(c, m[0])
}

// meridiemHour matches "3pm" but not the minutes of "10:30pm".
func meridiemHour(re *regexp.Regexp, text string) Match[ClockTime] {
	for _, loc := range re.FindAllStringIndex(text, -1) {
		if loc[0] > 0 && text[loc[0]-1] == ':' {
			continue
		}
		if m := hourMinute(re, text[loc[0]:loc[1]]); m.OK() {
			return m
		}
	}
	return NoMatch[ClockTime]()
}

// qualifiedHour handles "10 da manha", "3 da tarde" and "as 10".
func qualifiedHour(text string, _ time.Time) Match[ClockTime] {
	if m := hourMinute(reHourDayPart, text); m.OK() {
		return m
	}
	for _, loc := range reHourAs.FindAllStringSubmatchIndex(text, -1) {
		if dateAdjacent(text, loc[2], loc[3]) {
			continue
		}
		if m := hourMinute(reHourAs, text[loc[0]:loc[1]]); m.OK() {
			return m
		}
	}
	return NoMatch[ClockTime]()
}

// bareNumber takes the first 1-2 digit number that is not part of a date
// expression such as "15/08", "dia 15" or "daqui a 3 dias".
func bareNumber(text string, _ time.Time) Match[ClockTime] {
	for _, loc := range reBareNumber.FindAllStringIndex(text, -1) {
		if dateAdjacent(text, loc[0], loc[1]) {
			continue
		}
		span := text[loc[0]:loc[1]]
		h, _ := strconv.Atoi(span)
		c := ClockTime{Hour: h}
		if c.Valid() {
			return Matched(c, span)
		}
	}
	return NoMatch[ClockTime]()
}

var notClockNeighbors = map[string]bool{
	"dia": true, "numero": true, "anos": true, "ano": true, "minutos": true, "min": true,
}

func dateAdjacent(text string, start, end int) bool {
	if start > 0 && strings.ContainsRune("/:", rune(text[start-1])) {
		return true
	}
	if end < len(text) && strings.ContainsRune("/:", rune(text[end])) {
		return true
	}
	if m := reFollowingWord.FindStringSubmatch(text[end:]); m != nil {
		if IsOffsetUnit(m[1]) || notClockNeighbors[m[1]] {
			return true
		}
	}
	if m := rePrecedingWord.FindStringSubmatch(text[:start]); m != nil {
		if notClockNeighbors[m[1]] {
			return true
		}
	}
	return false
}

// normalizeHour moves morning hours to the afternoon when the span or the
// message mentions pm/tarde/noite, and maps 12am, "12 da noite" and
// "12 da madrugada" to midnight.
func normalizeHour(c ClockTime, span, text string) ClockTime {
	if c.Hour == 12 && reMidnightMark.MatchString(span) {
		c.Hour = 0
		return c
	}
	if c.Hour < 12 && (reAfternoonMark.MatchString(span) || reAfternoonMark.MatchString(text)) {
		c.Hour += 12
	}
	if c.Hour == 12 && (reAnteMeridiem.MatchString(span) || reAnteMeridiem.MatchString(text)) {
		c.Hour = 0
	}
	return c
}
