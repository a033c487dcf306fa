package temporal

import (
	"regexp"
	"strconv"
	"time"
)

var (
	reExplicitDate = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})(?:/(\d{2}|\d{4}))?\b`)
	reOffset       = regexp.MustCompile(`\b(?:daqui a|daqui|dentro de|em)\s+(\d{1,2}|um|uma|dois|duas|tres|quatro|cinco|seis|sete|oito|nove|dez)\s+(dias?|semanas?|mes|meses|(?:domingo|segunda|terca|quarta|quinta|sexta|sabado)s?(?:-feiras?)?)\b`)
	reDayAfterTmrw = regexp.MustCompile(`\bdepois de amanha\b`)
	reTomorrow     = regexp.MustCompile(`\bamanha\b`)
	reToday        = regexp.MustCompile(`\b(?:hoje|hj)\b`)
	reWeekday      = regexp.MustCompile(`\b(?:(?:proxim[ao]|nest[ae]|est[ae])\s+)?(domingo|segunda|terca|quarta|quinta|sexta|sabado)(?:-feira|\s+feira)?\b`)
)

// DefaultDateRules is the date rule order: the first rule that matches wins
// and phrases are never combined.
func DefaultDateRules() []Rule[CalendarDate] {
	return []Rule[CalendarDate]{
		NewRule("explicit_date", explicitDate),
		NewRule("relative_offset", relativeOffset),
		NewRule("day_after_tomorrow", func(text string, now time.Time) Match[CalendarDate] {
			return fixedOffset(reDayAfterTmrw, text, now, 2)
		}),
		NewRule("tomorrow", func(text string, now time.Time) Match[CalendarDate] {
			return fixedOffset(reTomorrow, text, now, 1)
		}),
		NewRule("today", func(text string, now time.Time) Match[CalendarDate] {
			return fixedOffset(reToday, text, now, 0)
		}),
		NewRule("weekday", weekday),
	}
}

// NextWeekday returns the next occurrence of wd strictly after today.
func NextWeekday(today CalendarDate, wd time.Weekday) CalendarDate {
	diff := (int(wd) - int(today.Weekday()) + 7) % 7
	if diff == 0 {
		diff = 7
	}
	return today.AddDays(diff)
}

func fixedOffset(re *regexp.Regexp, text string, now time.Time, days int) Match[CalendarDate] {
	span := re.FindString(text)
	if span == "" {
		return NoMatch[CalendarDate]()
	}
	return Matched(DateOf(now).AddDays(days), span)
}

// explicitDate handles dd/mm and dd/mm/yyyy. A date without year that already
// passed this year refers to next year.
func explicitDate(text string, now time.Time) Match[CalendarDate] {
	m := reExplicitDate.FindStringSubmatch(text)
	if m == nil {
		return NoMatch[CalendarDate]()
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	today := DateOf(now)

	year := today.Year
	if m[3] != "" {
		year, _ = strconv.Atoi(m[3])
		if year < 100 {
			year += 2000
		}
	}

	d := DateOf(time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.UTC))
	if d.Day != day || int(d.Month) != month {
		return NoMatch[CalendarDate]()
	}
	if m[3] == "" && d.Before(today) {
		d.Year++
		if d.Month == time.February && d.Day == 29 {
			// 29/02 only exists in leap years.
			if DateOf(time.Date(d.Year, 2, 29, 12, 0, 0, 0, time.UTC)).Day != 29 {
				return NoMatch[CalendarDate]()
			}
		}
	}
	return Matched(d, m[0])
}

// relativeOffset handles "daqui a N dias|semanas|meses" and "em N dias". With
// a weekday unit ("daqui a 3 domingos") it picks the N-th next occurrence.
func relativeOffset(text string, now time.Time) Match[CalendarDate] {
	m := reOffset.FindStringSubmatch(text)
	if m == nil {
		return NoMatch[CalendarDate]()
	}
	n, ok := ParseCount(m[1])
	if !ok {
		return NoMatch[CalendarDate]()
	}
	today := DateOf(now)

	switch unit := m[2]; unit {
	case "dia", "dias":
		return Matched(today.AddDays(n), m[0])
	case "semana", "semanas":
		return Matched(today.AddDays(7*n), m[0])
	case "mes", "meses":
		return Matched(today.AddMonths(n), m[0])
	default:
		wd, ok := WeekdayOf(unit)
		if !ok || n < 1 {
			return NoMatch[CalendarDate]()
		}
		return Matched(NextWeekday(today, wd).AddDays(7*(n-1)), m[0])
	}
}

func weekday(text string, now time.Time) Match[CalendarDate] {
	m := reWeekday.FindStringSubmatch(text)
	if m == nil {
		return NoMatch[CalendarDate]()
	}
	return Matched(NextWeekday(DateOf(now), Weekdays[m[1]]), m[0])
}
