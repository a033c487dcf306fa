package temporal

import (
	"strconv"
	"strings"
	"time"
)

// Weekdays maps folded Portuguese weekday names to time.Weekday.
var Weekdays = map[string]time.Weekday{
	"domingo": time.Sunday,
	"segunda": time.Monday,
	"terca":   time.Tuesday,
	"quarta":  time.Wednesday,
	"quinta":  time.Thursday,
	"sexta":   time.Friday,
	"sabado":  time.Saturday,
}

var numberWords = map[string]int{
	"um": 1, "uma": 1, "dois": 2, "duas": 2, "tres": 3, "quatro": 4, "cinco": 5,
	"seis": 6, "sete": 7, "oito": 8, "nove": 9, "dez": 10,
}

// dayWords are standalone relative day markers.
var dayWords = map[string]bool{
	"hoje": true, "hj": true, "amanha": true, "ontem": true, "anteontem": true,
}

// relativeMarkers qualify a weekday or week.
var relativeMarkers = map[string]bool{
	"proxima": true, "proximo": true, "passada": true, "passado": true,
}

// WeekdayOf returns the weekday named by a folded token, accepting the
// "-feira" suffix and plurals ("segundas", "terca-feira").
func WeekdayOf(key string) (time.Weekday, bool) {
	key = strings.TrimSuffix(key, "-feira")
	key = strings.TrimSuffix(key, "-feiras")
	if wd, ok := Weekdays[key]; ok {
		return wd, true
	}
	wd, ok := Weekdays[strings.TrimSuffix(key, "s")]
	return wd, ok
}

// ParseCount parses a digit or number word ("3", "tres").
func ParseCount(key string) (int, bool) {
	if n, ok := numberWords[key]; ok {
		return n, true
	}
	n, err := strconv.Atoi(key)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// IsOffsetUnit reports whether key is a unit accepted after "daqui a N".
func IsOffsetUnit(key string) bool {
	switch key {
	case "dia", "dias", "semana", "semanas", "mes", "meses":
		return true
	}
	_, ok := WeekdayOf(key)
	return ok
}

// IsTemporalWord reports whether a folded token on its own denotes a date:
// weekday names, day words like "amanha" and relative markers like "proxima".
func IsTemporalWord(key string) bool {
	if dayWords[key] || relativeMarkers[key] {
		return true
	}
	_, ok := WeekdayOf(key)
	return ok
}
