package title

import (
	"regexp"

	"github.com/xaenox/agenda-bot/internal/temporal"
	"github.com/xaenox/agenda-bot/internal/textutil"
)

var (
	reClockToken = regexp.MustCompile(`^(?:\d{1,2}(?::\d{2}|h\d{2})(?:h|hs|hrs|am|pm)?|\d{1,2}(?:h|hs|hrs|am|pm))$`)
	reDigits     = regexp.MustCompile(`^\d{1,2}$`)
	reDateToken  = regexp.MustCompile(`^\d{1,2}/\d{1,2}(?:/\d{2}|/\d{4})?$`)
)

// stripRule reports how many tokens starting at i belong to a phrase that is
// not part of the title. Zero means the rule does not apply.
type stripRule struct {
	name  string
	match func(keys []string, i int) int
}

// stripRules run in order at every position; the first rule that applies
// consumes its tokens.
var stripRules = []stripRule{
	{"instruction_phrase", func(keys []string, i int) int { return matchPhrase(keys, i, instructionPhrases) }},
	{"pronoun_before_imperative", pronounBeforeImperative},
	{"imperative", func(keys []string, i int) int { return boolN(imperatives[keys[i]]) }},
	{"relative_offset", relativeOffset},
	{"temporal_phrase", func(keys []string, i int) int { return matchPhrase(keys, i, temporalPhrases) }},
	{"qualified_weekday", qualifiedWeekday},
	{"temporal_word", func(keys []string, i int) int { return boolN(temporal.IsTemporalWord(keys[i])) }},
	{"explicit_date", explicitDate},
	{"clock", clock},
	{"day_part", dayPart},
}

// stripTokens drops every token covered by a strip rule.
func stripTokens(tokens []textutil.Token) []textutil.Token {
	keys := textutil.Keys(tokens)
	kept := make([]textutil.Token, 0, len(tokens))
	for i := 0; i < len(tokens); {
		n := 0
		for _, r := range stripRules {
			if n = r.match(keys, i); n > 0 {
				break
			}
		}
		if n == 0 {
			kept = append(kept, tokens[i])
			n = 1
		}
		i += n
	}
	return kept
}

func boolN(b bool) int {
	if b {
		return 1
	}
	return 0
}

func at(keys []string, i int) string {
	if i < 0 || i >= len(keys) {
		return ""
	}
	return keys[i]
}

func matchPhrase(keys []string, i int, phrases [][]string) int {
	for _, p := range phrases {
		if i+len(p) > len(keys) {
			continue
		}
		ok := true
		for j, w := range p {
			if keys[i+j] != w {
				ok = false
				break
			}
		}
		if ok {
			return len(p)
		}
	}
	return 0
}

func pronounBeforeImperative(keys []string, i int) int {
	if keys[i] == "me" && imperatives[at(keys, i+1)] {
		return 1
	}
	return 0
}

// relativeOffset covers "daqui a 3 dias", "em 2 semanas", "dentro de 1 mes".
func relativeOffset(keys []string, i int) int {
	j := i
	switch keys[i] {
	case "daqui":
		j++
		if at(keys, j) == "a" {
			j++
		}
	case "em":
		j++
	case "dentro":
		if at(keys, i+1) != "de" {
			return 0
		}
		j += 2
	default:
		return 0
	}
	if _, ok := temporal.ParseCount(at(keys, j)); !ok {
		return 0
	}
	if !temporal.IsOffsetUnit(at(keys, j+1)) {
		return 0
	}
	n := j + 2 - i
	if at(keys, j+2) == "feira" {
		n++
	}
	return n
}

// qualifiedWeekday covers "nesta sexta" and "segunda feira".
func qualifiedWeekday(keys []string, i int) int {
	switch keys[i] {
	case "nesta", "neste", "esta", "este", "nessa", "nesse", "essa", "esse":
		if _, ok := temporal.WeekdayOf(at(keys, i+1)); ok {
			return 1
		}
		return 0
	}
	if _, ok := temporal.WeekdayOf(keys[i]); ok && at(keys, i+1) == "feira" {
		return 2
	}
	return 0
}

// explicitDate covers "15/08", "dia 15/08" and "dia 15".
func explicitDate(keys []string, i int) int {
	if reDateToken.MatchString(keys[i]) {
		return 1
	}
	if keys[i] == "dia" && (reDateToken.MatchString(at(keys, i+1)) || reDigits.MatchString(at(keys, i+1))) {
		return 2
	}
	return 0
}

// clock covers "15h", "às 15", "as 15:30", "3 da tarde" and "10 horas".
func clock(keys []string, i int) int {
	j := i
	switch {
	case isClockLead(keys[i]) && (reClockToken.MatchString(at(keys, i+1)) || reDigits.MatchString(at(keys, i+1))):
		j = i + 2
	case reClockToken.MatchString(keys[i]):
		j = i + 1
	case reDigits.MatchString(keys[i]) && (isHourUnit(at(keys, i+1)) || dayPart(keys, i+1) > 0):
		j = i + 1
	default:
		return 0
	}
	if isHourUnit(at(keys, j)) {
		j++
	}
	j += dayPart(keys, j)
	return j - i
}

func isClockLead(key string) bool {
	switch key {
	case "as", "a", "pelas", "ate", "entre":
		return true
	}
	return false
}

func isHourUnit(key string) bool {
	switch key {
	case "h", "hs", "hrs", "hora", "horas", "am", "pm":
		return true
	}
	return false
}

// dayPart covers "da manha", "a tarde", "pela noite" and noon/midnight.
func dayPart(keys []string, i int) int {
	switch at(keys, i) {
	case "meio-dia", "meia-noite":
		return 1
	}
	if dayPartLeads[at(keys, i)] && dayParts[at(keys, i+1)] {
		return 2
	}
	return 0
}
