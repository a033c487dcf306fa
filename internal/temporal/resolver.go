// Package temporal resolves the date and clock time mentioned in a Portuguese
// chat message ("amanhã às 15h", "próxima segunda", "daqui a 3 dias").
package temporal

import (
	"strings"
	"time"

	"github.com/xaenox/agenda-bot/internal/textutil"
)

const defaultRuleName = "default"

// DefaultClock is used when a message carries no time phrase.
var DefaultClock = ClockTime{Hour: 10, Minute: 0}

// Defaults are the fallbacks applied when no rule matches. DayOffset is
// counted from the reference day, 0 meaning the same day.
type Defaults struct {
	Clock     ClockTime
	DayOffset int
}

type Option func(*Resolver)

// WithDefaults overrides the fallback clock time and day offset.
func WithDefaults(d Defaults) Option {
	return func(r *Resolver) {
		r.defaults = d
	}
}

// WithDateRules replaces the date rule list.
func WithDateRules(rules ...Rule[CalendarDate]) Option {
	return func(r *Resolver) {
		r.dateRules = rules
	}
}

// WithTimeRules replaces the time rule list.
func WithTimeRules(rules ...Rule[ClockTime]) Option {
	return func(r *Resolver) {
		r.timeRules = rules
	}
}

// Resolver applies ordered date and time rules to a message. It holds no
// mutable state and is safe for concurrent use.
type Resolver struct {
	dateRules []Rule[CalendarDate]
	timeRules []Rule[ClockTime]
	defaults  Defaults
}

func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		dateRules: DefaultDateRules(),
		timeRules: DefaultTimeRules(),
		defaults:  Defaults{Clock: DefaultClock},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve finds the date and the time mentioned in text relative to now.
// Date and time are resolved independently; the first matching rule of each
// list wins. Missing parts fall back to the resolver defaults.
func (r *Resolver) Resolve(text string, now time.Time) Expression {
	folded := textutil.Fold(text)
	expr := Expression{}
	var spans []string

	if m, name := firstMatch(r.dateRules, folded, now); m.OK() {
		expr.Date = m.Value
		expr.DateRule = name
		spans = append(spans, m.Span)
	} else {
		expr.Date = DateOf(now).AddDays(r.defaults.DayOffset)
		expr.DateRule = defaultRuleName
	}

	if m, name := firstMatch(r.timeRules, folded, now); m.OK() {
		expr.Time = normalizeHour(m.Value, m.Span, folded)
		expr.TimeRule = name
		spans = append(spans, m.Span)
	} else {
		expr.Time = r.defaults.Clock
		expr.TimeRule = defaultRuleName
	}

	expr.MatchedSpan = strings.Join(spans, " ")
	return expr
}
