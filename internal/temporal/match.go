package temporal

import "time"

// Match is the outcome of applying a rule: either a value together with the
// text span that produced it, or no match.
type Match[T any] struct {
	Value T
	Span  string
	ok    bool
}

// Matched wraps a successful rule result.
func Matched[T any](v T, span string) Match[T] {
	return Match[T]{Value: v, Span: span, ok: true}
}

// NoMatch is returned by rules that do not apply to the text.
func NoMatch[T any]() Match[T] {
	return Match[T]{}
}

func (m Match[T]) OK() bool {
	return m.ok
}

// Rule matches one kind of phrase in folded message text. now carries the
// reference instant and location.
type Rule[T any] interface {
	Name() string
	Apply(text string, now time.Time) Match[T]
}

type ruleFunc[T any] struct {
	name string
	fn   func(text string, now time.Time) Match[T]
}

func (r ruleFunc[T]) Name() string {
	return r.name
}

func (r ruleFunc[T]) Apply(text string, now time.Time) Match[T] {
	return r.fn(text, now)
}

// NewRule builds a Rule from a function.
func NewRule[T any](name string, fn func(text string, now time.Time) Match[T]) Rule[T] {
	return ruleFunc[T]{name: name, fn: fn}
}

// firstMatch applies rules in order and returns the first successful match
// and the name of the rule that produced it.
func firstMatch[T any](rules []Rule[T], text string, now time.Time) (Match[T], string) {
	for _, r := range rules {
		if m := r.Apply(text, now); m.OK() {
			return m, r.Name()
		}
	}
	return NoMatch[T](), ""
}
