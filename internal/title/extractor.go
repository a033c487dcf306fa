// Package title derives a short human readable event title from a chat
// message by removing instructions, dates and times, with keyword templates as
// fallback when nothing usable is left.
package title

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/xaenox/agenda-bot/internal/textutil"
)

const (
	// Fallback is returned when no stage produces a title.
	Fallback = "Evento"

	DefaultMaxLength = 40

	minTitleLength = 3
	maxNameTokens  = 3
	maxObjectWords = 6
)

var (
	reEmail      = regexp.MustCompile(`(?i)\b[\w.+-]+@[\w-]+(?:\.[\w-]+)+\b`)
	reForwarding = regexp.MustCompile(`(?i)\s+(?:e\s+)?(?:manda|mande|mandar|envia|envie|enviar|adiciona|adicione|adicionar|coloca|coloque|colocar|convida|convide|convidar)\b.*?\s(?:pra|pro|para|a|o|ao|à|os|as)(?:\s.*)?$`)
)

type Option func(*Extractor)

// WithMaxLength limits titles to n visible characters.
func WithMaxLength(n int) Option {
	return func(e *Extractor) {
		if n >= minTitleLength {
			e.maxLength = n
		}
	}
}

// stage is one step of the fallback cascade.
type stage struct {
	name string
	run  func(e *Extractor, tokens []textutil.Token) (string, bool)
}

// Extractor is stateless and safe for concurrent use.
type Extractor struct {
	maxLength int
	stages    []stage
}

func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		maxLength: DefaultMaxLength,
		stages: []stage{
			{name: "stripped", run: (*Extractor).strippedTitle},
			{name: "template", run: (*Extractor).templateTitle},
			{name: "action_object", run: (*Extractor).actionObjectTitle},
			{name: "event_keyword", run: (*Extractor).keywordTitle},
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the event title for text. It never returns an empty string
// and re-applying it to its own output changes nothing.
func (e *Extractor) Extract(text string) string {
	title, _ := e.ExtractWithStage(text)
	return title
}

// ExtractWithStage also reports which cascade stage produced the title, or
// "fallback" for the literal Fallback.
func (e *Extractor) ExtractWithStage(text string) (string, string) {
	tokens := textutil.Tokenize(stripDeliveryNoise(text))
	for _, s := range e.stages {
		if title, ok := s.run(e, tokens); ok {
			return title, s.name
		}
	}
	return Fallback, "fallback"
}

// stripDeliveryNoise removes e-mail addresses and trailing invite forwarding
// instructions ("... e manda pro joao").
func stripDeliveryNoise(text string) string {
	text = reEmail.ReplaceAllString(text, " ")
	text = textutil.CollapseSpaces(text)
	text = reForwarding.ReplaceAllString(text, "")
	return textutil.CollapseSpaces(text)
}

func (e *Extractor) strippedTitle(tokens []textutil.Token) (string, bool) {
	for {
		kept := stripTokens(tokens)
		if len(kept) == len(tokens) {
			break
		}
		tokens = kept
	}
	return e.finish(tokens)
}

// finish trims edge connectors, fits the title into the length limit and
// capitalizes it. ok is false for titles shorter than three characters.
func (e *Extractor) finish(tokens []textutil.Token) (string, bool) {
	tokens = trimEdges(tokens)
	tokens = fitTokens(tokens, e.maxLength)
	tokens = trimEdges(tokens)

	title := strings.TrimSpace(strings.TrimRight(textutil.Join(tokens), " .-"))
	if runes := []rune(title); len(runes) > e.maxLength {
		title = strings.TrimSpace(string(runes[:e.maxLength]))
	}
	if textutil.RuneLen(title) < minTitleLength {
		return "", false
	}
	return textutil.Capitalize(title), true
}

func trimEdges(tokens []textutil.Token) []textutil.Token {
	for len(tokens) > 0 && trimmable(tokens[0].Key, true) {
		tokens = tokens[1:]
	}
	for len(tokens) > 0 && trimmable(tokens[len(tokens)-1].Key, false) {
		tokens = tokens[:len(tokens)-1]
	}
	return tokens
}

func trimmable(key string, leading bool) bool {
	if connectors[key] || strings.IndexFunc(key, isAlphanumeric) < 0 {
		return true
	}
	return leading && !textutil.StartsWithLetter(key)
}

func isAlphanumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// fitTokens keeps the longest token prefix whose joined length fits limit.
func fitTokens(tokens []textutil.Token, limit int) []textutil.Token {
	length := 0
	for i, t := range tokens {
		if i > 0 {
			length++
		}
		length += textutil.RuneLen(t.Raw)
		if length > limit {
			if i == 0 {
				return tokens[:1]
			}
			return tokens[:i]
		}
	}
	return tokens
}
