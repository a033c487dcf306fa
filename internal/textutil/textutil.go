// Package textutil holds the small text helpers shared by the message parsers:
// accent folding, tokenization and capitalization of Portuguese chat text.
package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// tokenPunct is trimmed from both ends of a token before computing its key.
	tokenPunct = ",.;:!?()[]\"'“”‘’…"
	// joinPunct keeps abbreviation dots such as "Dr.".
	joinPunct = ",;:!?()[]\"'“”‘’…"
)

// Fold lower-cases s and removes diacritics, so "Próxima Terça" becomes
// "proxima terca". Parsers match against folded text only.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// Token is a whitespace separated word of the original message. Raw keeps the
// user's spelling, Key is the folded form with surrounding punctuation removed.
type Token struct {
	Raw string
	Key string
}

// Tokenize splits s on whitespace.
func Tokenize(s string) []Token {
	fields := strings.Fields(s)
	tokens := make([]Token, 0, len(fields))
	for _, f := range fields {
		tokens = append(tokens, Token{
			Raw: f,
			Key: Fold(strings.Trim(f, tokenPunct)),
		})
	}
	return tokens
}

// Keys returns the keys of tokens in order.
func Keys(tokens []Token) []string {
	keys := make([]string, len(tokens))
	for i, t := range tokens {
		keys[i] = t.Key
	}
	return keys
}

// Join rebuilds text from the raw form of tokens, dropping punctuation that
// only separated clauses.
func Join(tokens []Token) string {
	parts := make([]string, 0, len(tokens))
	for _, t := range tokens {
		raw := strings.Trim(t.Raw, joinPunct)
		if raw == "" {
			continue
		}
		parts = append(parts, raw)
	}
	return strings.Join(parts, " ")
}

// CollapseSpaces replaces runs of whitespace with a single space and trims.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Capitalize upper-cases the first rune of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// StartsWithLetter reports whether the first rune of s is a letter.
func StartsWithLetter(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsLetter(r)
}

// RuneLen is the number of visible characters in s.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// shortKeywordLength is the longest keyword that must match a whole word.
const shortKeywordLength = 5

// ContainsKeyword reports whether any of words occurs in the folded text and
// returns the first one in list order. A keyword always starts a word. Longer
// keywords may be followed by more letters ("reuniao" in "reunioes"); short
// ones must be the whole word or its plural, so "prova" does not fire inside
// "provavelmente".
func ContainsKeyword(folded string, words []string) (string, bool) {
	for _, w := range words {
		for offset := 0; offset < len(folded); {
			i := strings.Index(folded[offset:], w)
			if i < 0 {
				break
			}
			i += offset
			offset = i + 1

			if r, _ := utf8.DecodeLastRuneInString(folded[:i]); i > 0 && unicode.IsLetter(r) {
				continue
			}
			if RuneLen(w) <= shortKeywordLength && !endsWord(folded[i+len(w):]) {
				continue
			}
			return w, true
		}
	}
	return "", false
}

// endsWord reports whether rest, the text after a keyword, starts outside
// the word, allowing a plural "s".
func endsWord(rest string) bool {
	rest = strings.TrimPrefix(rest, "s")
	r, _ := utf8.DecodeRuneInString(rest)
	return rest == "" || !unicode.IsLetter(r)
}
