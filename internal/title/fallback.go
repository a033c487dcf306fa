package title

import (
	"strings"

	"github.com/xaenox/agenda-bot/internal/temporal"
	"github.com/xaenox/agenda-bot/internal/textutil"
)

// template recognizes a common event shape and renders a fixed label.
type template struct {
	name   string
	render func(tokens []textutil.Token, keys []string, i int) (string, bool)
}

var templates = []template{
	{"reuniao_com", func(tokens []textutil.Token, keys []string, i int) (string, bool) {
		if keys[i] != "reuniao" || at(keys, i+1) != "com" {
			return "", false
		}
		return prefixed("Reunião com ", collectName(tokens, i+2))
	}},
	{"consulta_doutor", func(tokens []textutil.Token, keys []string, i int) (string, bool) {
		return withDoctor("Consulta", "consulta", tokens, keys, i)
	}},
	{"dentista_doutor", func(tokens []textutil.Token, keys []string, i int) (string, bool) {
		return withDoctor("Dentista", "dentista", tokens, keys, i)
	}},
	{"aniversario_de", func(tokens []textutil.Token, keys []string, i int) (string, bool) {
		if keys[i] != "aniversario" || !nameParticles[at(keys, i+1)] {
			return "", false
		}
		return prefixed("Aniversário ", collectName(tokens, i+2))
	}},
	{"festa_de", func(tokens []textutil.Token, keys []string, i int) (string, bool) {
		if keys[i] != "festa" || !nameParticles[at(keys, i+1)] {
			return "", false
		}
		return prefixed("Festa ", collectName(tokens, i+2))
	}},
}

func (e *Extractor) templateTitle(tokens []textutil.Token) (string, bool) {
	keys := textutil.Keys(tokens)
	for _, tpl := range templates {
		for i := range tokens {
			if title, ok := tpl.render(tokens, keys, i); ok {
				return e.finish(textutil.Tokenize(title))
			}
		}
	}
	return "", false
}

func prefixed(prefix, name string) (string, bool) {
	if name == "" {
		return "", false
	}
	return prefix + name, true
}

// withDoctor renders "Consulta Dr. Silva" from "consulta com o dr silva".
func withDoctor(label, key string, tokens []textutil.Token, keys []string, i int) (string, bool) {
	if keys[i] != key {
		return "", false
	}
	j := i + 1
	for {
		switch at(keys, j) {
		case "com", "o", "a", "do", "da", "no", "na":
			j++
			continue
		}
		break
	}
	doctor, ok := doctorTitles[at(keys, j)]
	if !ok {
		return "", false
	}
	return prefixed(label+" "+doctor+" ", collectName(tokens, j+1))
}

// collectName reads up to three name words starting at i, stopping at
// connectors, dates and times. Words are capitalized except particles.
func collectName(tokens []textutil.Token, i int) string {
	var words []string
	for ; i < len(tokens) && len(words) < maxNameTokens; i++ {
		key := tokens[i].Key
		if nameParticles[key] {
			if i+1 < len(tokens) && isNameWord(tokens[i+1].Key) && len(words) > 0 {
				words = append(words, key)
				continue
			}
			break
		}
		if !isNameWord(key) {
			break
		}
		words = append(words, textutil.Capitalize(strings.Trim(tokens[i].Raw, ",;:!?()\"")))
	}
	for len(words) > 0 && nameParticles[words[len(words)-1]] {
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}

func isNameWord(key string) bool {
	if key == "" || stopKeys[key] || connectors[key] || imperatives[key] {
		return false
	}
	if temporal.IsTemporalWord(key) || !textutil.StartsWithLetter(key) {
		return false
	}
	return true
}

var actionVerbs = map[string]bool{
	"lembre": true, "lembra": true, "lembrar": true,
	"agende": true, "agendar": true,
	"fazer": true, "faca": true,
}

// actionObjectTitle takes the object of "lembre de X", "agende X" or
// "fazer X", up to the next date, time or connector.
func (e *Extractor) actionObjectTitle(tokens []textutil.Token) (string, bool) {
	keys := textutil.Keys(tokens)
	for i, key := range keys {
		if !actionVerbs[key] {
			continue
		}
		start := i + 1
		if at(keys, start) == "de" {
			start++
		}
		end := start
		for end < len(tokens) && end-start < maxObjectWords && !endsObject(keys, end) {
			end++
		}
		if title, ok := e.finish(tokens[start:end]); ok {
			return title, true
		}
	}
	return "", false
}

func endsObject(keys []string, i int) bool {
	if stopKeys[keys[i]] || temporal.IsTemporalWord(keys[i]) {
		return true
	}
	for _, r := range stripRules {
		if r.match(keys, i) > 0 {
			return true
		}
	}
	return false
}

// keywordTitle scans the fixed event keyword list; "jantar com ana" becomes
// "Jantar com Ana".
func (e *Extractor) keywordTitle(tokens []textutil.Token) (string, bool) {
	keys := textutil.Keys(tokens)
	for _, kw := range eventKeywords {
		for i, key := range keys {
			if key != kw.key {
				continue
			}
			title := kw.display
			if at(keys, i+1) == "com" {
				if name := collectName(tokens, i+2); name != "" {
					title += " com " + name
				}
			}
			return e.finish(textutil.Tokenize(title))
		}
	}
	return "", false
}
