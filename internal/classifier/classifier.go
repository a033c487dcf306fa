package classifier

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/xaenox/agenda-bot/internal/models"
	"github.com/xaenox/agenda-bot/internal/temporal"
	"github.com/xaenox/agenda-bot/internal/textutil"
)

// Classifier maps a message to an intent.
type Classifier interface {
	Classify(ctx context.Context, text string) models.Intent
}

// Vocabularies are folded (lower case, no accents) and matched with
// textutil.ContainsKeyword, so "aula" does not fire inside "paula" and
// "prova" does not fire inside "provavelmente". Order inside a list only
// decides which keyword is reported.
var (
	CancelWords = []string{
		"cancelar", "cancela", "cancele", "apagar", "apaga", "apague",
		"remover", "remove", "remova", "excluir", "exclua", "deletar", "desmarcar", "desmarque",
	}
	ListWords = []string{
		"meus eventos", "eventos", "mostrar", "mostre", "listar", "liste",
	}
	// ListMessages list events only when they are the whole message;
	// "coloque na minha agenda reuniao amanha" is a create.
	ListMessages = []string{
		"agenda", "minha agenda", "meus compromissos", "compromissos",
	}
	HelpWords = []string{
		"/start", "/help", "/ajuda", "ajuda", "help", "comandos", "como funciona",
	}
	CreateWords = []string{
		"reuniao", "agendar", "agende", "compromisso", "encontro", "evento",
		"crie", "criar", "marcar", "marque", "lembrar", "lembre", "lembra", "anote",
		"consulta", "dentista", "medico", "jantar", "almoco", "academia", "treino",
		"aula", "aniversario", "festa", "entrevista", "viagem", "prova", "call",
		"lembrete",
	}
)

const messagePunct = " \t\n.,;:!?"

var (
	reCancelIndex = regexp.MustCompile(`(?:cancel\w*|apag\w*|remov\w*|exclu\w*|delet\w*|desmarc\w*)\s+(?:(?:o|a|evento|compromisso|numero|item|n)\s+)*#?(\d+)\b`)

	cancelFillers = map[string]bool{
		"o": true, "a": true, "os": true, "as": true, "meu": true, "minha": true,
		"evento": true, "compromisso": true, "de": true, "do": true, "da": true,
		"por": true, "favor": true, "pf": true, "pfv": true, "agendado": true, "marcado": true,
		"na": true, "no": true, "para": true, "pra": true, "das": true, "dos": true,
	}
)

// RuleClassifier is the deterministic vocabulary classifier. Cancellation is
// checked first, then listing, then creation, then help, so "cancelar
// reuniao" is always a cancellation and "preciso de ajuda para marcar
// reuniao" is a creation.
type RuleClassifier struct{}

func NewRuleClassifier() *RuleClassifier {
	return &RuleClassifier{}
}

func (c *RuleClassifier) Classify(_ context.Context, text string) models.Intent {
	return c.ClassifyText(text)
}

// ClassifyText classifies without a context; it never blocks.
func (c *RuleClassifier) ClassifyText(text string) models.Intent {
	folded := textutil.Fold(text)

	if word, ok := textutil.ContainsKeyword(folded, CancelWords); ok {
		if m := reCancelIndex.FindStringSubmatch(folded); m != nil {
			if index, err := strconv.Atoi(m[1]); err == nil {
				return models.CancelByIndex(word, index)
			}
		}
		return models.CancelByTitle(word, cancelQuery(text))
	}
	if word, ok := textutil.ContainsKeyword(folded, ListWords); ok {
		return models.ListIntent(word)
	}
	if word, ok := wholeMessage(folded, ListMessages); ok {
		return models.ListIntent(word)
	}
	if word, ok := textutil.ContainsKeyword(folded, CreateWords); ok {
		return models.CreateIntent(word)
	}
	if word, ok := textutil.ContainsKeyword(folded, HelpWords); ok {
		return models.HelpIntent(word)
	}
	return models.HelpIntent("")
}

// wholeMessage matches phrases against the entire message, ignoring
// surrounding punctuation.
func wholeMessage(folded string, phrases []string) (string, bool) {
	message := textutil.CollapseSpaces(strings.Trim(folded, messagePunct))
	for _, p := range phrases {
		if message == p {
			return p, true
		}
	}
	return "", false
}

// cancelQuery is the message without cancel vocabulary, fillers and date
// words: "cancelar a reunião de amanhã" -> "reunião".
func cancelQuery(text string) string {
	var kept []textutil.Token
	for _, t := range textutil.Tokenize(text) {
		if isCancelWord(t.Key) || temporal.IsTemporalWord(t.Key) || !textutil.StartsWithLetter(t.Key) {
			continue
		}
		kept = append(kept, t)
	}
	for len(kept) > 0 && cancelFillers[kept[0].Key] {
		kept = kept[1:]
	}
	for len(kept) > 0 && cancelFillers[kept[len(kept)-1].Key] {
		kept = kept[:len(kept)-1]
	}
	return strings.TrimSpace(textutil.Join(kept))
}

func isCancelWord(key string) bool {
	for _, w := range CancelWords {
		if key == w {
			return true
		}
	}
	return false
}
