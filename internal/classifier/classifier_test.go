package classifier

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xaenox/agenda-bot/internal/models"
)

func TestRuleClassifier(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		kind   models.IntentKind
		target models.CancelTarget
	}{
		{"create meeting", "reunião amanhã às 15h", models.IntentCreate, models.CancelTarget{}},
		{"create dentist", "dentista na próxima segunda às 10h", models.IntentCreate, models.CancelTarget{}},
		{"create imperative", "Marque um jantar com a Ana", models.IntentCreate, models.CancelTarget{}},
		{"list", "mostrar meus eventos", models.IntentListEvents, models.CancelTarget{}},
		{"list agenda", "Minha agenda", models.IntentListEvents, models.CancelTarget{}},
		{"list agenda with punctuation", "minha agenda?", models.IntentListEvents, models.CancelTarget{}},
		{"list compromissos", "Meus compromissos", models.IntentListEvents, models.CancelTarget{}},
		{"create into my agenda", "coloque na minha agenda reunião amanhã às 15h", models.IntentCreate, models.CancelTarget{}},
		{"create noted in my agenda", "anote na minha agenda: dentista sexta às 10h", models.IntentCreate, models.CancelTarget{}},
		{"create wins over help word", "preciso de ajuda para marcar reunião amanhã às 15h", models.IntentCreate, models.CancelTarget{}},
		{"create wins over commands word", "reunião de comandos do time amanhã às 9h", models.IntentCreate, models.CancelTarget{}},
		{"create plural short keyword", "aulas de violão sexta às 18h", models.IntentCreate, models.CancelTarget{}},
		{"cancel by index", "cancelar 2", models.IntentCancel, models.CancelTarget{Index: 2}},
		{"cancel by index with filler", "apague o evento #3", models.IntentCancel, models.CancelTarget{Index: 3}},
		{"cancel by title", "cancelar a reunião de amanhã", models.IntentCancel, models.CancelTarget{Title: "reunião"}},
		{"cancel wins over create", "cancelar reunião", models.IntentCancel, models.CancelTarget{Title: "reunião"}},
		{"cancel wins over list", "remover eventos", models.IntentCancel, models.CancelTarget{Title: "eventos"}},
		{"cancel without target", "cancelar", models.IntentCancel, models.CancelTarget{}},
		{"explicit help", "ajuda", models.IntentHelp, models.CancelTarget{}},
		{"unrecognized", "bom dia!", models.IntentHelp, models.CancelTarget{}},
		{"no create inside other words", "oi paula", models.IntentHelp, models.CancelTarget{}},
		{"no short keyword as prefix", "provavelmente vou ao cinema", models.IntentHelp, models.CancelTarget{}},
	}

	c := NewRuleClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(context.Background(), tt.text)

			assert.Equal(t, tt.kind, got.Kind)
			assert.Equal(t, tt.target, got.Target)
		})
	}
}

func TestRuleClassifierRecognized(t *testing.T) {
	c := NewRuleClassifier()

	assert.False(t, c.ClassifyText("bom dia").Recognized())
	assert.True(t, c.ClassifyText("ajuda").Recognized())
	assert.Equal(t, "cancelar", c.ClassifyText("cancelar reunião").Keyword)
}

func TestCancelPrecedence(t *testing.T) {
	c := NewRuleClassifier()
	for _, cancel := range CancelWords {
		for _, create := range CreateWords {
			text := cancel + " " + create
			assert.Equal(t, models.IntentCancel, c.ClassifyText(text).Kind, text)
		}
	}
}
