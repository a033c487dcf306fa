package classifier

import (
	"context"
	"errors"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xaenox/agenda-bot/internal/models"
)

type fakeCompleter struct {
	content string
	err     error
	calls   int
	lastReq openai.ChatCompletionRequest
}

func (f *fakeCompleter) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: f.content}},
		},
	}, nil
}

func TestGPTClassifier(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    models.Intent
	}{
		{"create", `{"intent":"create"}`, models.CreateIntent(llmKeyword)},
		{"list", ` {"intent":"LIST"} `, models.ListIntent(llmKeyword)},
		{"cancel index", `{"intent":"cancel","index":2}`, models.CancelByIndex(llmKeyword, 2)},
		{"cancel title", `{"intent":"cancel","title":" dentista "}`, models.CancelByTitle(llmKeyword, "dentista")},
		{"unknown intent", `{"intent":"weather"}`, models.HelpIntent(llmKeyword)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeCompleter{content: tt.content}
			c := NewGPTClassifierWithClient(fake, "gpt-4o-mini", 100, 0.1, nil)

			got, err := c.Classify(context.Background(), "qualquer coisa")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "gpt-4o-mini", fake.lastReq.Model)
			assert.Contains(t, fake.lastReq.Messages[0].Content, "qualquer coisa")
		})
	}
}

func TestGPTClassifierErrors(t *testing.T) {
	t.Run("api error", func(t *testing.T) {
		c := NewGPTClassifierWithClient(&fakeCompleter{err: errors.New("boom")}, "m", 10, 0, nil)
		_, err := c.Classify(context.Background(), "x")
		assert.Error(t, err)
	})

	t.Run("invalid json", func(t *testing.T) {
		c := NewGPTClassifierWithClient(&fakeCompleter{content: "not json"}, "m", 10, 0, nil)
		_, err := c.Classify(context.Background(), "x")
		assert.Error(t, err)
	})
}

func TestCascade(t *testing.T) {
	t.Run("rules win when they recognize the message", func(t *testing.T) {
		fake := &fakeCompleter{content: `{"intent":"list"}`}
		c := NewCascade(NewRuleClassifier(), NewGPTClassifierWithClient(fake, "m", 10, 0, nil), nil)

		got := c.Classify(context.Background(), "reunião amanhã")
		assert.Equal(t, models.IntentCreate, got.Kind)
		assert.Zero(t, fake.calls)
	})

	t.Run("model decides unrecognized messages", func(t *testing.T) {
		fake := &fakeCompleter{content: `{"intent":"create"}`}
		c := NewCascade(NewRuleClassifier(), NewGPTClassifierWithClient(fake, "m", 10, 0, nil), nil)

		got := c.Classify(context.Background(), "preciso ver o João às 3")
		assert.Equal(t, models.IntentCreate, got.Kind)
		assert.Equal(t, 1, fake.calls)
	})

	t.Run("model failure keeps help", func(t *testing.T) {
		fake := &fakeCompleter{err: errors.New("timeout")}
		c := NewCascade(NewRuleClassifier(), NewGPTClassifierWithClient(fake, "m", 10, 0, nil), nil)

		got := c.Classify(context.Background(), "bom dia")
		assert.Equal(t, models.IntentHelp, got.Kind)
	})

	t.Run("without model", func(t *testing.T) {
		c := NewCascade(NewRuleClassifier(), nil, nil)
		assert.Equal(t, models.IntentHelp, c.Classify(context.Background(), "bom dia").Kind)
	})
}
