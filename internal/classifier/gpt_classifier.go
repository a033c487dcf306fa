package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/xaenox/agenda-bot/internal/models"
)

// llmKeyword marks intents decided by the language model.
const llmKeyword = "llm"

var ErrEmptyCompletion = errors.New("empty completion")

// ChatCompleter is the part of *openai.Client the classifier needs.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// GPTResponse is the JSON object the model is asked to return.
type GPTResponse struct {
	Intent string `json:"intent"`
	Index  int    `json:"index"`
	Title  string `json:"title"`
}

// GPTClassifier asks an OpenAI chat model for the intent of messages the
// vocabulary rules did not recognize.
type GPTClassifier struct {
	client      ChatCompleter
	model       string
	maxTokens   int
	temperature float64
	logger      *zap.Logger
}

func NewGPTClassifier(apiKey string, model string, maxTokens int, temperature float64, logger *zap.Logger) *GPTClassifier {
	return NewGPTClassifierWithClient(openai.NewClient(apiKey), model, maxTokens, temperature, logger)
}

func NewGPTClassifierWithClient(client ChatCompleter, model string, maxTokens int, temperature float64, logger *zap.Logger) *GPTClassifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GPTClassifier{
		client:      client,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      logger,
	}
}

func (c *GPTClassifier) Classify(ctx context.Context, text string) (models.Intent, error) {
	prompt := fmt.Sprintf(`You classify messages sent in Brazilian Portuguese to a calendar bot.
Pick exactly one intent:
- "create": the user wants to schedule an event or reminder
- "list": the user wants to see their events
- "cancel": the user wants to remove an event
- "help": anything else

For "cancel" set "index" to the 1-based event number if one is given, otherwise set "title"
to the words that identify the event.

Return only a JSON object with this structure:
{"intent": "create|list|cancel|help", "index": 0, "title": ""}

Message: %s`, text)

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   c.maxTokens,
			Temperature: float32(c.temperature),
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		},
	)
	if err != nil {
		return models.Intent{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return models.Intent{}, ErrEmptyCompletion
	}

	var gptResponse GPTResponse
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &gptResponse); err != nil {
		c.logger.Error("Failed to parse GPT response",
			zap.Error(err),
			zap.String("response", content))
		return models.Intent{}, fmt.Errorf("parse completion: %w", err)
	}

	return gptResponse.toIntent(), nil
}

func (r GPTResponse) toIntent() models.Intent {
	switch strings.ToLower(strings.TrimSpace(r.Intent)) {
	case "create":
		return models.CreateIntent(llmKeyword)
	case "list":
		return models.ListIntent(llmKeyword)
	case "cancel":
		if r.Index > 0 {
			return models.CancelByIndex(llmKeyword, r.Index)
		}
		return models.CancelByTitle(llmKeyword, strings.TrimSpace(r.Title))
	default:
		return models.HelpIntent(llmKeyword)
	}
}

// Cascade runs the vocabulary rules and, when they recognize nothing and a
// model is configured, asks the model. Model failures fall back to Help.
type Cascade struct {
	rules    *RuleClassifier
	fallback *GPTClassifier
	logger   *zap.Logger
}

func NewCascade(rules *RuleClassifier, fallback *GPTClassifier, logger *zap.Logger) *Cascade {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cascade{rules: rules, fallback: fallback, logger: logger}
}

func (c *Cascade) Classify(ctx context.Context, text string) models.Intent {
	intent := c.rules.ClassifyText(text)
	if intent.Recognized() || c.fallback == nil {
		return intent
	}

	llmIntent, err := c.fallback.Classify(ctx, text)
	if err != nil {
		c.logger.Warn("LLM intent fallback failed", zap.Error(err))
		return intent
	}
	c.logger.Debug("LLM intent fallback",
		zap.String("intent", llmIntent.Kind.String()))
	return llmIntent
}
