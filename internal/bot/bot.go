package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/xaenox/agenda-bot/internal/models"
)

const defaultPollTimeout = 60

// Handler is the message pipeline the bot forwards chat text to.
type Handler interface {
	Handle(ctx context.Context, msg *models.RawMessage) (*models.Reply, error)
}

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Bot struct {
	api         *tgbotapi.BotAPI
	sender      sender
	agenda      Handler
	pollTimeout int
	logger      *zap.Logger
}

func New(token string, agenda Handler, pollTimeout int, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	b := newBot(api, agenda, logger)
	b.api = api
	if pollTimeout > 0 {
		b.pollTimeout = pollTimeout
	}
	b.logger.Info("Authorized on Telegram", zap.String("username", api.Self.UserName))
	return b, nil
}

func newBot(s sender, agenda Handler, logger *zap.Logger) *Bot {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bot{
		sender:      s,
		agenda:      agenda,
		pollTimeout: defaultPollTimeout,
		logger:      logger,
	}
}

// Start long-polls Telegram until ctx is done. Each message is handled in
// its own goroutine; per-user ordering is enforced by the session store.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.pollTimeout

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			go b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	// Channel posts have no sender to key a session on.
	if message.From == nil || message.Chat == nil {
		return
	}

	text, ok := commandText(message)
	if !ok {
		b.sendMessage(message.Chat.ID, "Comando desconhecido. Use /ajuda para ver o que eu entendo.")
		return
	}

	raw := &models.RawMessage{
		Text:       text,
		SenderID:   strconv.FormatInt(message.From.ID, 10),
		ReceivedAt: message.Time(),
	}

	reply, err := b.agenda.Handle(ctx, raw)
	if err != nil {
		b.logger.Error("Failed to handle message",
			zap.Error(err),
			zap.Int64("user_id", message.From.ID),
			zap.Int("message_id", message.MessageID))
		b.sendErrorMessage(message.Chat.ID, "Não consegui processar sua mensagem. Tente novamente.")
		return
	}

	msg := renderReply(message.Chat.ID, reply)
	msg.ReplyToMessageID = message.MessageID
	if _, err := b.sender.Send(msg); err != nil {
		b.logger.Error("Failed to send reply",
			zap.Error(err),
			zap.Int64("chat_id", message.Chat.ID),
			zap.String("intent", reply.Kind.String()))
	}
}

// commandText maps bot commands onto the phrases the pipeline understands.
// Plain messages and captions pass through unchanged.
func commandText(message *tgbotapi.Message) (string, bool) {
	if !message.IsCommand() {
		if message.Text == "" {
			return message.Caption, true
		}
		return message.Text, true
	}

	switch message.Command() {
	case "start", "help", "ajuda":
		return "ajuda", true
	case "eventos", "agenda":
		return "meus eventos", true
	case "cancelar":
		return strings.TrimSpace("cancelar " + message.CommandArguments()), true
	default:
		return "", false
	}
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.sender.Send(msg); err != nil {
		b.logger.Error("Failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
	}
}

func (b *Bot) sendErrorMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, "⚠️ "+text)
	if _, err := b.sender.Send(msg); err != nil {
		b.logger.Error("Failed to send error message",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
	}
}
