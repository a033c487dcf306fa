// Package agenda runs the message pipeline: it classifies a chat message and
// creates, lists or cancels events in the sender's session.
package agenda

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xaenox/agenda-bot/internal/calendar"
	"github.com/xaenox/agenda-bot/internal/classifier"
	"github.com/xaenox/agenda-bot/internal/models"
	"github.com/xaenox/agenda-bot/internal/storage"
	"github.com/xaenox/agenda-bot/internal/temporal"
	"github.com/xaenox/agenda-bot/internal/textutil"
	"github.com/xaenox/agenda-bot/internal/title"
)

var (
	ErrNilMessage  = errors.New("agenda: nil message")
	ErrEmptySender = errors.New("agenda: message has no sender id")
)

// HelpText is the static guidance returned for help requests and for
// messages nothing understood.
const HelpText = `Olá! Eu transformo suas mensagens em eventos de calendário.

Para criar: "reunião amanhã às 15h", "dentista na próxima segunda às 10h"
Para ver seus eventos: "meus eventos" ou /eventos
Para cancelar: "cancelar 2" ou "cancelar reunião"

Sem data o evento fica para hoje, sem horário às 10h.`

// Config holds the pipeline defaults. Zero values fall back to the package
// defaults of temporal, title and calendar.
type Config struct {
	Location *time.Location
	// DefaultClock is used for messages without a time; nil means 10:00.
	DefaultClock     *temporal.ClockTime
	DefaultDayOffset int
	EventDuration    time.Duration
	TitleMaxLength   int
	// Classifier replaces the vocabulary rules, e.g. with a classifier.Cascade.
	Classifier classifier.Classifier
	// Now is the clock used when a message has no ReceivedAt.
	Now func() time.Time
	// NewID replaces the uuid event id generator.
	NewID func() string
}

type Service struct {
	store      storage.SessionStore
	classifier classifier.Classifier
	resolver   *temporal.Resolver
	titles     *title.Extractor
	assembler  *calendar.Assembler
	location   *time.Location
	now        func() time.Time
	logger     *zap.Logger
}

func New(store storage.SessionStore, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	location := cfg.Location
	if location == nil {
		location = time.Local
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	clf := cfg.Classifier
	if clf == nil {
		clf = classifier.NewRuleClassifier()
	}
	clock := temporal.DefaultClock
	if cfg.DefaultClock != nil && cfg.DefaultClock.Valid() {
		clock = *cfg.DefaultClock
	}

	assemblerOpts := []calendar.AssemblerOption{
		calendar.WithLocation(location),
		calendar.WithDuration(cfg.EventDuration),
		calendar.WithClock(now),
	}
	if cfg.NewID != nil {
		assemblerOpts = append(assemblerOpts, calendar.WithIDGenerator(cfg.NewID))
	}

	return &Service{
		store:      store,
		classifier: clf,
		resolver: temporal.NewResolver(temporal.WithDefaults(temporal.Defaults{
			Clock:     clock,
			DayOffset: cfg.DefaultDayOffset,
		})),
		titles:    title.NewExtractor(title.WithMaxLength(cfg.TitleMaxLength)),
		assembler: calendar.NewAssembler(assemblerOpts...),
		location:  location,
		now:       now,
		logger:    logger,
	}
}

// Handle interprets one message and applies it to the sender's session.
// Unrecognized text is answered with help, never with an error; errors are
// reserved for nil or anonymous messages and storage failures.
func (s *Service) Handle(ctx context.Context, msg *models.RawMessage) (*models.Reply, error) {
	if msg == nil {
		return nil, ErrNilMessage
	}
	if strings.TrimSpace(msg.SenderID) == "" {
		return nil, ErrEmptySender
	}

	intent := s.classifier.Classify(ctx, msg.Text)
	s.logger.Debug("Message classified",
		zap.String("user_id", msg.SenderID),
		zap.String("intent", intent.Kind.String()),
		zap.String("keyword", intent.Keyword))

	switch intent.Kind {
	case models.IntentCreate:
		return s.create(ctx, msg)
	case models.IntentListEvents:
		return s.list(ctx, msg.SenderID)
	case models.IntentCancel:
		return s.cancel(ctx, msg.SenderID, intent.Target)
	default:
		return helpReply(), nil
	}
}

// BuildEvent runs the create pipeline without touching any session.
func (s *Service) BuildEvent(text string, now time.Time) (models.Event, error) {
	expr := s.resolver.Resolve(text, now.In(s.location))
	return s.assembler.Assemble(expr, s.titles.Extract(text))
}

func (s *Service) create(ctx context.Context, msg *models.RawMessage) (*models.Reply, error) {
	now := msg.ReceivedAt
	if now.IsZero() {
		now = s.now()
	}

	ev, err := s.BuildEvent(msg.Text, now)
	if err != nil {
		return nil, fmt.Errorf("building event: %w", err)
	}

	err = s.store.WithLock(ctx, msg.SenderID, func(session *models.UserSession) error {
		session.Append(ev)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("saving event: %w", err)
	}

	s.logger.Info("Event created",
		zap.String("user_id", msg.SenderID),
		zap.String("event_id", ev.ID),
		zap.String("title", ev.Title),
		zap.Time("start", ev.StartDate))

	links := calendar.Links(ev)
	return &models.Reply{
		Kind: models.IntentCreate,
		Created: &models.CreatedEvent{
			EventID:     ev.ID,
			Title:       ev.Title,
			StartDate:   ev.StartDate,
			EndDate:     ev.EndDate,
			GoogleLink:  links.Google,
			OutlookLink: links.Outlook,
		},
	}, nil
}

func (s *Service) list(ctx context.Context, userID string) (*models.Reply, error) {
	session, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	entries := make([]models.ListEntry, 0, len(session.Events))
	for i, ev := range session.Events {
		entries = append(entries, models.ListEntry{
			Index:     i + 1,
			Title:     ev.Title,
			StartDate: ev.StartDate,
		})
	}
	return &models.Reply{
		Kind: models.IntentListEvents,
		List: &models.ListResponse{Entries: entries},
	}, nil
}

// cancel resolves the target and removes it under the session lock, so the
// index seen by the user cannot shift between lookup and removal.
func (s *Service) cancel(ctx context.Context, userID string, target models.CancelTarget) (*models.Reply, error) {
	result := &models.CancelResult{}

	err := s.store.WithLock(ctx, userID, func(session *models.UserSession) error {
		index := target.Index
		if !target.HasIndex() {
			index = FindByTitle(session.Events, target.Title)
		}
		if removed, ok := session.RemoveAt(index); ok {
			result.Found = true
			result.RemovedTitle = removed.Title
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cancelling event: %w", err)
	}

	if result.Found {
		s.logger.Info("Event cancelled",
			zap.String("user_id", userID),
			zap.String("title", result.RemovedTitle))
	}
	return &models.Reply{Kind: models.IntentCancel, Cancel: result}, nil
}

// FindByTitle returns the 1-based position of the first event whose title
// contains query, ignoring case and accents, or 0.
func FindByTitle(events []models.Event, query string) int {
	needle := textutil.CollapseSpaces(textutil.Fold(query))
	if needle == "" {
		return 0
	}
	for i, ev := range events {
		if strings.Contains(textutil.Fold(ev.Title), needle) {
			return i + 1
		}
	}
	return 0
}

func helpReply() *models.Reply {
	return &models.Reply{
		Kind: models.IntentHelp,
		Help: &models.HelpResponse{Text: HelpText},
	}
}
