package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/xaenox/agenda-bot/internal/agenda"
	"github.com/xaenox/agenda-bot/internal/bot"
	"github.com/xaenox/agenda-bot/internal/classifier"
	"github.com/xaenox/agenda-bot/internal/storage"
	"github.com/xaenox/agenda-bot/internal/temporal"
	"github.com/xaenox/agenda-bot/pkg/config"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		zap.NewExample().Fatal("Failed to load config", zap.Error(err), zap.String("path", *configPath))
	}

	logger := newLogger(cfg.Log.Debug)
	defer logger.Sync()

	location, err := cfg.Agenda.Location()
	if err != nil {
		logger.Fatal("Invalid timezone", zap.Error(err), zap.String("timezone", cfg.Agenda.Timezone))
	}

	var store storage.SessionStore
	if cfg.Database.UseInMemory {
		logger.Info("Using in-memory session store")
		store = storage.NewMemoryStore()
	} else {
		logger.Info("Using PostgreSQL session store")
		dbConfig := storage.DatabaseConfig{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			DBName:   cfg.Database.DBName,
			SSLMode:  cfg.Database.SSLMode,
			Location: location,
		}
		store, err = storage.NewPostgresStorage(dbConfig, logger)
		if err != nil {
			logger.Fatal("Failed to initialize storage", zap.Error(err))
		}
	}
	defer store.Close()

	var clf classifier.Classifier = classifier.NewRuleClassifier()
	if cfg.Classifier.LLMFallback {
		if cfg.OpenAI.APIKey == "" {
			logger.Warn("LLM fallback enabled without an OpenAI API key, using vocabulary rules only")
		} else {
			gpt := classifier.NewGPTClassifier(
				cfg.OpenAI.APIKey,
				cfg.OpenAI.Model,
				cfg.OpenAI.MaxTokens,
				cfg.OpenAI.Temperature,
				logger,
			)
			clf = classifier.NewCascade(classifier.NewRuleClassifier(), gpt, logger)
			logger.Info("LLM intent fallback enabled", zap.String("model", cfg.OpenAI.Model))
		}
	}

	defaultClock := temporal.ClockTime{Hour: cfg.Agenda.DefaultHour, Minute: cfg.Agenda.DefaultMinute}
	service := agenda.New(store, agenda.Config{
		Location:         location,
		DefaultClock:     &defaultClock,
		DefaultDayOffset: cfg.Agenda.DefaultDayOffset,
		EventDuration:    cfg.Agenda.EventDuration(),
		TitleMaxLength:   cfg.Agenda.TitleMaxLength,
		Classifier:       clf,
		Now:              time.Now,
	}, logger)

	b, err := bot.New(cfg.Telegram.Token, service, cfg.Telegram.Timeout, logger)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Bot started", zap.String("timezone", location.String()))
	if err := b.Start(ctx); err != nil && ctx.Err() == nil {
		logger.Fatal("Bot error", zap.Error(err))
	}
	logger.Info("Bot stopped")
}

func newLogger(debug bool) *zap.Logger {
	build := zap.NewProduction
	if debug {
		build = zap.NewDevelopment
	}
	logger, err := build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
