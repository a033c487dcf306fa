package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Telegram   TelegramConfig   `mapstructure:"telegram"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Classifier ClassifierConfig `mapstructure:"classifier"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Agenda     AgendaConfig     `mapstructure:"agenda"`
	Log        LogConfig        `mapstructure:"log"`
}

type TelegramConfig struct {
	Token   string `mapstructure:"token"`
	Timeout int    `mapstructure:"timeout"`
}

type DatabaseConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	User        string `mapstructure:"user"`
	Password    string `mapstructure:"password"`
	DBName      string `mapstructure:"dbname"`
	SSLMode     string `mapstructure:"sslmode"`
	UseInMemory bool   `mapstructure:"use_in_memory"`
}

type ClassifierConfig struct {
	// LLMFallback asks OpenAI when no vocabulary word matches.
	LLMFallback bool `mapstructure:"llm_fallback"`
}

type OpenAIConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

type AgendaConfig struct {
	// Timezone is an IANA name; empty means the process zone.
	Timezone             string `mapstructure:"timezone"`
	DefaultHour          int    `mapstructure:"default_hour"`
	DefaultMinute        int    `mapstructure:"default_minute"`
	DefaultDayOffset     int    `mapstructure:"default_day_offset"`
	EventDurationMinutes int    `mapstructure:"event_duration_minutes"`
	TitleMaxLength       int    `mapstructure:"title_max_length"`
}

type LogConfig struct {
	Debug bool `mapstructure:"debug"`
}

// Location resolves Timezone.
func (c AgendaConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

func (c AgendaConfig) EventDuration() time.Duration {
	return time.Duration(c.EventDurationMinutes) * time.Minute
}

func parseDatabaseURL(dbURL string) (DatabaseConfig, error) {
	u, err := url.Parse(dbURL)
	if err != nil {
		return DatabaseConfig{}, err
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return DatabaseConfig{}, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	password, _ := u.User.Password()
	port := 5432
	if u.Port() != "" {
		port, err = strconv.Atoi(u.Port())
		if err != nil {
			return DatabaseConfig{}, fmt.Errorf("invalid port %q: %w", u.Port(), err)
		}
	}

	sslMode := u.Query().Get("sslmode")
	if sslMode == "" {
		sslMode = "disable"
	}

	return DatabaseConfig{
		Host:     u.Hostname(),
		Port:     port,
		User:     u.User.Username(),
		Password: password,
		DBName:   strings.TrimPrefix(u.Path, "/"),
		SSLMode:  sslMode,
	}, nil
}

// LoadConfig reads path when it exists, then applies environment overrides.
// A .env file in the working directory is loaded first.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()

	v.SetDefault("telegram.timeout", 60)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.dbname", "agenda")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.use_in_memory", true)
	v.SetDefault("classifier.llm_fallback", false)
	v.SetDefault("openai.model", "gpt-3.5-turbo")
	v.SetDefault("openai.max_tokens", 150)
	v.SetDefault("openai.temperature", 0.0)
	v.SetDefault("agenda.timezone", "")
	v.SetDefault("agenda.default_hour", 10)
	v.SetDefault("agenda.default_minute", 0)
	v.SetDefault("agenda.default_day_offset", 0)
	v.SetDefault("agenda.event_duration_minutes", 60)
	v.SetDefault("agenda.title_max_length", 40)
	v.SetDefault("log.debug", false)

	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if dbURL := v.GetString("DATABASE_URL"); dbURL != "" {
		dbConfig, err := parseDatabaseURL(dbURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse DATABASE_URL: %w", err)
		}
		dbConfig.UseInMemory = false
		config.Database = dbConfig
	}

	if token := v.GetString("TELEGRAM_TOKEN"); token != "" {
		config.Telegram.Token = token
	}

	if apiKey := v.GetString("OPENAI_API_KEY"); apiKey != "" {
		config.OpenAI.APIKey = apiKey
	}

	if tz := v.GetString("AGENDA_TIMEZONE"); tz != "" {
		config.Agenda.Timezone = tz
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

// Validate rejects settings the pipeline cannot honor.
func (c *Config) Validate() error {
	a := c.Agenda
	if a.DefaultHour < 0 || a.DefaultHour > 23 {
		return fmt.Errorf("agenda.default_hour must be 0-23, got %d", a.DefaultHour)
	}
	if a.DefaultMinute < 0 || a.DefaultMinute > 59 {
		return fmt.Errorf("agenda.default_minute must be 0-59, got %d", a.DefaultMinute)
	}
	if a.DefaultDayOffset < 0 {
		return fmt.Errorf("agenda.default_day_offset must not be negative, got %d", a.DefaultDayOffset)
	}
	if a.EventDurationMinutes <= 0 {
		return fmt.Errorf("agenda.event_duration_minutes must be positive, got %d", a.EventDurationMinutes)
	}
	if a.TitleMaxLength < 3 {
		return fmt.Errorf("agenda.title_max_length must be at least 3, got %d", a.TitleMaxLength)
	}
	if _, err := a.Location(); err != nil {
		return fmt.Errorf("agenda.timezone: %w", err)
	}
	if c.Telegram.Token == "" {
		return errors.New("telegram token is required (telegram.token or TELEGRAM_TOKEN)")
	}
	return nil
}
