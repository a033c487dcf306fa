package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync/atomic"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/xaenox/agenda-bot/internal/models"
)

//go:embed migrations.sql
var migrations embed.FS

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	// Location is the zone loaded event times are converted to.
	Location *time.Location
}

func (c DatabaseConfig) connString() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, sslMode)
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

var _ SessionStore = (*PostgresStore)(nil)

// PostgresStore persists sessions in the events table. WithLock holds a
// transaction scoped advisory lock on the user id, so concurrent processes
// sharing the database also serialize per user.
type PostgresStore struct {
	db       *sql.DB
	location *time.Location
	logger   *zap.Logger
	closed   atomic.Bool
}

func NewPostgresStorage(config DatabaseConfig, logger *zap.Logger) (*PostgresStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	location := config.Location
	if location == nil {
		location = time.Local
	}

	db, err := sql.Open("postgres", config.connString())
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	store := newPostgresStore(db, location, logger)
	if err := store.initializeSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error initializing database schema: %w", err)
	}

	logger.Info("PostgreSQL session store ready",
		zap.String("host", config.Host),
		zap.String("dbname", config.DBName))
	return store, nil
}

func newPostgresStore(db *sql.DB, location *time.Location, logger *zap.Logger) *PostgresStore {
	return &PostgresStore{db: db, location: location, logger: logger}
}

func (s *PostgresStore) initializeSchema() error {
	migrationSQL, err := migrations.ReadFile("migrations.sql")
	if err != nil {
		return fmt.Errorf("error reading migrations file: %w", err)
	}

	if _, err := s.db.Exec(string(migrationSQL)); err != nil {
		return fmt.Errorf("error executing migrations: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, userID string) (*models.UserSession, error) {
	if s.closed.Load() {
		return nil, ErrStoreClosed
	}
	return s.loadSession(ctx, s.db, userID)
}

func (s *PostgresStore) WithLock(ctx context.Context, userID string, fn func(*models.UserSession) error) error {
	if s.closed.Load() {
		return ErrStoreClosed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, userID); err != nil {
		return fmt.Errorf("error locking session %s: %w", userID, err)
	}

	session, err := s.loadSession(ctx, tx, userID)
	if err != nil {
		return err
	}
	if err := fn(session); err != nil {
		return err
	}

	if err := s.replaceEvents(ctx, tx, session); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing session %s: %w", userID, err)
	}

	s.logger.Debug("Session saved",
		zap.String("user_id", userID),
		zap.Int("events", len(session.Events)))
	return nil
}

func (s *PostgresStore) loadSession(ctx context.Context, q queryer, userID string) (*models.UserSession, error) {
	query := `
		SELECT id, title, start_date, end_date, created_at
		FROM events
		WHERE user_id = $1
		ORDER BY position ASC`

	rows, err := q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying events: %w", err)
	}
	defer rows.Close()

	session := models.NewUserSession(userID)
	for rows.Next() {
		var ev models.Event
		if err := rows.Scan(&ev.ID, &ev.Title, &ev.StartDate, &ev.EndDate, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning event: %w", err)
		}
		ev.StartDate = ev.StartDate.In(s.location)
		ev.EndDate = ev.EndDate.In(s.location)
		ev.CreatedAt = ev.CreatedAt.In(s.location)
		session.Append(ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading events: %w", err)
	}
	return session, nil
}

// replaceEvents rewrites the user's rows so positions follow session order.
func (s *PostgresStore) replaceEvents(ctx context.Context, tx *sql.Tx, session *models.UserSession) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM events WHERE user_id = $1`, session.UserID); err != nil {
		return fmt.Errorf("error clearing events: %w", err)
	}

	query := `
		INSERT INTO events (id, user_id, position, title, start_date, end_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	for i, ev := range session.Events {
		createdAt := ev.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}
		_, err := tx.ExecContext(ctx, query,
			ev.ID,
			session.UserID,
			i+1,
			ev.Title,
			ev.StartDate,
			ev.EndDate,
			createdAt,
		)
		if err != nil {
			return fmt.Errorf("error inserting event %s: %w", ev.ID, err)
		}
	}
	return nil
}

func (s *PostgresStore) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.db.Close()
}
