package database

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store defines the data access operations for the inline click log.
// Methods accept context.Context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// RecordInlineClick appends one click record to the log.
	RecordInlineClick(ctx context.Context, click *InlineClick) error

	// GetClickStats returns click counts grouped by result URL, sorted
	// descending by count.
	GetClickStats(ctx context.Context) ([]ClickStat, error)
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store implementation backed by sqlx.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

// Ping checks the database connection.
func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// RecordInlineClick appends one click record to the log.
func (s *sqlxStore) RecordInlineClick(ctx context.Context, click *InlineClick) error {
	if click == nil {
		return fmt.Errorf("cannot record nil click")
	}
	if click.ResultURL == "" {
		return fmt.Errorf("click must have a non-empty result_url")
	}
	if click.CreatedAt.IsZero() {
		click.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO inline_clicks (created_at, result_url, title, user_id)
	          VALUES (:created_at, :result_url, :title, :user_id)`
	if _, err := s.db.NamedExecContext(ctx, query, click); err != nil {
		s.logger.ErrorContext(ctx, "Failed to record inline click",
			"result_url", click.ResultURL, "error", err)
		return fmt.Errorf("failed to record inline click: %w", err)
	}

	s.logger.DebugContext(ctx, "Recorded inline click", "result_url", click.ResultURL)
	return nil
}

// GetClickStats returns click counts grouped by result URL, most clicked
// first. The title of the most recent click for a URL is used as its label.
func (s *sqlxStore) GetClickStats(ctx context.Context) ([]ClickStat, error) {
	query := `SELECT result_url,
	                 MAX(title) AS title,
	                 COUNT(*)   AS clicks
	          FROM inline_clicks
	          GROUP BY result_url
	          ORDER BY clicks DESC, result_url ASC`

	var stats []ClickStat
	if err := s.db.SelectContext(ctx, &stats, query); err != nil {
		s.logger.ErrorContext(ctx, "Failed to query click stats", "error", err)
		return nil, fmt.Errorf("failed to query click stats: %w", err)
	}
	return stats, nil
}
