// Package tasks defines the scheduled background tasks of the bot and their
// registry.
package tasks

import (
	"context"
	"log/slog"

	"github.com/edgard/cogisbot/internal/catalog"
)

// ScheduledTaskFunc is the signature every scheduled task implements.
type ScheduledTaskFunc func(ctx context.Context) error

// TaskDeps provides dependencies for scheduled tasks.
type TaskDeps struct {
	Logger  *slog.Logger
	Catalog *catalog.Service
}
