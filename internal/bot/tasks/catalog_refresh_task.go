package tasks

import (
	"context"
	"fmt"
)

// NewCatalogRefreshTask returns the periodic catalog refetch. A failed fetch
// keeps the previous tree, so running on a stale catalog is the worst case.
func NewCatalogRefreshTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "catalog_refresh")

	return func(ctx context.Context) error {
		if err := deps.Catalog.Refresh(ctx); err != nil {
			log.ErrorContext(ctx, "Scheduled catalog refresh failed", "error", err)
			return fmt.Errorf("catalog refresh: %w", err)
		}
		return nil
	}
}
