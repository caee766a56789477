package database_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/edgard/cogisbot/internal/database"
)

func newTestStore(t *testing.T) database.Store {
	t.Helper()

	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewDB returned error: %v", err)
	}
	t.Cleanup(func() { database.CloseDB(db) })

	return database.NewStore(db, nil)
}

func TestStore_Ping(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	if err := store.Ping(context.Background()); err != nil {
		t.Errorf("Ping returned error: %v", err)
	}
}

func TestStore_RecordInlineClick(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	click := &database.InlineClick{
		ResultURL: "https://example.com/city/",
		Title:     "City Map",
		UserID:    42,
	}
	if err := store.RecordInlineClick(ctx, click); err != nil {
		t.Fatalf("RecordInlineClick returned error: %v", err)
	}
	if click.CreatedAt.IsZero() {
		t.Error("CreatedAt not defaulted on insert")
	}

	stats, err := store.GetClickStats(ctx)
	if err != nil {
		t.Fatalf("GetClickStats returned error: %v", err)
	}
	if len(stats) != 1 || stats[0].Count != 1 {
		t.Fatalf("stats = %+v, want one row with count 1", stats)
	}
	if stats[0].Title != "City Map" {
		t.Errorf("stat title = %q", stats[0].Title)
	}
}

func TestStore_RecordInlineClickValidation(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	if err := store.RecordInlineClick(ctx, nil); err == nil {
		t.Error("nil click accepted")
	}
	if err := store.RecordInlineClick(ctx, &database.InlineClick{UserID: 1}); err == nil {
		t.Error("click without result_url accepted")
	}
}

func TestStore_GetClickStatsOrdering(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	clicks := []database.InlineClick{
		{ResultURL: "https://example.com/b/", Title: "B", UserID: 1},
		{ResultURL: "https://example.com/a/", Title: "A", UserID: 1},
		{ResultURL: "https://example.com/a/", Title: "A", UserID: 2},
		{ResultURL: "https://example.com/c/", Title: "C", UserID: 3},
	}
	for i := range clicks {
		if err := store.RecordInlineClick(ctx, &clicks[i]); err != nil {
			t.Fatalf("RecordInlineClick returned error: %v", err)
		}
	}

	stats, err := store.GetClickStats(ctx)
	if err != nil {
		t.Fatalf("GetClickStats returned error: %v", err)
	}
	if len(stats) != 3 {
		t.Fatalf("got %d stat rows, want 3", len(stats))
	}
	if stats[0].ResultURL != "https://example.com/a/" || stats[0].Count != 2 {
		t.Errorf("first row = %+v, want /a/ with count 2", stats[0])
	}
	// Ties break alphabetically by URL.
	if stats[1].ResultURL != "https://example.com/b/" || stats[2].ResultURL != "https://example.com/c/" {
		t.Errorf("tie ordering = %q, %q", stats[1].ResultURL, stats[2].ResultURL)
	}
}

func TestStore_GetClickStatsEmpty(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	stats, err := store.GetClickStats(context.Background())
	if err != nil {
		t.Fatalf("GetClickStats returned error: %v", err)
	}
	if len(stats) != 0 {
		t.Errorf("stats on empty log = %+v, want none", stats)
	}
}
