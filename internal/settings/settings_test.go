package settings_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/edgard/cogisbot/internal/settings"
)

func TestLoad_CreatesDefaultsWhenMissing(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.json")
	store, err := settings.Load(nil, path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	cfg := store.Get()
	if cfg.Name != "CoGIS" {
		t.Errorf("default name = %q", cfg.Name)
	}
	if !cfg.EnableMapsSearch || !cfg.EnableAddressSearch || !cfg.EnableCadastreSearch {
		t.Error("default search toggles should all be enabled")
	}
	if len(cfg.Admins) != 0 {
		t.Errorf("default admins = %v, want empty", cfg.Admins)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("settings file not created: %v", err)
	}
}

func TestLoad_ReadsExistingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.json")
	raw := []byte(`{
		"name": "City Portal",
		"url": "https://maps.example.com",
		"admins": [100, 200],
		"mapsSearch": true,
		"addressSearch": false,
		"cadastreSearch": true
	}`)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	store, err := settings.Load(nil, path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	cfg := store.Get()
	if cfg.Name != "City Portal" {
		t.Errorf("name = %q", cfg.Name)
	}
	if cfg.EnableAddressSearch {
		t.Error("addressSearch toggle should be off")
	}
	if !store.IsAdmin(200) {
		t.Error("IsAdmin(200) = false, want true")
	}
	if store.IsAdmin(300) {
		t.Error("IsAdmin(300) = true, want false")
	}
}

func TestLoad_RejectsMalformedFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := settings.Load(nil, path); err == nil {
		t.Error("Load accepted malformed settings file")
	}
}

func TestStore_UpdatePersists(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.json")
	store, err := settings.Load(nil, path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if err := store.Update(func(s *settings.Settings) {
		s.Name = "Renamed Portal"
		s.GeocoderURL = "https://geo.example.com"
	}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if got := store.Get().Name; got != "Renamed Portal" {
		t.Errorf("in-memory name = %q", got)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read settings file: %v", err)
	}
	var onDisk settings.Settings
	if err := json.Unmarshal(raw, &onDisk); err != nil {
		t.Fatalf("parse persisted file: %v", err)
	}
	if onDisk.Name != "Renamed Portal" || onDisk.GeocoderURL != "https://geo.example.com" {
		t.Errorf("persisted record = %+v", onDisk)
	}

	// A fresh Load must observe the update.
	reloaded, err := settings.Load(nil, path)
	if err != nil {
		t.Fatalf("reload returned error: %v", err)
	}
	if got := reloaded.Get().Name; got != "Renamed Portal" {
		t.Errorf("reloaded name = %q", got)
	}
}

func TestStore_GetReturnsCopy(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.json")
	store, err := settings.Load(nil, path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if err := store.Update(func(s *settings.Settings) {
		s.Admins = []int64{42}
	}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	cfg := store.Get()
	cfg.Admins[0] = 99
	cfg.Name = "mutated"

	if !store.IsAdmin(42) || store.IsAdmin(99) {
		t.Error("mutating a Get copy leaked into the store")
	}
	if store.Get().Name == "mutated" {
		t.Error("mutating a Get copy changed the stored name")
	}
}
