// Package settings manages the portal settings record: brand identity,
// downstream service URLs, admin ids, and per-channel search toggles. The
// record is a single JSON file read at startup and rewritten wholesale after
// every admin edit.
package settings

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

// Settings is the persisted configuration record.
type Settings struct {
	Name        string  `json:"name"`
	URL         string  `json:"url"`
	CatalogURL  string  `json:"catalogUrl"`
	GeocoderURL string  `json:"geocoderUrl"`
	CadastreURL string  `json:"cadastreUrl"`
	Admins      []int64 `json:"admins"`

	EnableAddressSearch  bool `json:"addressSearch"`
	EnableCadastreSearch bool `json:"cadastreSearch"`
	EnableMapsSearch     bool `json:"mapsSearch"`
}

func defaults() Settings {
	return Settings{
		Name:                 "CoGIS",
		URL:                  "https://cogisdemo.dataeast.com/portal",
		CatalogURL:           "https://cogisdemo.dataeast.com/portal/Catalog/GetCatalogNodes",
		GeocoderURL:          "https://cogisdemo.dataeast.com/elitegis/rest/services/common_osmde/ru_geocoder/GeocodeServer",
		CadastreURL:          "https://cogisdemo.dataeast.com/elitegis/rest/services/solutions_cadastre/cadastre/MapServer",
		EnableAddressSearch:  true,
		EnableCadastreSearch: true,
		EnableMapsSearch:     true,
	}
}

// Store owns the settings record. Reads return copies; mutations go through
// Update, which serializes writers and rewrites the whole file.
type Store struct {
	logger *slog.Logger
	path   string

	mu      sync.RWMutex
	current Settings
}

// Load reads the settings file at path, creating it with defaults when it
// does not exist yet.
func Load(logger *slog.Logger, path string) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		logger: logger.With("component", "settings"),
		path:   path,
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		s.current = defaults()
		if writeErr := s.write(s.current); writeErr != nil {
			return nil, fmt.Errorf("create settings file: %w", writeErr)
		}
		s.logger.Info("Settings file created with defaults", "path", path)
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read settings file: %w", err)
	}

	var loaded Settings
	if err := json.Unmarshal(raw, &loaded); err != nil {
		return nil, fmt.Errorf("parse settings file: %w", err)
	}
	s.current = loaded
	s.logger.Info("Settings loaded", "path", path, "admins", len(loaded.Admins))
	return s, nil
}

// Get returns a copy of the current settings.
func (s *Store) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.current
	out.Admins = slices.Clone(s.current.Admins)
	return out
}

// IsAdmin reports whether userID is in the admin set.
func (s *Store) IsAdmin(userID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.current.Admins, userID)
}

// Update applies mutate to the settings under the write lock and persists the
// result. The file is replaced atomically so a failed write never leaves a
// partial record.
func (s *Store) Update(mutate func(*Settings)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current
	next.Admins = slices.Clone(s.current.Admins)
	mutate(&next)

	if err := s.write(next); err != nil {
		return fmt.Errorf("persist settings: %w", err)
	}
	s.current = next
	return nil
}

func (s *Store) write(v Settings) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".settings-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, s.path)
}
