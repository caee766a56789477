package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"
)

// ErrFetch marks a catalog refresh that could not be retrieved or parsed.
// The previously loaded tree stays in place when a refresh fails.
var ErrFetch = errors.New("catalog fetch failed")

const defaultFetchTimeout = 30 * time.Second

// Service holds the current catalog tree and refreshes it from the portal.
// Readers always observe a fully built tree: a refresh swaps the whole tree
// in one atomic pointer store.
type Service struct {
	logger *slog.Logger
	client *http.Client
	urlFn  func() string

	tree atomic.Pointer[Tree]
}

// NewService creates a catalog service. urlFn supplies the catalog URL at
// refresh time so that settings edits take effect without restarting.
func NewService(logger *slog.Logger, client *http.Client, urlFn func() string) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if client == nil {
		client = &http.Client{Timeout: defaultFetchTimeout}
	}
	return &Service{
		logger: logger.With("component", "catalog"),
		client: client,
		urlFn:  urlFn,
	}
}

// Tree returns the currently loaded tree, or nil when no fetch has succeeded
// yet. A nil tree searches and browses as empty.
func (s *Service) Tree() *Tree {
	return s.tree.Load()
}

// Search looks up leaves matching query in the current tree.
func (s *Service) Search(query string) []Leaf {
	return s.Tree().Search(query)
}

// Browse returns up to limit leaves of the current tree.
func (s *Service) Browse(limit int) []Leaf {
	return s.Tree().Browse(limit)
}

// LeafByURL finds a leaf of the current tree by its canonical URL.
func (s *Service) LeafByURL(url string) (Leaf, bool) {
	return s.Tree().LeafByURL(url)
}

// Refresh fetches the catalog document and replaces the tree atomically.
// On any failure the previous tree is retained and ErrFetch is returned.
func (s *Service) Refresh(ctx context.Context) error {
	url := s.urlFn()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrFetch, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d", ErrFetch, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrFetch, err)
	}

	tree, err := DecodeTree(body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFetch, err)
	}

	s.tree.Store(tree)
	s.logger.Info("Catalog refreshed", "url", url, "leaves", len(tree.Leaves()))
	return nil
}
