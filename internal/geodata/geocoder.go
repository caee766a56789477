package geodata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// AddressCandidate is one geocoder match. Location and extent are part of the
// service contract even though the bot only displays the address.
type AddressCandidate struct {
	Address  string   `json:"address"`
	Location Location `json:"location"`
	Extent   Extent   `json:"extent"`
}

// Location is a geocoder point in the requested spatial reference.
type Location struct {
	X float64  `json:"x"`
	Y float64  `json:"y"`
	Z *float64 `json:"z,omitempty"`
}

// Extent is the bounding box of a candidate.
type Extent struct {
	XMin float64 `json:"xmin"`
	XMax float64 `json:"xmax"`
	YMin float64 `json:"ymin"`
	YMax float64 `json:"ymax"`
}

type addressCandidatesResponse struct {
	Candidates []AddressCandidate `json:"candidates"`
}

// Geocoder queries an ArcGIS-style geocoding service for address candidates.
type Geocoder struct {
	logger *slog.Logger
	client *http.Client
}

// NewGeocoder creates a geocoder client with the given request timeout.
func NewGeocoder(logger *slog.Logger, timeout time.Duration) *Geocoder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Geocoder{
		logger: logger.With("component", "geocoder"),
		client: newHTTPClient(timeout),
	}
}

// Find looks up address candidates for a free-text query against the service
// at baseURL. A decoded empty candidate list is a valid result; any
// transport, status, or decode problem returns an error wrapping ErrLookup.
func (g *Geocoder) Find(ctx context.Context, query, baseURL string) ([]AddressCandidate, error) {
	params := url.Values{}
	params.Set("SingleLine", query)
	params.Set("f", "json")
	params.Set("outSR", `{"wkid":4326,"wkt":null,"latestWkid":4326}`)
	params.Set("outFields", "*")
	params.Set("maxLocations", "5")
	reqURL := fmt.Sprintf("%s/findAddressCandidates/?%s", baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrLookup, err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookup, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrLookup, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrLookup, err)
	}

	var decoded addressCandidatesResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrLookup, err)
	}

	g.logger.Debug("Geocoder lookup finished", "query", query, "candidates", len(decoded.Candidates))
	return decoded.Candidates, nil
}
