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

// DefaultCadastralNumber is substituted when a parcel record carries no
// cadastral number.
const DefaultCadastralNumber = "00:00:0000"

// Parcel is one cadastral lookup match.
type Parcel struct {
	Address string
	Number  string
}

// The cadastre map server exposes attributes under localized field names.
type cadastreFindResponse struct {
	Results []struct {
		Attributes struct {
			Address string `json:"Полный адрес"`
			Number  string `json:"Кадастровый номер"`
		} `json:"attributes"`
	} `json:"results"`
}

// Cadastre queries an ArcGIS-style map server for parcels by cadastral
// number.
type Cadastre struct {
	logger *slog.Logger
	client *http.Client
}

// NewCadastre creates a cadastre client with the given request timeout.
func NewCadastre(logger *slog.Logger, timeout time.Duration) *Cadastre {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cadastre{
		logger: logger.With("component", "cadastre"),
		client: newHTTPClient(timeout),
	}
}

// Find looks up parcels matching a free-text query against the map server at
// baseURL. The layer filter is fixed by the service contract. A decoded empty
// result list is valid; failures wrap ErrLookup.
func (c *Cadastre) Find(ctx context.Context, query, baseURL string) ([]Parcel, error) {
	params := url.Values{}
	params.Set("f", "json")
	params.Set("resultRecordCount", "5")
	params.Set("layers", "20, 30, 51, 52")
	params.Set("searchText", query)
	params.Set("searchFields", "cadastral_number")
	params.Set("contains", "true")
	reqURL := fmt.Sprintf("%s/find?%s", baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrLookup, err)
	}

	resp, err := c.client.Do(req)
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

	var decoded cadastreFindResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrLookup, err)
	}

	parcels := make([]Parcel, 0, len(decoded.Results))
	for _, result := range decoded.Results {
		number := result.Attributes.Number
		if number == "" {
			number = DefaultCadastralNumber
		}
		parcels = append(parcels, Parcel{
			Address: result.Attributes.Address,
			Number:  number,
		})
	}

	c.logger.Debug("Cadastre lookup finished", "query", query, "parcels", len(parcels))
	return parcels, nil
}
