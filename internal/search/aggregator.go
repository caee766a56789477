// Package search implements the query aggregation pipeline: one catalog
// search plus two remote lookups per user query, each channel independently
// capped, deduplicated, and formatted.
package search

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/edgard/cogisbot/internal/catalog"
	"github.com/edgard/cogisbot/internal/geodata"
	"github.com/edgard/cogisbot/internal/settings"
)

const (
	mapsResultLimit    = 5
	addressResultLimit = 5
	// Geocoders answer near-empty queries with junk candidates; anything
	// this short is discarded.
	minAddressLength = 2

	defaultChannelTimeout = 15 * time.Second
)

// MapsChannel is the catalog branch of an aggregated result.
type MapsChannel struct {
	Items   []catalog.Leaf
	Err     error
	Skipped bool
}

// AddressChannel is the geocoder branch of an aggregated result.
type AddressChannel struct {
	Items   []geodata.AddressCandidate
	Err     error
	Skipped bool
}

// CadastreChannel is the cadastre branch of an aggregated result.
type CadastreChannel struct {
	Items   []geodata.Parcel
	Err     error
	Skipped bool
}

// AggregatedResult carries the three independent result channels for one
// query. A failure in one channel never suppresses the others.
type AggregatedResult struct {
	Query     string
	Maps      MapsChannel
	Addresses AddressChannel
	Parcels   CadastreChannel
}

// Aggregator fans a query out to the catalog and the two remote services.
type Aggregator struct {
	logger   *slog.Logger
	catalog  *catalog.Service
	geocoder *geodata.Geocoder
	cadastre *geodata.Cadastre
	settings *settings.Store
	timeout  time.Duration
}

// NewAggregator creates a query aggregator. timeout bounds each channel
// individually; zero selects a default.
func NewAggregator(
	logger *slog.Logger,
	cat *catalog.Service,
	geocoder *geodata.Geocoder,
	cadastre *geodata.Cadastre,
	st *settings.Store,
	timeout time.Duration,
) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = defaultChannelTimeout
	}
	return &Aggregator{
		logger:   logger.With("component", "aggregator"),
		catalog:  cat,
		geocoder: geocoder,
		cadastre: cadastre,
		settings: st,
		timeout:  timeout,
	}
}

// Resolve runs the three channels concurrently and collects their outcomes.
// Channel goroutines record failures in the result instead of returning
// them, so one channel's error cannot cancel the others; only parent context
// cancellation stops in-flight calls.
func (a *Aggregator) Resolve(ctx context.Context, query string) AggregatedResult {
	cfg := a.settings.Get()
	result := AggregatedResult{Query: query}

	var g errgroup.Group

	if cfg.EnableMapsSearch {
		g.Go(func() error {
			result.Maps.Items = clipLeaves(a.catalog.Search(query), mapsResultLimit)
			return nil
		})
	} else {
		result.Maps.Skipped = true
	}

	if cfg.EnableAddressSearch {
		g.Go(func() error {
			cctx, cancel := context.WithTimeout(ctx, a.timeout)
			defer cancel()

			candidates, err := a.geocoder.Find(cctx, query, cfg.GeocoderURL)
			if err != nil {
				a.logger.Warn("Address channel failed", "query", query, "error", err)
				result.Addresses.Err = err
				return nil
			}
			result.Addresses.Items = filterAddresses(candidates, addressResultLimit)
			return nil
		})
	} else {
		result.Addresses.Skipped = true
	}

	if cfg.EnableCadastreSearch {
		g.Go(func() error {
			cctx, cancel := context.WithTimeout(ctx, a.timeout)
			defer cancel()

			parcels, err := a.cadastre.Find(cctx, query, cfg.CadastreURL)
			if err != nil {
				a.logger.Warn("Cadastre channel failed", "query", query, "error", err)
				result.Parcels.Err = err
				return nil
			}
			result.Parcels.Items = parcels
			return nil
		})
	} else {
		result.Parcels.Skipped = true
	}

	g.Wait() //nolint:errcheck // channel goroutines never return errors

	return result
}

func clipLeaves(leaves []catalog.Leaf, limit int) []catalog.Leaf {
	if len(leaves) > limit {
		return leaves[:limit]
	}
	return leaves
}

// filterAddresses drops near-empty candidates and caps the list.
func filterAddresses(candidates []geodata.AddressCandidate, limit int) []geodata.AddressCandidate {
	out := make([]geodata.AddressCandidate, 0, limit)
	for _, c := range candidates {
		if utf8.RuneCountInString(c.Address) <= minAddressLength {
			continue
		}
		out = append(out, c)
		if len(out) == limit {
			break
		}
	}
	return out
}
