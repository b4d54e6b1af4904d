// Package resolver decides, per category, whether records come from the
// backend or from the bundled fallback data, and returns them normalized.
package resolver

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/omarshaarawi/gridiron/internal/api/backend"
	"github.com/omarshaarawi/gridiron/internal/models"
	"github.com/omarshaarawi/gridiron/internal/normalize"
	"github.com/omarshaarawi/gridiron/internal/platform/logging"
	"github.com/omarshaarawi/gridiron/internal/registry"
)

var (
	// ErrBackendUnavailable is returned when a backend-backed category
	// cannot be fetched. Fallback data is never substituted.
	ErrBackendUnavailable = backend.ErrUnavailable
	// ErrNoData is returned when the backend answers without a payload.
	ErrNoData = backend.ErrNoData
)

// Source tells where a result came from.
type Source string

const (
	SourceBackend  Source = "backend"
	SourceFallback Source = "fallback"
)

// Fetcher is the remote fetch client as seen by the resolver.
type Fetcher interface {
	FetchRecords(ctx context.Context, endpoint string, params map[string]string) ([]models.RawRecord, error)
}

// Fallback is the static dataset as seen by the resolver.
type Fallback interface {
	Records(category models.Category) []models.RawRecord
}

// Params narrows a fetch. Week is substituted into week-scoped endpoints
// and stamped onto backend games that do not carry their own week.
type Params struct {
	Week int
}

// Result holds one category's records; only the slice matching the
// category's domain is populated.
type Result struct {
	Category  models.Category
	Domain    models.Domain
	Source    Source
	FetchedAt time.Time
	Games     []models.Game
	Rankings  []models.RankingEntry
	Stats     []models.StatRow
	Teams     []models.Team
}

// Len is the number of records in the populated slice.
func (r Result) Len() int {
	return len(r.Games) + len(r.Rankings) + len(r.Stats) + len(r.Teams)
}

type Resolver struct {
	registry *registry.Registry
	fetcher  Fetcher
	fallback Fallback
	logger   *logging.Logger
	location *time.Location
	now      func() time.Time
}

type Option func(*Resolver)

// WithLocation sets the zone naive kickoff dates and times are read in.
// The default is UTC.
func WithLocation(loc *time.Location) Option {
	return func(r *Resolver) {
		if loc != nil {
			r.location = loc
		}
	}
}

func New(reg *registry.Registry, fetcher Fetcher, fallback Fallback, logger *logging.Logger, opts ...Option) *Resolver {
	if logger == nil {
		logger = logging.Default()
	}
	r := &Resolver{
		registry: reg,
		fetcher:  fetcher,
		fallback: fallback,
		logger:   logger,
		location: time.UTC,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Registry exposes the endpoint registry the resolver consults.
func (r *Resolver) Registry() *registry.Registry {
	return r.registry
}

// FetchCategory resolves one category. Nothing is cached: every call
// fetches or re-reads the fallback rows.
func (r *Resolver) FetchCategory(ctx context.Context, category models.Category, params Params) (Result, error) {
	result := Result{
		Category: category,
		Domain:   category.Domain(),
		Source:   SourceFallback,
	}

	if !category.Valid() {
		r.logger.InfoContext(ctx, "unsupported category, returning empty result", "category", category)
		result.FetchedAt = r.now()
		return r.fill(result, nil, 0), nil
	}

	path, ok := r.registry.EndpointFor(category)
	if !ok {
		rows := r.fallback.Records(category)
		r.logger.DebugContext(ctx, "serving fallback data", "category", category, "rows", len(rows))
		result.FetchedAt = r.now()
		return r.fill(result, rows, 0), nil
	}

	endpoint := registry.Expand(path, params.Week)
	rows, err := r.fetcher.FetchRecords(ctx, endpoint, nil)
	if err != nil {
		r.logger.WarnContext(ctx, "category fetch failed",
			"category", category,
			"endpoint", endpoint,
			"error", err,
		)
		if errors.Is(err, ErrNoData) {
			return Result{}, errors.Wrapf(err, "no data for %s", category)
		}
		return Result{}, errors.Mark(errors.Wrapf(err, "fetching %s", category), ErrBackendUnavailable)
	}

	result.Source = SourceBackend
	result.FetchedAt = r.now()
	return r.fill(result, rows, params.Week), nil
}

func (r *Resolver) fill(result Result, rows []models.RawRecord, week int) Result {
	switch result.Domain {
	case models.DomainGame:
		result.Games = normalize.Games(rows, week, r.location)
	case models.DomainRanking:
		result.Rankings = normalize.Rankings(rows)
	case models.DomainTeam:
		result.Teams = normalize.Teams(rows)
	default:
		result.Stats = normalize.StatRows(rows)
	}
	return result
}
