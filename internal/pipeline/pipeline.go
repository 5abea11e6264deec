package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/sensori-ai/farm-sectors/internal/domain"
	"github.com/sensori-ai/farm-sectors/internal/observability"
)

// ErrCategoryDisabled is returned for a known category with no configured source.
var ErrCategoryDisabled = errors.New("category disabled")

// Source returns the raw JSON document for a category.
type Source interface {
	Fetch(ctx context.Context, category domain.Category) ([]byte, error)
	CheckReadiness(ctx context.Context) error
}

// Transformer converts a category document into a result.
type Transformer interface {
	Transform(ctx context.Context, category domain.Category, data []byte) (Transformation, error)
}

// Publisher hands a snapshot to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, snapshot domain.Snapshot) error
}

// Pipeline runs fetch, transform, and publish for one category per call. It
// keeps no derived state between calls.
type Pipeline struct {
	source      Source
	transformer Transformer
	publisher   Publisher // nil disables publishing
	categories  []domain.Category
	logger      *slog.Logger
	metrics     *observability.Metrics
}

// New creates a Pipeline serving the given categories. Pass a nil publisher
// to skip snapshot publishing.
func New(s Source, t Transformer, pub Publisher, categories []domain.Category, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		source:      s,
		transformer: t,
		publisher:   pub,
		categories:  slices.Clone(categories),
		logger:      logger,
		metrics:     metrics,
	}
}

// Categories returns the enabled categories in display order.
func (p *Pipeline) Categories() []domain.Category {
	return slices.Clone(p.categories)
}

// CheckReadiness reports whether the polygon source can be reached.
func (p *Pipeline) CheckReadiness(ctx context.Context) error {
	return p.source.CheckReadiness(ctx)
}

// Process fetches and aggregates one category. On fetch or aggregation
// failure it returns an empty result alongside the error. A malformed
// document is logged and yields an empty result with no error.
func (p *Pipeline) Process(ctx context.Context, category domain.Category) (domain.Result, error) {
	if !category.Valid() {
		return domain.EmptyResult(category), fmt.Errorf("%w: %q", domain.ErrUnknownCategory, category)
	}
	if !slices.Contains(p.categories, category) {
		return domain.EmptyResult(category), fmt.Errorf("%w: %s", ErrCategoryDisabled, category)
	}
	label := string(category)

	start := time.Now()
	data, err := p.source.Fetch(ctx, category)
	p.metrics.SourceFetchDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
	if err != nil {
		p.logger.Error("fetch polygons failed", "category", category, "error", err)
		p.metrics.Aggregations.WithLabelValues(label, "fetch_error").Inc()
		return domain.EmptyResult(category), fmt.Errorf("fetch %s: %w", category, err)
	}

	out, err := p.transformer.Transform(ctx, category, data)
	switch {
	case errors.Is(err, domain.ErrMalformedInput):
		p.logger.Warn("malformed polygon document, serving empty set", "category", category, "error", err)
		p.metrics.Aggregations.WithLabelValues(label, "malformed").Inc()
		return domain.EmptyResult(category), nil
	case err != nil:
		p.logger.Error("aggregate polygons failed", "category", category, "error", err)
		p.metrics.Aggregations.WithLabelValues(label, "aggregate_error").Inc()
		return domain.EmptyResult(category), err
	}

	p.metrics.Aggregations.WithLabelValues(label, "success").Inc()
	p.metrics.SectorsProduced.WithLabelValues(label).Add(float64(len(out.Result.Sectors)))
	p.metrics.PolygonsDropped.WithLabelValues(label).Add(float64(out.Dropped))
	p.logger.Debug("aggregated category",
		"category", category,
		"sectors", len(out.Result.Sectors),
		"dropped", out.Dropped,
		"total_area", out.Result.TotalArea,
	)

	p.publish(ctx, out.Result)
	return out.Result, nil
}

// ProcessAll runs Process for every enabled category. Results are in
// category order; failed categories are empty and their errors joined.
func (p *Pipeline) ProcessAll(ctx context.Context) ([]domain.Result, error) {
	results := make([]domain.Result, len(p.categories))
	var errs []error
	for i, c := range p.categories {
		res, err := p.Process(ctx, c)
		if err != nil {
			errs = append(errs, err)
		}
		results[i] = res
	}
	return results, errors.Join(errs...)
}

// publish is best-effort: failures are logged and counted but never reach
// the caller.
func (p *Pipeline) publish(ctx context.Context, result domain.Result) {
	if p.publisher == nil {
		return
	}
	if err := p.publisher.Publish(ctx, domain.NewSnapshot(result)); err != nil {
		p.logger.Warn("publish snapshot failed", "category", result.Category, "error", err)
		p.metrics.PublishErrors.Inc()
		return
	}
	p.metrics.SnapshotsPublished.Inc()
}
