package pipeline

import (
	"context"
	"log/slog"

	"github.com/sensori-ai/farm-sectors/internal/domain"
)

// Transformation is the outcome of turning one category document into a
// result.
type Transformation struct {
	Result  domain.Result
	Decoded int // records decoded from the document
	Dropped int // records rejected by normalization
}

// SectorTransformer implements Transformer with the domain decode, normalize,
// and aggregate functions.
type SectorTransformer struct {
	logger *slog.Logger
}

// NewTransformer creates a SectorTransformer.
func NewTransformer(logger *slog.Logger) *SectorTransformer {
	return &SectorTransformer{logger: logger}
}

// Transform decodes data and aggregates it for category. Errors wrap
// domain.ErrMalformedInput when the document itself is unusable, or are an
// *domain.AggregationError when a polygon cannot be evaluated.
func (t *SectorTransformer) Transform(_ context.Context, category domain.Category, data []byte) (Transformation, error) {
	raw, err := domain.DecodeRawPolygons(data)
	if err != nil {
		return Transformation{Result: domain.EmptyResult(category)}, err
	}

	polygons := domain.Normalize(raw)
	out := Transformation{Decoded: len(raw), Dropped: len(raw) - len(polygons)}
	if out.Dropped > 0 {
		t.logger.Debug("dropped incomplete polygons", "category", category, "dropped", out.Dropped, "decoded", out.Decoded)
	}

	out.Result, err = domain.Aggregate(category, polygons)
	return out, err
}
