package pipeline_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sensori-ai/farm-sectors/internal/domain"
	"github.com/sensori-ai/farm-sectors/internal/pipeline"
)

func TestSectorTransformer_WithMockData(t *testing.T) {
	transformer := pipeline.NewTransformer(slog.Default())

	cases := []struct {
		file     string
		category domain.Category
		sectors  int
		dropped  int
	}{
		{file: "ervas-daninhas.json", category: domain.CategoryWeed, sectors: 3, dropped: 1},
		{file: "falhas.json", category: domain.CategoryFailure, sectors: 2, dropped: 1},
		{file: "vigor.json", category: domain.CategoryVigor, sectors: 2, dropped: 0},
	}

	for _, tc := range cases {
		t.Run(string(tc.category), func(t *testing.T) {
			data := readMockFile(t, tc.file)

			out, err := transformer.Transform(context.Background(), tc.category, data)
			require.NoError(t, err)
			assert.Equal(t, tc.dropped, out.Dropped)
			assert.Equal(t, tc.sectors+tc.dropped, out.Decoded)

			res := out.Result
			require.Len(t, res.Sectors, tc.sectors)
			require.Len(t, res.Polygons, tc.sectors)
			assert.Greater(t, res.TotalArea, 0.0)

			var pct float64
			for i, s := range res.Sectors {
				assert.Greater(t, s.Area, 0.0)
				assert.Equal(t, s.ID, res.Polygons[i].ID)
				assert.Equal(t, tc.category.ListType(), s.Type)
				// Every mock polygon lies inside the demo farm.
				assert.InDelta(t, -24.765, s.Center.Lat, 0.01)
				assert.InDelta(t, -53.614, s.Center.Lng, 0.01)
				pct += s.Percentage
			}
			assert.InDelta(t, 100.0, pct, 0.1)
		})
	}
}

func TestSectorTransformer_Malformed(t *testing.T) {
	transformer := pipeline.NewTransformer(slog.Default())

	out, err := transformer.Transform(context.Background(), domain.CategoryWeed, []byte(`"oops"`))
	require.ErrorIs(t, err, domain.ErrMalformedInput)
	assert.Empty(t, out.Result.Sectors)
	assert.Equal(t, domain.CategoryWeed, out.Result.Category)
}

func TestSectorTransformer_CountsEveryElement(t *testing.T) {
	transformer := pipeline.NewTransformer(slog.Default())
	data := []byte(`[
		{"nome":7,"coordenadas":[{"latitude":0,"longitude":0},{"latitude":0,"longitude":0.01},{"latitude":0.01,"longitude":0.01}]},
		{"nome":"ok","coordenadas":[{"latitude":0,"longitude":0.02},{"latitude":0,"longitude":0.03},{"latitude":0.01,"longitude":0.03}]},
		"stray",
		42
	]`)

	out, err := transformer.Transform(context.Background(), domain.CategoryWeed, data)
	require.NoError(t, err)
	assert.Equal(t, 4, out.Decoded)
	assert.Equal(t, 2, out.Dropped)
	require.Len(t, out.Result.Sectors, 2)
	assert.Equal(t, "Setor W 1", out.Result.Sectors[0].Name)
	assert.Equal(t, "ok", out.Result.Sectors[1].Name)
}

func readMockFile(t *testing.T, name string) []byte {
	t.Helper()

	path := filepath.Join("..", "..", "data", "mock", name)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}
