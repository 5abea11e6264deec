// Command sectorstats aggregates category documents offline and writes the
// results as JSON fixtures, optionally with a GeoJSON layer per category. It
// uses the service's domain package so fixtures match what the API serves.
//
// Usage:
//
//	go run ./cmd/sectorstats \
//	  -dir data/mock \
//	  -out data/fixtures/results.json \
//	  -geojson data/fixtures
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/sensori-ai/farm-sectors/internal/config"
	"github.com/sensori-ai/farm-sectors/internal/domain"
)

// docSpec maps a category to its document file name.
type docSpec struct {
	file     string
	category domain.Category
}

var defaultDocs = []docSpec{
	{file: "ervas-daninhas.json", category: domain.CategoryWeed},
	{file: "falhas.json", category: domain.CategoryFailure},
	{file: "vigor.json", category: domain.CategoryVigor},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	dir := flag.String("dir", "data/mock", "directory containing category documents")
	only := flag.String("category", "", "aggregate a single category (weed, failure, vigor)")
	out := flag.String("out", "", "output path for the snapshot JSON fixture (stdout when empty)")
	geoDir := flag.String("geojson", "", "directory for per-category GeoJSON layers")
	farmName := flag.String("farm", "Fazenda Modelo", "farm name for the summary")
	flag.Parse()

	docs, err := selectDocs(*only)
	if err != nil {
		return err
	}

	// Set a fixed clock for reproducible generatedAt timestamps.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2024, time.May, 2, 12, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	boundary, err := config.ParseCoordinates(config.DefaultFarmBoundary)
	if err != nil {
		return fmt.Errorf("parse default boundary: %w", err)
	}
	farm := domain.Farm{Name: *farmName, Boundary: boundary}

	snapshots := make([]domain.Snapshot, 0, len(docs))
	results := make([]domain.Result, 0, len(docs))
	for _, d := range docs {
		res, dropped, err := aggregateFile(filepath.Join(*dir, d.file), d.category)
		if err != nil {
			return fmt.Errorf("processing %s: %w", d.file, err)
		}
		log.Printf("%s: %d sectors, %d dropped, %.2f ha", d.category, len(res.Sectors), dropped, res.TotalArea)
		snapshots = append(snapshots, domain.NewSnapshot(res))
		results = append(results, res)

		if *geoDir != "" {
			path := filepath.Join(*geoDir, string(d.category)+".geojson")
			if err := writeGeoJSON(path, res); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			log.Printf("wrote GeoJSON layer: %s", path)
		}
	}

	if *out == "" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snapshots); err != nil {
			return err
		}
	} else {
		if err := writeJSON(*out, snapshots); err != nil {
			return fmt.Errorf("writing fixture: %w", err)
		}
		log.Printf("wrote fixture: %s", *out)
	}

	printStats(domain.Summarize(farm, results))
	return nil
}

func selectDocs(only string) ([]docSpec, error) {
	if only == "" {
		return defaultDocs, nil
	}
	c, err := domain.ParseCategory(only)
	if err != nil {
		return nil, err
	}
	for _, d := range defaultDocs {
		if d.category == c {
			return []docSpec{d}, nil
		}
	}
	return nil, fmt.Errorf("no document for category %s", c)
}

func aggregateFile(path string, category domain.Category) (domain.Result, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Result{}, 0, fmt.Errorf("read: %w", err)
	}
	raw, err := domain.DecodeRawPolygons(data)
	if err != nil {
		return domain.Result{}, 0, err
	}
	polygons := domain.Normalize(raw)
	res, err := domain.Aggregate(category, polygons)
	if err != nil {
		return domain.Result{}, 0, err
	}
	return res, len(raw) - len(polygons), nil
}

func writeGeoJSON(path string, res domain.Result) error {
	fc, err := domain.FeatureCollection(res)
	if err != nil {
		return err
	}
	return writeJSON(path, fc)
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(s domain.FarmSummary) {
	fmt.Fprintf(os.Stderr, "\n%s: %.2f ha\n", s.Farm, s.FarmArea)
	fmt.Fprintf(os.Stderr, "%s\n", strings.Repeat("-", 56))
	fmt.Fprintf(os.Stderr, "%-10s %8s %10s %6s %6s %6s %6s\n", "category", "sectors", "area (ha)", "farm%", "low", "medium", "high")
	for _, c := range s.Categories {
		fmt.Fprintf(os.Stderr, "%-10s %8d %10.2f %6.2f %6d %6d %6d\n",
			c.Category, c.SectorCount, c.TotalArea, c.FarmShare,
			c.Severities.Low, c.Severities.Medium, c.Severities.High)
	}
}
