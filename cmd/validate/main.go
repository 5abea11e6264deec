// Command validate performs data integrity checks on a directory of category
// documents: every document decodes, incomplete records are accounted for,
// aggregation succeeds with shares summing to 100%, and every polygon falls
// inside the farm. When a fixture written by sectorstats is given, it also
// verifies the fixture still matches a fresh aggregation.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -dir data/mock \
//	  -fixture data/fixtures/results.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/sensori-ai/farm-sectors/internal/config"
	"github.com/sensori-ai/farm-sectors/internal/domain"
)

// docSpec maps a category to its document file name.
type docSpec struct {
	file     string
	category domain.Category
}

var specs = []docSpec{
	{file: "ervas-daninhas.json", category: domain.CategoryWeed},
	{file: "falhas.json", category: domain.CategoryFailure},
	{file: "vigor.json", category: domain.CategoryVigor},
}

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// document is one category file at each stage of processing.
type document struct {
	spec       docSpec
	raw        []domain.RawPolygon
	normalized []domain.NormalizedPolygon
	result     domain.Result
	aggErr     error
}

func main() {
	dir := flag.String("dir", "data/mock", "directory containing category documents")
	fixture := flag.String("fixture", "", "optional snapshot fixture written by sectorstats")
	boundary := flag.String("boundary", config.DefaultFarmBoundary, "farm boundary as lat,lng;lat,lng;...")
	flag.Parse()

	if code := run(*dir, *fixture, *boundary); code != 0 {
		os.Exit(code)
	}
}

func run(dir, fixturePath, boundary string) int {
	fmt.Println("=== Farm Sector Data Validation ===")
	fmt.Println()

	farmBoundary, err := config.ParseCoordinates(boundary)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: parse boundary: %v\n", err)
		return 1
	}

	docs := make([]*document, 0, len(specs))
	decode := &phase{name: "Phase 1: Document decoding"}
	for _, s := range specs {
		d := &document{spec: s}
		data, err := os.ReadFile(filepath.Join(dir, s.file))
		if err != nil {
			decode.errorf("%s: %v", s.file, err)
			continue
		}
		d.raw, err = domain.DecodeRawPolygons(data)
		if err != nil {
			decode.errorf("%s: %v", s.file, err)
			continue
		}
		docs = append(docs, d)
	}

	phases := []*phase{
		decode,
		validateNormalization(docs),
		validateAggregation(docs),
		validateContainment(docs, farmBoundary),
	}
	if fixturePath != "" {
		phases = append(phases, validateFixture(docs, fixturePath))
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	for _, d := range docs {
		fmt.Printf("%-8s %3d records, %3d normalized, %3d dropped\n",
			d.spec.category, len(d.raw), len(d.normalized), len(d.raw)-len(d.normalized))
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phase 2: Normalization ──

func validateNormalization(docs []*document) *phase {
	p := &phase{name: "Phase 2: Normalization"}
	for _, d := range docs {
		d.normalized = domain.Normalize(d.raw)
		if len(d.normalized) == 0 && len(d.raw) > 0 {
			p.errorf("%s: all %d records dropped", d.spec.file, len(d.raw))
		}
		for i, np := range d.normalized {
			if len(np.Coordinates) < 3 {
				p.errorf("%s[%d] %q: %d coordinates, need at least 3", d.spec.file, i, np.Name, len(np.Coordinates))
			}
		}
	}
	return p
}

// ── Phase 3: Aggregation ──

func validateAggregation(docs []*document) *phase {
	p := &phase{name: "Phase 3: Aggregation"}
	for _, d := range docs {
		d.result, d.aggErr = domain.Aggregate(d.spec.category, d.normalized)
		if d.aggErr != nil {
			p.errorf("%s: %v", d.spec.file, d.aggErr)
			continue
		}
		checkShares(p, d)
		checkSectors(p, d)
	}
	return p
}

func checkShares(p *phase, d *document) {
	if len(d.result.Sectors) == 0 {
		return
	}
	var sum float64
	for _, s := range d.result.Sectors {
		sum += s.Percentage
	}
	if math.Abs(sum-100) > 0.1 {
		p.errorf("%s: percentages sum to %.2f", d.spec.file, sum)
	}
}

func checkSectors(p *phase, d *document) {
	res := d.result
	if len(res.Sectors) != len(res.Polygons) {
		p.errorf("%s: %d sectors but %d polygons", d.spec.file, len(res.Sectors), len(res.Polygons))
		return
	}
	for i, s := range res.Sectors {
		wantID := d.spec.category.Prefix() + "-" + strconv.Itoa(i+1)
		if s.ID != wantID {
			p.errorf("%s[%d]: id %q, want %q", d.spec.file, i, s.ID, wantID)
		}
		if res.Polygons[i].ID != s.ID {
			p.errorf("%s[%d]: polygon id %q does not match sector %q", d.spec.file, i, res.Polygons[i].ID, s.ID)
		}
		if s.Area <= 0 {
			p.errorf("%s %s: non-positive area %.4f", d.spec.file, s.ID, s.Area)
		}
		if want := domain.ClassifySeverity(s.Percentage); s.Severity != want {
			p.errorf("%s %s: severity %s, want %s for %.2f%%", d.spec.file, s.ID, s.Severity, want, s.Percentage)
		}
	}
}

// ── Phase 4: Farm containment ──

func validateContainment(docs []*document, boundary []domain.Coordinate) *phase {
	p := &phase{name: "Phase 4: Farm containment"}
	farm, ok := domain.Bounds(boundary)
	if !ok {
		p.errorf("farm boundary has no usable coordinates")
		return p
	}
	for _, d := range docs {
		for _, poly := range d.result.Polygons {
			b, ok := domain.Bounds(poly.Coordinates)
			if !ok {
				continue
			}
			if !within(b, farm) {
				p.errorf("%s %s: bounds %v outside farm %v", d.spec.file, poly.ID, b, farm)
			}
		}
	}
	return p
}

func within(inner, outer domain.Bound) bool {
	return inner.SouthWest.Lat >= outer.SouthWest.Lat &&
		inner.SouthWest.Lng >= outer.SouthWest.Lng &&
		inner.NorthEast.Lat <= outer.NorthEast.Lat &&
		inner.NorthEast.Lng <= outer.NorthEast.Lng
}

// ── Phase 5: Fixture parity ──

func validateFixture(docs []*document, path string) *phase {
	p := &phase{name: "Phase 5: Fixture parity"}

	data, err := os.ReadFile(path)
	if err != nil {
		p.errorf("read fixture: %v", err)
		return p
	}
	var snapshots []domain.Snapshot
	if err := json.Unmarshal(data, &snapshots); err != nil {
		p.errorf("decode fixture: %v", err)
		return p
	}

	byCategory := make(map[domain.Category]domain.Result, len(snapshots))
	for _, s := range snapshots {
		byCategory[s.Category] = s.Result
	}

	// Fixture values went through JSON; compare floats with a tolerance.
	opt := cmpopts.EquateApprox(0, 1e-9)
	for _, d := range docs {
		if d.aggErr != nil {
			continue
		}
		want, ok := byCategory[d.spec.category]
		if !ok {
			p.errorf("fixture has no %s snapshot", d.spec.category)
			continue
		}
		if diff := cmp.Diff(want, d.result, opt); diff != "" {
			p.errorf("%s drifted from fixture (-fixture +fresh):\n%s", d.spec.category, diff)
		}
	}
	return p
}
