package domain

import (
	"encoding/json"
	"time"
)

// Coordinate is a WGS-84 position in degrees, latitude first.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RawCoordinate is a coordinate object exactly as the upstream producer
// writes it. Pointers distinguish a missing field from a zero value.
type RawCoordinate struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// RawPolygon is one unvalidated detection record. Coordinates is kept raw so
// a non-array value can be rejected per record instead of failing the whole
// document.
type RawPolygon struct {
	Name        *string         `json:"nome,omitempty"`
	Coordinates json.RawMessage `json:"coordenadas,omitempty"`
}

// NormalizedPolygon is a detection with at least one (lat, lng) coordinate.
// Rings are not required to be explicitly closed.
type NormalizedPolygon struct {
	Name        string       `json:"name"`
	Coordinates []Coordinate `json:"coordinates"`
}

// Sector summarizes one detected polygon for listing.
type Sector struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Type       string     `json:"type"` // "weeds", "failures", or "vigor"
	Area       float64    `json:"area"` // hectares
	Severity   Severity   `json:"severity"`
	Percentage float64    `json:"percentage"`
	Center     Coordinate `json:"center"`
}

// MapPolygon is the map-layer view of a sector: same ID and severity, full
// boundary.
type MapPolygon struct {
	ID          string       `json:"id"`
	Coordinates []Coordinate `json:"coordinates"`
	Type        Category     `json:"type"`
	Severity    Severity     `json:"severity"`
}

// Result is the aggregation output for one category. Sectors[i] and
// Polygons[i] always describe the same input polygon.
type Result struct {
	Category  Category     `json:"category"`
	TotalArea float64      `json:"totalArea"`
	Sectors   []Sector     `json:"sectors"`
	Polygons  []MapPolygon `json:"polygons"`
}

// EmptyResult returns a result with no sectors, used when a category cannot
// be loaded.
func EmptyResult(category Category) Result {
	return Result{
		Category: category,
		Sectors:  []Sector{},
		Polygons: []MapPolygon{},
	}
}

// Snapshot is a timestamped Result handed to report consumers.
type Snapshot struct {
	Result
	GeneratedAt time.Time `json:"generatedAt"`
}

// NewSnapshot stamps a result with the current time.
func NewSnapshot(result Result) Snapshot {
	return Snapshot{Result: result, GeneratedAt: clock.Now().UTC()}
}
