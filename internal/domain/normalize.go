package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DecodeRawPolygons decodes a category document. A document that is not a
// JSON array yields an empty collection and an error wrapping
// ErrMalformedInput. Every array element yields one record: elements that
// are not objects become empty records, which Normalize drops, and a name
// that is not a string is treated as absent.
func DecodeRawPolygons(data []byte) ([]RawPolygon, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return []RawPolygon{}, fmt.Errorf("%w: decode polygons: %v", ErrMalformedInput, err)
	}
	if elems == nil {
		return []RawPolygon{}, fmt.Errorf("%w: document is null", ErrMalformedInput)
	}

	out := make([]RawPolygon, 0, len(elems))
	for _, elem := range elems {
		var rec struct {
			Name        json.RawMessage `json:"nome"`
			Coordinates json.RawMessage `json:"coordenadas"`
		}
		if err := json.Unmarshal(elem, &rec); err != nil {
			out = append(out, RawPolygon{})
			continue
		}
		out = append(out, RawPolygon{Name: decodeName(rec.Name), Coordinates: rec.Coordinates})
	}
	return out, nil
}

func decodeName(data json.RawMessage) *string {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '"' {
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return nil
	}
	return &name
}

// Normalize converts raw records to (lat, lng) polygons, preserving input
// order. Records are dropped when their coordinate list is missing, not an
// array, empty, or contains an entry without both latitude and longitude.
// Duplicates are kept and closure is not checked.
func Normalize(raw []RawPolygon) []NormalizedPolygon {
	out := make([]NormalizedPolygon, 0, len(raw))
	for _, rec := range raw {
		coords, ok := parseCoordinates(rec.Coordinates)
		if !ok {
			continue
		}
		name := ""
		if rec.Name != nil {
			name = *rec.Name
		}
		out = append(out, NormalizedPolygon{Name: name, Coordinates: coords})
	}
	return out
}

func parseCoordinates(data json.RawMessage) ([]Coordinate, bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil, false
	}

	var raw []RawCoordinate
	if err := json.Unmarshal(data, &raw); err != nil || len(raw) == 0 {
		return nil, false
	}

	coords := make([]Coordinate, len(raw))
	for i, rc := range raw {
		if rc.Latitude == nil || rc.Longitude == nil {
			return nil, false
		}
		coords[i] = Coordinate{Lat: *rc.Latitude, Lng: *rc.Longitude}
	}
	return coords, true
}
