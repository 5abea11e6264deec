package domain

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
)

const squareMetersPerHectare = 10_000

// Area returns the geodesic area of a ring in hectares, rounded to two
// decimals. The ring is implicitly closed. Rings with fewer than three points
// have zero area.
func Area(ring []Coordinate) (float64, error) {
	r, err := toRing(ring)
	if err != nil {
		return 0, err
	}
	if len(r) < 3 {
		return 0, nil
	}
	sqm := geo.Area(orb.Polygon{r})
	return round2(sqm / squareMetersPerHectare), nil
}

// Centroid returns the area-weighted centroid of a ring. Rings with zero area
// (one or two points, or collinear vertices) have no weighted centroid and
// fall back to SimpleCenter.
func Centroid(ring []Coordinate) (Coordinate, error) {
	r, err := toRing(ring)
	if err != nil {
		return Coordinate{}, err
	}
	if len(r) >= 3 {
		p, area := planar.CentroidArea(orb.Polygon{r})
		if area != 0 && !math.IsNaN(p[0]) && !math.IsNaN(p[1]) {
			return fromPoint(p), nil
		}
	}
	return SimpleCenter(ring)
}

// SimpleCenter returns the unweighted mean of all vertices. A repeated closing
// vertex is counted like any other.
func SimpleCenter(ring []Coordinate) (Coordinate, error) {
	if len(ring) == 0 {
		return Coordinate{}, ErrInvalidGeometry
	}
	var lat, lng float64
	for _, c := range ring {
		if !finite(c) {
			return Coordinate{}, ErrInvalidGeometry
		}
		lat += c.Lat
		lng += c.Lng
	}
	n := float64(len(ring))
	return Coordinate{Lat: lat / n, Lng: lng / n}, nil
}

// Bound is a lat/lng bounding box.
type Bound struct {
	SouthWest Coordinate `json:"southWest"`
	NorthEast Coordinate `json:"northEast"`
}

// Bounds returns the box enclosing every coordinate of the given rings.
// The second value is false when there are no coordinates.
func Bounds(rings ...[]Coordinate) (Bound, bool) {
	var b orb.Bound
	found := false
	for _, ring := range rings {
		for _, c := range ring {
			if !finite(c) {
				continue
			}
			p := orb.Point{c.Lng, c.Lat}
			if !found {
				b = orb.Bound{Min: p, Max: p}
				found = true
				continue
			}
			b = b.Extend(p)
		}
	}
	if !found {
		return Bound{}, false
	}
	return Bound{SouthWest: fromPoint(b.Min), NorthEast: fromPoint(b.Max)}, true
}

// toRing converts public (lat, lng) coordinates to orb's (lng, lat) points.
func toRing(ring []Coordinate) (orb.Ring, error) {
	if len(ring) == 0 {
		return nil, ErrInvalidGeometry
	}
	r := make(orb.Ring, len(ring))
	for i, c := range ring {
		if !finite(c) {
			return nil, ErrInvalidGeometry
		}
		r[i] = orb.Point{c.Lng, c.Lat}
	}
	return r, nil
}

// fromPoint converts an orb (lng, lat) point back to a Coordinate.
func fromPoint(p orb.Point) Coordinate {
	return Coordinate{Lat: p[1], Lng: p[0]}
}

// closedRing returns r with the first point appended when it is not already
// closed. GeoJSON requires explicit closure.
func closedRing(r orb.Ring) orb.Ring {
	if len(r) == 0 || r.Closed() {
		return r
	}
	out := make(orb.Ring, len(r), len(r)+1)
	copy(out, r)
	return append(out, r[0])
}

func finite(c Coordinate) bool {
	return !math.IsNaN(c.Lat) && !math.IsInf(c.Lat, 0) && !math.IsNaN(c.Lng) && !math.IsInf(c.Lng, 0)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
