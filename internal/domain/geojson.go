package domain

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// FeatureCollection renders a result's map polygons as GeoJSON. Each feature
// carries the sector's id, category, severity, and fill color, plus the
// sector's area and percentage when the result has them.
func FeatureCollection(r Result) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()
	for i, p := range r.Polygons {
		ring, err := toRing(p.Coordinates)
		if err != nil {
			return nil, &AggregationError{Category: r.Category, Index: i, Err: err}
		}
		color, err := severityColor(p.Type, p.Severity)
		if err != nil {
			return nil, err
		}

		f := geojson.NewFeature(orb.Polygon{closedRing(ring)})
		f.ID = p.ID
		f.Properties["id"] = p.ID
		f.Properties["category"] = string(p.Type)
		f.Properties["severity"] = string(p.Severity)
		f.Properties["color"] = color
		if i < len(r.Sectors) {
			f.Properties["name"] = r.Sectors[i].Name
			f.Properties["area"] = r.Sectors[i].Area
			f.Properties["percentage"] = r.Sectors[i].Percentage
		}
		fc.Append(f)
	}
	return fc, nil
}
