// Package domain models field-monitoring detections and the statistics
// derived from them.
//
// # Data Source
//
// Detections arrive as one JSON document per category (weed infestation,
// planting failure, vigor). Each document is an array of polygons produced by
// the imagery processing step:
//
//	[{"nome": "Talhão 3", "coordenadas": [{"latitude": -24.76, "longitude": -53.61}, ...]}]
//
// Field names are kept as the upstream producer writes them. Records without a
// usable coordinate list are dropped by [Normalize]; a document that is not an
// array at all decodes to an empty collection ([DecodeRawPolygons]).
//
// # Coordinate Order
//
// Every exported type uses (latitude, longitude). The geometry library works
// on (longitude, latitude) points, so conversion happens in exactly two
// places: toRing on the way in and fromPoint on the way out.
//
// # Derived Statistics
//
// [Aggregate] turns the normalized polygons of one category into sectors:
//
//	area        geodesic ring area in hectares, two decimals
//	percentage  area / category total * 100, two decimals
//	severity    > 30% high | > 15% medium | otherwise low
//	id          <prefix>-<index+1>, e.g. "W-1", "F-3"
//	center      area-weighted centroid
//
// Severity is relative to the category's own total area. It says which sectors
// dominate a category, not how bad an infestation is agronomically.
//
// # Alignment
//
// Sectors and map polygons are positionally aligned with the input: index i of
// either slice describes input polygon i. IDs are derived from the index, so a
// geometry failure on any polygon fails the whole category instead of
// skipping it and shifting every later ID.
package domain
