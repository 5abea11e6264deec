package domain

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
)

// Aggregate computes sectors and map polygons for one category. The outputs
// are positionally aligned with polygons. Any geometry failure aborts the
// whole category with an *AggregationError; no partial result is returned.
func Aggregate(category Category, polygons []NormalizedPolygon) (Result, error) {
	if !category.Valid() {
		return EmptyResult(category), fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	areas := make([]float64, len(polygons))
	centers := make([]Coordinate, len(polygons))
	var total float64
	for i, p := range polygons {
		area, err := Area(p.Coordinates)
		if err != nil {
			return EmptyResult(category), &AggregationError{Category: category, Index: i, Err: err}
		}
		center, err := Centroid(p.Coordinates)
		if err != nil {
			return EmptyResult(category), &AggregationError{Category: category, Index: i, Err: err}
		}
		areas[i] = area
		centers[i] = center
		total += area
	}

	res := Result{
		Category:  category,
		TotalArea: round2(total),
		Sectors:   make([]Sector, len(polygons)),
		Polygons:  make([]MapPolygon, len(polygons)),
	}
	for i, p := range polygons {
		var pct float64
		if total > 0 {
			pct = round2(areas[i] / total * 100)
		}
		id := category.Prefix() + "-" + strconv.Itoa(i+1)
		name := p.Name
		if name == "" {
			name = category.DefaultLabel() + " " + strconv.Itoa(i+1)
		}
		severity := ClassifySeverity(pct)

		res.Sectors[i] = Sector{
			ID:         id,
			Name:       name,
			Type:       category.ListType(),
			Area:       areas[i],
			Severity:   severity,
			Percentage: pct,
			Center:     centers[i],
		}
		res.Polygons[i] = MapPolygon{
			ID:          id,
			Coordinates: slices.Clone(p.Coordinates),
			Type:        category,
			Severity:    severity,
		}
	}
	return res, nil
}

// SortKey selects a sector ordering for listings.
type SortKey string

const (
	SortByIndex      SortKey = "index"
	SortByArea       SortKey = "area"
	SortByPercentage SortKey = "percentage"
	SortBySeverity   SortKey = "severity"
)

// ParseSortKey maps a query value to a SortKey; empty means index order.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(s); k {
	case "":
		return SortByIndex, nil
	case SortByIndex, SortByArea, SortByPercentage, SortBySeverity:
		return k, nil
	default:
		return "", fmt.Errorf("unknown sort key %q", s)
	}
}

// SortSectors returns a sorted copy of sectors. Area and percentage sort
// descending; severity sorts high first with ties broken by area. The sort is
// stable so equal sectors keep their input order.
func SortSectors(sectors []Sector, key SortKey) []Sector {
	out := slices.Clone(sectors)
	switch key {
	case SortByArea:
		slices.SortStableFunc(out, func(a, b Sector) int { return cmp.Compare(b.Area, a.Area) })
	case SortByPercentage:
		slices.SortStableFunc(out, func(a, b Sector) int { return cmp.Compare(b.Percentage, a.Percentage) })
	case SortBySeverity:
		slices.SortStableFunc(out, func(a, b Sector) int {
			if c := cmp.Compare(b.Severity.rank(), a.Severity.rank()); c != 0 {
				return c
			}
			return cmp.Compare(b.Area, a.Area)
		})
	}
	return out
}
