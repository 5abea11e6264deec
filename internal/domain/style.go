package domain

import "fmt"

// Style is a Leaflet-compatible path style.
type Style struct {
	Color       string  `json:"color"`
	FillColor   string  `json:"fillColor"`
	FillOpacity float64 `json:"fillOpacity"`
	Weight      int     `json:"weight"`
	Opacity     float64 `json:"opacity"`
}

// BoundaryColor outlines the farm boundary.
const BoundaryColor = "#3b82f6"

// PolygonStyle returns the map style for a category and severity.
func PolygonStyle(c Category, s Severity) (Style, error) {
	color, err := severityColor(c, s)
	if err != nil {
		return Style{}, err
	}
	return Style{
		Color:       color,
		FillColor:   color,
		FillOpacity: 0.4,
		Weight:      2,
		Opacity:     0.8,
	}, nil
}

// HighlightedStyle is PolygonStyle for the selected sector.
func HighlightedStyle(c Category, s Severity) (Style, error) {
	st, err := PolygonStyle(c, s)
	if err != nil {
		return Style{}, err
	}
	st.Weight = 4
	st.FillOpacity = 0.7
	st.Opacity = 1
	return st, nil
}

// MarkerColor is the centroid marker color for a category.
func MarkerColor(c Category) (string, error) {
	switch c {
	case CategoryWeed:
		return "#ef4444", nil
	case CategoryFailure:
		return "#8b5cf6", nil
	case CategoryVigor:
		return "#22c55e", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
}

func severityColor(c Category, s Severity) (string, error) {
	var low, medium, high string
	switch c {
	case CategoryWeed:
		low, medium, high = "#4CAF50", "#FF9800", "#F44336"
	case CategoryFailure:
		low, medium, high = "#2196F3", "#FF5722", "#9C27B0"
	case CategoryVigor:
		low, medium, high = "#C5E1A5", "#7CB342", "#33691E"
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}

	switch s {
	case SeverityLow:
		return low, nil
	case SeverityMedium:
		return medium, nil
	case SeverityHigh:
		return high, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSeverity, s)
	}
}

// StyleEntry is one row of the style table.
type StyleEntry struct {
	Category    Category `json:"category"`
	Severity    Severity `json:"severity"`
	Style       Style    `json:"style"`
	Highlighted Style    `json:"highlighted"`
	MarkerColor string   `json:"markerColor"`
}

// StyleTable lists the style of every category/severity pair.
func StyleTable() []StyleEntry {
	var out []StyleEntry
	for _, c := range Categories() {
		marker, _ := MarkerColor(c)
		for _, s := range Severities() {
			st, _ := PolygonStyle(c, s)
			hl, _ := HighlightedStyle(c, s)
			out = append(out, StyleEntry{Category: c, Severity: s, Style: st, Highlighted: hl, MarkerColor: marker})
		}
	}
	return out
}
