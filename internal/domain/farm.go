package domain

// Farm is the monitored property. It is supplied by configuration.
type Farm struct {
	Name     string       `json:"name"`
	Boundary []Coordinate `json:"boundary"`

	// DefaultCenter is used when the boundary is empty.
	DefaultCenter Coordinate `json:"-"`
}

// Center is the vertex average of the boundary, or DefaultCenter when there
// is no boundary.
func (f Farm) Center() Coordinate {
	c, err := SimpleCenter(f.Boundary)
	if err != nil {
		return f.DefaultCenter
	}
	return c
}

// AreaHectares is the boundary's geodesic area; zero without a boundary.
func (f Farm) AreaHectares() float64 {
	a, err := Area(f.Boundary)
	if err != nil {
		return 0
	}
	return a
}

// SeverityCounts tallies sectors per tier.
type SeverityCounts struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

// CategorySummary is the farm-level view of one category's result.
type CategorySummary struct {
	Category    Category       `json:"category"`
	TotalArea   float64        `json:"totalArea"`
	SectorCount int            `json:"sectorCount"`
	Severities  SeverityCounts `json:"severities"`
	FarmShare   float64        `json:"farmShare"` // percent of farm area
}

// FarmSummary feeds report generation.
type FarmSummary struct {
	Farm       string            `json:"farm"`
	FarmArea   float64           `json:"farmArea"`
	Categories []CategorySummary `json:"categories"`
}

// Summarize builds a FarmSummary from per-category results, in the order
// given.
func Summarize(farm Farm, results []Result) FarmSummary {
	farmArea := farm.AreaHectares()
	s := FarmSummary{
		Farm:       farm.Name,
		FarmArea:   farmArea,
		Categories: make([]CategorySummary, 0, len(results)),
	}
	for _, r := range results {
		cs := CategorySummary{
			Category:    r.Category,
			TotalArea:   r.TotalArea,
			SectorCount: len(r.Sectors),
		}
		for _, sec := range r.Sectors {
			switch sec.Severity {
			case SeverityHigh:
				cs.Severities.High++
			case SeverityMedium:
				cs.Severities.Medium++
			default:
				cs.Severities.Low++
			}
		}
		if farmArea > 0 {
			cs.FarmShare = round2(r.TotalArea / farmArea * 100)
		}
		s.Categories = append(s.Categories, cs)
	}
	return s
}
