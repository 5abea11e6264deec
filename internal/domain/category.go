package domain

import (
	"fmt"
	"strings"
)

// Category is the detection type a polygon belongs to.
type Category string

const (
	CategoryWeed    Category = "weed"
	CategoryFailure Category = "failure"
	CategoryVigor   Category = "vigor"
)

// Categories lists every known category in display order.
func Categories() []Category {
	return []Category{CategoryWeed, CategoryFailure, CategoryVigor}
}

// ParseCategory accepts the canonical name or the plural list type
// ("weeds", "failures") case-insensitively.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "weed", "weeds":
		return CategoryWeed, nil
	case "failure", "failures":
		return CategoryFailure, nil
	case "vigor":
		return CategoryVigor, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryWeed, CategoryFailure, CategoryVigor:
		return true
	default:
		return false
	}
}

// Prefix is the sector ID prefix: "W-1", "F-1", "V-1".
func (c Category) Prefix() string {
	switch c {
	case CategoryWeed:
		return "W"
	case CategoryFailure:
		return "F"
	case CategoryVigor:
		return "V"
	default:
		return ""
	}
}

// DefaultLabel names sectors whose source record has no name; the 1-based
// index is appended.
func (c Category) DefaultLabel() string {
	switch c {
	case CategoryWeed:
		return "Setor W"
	case CategoryFailure:
		return "Falha"
	case CategoryVigor:
		return "Setor V"
	default:
		return "Setor"
	}
}

// ListType is the sector list discriminator the dashboard expects.
func (c Category) ListType() string {
	switch c {
	case CategoryWeed:
		return "weeds"
	case CategoryFailure:
		return "failures"
	case CategoryVigor:
		return "vigor"
	default:
		return ""
	}
}

// Severity is a sector's share tier within its category.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Severities lists every tier from lowest to highest.
func Severities() []Severity {
	return []Severity{SeverityLow, SeverityMedium, SeverityHigh}
}

// ClassifySeverity maps a percentage share to a tier. Both bounds are
// exclusive on the upper tier: 30.00 is medium, 15.00 is low.
func ClassifySeverity(percentage float64) Severity {
	switch {
	case percentage > 30:
		return SeverityHigh
	case percentage > 15:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// rank orders severities for sorting; higher is more severe.
func (s Severity) rank() int {
	switch s {
	case SeverityHigh:
		return 2
	case SeverityMedium:
		return 1
	default:
		return 0
	}
}
