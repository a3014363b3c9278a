package hhi

import "github.com/t4p/competition-toolkit/pkg/constants"

// Band is one of the three concentration tiers an index value maps into.
type Band string

const (
	BandLow      Band = "low"
	BandModerate Band = "moderate"
	BandHigh     Band = "high"
)

// Interpretation carries the band for an index value together with its
// display strings.
type Interpretation struct {
	Band        Band    `json:"band"`
	Description string  `json:"description"`
	Color       string  `json:"color"`
	Value       float64 `json:"value"`
}

// Interpret maps a non-negative index value to its concentration band.
// Bands are half-open: exactly 1500 is moderate and exactly 2500 is high.
func Interpret(value float64) Interpretation {
	switch {
	case value < constants.HHILowUpperBound:
		return Interpretation{Band: BandLow, Description: "Low concentration", Color: "green", Value: value}
	case value < constants.HHIModerateUpperBound:
		return Interpretation{Band: BandModerate, Description: "Moderate concentration", Color: "orange", Value: value}
	default:
		return Interpretation{Band: BandHigh, Description: "High concentration", Color: "red", Value: value}
	}
}
