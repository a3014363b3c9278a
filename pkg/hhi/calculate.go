package hhi

import (
	"github.com/t4p/competition-toolkit/pkg/constants"
	"github.com/t4p/competition-toolkit/pkg/mathutil"
)

// Calculate computes the Herfindahl-Hirschman Index for a share set.
// Shares are interpreted as percentages: each is divided by 100, squared,
// summed, and the sum scaled back to the 0-10,000 range. An empty set
// yields 0.
func Calculate(shares MarketShareSet) float64 {
	var sum float64
	for _, fs := range shares {
		sum += mathutil.SquaredFraction(fs.Share)
	}
	return sum * constants.HHIMax
}
