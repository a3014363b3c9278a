package hhi

import (
	"github.com/t4p/competition-toolkit/pkg/constants"
	"github.com/t4p/competition-toolkit/pkg/mathutil"
)

// Normalize rescales every share by 100/sum so the set totals exactly 100,
// preserving firm order and relative proportions. A zero-sum set is returned
// unchanged to avoid division by zero, and a set already summing to 100
// (within tolerance) is returned as is, making normalization idempotent.
func Normalize(shares MarketShareSet) MarketShareSet {
	total := shares.Sum()
	if total == 0 || mathutil.WithinTolerance(total, constants.MaxSharePercent, constants.ShareSumTolerance) {
		return shares
	}

	scale := constants.MaxSharePercent / total
	normalized := make(MarketShareSet, len(shares))
	for i, fs := range shares {
		normalized[i] = FirmShare{Name: fs.Name, Share: fs.Share * scale}
	}
	return normalized
}
