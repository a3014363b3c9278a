package hhi

import (
	"fmt"

	"github.com/t4p/competition-toolkit/pkg/constants"
	"github.com/t4p/competition-toolkit/pkg/mathutil"
)

// ValidationResult is the outcome of share validation. A set passes or
// fails atomically; Reason is populated only on failure.
type ValidationResult struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

func invalid(format string, args ...interface{}) ValidationResult {
	return ValidationResult{Valid: false, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks a share set for use in an HHI calculation. It rejects an
// empty set, any negative share, any share above 100, and a total above 100
// (with tolerance for floating-point accumulation). A total strictly below
// 100 is permitted and represents partial market coverage.
func Validate(shares MarketShareSet) ValidationResult {
	if len(shares) == 0 {
		return invalid("no market shares provided")
	}

	for _, fs := range shares {
		if fs.Share < 0 {
			return invalid("market share for %s cannot be negative (%.1f%%)", fs.Name, fs.Share)
		}
		if fs.Share > constants.MaxSharePercent {
			return invalid("market share for %s cannot exceed 100%% (%.1f%%)", fs.Name, fs.Share)
		}
	}

	if total := shares.Sum(); mathutil.SumExceeds(total, constants.MaxSharePercent) {
		return invalid("total market share exceeds 100%% (%.1f%%)", total)
	}

	return ValidationResult{Valid: true}
}
