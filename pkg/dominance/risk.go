// Package dominance implements the market-dominance risk checker: a factor
// table over market position inputs summed into a heuristic risk score.
package dominance

import (
	"fmt"
	"time"

	"github.com/t4p/competition-toolkit/pkg/constants"
)

// BarrierLevel describes market entry barriers.
type BarrierLevel string

const (
	BarrierLow    BarrierLevel = "low"
	BarrierMedium BarrierLevel = "medium"
	BarrierHigh   BarrierLevel = "high"
)

// Inputs are the market factors considered by the assessment. HHI is
// optional; zero means "not provided" and skips that factor. RivalShares
// holds up to the top three rivals' shares.
type Inputs struct {
	MarketShare         float64      `json:"marketShare"`
	HHI                 float64      `json:"hhi"`
	RivalShares         []float64    `json:"rivalShares"`
	VerticalIntegration bool         `json:"verticalIntegration"`
	NetworkEffects      bool         `json:"networkEffects"`
	EntryBarriers       BarrierLevel `json:"entryBarriers"`
}

// Factor is one scored risk dimension.
type Factor struct {
	Name   string `json:"name"`
	Rating string `json:"rating"`
	Score  int    `json:"score"`
}

// RiskLevel buckets the total score.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Result is the outcome of a dominance risk assessment.
type Result struct {
	Factors      []Factor  `json:"factors"`
	TotalScore   int       `json:"totalScore"`
	MaxScore     int       `json:"maxScore"`
	Level        RiskLevel `json:"level"`
	Description  string    `json:"description"`
	CalculatedAt time.Time `json:"calculatedAt"`
}

// Assess scores the market factors and buckets the total into a risk level.
// The firm's own market share is required; everything else is optional and
// contributes only when present.
func Assess(in Inputs, at time.Time) (Result, error) {
	if in.MarketShare <= 0 {
		return Result{}, fmt.Errorf("market share is required and must be positive")
	}
	if in.MarketShare > constants.MaxSharePercent {
		return Result{}, fmt.Errorf("market share cannot exceed 100%% (%.1f%%)", in.MarketShare)
	}

	var factors []Factor
	total := 0

	add := func(name, rating string, score int) {
		factors = append(factors, Factor{Name: name, Rating: rating, Score: score})
		total += score
	}

	switch {
	case in.MarketShare >= 50:
		add("Market Share", "High", 3)
	case in.MarketShare >= 30:
		add("Market Share", "Medium", 2)
	default:
		add("Market Share", "Low", 1)
	}

	if in.HHI > 0 {
		switch {
		case in.HHI >= constants.HHIModerateUpperBound:
			add("Market Concentration (HHI)", "High", 3)
		case in.HHI >= constants.HHILowUpperBound:
			add("Market Concentration (HHI)", "Medium", 2)
		default:
			add("Market Concentration (HHI)", "Low", 1)
		}
	}

	if len(in.RivalShares) > 0 {
		rivals := in.RivalShares
		if len(rivals) > 3 {
			rivals = rivals[:3]
		}
		var topThree float64
		for _, share := range rivals {
			topThree += share
		}
		switch {
		case topThree >= 80:
			add("Rival Concentration", "High", 2)
		case topThree >= 60:
			add("Rival Concentration", "Medium", 1)
		default:
			add("Rival Concentration", "Low", 0)
		}
	}

	if in.VerticalIntegration {
		add("Vertical Integration", "Present", 2)
	} else {
		add("Vertical Integration", "Absent", 0)
	}

	if in.NetworkEffects {
		add("Network Effects", "Present", 2)
	} else {
		add("Network Effects", "Absent", 0)
	}

	switch in.EntryBarriers {
	case BarrierHigh:
		add("Entry Barriers", "High", 2)
	case BarrierMedium:
		add("Entry Barriers", "Medium", 1)
	case BarrierLow, "":
		add("Entry Barriers", "Low", 0)
	default:
		return Result{}, fmt.Errorf("unrecognized entry barrier level %q", in.EntryBarriers)
	}

	level, description := levelFor(total)

	return Result{
		Factors:      factors,
		TotalScore:   total,
		MaxScore:     constants.DominanceMaxScore,
		Level:        level,
		Description:  description,
		CalculatedAt: at,
	}, nil
}

func levelFor(score int) (RiskLevel, string) {
	switch {
	case score >= constants.DominanceHighMinScore:
		return RiskHigh, "Significant dominance concerns - immediate legal review recommended"
	case score >= constants.DominanceMediumMinScore:
		return RiskMedium, "Moderate dominance concerns - consider legal consultation"
	default:
		return RiskLow, "Low dominance concerns - continue monitoring"
	}
}
