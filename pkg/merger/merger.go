// Package merger implements the merger notification threshold assessment:
// turnovers are converted to the threshold currency and compared against the
// global (combined) and local (per-side) notification thresholds.
package merger

import (
	"fmt"
	"time"

	"github.com/t4p/competition-toolkit/pkg/constants"
)

// Converter converts an amount from one currency to another. Implementations
// may consult live rates or a manual override; they return an error when no
// rate is available.
type Converter func(amount float64, from, to string) (float64, error)

// Party is one transaction participant with its reported turnover.
type Party struct {
	Name     string  `json:"name"`
	Turnover float64 `json:"turnover"`
	Currency string  `json:"currency"`
}

// Thresholds holds the notification thresholds in their denominated currency.
type Thresholds struct {
	Global   float64 `json:"global"`
	Local    float64 `json:"local"`
	Currency string  `json:"currency"`
}

// DefaultThresholds returns the currently configured authority thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Global:   constants.DefaultGlobalThreshold,
		Local:    constants.DefaultLocalThreshold,
		Currency: constants.DefaultThresholdCurrency,
	}
}

// ConvertedParty is a party with its turnover normalized to the threshold
// currency.
type ConvertedParty struct {
	Name             string  `json:"name"`
	Role             string  `json:"role"`
	Original         float64 `json:"original"`
	OriginalCurrency string  `json:"originalCurrency"`
	Converted        float64 `json:"converted"`
}

// Assessment is the outcome of a threshold calculation.
type Assessment struct {
	Parties             []ConvertedParty `json:"parties"`
	TotalBuyerTurnover  float64          `json:"totalBuyerTurnover"`
	TotalTargetTurnover float64          `json:"totalTargetTurnover"`
	CombinedTurnover    float64          `json:"combinedTurnover"`
	GlobalThresholdMet  bool             `json:"globalThresholdMet"`
	LocalThresholdMet   bool             `json:"localThresholdMet"`
	Notifiable          bool             `json:"notifiable"`
	Thresholds          Thresholds       `json:"thresholds"`
	CalculatedAt        time.Time        `json:"calculatedAt"`
}

// Verdict returns the display string for the notifiability outcome.
func (a Assessment) Verdict() string {
	if a.Notifiable {
		return "NOTIFIABLE - Meets notification thresholds"
	}
	return "NOT NOTIFIABLE - Below notification thresholds"
}

// Assess converts all party turnovers to the threshold currency and applies
// the two-part notification test: the global test compares the combined
// turnover against the global threshold, the local test passes when either
// side's total reaches the local threshold. Both must pass for the
// transaction to be notifiable.
func Assess(buyers, targets []Party, thresholds Thresholds, convert Converter, at time.Time) (Assessment, error) {
	if len(buyers) == 0 && len(targets) == 0 {
		return Assessment{}, fmt.Errorf("at least one party with turnover data is required")
	}

	assessment := Assessment{Thresholds: thresholds, CalculatedAt: at}

	convertSide := func(parties []Party, role string) (float64, error) {
		var total float64
		for i, party := range parties {
			name := party.Name
			if name == "" {
				name = fmt.Sprintf("%s %d", role, i+1)
			}

			converted, err := convert(party.Turnover, party.Currency, thresholds.Currency)
			if err != nil {
				return 0, fmt.Errorf("failed to convert turnover for %s (%s): %w", name, party.Currency, err)
			}

			assessment.Parties = append(assessment.Parties, ConvertedParty{
				Name:             name,
				Role:             role,
				Original:         party.Turnover,
				OriginalCurrency: party.Currency,
				Converted:        converted,
			})
			total += converted
		}
		return total, nil
	}

	var err error
	if assessment.TotalBuyerTurnover, err = convertSide(buyers, "Buyer"); err != nil {
		return Assessment{}, err
	}
	if assessment.TotalTargetTurnover, err = convertSide(targets, "Target"); err != nil {
		return Assessment{}, err
	}

	assessment.CombinedTurnover = assessment.TotalBuyerTurnover + assessment.TotalTargetTurnover
	assessment.GlobalThresholdMet = assessment.CombinedTurnover >= thresholds.Global
	assessment.LocalThresholdMet = assessment.TotalBuyerTurnover >= thresholds.Local ||
		assessment.TotalTargetTurnover >= thresholds.Local
	assessment.Notifiable = assessment.GlobalThresholdMet && assessment.LocalThresholdMet

	return assessment, nil
}
