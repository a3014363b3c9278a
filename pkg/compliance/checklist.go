// Package compliance implements the competition-law self-assessment
// checklist: a fixed table of weighted questions scored into a risk level
// with per-category rollups and canned recommendations.
package compliance

import (
	"fmt"
	"time"

	"github.com/t4p/competition-toolkit/pkg/constants"
)

// Answer is one of the three accepted responses to a checklist question.
type Answer string

const (
	AnswerNo        Answer = "no"
	AnswerSometimes Answer = "sometimes"
	AnswerYes       Answer = "yes"
)

// Question is one self-assessment item. Weight is the points contributed by
// a "yes" answer; "sometimes" contributes half.
type Question struct {
	ID       string  `json:"id"`
	Text     string  `json:"text"`
	Category string  `json:"category"`
	Weight   float64 `json:"weight"`
}

// Questions is the assessment table. Order matters for display.
var Questions = []Question{
	{"pricing_practices", "Do you engage in price fixing or coordinate prices with competitors?", "Pricing", 3},
	{"market_sharing", "Do you agree with competitors to divide markets or customers?", "Market Division", 3},
	{"bid_rigging", "Do you coordinate bidding with competitors in tenders?", "Bid Rigging", 3},
	{"information_exchange", "Do you exchange competitively sensitive information with competitors?", "Information Exchange", 2},
	{"exclusive_dealing", "Do you require customers to purchase exclusively from you?", "Exclusive Dealing", 2},
	{"tying_bundling", "Do you tie the sale of one product to another?", "Tying & Bundling", 2},
	{"predatory_pricing", "Do you set prices below cost to eliminate competitors?", "Predatory Pricing", 2},
	{"refusal_to_deal", "Do you refuse to deal with certain customers without objective justification?", "Refusal to Deal", 1},
	{"discriminatory_pricing", "Do you charge different prices to similar customers without justification?", "Price Discrimination", 1},
	{"resale_price_maintenance", "Do you control the resale prices of your products?", "Resale Price Maintenance", 2},
}

// RiskLevel buckets a total score.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// CategoryScore is the rollup for one question category.
type CategoryScore struct {
	Category string    `json:"category"`
	Score    float64   `json:"score"`
	Level    RiskLevel `json:"level"`
}

// Result is the outcome of a completed assessment.
type Result struct {
	TotalScore      float64         `json:"totalScore"`
	MaxScore        float64         `json:"maxScore"`
	Level           RiskLevel       `json:"level"`
	Description     string          `json:"description"`
	Categories      []CategoryScore `json:"categories"`
	Recommendations []string        `json:"recommendations"`
	AnsweredCount   int             `json:"answeredCount"`
	CalculatedAt    time.Time       `json:"calculatedAt"`
}

// MaxScore is the highest achievable total over the question table.
func MaxScore() float64 {
	var max float64
	for _, q := range Questions {
		max += q.Weight
	}
	return max
}

func answerPoints(answer Answer, weight float64) (float64, error) {
	switch answer {
	case AnswerYes:
		return weight, nil
	case AnswerSometimes:
		return weight * constants.SometimesWeightFactor, nil
	case AnswerNo:
		return 0, nil
	default:
		return 0, fmt.Errorf("unrecognized answer %q", answer)
	}
}

func levelFor(score float64) (RiskLevel, string) {
	switch {
	case score <= constants.ComplianceLowMaxScore:
		return RiskLow, "Low risk - Continue monitoring"
	case score <= constants.ComplianceMediumMaxScore:
		return RiskMedium, "Medium risk - Review practices"
	default:
		return RiskHigh, "High risk - Seek legal counsel"
	}
}

func categoryLevel(score float64) RiskLevel {
	switch {
	case score > 5:
		return RiskHigh
	case score > 2:
		return RiskMedium
	default:
		return RiskLow
	}
}

// Score evaluates a complete set of answers keyed by question ID. Every
// question in the table must be answered; unknown IDs and missing answers
// are rejected so a partially filled form cannot produce a misleading score.
func Score(answers map[string]Answer, at time.Time) (Result, error) {
	if len(answers) != len(Questions) {
		return Result{}, fmt.Errorf("expected %d answers, got %d", len(Questions), len(answers))
	}

	var total float64
	categoryTotals := make(map[string]float64)
	categoryOrder := []string{}

	for _, q := range Questions {
		answer, ok := answers[q.ID]
		if !ok {
			return Result{}, fmt.Errorf("missing answer for question %q", q.ID)
		}
		points, err := answerPoints(answer, q.Weight)
		if err != nil {
			return Result{}, fmt.Errorf("question %q: %w", q.ID, err)
		}
		total += points
		if _, seen := categoryTotals[q.Category]; !seen {
			categoryOrder = append(categoryOrder, q.Category)
		}
		categoryTotals[q.Category] += points
	}

	level, description := levelFor(total)

	categories := make([]CategoryScore, 0, len(categoryOrder))
	for _, category := range categoryOrder {
		score := categoryTotals[category]
		categories = append(categories, CategoryScore{
			Category: category,
			Score:    score,
			Level:    categoryLevel(score),
		})
	}

	return Result{
		TotalScore:      total,
		MaxScore:        MaxScore(),
		Level:           level,
		Description:     description,
		Categories:      categories,
		Recommendations: recommendationsFor(level),
		AnsweredCount:   len(answers),
		CalculatedAt:    at,
	}, nil
}

func recommendationsFor(level RiskLevel) []string {
	switch level {
	case RiskHigh:
		return []string{
			"Immediately consult with qualified competition law counsel",
			"Review all business practices for potential competition law violations",
			"Implement comprehensive compliance training for all staff",
			"Consider voluntary disclosure of potential issues",
			"Establish ongoing monitoring and reporting procedures",
		}
	case RiskMedium:
		return []string{
			"Schedule consultation with competition law expert",
			"Review high-risk areas identified in the assessment",
			"Implement targeted compliance training",
			"Establish regular compliance monitoring",
			"Stay informed of competition law developments",
		}
	default:
		return []string{
			"Continue current compliance practices",
			"Stay informed of competition law developments",
			"Conduct regular self-assessments",
			"Maintain documentation of compliance efforts",
			"Consider periodic legal review",
		}
	}
}
