// Package report renders calculation results into exportable documents.
// A Document is a title plus ordered sections; each section's content is a
// key-value mapping, a table, a flat list, or free text. Renderers exist
// for PDF, XLSX, and (for tabular data) CSV.
package report

import (
	"fmt"
	"time"

	"github.com/t4p/competition-toolkit/pkg/compliance"
	"github.com/t4p/competition-toolkit/pkg/constants"
	"github.com/t4p/competition-toolkit/pkg/dominance"
	"github.com/t4p/competition-toolkit/pkg/format"
	"github.com/t4p/competition-toolkit/pkg/hhi"
	"github.com/t4p/competition-toolkit/pkg/mathutil"
	"github.com/t4p/competition-toolkit/pkg/merger"
)

// KeyValue is one labeled figure in a summary section.
type KeyValue struct {
	Key   string
	Value string
}

// Table is a uniform grid with a header row.
type Table struct {
	Header []string
	Rows   [][]string
}

// Section is one report block. Exactly one content field should be set.
type Section struct {
	Heading   string
	KeyValues []KeyValue
	Table     *Table
	List      []string
	Text      string
}

// Document is a complete report ready for rendering.
type Document struct {
	Title       string
	GeneratedAt time.Time
	Sections    []Section
}

// HHIDocument assembles the export document for an HHI calculation:
// summary, per-firm shares, calculation method, and interpretation.
func HHIDocument(r hhi.Report) Document {
	rows := make([][]string, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = []string{
			row.Firm,
			format.Percent(row.SharePercent),
			fmt.Sprintf("%.4f", row.SquaredShare),
			format.Index(row.Contribution),
		}
	}

	return Document{
		Title:       "HHI Calculation Report",
		GeneratedAt: r.Summary.CalculatedAt,
		Sections: []Section{
			{
				Heading: "Summary",
				KeyValues: []KeyValue{
					{"HHI Value", format.Index(r.Summary.HHI)},
					{"Concentration Level", r.Summary.Description},
					{"Interpretation Band", string(r.Summary.Band)},
					{"Number of Firms", fmt.Sprintf("%d", r.Summary.FirmCount)},
					{"Total Market Share", format.Percent(r.Summary.TotalShare)},
					{"Calculation Date", r.Summary.CalculatedAt.Format(constants.ReportTimeLayout)},
				},
			},
			{
				Heading: "Market Shares",
				Table: &Table{
					Header: []string{"Firm", "Market Share (%)", "Squared Share", "Contribution to HHI"},
					Rows:   rows,
				},
			},
			{
				Heading: "Calculation Method",
				KeyValues: []KeyValue{
					{"Formula", "HHI = Σ (Market Share)² × 10,000"},
					{"Result", format.Index(r.Summary.HHI)},
					{"Interpretation", r.Summary.Description},
				},
			},
			{
				Heading: "Interpretation",
				Text: fmt.Sprintf("HHI of %s indicates %s market concentration.",
					format.Index(r.Summary.HHI), bandAdjective(r.Summary.Band)),
			},
		},
	}
}

func bandAdjective(band hhi.Band) string {
	switch band {
	case hhi.BandLow:
		return "low"
	case hhi.BandModerate:
		return "moderate"
	default:
		return "high"
	}
}

// MergerDocument assembles the export document for a threshold assessment.
func MergerDocument(a merger.Assessment) Document {
	rows := make([][]string, len(a.Parties))
	for i, party := range a.Parties {
		rows[i] = []string{
			party.Name,
			party.Role,
			format.CurrencyExact(party.Original, party.OriginalCurrency),
			format.CurrencyExact(party.Converted, a.Thresholds.Currency),
		}
	}

	return Document{
		Title:       "Merger Threshold Report",
		GeneratedAt: a.CalculatedAt,
		Sections: []Section{
			{
				Heading: "Summary",
				KeyValues: []KeyValue{
					{"Verdict", a.Verdict()},
					{"Global Threshold Met", passFail(a.GlobalThresholdMet)},
					{"Local Threshold Met", passFail(a.LocalThresholdMet)},
					{"Total Buyer Turnover", format.Currency(a.TotalBuyerTurnover, a.Thresholds.Currency)},
					{"Total Target Turnover", format.Currency(a.TotalTargetTurnover, a.Thresholds.Currency)},
					{"Combined Turnover", format.Currency(a.CombinedTurnover, a.Thresholds.Currency)},
					{"Calculation Date", a.CalculatedAt.Format(constants.ReportTimeLayout)},
				},
			},
			{
				Heading: "Parties and Turnovers",
				Table: &Table{
					Header: []string{"Party", "Type", "Original Amount", "Converted Amount"},
					Rows:   rows,
				},
			},
			{
				Heading: "Thresholds Applied",
				KeyValues: []KeyValue{
					{"Global Threshold", format.Currency(a.Thresholds.Global, a.Thresholds.Currency)},
					{"Local Threshold", format.Currency(a.Thresholds.Local, a.Thresholds.Currency)},
				},
			},
		},
	}
}

func passFail(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}

// ComplianceDocument assembles the export document for a checklist result.
func ComplianceDocument(r compliance.Result) Document {
	rows := make([][]string, len(r.Categories))
	for i, category := range r.Categories {
		rows[i] = []string{category.Category, fmt.Sprintf("%.1f", category.Score), string(category.Level)}
	}

	return Document{
		Title:       "Compliance Assessment Report",
		GeneratedAt: r.CalculatedAt,
		Sections: []Section{
			{
				Heading: "Summary",
				KeyValues: []KeyValue{
					{"Total Risk Score", fmt.Sprintf("%.1f", r.TotalScore)},
					{"Maximum Score", fmt.Sprintf("%.0f", r.MaxScore)},
					{"Score Percentage", format.Percent(mathutil.CalculatePercentage(r.TotalScore, r.MaxScore))},
					{"Risk Level", string(r.Level)},
					{"Risk Description", r.Description},
					{"Questions Answered", fmt.Sprintf("%d", r.AnsweredCount)},
					{"Assessment Date", r.CalculatedAt.Format(constants.ReportTimeLayout)},
				},
			},
			{
				Heading: "Risk by Category",
				Table: &Table{
					Header: []string{"Category", "Risk Score", "Risk Level"},
					Rows:   rows,
				},
			},
			{
				Heading: "Recommendations",
				List:    r.Recommendations,
			},
		},
	}
}

// DominanceDocument assembles the export document for a risk assessment.
func DominanceDocument(r dominance.Result) Document {
	rows := make([][]string, len(r.Factors))
	for i, factor := range r.Factors {
		rows[i] = []string{factor.Name, factor.Rating, fmt.Sprintf("%d", factor.Score)}
	}

	return Document{
		Title:       "Dominance Risk Report",
		GeneratedAt: r.CalculatedAt,
		Sections: []Section{
			{
				Heading: "Summary",
				KeyValues: []KeyValue{
					{"Risk Score", fmt.Sprintf("%d", r.TotalScore)},
					{"Maximum Score", fmt.Sprintf("%d", r.MaxScore)},
					{"Risk Level", string(r.Level)},
					{"Risk Description", r.Description},
					{"Assessment Date", r.CalculatedAt.Format(constants.ReportTimeLayout)},
				},
			},
			{
				Heading: "Risk Factor Analysis",
				Table: &Table{
					Header: []string{"Risk Factor", "Rating", "Score"},
					Rows:   rows,
				},
			},
			{
				Heading: "Interpretation",
				Text:    r.Description,
			},
		},
	}
}
