package hhi

import (
	"time"

	"github.com/t4p/competition-toolkit/pkg/constants"
	"github.com/t4p/competition-toolkit/pkg/mathutil"
)

// ReportRow is the per-firm breakdown of an HHI calculation. Rows are
// one-to-one with the share set, in insertion order.
type ReportRow struct {
	Firm         string  `json:"firm"`
	SharePercent float64 `json:"sharePercent"`
	SquaredShare float64 `json:"squaredShare"`
	Contribution float64 `json:"contribution"`
}

// Summary captures the headline figures of a calculation.
type Summary struct {
	HHI          float64   `json:"hhi"`
	Band         Band      `json:"band"`
	Description  string    `json:"description"`
	FirmCount    int       `json:"firmCount"`
	TotalShare   float64   `json:"totalShare"`
	CalculatedAt time.Time `json:"calculatedAt"`
}

// ChartSeries is a (label, value) series handed to a charting collaborator.
type ChartSeries struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// BandSegment describes one concentration band for the band-position chart.
type BandSegment struct {
	Label string  `json:"label"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Color string  `json:"color"`
}

// Report is the display- and export-ready shape of a completed calculation.
// The core hands these structures over; it renders no pixels itself.
type Report struct {
	Rows    []ReportRow   `json:"rows"`
	Summary Summary       `json:"summary"`
	Shares  ChartSeries   `json:"shares"`
	Bands   []BandSegment `json:"bands"`
	Marker  float64       `json:"marker"`
}

// BandSegments returns the three band boundary tuples used by the
// band-position visual. The high segment is capped at the chart axis bound;
// the marker value itself is never clamped.
func BandSegments() []BandSegment {
	return []BandSegment{
		{Label: "Low", Lower: 0, Upper: constants.HHILowUpperBound, Color: "green"},
		{Label: "Moderate", Lower: constants.HHILowUpperBound, Upper: constants.HHIModerateUpperBound, Color: "orange"},
		{Label: "High", Lower: constants.HHIModerateUpperBound, Upper: constants.HHIChartUpperBound, Color: "red"},
	}
}

// BuildReport assembles rows, summary, and chart series from a validated
// (and optionally normalized) share set and its interpretation. It assumes
// valid input and has no error paths of its own.
func BuildReport(shares MarketShareSet, interp Interpretation, at time.Time) Report {
	rows := make([]ReportRow, len(shares))
	for i, fs := range shares {
		squared := mathutil.SquaredFraction(fs.Share)
		rows[i] = ReportRow{
			Firm:         fs.Name,
			SharePercent: fs.Share,
			SquaredShare: squared,
			Contribution: squared * constants.HHIMax,
		}
	}

	return Report{
		Rows: rows,
		Summary: Summary{
			HHI:          interp.Value,
			Band:         interp.Band,
			Description:  interp.Description,
			FirmCount:    len(shares),
			TotalShare:   shares.Sum(),
			CalculatedAt: at,
		},
		Shares: ChartSeries{Labels: shares.Names(), Values: shares.Values()},
		Bands:  BandSegments(),
		Marker: interp.Value,
	}
}
