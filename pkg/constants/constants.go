// Package constants provides shared constants for the competition toolkit.
package constants

// HHI interpretation band boundaries. Bands are half-open: a value equal to
// an upper bound falls into the next band.
const (
	// HHILowUpperBound is the exclusive upper bound of the low band.
	HHILowUpperBound = 1500.0

	// HHIModerateUpperBound is the exclusive upper bound of the moderate band.
	HHIModerateUpperBound = 2500.0

	// HHIMax is the theoretical maximum of the index (single-firm monopoly).
	HHIMax = 10000.0

	// HHIChartUpperBound caps the band-position chart axis; values above it
	// would squash the low band visually.
	HHIChartUpperBound = 5000.0
)

// Share validation constants
const (
	// ShareSumTolerance absorbs floating-point accumulation when comparing
	// a share sum against 100.
	ShareSumTolerance = 1e-6

	// MaxSharePercent is the largest share a single firm may hold.
	MaxSharePercent = 100.0

	// PercentageMultiplier is used for percentage conversions.
	PercentageMultiplier = 100.0

	// MinFirms is the smallest meaningful market for an HHI calculation.
	MinFirms = 2

	// MaxFirms is the largest market size accepted by the form UI.
	MaxFirms = 20
)

// Merger notification thresholds (Turkish Competition Authority values;
// update before production use).
const (
	// DefaultGlobalThreshold is the combined-turnover threshold in TRY.
	DefaultGlobalThreshold = 500_000_000.0

	// DefaultLocalThreshold is the single-party turnover threshold in TRY.
	DefaultLocalThreshold = 50_000_000.0

	// DefaultThresholdCurrency is the currency the thresholds are denominated in.
	DefaultThresholdCurrency = "TRY"
)

// SupportedCurrencies lists the currency codes accepted for turnover inputs.
var SupportedCurrencies = []string{"TRY", "EUR", "USD"}

// Currency client defaults
const (
	// DefaultRateAPIBaseURL is the exchange-rate provider endpoint prefix.
	DefaultRateAPIBaseURL = "https://open.er-api.com/v6/latest"

	// DefaultRateTimeoutSeconds bounds a single rate fetch.
	DefaultRateTimeoutSeconds = 10

	// DefaultRateCacheTTLSeconds is how long a fetched rate stays fresh (1 hour).
	DefaultRateCacheTTLSeconds = 3600
)

// Compliance checklist scoring cutoffs.
const (
	// ComplianceLowMaxScore is the inclusive upper bound of the low risk level.
	ComplianceLowMaxScore = 5.0

	// ComplianceMediumMaxScore is the inclusive upper bound of the medium risk level.
	ComplianceMediumMaxScore = 15.0

	// SometimesWeightFactor scales a question weight for a "sometimes" answer.
	SometimesWeightFactor = 0.5
)

// Dominance risk scoring cutoffs.
const (
	// DominanceHighMinScore is the score at which overall risk becomes high.
	DominanceHighMinScore = 8

	// DominanceMediumMinScore is the score at which overall risk becomes medium.
	DominanceMediumMinScore = 5

	// DominanceMaxScore is the largest achievable risk score: market share 3,
	// HHI 3, rival concentration 2, vertical integration 2, network effects 2,
	// entry barriers 2.
	DominanceMaxScore = 14
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI.
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (256 KB).
	DefaultMaxBodySizeBytes int64 = 256 * 1024
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name.
	DefaultConfigFile = "toolkit.yaml"

	// DefaultHistoryDirectory is where per-tool history logs are written.
	DefaultHistoryDirectory = "data"

	// DefaultRecentLimit is the default size of a recent-history listing.
	DefaultRecentLimit = 5
)

// History module names, also used as history file prefixes.
const (
	ModuleHHI        = "hhi_calculator"
	ModuleMerger     = "merger_calculator"
	ModuleCompliance = "compliance_checklist"
	ModuleDominance  = "dominance_checker"
)

// ReportTimeLayout is the timestamp format for report headers and summaries.
const ReportTimeLayout = "2006-01-02 15:04:05"
