// Package hhi implements the Herfindahl-Hirschman market-concentration
// engine: share validation, optional normalization, the index formula,
// banded interpretation, and the report structures derived from them.
package hhi

// FirmShare pairs a firm name with its market share in percent.
type FirmShare struct {
	Name  string  `json:"name"`
	Share float64 `json:"share"`
}

// MarketShareSet is an ordered collection of firm shares. Order is
// significant and preserved through normalization and report shaping.
type MarketShareSet []FirmShare

// Sum returns the total of all shares in the set.
func (s MarketShareSet) Sum() float64 {
	var total float64
	for _, fs := range s {
		total += fs.Share
	}
	return total
}

// Names returns the firm names in insertion order.
func (s MarketShareSet) Names() []string {
	names := make([]string, len(s))
	for i, fs := range s {
		names[i] = fs.Name
	}
	return names
}

// Values returns the share values in insertion order.
func (s MarketShareSet) Values() []float64 {
	values := make([]float64, len(s))
	for i, fs := range s {
		values[i] = fs.Share
	}
	return values
}
