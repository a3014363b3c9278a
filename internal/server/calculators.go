package server

import (
	"fmt"
	"net/http"

	"github.com/t4p/competition-toolkit/pkg/compliance"
	"github.com/t4p/competition-toolkit/pkg/constants"
	"github.com/t4p/competition-toolkit/pkg/dominance"
	"github.com/t4p/competition-toolkit/pkg/hhi"
	"github.com/t4p/competition-toolkit/pkg/merger"
)

type firmPayload struct {
	Name  string  `json:"name" validate:"max=120"`
	Share float64 `json:"share" validate:"min=0,max=100"`
}

type hhiRequest struct {
	Firms     []firmPayload `json:"firms" validate:"required,min=2,max=20,dive"`
	Normalize bool          `json:"normalize"`
	// Chart toggles default to on when omitted.
	ShowCharts             *bool `json:"showCharts,omitempty"`
	ShowConcentrationChart *bool `json:"showConcentrationChart,omitempty"`
}

type hhiResponse struct {
	Rows       []hhi.ReportRow   `json:"rows"`
	Summary    hhi.Summary       `json:"summary"`
	Shares     *hhi.ChartSeries  `json:"shares,omitempty"`
	Bands      []hhi.BandSegment `json:"bands,omitempty"`
	Marker     *float64          `json:"marker,omitempty"`
	Normalized bool              `json:"normalized"`
	// Set only when normalization ran: the share sum as submitted, and the
	// informational note shown alongside the result.
	OriginalTotalShare *float64 `json:"originalTotalShare,omitempty"`
	Note               string   `json:"note,omitempty"`
}

func enabled(toggle *bool) bool {
	return toggle == nil || *toggle
}

func (h *handler) handleHHI(w http.ResponseWriter, r *http.Request) {
	var req hhiRequest
	if err := h.decode(w, r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), "server.handleHHI")
		return
	}

	report, originalTotal, normalized, errMsg := h.computeHHI(req)
	if errMsg != "" {
		h.respondError(w, http.StatusUnprocessableEntity, errMsg, "server.handleHHI")
		return
	}

	resp := hhiResponse{Rows: report.Rows, Summary: report.Summary, Normalized: normalized}
	if normalized {
		resp.OriginalTotalShare = &originalTotal
		resp.Note = fmt.Sprintf("Shares normalized to sum to 100%% (original sum: %.1f%%)", originalTotal)
	}
	if enabled(req.ShowCharts) {
		shares := report.Shares
		resp.Shares = &shares
	}
	if enabled(req.ShowConcentrationChart) {
		resp.Bands = report.Bands
		marker := report.Marker
		resp.Marker = &marker
	}

	h.recordHistory(constants.ModuleHHI,
		map[string]interface{}{"firms": len(req.Firms), "shares": req.Firms, "normalize": req.Normalize},
		map[string]interface{}{"hhi": report.Summary.HHI, "band": string(report.Summary.Band)},
	)
	h.writeJSON(w, http.StatusOK, resp)
}

// computeHHI runs the validate / normalize / calculate / interpret pipeline.
// The second return is the share sum as submitted, captured before
// normalization rescales it; a non-empty final return is a domain
// validation failure.
func (h *handler) computeHHI(req hhiRequest) (hhi.Report, float64, bool, string) {
	shares := make(hhi.MarketShareSet, len(req.Firms))
	for i, firm := range req.Firms {
		shares[i] = hhi.FirmShare{Name: firm.Name, Share: firm.Share}
	}

	if result := hhi.Validate(shares); !result.Valid {
		return hhi.Report{}, 0, false, result.Reason
	}

	originalTotal := shares.Sum()
	normalized := false
	if req.Normalize {
		shares = hhi.Normalize(shares)
		normalized = true
	}

	interp := hhi.Interpret(hhi.Calculate(shares))
	return hhi.BuildReport(shares, interp, h.now()), originalTotal, normalized, ""
}

type partyPayload struct {
	Name     string  `json:"name" validate:"max=120"`
	Turnover float64 `json:"turnover" validate:"min=0"`
	Currency string  `json:"currency" validate:"required,oneof=TRY EUR USD"`
}

type mergerRequest struct {
	Buyers     []partyPayload `json:"buyers" validate:"dive"`
	Targets    []partyPayload `json:"targets" validate:"dive"`
	Year       int            `json:"year,omitempty" validate:"omitempty,min=1994,max=2100"`
	Country    string         `json:"country,omitempty" validate:"max=60"`
	ManualRate *float64       `json:"manualRate,omitempty" validate:"omitempty,gt=0"`
}

type mergerResponse struct {
	merger.Assessment
	Year       int    `json:"year,omitempty"`
	Country    string `json:"country,omitempty"`
	RateSource string `json:"rateSource"`
}

// rateSource reports where conversion rates came from: "manual" for an
// explicit override, "live" when any turnover crossed currencies, "none"
// when everything was already in the threshold currency.
func (h *handler) rateSource(req mergerRequest) string {
	if req.ManualRate != nil {
		return "manual"
	}
	for _, p := range append(append([]partyPayload{}, req.Buyers...), req.Targets...) {
		if p.Currency != h.thresholds.Currency {
			return "live"
		}
	}
	return "none"
}

func (h *handler) handleMerger(w http.ResponseWriter, r *http.Request) {
	var req mergerRequest
	if err := h.decode(w, r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), "server.handleMerger")
		return
	}

	assessment, err := h.computeMerger(r, req)
	if err != nil {
		h.respondError(w, http.StatusUnprocessableEntity, err.Error(), "server.handleMerger")
		return
	}

	h.recordHistory(constants.ModuleMerger,
		map[string]interface{}{
			"buyers":  len(req.Buyers),
			"targets": len(req.Targets),
			"year":    req.Year,
			"country": req.Country,
		},
		map[string]interface{}{
			"notifiable":       assessment.Notifiable,
			"combinedTurnover": assessment.CombinedTurnover,
		},
	)
	h.writeJSON(w, http.StatusOK, mergerResponse{
		Assessment: assessment,
		Year:       req.Year,
		Country:    req.Country,
		RateSource: h.rateSource(req),
	})
}

func (h *handler) computeMerger(r *http.Request, req mergerRequest) (merger.Assessment, error) {
	toParties := func(payloads []partyPayload) []merger.Party {
		parties := make([]merger.Party, len(payloads))
		for i, p := range payloads {
			parties[i] = merger.Party{Name: p.Name, Turnover: p.Turnover, Currency: p.Currency}
		}
		return parties
	}

	convert := h.rates.ConverterFor(r.Context(), req.ManualRate)
	return merger.Assess(toParties(req.Buyers), toParties(req.Targets), h.thresholds, convert, h.now())
}

type complianceRequest struct {
	Answers map[string]string `json:"answers" validate:"required,dive,oneof=no sometimes yes"`
}

func (h *handler) handleComplianceQuestions(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"questions": compliance.Questions,
		"maxScore":  compliance.MaxScore(),
	})
}

func (h *handler) handleCompliance(w http.ResponseWriter, r *http.Request) {
	var req complianceRequest
	if err := h.decode(w, r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), "server.handleCompliance")
		return
	}

	result, err := h.computeCompliance(req)
	if err != nil {
		h.respondError(w, http.StatusUnprocessableEntity, err.Error(), "server.handleCompliance")
		return
	}

	h.recordHistory(constants.ModuleCompliance,
		map[string]interface{}{"answers": len(req.Answers)},
		map[string]interface{}{"level": string(result.Level), "totalScore": result.TotalScore},
	)
	h.writeJSON(w, http.StatusOK, result)
}

func (h *handler) computeCompliance(req complianceRequest) (compliance.Result, error) {
	answers := make(map[string]compliance.Answer, len(req.Answers))
	for id, answer := range req.Answers {
		answers[id] = compliance.Answer(answer)
	}
	return compliance.Score(answers, h.now())
}

type dominanceRequest struct {
	MarketShare         float64   `json:"marketShare" validate:"required,gt=0,lte=100"`
	HHI                 float64   `json:"hhi" validate:"omitempty,min=0,max=10000"`
	RivalShares         []float64 `json:"rivalShares" validate:"max=3,dive,min=0,max=100"`
	VerticalIntegration bool      `json:"verticalIntegration"`
	NetworkEffects      bool      `json:"networkEffects"`
	EntryBarriers       string    `json:"entryBarriers" validate:"omitempty,oneof=low medium high"`
}

func (h *handler) handleDominance(w http.ResponseWriter, r *http.Request) {
	var req dominanceRequest
	if err := h.decode(w, r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), "server.handleDominance")
		return
	}

	result, err := h.computeDominance(req)
	if err != nil {
		h.respondError(w, http.StatusUnprocessableEntity, err.Error(), "server.handleDominance")
		return
	}

	h.recordHistory(constants.ModuleDominance,
		map[string]interface{}{"marketShare": req.MarketShare, "hhi": req.HHI},
		map[string]interface{}{"level": string(result.Level), "totalScore": result.TotalScore},
	)
	h.writeJSON(w, http.StatusOK, result)
}

func (h *handler) computeDominance(req dominanceRequest) (dominance.Result, error) {
	return dominance.Assess(dominance.Inputs{
		MarketShare:         req.MarketShare,
		HHI:                 req.HHI,
		RivalShares:         req.RivalShares,
		VerticalIntegration: req.VerticalIntegration,
		NetworkEffects:      req.NetworkEffects,
		EntryBarriers:       dominance.BarrierLevel(req.EntryBarriers),
	}, h.now())
}
