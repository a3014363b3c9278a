package server

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/t4p/competition-toolkit/internal/report"
)

type rendering struct {
	contentType string
	extension   string
	render      func(report.Document) ([]byte, error)
}

var renderings = map[string]rendering{
	"pdf":  {"application/pdf", "pdf", report.Document.PDF},
	"csv":  {"text/csv", "csv", report.Document.CSV},
	"xlsx": {"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx", report.Document.XLSX},
}

// handleExport re-runs a calculation from the posted payload and streams the
// result as a downloadable document. The tool comes from the path, the
// format from the query string.
func (h *handler) handleExport(w http.ResponseWriter, r *http.Request) {
	tool := chi.URLParam(r, "tool")

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "pdf"
	}
	rend, ok := renderings[format]
	if !ok {
		h.respondError(w, http.StatusBadRequest,
			fmt.Sprintf("unsupported export format %q; supported formats are pdf, csv, xlsx", format),
			"server.handleExport")
		return
	}

	doc, err := h.exportDocument(w, r, tool)
	if err != nil {
		return // exportDocument already responded
	}

	data, err := rend.render(doc)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError,
			fmt.Sprintf("failed to render %s export: %v", format, err), "server.handleExport")
		return
	}

	filename := fmt.Sprintf("%s_report.%s", tool, rend.extension)
	w.Header().Set("Content-Type", rend.contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Error("failed to write export response", zap.Error(err))
	}
}

// exportDocument decodes the tool-specific payload, runs the calculation,
// and assembles its document. It writes the error response itself so the
// caller can simply bail out.
func (h *handler) exportDocument(w http.ResponseWriter, r *http.Request, tool string) (report.Document, error) {
	const op = "server.handleExport"

	switch tool {
	case "hhi":
		var req hhiRequest
		if err := h.decode(w, r, &req); err != nil {
			h.respondError(w, http.StatusBadRequest, err.Error(), op)
			return report.Document{}, err
		}
		rep, _, _, errMsg := h.computeHHI(req)
		if errMsg != "" {
			h.respondError(w, http.StatusUnprocessableEntity, errMsg, op)
			return report.Document{}, fmt.Errorf("%s", errMsg)
		}
		return report.HHIDocument(rep), nil

	case "merger":
		var req mergerRequest
		if err := h.decode(w, r, &req); err != nil {
			h.respondError(w, http.StatusBadRequest, err.Error(), op)
			return report.Document{}, err
		}
		assessment, err := h.computeMerger(r, req)
		if err != nil {
			h.respondError(w, http.StatusUnprocessableEntity, err.Error(), op)
			return report.Document{}, err
		}
		return report.MergerDocument(assessment), nil

	case "compliance":
		var req complianceRequest
		if err := h.decode(w, r, &req); err != nil {
			h.respondError(w, http.StatusBadRequest, err.Error(), op)
			return report.Document{}, err
		}
		result, err := h.computeCompliance(req)
		if err != nil {
			h.respondError(w, http.StatusUnprocessableEntity, err.Error(), op)
			return report.Document{}, err
		}
		return report.ComplianceDocument(result), nil

	case "dominance":
		var req dominanceRequest
		if err := h.decode(w, r, &req); err != nil {
			h.respondError(w, http.StatusBadRequest, err.Error(), op)
			return report.Document{}, err
		}
		result, err := h.computeDominance(req)
		if err != nil {
			h.respondError(w, http.StatusUnprocessableEntity, err.Error(), op)
			return report.Document{}, err
		}
		return report.DominanceDocument(result), nil

	default:
		err := fmt.Errorf("unknown tool %q", tool)
		h.respondError(w, http.StatusNotFound, err.Error(), op)
		return report.Document{}, err
	}
}
