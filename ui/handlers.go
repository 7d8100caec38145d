package ui

import (
	"encoding/json"
	"net/http"

	"goqval/adapters/render"
	"goqval/app"
	"goqval/domain/core"
	"goqval/domain/qvalue"
	apperrors "goqval/internal/errors"
)

// summaryRequest is the POST /api/summaries payload: an analysis result plus
// optional presentation parameters.
type summaryRequest struct {
	qvalue.AnalysisResult
	Thresholds []float64 `json:"thresholds,omitempty"`
	Digits     int       `json:"digits,omitempty"`
}

// summaryResponse carries the structured report and its console rendering,
// so API consumers lose nothing relative to the CLI surface.
type summaryResponse struct {
	app.SummaryResult
	Rendered string `json:"rendered"`
}

type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) handleCreateSummary(w http.ResponseWriter, r *http.Request) {
	var req summaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, apperrors.BadRequest("request body is not a valid analysis result"))
		return
	}

	result, err := a.summarizer.Summarize(r.Context(), app.SummaryRequest{
		Result:     &req.AnalysisResult,
		Thresholds: req.Thresholds,
		Digits:     req.Digits,
	})
	if err != nil {
		if core.IsInvalidInputError(err) {
			a.writeError(w, apperrors.WithCode(apperrors.CodeInvalidInput, err))
			return
		}
		a.logger.Error("summary failed: %v", err)
		a.writeError(w, apperrors.InternalError("summary failed"))
		return
	}

	writeJSON(w, http.StatusOK, summaryResponse{
		SummaryResult: *result,
		Rendered:      render.Text(result.Report),
	})
}

// writeError maps application error codes onto HTTP statuses
func (a *App) writeError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case apperrors.CodeBadRequest:
		status = http.StatusBadRequest
	case apperrors.CodeInvalidInput:
		status = http.StatusUnprocessableEntity
	case apperrors.CodeNotFound:
		status = http.StatusNotFound
	}
	writeJSON(w, status, errorResponse{Code: code, Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
