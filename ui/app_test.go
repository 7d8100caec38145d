package ui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"goqval/internal"
	"goqval/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	return NewApp(config.SummaryConfig{}, internal.NewLogger(internal.LogLevelError))
}

func postJSON(t *testing.T, a *App, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	a := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestCreateSummary(t *testing.T) {
	a := newTestApp(t)

	body := `{
		"call": "qvalue(p = pvals)",
		"pi0": 0.8,
		"pvalues": [0.001, 0.02, 0.2, null],
		"qvalues": [0.009, 0.03, 0.25, null],
		"lfdr":    [0.005, 0.009, 0.3, null],
		"thresholds": [0.01, 0.05],
		"digits": 2
	}`
	rec := postJSON(t, a, "/api/summaries", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		ReportID string `json:"report_id"`
		Report   struct {
			FormattedPi0    string `json:"formatted_pi0"`
			ValidHypotheses int    `json:"valid_hypotheses"`
			Table           struct {
				PValueCounts []int `json:"pvalue_counts"`
				QValueCounts []int `json:"qvalue_counts"`
				LFDRCounts   []int `json:"lfdr_counts"`
			} `json:"table"`
		} `json:"report"`
		Rendered string `json:"rendered"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.ReportID)
	assert.Equal(t, "0.8", resp.Report.FormattedPi0)
	assert.Equal(t, 3, resp.Report.ValidHypotheses)
	assert.Equal(t, []int{1, 2}, resp.Report.Table.PValueCounts)
	assert.Equal(t, []int{1, 2}, resp.Report.Table.QValueCounts)
	assert.Equal(t, []int{2, 2}, resp.Report.Table.LFDRCounts)
	assert.Contains(t, resp.Rendered, "Cumulative number of significant calls:")
	assert.Contains(t, resp.Rendered, "local FDR")
}

func TestCreateSummary_DefaultsApplied(t *testing.T) {
	a := newTestApp(t)

	body := `{
		"call": "qvalue(p = pvals)",
		"pi0": 0.8,
		"pvalues": [0.001],
		"qvalues": [0.009],
		"lfdr":    [0.005]
	}`
	rec := postJSON(t, a, "/api/summaries", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Report struct {
			Table struct {
				Thresholds []float64 `json:"thresholds"`
			} `json:"table"`
		} `json:"report"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Report.Table.Thresholds, 7)
}

func TestCreateSummary_InvalidInput(t *testing.T) {
	a := newTestApp(t)

	// qvalues shorter than pvalues
	body := `{
		"pi0": 0.8,
		"pvalues": [0.001, 0.02],
		"qvalues": [0.009],
		"lfdr":    [0.005, 0.009]
	}`
	rec := postJSON(t, a, "/api/summaries", body)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_INPUT")
}

func TestCreateSummary_MissingPi0(t *testing.T) {
	a := newTestApp(t)

	body := `{
		"pvalues": [0.001],
		"qvalues": [0.009],
		"lfdr":    [0.005]
	}`
	rec := postJSON(t, a, "/api/summaries", body)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCreateSummary_MalformedBody(t *testing.T) {
	a := newTestApp(t)

	rec := postJSON(t, a, "/api/summaries", `{"pvalues": "nope"`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "BAD_REQUEST")
}
