package qvalue

import (
	"math"
	"strconv"

	"goqval/domain/core"
)

// Row labels of the cumulative-count table, in their fixed display order.
const (
	RowPValue = "p-value"
	RowQValue = "q-value"
	RowLFDR   = "local FDR"
)

// RowLabels returns the table rows in display order
func RowLabels() []string {
	return []string{RowPValue, RowQValue, RowLFDR}
}

// ThresholdTable holds, for each caller-supplied threshold, the number of
// p-values, q-values, and local-FDR estimates strictly below it. Columns keep
// the caller's threshold order; rows keep the fixed label order.
type ThresholdTable struct {
	Thresholds   []float64 `json:"thresholds"`
	PValueCounts []int     `json:"pvalue_counts"`
	QValueCounts []int     `json:"qvalue_counts"`
	LFDRCounts   []int     `json:"lfdr_counts"`
}

// Row returns the counts for a row label, or nil for an unknown label
func (t *ThresholdTable) Row(label string) []int {
	switch label {
	case RowPValue:
		return t.PValueCounts
	case RowQValue:
		return t.QValueCounts
	case RowLFDR:
		return t.LFDRCounts
	}
	return nil
}

// SummaryReport is the structured output of a summarization. It carries both
// the raw pi0 and its display form so callers rendering the report lose no
// information.
type SummaryReport struct {
	Call         string         `json:"call"`
	Pi0          float64        `json:"pi0"`
	FormattedPi0 string         `json:"formatted_pi0"`
	Digits       int            `json:"digits"`
	Table        ThresholdTable `json:"table"`

	TestedHypotheses int `json:"tested_hypotheses"` // total positions in the result
	ValidHypotheses  int `json:"valid_hypotheses"`  // positions with a present p-value
}

// Summarize builds the cumulative significance table for a result.
//
// A hypothesis participates only when its p-value is present; a missing
// p-value excludes that position from the q-value and local-FDR rows as
// well, even when those entries exist. Counting uses strict inequality: a
// score exactly equal to a threshold is not significant at that threshold.
//
// Thresholds are counted in caller order and need not be sorted, unique, or
// inside [0, 1]; each must be finite. The result itself is never mutated.
func Summarize(result *AnalysisResult, thresholds []float64, digits int) (*SummaryReport, error) {
	if result == nil {
		return nil, core.ErrInvalidInput
	}
	if err := result.Validate(); err != nil {
		return nil, err
	}
	if digits <= 0 {
		return nil, core.NewBadDigitsError(digits)
	}
	for i, t := range thresholds {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil, core.NewBadThresholdError(i, t)
		}
	}

	// Validity mask is driven by p-value presence alone.
	pv := make([]float64, 0, len(result.PValues))
	qv := make([]float64, 0, len(result.PValues))
	lf := make([]float64, 0, len(result.PValues))
	for i, p := range result.PValues {
		if !p.Present() {
			continue
		}
		pv = append(pv, p.Value)
		// Entries missing after the mask decode to NaN and never satisfy
		// the strict comparison below.
		qv = append(qv, result.QValues[i].Float64())
		lf = append(lf, result.LFDR[i].Float64())
	}

	table := ThresholdTable{
		Thresholds:   append([]float64(nil), thresholds...),
		PValueCounts: make([]int, len(thresholds)),
		QValueCounts: make([]int, len(thresholds)),
		LFDRCounts:   make([]int, len(thresholds)),
	}
	for i, t := range thresholds {
		table.PValueCounts[i] = countBelow(pv, t)
		table.QValueCounts[i] = countBelow(qv, t)
		table.LFDRCounts[i] = countBelow(lf, t)
	}

	return &SummaryReport{
		Call:             result.Call,
		Pi0:              result.Pi0.Value,
		FormattedPi0:     FormatPi0(result.Pi0.Value, digits),
		Digits:           digits,
		Table:            table,
		TestedHypotheses: len(result.PValues),
		ValidHypotheses:  len(pv),
	}, nil
}

// countBelow counts scores strictly less than the threshold. NaN entries
// never compare true.
func countBelow(scores []float64, threshold float64) int {
	n := 0
	for _, s := range scores {
		if s < threshold {
			n++
		}
	}
	return n
}

// FormatPi0 renders pi0 to the requested number of significant digits
func FormatPi0(pi0 float64, digits int) string {
	return strconv.FormatFloat(pi0, 'g', digits, 64)
}
