package qvalue

import (
	"bytes"
	"math"
	"strconv"

	"goqval/domain/core"
)

// Float is a floating-point observation that may be missing. Missing entries
// are first-class rather than encoded through a sentinel bit pattern, so the
// contract survives JSON round-trips (missing <-> null).
type Float struct {
	Value float64
	Valid bool
}

// FloatOf wraps a present float value
func FloatOf(v float64) Float {
	return Float{Value: v, Valid: true}
}

// Missing returns an absent float value
func Missing() Float {
	return Float{}
}

// Present reports whether the value carries usable data. A value marked valid
// but holding NaN counts as missing, matching the upstream convention of
// flagging untestable hypotheses with NaN.
func (f Float) Present() bool {
	return f.Valid && !math.IsNaN(f.Value)
}

// Float64 returns the value, or NaN when missing
func (f Float) Float64() float64 {
	if !f.Present() {
		return math.NaN()
	}
	return f.Value
}

var jsonNull = []byte("null")

// MarshalJSON encodes missing values as null
func (f Float) MarshalJSON() ([]byte, error) {
	if !f.Present() {
		return jsonNull, nil
	}
	return []byte(strconv.FormatFloat(f.Value, 'g', -1, 64)), nil
}

// UnmarshalJSON decodes null as a missing value
func (f *Float) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		*f = Missing()
		return nil
	}
	v, err := strconv.ParseFloat(string(bytes.TrimSpace(data)), 64)
	if err != nil {
		return err
	}
	*f = FloatOf(v)
	return nil
}

// Floats wraps plain float64 values, mapping NaN to missing
func Floats(values ...float64) []Float {
	out := make([]Float, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			out[i] = Missing()
		} else {
			out[i] = FloatOf(v)
		}
	}
	return out
}

// AnalysisResult is the output of an upstream multiple-hypothesis estimation
// step. The three score arrays are index-aligned: position i in each refers
// to the same hypothesis. This package treats the result as read-only.
type AnalysisResult struct {
	ID   core.ResultID `json:"id,omitempty"`
	Call string        `json:"call"` // original invocation, display only

	Pi0     Float   `json:"pi0"` // estimated proportion of true nulls
	PValues []Float `json:"pvalues"`
	QValues []Float `json:"qvalues"`
	LFDR    []Float `json:"lfdr"`
}

// Validate enforces the structural invariants of an analysis result:
// the three score arrays must have equal length and pi0 must be present
// and inside [0, 1]. Violations surface as core.ErrInvalidInput.
func (r *AnalysisResult) Validate() error {
	n := len(r.PValues)
	if len(r.QValues) != n {
		return core.NewLengthMismatchError("qvalues", len(r.QValues), n)
	}
	if len(r.LFDR) != n {
		return core.NewLengthMismatchError("lfdr", len(r.LFDR), n)
	}
	if !r.Pi0.Present() {
		return core.ErrMissingPi0
	}
	if r.Pi0.Value < 0.0 || r.Pi0.Value > 1.0 {
		return core.NewPi0RangeError(r.Pi0.Value)
	}
	return nil
}

// DefaultThresholds returns the conventional significance cuts used when the
// caller does not supply their own.
func DefaultThresholds() []float64 {
	return []float64{0.0001, 0.001, 0.01, 0.025, 0.05, 0.10, 1}
}

// DefaultDigits is the pi0 display precision used when the caller does not
// supply one.
const DefaultDigits = 2
