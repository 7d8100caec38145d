// Package testkit synthesizes realistic analysis results for demos and tests.
// It plays the role of the upstream estimation step: p-values are drawn from
// a two-groups mixture, q-values come from Benjamini-Hochberg correction, and
// local FDR from the oracle posterior of the generating mixture.
package testkit

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"goqval/domain/core"
	"goqval/domain/qvalue"
)

// SyntheticConfig controls fixture generation
type SyntheticConfig struct {
	N           int     // number of hypotheses
	Pi0         float64 // proportion of true nulls in (0, 1]
	BetaAlpha   float64 // alternative p-value shape, Beta(alpha, 1) with alpha < 1
	MissingRate float64 // fraction of hypotheses flagged untestable
	Seed        int64
}

// DefaultSyntheticConfig returns a mixture that produces a visibly non-trivial
// significance table at the conventional cuts.
func DefaultSyntheticConfig() SyntheticConfig {
	return SyntheticConfig{
		N:         500,
		Pi0:       0.8,
		BetaAlpha: 0.15,
		Seed:      42,
	}
}

// NewSyntheticResult generates a deterministic analysis result from the
// given mixture. Null p-values are uniform on [0, 1]; alternatives follow
// Beta(alpha, 1), sampled by inverse CDF so the stream is reproducible from
// the seed alone.
func NewSyntheticResult(cfg SyntheticConfig) (*qvalue.AnalysisResult, error) {
	if cfg.N <= 0 {
		return nil, fmt.Errorf("N must be positive, got %d", cfg.N)
	}
	if cfg.Pi0 <= 0 || cfg.Pi0 > 1 {
		return nil, fmt.Errorf("Pi0 must be in (0, 1], got %v", cfg.Pi0)
	}
	if cfg.BetaAlpha <= 0 || cfg.BetaAlpha >= 1 {
		return nil, fmt.Errorf("BetaAlpha must be in (0, 1), got %v", cfg.BetaAlpha)
	}
	if cfg.MissingRate < 0 || cfg.MissingRate >= 1 {
		return nil, fmt.Errorf("MissingRate must be in [0, 1), got %v", cfg.MissingRate)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	alt := distuv.Beta{Alpha: cfg.BetaAlpha, Beta: 1}

	pvalues := make([]float64, cfg.N)
	for i := range pvalues {
		u := rng.Float64()
		if rng.Float64() < cfg.Pi0 {
			pvalues[i] = u // true null: uniform p-value
		} else {
			pvalues[i] = alt.Quantile(u)
		}
	}

	qvalues := benjaminiHochberg(pvalues)
	lfdr := oracleLFDR(pvalues, cfg.Pi0, alt)

	result := &qvalue.AnalysisResult{
		ID:      core.ResultID(core.NewID()),
		Call:    fmt.Sprintf("qvalue(p = synthetic(n = %d, pi0 = %g, seed = %d))", cfg.N, cfg.Pi0, cfg.Seed),
		Pi0:     qvalue.FloatOf(cfg.Pi0),
		PValues: qvalue.Floats(pvalues...),
		QValues: qvalue.Floats(qvalues...),
		LFDR:    qvalue.Floats(lfdr...),
	}

	if cfg.MissingRate > 0 {
		for i := range result.PValues {
			if rng.Float64() < cfg.MissingRate {
				result.PValues[i] = qvalue.Missing()
				result.QValues[i] = qvalue.Missing()
				result.LFDR[i] = qvalue.Missing()
			}
		}
	}

	return result, nil
}

// benjaminiHochberg computes BH q-values: q_(i) = min over j >= i of
// p_(j) * m / j, clamped to [0, 1], mapped back to input order.
func benjaminiHochberg(pvalues []float64) []float64 {
	m := len(pvalues)
	order := make([]int, m)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return pvalues[order[a]] < pvalues[order[b]]
	})

	qvalues := make([]float64, m)
	running := math.Inf(1)
	for rank := m; rank >= 1; rank-- {
		idx := order[rank-1]
		q := pvalues[idx] * float64(m) / float64(rank)
		if q < running {
			running = q
		}
		qvalues[idx] = math.Min(running, 1.0)
	}
	return qvalues
}

// oracleLFDR evaluates the true posterior null probability of the generating
// two-groups mixture: pi0 * f0(p) / (pi0 * f0(p) + (1 - pi0) * f1(p)), with
// a uniform null density and the Beta alternative.
func oracleLFDR(pvalues []float64, pi0 float64, alt distuv.Beta) []float64 {
	lfdr := make([]float64, len(pvalues))
	for i, p := range pvalues {
		f1 := alt.Prob(p)
		denom := pi0 + (1-pi0)*f1
		if denom <= 0 || math.IsInf(f1, 1) {
			lfdr[i] = 0
			continue
		}
		lfdr[i] = math.Min(pi0/denom, 1.0)
	}
	return lfdr
}

// ScoreSummary describes the distribution of one score array
type ScoreSummary struct {
	Present int
	Missing int
	Mean    float64
	Median  float64
	Min     float64
	Max     float64
}

// DescribeScores computes distribution diagnostics over the present entries
// of a score array.
func DescribeScores(values []qvalue.Float) (ScoreSummary, error) {
	present := make([]float64, 0, len(values))
	for _, v := range values {
		if v.Present() {
			present = append(present, v.Value)
		}
	}

	summary := ScoreSummary{
		Present: len(present),
		Missing: len(values) - len(present),
	}
	if len(present) == 0 {
		return summary, nil
	}

	var err error
	if summary.Mean, err = stats.Mean(present); err != nil {
		return summary, err
	}
	if summary.Median, err = stats.Median(present); err != nil {
		return summary, err
	}
	if summary.Min, err = stats.Min(present); err != nil {
		return summary, err
	}
	if summary.Max, err = stats.Max(present); err != nil {
		return summary, err
	}
	return summary, nil
}
