package app

import (
	"context"
	"testing"

	"goqval/domain/core"
	"goqval/domain/qvalue"
	"goqval/internal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *internal.Logger {
	return internal.NewLogger(internal.LogLevelError)
}

func validResult() *qvalue.AnalysisResult {
	return &qvalue.AnalysisResult{
		Call:    "qvalue(p = pvals)",
		Pi0:     qvalue.FloatOf(0.75),
		PValues: qvalue.Floats(0.001, 0.04, 0.5),
		QValues: qvalue.Floats(0.003, 0.06, 0.5),
		LFDR:    qvalue.Floats(0.002, 0.09, 0.7),
	}
}

func TestSummarize_AppliesDefaults(t *testing.T) {
	s := NewSignificanceSummarizer(testLogger())

	res, err := s.Summarize(context.Background(), SummaryRequest{Result: validResult()})
	require.NoError(t, err)

	assert.False(t, res.ReportID.String() == "")
	assert.False(t, res.GeneratedAt.IsZero())
	assert.Equal(t, qvalue.DefaultThresholds(), res.Report.Table.Thresholds)
	assert.Equal(t, qvalue.DefaultDigits, res.Report.Digits)
}

func TestSummarize_ServiceOptions(t *testing.T) {
	s := NewSignificanceSummarizer(testLogger(),
		WithDefaultDigits(4),
		WithDefaultThresholds([]float64{0.05}),
	)

	res, err := s.Summarize(context.Background(), SummaryRequest{Result: validResult()})
	require.NoError(t, err)

	assert.Equal(t, []float64{0.05}, res.Report.Table.Thresholds)
	assert.Equal(t, 4, res.Report.Digits)
}

func TestSummarize_RequestOverridesDefaults(t *testing.T) {
	s := NewSignificanceSummarizer(testLogger())

	res, err := s.Summarize(context.Background(), SummaryRequest{
		Result:     validResult(),
		Thresholds: []float64{0.5, 0.01},
		Digits:     5,
	})
	require.NoError(t, err)

	assert.Equal(t, []float64{0.5, 0.01}, res.Report.Table.Thresholds)
	assert.Equal(t, 5, res.Report.Digits)
}

func TestSummarize_PropagatesInvalidInput(t *testing.T) {
	s := NewSignificanceSummarizer(testLogger())

	broken := validResult()
	broken.QValues = broken.QValues[:1]

	_, err := s.Summarize(context.Background(), SummaryRequest{Result: broken})
	require.Error(t, err)
	assert.True(t, core.IsInvalidInputError(err))
}

func TestSummarize_CancelledContext(t *testing.T) {
	s := NewSignificanceSummarizer(testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Summarize(ctx, SummaryRequest{Result: validResult()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSummarizeBatch(t *testing.T) {
	s := NewSignificanceSummarizer(testLogger())

	reqs := []SummaryRequest{
		{Result: validResult()},
		{Result: validResult(), Thresholds: []float64{1}},
		{Result: validResult(), Digits: 3},
	}

	results, err := s.SummarizeBatch(context.Background(), reqs)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Request order is preserved.
	assert.Equal(t, qvalue.DefaultThresholds(), results[0].Report.Table.Thresholds)
	assert.Equal(t, []float64{1}, results[1].Report.Table.Thresholds)
	assert.Equal(t, 3, results[2].Report.Digits)

	// Distinct report identities per entry.
	assert.NotEqual(t, results[0].ReportID, results[1].ReportID)
}

func TestSummarizeBatch_FailsAsUnit(t *testing.T) {
	s := NewSignificanceSummarizer(testLogger())

	broken := validResult()
	broken.Pi0 = qvalue.Missing()

	results, err := s.SummarizeBatch(context.Background(), []SummaryRequest{
		{Result: validResult()},
		{Result: broken},
	})
	require.Error(t, err)
	assert.True(t, core.IsInvalidInputError(err))
	assert.Nil(t, results)
}

func TestSummarizeBatch_Empty(t *testing.T) {
	s := NewSignificanceSummarizer(testLogger())

	results, err := s.SummarizeBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}
