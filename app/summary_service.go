package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"goqval/domain/core"
	"goqval/domain/qvalue"
	"goqval/internal"
)

// SignificanceSummarizer turns precomputed analysis results into summary
// reports. The summarization itself is pure; the service layer only adds
// defaults, identifiers, and logging.
type SignificanceSummarizer struct {
	logger *internal.Logger

	defaultDigits     int
	defaultThresholds []float64
}

// SummaryRequest defines the inputs for one summarization
type SummaryRequest struct {
	Result     *qvalue.AnalysisResult
	Thresholds []float64 // nil falls back to the service defaults
	Digits     int       // <= 0 falls back to the service defaults
}

// SummaryResult contains a report plus its service-level identity
type SummaryResult struct {
	ReportID    core.ReportID         `json:"report_id"`
	Report      *qvalue.SummaryReport `json:"report"`
	GeneratedAt core.Timestamp        `json:"generated_at"`
}

// Option configures a SignificanceSummarizer
type Option func(*SignificanceSummarizer)

// WithDefaultDigits overrides the pi0 display precision used when a request
// leaves Digits unset
func WithDefaultDigits(digits int) Option {
	return func(s *SignificanceSummarizer) {
		if digits > 0 {
			s.defaultDigits = digits
		}
	}
}

// WithDefaultThresholds overrides the significance cuts used when a request
// leaves Thresholds unset
func WithDefaultThresholds(thresholds []float64) Option {
	return func(s *SignificanceSummarizer) {
		if thresholds != nil {
			s.defaultThresholds = append([]float64(nil), thresholds...)
		}
	}
}

// NewSignificanceSummarizer creates a summarizer service
func NewSignificanceSummarizer(logger *internal.Logger, opts ...Option) *SignificanceSummarizer {
	if logger == nil {
		logger = internal.NewDefaultLogger()
	}
	s := &SignificanceSummarizer{
		logger:            logger,
		defaultDigits:     qvalue.DefaultDigits,
		defaultThresholds: qvalue.DefaultThresholds(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize produces a summary report for a single analysis result. The
// result is treated as read-only; a malformed result aborts with an
// invalid-input error before any table is produced.
func (s *SignificanceSummarizer) Summarize(ctx context.Context, req SummaryRequest) (*SummaryResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	thresholds := req.Thresholds
	if thresholds == nil {
		thresholds = s.defaultThresholds
	}
	digits := req.Digits
	if digits <= 0 {
		digits = s.defaultDigits
	}

	report, err := qvalue.Summarize(req.Result, thresholds, digits)
	if err != nil {
		s.logger.Warn("summarization rejected: %v", err)
		return nil, err
	}

	s.logger.Debug("summarized %d hypotheses (%d valid) across %d thresholds",
		report.TestedHypotheses, report.ValidHypotheses, len(report.Table.Thresholds))

	return &SummaryResult{
		ReportID:    core.ReportID(core.NewID()),
		Report:      report,
		GeneratedAt: core.Now(),
	}, nil
}

// SummarizeBatch summarizes independent results concurrently. Results come
// back in request order. The first failure cancels the remaining work and
// no partial batch is returned.
func (s *SignificanceSummarizer) SummarizeBatch(ctx context.Context, reqs []SummaryRequest) ([]*SummaryResult, error) {
	results := make([]*SummaryResult, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			res, err := s.Summarize(gctx, req)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
