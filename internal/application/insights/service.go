package insights

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/Resilience-Insights/internal/domain/casestudy"
	"github.com/turtacn/Resilience-Insights/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Resilience-Insights/internal/intelligence/knowledgegraph"
	"github.com/turtacn/Resilience-Insights/internal/intelligence/patterns"
	"github.com/turtacn/Resilience-Insights/internal/intelligence/similarity"
	"github.com/turtacn/Resilience-Insights/pkg/errors"
)

const (
	DefaultFetchTimeout   = 10 * time.Second
	DefaultOverallTimeout = 60 * time.Second
	DefaultMaxRecords     = 500
	DefaultCacheTTL       = 15 * time.Minute
	DefaultSimilarTopN    = 5

	cacheKeyPrefix = "analysis"
)

// Service is the analysis entry point used by the HTTP, CLI and worker
// layers.
type Service interface {
	// Analyze never returns an error: failures are reported in the Result.
	Analyze(ctx context.Context, opts Options) *Result
	FindSimilar(ctx context.Context, req SimilarRequest) (*SimilarResponse, error)
	BuildGraph(ctx context.Context, req GraphRequest) (*GraphResponse, error)
}

// SimilarResponse ranks the corpus against one case study.
type SimilarResponse struct {
	TargetID         string             `json:"targetId"`
	Matches          []similarity.Match `json:"matches"`
	TotalCaseStudies int                `json:"totalCaseStudies"`
}

// Config tunes the service. Zero values select the defaults.
type Config struct {
	FetchTimeout      time.Duration
	OverallTimeout    time.Duration
	DefaultMaxRecords int
	ClusterCount      int

	// Seed fixes cluster seeding when a request carries none. Zero means
	// time-based.
	Seed int64

	// Debug exposes raw error chains in results.
	Debug bool

	CacheTTL time.Duration
	Regions  patterns.RegionTable
}

func (c Config) withDefaults() Config {
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = DefaultFetchTimeout
	}
	if c.OverallTimeout <= 0 {
		c.OverallTimeout = DefaultOverallTimeout
	}
	if c.DefaultMaxRecords <= 0 {
		c.DefaultMaxRecords = DefaultMaxRecords
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = DefaultCacheTTL
	}
	return c
}

// Deps are the collaborators of the service. Store and Logger are required.
type Deps struct {
	Store   casestudy.ContentStore
	Cache   ReportCache
	Events  EventPublisher
	Graphs  GraphExporter
	Metrics Metrics
	Logger  logging.Logger
}

type serviceImpl struct {
	cfg     Config
	store   casestudy.ContentStore
	cache   ReportCache
	events  EventPublisher
	graphs  GraphExporter
	metrics Metrics
	logger  logging.Logger
	runners map[StageName]stageFunc
	now     func() time.Time
}

// NewService wires the orchestrator.
func NewService(cfg Config, deps Deps) (Service, error) {
	if deps.Store == nil {
		return nil, errors.InvalidParam("content store is required")
	}
	if deps.Logger == nil {
		return nil, errors.InvalidParam("logger is required")
	}
	return newService(cfg, deps), nil
}

func newService(cfg Config, deps Deps) *serviceImpl {
	cfg = cfg.withDefaults()
	if deps.Metrics == nil {
		deps.Metrics = noopMetrics{}
	}
	return &serviceImpl{
		cfg:     cfg,
		store:   deps.Store,
		cache:   deps.Cache,
		events:  deps.Events,
		graphs:  deps.Graphs,
		metrics: deps.Metrics,
		logger:  deps.Logger.Named("insights"),
		runners: defaultRunners(patterns.NewDetector(cfg.Regions)),
		now:     time.Now,
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Analyze
// ─────────────────────────────────────────────────────────────────────────────

// Analyze runs one analysis. Input errors and content-store failures yield a
// failed Result with no report. Stage failures and the overall deadline yield
// a report whose Stages mark what did not complete.
func (s *serviceImpl) Analyze(ctx context.Context, opts Options) *Result {
	started := s.now()
	logger := logging.FromContext(ctx, s.logger)

	opts, err := opts.Normalize()
	if err != nil {
		return s.fail(logger, AnalysisFull, started, err)
	}
	if opts.MaxRecords == 0 {
		opts.MaxRecords = s.cfg.DefaultMaxRecords
	}
	if opts.ClusterCount == 0 {
		opts.ClusterCount = s.cfg.ClusterCount
	}

	cacheKey := s.cacheKey(opts)
	if cached := s.lookup(ctx, cacheKey, logger); cached != nil {
		return cached
	}

	runCtx, cancel := context.WithTimeout(ctx, s.cfg.OverallTimeout)
	defer cancel()

	records, err := s.snapshot(runCtx, opts.MaxRecords)
	if err != nil {
		return s.fail(logger, opts.AnalysisType, started, err)
	}

	run := newAnalysisRun(records, opts, s.rng(opts))
	s.runIndependent(runCtx, run, logger)
	s.runGraph(runCtx, run, logger)
	run.close()

	report := s.assemble(run, started)
	result := &Result{Success: true, Report: report, Visualization: buildVisualization(run)}

	if !report.Metadata.Partial {
		s.remember(ctx, cacheKey, result, logger)
	}
	s.publish(ctx, report, logger)
	s.metrics.RecordAnalysis(opts.AnalysisType, true, s.now().Sub(started))
	logger.Info("analysis completed",
		logging.String("report_id", report.ReportID),
		logging.String("analysis_type", string(opts.AnalysisType)),
		logging.Int("case_studies", len(records)),
		logging.Bool("partial", report.Metadata.Partial),
		logging.Int64("duration_ms", report.Metadata.DurationMs))
	return result
}

func (s *serviceImpl) assemble(run *analysisRun, started time.Time) *Report {
	stages := run.stageReports()
	partial := false
	for _, st := range stages {
		if st.Status == StageFailed || st.Status == StageTimedOut {
			partial = true
		}
	}
	report := &Report{
		ReportID:        uuid.NewString(),
		PatternAnalysis: run.pattern,
		OutcomeAnalysis: run.outcome,
		ClusterAnalysis: run.cluster,
		Summary:         buildSummary(run),
		Recommendations: buildRecommendations(run),
		Stages:          stages,
		Metadata: Metadata{
			TotalCaseStudies: len(run.records),
			AnalysisDate:     s.now().UTC(),
			AnalysisType:     run.opts.AnalysisType,
			DurationMs:       s.now().Sub(started).Milliseconds(),
			Partial:          partial,
		},
	}
	if run.themes != nil {
		report.ThematicAnalysis = &run.themes.analysis
	}
	return report
}

// fetch bounds the content-store call by the fetch timeout. A store that
// ignores ctx is abandoned when the bound expires.
func (s *serviceImpl) fetch(ctx context.Context, limit int) ([]casestudy.Record, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
	defer cancel()

	type fetched struct {
		records []casestudy.Record
		err     error
	}
	ch := make(chan fetched, 1)
	go func() {
		records, err := s.store.FetchCaseStudies(fetchCtx, limit)
		ch <- fetched{records: records, err: err}
	}()

	select {
	case f := <-ch:
		if f.err == nil {
			return f.records, nil
		}
		if errors.IsUpstreamTimeout(f.err) {
			return nil, f.err
		}
		if errors.Is(f.err, context.DeadlineExceeded) {
			return nil, errors.UpstreamTimeout("content store timed out").WithCause(f.err)
		}
		return nil, errors.Wrap(f.err, errors.ErrCodeContentStoreFailed, "failed to fetch case studies")
	case <-fetchCtx.Done():
		return nil, errors.UpstreamTimeout(fmt.Sprintf("content store did not respond within %s", s.cfg.FetchTimeout)).
			WithCause(fetchCtx.Err())
	}
}

func (s *serviceImpl) rng(opts Options) *rand.Rand {
	switch {
	case opts.Seed != nil:
		return rand.New(rand.NewSource(*opts.Seed))
	case s.cfg.Seed != 0:
		return rand.New(rand.NewSource(s.cfg.Seed))
	default:
		return rand.New(rand.NewSource(time.Now().UnixNano()))
	}
}

func (s *serviceImpl) cacheKey(opts Options) string {
	seed := "auto"
	switch {
	case opts.Seed != nil:
		seed = fmt.Sprint(*opts.Seed)
	case s.cfg.Seed != 0:
		seed = fmt.Sprint(s.cfg.Seed)
	}
	return fmt.Sprintf("%s:%s:%d:%d:%s", cacheKeyPrefix, opts.AnalysisType, opts.MaxRecords, opts.ClusterCount, seed)
}

func (s *serviceImpl) lookup(ctx context.Context, key string, logger logging.Logger) *Result {
	if s.cache == nil {
		return nil
	}
	var cached Result
	err := s.cache.Get(ctx, key, &cached)
	switch {
	case err == nil && cached.Report != nil:
		s.metrics.RecordCacheLookup(true)
		logger.Debug("serving cached analysis", logging.String("key", key))
		return &cached
	case err != nil && !errors.IsNotFound(err):
		logger.Warn("report cache lookup failed", logging.String("key", key), logging.Err(err))
	}
	s.metrics.RecordCacheLookup(false)
	return nil
}

func (s *serviceImpl) remember(ctx context.Context, key string, result *Result, logger logging.Logger) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, result, s.cfg.CacheTTL); err != nil {
		logger.Warn("failed to cache analysis", logging.String("key", key), logging.Err(err))
	}
}

func (s *serviceImpl) publish(ctx context.Context, report *Report, logger logging.Logger) {
	if s.events == nil {
		return
	}
	evt := &ReportGeneratedEvent{
		ReportID:         report.ReportID,
		AnalysisType:     report.Metadata.AnalysisType,
		TotalCaseStudies: report.Metadata.TotalCaseStudies,
		Summary:          report.Summary,
		Stages:           report.Stages,
		GeneratedAt:      report.Metadata.AnalysisDate,
	}
	if err := s.events.PublishReportGenerated(ctx, evt); err != nil {
		logger.Warn("failed to publish report event", logging.String("report_id", report.ReportID), logging.Err(err))
	}
}

func (s *serviceImpl) fail(logger logging.Logger, t AnalysisType, started time.Time, err error) *Result {
	s.metrics.RecordAnalysis(t, false, s.now().Sub(started))
	logger.Error("analysis failed", logging.String("analysis_type", string(t)), logging.Err(err))
	return &Result{Success: false, Error: errorMessage(err, s.cfg.Debug), Code: errors.GetCode(err)}
}

// errorMessage returns the message of the outermost AppError, or the full
// chain when debug is set.
func errorMessage(err error, debug bool) string {
	if debug {
		return err.Error()
	}
	var ae *errors.AppError
	if errors.As(err, &ae) {
		return ae.Message
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "deadline exceeded"
	}
	return errors.DefaultMessageForCode(errors.ErrCodeInternal)
}

// ─────────────────────────────────────────────────────────────────────────────
// Similarity and graph
// ─────────────────────────────────────────────────────────────────────────────

// FindSimilar ranks the corpus against req.TargetID.
func (s *serviceImpl) FindSimilar(ctx context.Context, req SimilarRequest) (*SimilarResponse, error) {
	if req.TargetID == "" {
		return nil, errors.InputError("targetId is required")
	}
	if req.TopN < 0 || req.MaxRecords < 0 {
		return nil, errors.InputError("topN and maxRecords must not be negative")
	}
	if req.TopN == 0 {
		req.TopN = DefaultSimilarTopN
	}
	records, err := s.snapshot(ctx, req.MaxRecords)
	if err != nil {
		return nil, err
	}
	matches, err := similarity.NewEngine(records).FindSimilar(req.TargetID, req.TopN)
	if err != nil {
		return nil, err
	}
	return &SimilarResponse{TargetID: req.TargetID, Matches: matches, TotalCaseStudies: len(records)}, nil
}

// BuildGraph builds the knowledge graph of the corpus and optionally exports
// it to the graph store.
func (s *serviceImpl) BuildGraph(ctx context.Context, req GraphRequest) (*GraphResponse, error) {
	if req.Threshold < 0 || req.Threshold >= 1 {
		return nil, errors.InputError("threshold must be in [0, 1)")
	}
	if req.MaxRecords < 0 {
		return nil, errors.InputError("maxRecords must not be negative")
	}
	if req.Export && s.graphs == nil {
		return nil, errors.New(errors.ErrCodeServiceUnavailable, "graph export is not configured")
	}
	records, err := s.snapshot(ctx, req.MaxRecords)
	if err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithTimeout(ctx, s.cfg.OverallTimeout)
	defer cancel()
	g, err := knowledgegraph.Build(runCtx, records, knowledgegraph.Options{
		SimilarityThreshold: req.Threshold,
		FullSimilarity:      req.Full,
	})
	if err != nil {
		return nil, err
	}
	resp := &GraphResponse{Graph: g, Stats: knowledgegraph.ComputeStats(g)}

	if req.Export {
		if err := s.graphs.SaveGraph(ctx, g); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeGraphExportFailed, "failed to export knowledge graph")
		}
		resp.Exported = true
		logging.FromContext(ctx, s.logger).Info("knowledge graph exported",
			logging.Int("nodes", resp.Stats.NodeCount),
			logging.Int("edges", resp.Stats.EdgeCount))
	}
	return resp, nil
}

func (s *serviceImpl) snapshot(ctx context.Context, maxRecords int) ([]casestudy.Record, error) {
	if maxRecords == 0 {
		maxRecords = s.cfg.DefaultMaxRecords
	}
	records, err := s.fetch(ctx, maxRecords)
	if err != nil {
		return nil, err
	}
	records = casestudy.Limit(records, maxRecords)
	if err := casestudy.ValidateCorpus(records); err != nil {
		return nil, err
	}
	return records, nil
}

//Personal.AI order the ending
