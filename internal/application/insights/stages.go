package insights

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/turtacn/Resilience-Insights/internal/domain/casestudy"
	"github.com/turtacn/Resilience-Insights/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Resilience-Insights/internal/intelligence/clustering"
	"github.com/turtacn/Resilience-Insights/internal/intelligence/common"
	"github.com/turtacn/Resilience-Insights/internal/intelligence/knowledgegraph"
	"github.com/turtacn/Resilience-Insights/internal/intelligence/outcomes"
	"github.com/turtacn/Resilience-Insights/internal/intelligence/patterns"
	"github.com/turtacn/Resilience-Insights/internal/intelligence/similarity"
	"github.com/turtacn/Resilience-Insights/internal/intelligence/textmining"
	"github.com/turtacn/Resilience-Insights/internal/intelligence/vectorizer"
	"github.com/turtacn/Resilience-Insights/pkg/errors"
)

const (
	topThemeCount       = 10
	documentKeywordsTop = 5
)

// stageFunc computes one stage. On success it returns a commit function that
// stores the output on the run; commit is called under the run lock.
type stageFunc func(ctx context.Context, run *analysisRun) (commit func(), err error)

// analysisRun holds the snapshot and the stage outputs of one request.
type analysisRun struct {
	records []casestudy.Record
	opts    Options
	rng     *rand.Rand

	mu      sync.Mutex
	closed  bool
	planned map[StageName]bool
	stages  map[StageName]*StageReport

	themes  *themeOutput
	pattern *patterns.Result
	outcome *OutcomeAnalysis
	cluster *clustering.Result
	graph   *knowledgegraph.Graph
	stats   *knowledgegraph.Stats
}

type themeOutput struct {
	analysis ThematicAnalysis
	corpus   *textmining.Corpus
	engine   *similarity.Engine
}

func newAnalysisRun(records []casestudy.Record, opts Options, rng *rand.Rand) *analysisRun {
	run := &analysisRun{
		records: records,
		opts:    opts,
		rng:     rng,
		planned: planStages(opts.AnalysisType),
		stages:  make(map[StageName]*StageReport, len(stageOrder)),
	}
	for _, name := range stageOrder {
		status := StageSkipped
		if run.planned[name] {
			status = StageTimedOut
		}
		run.stages[name] = &StageReport{Name: name, Status: status}
	}
	return run
}

// planStages maps an analysis type to the stages it runs.
func planStages(t AnalysisType) map[StageName]bool {
	switch t {
	case AnalysisThemes:
		return map[StageName]bool{StageTheme: true}
	case AnalysisPatterns:
		return map[StageName]bool{StagePattern: true}
	case AnalysisOutcomes:
		return map[StageName]bool{StageOutcome: true}
	case AnalysisGraph:
		return map[StageName]bool{StageTheme: true, StageGraph: true}
	default:
		return map[StageName]bool{StageTheme: true, StagePattern: true, StageOutcome: true, StageCluster: true, StageGraph: true}
	}
}

// finish records the end of a stage. Writes after close are discarded.
func (r *analysisRun) finish(name StageName, d time.Duration, commit func(), err error, debug bool) (StageStatus, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return "", false
	}
	rep := r.stages[name]
	rep.DurationMs = d.Milliseconds()
	switch {
	case err == nil:
		if commit != nil {
			commit()
		}
		rep.Status = StageCompleted
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		rep.Status = StageTimedOut
		rep.Error = errorMessage(err, debug)
	default:
		rep.Status = StageFailed
		rep.Error = errorMessage(err, debug)
	}
	return rep.Status, true
}

// close stops accepting stage output. Stages still running stay timed-out.
func (r *analysisRun) close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
}

func (r *analysisRun) stageReports() []StageReport {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]StageReport, 0, len(stageOrder))
	for _, name := range stageOrder {
		out = append(out, *r.stages[name])
	}
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// Execution
// ─────────────────────────────────────────────────────────────────────────────

// runIndependent executes the theme, pattern, outcome and cluster stages
// concurrently. A failed stage never cancels its siblings. When ctx expires
// first the run is closed and unfinished stages stay timed-out.
func (s *serviceImpl) runIndependent(ctx context.Context, run *analysisRun, logger logging.Logger) {
	g, gCtx := errgroup.WithContext(ctx)
	for _, name := range []StageName{StageTheme, StagePattern, StageOutcome, StageCluster} {
		if !run.planned[name] {
			continue
		}
		name, fn := name, s.runners[name]
		g.Go(func() error {
			s.executeStage(gCtx, run, name, fn, logger)
			return nil
		})
	}

	done := make(chan struct{})
	go func() {
		_ = g.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		run.close()
		logger.Warn("analysis deadline reached before all stages finished", logging.Err(ctx.Err()))
	}
}

// runGraph builds the knowledge graph once the independent stages joined.
func (s *serviceImpl) runGraph(ctx context.Context, run *analysisRun, logger logging.Logger) {
	if !run.planned[StageGraph] {
		return
	}
	run.mu.Lock()
	closed := run.closed
	run.mu.Unlock()
	if closed {
		return
	}
	s.executeStage(ctx, run, StageGraph, s.runners[StageGraph], logger)
}

func (s *serviceImpl) executeStage(ctx context.Context, run *analysisRun, name StageName, fn stageFunc, logger logging.Logger) {
	started := time.Now()
	commit, err := safeStage(ctx, run, name, fn)
	elapsed := time.Since(started)

	status, recorded := run.finish(name, elapsed, commit, err, s.cfg.Debug)
	if !recorded {
		logger.Warn("discarding stage output after deadline", logging.String("stage", string(name)))
		return
	}
	s.metrics.ObserveStage(name, status, elapsed)
	if err != nil {
		logger.Warn("analysis stage did not complete",
			logging.String("stage", string(name)),
			logging.String("status", string(status)),
			logging.Err(err))
		return
	}
	logger.Debug("analysis stage completed",
		logging.String("stage", string(name)),
		logging.Duration("elapsed", elapsed))
}

// safeStage turns a panicking stage into a StageFailed error.
func safeStage(ctx context.Context, run *analysisRun, name StageName, fn stageFunc) (commit func(), err error) {
	defer func() {
		if r := recover(); r != nil {
			commit = nil
			err = errors.StageFailed(string(name), fmt.Sprintf("stage panicked: %v", r))
		}
	}()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, errors.StageFailed(string(name), "no runner registered")
	}
	return fn(ctx, run)
}

// ─────────────────────────────────────────────────────────────────────────────
// Stage runners
// ─────────────────────────────────────────────────────────────────────────────

func defaultRunners(detector *patterns.Detector) map[StageName]stageFunc {
	return map[StageName]stageFunc{
		StageTheme:   themeStage,
		StagePattern: patternStage(detector),
		StageOutcome: outcomeStage,
		StageCluster: clusterStage,
		StageGraph:   graphStage,
	}
}

func themeStage(_ context.Context, run *analysisRun) (func(), error) {
	docs := make([]string, len(run.records))
	for i, r := range run.records {
		docs[i] = r.Text()
	}
	corpus := textmining.NewCorpus(docs)

	dims, keywords := common.Counter{}, common.Counter{}
	docKeywords := make(map[string][]textmining.KeywordScore, len(run.records))
	for i, r := range run.records {
		for d := range r.DimensionSet() {
			dims.Add(d)
		}
		seen := map[string]struct{}{}
		for _, kw := range r.Keywords {
			kw = vectorizer.NormalizeKeyword(kw)
			if _, dup := seen[kw]; dup || kw == "" {
				continue
			}
			seen[kw] = struct{}{}
			keywords.Add(kw)
		}
		docKeywords[r.ID] = corpus.DocumentKeywords(i, documentKeywordsTop)
	}

	out := &themeOutput{
		analysis: ThematicAnalysis{
			TopThemes:          corpus.CorpusKeywords(topThemeCount),
			DocumentKeywords:   docKeywords,
			DimensionFrequency: dims.Top(0, len(run.records)),
			KeywordFrequency:   keywords.Top(topThemeCount, len(run.records)),
		},
		corpus: corpus,
		engine: similarity.NewEngine(run.records),
	}
	return func() { run.themes = out }, nil
}

func patternStage(detector *patterns.Detector) stageFunc {
	return func(_ context.Context, run *analysisRun) (func(), error) {
		res := detector.Detect(run.records)
		return func() { run.pattern = &res }, nil
	}
}

func outcomeStage(_ context.Context, run *analysisRun) (func(), error) {
	std := outcomes.StandardizeOutcomes(run.records)
	out := &OutcomeAnalysis{
		Aggregate:           outcomes.AggregateOutcomes(std),
		Trends:              outcomes.TrendsFrom(std),
		RecordsWithOutcomes: std.RecordsWithOutcomes,
		SkippedMetrics:      std.Skipped,
	}
	return func() { run.outcome = out }, nil
}

func clusterStage(_ context.Context, run *analysisRun) (func(), error) {
	res, err := clustering.Run(run.records, clustering.Config{K: run.opts.ClusterCount, Rand: run.rng})
	if err != nil {
		return nil, err
	}
	return func() { run.cluster = res }, nil
}

// graphStage reuses the theme corpus and similarity engine when the theme
// stage completed and indexes the corpus itself otherwise.
func graphStage(ctx context.Context, run *analysisRun) (func(), error) {
	run.mu.Lock()
	themes := run.themes
	run.mu.Unlock()

	var (
		g   *knowledgegraph.Graph
		err error
	)
	if themes != nil {
		g, err = knowledgegraph.BuildFrom(ctx, run.records, themes.corpus, themes.engine, knowledgegraph.Options{})
	} else {
		g, err = knowledgegraph.Build(ctx, run.records, knowledgegraph.Options{})
	}
	if err != nil {
		return nil, err
	}
	stats := knowledgegraph.ComputeStats(g)
	return func() {
		run.graph = g
		run.stats = &stats
	}, nil
}

//Personal.AI order the ending
