package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/amishk599/aijobradar/internal/model"
)

// Stage names, in execution order.
const (
	StageSearchPortals    = "search_portals"
	StageProcessListings  = "process_listings"
	StageFilterAIJobs     = "filter_ai_jobs"
	StageEnrichJobs       = "enrich_jobs"
	StageEnrichCompanies  = "enrich_companies"
	StageGenerateInsights = "generate_insights"
)

// Analyzer runs the inference tasks the stages depend on.
type Analyzer interface {
	IsAIRole(ctx context.Context, title string, techFocus []string, description string) (bool, error)
	ExtractSkills(ctx context.Context, description string) (required, preferred []string)
	ExtractFocusAreas(ctx context.Context, description string) []string
	DetectVisa(ctx context.Context, description, funding string) (bool, error)
	MarketInsights(ctx context.Context, sample string) (string, error)
}

// TitleFilter decides from the title alone that a listing is AI-relevant.
type TitleFilter interface {
	Match(job *model.JobListing) bool
}

// resetter is implemented by collaborators that hold run-scoped state.
type resetter interface {
	Reset(ctx context.Context) error
}

// StageEvent reports the start (Done false) or end (Done true) of a stage.
type StageEvent struct {
	Stage    string
	Index    int // 1-based
	Total    int
	Done     bool
	Duration time.Duration // set when Done
	Err      error         // set when the stage failed
}

// Options tune a Pipeline.
type Options struct {
	Workers  int              // bound on parallel per-item work inside a stage
	Observer func(StageEvent) // optional
	Now      func() time.Time // clock; time.Now when nil
}

// Pipeline runs the six stages of a search, strictly in order, over one
// RunResult per run.
type Pipeline struct {
	searcher model.JobSearcher
	scraper  model.PageScraper
	analyzer Analyzer
	titles   TitleFilter
	opts     Options
	logger   *slog.Logger
}

// New creates a pipeline wired with all its dependencies.
func New(
	searcher model.JobSearcher,
	scraper model.PageScraper,
	analyzer Analyzer,
	titles TitleFilter,
	opts Options,
	logger *slog.Logger,
) *Pipeline {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Pipeline{
		searcher: searcher,
		scraper:  scraper,
		analyzer: analyzer,
		titles:   titles,
		opts:     opts,
		logger:   logger,
	}
}

type stage struct {
	name string
	run  func(ctx context.Context, res *model.RunResult, logger *slog.Logger) error
}

func (p *Pipeline) stages() []stage {
	return []stage{
		{StageSearchPortals, p.searchPortals},
		{StageProcessListings, p.processListings},
		{StageFilterAIJobs, p.filterAIJobs},
		{StageEnrichJobs, p.enrichJobs},
		{StageEnrichCompanies, p.enrichCompanies},
		{StageGenerateInsights, p.generateInsights},
	}
}

// Run executes every stage for params and returns the result. It never
// fails: when a stage errors or panics the remaining stages are skipped,
// Failed names the stage and Analysis carries the error. Whatever the
// earlier stages produced is kept.
func (p *Pipeline) Run(ctx context.Context, params model.SearchParameters) *model.RunResult {
	res := model.NewRunResult(params)
	res.StartedAt = p.opts.Now()
	logger := p.logger.With("run_id", res.RunID.String())

	if r, ok := p.scraper.(resetter); ok {
		if err := r.Reset(ctx); err != nil {
			logger.Warn("resetting page cache", "error", err)
		}
	}

	stages := p.stages()
	for i, st := range stages {
		event := StageEvent{Stage: st.name, Index: i + 1, Total: len(stages)}
		p.emit(event)
		logger.Debug("stage started", "stage", st.name)

		start := time.Now()
		err := ctx.Err()
		if err == nil {
			err = runStage(ctx, st, res, logger)
		}

		event.Done = true
		event.Duration = time.Since(start)
		event.Err = err
		p.emit(event)

		if err != nil {
			res.Failed = st.name
			res.Analysis = fmt.Sprintf("Execution failed: %v", err)
			logger.Error("stage failed, aborting run", "stage", st.name, "error", err)
			break
		}
	}

	res.FinishedAt = p.opts.Now()
	logger.Info("run finished",
		"found", res.Metrics.TotalFound,
		"ai_relevant", res.Metrics.AIRelevant,
		"listings", len(res.ProcessedListings),
		"companies", len(res.CompanyProfiles),
		"failed_stage", res.Failed,
	)
	return res
}

// runStage converts a panic inside a stage into an error.
func runStage(ctx context.Context, st stage, res *model.RunResult, logger *slog.Logger) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: panic: %v", st.name, r)
		}
	}()
	return st.run(ctx, res, logger.With("stage", st.name))
}

func (p *Pipeline) emit(e StageEvent) {
	if p.opts.Observer != nil {
		p.opts.Observer(e)
	}
}
