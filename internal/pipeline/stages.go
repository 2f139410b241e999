package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/amishk599/aijobradar/internal/ai"
	"github.com/amishk599/aijobradar/internal/gateway"
	"github.com/amishk599/aijobradar/internal/model"
)

const (
	insightSampleSize   = 5
	analysisUnavailable = "Market analysis unavailable"
	unknownFunding      = "Unknown"
)

func (p *Pipeline) searchPortals(ctx context.Context, res *model.RunResult, logger *slog.Logger) error {
	res.RawListings = p.searcher.SearchJobs(ctx, res.Parameters)
	res.Metrics.TotalFound = len(res.RawListings)

	for _, platform := range res.Parameters.Platforms {
		res.Metrics.PlatformCounts[platform] = 0
	}
	for _, raw := range res.RawListings {
		if _, ok := res.Metrics.PlatformCounts[raw.Platform]; ok {
			res.Metrics.PlatformCounts[raw.Platform]++
		}
	}

	logger.Info("searched platforms", "platforms", len(res.Parameters.Platforms), "found", res.Metrics.TotalFound)
	return nil
}

func (p *Pipeline) processListings(_ context.Context, res *model.RunResult, logger *slog.Logger) error {
	now := p.opts.Now()
	seen := make(map[string]bool, len(res.RawListings))
	processed := make([]*model.JobListing, 0, len(res.RawListings))

	for _, raw := range res.RawListings {
		job, err := toListing(raw, now)
		if err != nil {
			logger.Warn("skipping raw listing", "platform", raw.Platform, "title", raw.Title, "error", err)
			continue
		}
		if seen[job.ID] {
			continue
		}
		seen[job.ID] = true
		processed = append(processed, job)
	}

	res.ProcessedListings = processed
	logger.Info("processed listings", "raw", len(res.RawListings), "unique", len(processed))
	return nil
}

func (p *Pipeline) filterAIJobs(ctx context.Context, res *model.RunResult, logger *slog.Logger) error {
	keep := make([]bool, len(res.ProcessedListings))

	p.forEach(res.ProcessedListings, logger, func(i int, job *model.JobListing) {
		if p.titles.Match(job) {
			keep[i] = true
			return
		}
		relevant, err := p.analyzer.IsAIRole(ctx, job.Title, job.Company.TechFocus, job.Description)
		if err != nil {
			logger.Debug("relevance check failed, dropping listing", "listing", job.ID, "error", err)
			return
		}
		keep[i] = relevant
	})

	kept := make([]*model.JobListing, 0, len(res.ProcessedListings))
	for i, job := range res.ProcessedListings {
		if keep[i] {
			kept = append(kept, job)
		}
	}

	res.ProcessedListings = kept
	res.Metrics.AIRelevant = len(kept)
	logger.Info("filtered AI jobs", "ai_relevant", res.Metrics.AIRelevant)
	return nil
}

func (p *Pipeline) enrichJobs(ctx context.Context, res *model.RunResult, logger *slog.Logger) error {
	p.forEach(res.ProcessedListings, logger, func(_ int, job *model.JobListing) {
		p.enrichJob(ctx, job, logger)
	})
	logger.Info("enriched jobs", "listings", len(res.ProcessedListings))
	return nil
}

// enrichJob fills in the scraped description and inferred fields of one
// listing. Each step fails on its own without affecting the others.
func (p *Pipeline) enrichJob(ctx context.Context, job *model.JobListing, logger *slog.Logger) {
	if job.ApplicationURL != "" && !gateway.IsSampleURL(job.ApplicationURL) {
		if page, ok := p.scraper.ScrapeJobPage(ctx, job.ApplicationURL); ok && page.Markdown != "" {
			job.Description = ai.Excerpt(maxScrapedDescription, page.Markdown)
		}
	}

	job.RequiredSkills, job.PreferredSkills = p.analyzer.ExtractSkills(ctx, job.Description)
	job.AIFocusAreas = p.analyzer.ExtractFocusAreas(ctx, job.Description)

	funding := job.Company.RecentFunding
	if funding == "" {
		funding = unknownFunding
	}
	visa, err := p.analyzer.DetectVisa(ctx, job.Description, funding)
	if err != nil {
		logger.Debug("visa detection failed", "listing", job.ID, "error", err)
	}
	job.VisaSponsorship = visa
}

func (p *Pipeline) enrichCompanies(_ context.Context, res *model.RunResult, logger *slog.Logger) error {
	cache := NewCompanyCache(res.CompanyProfiles)

	for _, job := range res.ProcessedListings {
		name := job.Company.Name
		job.Company, _ = cache.GetOrInsert(name, func() *model.CompanyInfo {
			info := job.Company
			info.Description = name + " - AI company"
			info.TechFocus = slices.Clone(job.AIFocusAreas)
			return info
		})
	}

	logger.Info("enriched companies", "companies", cache.Len())
	return nil
}

func (p *Pipeline) generateInsights(ctx context.Context, res *model.RunResult, logger *slog.Logger) error {
	sample := res.ProcessedListings[:min(insightSampleSize, len(res.ProcessedListings))]
	data, err := json.MarshalIndent(sample, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize insight sample: %w", err)
	}

	analysis, err := p.analyzer.MarketInsights(ctx, string(data))
	if err != nil {
		logger.Warn("market insights unavailable", "error", err)
		analysis = analysisUnavailable
	}
	res.Analysis = analysis
	return nil
}

// forEach calls fn for every listing with at most opts.Workers running at
// once. A panic in fn is logged and leaves that listing as it was.
func (p *Pipeline) forEach(jobs []*model.JobListing, logger *slog.Logger, fn func(i int, job *model.JobListing)) {
	var g errgroup.Group
	g.SetLimit(p.opts.Workers)

	for i, job := range jobs {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("listing failed", "listing", job.ID, "panic", r)
				}
			}()
			fn(i, job)
			return nil
		})
	}
	_ = g.Wait()
}
