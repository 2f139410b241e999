package gateway

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/amishk599/aijobradar/internal/firecrawl"
	"github.com/amishk599/aijobradar/internal/model"
	"github.com/amishk599/aijobradar/internal/store"
)

// Ensure Gateway implements the pipeline's collaborator interfaces.
var (
	_ model.JobSearcher = (*Gateway)(nil)
	_ model.PageScraper = (*Gateway)(nil)
)

// Options tune a Gateway.
type Options struct {
	ResultsPerPlatform int  // search result cap per platform
	Workers            int  // platforms searched concurrently
	SampleFallback     bool // substitute SamplePostings when every search is empty
}

// Gateway turns search parameters into raw listings using the Firecrawl API.
// Failures of individual platforms or pages are logged and absorbed.
type Gateway struct {
	api    firecrawl.API
	pages  store.PageCache
	opts   Options
	logger *slog.Logger
}

// New creates a Gateway. A nil pages cache disables page caching.
func New(api firecrawl.API, pages store.PageCache, opts Options, logger *slog.Logger) *Gateway {
	if pages == nil {
		pages = store.NewNopPageCache()
	}
	if opts.ResultsPerPlatform <= 0 {
		opts.ResultsPerPlatform = 5
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	return &Gateway{api: api, pages: pages, opts: opts, logger: logger}
}

// SearchJobs searches every platform in params and concatenates the results
// in platform order. When no platform is configured nothing is searched and
// nothing is returned, regardless of the fallback setting.
func (g *Gateway) SearchJobs(ctx context.Context, params model.SearchParameters) []model.RawListing {
	if len(params.Platforms) == 0 {
		g.logger.Warn("no platforms configured, skipping search")
		return nil
	}

	perPlatform := make([][]model.RawListing, len(params.Platforms))

	var eg errgroup.Group
	eg.SetLimit(g.opts.Workers)
	for i, platform := range params.Platforms {
		eg.Go(func() error {
			perPlatform[i] = g.searchPlatform(ctx, params, platform)
			return nil // best-effort: one platform never cancels the others
		})
	}
	_ = eg.Wait()

	var all []model.RawListing
	for _, listings := range perPlatform {
		all = append(all, listings...)
	}

	if len(all) == 0 {
		if g.opts.SampleFallback {
			g.logger.Info("no results from search service, using sample postings")
			return SamplePostings()
		}
		g.logger.Warn("no results from search service")
	}
	return all
}

func (g *Gateway) searchPlatform(ctx context.Context, params model.SearchParameters, platform string) []model.RawListing {
	query := BuildQuery(params, platform)
	g.logger.Debug("searching platform", "platform", platform, "query", query)

	resp, err := g.api.Search(ctx, firecrawl.NewSearchRequest(query, g.opts.ResultsPerPlatform, firecrawl.FormatMarkdown))
	if err != nil {
		g.logger.Warn("search error", "platform", platform, "error", err)
		return nil
	}
	if !resp.Success {
		g.logger.Warn("search failed", "platform", platform, "error", resp.Error)
		return nil
	}

	listings := make([]model.RawListing, 0, len(resp.Data))
	for _, doc := range resp.Data {
		listings = append(listings, fromDocument(doc, platform))
	}
	g.logger.Debug("platform searched", "platform", platform, "results", len(listings))
	return listings
}

// ScrapeJobPage returns the text of the page at url, served from the page
// cache when it was fetched earlier in the run.
func (g *Gateway) ScrapeJobPage(ctx context.Context, url string) (*model.RawListing, bool) {
	if content, ok, err := g.pages.Get(ctx, url); err != nil {
		g.logger.Debug("page cache read failed", "url", url, "error", err)
	} else if ok {
		return &model.RawListing{URL: url, Markdown: content}, true
	}

	resp, err := g.api.Scrape(ctx, firecrawl.ScrapeRequest{URL: url, Formats: []string{firecrawl.FormatMarkdown}})
	if err != nil {
		g.logger.Warn("scrape error", "url", url, "error", err)
		return nil, false
	}
	if !resp.Success || resp.Data == nil {
		g.logger.Warn("scrape failed", "url", url, "error", resp.Error)
		return nil, false
	}

	text := resp.Data.Text()
	if text == "" {
		g.logger.Warn("scrape returned no content", "url", url)
		return nil, false
	}

	if err := g.pages.Put(ctx, url, text); err != nil {
		g.logger.Debug("page cache write failed", "url", url, "error", err)
	}

	page := fromDocument(*resp.Data, "")
	page.URL = url
	page.Markdown = text
	return &page, true
}

// Reset clears run-scoped state. The pipeline calls it when a run starts.
func (g *Gateway) Reset(ctx context.Context) error {
	return g.pages.Reset(ctx)
}

// fromDocument maps a search document to a raw listing. The native id is the
// metadata id when present, otherwise the page URL.
func fromDocument(doc firecrawl.Document, platform string) model.RawListing {
	url := doc.URL
	if url == "" {
		url = doc.MetaString("sourceURL")
	}
	id := doc.MetaString("id")
	if id == "" {
		id = url
	}
	title := doc.Title
	if title == "" {
		title = doc.MetaString("title")
	}

	return model.RawListing{
		ID:         id,
		Title:      title,
		Company:    doc.MetaString("company"),
		Location:   doc.MetaString("location"),
		Type:       doc.MetaString("type"),
		Level:      doc.MetaString("level"),
		Salary:     doc.MetaString("salary"),
		PostedDate: doc.MetaString("postedDate"),
		Markdown:   doc.Text(),
		URL:        url,
		Platform:   platform,
	}
}
