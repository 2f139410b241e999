package retry

import (
	"context"

	"github.com/amishk599/aijobradar/internal/ai"
	"github.com/amishk599/aijobradar/internal/firecrawl"
)

// SearchClient retries transient Firecrawl failures before giving up.
type SearchClient struct {
	inner  firecrawl.API
	policy Policy
}

// NewSearchClient wraps a Firecrawl API with retry logic.
func NewSearchClient(inner firecrawl.API, policy Policy) *SearchClient {
	return &SearchClient{inner: inner, policy: policy}
}

func (c *SearchClient) Search(ctx context.Context, req firecrawl.SearchRequest) (*firecrawl.SearchResponse, error) {
	return Do(ctx, c.policy, "firecrawl.search", func(ctx context.Context) (*firecrawl.SearchResponse, error) {
		return c.inner.Search(ctx, req)
	})
}

func (c *SearchClient) Scrape(ctx context.Context, req firecrawl.ScrapeRequest) (*firecrawl.ScrapeResponse, error) {
	return Do(ctx, c.policy, "firecrawl.scrape", func(ctx context.Context) (*firecrawl.ScrapeResponse, error) {
		return c.inner.Scrape(ctx, req)
	})
}

// Provider retries transient inference failures before giving up.
type Provider struct {
	inner  ai.LLMProvider
	policy Policy
}

// NewProvider wraps an LLMProvider with retry logic.
func NewProvider(inner ai.LLMProvider, policy Policy) *Provider {
	return &Provider{inner: inner, policy: policy}
}

func (p *Provider) Complete(ctx context.Context, system, user string) (string, error) {
	return Do(ctx, p.policy, "llm.complete", func(ctx context.Context) (string, error) {
		return p.inner.Complete(ctx, system, user)
	})
}
