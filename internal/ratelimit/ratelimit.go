package ratelimit

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/time/rate"

	"github.com/amishk599/aijobradar/internal/ai"
	"github.com/amishk599/aijobradar/internal/firecrawl"
)

// Service keys shared by every client of the same backend.
const (
	ServiceFirecrawl = "firecrawl"
	ServiceLLM       = "llm"
)

// ServiceLimiter holds one token bucket per external service.
type ServiceLimiter struct {
	mu sync.Mutex
	m  map[string]*rate.Limiter
	r  rate.Limit
	b  int
}

// NewServiceLimiter creates a limiter allowing reqPerSec sustained requests
// with the given burst to each service independently.
func NewServiceLimiter(reqPerSec float64, burst int) *ServiceLimiter {
	return &ServiceLimiter{
		m: make(map[string]*rate.Limiter),
		r: rate.Limit(reqPerSec),
		b: burst,
	}
}

func (l *ServiceLimiter) limiterFor(service string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if lim, ok := l.m[service]; ok {
		return lim
	}
	lim := rate.NewLimiter(l.r, l.b)
	l.m[service] = lim
	return lim
}

// Wait blocks until a request to service is allowed.
// Returns an error if the context is cancelled while waiting.
func (l *ServiceLimiter) Wait(ctx context.Context, service string) error {
	if err := l.limiterFor(service).Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait for %s: %w", service, err)
	}
	return nil
}

// SearchClient enforces the Firecrawl rate limit before delegating.
type SearchClient struct {
	inner   firecrawl.API
	limiter *ServiceLimiter
}

// NewSearchClient wraps a Firecrawl API with rate limiting. Search and
// scrape draw from the same bucket.
func NewSearchClient(inner firecrawl.API, limiter *ServiceLimiter) *SearchClient {
	return &SearchClient{inner: inner, limiter: limiter}
}

func (c *SearchClient) Search(ctx context.Context, req firecrawl.SearchRequest) (*firecrawl.SearchResponse, error) {
	if err := c.limiter.Wait(ctx, ServiceFirecrawl); err != nil {
		return nil, err
	}
	return c.inner.Search(ctx, req)
}

func (c *SearchClient) Scrape(ctx context.Context, req firecrawl.ScrapeRequest) (*firecrawl.ScrapeResponse, error) {
	if err := c.limiter.Wait(ctx, ServiceFirecrawl); err != nil {
		return nil, err
	}
	return c.inner.Scrape(ctx, req)
}

// Provider enforces the inference rate limit before delegating.
type Provider struct {
	inner   ai.LLMProvider
	limiter *ServiceLimiter
}

// NewProvider wraps an LLMProvider with rate limiting.
func NewProvider(inner ai.LLMProvider, limiter *ServiceLimiter) *Provider {
	return &Provider{inner: inner, limiter: limiter}
}

func (p *Provider) Complete(ctx context.Context, system, user string) (string, error) {
	if err := p.limiter.Wait(ctx, ServiceLLM); err != nil {
		return "", err
	}
	return p.inner.Complete(ctx, system, user)
}
