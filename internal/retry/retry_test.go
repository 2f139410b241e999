package retry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/amishk599/aijobradar/internal/firecrawl"
	"github.com/amishk599/aijobradar/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPolicy(maxRetries int, delay time.Duration) Policy {
	return Policy{MaxRetries: maxRetries, BaseDelay: delay, Logger: discardLogger()}
}

// counter calls fn on each invocation, tracking call count.
type counter struct {
	calls int
	fn    func(attempt int) (string, error)
}

func (c *counter) call(_ context.Context) (string, error) {
	c.calls++
	return c.fn(c.calls)
}

func TestRetry_SucceedsOnFirstAttempt(t *testing.T) {
	c := &counter{fn: func(_ int) (string, error) { return "ok", nil }}

	got, err := Do(context.Background(), testPolicy(2, 10*time.Millisecond), "test", c.call)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" {
		t.Fatalf("got %q, want ok", got)
	}
	if c.calls != 1 {
		t.Fatalf("expected 1 call, got %d", c.calls)
	}
}

func TestRetry_RetriesOn5xx_SucceedsOnSecondAttempt(t *testing.T) {
	c := &counter{fn: func(attempt int) (string, error) {
		if attempt == 1 {
			return "", &model.HTTPError{StatusCode: 503, Err: errors.New("service unavailable")}
		}
		return "ok", nil
	}}

	got, err := Do(context.Background(), testPolicy(2, 10*time.Millisecond), "test", c.call)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" {
		t.Fatalf("got %q, want ok", got)
	}
	if c.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", c.calls)
	}
}

func TestRetry_DoesNotRetryOn4xx(t *testing.T) {
	c := &counter{fn: func(_ int) (string, error) {
		return "", &model.HTTPError{StatusCode: 404, Err: errors.New("not found")}
	}}

	_, err := Do(context.Background(), testPolicy(2, 10*time.Millisecond), "test", c.call)
	var httpErr *model.HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != 404 {
		t.Fatalf("expected HTTPError with status 404, got %v", err)
	}
	if c.calls != 1 {
		t.Fatalf("expected 1 call (no retry), got %d", c.calls)
	}
}

func TestRetry_DoesNotRetryWrapped4xx(t *testing.T) {
	c := &counter{fn: func(_ int) (string, error) {
		return "", fmt.Errorf("gemini generate: %w", &model.HTTPError{StatusCode: 403, Err: errors.New("API key not valid")})
	}}

	_, err := Do(context.Background(), testPolicy(2, time.Millisecond), "test", c.call)
	if err == nil {
		t.Fatal("expected error")
	}
	if c.calls != 1 {
		t.Fatalf("expected 1 call (no retry), got %d", c.calls)
	}
}

func TestRetry_DoesNotRetryDisabledAI(t *testing.T) {
	c := &counter{fn: func(_ int) (string, error) { return "", model.ErrAIDisabled }}

	_, err := Do(context.Background(), testPolicy(3, time.Millisecond), "test", c.call)
	if !errors.Is(err, model.ErrAIDisabled) {
		t.Fatalf("expected ErrAIDisabled, got %v", err)
	}
	if c.calls != 1 {
		t.Fatalf("expected 1 call, got %d", c.calls)
	}
}

func TestRetry_GivesUpAfterMaxRetries(t *testing.T) {
	c := &counter{fn: func(_ int) (string, error) {
		return "", &model.HTTPError{StatusCode: 500, Err: errors.New("internal error")}
	}}

	_, err := Do(context.Background(), testPolicy(2, 10*time.Millisecond), "test", c.call)
	if err == nil {
		t.Fatal("expected error after max retries, got nil")
	}
	// 1 initial + 2 retries = 3
	if c.calls != 3 {
		t.Fatalf("expected 3 calls (1 + 2 retries), got %d", c.calls)
	}
}

func TestRetry_ZeroRetriesMeansSingleAttempt(t *testing.T) {
	c := &counter{fn: func(_ int) (string, error) { return "", errors.New("connection reset") }}

	_, err := Do(context.Background(), testPolicy(0, time.Millisecond), "test", c.call)
	if err == nil {
		t.Fatal("expected error")
	}
	if c.calls != 1 {
		t.Fatalf("expected 1 call, got %d", c.calls)
	}
}

func TestRetry_RespectsContextCancellation(t *testing.T) {
	c := &counter{fn: func(_ int) (string, error) {
		return "", &model.HTTPError{StatusCode: 500, Err: errors.New("internal error")}
	}}

	ctx, cancel := context.WithCancel(context.Background())
	// Cancel immediately so the backoff sleep is interrupted.
	cancel()

	_, err := Do(ctx, testPolicy(2, time.Second), "test", c.call)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	// Should have made initial call, then been cancelled during backoff.
	if c.calls != 1 {
		t.Fatalf("expected 1 call before cancellation, got %d", c.calls)
	}
}

func TestBackoffDelay_PrefersRetryAfter(t *testing.T) {
	p := testPolicy(2, time.Second)
	err := &model.HTTPError{StatusCode: 429, RetryAfter: 42 * time.Second}

	if got := p.backoffDelay(1, err); got != 42*time.Second {
		t.Fatalf("delay = %v, want 42s", got)
	}
}

func TestBackoffDelay_GrowsExponentially(t *testing.T) {
	p := testPolicy(3, 100*time.Millisecond)
	err := errors.New("boom")

	// attempt 3 → 400ms ±30%
	got := p.backoffDelay(3, err)
	if got < 280*time.Millisecond || got > 520*time.Millisecond {
		t.Fatalf("delay = %v, want within 400ms ±30%%", got)
	}
}

type flakySearch struct {
	calls int
}

func (f *flakySearch) Search(_ context.Context, _ firecrawl.SearchRequest) (*firecrawl.SearchResponse, error) {
	f.calls++
	if f.calls == 1 {
		return nil, &model.HTTPError{StatusCode: 502}
	}
	return &firecrawl.SearchResponse{Success: true}, nil
}

func (f *flakySearch) Scrape(_ context.Context, _ firecrawl.ScrapeRequest) (*firecrawl.ScrapeResponse, error) {
	f.calls++
	return nil, &model.HTTPError{StatusCode: 403}
}

func TestSearchClient_RetriesSearchNotForbiddenScrape(t *testing.T) {
	inner := &flakySearch{}
	client := NewSearchClient(inner, testPolicy(2, time.Millisecond))

	resp, err := client.Search(context.Background(), firecrawl.NewSearchRequest("q", 5))
	if err != nil || !resp.Success {
		t.Fatalf("Search: resp=%+v err=%v", resp, err)
	}
	if inner.calls != 2 {
		t.Fatalf("expected 2 search calls, got %d", inner.calls)
	}

	inner.calls = 0
	if _, err := client.Scrape(context.Background(), firecrawl.ScrapeRequest{URL: "u"}); err == nil {
		t.Fatal("Scrape: expected error")
	}
	if inner.calls != 1 {
		t.Fatalf("expected 1 scrape call, got %d", inner.calls)
	}
}
