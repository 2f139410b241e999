package store

import (
	"context"
	"sync"
	"testing"
)

func newTestCache(t *testing.T) *SQLitePageCache {
	t.Helper()
	c, err := NewSQLitePageCache()
	if err != nil {
		t.Fatalf("NewSQLitePageCache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestPutThenGet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.Put(ctx, "https://jobs.example.org/1", "# ML Engineer"); err != nil {
		t.Fatalf("Put: %v", err)
	}

	content, ok, err := c.Get(ctx, "https://jobs.example.org/1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok || content != "# ML Engineer" {
		t.Errorf("Get = (%q, %v), want cached content", content, ok)
	}
}

func TestGetUnknownReturnsMiss(t *testing.T) {
	c := newTestCache(t)

	_, ok, err := c.Get(context.Background(), "https://does-not-exist")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("expected miss for unknown URL")
	}
}

func TestPutReplaces(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.Put(ctx, "u", "first"); err != nil {
		t.Fatalf("first Put: %v", err)
	}
	if err := c.Put(ctx, "u", "second"); err != nil {
		t.Fatalf("second Put: %v", err)
	}

	content, _, err := c.Get(ctx, "u")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if content != "second" {
		t.Errorf("content = %q, want second", content)
	}
}

func TestResetDropsEverything(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	for _, u := range []string{"a", "b"} {
		if err := c.Put(ctx, u, "page "+u); err != nil {
			t.Fatalf("Put %s: %v", u, err)
		}
	}
	if err := c.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	for _, u := range []string{"a", "b"} {
		if _, ok, _ := c.Get(ctx, u); ok {
			t.Errorf("expected %s to be gone after Reset", u)
		}
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			u := string(rune('a' + i))
			if err := c.Put(ctx, u, "page"); err != nil {
				t.Errorf("Put: %v", err)
			}
			if _, ok, err := c.Get(ctx, u); err != nil || !ok {
				t.Errorf("Get %s: ok=%v err=%v", u, ok, err)
			}
		}(i)
	}
	wg.Wait()
}

func TestNopPageCache(t *testing.T) {
	var c PageCache = NewNopPageCache()
	ctx := context.Background()

	if err := c.Put(ctx, "u", "x"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "u"); ok {
		t.Error("nop cache should never hit")
	}
}
