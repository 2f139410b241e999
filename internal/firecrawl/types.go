package firecrawl

import "context"

// Formats understood by the search and scrape endpoints.
const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// Document is one page returned by search or scrape.
type Document struct {
	URL         string         `json:"url,omitempty"`
	Title       string         `json:"title,omitempty"`
	Description string         `json:"description,omitempty"`
	Markdown    string         `json:"markdown,omitempty"`
	HTML        string         `json:"html,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// MetaString returns a string metadata value, or "" when absent or not a string.
func (d Document) MetaString(key string) string {
	if d.Metadata == nil {
		return ""
	}
	s, _ := d.Metadata[key].(string)
	return s
}

// SearchRequest mirrors the POST /v1/search body.
type SearchRequest struct {
	Query         string        `json:"query"`
	Limit         int           `json:"limit,omitempty"`
	ScrapeOptions scrapeOptions `json:"scrapeOptions"`
}

type scrapeOptions struct {
	Formats []string `json:"formats,omitempty"`
}

// NewSearchRequest builds a search request asking for the given page formats.
func NewSearchRequest(query string, limit int, formats ...string) SearchRequest {
	return SearchRequest{Query: query, Limit: limit, ScrapeOptions: scrapeOptions{Formats: formats}}
}

// SearchResponse mirrors the /v1/search response.
type SearchResponse struct {
	Success bool       `json:"success"`
	Data    []Document `json:"data"`
	Error   string     `json:"error,omitempty"`
}

// ScrapeRequest mirrors the POST /v1/scrape body.
type ScrapeRequest struct {
	URL     string   `json:"url"`
	Formats []string `json:"formats,omitempty"`
}

// ScrapeResponse mirrors the /v1/scrape response.
type ScrapeResponse struct {
	Success bool      `json:"success"`
	Data    *Document `json:"data,omitempty"`
	Error   string    `json:"error,omitempty"`
}

// API is the subset of the Firecrawl service the gateway depends on.
type API interface {
	Search(ctx context.Context, req SearchRequest) (*SearchResponse, error)
	Scrape(ctx context.Context, req ScrapeRequest) (*ScrapeResponse, error)
}
