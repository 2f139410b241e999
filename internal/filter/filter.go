package filter

import (
	"strings"

	"github.com/amishk599/aijobradar/internal/model"
)

// AIIndicators are the title substrings that mark a listing as AI-relevant
// without asking the inference service.
var AIIndicators = []string{"AI", "ML", "Machine Learning", "Data Science"}

// TitleFilter matches listings whose title contains any of its keywords.
// Matching is case-sensitive, so "AI" does not match "Maintenance".
type TitleFilter struct {
	keywords []string
}

// NewTitleFilter returns a filter over the given keywords. An empty list
// matches nothing.
func NewTitleFilter(keywords []string) *TitleFilter {
	return &TitleFilter{keywords: keywords}
}

// NewAITitleFilter returns a filter over AIIndicators.
func NewAITitleFilter() *TitleFilter {
	return NewTitleFilter(AIIndicators)
}

// Match returns true if the listing's title contains any keyword.
func (f *TitleFilter) Match(job *model.JobListing) bool {
	for _, kw := range f.keywords {
		if strings.Contains(job.Title, kw) {
			return true
		}
	}
	return false
}
