package model

import (
	"time"

	"github.com/google/uuid"
)

// Metrics are the aggregate counters of a run.
type Metrics struct {
	TotalFound     int
	AIRelevant     int
	PlatformCounts map[string]int
}

// RunResult is the state threaded through every pipeline stage. It is created
// once per run and discarded after display.
type RunResult struct {
	RunID             uuid.UUID
	Parameters        SearchParameters
	RawListings       []RawListing
	ProcessedListings []*JobListing
	CompanyProfiles   map[string]*CompanyInfo
	Metrics           Metrics
	Analysis          string
	Failed            string // name of the stage that aborted the run, if any
	StartedAt         time.Time
	FinishedAt        time.Time
}

// NewRunResult returns an empty result for params.
func NewRunResult(params SearchParameters) *RunResult {
	return &RunResult{
		RunID:           uuid.New(),
		Parameters:      params.Clone(),
		CompanyProfiles: make(map[string]*CompanyInfo),
		Metrics:         Metrics{PlatformCounts: make(map[string]int)},
	}
}
