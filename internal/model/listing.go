package model

import (
	"context"
	"time"
)

// Experience levels a listing is normalized to.
const (
	LevelJunior       = "Junior"
	LevelMid          = "Mid"
	LevelSenior       = "Senior"
	LevelNotSpecified = "Not Specified"
)

// Remote policies a listing is classified as.
const (
	RemoteFull   = "Remote"
	RemoteHybrid = "Hybrid"
	RemoteOnSite = "On-site"
)

// RawListing is one unvalidated posting as returned by the search service.
// Every field is optional; defaults are applied once, when the record is
// normalized into a JobListing.
type RawListing struct {
	ID         string // platform-native id; empty when the service has none
	Title      string
	Company    string
	Location   string
	Type       string // employment type, e.g. "Full-time"
	Level      string // free-text seniority
	Salary     string
	PostedDate string // "2024-01-15" or "3 days ago"
	Markdown   string // page body
	URL        string
	Platform   string // platform the record was searched on
}

// CompanyInfo describes an employer. Listings of the same company share one
// *CompanyInfo within a run.
type CompanyInfo struct {
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	Website         string   `json:"website,omitempty"`
	LinkedInURL     string   `json:"linkedin_url,omitempty"`
	Industry        string   `json:"industry,omitempty"`
	EmployeeCount   string   `json:"employee_count,omitempty"`
	Rating          *float64 `json:"company_rating,omitempty"`
	GlassdoorRating *float64 `json:"glassdoor_rating,omitempty"`
	RecentFunding   string   `json:"recent_funding,omitempty"`
	HiringTrends    []string `json:"hiring_trends,omitempty"`
	TechFocus       []string `json:"tech_focus"`
}

// JobListing is a normalized posting. ID is "{platform}_{native id}".
type JobListing struct {
	ID              string       `json:"id"`
	Title           string       `json:"title"`
	Company         *CompanyInfo `json:"company"`
	Location        string       `json:"location"`
	JobType         string       `json:"job_type"`
	ExperienceLevel string       `json:"experience_level"`
	PostedDate      time.Time    `json:"posted_date"`
	Description     string       `json:"description"`
	RequiredSkills  []string     `json:"required_skills"`
	PreferredSkills []string     `json:"preferred_skills"`
	AIFocusAreas    []string     `json:"ai_focus_areas"`
	VisaSponsorship bool         `json:"visa_sponsorship"`
	RemotePolicy    string       `json:"remote_policy"`
	ApplicationURL  string       `json:"application_url"`
	Source          string       `json:"source"`
	Salary          string       `json:"salary,omitempty"`
}

// JobSearcher returns raw listings for a set of parameters. Failures are
// absorbed by the implementation, so there is no error return.
type JobSearcher interface {
	SearchJobs(ctx context.Context, params SearchParameters) []RawListing
}

// PageScraper fetches the full text of a posting. ok is false when nothing
// could be fetched.
type PageScraper interface {
	ScrapeJobPage(ctx context.Context, url string) (page *RawListing, ok bool)
}
