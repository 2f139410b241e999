package pipeline

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/amishk599/aijobradar/internal/ai"
	"github.com/amishk599/aijobradar/internal/model"
)

const (
	maxDescription        = 2000
	maxScrapedDescription = 4000
	defaultPostedAge      = 30 * 24 * time.Hour
)

var errNoIdentity = errors.New("raw listing has neither id nor url")

// listingID returns the identity of a raw record, "{platform}_{native id}".
func listingID(raw model.RawListing) string {
	platform := raw.Platform
	if platform == "" {
		platform = "unknown"
	}
	return platform + "_" + raw.ID
}

// toListing validates a raw record and applies the per-field defaults.
func toListing(raw model.RawListing, now time.Time) (*model.JobListing, error) {
	if raw.ID == "" {
		return nil, errNoIdentity
	}

	source := raw.Platform
	if source == "" {
		source = "Unknown"
	}

	return &model.JobListing{
		ID:              listingID(raw),
		Title:           orDefault(raw.Title, "No Title"),
		Company:         &model.CompanyInfo{Name: orDefault(raw.Company, "Unknown Company")},
		Location:        raw.Location,
		JobType:         orDefault(raw.Type, "Full-time"),
		ExperienceLevel: normalizeExperience(raw.Level),
		PostedDate:      parsePostedDate(raw.PostedDate, now),
		Description:     ai.Excerpt(maxDescription, raw.Markdown),
		VisaSponsorship: false, // decided in enrich_jobs
		RemotePolicy:    detectRemotePolicy(raw.Location),
		ApplicationURL:  raw.URL,
		Source:          source,
		Salary:          raw.Salary,
	}, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// normalizeExperience maps free-text seniority onto the four levels.
func normalizeExperience(level string) string {
	level = strings.ToLower(level)
	switch {
	case strings.Contains(level, "senior"):
		return model.LevelSenior
	case strings.Contains(level, "mid"), strings.Contains(level, "experienced"):
		return model.LevelMid
	case strings.Contains(level, "junior"), strings.Contains(level, "entry"):
		return model.LevelJunior
	default:
		return model.LevelNotSpecified
	}
}

var firstInt = regexp.MustCompile(`\d+`)

// parsePostedDate understands "N days ago" (first integer taken as days) and
// "2006-01-02". Anything else is treated as 30 days old.
func parsePostedDate(s string, now time.Time) time.Time {
	if strings.Contains(s, "ago") {
		n, err := strconv.Atoi(firstInt.FindString(s))
		if err != nil || n > 36500 {
			return now.Add(-defaultPostedAge)
		}
		return now.Add(-time.Duration(n) * 24 * time.Hour)
	}

	t, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return now.Add(-defaultPostedAge)
	}
	return t
}

// detectRemotePolicy classifies a location string.
func detectRemotePolicy(location string) string {
	location = strings.ToLower(location)
	switch {
	case strings.Contains(location, "remote"):
		return model.RemoteFull
	case strings.Contains(location, "hybrid"):
		return model.RemoteHybrid
	default:
		return model.RemoteOnSite
	}
}
