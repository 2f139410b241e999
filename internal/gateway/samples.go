package gateway

import (
	"strings"

	"github.com/amishk599/aijobradar/internal/model"
)

// SampleURLPrefix marks the application URLs of the sample postings.
const SampleURLPrefix = "https://example.com"

// IsSampleURL reports whether url belongs to a sample posting.
func IsSampleURL(url string) bool {
	return strings.HasPrefix(url, SampleURLPrefix)
}

// SamplePostings returns the fixed dataset substituted when every platform
// search comes back empty and the samples fallback is enabled.
func SamplePostings() []model.RawListing {
	return []model.RawListing{
		{
			ID:         "linkedin_1",
			Title:      "Senior AI Engineer",
			Company:    "TechCorp Berlin",
			Location:   "Berlin, Germany",
			Type:       "Full-time",
			Salary:     "€80,000 - €120,000",
			Level:      "Senior",
			PostedDate: "2024-01-15",
			Markdown:   "We are looking for a Senior AI Engineer to join our team in Berlin. Experience with Python, TensorFlow, and machine learning required. Visa sponsorship available for qualified candidates.",
			URL:        SampleURLPrefix + "/job1",
			Platform:   "LinkedIn",
		},
		{
			ID:         "stepstone_1",
			Title:      "Machine Learning Specialist",
			Company:    "AI Startup Amsterdam",
			Location:   "Amsterdam, Netherlands",
			Type:       "Full-time",
			Salary:     "€70,000 - €100,000",
			Level:      "Mid",
			PostedDate: "2024-01-14",
			Markdown:   "Join our AI startup in Amsterdam. We need ML specialists with experience in NLP and computer vision. Remote work possible.",
			URL:        SampleURLPrefix + "/job2",
			Platform:   "StepStone",
		},
		{
			ID:         "linkedin_2",
			Title:      "Data Scientist - AI Focus",
			Company:    "European Tech Hub",
			Location:   "Paris, France",
			Type:       "Full-time",
			Salary:     "€75,000 - €110,000",
			Level:      "Mid",
			PostedDate: "2024-01-13",
			Markdown:   "Join our data science team in Paris. Focus on AI and machine learning projects. Experience with PyTorch and cloud platforms required.",
			URL:        SampleURLPrefix + "/job3",
			Platform:   "LinkedIn",
		},
		{
			ID:         "stepstone_2",
			Title:      "AI Research Engineer",
			Company:    "Nordic AI Lab",
			Location:   "Stockholm, Sweden",
			Type:       "Full-time",
			Salary:     "€85,000 - €130,000",
			Level:      "Senior",
			PostedDate: "2024-01-12",
			Markdown:   "Research engineer position in Stockholm. Work on cutting-edge AI research. PhD preferred. Visa sponsorship available.",
			URL:        SampleURLPrefix + "/job4",
			Platform:   "StepStone",
		},
		{
			ID:         "linkedin_3",
			Title:      "MLOps Engineer",
			Company:    "Cloud AI Solutions",
			Location:   "Remote, Europe",
			Type:       "Full-time",
			Salary:     "€90,000 - €140,000",
			Level:      "Senior",
			PostedDate: "2024-01-11",
			Markdown:   "MLOps engineer for cloud-based AI solutions. Experience with AWS, Kubernetes, and ML pipelines required. Fully remote position.",
			URL:        SampleURLPrefix + "/job5",
			Platform:   "LinkedIn",
		},
	}
}
