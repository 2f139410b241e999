package model

import "slices"

// SearchParameters is the search configuration for one run. It is passed by
// value and never mutated once a run starts.
type SearchParameters struct {
	Keywords         []string
	Locations        []string
	ExperienceLevels []string
	EmploymentTypes  []string
	RemotePolicy     []string
	RequiredSkills   []string
	Platforms        []string
	VisaSponsorship  bool
	MinSalaryEUR     int // 0 means unset; shown in the report only
}

// DefaultSearchParameters returns the documented defaults for every field.
func DefaultSearchParameters() SearchParameters {
	return SearchParameters{
		Keywords:         []string{"AI", "Machine Learning", "Prompt", "LLM", "Generative AI"},
		Locations:        []string{"Europe"},
		ExperienceLevels: []string{"Entry", "Mid", "Senior"},
		EmploymentTypes:  []string{"Full-time", "Contract"},
		RemotePolicy:     []string{"Remote", "Hybrid"},
		RequiredSkills:   []string{"Python", "TensorFlow"},
		Platforms:        []string{"LinkedIn", "StepStone"},
	}
}

// Clone returns a deep copy so a run cannot observe later edits by the caller.
func (p SearchParameters) Clone() SearchParameters {
	p.Keywords = slices.Clone(p.Keywords)
	p.Locations = slices.Clone(p.Locations)
	p.ExperienceLevels = slices.Clone(p.ExperienceLevels)
	p.EmploymentTypes = slices.Clone(p.EmploymentTypes)
	p.RemotePolicy = slices.Clone(p.RemotePolicy)
	p.RequiredSkills = slices.Clone(p.RequiredSkills)
	p.Platforms = slices.Clone(p.Platforms)
	return p
}
