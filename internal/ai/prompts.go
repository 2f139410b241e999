package ai

import (
	"bytes"
	"embed"
	"fmt"
	"path"
	"slices"
	"strings"
	"text/template"
)

//go:embed prompts/*.tmpl
var promptFiles embed.FS

// Prompt template names.
const (
	PromptRelevance        = "relevance"
	PromptSkillExtraction  = "skill_extraction"
	PromptFocusArea        = "focus_area"
	PromptVisaDetector     = "visa_detector"
	PromptCompanyIntel     = "company_intel"
	PromptMarketInsights   = "market_insights"
	PromptRanking          = "ranking"
	PromptSalaryNormalizer = "salary_normalizer"
)

// Template data for each prompt.
type (
	RelevanceInput struct {
		Title       string
		TechFocus   []string
		Description string
	}
	DescriptionInput struct {
		Description string
	}
	VisaInput struct {
		Description string
		Funding     string
	}
	CompanyInput struct {
		Company string // serialized company record
	}
	MarketInput struct {
		Jobs string // serialized sample of listings
	}
	RankingInput struct {
		Skills     []string
		VisaNeeded bool
		Job        string
	}
	SalaryInput struct {
		Country   string
		RawSalary string
	}
)

// Prompt is a rendered system instruction and user message pair.
type Prompt struct {
	System string
	User   string
}

// Catalog holds one parsed template set per inference task. Every set
// defines a "system" and a "user" template.
type Catalog struct {
	sets map[string]*template.Template
}

var promptFuncs = template.FuncMap{
	"excerpt": Excerpt,
	"join":    func(items []string, sep string) string { return strings.Join(items, sep) },
}

// LoadCatalog parses the embedded prompt templates.
func LoadCatalog() (*Catalog, error) {
	files, err := promptFiles.ReadDir("prompts")
	if err != nil {
		return nil, fmt.Errorf("read prompts: %w", err)
	}

	c := &Catalog{sets: make(map[string]*template.Template, len(files))}
	for _, f := range files {
		name := strings.TrimSuffix(f.Name(), path.Ext(f.Name()))
		t, err := template.New(f.Name()).Funcs(promptFuncs).ParseFS(promptFiles, "prompts/"+f.Name())
		if err != nil {
			return nil, fmt.Errorf("parse prompt %s: %w", name, err)
		}
		if t.Lookup("system") == nil || t.Lookup("user") == nil {
			return nil, fmt.Errorf("prompt %s: must define system and user", name)
		}
		c.sets[name] = t
	}
	return c, nil
}

// Prompts is the catalog parsed at package init.
var Prompts = mustLoadCatalog()

func mustLoadCatalog() *Catalog {
	c, err := LoadCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

// Render executes the named template pair with data.
func (c *Catalog) Render(name string, data any) (Prompt, error) {
	t, ok := c.sets[name]
	if !ok {
		return Prompt{}, fmt.Errorf("unknown prompt %q", name)
	}

	var sys, user bytes.Buffer
	if err := t.ExecuteTemplate(&sys, "system", data); err != nil {
		return Prompt{}, fmt.Errorf("render %s system: %w", name, err)
	}
	if err := t.ExecuteTemplate(&user, "user", data); err != nil {
		return Prompt{}, fmt.Errorf("render %s user: %w", name, err)
	}
	return Prompt{System: sys.String(), User: user.String()}, nil
}

// Names returns the catalog's template names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.sets))
	for name := range c.sets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Excerpt returns at most n runes of s.
func Excerpt(n int, s string) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
