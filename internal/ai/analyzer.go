package ai

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Analyzer runs the inference tasks the pipeline depends on. Each method
// renders its prompt, calls the provider and interprets the response.
type Analyzer struct {
	provider LLMProvider
	catalog  *Catalog
	logger   *slog.Logger
}

// NewAnalyzer creates an analyzer. A nil catalog uses Prompts.
func NewAnalyzer(provider LLMProvider, catalog *Catalog, logger *slog.Logger) *Analyzer {
	if catalog == nil {
		catalog = Prompts
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Analyzer{
		provider: provider,
		catalog:  catalog,
		logger:   logger,
	}
}

func (a *Analyzer) complete(ctx context.Context, name string, data any) (string, error) {
	p, err := a.catalog.Render(name, data)
	if err != nil {
		return "", err
	}
	resp, err := a.provider.Complete(ctx, p.System, p.User)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return resp, nil
}

// IsAIRole asks whether a listing is primarily an AI/ML role.
func (a *Analyzer) IsAIRole(ctx context.Context, title string, techFocus []string, description string) (bool, error) {
	resp, err := a.complete(ctx, PromptRelevance, RelevanceInput{
		Title:       title,
		TechFocus:   techFocus,
		Description: description,
	})
	if err != nil {
		return false, err
	}
	return ParseBool(resp), nil
}

// ExtractSkills returns the required and preferred skills of a description.
// When the call fails the required list comes from KeywordSkills.
func (a *Analyzer) ExtractSkills(ctx context.Context, description string) (required, preferred []string) {
	resp, err := a.complete(ctx, PromptSkillExtraction, DescriptionInput{Description: description})
	if err != nil {
		a.logger.Debug("skill extraction failed, using keyword scan", "error", err)
		return KeywordSkills(description), nil
	}
	return ParseSkills(resp, description)
}

// ExtractFocusAreas returns the AI subfields of a description, or nothing on error.
func (a *Analyzer) ExtractFocusAreas(ctx context.Context, description string) []string {
	resp, err := a.complete(ctx, PromptFocusArea, DescriptionInput{Description: description})
	if err != nil {
		a.logger.Debug("focus area extraction failed", "error", err)
		return nil
	}
	return ParseFocusAreas(resp)
}

// DetectVisa asks whether a posting offers visa sponsorship.
func (a *Analyzer) DetectVisa(ctx context.Context, description, funding string) (bool, error) {
	resp, err := a.complete(ctx, PromptVisaDetector, VisaInput{Description: description, Funding: funding})
	if err != nil {
		return false, err
	}
	return ParseBool(resp), nil
}

// MarketInsights returns a short narrative for a serialized sample of listings.
func (a *Analyzer) MarketInsights(ctx context.Context, sample string) (string, error) {
	return a.complete(ctx, PromptMarketInsights, MarketInput{Jobs: sample})
}
