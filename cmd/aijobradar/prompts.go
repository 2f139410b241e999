package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amishk599/aijobradar/internal/ai"
)

var promptsCmd = &cobra.Command{
	Use:   "prompts [name]",
	Short: "List the prompt catalog or render one prompt with sample data",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPrompts,
}

func init() {
	rootCmd.AddCommand(promptsCmd)
}

const sampleDescription = "We are hiring a Senior ML Engineer in Berlin to build LLM-based retrieval " +
	"systems. Required: Python, PyTorch, 5+ years of experience. Nice to have: Kubernetes. " +
	"We offer visa sponsorship and a relocation package."

// samplePromptData holds representative template data for each prompt.
var samplePromptData = map[string]any{
	ai.PromptRelevance: ai.RelevanceInput{
		Title:       "Senior ML Engineer",
		TechFocus:   []string{"NLP", "LLMs"},
		Description: sampleDescription,
	},
	ai.PromptSkillExtraction: ai.DescriptionInput{Description: sampleDescription},
	ai.PromptFocusArea:       ai.DescriptionInput{Description: sampleDescription},
	ai.PromptVisaDetector:    ai.VisaInput{Description: sampleDescription, Funding: "Series B"},
	ai.PromptCompanyIntel:    ai.CompanyInput{Company: `{"name": "Nordic AI Lab"}`},
	ai.PromptMarketInsights:  ai.MarketInput{Jobs: `[{"title": "Senior ML Engineer", "location": "Berlin"}]`},
	ai.PromptRanking: ai.RankingInput{
		Skills:     []string{"Python", "PyTorch"},
		VisaNeeded: true,
		Job:        `{"title": "Senior ML Engineer", "required_skills": ["Python", "PyTorch"]}`,
	},
	ai.PromptSalaryNormalizer: ai.SalaryInput{Country: "Germany", RawSalary: "70-90k € p.a."},
}

func runPrompts(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		for _, name := range ai.Prompts.Names() {
			fmt.Fprintln(out, name)
		}
		return nil
	}

	name := args[0]
	data, ok := samplePromptData[name]
	if !ok {
		return fmt.Errorf("unknown prompt %q (known: %s)", name, strings.Join(ai.Prompts.Names(), ", "))
	}
	p, err := ai.Prompts.Render(name, data)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "--- system ---\n%s\n\n--- user ---\n%s\n", p.System, p.User)
	return nil
}
