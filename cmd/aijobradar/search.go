package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amishk599/aijobradar/internal/config"
	"github.com/amishk599/aijobradar/internal/model"
	"github.com/amishk599/aijobradar/internal/report"
	"github.com/amishk599/aijobradar/internal/shell"
)

var (
	searchKeywords   []string
	searchLocations  []string
	searchExperience []string
	searchSkills     []string
	searchPlatforms  []string
	searchMinSalary  int
	searchVisa       bool
	searchNoSamples  bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run one search from flags and print the report",
	Long:  "Runs a single non-interactive search. Exits non-zero when a pipeline stage fails.",
	RunE:  runSearch,
}

func init() {
	f := searchCmd.Flags()
	f.StringSliceVarP(&searchKeywords, "keywords", "k", shell.DefaultKeywords, "search keywords")
	f.StringSliceVarP(&searchLocations, "locations", "l", shell.DefaultLocations, "locations; \"Europe\" expands to major hubs")
	f.StringSliceVarP(&searchExperience, "experience", "e", shell.DefaultExperience, "experience levels (Junior, Mid, Senior)")
	f.StringSliceVarP(&searchSkills, "skills", "s", shell.DefaultSkills, "required skills")
	f.StringSliceVarP(&searchPlatforms, "platforms", "p", nil, "platforms to search (default: config or LinkedIn,StepStone)")
	f.IntVar(&searchMinSalary, "min-salary", 0, "minimum salary in EUR, shown in the report")
	f.BoolVar(&searchVisa, "visa", false, "require visa sponsorship")
	f.BoolVar(&searchNoSamples, "no-samples", false, "do not fall back to sample postings when every platform is empty")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	startup := setupLogger(debug, cmd.ErrOrStderr())

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		startup.Error("failed to load config", "error", err)
		return reported(err)
	}

	w, closeLog, err := logOutput(false)
	if err != nil {
		startup.Error("failed to open log output", "error", err)
		return reported(err)
	}
	defer closeLog()
	logger := setupLogger(debug, w)
	if searchNoSamples {
		cfg.Search.Fallback = config.FallbackNone
	}

	params := cfg.ApplyPlatforms(model.DefaultSearchParameters())
	params.Keywords = searchKeywords
	params.Locations = searchLocations
	params.ExperienceLevels = searchExperience
	params.RequiredSkills = searchSkills
	params.MinSalaryEUR = searchMinSalary
	params.VisaSponsorship = searchVisa
	if cmd.Flags().Changed("platforms") {
		params.Platforms = searchPlatforms
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := buildApp(ctx, cfg, nil, logger, startup)
	if err != nil {
		startup.Error("failed to start", "error", err)
		return reported(err)
	}
	defer a.Close()

	res := a.pipeline.Run(ctx, params)
	report.NewPrinter(cmd.OutOrStdout(), nil).Print(res)

	if res.Failed != "" {
		return fmt.Errorf("stage %s failed: %s", res.Failed, res.Analysis)
	}
	return nil
}
