package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/amishk599/aijobradar/internal/model"
	"github.com/amishk599/aijobradar/internal/shell"
)

var noSpinner bool

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive search prompt (default)",
	Long:  "Prompts for search parameters, runs the search and prints the report, then offers another search.",
	RunE:  runShell,
}

func init() {
	shellCmd.Flags().BoolVar(&noSpinner, "no-spinner", false, "print plain progress lines instead of a spinner")
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	spinner := !noSpinner && isatty.IsTerminal(os.Stdout.Fd())
	return startShell(ctx, os.Stdin, os.Stdout, os.Stderr, spinner)
}

// startShell loads config and wires the app with logs on stderr, then hands
// the terminal to the shell. Only from that point are logs dropped (spinner)
// or redirected to --log-file.
func startShell(ctx context.Context, in io.Reader, out, stderr io.Writer, spinner bool) error {
	startup := setupLogger(debug, stderr)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		startup.Error("failed to load config", "error", err)
		return reported(err)
	}

	w, closeLog, err := logOutput(spinner)
	if err != nil {
		startup.Error("failed to open log output", "error", err)
		return reported(err)
	}
	defer closeLog()
	logger := setupLogger(debug, w)

	var progress *shell.Progress
	if spinner {
		progress = shell.NewProgress(nil)
	} else {
		progress = shell.NewProgress(out)
	}

	a, err := buildApp(ctx, cfg, progress.Observe, logger, startup)
	if err != nil {
		startup.Error("failed to start", "error", err)
		return reported(err)
	}
	defer a.Close()

	sh := shell.New(in, out, a.pipeline, shell.Options{
		Base:     cfg.ApplyPlatforms(model.DefaultSearchParameters()),
		Spinner:  spinner,
		Progress: progress,
	}, logger)
	return sh.Run(ctx)
}
