package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/amishk599/aijobradar/internal/model"
	"github.com/amishk599/aijobradar/internal/report"
)

// Runner executes one search run.
type Runner interface {
	Run(ctx context.Context, params model.SearchParameters) *model.RunResult
}

// Defaults used when a prompt is left empty.
var (
	DefaultKeywords   = []string{"AI", "Machine Learning"}
	DefaultLocations  = []string{"Europe"}
	DefaultExperience = []string{model.LevelMid, model.LevelSenior}
	DefaultSkills     = []string{"Python", "TensorFlow"}
)

// Options configure a Shell.
type Options struct {
	// Base supplies every parameter the prompts do not ask for (platforms,
	// employment types, remote policy).
	Base     model.SearchParameters
	Spinner  bool
	Progress *Progress
	Now      func() time.Time
}

// Shell is the interactive prompt loop: collect parameters, run, print the
// report, repeat.
type Shell struct {
	in       *bufio.Reader
	out      io.Writer
	runner   Runner
	printer  *report.Printer
	progress *Progress
	opts     Options
	logger   *slog.Logger
}

// New returns a shell reading answers from in and writing to out.
func New(in io.Reader, out io.Writer, runner Runner, opts Options, logger *slog.Logger) *Shell {
	if opts.Progress == nil {
		opts.Progress = NewProgress(nil)
	}
	return &Shell{
		in:       bufio.NewReader(in),
		out:      out,
		runner:   runner,
		printer:  report.NewPrinter(out, opts.Now),
		progress: opts.Progress,
		opts:     opts,
		logger:   logger,
	}
}

// Run loops until the user declines another search, input ends, or ctx is
// cancelled. Failures inside a run are reported and offered for retry; Run
// itself only returns nil.
func (s *Shell) Run(ctx context.Context) error {
	s.printer.Banner()

	for {
		params, err := s.collectParameters(ctx)
		if err != nil {
			return s.exit(err)
		}

	retry:
		for {
			if ctx.Err() != nil {
				fmt.Fprintln(s.out, "\nOperation cancelled by user.")
				return nil
			}

			res, err := s.search(ctx, params)
			if err != nil {
				fmt.Fprintf(s.out, "\nError: %v\n", err)
			} else {
				s.printer.Print(res)
				if res.Failed == "" {
					break retry
				}
				fmt.Fprintf(s.out, "\nError: %s\n", res.Analysis)
			}

			again, err := s.confirm(ctx, "\nRetry with same parameters? (y/N): ")
			if err != nil {
				return s.exit(err)
			}
			if !again {
				return nil
			}
		}

		again, err := s.confirm(ctx, "\nPerform another search? (y/N): ")
		if err != nil {
			return s.exit(err)
		}
		if !again {
			return nil
		}
	}
}

// search runs one search and converts a panic anywhere below into an error.
func (s *Shell) search(ctx context.Context, params model.SearchParameters) (res *model.RunResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("search panicked", "panic", r)
			err = fmt.Errorf("unexpected failure: %v", r)
		}
	}()

	if s.opts.Spinner {
		res, err = runWithSpinner(ctx, s.out, s.progress, func(ctx context.Context) *model.RunResult {
			return s.runner.Run(ctx, params)
		})
		if err == nil {
			return res, nil
		}
		s.logger.Warn("spinner unavailable, running without it", "error", err)
		s.opts.Spinner = false
	}
	return s.runner.Run(ctx, params), nil
}

func (s *Shell) collectParameters(ctx context.Context) (model.SearchParameters, error) {
	params := s.opts.Base.Clone()

	fmt.Fprintln(s.out, "Configure Your Search (press Enter for defaults)")
	fmt.Fprintln(s.out, strings.Repeat("-", 50))

	answers := make([]string, 0, 6)
	for _, prompt := range []string{
		"Keywords (comma separated, e.g., AI,ML,LLM): ",
		"Locations (comma separated, e.g., Berlin,Remote): ",
		"Experience (Junior/Mid/Senior, comma separated): ",
		"Required Skills (comma separated, e.g., Python,PyTorch): ",
		"Minimum Salary (EUR, e.g., 70000): ",
		"Require Visa Sponsorship? (y/N): ",
	} {
		answer, err := s.ask(ctx, prompt)
		if err != nil {
			return params, err
		}
		answers = append(answers, answer)
	}

	params.Keywords = listOr(answers[0], DefaultKeywords)
	params.Locations = listOr(answers[1], DefaultLocations)
	params.ExperienceLevels = listOr(answers[2], DefaultExperience)
	params.RequiredSkills = listOr(answers[3], DefaultSkills)
	params.MinSalaryEUR = s.parseSalary(answers[4])
	params.VisaSponsorship = isYes(answers[5])
	return params, nil
}

func (s *Shell) parseSalary(answer string) int {
	if answer == "" {
		return 0
	}
	n, err := strconv.Atoi(strings.NewReplacer(",", "", ".", "", " ", "").Replace(answer))
	if err != nil || n < 0 {
		fmt.Fprintf(s.out, "Ignoring minimum salary %q: not a whole number of euros\n", answer)
		return 0
	}
	return n
}

func (s *Shell) confirm(ctx context.Context, prompt string) (bool, error) {
	answer, err := s.ask(ctx, prompt)
	if err != nil {
		return false, err
	}
	return isYes(answer), nil
}

type readResult struct {
	line string
	err  error
}

// ask prints prompt and reads one trimmed line. A final line without a
// newline is still returned; io.EOF is reported only when nothing was read.
// Cancelling ctx abandons the pending read.
func (s *Shell) ask(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(s.out, prompt)

	ch := make(chan readResult, 1)
	go func() {
		line, err := s.in.ReadString('\n')
		ch <- readResult{line, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		if r.err != nil && !(errors.Is(r.err, io.EOF) && r.line != "") {
			return "", r.err
		}
		return strings.TrimSpace(r.line), nil
	}
}

func (s *Shell) exit(err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintln(s.out, "\nOperation cancelled by user.")
		return nil
	case !errors.Is(err, io.EOF):
		s.logger.Error("reading input", "error", err)
	}
	fmt.Fprintln(s.out)
	return nil
}

func listOr(answer string, def []string) []string {
	var out []string
	for _, part := range strings.Split(answer, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), def...)
	}
	return out
}

func isYes(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), "y")
}
