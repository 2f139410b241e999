package shell

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/aijobradar/internal/model"
	"github.com/amishk599/aijobradar/internal/pipeline"
)

var stageLabels = map[string]string{
	pipeline.StageSearchPortals:    "Searching platforms",
	pipeline.StageProcessListings:  "Processing listings",
	pipeline.StageFilterAIJobs:     "Filtering AI jobs",
	pipeline.StageEnrichJobs:       "Enriching jobs",
	pipeline.StageEnrichCompanies:  "Enriching company profiles",
	pipeline.StageGenerateInsights: "Generating market insights",
}

func stageLabel(stage string) string {
	if l, ok := stageLabels[stage]; ok {
		return l
	}
	return stage
}

// Progress forwards pipeline stage events to whatever is showing progress:
// the spinner while one runs, otherwise plain lines on w (nil w is silent).
// Its Observe method is meant to be passed as pipeline.Options.Observer.
type Progress struct {
	mu      sync.Mutex
	w       io.Writer
	program *tea.Program
}

// NewProgress returns a Progress that prints plain lines to w when no
// spinner is attached.
func NewProgress(w io.Writer) *Progress {
	return &Progress{w: w}
}

// Observe records one stage event.
func (p *Progress) Observe(e pipeline.StageEvent) {
	p.mu.Lock()
	prog, w := p.program, p.w
	p.mu.Unlock()

	if prog != nil {
		prog.Send(stageMsg(e))
		return
	}
	if w != nil && !e.Done {
		fmt.Fprintf(w, "[%d/%d] %s...\n", e.Index, e.Total, stageLabel(e.Stage))
	}
}

func (p *Progress) attach(prog *tea.Program) {
	p.mu.Lock()
	p.program = prog
	p.mu.Unlock()
}

type stageMsg pipeline.StageEvent

type runDoneMsg struct {
	res *model.RunResult
}

type loaderModel struct {
	spinner   spinner.Model
	run       func(ctx context.Context) *model.RunResult
	ctx       context.Context
	cancel    context.CancelFunc
	stage     pipeline.StageEvent
	result    *model.RunResult
	cancelled bool
	done      bool
}

func (m loaderModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.doRun())
}

func (m loaderModel) doRun() tea.Cmd {
	run, ctx := m.run, m.ctx
	return func() tea.Msg {
		return runDoneMsg{res: run(ctx)}
	}
}

func (m loaderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case runDoneMsg:
		m.result = msg.res
		m.done = true
		return m, tea.Quit
	case stageMsg:
		if !msg.Done {
			m.stage = pipeline.StageEvent(msg)
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" && !m.cancelled {
			// The run notices at its next stage boundary and returns a
			// partial result.
			m.cancelled = true
			m.cancel()
		}
	}
	return m, nil
}

func (m loaderModel) View() string {
	if m.done {
		return ""
	}
	if m.cancelled {
		return fmt.Sprintf("%s Cancelling...\n", m.spinner.View())
	}
	if m.stage.Stage == "" {
		return fmt.Sprintf("%s Starting search...\n", m.spinner.View())
	}
	return fmt.Sprintf("%s [%d/%d] %s...\n", m.spinner.View(), m.stage.Index, m.stage.Total, stageLabel(m.stage.Stage))
}

// runWithSpinner shows a spinner on out while run executes. It renders
// inline (no alt screen). Ctrl+C cancels the context passed to run.
func runWithSpinner(ctx context.Context, out io.Writer, progress *Progress, run func(ctx context.Context) *model.RunResult) (*model.RunResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))

	m := loaderModel{spinner: s, run: run, ctx: ctx, cancel: cancel}
	prog := tea.NewProgram(m, tea.WithOutput(out))
	progress.attach(prog)
	defer progress.attach(nil)

	final, err := prog.Run()
	if err != nil {
		return nil, fmt.Errorf("progress display: %w", err)
	}
	return final.(loaderModel).result, nil
}
