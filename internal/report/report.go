package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/aijobradar/internal/model"
)

const (
	width     = 60
	maxSkills = 5
)

// Printer renders a RunResult as a human-readable report. Styles are bound to
// the output writer, so a non-terminal writer gets plain text.
type Printer struct {
	w   io.Writer
	now func() time.Time

	heading lipgloss.Style
	title   lipgloss.Style
	label   lipgloss.Style
	dim     lipgloss.Style
	good    lipgloss.Style
	bad     lipgloss.Style
}

// NewPrinter returns a printer writing to w. now is used for listing
// freshness and the completion time; time.Now when nil.
func NewPrinter(w io.Writer, now func() time.Time) *Printer {
	if now == nil {
		now = time.Now
	}
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:       w,
		now:     now,
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		label:   r.NewStyle().Foreground(lipgloss.Color("39")),
		dim:     r.NewStyle().Foreground(lipgloss.Color("245")),
		good:    r.NewStyle().Foreground(lipgloss.Color("42")),
		bad:     r.NewStyle().Foreground(lipgloss.Color("203")),
	}
}

// Banner prints the shell greeting.
func (p *Printer) Banner() {
	p.rule("=")
	p.line(p.heading.Render(center("EUROPEAN AI JOB SEARCH AGENT")))
	p.line(p.dim.Render(center("Find AI/ML Roles Across Europe")))
	p.rule("=")
	p.line("")
}

// Print writes the full report for res.
func (p *Printer) Print(res *model.RunResult) {
	now := p.now()

	p.line("")
	p.rule("=")
	p.line(p.heading.Render(fmt.Sprintf("RESULTS: %d AI Jobs Found", len(res.ProcessedListings))))
	p.rule("=")

	if res.Failed != "" {
		p.line("")
		p.line(p.bad.Render(fmt.Sprintf("Run stopped in stage %s", res.Failed)))
	}

	if len(res.ProcessedListings) == 0 {
		p.line("")
		p.line("No matching AI jobs found. Try different parameters.")
		if res.Failed != "" {
			p.line(res.Analysis)
		}
		return
	}

	p.line("")
	p.line(fmt.Sprintf("Found %d jobs, %d are AI-relevant", res.Metrics.TotalFound, res.Metrics.AIRelevant))
	p.line(fmt.Sprintf("Platforms: %s", strings.Join(res.Parameters.Platforms, ", ")))

	for i, job := range res.ProcessedListings {
		p.job(i+1, job, now)
	}

	if res.Analysis != "" {
		p.line("")
		p.rule("=")
		p.line(p.heading.Render("EUROPEAN AI JOB MARKET INSIGHTS"))
		p.rule("=")
		p.line(res.Analysis)
	}

	p.line("")
	p.rule("=")
	p.summary(res, now)
}

func (p *Printer) job(n int, job *model.JobListing, now time.Time) {
	p.line("")
	p.rule("-")
	p.line(p.title.Render(fmt.Sprintf("%d. %s", n, job.Title)))
	p.field("Company", companyName(job)+" | "+p.label.Render("Location: ")+job.Location)
	p.field("Level", job.ExperienceLevel+" | "+p.label.Render("Type: ")+job.JobType)

	visa := p.bad.Render("No Visa")
	if job.VisaSponsorship {
		visa = p.good.Render("Visa Support")
	}
	p.line("   " + visa + " | " + job.RemotePolicy)

	if len(job.RequiredSkills) > 0 {
		skills := job.RequiredSkills[:min(maxSkills, len(job.RequiredSkills))]
		p.field("Skills", strings.Join(skills, ", "))
	}
	if len(job.AIFocusAreas) > 0 {
		p.field("AI Focus", strings.Join(job.AIFocusAreas, ", "))
	}
	if job.Salary != "" {
		p.field("Salary", job.Salary)
	}
	p.field("Apply", job.ApplicationURL)
	p.line("   " + Freshness(job.PostedDate, now) + " | " + p.label.Render("Source: ") + job.Source)
}

func (p *Printer) summary(res *model.RunResult, now time.Time) {
	p.line(fmt.Sprintf("Search completed at %s", now.Format(time.TimeOnly)))
	p.line(fmt.Sprintf("Found %d relevant AI positions", len(res.ProcessedListings)))
	for _, platform := range res.Parameters.Platforms {
		p.line(p.dim.Render(fmt.Sprintf("  %s: %d raw listings", platform, res.Metrics.PlatformCounts[platform])))
	}
	if res.Parameters.MinSalaryEUR > 0 {
		p.line(fmt.Sprintf("Minimum salary requested: EUR %d", res.Parameters.MinSalaryEUR))
	}
	if res.Parameters.VisaSponsorship {
		sponsored := 0
		for _, job := range res.ProcessedListings {
			if job.VisaSponsorship {
				sponsored++
			}
		}
		p.line(fmt.Sprintf("Visa sponsorship requested: %d of %d listings mention it", sponsored, len(res.ProcessedListings)))
	}
}

// Freshness describes the age of a posting as "Today" or "Nd ago".
func Freshness(posted, now time.Time) string {
	days := int(now.Sub(posted).Hours() / 24)
	if days <= 0 {
		return "Today"
	}
	return fmt.Sprintf("%dd ago", days)
}

func companyName(job *model.JobListing) string {
	if job.Company == nil {
		return ""
	}
	return job.Company.Name
}

func (p *Printer) field(name, value string) {
	p.line("   " + p.label.Render(name+": ") + value)
}

func (p *Printer) rule(ch string) {
	p.line(p.dim.Render(strings.Repeat(ch, width)))
}

func (p *Printer) line(s string) {
	fmt.Fprintln(p.w, s)
}

func center(s string) string {
	pad := (width - len(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}
