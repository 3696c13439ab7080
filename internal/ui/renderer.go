package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/amitgawande/tools/internal/app"
)

type Options struct {
	NoColor bool
	Out     io.Writer
}

type Renderer struct {
	out     io.Writer
	isTTY   bool
	noColor bool
	lg      *lipgloss.Renderer
	styles  styles
}

type styles struct {
	info    lipgloss.Style
	ok      lipgloss.Style
	warn    lipgloss.Style
	error   lipgloss.Style
	label   lipgloss.Style
	summary lipgloss.Style
}

func NewRenderer(opts Options) *Renderer {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	isTTY := isTerminal(out)
	profile := termenv.EnvColorProfile()
	if opts.NoColor || !isTTY {
		profile = termenv.Ascii
	}
	// Each writer gets its own profile; stdout and stderr can differ.
	lg := lipgloss.NewRenderer(out)
	lg.SetColorProfile(profile)

	return &Renderer{
		out:     out,
		isTTY:   isTTY,
		noColor: opts.NoColor || profile == termenv.Ascii,
		lg:      lg,
		styles: styles{
			info:    lg.NewStyle().Foreground(lipgloss.Color("69")),
			ok:      lg.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
			warn:    lg.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
			error:   lg.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
			label:   lg.NewStyle().Foreground(lipgloss.Color("244")),
			summary: lg.NewStyle().Bold(true),
		},
	}
}

func (r *Renderer) Info(message string) {
	r.println(r.styles.info.Render(message))
}

func (r *Renderer) Warn(message string) {
	r.println(r.styles.warn.Render("warning") + " " + message)
}

func (r *Renderer) Success(message string) {
	r.println(r.styles.ok.Render(message))
}

func (r *Renderer) Skip(slug, reason string) {
	r.println(r.styles.label.Render("skip") + " " + slug + ": " + reason)
}

func (r *Renderer) Issue(severity, slug, message string) {
	style := r.styles.warn
	if severity == "error" {
		style = r.styles.error
	}
	r.println(style.Render(severity) + " " + r.styles.label.Render(slug) + ": " + message)
}

func (r *Renderer) Status(kind app.StatusKind, output, detail string) {
	style := r.styles.label
	switch kind {
	case app.StatusOK:
		style = r.styles.ok
	case app.StatusMissing:
		style = r.styles.error
	case app.StatusStale:
		style = r.styles.warn
	}
	msg := style.Render(string(kind)) + " " + output
	if strings.TrimSpace(detail) != "" {
		msg += " (" + detail + ")"
	}
	r.println(msg)
}

func (r *Renderer) CleanRemoved(path string) {
	r.println(r.styles.ok.Render("removed") + " " + path)
}

func (r *Renderer) CleanMissing(path string) {
	r.println(r.styles.warn.Render("missing") + " " + path)
}

func (r *Renderer) CleanSummary(removed, missing int) {
	msg := fmt.Sprintf("cleaned %d files, %d missing", removed, missing)
	r.println(r.styles.summary.Render(msg))
}

func (r *Renderer) Progress(label string, total int) app.ProgressReporter {
	if total <= 0 {
		return noopProgress{}
	}
	return &progressReporter{
		out:     r.out,
		render:  r,
		total:   total,
		label:   label,
		enabled: r.isTTY,
		model: progress.New(
			progress.WithWidth(28),
			progress.WithDefaultGradient(),
		),
	}
}

func (r *Renderer) println(message string) {
	if strings.TrimSpace(message) == "" {
		return
	}
	fmt.Fprintln(r.out, message)
}

func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// progressReporter redraws a single bar line on a terminal and stays silent
// otherwise, so piped output only carries the summary lines.
type progressReporter struct {
	out     io.Writer
	render  *Renderer
	model   progress.Model
	total   int
	current int
	label   string
	enabled bool
}

func (p *progressReporter) Increment(label string) {
	p.current++
	if label != "" {
		p.label = label
	}
	p.renderLine()
}

func (p *progressReporter) Done() {
	if !p.enabled {
		return
	}
	p.current = p.total
	p.renderLine()
	fmt.Fprintln(p.out)
}

func (p *progressReporter) renderLine() {
	if !p.enabled {
		return
	}
	percent := float64(p.current) / float64(p.total)
	bar := p.model.ViewAs(percent)
	line := fmt.Sprintf("\r%s %d/%d %s", bar, p.current, p.total, truncate(p.label, 48))
	fmt.Fprint(p.out, line+"\033[K")
}

type noopProgress struct{}

func (n noopProgress) Increment(string) {}
func (n noopProgress) Done()            {}

func truncate(value string, max int) string {
	runes := []rune(value)
	if len(runes) <= max {
		return value
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
