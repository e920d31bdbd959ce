package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/prettymarkup/pkg/tree"
)

var (
	termPredicateStyle = lipgloss.NewStyle().Bold(true)
	termObjectStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	termTargetStyle    = lipgloss.NewStyle().Background(lipgloss.Color("58"))
)

// TerminalOption configures [RenderTerminal].
type TerminalOption func(*terminalRenderer)

type terminalRenderer struct {
	fullIRIs bool
	renderer *lipgloss.Renderer
}

// WithTerminalFullIRIs keeps predicate namespaces.
func WithTerminalFullIRIs() TerminalOption {
	return func(r *terminalRenderer) { r.fullIRIs = true }
}

// WithRenderer renders with a specific lipgloss renderer, e.g. one bound to
// the output stream so color support is detected for that stream.
func WithRenderer(lr *lipgloss.Renderer) TerminalOption {
	return func(r *terminalRenderer) { r.renderer = lr }
}

// TerminalColor returns the terminal color for a hue.
func TerminalColor(hue float64) lipgloss.Color {
	return lipgloss.Color(colorful.Hsl(hue, 0.6, 0.5).Hex())
}

// RenderTerminal renders rows as styled terminal lines.
func RenderTerminal(rows []tree.Row, opts ...TerminalOption) string {
	r := terminalRenderer{renderer: lipgloss.DefaultRenderer()}
	for _, opt := range opts {
		opt(&r)
	}

	var b strings.Builder
	for _, row := range rows {
		b.WriteString(r.line(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// TerminalLines is [RenderTerminal] split into lines, for pagers.
func TerminalLines(rows []tree.Row, opts ...TerminalOption) []string {
	out := strings.Split(strings.TrimSuffix(RenderTerminal(rows, opts...), "\n"), "\n")
	if len(rows) == 0 {
		return nil
	}
	return out
}

func (r terminalRenderer) line(row tree.Row) string {
	divider := r.renderer.NewStyle().Foreground(TerminalColor(row.Hue)).Render("│")
	text := termPredicateStyle.Renderer(r.renderer).Render(predicateText(row.Predicate, r.fullIRIs))
	if !row.Branch && !row.Hidden() {
		text += " " + termObjectStyle.Renderer(r.renderer).Render(row.Object)
	}
	if row.Target {
		text = termTargetStyle.Renderer(r.renderer).Render(text)
	}
	return strings.Repeat("  ", row.Indent) + divider + " " + text
}
