package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Pager styles
var (
	pagerTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	pagerDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	pagerStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
)

// pagerChrome is the number of lines taken by the header and footer.
const pagerChrome = 4

// =============================================================================
// PagerModel - Scrollable row viewer
// =============================================================================

// PagerModel is the bubbletea model for `prettymarkup view`.
type PagerModel struct {
	Title  string
	Lines  []string
	Offset int
	Height int
}

// NewPagerModel creates a pager over pre-rendered terminal lines.
func NewPagerModel(title string, lines []string) PagerModel {
	return PagerModel{
		Title:  title,
		Lines:  lines,
		Height: 20,
	}
}

func (m PagerModel) Init() tea.Cmd {
	return nil
}

func (m PagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.Offset--
		case "down", "j":
			m.Offset++
		case "pgup", "b":
			m.Offset -= m.Height
		case "pgdown", "f", " ":
			m.Offset += m.Height
		case "home", "g":
			m.Offset = 0
		case "end", "G":
			m.Offset = m.maxOffset()
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - pagerChrome
		if m.Height < 1 {
			m.Height = 1
		}
	}
	m.Offset = max(0, min(m.Offset, m.maxOffset()))
	return m, nil
}

func (m PagerModel) maxOffset() int {
	return max(0, len(m.Lines)-m.Height)
}

func (m PagerModel) View() string {
	var b strings.Builder

	b.WriteString(pagerTitleStyle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(pagerDimStyle.Render("↑/↓ scroll  pgup/pgdn page  g/G top/bottom  q quit"))
	b.WriteString("\n")

	end := min(m.Offset+m.Height, len(m.Lines))
	for i := m.Offset; i < end; i++ {
		b.WriteString(m.Lines[i])
		b.WriteString("\n")
	}

	b.WriteString(pagerStatusStyle.Render(m.status()))
	b.WriteString("\n")
	return b.String()
}

func (m PagerModel) status() string {
	if len(m.Lines) == 0 {
		return "no rows"
	}
	end := min(m.Offset+m.Height, len(m.Lines))
	return fmt.Sprintf("rows %d-%d of %d", m.Offset+1, end, len(m.Lines))
}
