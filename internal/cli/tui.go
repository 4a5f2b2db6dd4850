package cli

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/bigo/pkg/analyzer"
)

// Live view styles
var (
	livePromptStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	liveInputStyle  = lipgloss.NewStyle().Foreground(colorWhite)
	liveDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	liveErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
	liveBigOStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
)

// maxLiveEntries bounds the list of submitted expressions shown below the prompt.
const maxLiveEntries = 8

// =============================================================================
// LiveModel - Interactive expression analysis
// =============================================================================

// LiveEntry is an expression submitted with enter.
type LiveEntry struct {
	Input  string
	Result analyzer.Result
}

// LiveModel is the bubbletea model for the live analyzer. Every keystroke
// re-runs the analysis of the current line.
type LiveModel struct {
	Input     string
	Preview   string
	Result    analyzer.Result
	Submitted []LiveEntry
	Width     int
}

// NewLiveModel creates an empty live model.
func NewLiveModel() LiveModel {
	return LiveModel{Width: 80}
}

func (m LiveModel) Init() tea.Cmd {
	return nil
}

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if strings.TrimSpace(m.Input) == "" {
				return m, nil
			}
			m.Submitted = append(m.Submitted, LiveEntry{Input: m.Input, Result: m.Result})
			m.setInput("")
		case tea.KeyBackspace:
			if r := []rune(m.Input); len(r) > 0 {
				m.setInput(string(r[:len(r)-1]))
			}
		case tea.KeyCtrlU:
			m.setInput("")
		case tea.KeySpace:
			m.setInput(m.Input + " ")
		case tea.KeyRunes:
			m.setInput(m.Input + string(msg.Runes))
		}
	case tea.WindowSizeMsg:
		m.Width = msg.Width
	}
	return m, nil
}

// setInput replaces the current line and refreshes the preview and result.
func (m *LiveModel) setInput(s string) {
	m.Input = s
	if strings.TrimSpace(s) == "" {
		m.Preview = ""
		m.Result = analyzer.Result{}
		return
	}
	m.Preview = analyzer.NormalizePreview(s)
	m.Result = analyzer.Analyze(s)
}

func (m LiveModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("bigo live"))
	b.WriteString("\n")
	b.WriteString(liveDimStyle.Render("type an expression  ⏎ keep  ctrl+u clear  esc quit"))
	b.WriteString("\n\n")

	b.WriteString(livePromptStyle.Render("› ") + liveInputStyle.Render(m.Input) + liveDimStyle.Render("▏"))
	b.WriteString("\n")

	if m.Preview != "" {
		b.WriteString(liveDimStyle.Render("  " + m.Preview))
		b.WriteString("\n")
		b.WriteString("  " + liveResult(m.Result))
		b.WriteString("\n")
	}

	if len(m.Submitted) > 0 {
		b.WriteString("\n")
		start := max(0, len(m.Submitted)-maxLiveEntries)
		for _, e := range m.Submitted[start:] {
			line := truncate(e.Input, max(10, m.Width/2))
			b.WriteString(liveDimStyle.Render("  "+line+" ") + liveResult(e.Result))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// liveResult renders the Big-O class or the error of a result.
func liveResult(r analyzer.Result) string {
	if r.OK {
		return liveBigOStyle.Render(r.BigO)
	}
	return liveErrorStyle.Render(iconError + " " + r.Error)
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
