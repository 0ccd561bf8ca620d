package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

type AppData struct {
	Theme         string
	Header        string
	Tabs          []string
	ActiveTab     int
	LeftPane      string
	RightPane     string
	StatusLine    string
	StatusIsError bool
	Footer        string
	Palette       string
}

type styles struct {
	header   lipgloss.Style
	tab      lipgloss.Style
	tabOn    lipgloss.Style
	status   lipgloss.Style
	err      lipgloss.Style
	panel    lipgloss.Style
	footer   lipgloss.Style
	muted    lipgloss.Style
	accent   lipgloss.Style
	done     lipgloss.Style
	skipped  lipgloss.Style
	selected lipgloss.Style
	today    lipgloss.Style
	quadrant lipgloss.Style
}

func stylesFor(theme string) styles {
	accent, text, muted := lipgloss.Color("12"), lipgloss.Color("15"), lipgloss.Color("8")
	if theme == ThemeLight {
		accent, text, muted = lipgloss.Color("4"), lipgloss.Color("0"), lipgloss.Color("7")
	}
	return styles{
		header:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		tab:      lipgloss.NewStyle().Padding(0, 1).Foreground(muted),
		tabOn:    lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true).Foreground(accent),
		status:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		err:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		panel:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(muted).Padding(0, 1),
		footer:   lipgloss.NewStyle().Foreground(muted),
		muted:    lipgloss.NewStyle().Foreground(muted),
		accent:   lipgloss.NewStyle().Foreground(accent),
		done:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		skipped:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		selected: lipgloss.NewStyle().Reverse(true),
		today:    lipgloss.NewStyle().Bold(true).Foreground(text).Underline(true),
		quadrant: lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(muted).Width(24).Padding(0, 1),
	}
}

func RenderApp(data AppData) string {
	st := stylesFor(data.Theme)
	left := st.panel.Width(58).Render(data.LeftPane)
	right := st.panel.Width(58).Render(data.RightPane)
	row := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	tabs := make([]string, 0, len(data.Tabs))
	for i, tab := range data.Tabs {
		if i == data.ActiveTab {
			tabs = append(tabs, st.tabOn.Render(tab))
			continue
		}
		tabs = append(tabs, st.tab.Render(tab))
	}

	status := st.status.Render(data.StatusLine)
	if data.StatusIsError {
		status = st.err.Render(data.StatusLine)
	}

	lines := []string{st.header.Render(data.Header)}
	if len(tabs) > 0 {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	}
	lines = append(lines, row)
	if data.Palette != "" {
		lines = append(lines, st.accent.Render(data.Palette))
	}
	lines = append(lines, status)
	if data.Footer != "" {
		lines = append(lines, st.footer.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// RenderMarkdown renders md with the glamour style matching theme and falls
// back to the raw text when rendering fails.
func RenderMarkdown(md string, theme string, width int) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	style := ThemeDark
	if theme == ThemeLight {
		style = ThemeLight
	}
	opts := []glamour.TermRendererOption{glamour.WithStandardStyle(style)}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
