package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/querent-dev/querent/pkg/core"
)

// Define styles using lipgloss
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			Background(lipgloss.Color("235")).
			Padding(0, 1).
			Margin(0, 0, 1, 0)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			Margin(1, 0, 1, 0)

	resultStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Margin(0, 0, 1, 2)

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	urlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33"))

	noDataStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			Margin(1, 0)
)

// sourceIcon returns a marker for the result's provenance.
func sourceIcon(source core.Source) string {
	switch source {
	case core.SourceYouTube:
		return "🎬"
	default:
		return "🌐"
	}
}

// formatResult renders one stored record as a bordered block.
func formatResult(r *core.Result) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s %s\n", sourceIcon(r.Source), lipgloss.NewStyle().Bold(true).Render(r.Title)))
	b.WriteString(urlStyle.Render(r.Link))
	if snippet := r.Snippet(); snippet != "" {
		b.WriteString("\n" + snippet)
	}
	b.WriteString("\n" + metaStyle.Render(fmt.Sprintf("%s · score %.1f", r.Source, r.RankScore)))

	return resultStyle.Render(b.String())
}

// formatResultList renders a full batch under a query header.
func formatResultList(query string, results []*core.Result) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Results for %q", query)) + "\n")
	if len(results) == 0 {
		b.WriteString(noDataStyle.Render("No stored results. Submit the query first with 'querent ask'.") + "\n")
		return b.String()
	}

	for _, r := range results {
		b.WriteString(formatResult(r) + "\n")
	}
	b.WriteString(metaStyle.Render(fmt.Sprintf("%d results", len(results))) + "\n")

	return b.String()
}
