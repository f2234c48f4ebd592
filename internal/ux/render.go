package ux

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/swarm/internal/board"
	"github.com/felixgeelhaar/swarm/internal/lifecycle"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	passStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("2")).
			Bold(true)

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

// RenderSummary renders the final run summary for terminal display
func RenderSummary(s *lifecycle.Summary, noColor bool) string {
	var sb strings.Builder

	sb.WriteString(style(titleStyle, fmt.Sprintf("Swarm run: %s", s.ProjectName), noColor))
	sb.WriteString("\n\n")

	for _, f := range s.Features {
		marker := style(passStyle, "PASS", noColor)
		if !f.Success {
			marker = style(failStyle, "FAIL", noColor)
		}
		fmt.Fprintf(&sb, "  %s  %s  score=%d iterations=%d\n",
			marker, f.FeatureID, f.ReviewScore, f.Iterations)
		for _, note := range f.Notes {
			fmt.Fprintf(&sb, "        %s\n", style(dimStyle, note, noColor))
		}
	}

	sb.WriteString("\n")
	fmt.Fprintf(&sb, "  %s %d done, %d failed of %d tasks\n",
		style(labelStyle, "Board:", noColor), s.TaskBoard.Done, s.TaskBoard.Failed, s.TaskBoard.Total)
	fmt.Fprintf(&sb, "  %s %d\n", style(labelStyle, "Global score:", noColor), s.GlobalScore)

	return sb.String()
}

// RenderBoard renders the task board for terminal display
func RenderBoard(b board.Board, noColor bool) string {
	var sb strings.Builder

	sb.WriteString(style(titleStyle, fmt.Sprintf("Task board: %s", b.ProjectName), noColor))
	sb.WriteString("\n\n")

	ids := make([]string, 0, len(b.Entries))
	byID := make(map[string]board.Entry, len(b.Entries))
	for id, entry := range b.Entries {
		ids = append(ids, id.String())
		byID[id.String()] = entry
	}
	sort.Strings(ids)

	for _, id := range ids {
		entry := byID[id]

		marker := dimStyle
		switch entry.Status {
		case board.StatusDone:
			marker = passStyle
		case board.StatusFailed:
			marker = failStyle
		}
		fmt.Fprintf(&sb, "  %-12s %s", style(marker, string(entry.Status), noColor), id)
		if entry.ResultSummary != "" {
			fmt.Fprintf(&sb, "  %s", style(dimStyle, entry.ResultSummary, noColor))
		}
		sb.WriteString("\n")
	}

	stats := b.Stats()
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "  %s %d done, %d failed of %d\n",
		style(labelStyle, "Totals:", noColor), stats.Done, stats.Failed, stats.Total)

	return sb.String()
}

func style(s lipgloss.Style, text string, noColor bool) string {
	if noColor {
		return text
	}
	return s.Render(text)
}
