// Package report renders the post-publish recap shown to the operator.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"bottin/internal/redact"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			Padding(0, 1)
	labelStyle = lipgloss.NewStyle().Width(38)
	countStyle = lipgloss.NewStyle().Bold(true)
	noteStyle  = lipgloss.NewStyle().Faint(true)
)

// Render formats the redaction summary for the terminal.
func Render(s redact.Summary, outputPath string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Public member CSV"))
	b.WriteString("\n")

	line := func(label string, count int) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(countStyle.Render(fmt.Sprintf("%d", count)))
		b.WriteString("\n")
	}

	line("Public members (consented)", s.Public)
	line("Pending, profile filled", s.PendingWithProfile)
	line("Pending, profile not filled", s.PendingWithoutProfile)
	line("Excluded members (refused)", s.Excluded.Total)

	b.WriteString(noteStyle.Render(fmt.Sprintf(
		"excluded by type: %d regular, %d student, %d partner (aggregated in the stats row)",
		s.Excluded.Regular, s.Excluded.Student, s.Excluded.Partner)))
	b.WriteString("\n")

	if len(s.MaskedColumns) > 0 {
		b.WriteString(noteStyle.Render("masked for pending members: " + strings.Join(s.MaskedColumns, ", ")))
		b.WriteString("\n")
	}

	b.WriteString("\nWrote " + outputPath + "\n")
	b.WriteString(noteStyle.Render("Publish this file only; the complete export must never leave the machine."))
	b.WriteString("\n")

	return b.String()
}
