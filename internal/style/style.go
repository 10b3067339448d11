// Package style holds the lipgloss styles shared by the TUI and the CLI.
package style

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"tugas/internal/deadline"
)

// Bar glyphs.
const (
	BarFull  = "█"
	BarEmpty = "░"
)

var (
	// Tab styles
	Tab = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		Background(lipgloss.Color("236")).
		PaddingLeft(1).
		PaddingRight(1)

	ActiveTab = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			PaddingLeft(1).
			PaddingRight(1)

	// Tier colours
	Overdue  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true) // Red
	DueToday = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true) // Orange
	Urgent   = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true) // Amber
	Warning  = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))            // Yellow
	OK       = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))             // Green
	Invalid  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)

	// Command styles
	Key    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	Action = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	Bullet = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("86"))

	Border = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// ForTier returns the colour style of a tier.
func ForTier(t deadline.Tier) lipgloss.Style {
	switch t {
	case deadline.TierOverdue:
		return Overdue
	case deadline.TierDueToday:
		return DueToday
	case deadline.TierUrgent:
		return Urgent
	case deadline.TierWarning:
		return Warning
	case deadline.TierOK:
		return OK
	default:
		return Invalid
	}
}

// Icon is the glyph shown next to a tier label. Every icon is two cells
// wide with no variation selector, so table columns stay aligned.
func Icon(t deadline.Tier) string {
	switch t {
	case deadline.TierOverdue:
		return "⛔"
	case deadline.TierDueToday:
		return "🔥"
	case deadline.TierUrgent:
		return "🚨"
	case deadline.TierWarning:
		return "⏳"
	case deadline.TierOK:
		return "✅"
	default:
		return "❓"
	}
}

// Label renders the tier icon and label in the tier colour.
func Label(ct deadline.ClassifiedTask) string {
	return ForTier(ct.Tier).Render(Icon(ct.Tier) + " " + ct.Label)
}

// Bar renders the progress bar and percentage in the tier colour. Tasks with
// no valid deadline get a blank bar.
func Bar(ct deadline.ClassifiedTask) string {
	if !ct.Delta.Valid {
		return Invalid.Render(ct.Progress.Cells(BarEmpty, BarEmpty) + "   -")
	}
	return ForTier(ct.Tier).Render(ct.Progress.Cells(BarFull, BarEmpty)) +
		" " + lipgloss.NewStyle().Width(4).Align(lipgloss.Right).Render(percent(ct.Progress.Percent))
}

func percent(p int) string {
	return fmt.Sprintf("%d%%", p)
}

// TierName is the short Indonesian name of a tier, used in summaries.
func TierName(t deadline.Tier) string {
	switch t {
	case deadline.TierOverdue:
		return "Terlewat"
	case deadline.TierDueToday:
		return "Hari ini"
	case deadline.TierUrgent:
		return "Mendesak"
	case deadline.TierWarning:
		return "Segera"
	case deadline.TierOK:
		return "Aman"
	default:
		return "Format salah"
	}
}
