package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tugas/internal/deadline"
	"tugas/internal/style"
)

// homePreview caps the pressing tasks listed on the summary tab.
const homePreview = 5

func (m model) View() string {
	if m.editing {
		return m.editView()
	}

	header := style.Header.Render("📝 tugas - daftar tugas & tenggat")

	tabs := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		if i+1 == m.activeTab {
			tabs = append(tabs, style.ActiveTab.Render(name))
		} else {
			tabs = append(tabs, style.Tab.Render(name))
		}
	}
	tabRow := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	var content string
	switch {
	case m.activeTab == tabHome:
		content = m.homeView()
	case len(m.views[m.activeTab-tabAll]) == 0:
		content = lipgloss.NewStyle().Padding(1).Render(m.emptyMessage())
	default:
		content = m.tables[m.activeTab-tabAll].View()
	}

	footer := m.help.View(m.keys)
	if m.statusMsg != "" && m.now().Before(m.statusExpiry) {
		statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.statusColor))
		footer += "\n> " + statusStyle.Render(m.statusMsg)
	}

	return lipgloss.JoinVertical(lipgloss.Top,
		header,
		"",
		tabRow,
		content,
		"",
		footer,
	)
}

func (m model) emptyMessage() string {
	switch m.activeTab {
	case tabUrgent, tabPressing:
		return style.OK.Render("🎉 Semua aman! Tidak ada tugas yang mendekati tenggat.")
	default:
		return style.Warning.Render("❌ Tidak ada tugas. Tambahkan tugas baru!")
	}
}

func (m model) homeView() string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Padding(1, 1, 0, 1).Render("Selamat datang! Berikut ringkasan tugasmu."))
	b.WriteString("\n\nStatistik:\n")
	fmt.Fprintf(&b, "  • Total tugas: %d\n", len(m.tasks))
	for _, tier := range deadline.Tiers {
		n := m.summary[tier]
		if n == 0 && tier == deadline.TierInvalid {
			continue
		}
		fmt.Fprintf(&b, "  • %s: %s\n", style.TierName(tier), style.ForTier(tier).Render(fmt.Sprint(n)))
	}

	pressing := m.views[tabPressing-tabAll]
	if len(pressing) == 0 {
		b.WriteString("\n" + style.OK.Render("🎉 Semua aman! Tidak ada tugas yang mendekati tenggat."))
		return b.String()
	}

	th := m.engine.Thresholds()
	fmt.Fprintf(&b, "\n%s\n", style.Overdue.Render(fmt.Sprintf("Perlu perhatian (≤ %d hari):", th.WarningDays)))
	for i, ct := range pressing {
		if i == homePreview {
			fmt.Fprintf(&b, "  … dan %d lainnya (tab [4])\n", len(pressing)-homePreview)
			break
		}
		fmt.Fprintf(&b, "  %s  %s %s\n", style.Bar(ct), ct.Task.Name, style.Bullet.Render("("+ct.Task.Subject+")"))
		fmt.Fprintf(&b, "      %s\n", style.Label(ct))
	}
	return b.String()
}

func (m model) editView() string {
	fields := make([]string, 0, len(m.inputs))
	for i, input := range m.inputs {
		label := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")).Render(fieldLabels[i])
		fields = append(fields, label+"\n"+input.View())
	}
	content := lipgloss.JoinVertical(lipgloss.Top, fields...)

	title := "➕ Tambah Tugas Baru"
	if m.editingRow >= 0 {
		title = "✏️ Ubah Tugas"
	}
	header := style.Header.Render(title)

	sep := " " + style.Bullet.Render("•") + " "
	footer := style.Key.Render("tab") + ": " + style.Action.Render("kolom berikutnya") + sep +
		style.Key.Render("shift+tab") + ": " + style.Action.Render("kolom sebelumnya") + sep +
		style.Key.Render("enter") + ": " + style.Action.Render("simpan") + sep +
		style.Key.Render("esc") + ": " + style.Action.Render("batal")

	if m.statusMsg != "" && m.now().Before(m.statusExpiry) {
		statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.statusColor))
		footer += "\n> " + statusStyle.Render(m.statusMsg)
	}

	return lipgloss.JoinVertical(lipgloss.Top,
		header,
		"",
		content,
		"",
		footer,
	)
}
