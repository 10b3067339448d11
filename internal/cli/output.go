package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"tugas/internal/deadline"
	"tugas/internal/style"
)

var headers = []string{"No", "Nama Tugas", "Mata Pelajaran", "Deadline", "Status", "Sisa Waktu"}

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func renderStatus(ct deadline.ClassifiedTask) string {
	return style.Label(ct) + "  " + style.Bar(ct)
}

// renderTable lays out classified tasks in the same columns as the
// interactive tables. No is the task's position in the file, from 1.
func renderTable(cts []deadline.ClassifiedTask) string {
	rows := make([][]string, 0, len(cts))
	for _, ct := range cts {
		rows = append(rows, []string{
			strconv.Itoa(ct.Index + 1),
			ct.Task.Name,
			ct.Task.Subject,
			ct.Task.Deadline,
			style.Label(ct),
			style.Bar(ct),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(style.Border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return style.Header.Padding(0, 1)
			}
			if col == 0 {
				return cellStyle.Align(lipgloss.Right)
			}
			return cellStyle
		}).
		Render()
}

// renderSummary is the footer under the full list.
func renderSummary(total int, s deadline.Summary) string {
	parts := []string{fmt.Sprintf("Total: %d", total)}
	for _, tier := range deadline.Tiers {
		if n := s[tier]; n > 0 {
			parts = append(parts, style.ForTier(tier).Render(fmt.Sprintf("%s %s: %d", style.Icon(tier), style.TierName(tier), n)))
		}
	}
	return strings.Join(parts, style.Bullet.Render(" • "))
}
