package style

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"

	"tugas/internal/deadline"
	"tugas/internal/task"
)

func classify(days int, valid bool) deadline.ClassifiedTask {
	ct := deadline.ClassifiedTask{Task: task.Task{Name: "x"}}
	if valid {
		ct.Delta = deadline.Days(days)
		ct.Progress = deadline.NewRenderer(deadline.DefaultWarningDays).Render(days)
	} else {
		ct.Progress = deadline.ProgressBar{Total: deadline.BarCells}
	}
	ct.Tier, ct.Label = deadline.NewClassifier(deadline.DefaultThresholds()).Classify(ct.Delta)
	return ct
}

func TestBar(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	tests := []struct {
		name string
		ct   deadline.ClassifiedTask
		want string
	}{
		{"overdue", classify(-2, true), strings.Repeat(BarFull, 10) + "   0%"},
		{"today", classify(0, true), strings.Repeat(BarEmpty, 10) + "   0%"},
		{"half", classify(4, true), strings.Repeat(BarFull, 5) + strings.Repeat(BarEmpty, 5) + "  57%"},
		{"full", classify(30, true), strings.Repeat(BarFull, 10) + " 100%"},
		{"invalid", classify(0, false), strings.Repeat(BarEmpty, 10) + "   -"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Bar(tt.ct))
		})
	}
}

func TestLabel(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	assert.Equal(t, "⛔ TERLEWAT", Label(classify(-1, true)))
	assert.Equal(t, "🚨 MENDESAK - 2 hari lagi", Label(classify(2, true)))
	assert.Equal(t, "❓ Format Salah", Label(classify(0, false)))
}

func TestTierHelpersCoverEveryTier(t *testing.T) {
	seen := map[string]bool{}
	for _, tier := range deadline.Tiers {
		name := TierName(tier)
		assert.NotEmpty(t, name)
		assert.False(t, seen[name], "duplicate name %q", name)
		seen[name] = true
		assert.NotEmpty(t, Icon(tier))
	}
}

func TestIconsShareOneCellWidth(t *testing.T) {
	for _, tier := range deadline.Tiers {
		icon := Icon(tier)
		assert.NotContains(t, icon, "\ufe0f", tier.String())
		assert.Equal(t, 2, lipgloss.Width(icon), tier.String())
	}
}
