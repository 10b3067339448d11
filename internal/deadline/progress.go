package deadline

import (
	"math"
	"strings"
)

// BarCells is the fixed width of a progress bar.
const BarCells = 10

// ProgressBar is the time-remaining indicator of a task. Percent shrinks as
// the deadline gets closer; an overdue task shows a full bar at 0%.
type ProgressBar struct {
	Percent int
	Filled  int
	Total   int
	Overdue bool
}

// Empty reports the number of unfilled cells.
func (b ProgressBar) Empty() int {
	return b.Total - b.Filled
}

// Cells renders the bar with the given glyphs, e.g. Cells("█", "░").
func (b ProgressBar) Cells(full, empty string) string {
	return strings.Repeat(full, b.Filled) + strings.Repeat(empty, b.Empty())
}

// Renderer turns a DayDelta into a ProgressBar over a window of WindowDays.
type Renderer struct {
	WindowDays int
}

// NewRenderer returns a Renderer with the given window.
func NewRenderer(windowDays int) Renderer {
	return Renderer{WindowDays: windowDays}
}

// Render builds the bar for a delta of days. A window of zero or less gives 0%.
func (r Renderer) Render(days int) ProgressBar {
	if days < 0 {
		return ProgressBar{Percent: 0, Filled: BarCells, Total: BarCells, Overdue: true}
	}

	percent := 0
	if r.WindowDays > 0 {
		percent = int(math.Round(float64(days) / float64(r.WindowDays) * 100))
		percent = min(max(percent, 0), 100)
	}

	return ProgressBar{
		Percent: percent,
		Filled:  BarCells * percent / 100,
		Total:   BarCells,
	}
}
