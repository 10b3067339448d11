package deadline

import (
	"cmp"
	"slices"
	"time"

	"tugas/internal/task"
)

// ClassifiedTask is a task with its urgency evaluated at some instant.
// Index is the task's position in the list it was evaluated from.
type ClassifiedTask struct {
	Task     task.Task
	Index    int
	Delta    DayDelta
	Tier     Tier
	Label    string
	Progress ProgressBar
}

// Engine produces the urgent, pressing and full views of a task list.
type Engine struct {
	classifier Classifier
	renderer   Renderer
	warnDays   int
}

// NewEngine builds an Engine from th. windowDays sets the progress bar window;
// zero or less falls back to th.WarningDays.
func NewEngine(th Thresholds, windowDays int) *Engine {
	if windowDays <= 0 {
		windowDays = th.WarningDays
	}
	return &Engine{
		classifier: NewClassifier(th),
		renderer:   NewRenderer(windowDays),
		warnDays:   th.WarningDays,
	}
}

// Thresholds returns the thresholds the engine classifies with.
func (e *Engine) Thresholds() Thresholds {
	return e.classifier.Thresholds
}

// Evaluate classifies a single task against now.
func (e *Engine) Evaluate(t task.Task, now time.Time) ClassifiedTask {
	ct := ClassifiedTask{Task: t}

	if days, err := ComputeDayDelta(t.Deadline, now); err == nil {
		ct.Delta = Days(days)
		ct.Progress = e.renderer.Render(days)
	} else {
		ct.Progress = ProgressBar{Total: BarCells}
	}
	ct.Tier, ct.Label = e.classifier.Classify(ct.Delta)
	return ct
}

// AnnotateAll classifies every task and keeps the input order.
func (e *Engine) AnnotateAll(tasks []task.Task, now time.Time) []ClassifiedTask {
	out := make([]ClassifiedTask, 0, len(tasks))
	for i, t := range tasks {
		ct := e.Evaluate(t, now)
		ct.Index = i
		out = append(out, ct)
	}
	return out
}

// UrgentTasks returns the tasks due between today and the warning threshold,
// both inclusive, nearest first. Overdue tasks are not included.
func (e *Engine) UrgentTasks(tasks []task.Task, now time.Time) []ClassifiedTask {
	return e.filterSorted(tasks, now, func(d DayDelta) bool {
		return d.Days >= 0 && d.Days <= e.warnDays
	})
}

// PressingTasks returns every task due no later than the warning threshold,
// overdue ones included, most overdue first.
func (e *Engine) PressingTasks(tasks []task.Task, now time.Time) []ClassifiedTask {
	return e.filterSorted(tasks, now, func(d DayDelta) bool {
		return d.Days <= e.warnDays
	})
}

// filterSorted keeps valid deltas accepted by keep and sorts them by delta.
// The sort is stable: equal deltas keep their input order.
func (e *Engine) filterSorted(tasks []task.Task, now time.Time, keep func(DayDelta) bool) []ClassifiedTask {
	out := make([]ClassifiedTask, 0, len(tasks))
	for _, ct := range e.AnnotateAll(tasks, now) {
		if ct.Delta.Valid && keep(ct.Delta) {
			out = append(out, ct)
		}
	}
	slices.SortStableFunc(out, func(a, b ClassifiedTask) int {
		return cmp.Compare(a.Delta.Days, b.Delta.Days)
	})
	return out
}

// Summary counts classified tasks per tier.
type Summary map[Tier]int

// Summarize counts tasks per tier.
func Summarize(tasks []ClassifiedTask) Summary {
	s := make(Summary, len(Tiers))
	for _, ct := range tasks {
		s[ct.Tier]++
	}
	return s
}

// NeedsAttention is the number of overdue, due-today and urgent tasks.
func (s Summary) NeedsAttention() int {
	return s[TierOverdue] + s[TierDueToday] + s[TierUrgent]
}
