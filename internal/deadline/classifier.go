package deadline

import "fmt"

// Default thresholds, in days.
const (
	DefaultUrgentDays  = 3
	DefaultWarningDays = 7
)

// Tier is the urgency bucket of a task.
type Tier int

const (
	TierInvalid Tier = iota
	TierOverdue
	TierDueToday
	TierUrgent
	TierWarning
	TierOK
)

// Tiers lists every tier from most to least pressing, Invalid last.
var Tiers = []Tier{TierOverdue, TierDueToday, TierUrgent, TierWarning, TierOK, TierInvalid}

func (t Tier) String() string {
	switch t {
	case TierOverdue:
		return "overdue"
	case TierDueToday:
		return "due-today"
	case TierUrgent:
		return "urgent"
	case TierWarning:
		return "warning"
	case TierOK:
		return "ok"
	default:
		return "invalid"
	}
}

// DayDelta is a signed whole-day distance to a deadline. Valid is false when
// the deadline could not be parsed.
type DayDelta struct {
	Days  int
	Valid bool
}

// Days returns a valid DayDelta of n days.
func Days(n int) DayDelta {
	return DayDelta{Days: n, Valid: true}
}

// Thresholds are the inclusive upper bounds of the Urgent and Warning tiers.
type Thresholds struct {
	UrgentDays  int
	WarningDays int
}

// DefaultThresholds returns 3 and 7 days.
func DefaultThresholds() Thresholds {
	return Thresholds{UrgentDays: DefaultUrgentDays, WarningDays: DefaultWarningDays}
}

// Classifier maps a DayDelta to a tier and label.
type Classifier struct {
	Thresholds Thresholds
}

// NewClassifier returns a Classifier using th.
func NewClassifier(th Thresholds) Classifier {
	return Classifier{Thresholds: th}
}

// Classify returns the tier and display label for d. The branches are checked
// in order, so a delta that fits both Urgent and Warning is Urgent.
func (c Classifier) Classify(d DayDelta) (Tier, string) {
	switch {
	case !d.Valid:
		return TierInvalid, "Format Salah"
	case d.Days < 0:
		return TierOverdue, "TERLEWAT"
	case d.Days == 0:
		return TierDueToday, "HARI INI"
	case d.Days <= c.Thresholds.UrgentDays:
		return TierUrgent, fmt.Sprintf("MENDESAK - %d hari lagi", d.Days)
	case d.Days <= c.Thresholds.WarningDays:
		return TierWarning, fmt.Sprintf("SEGERA - %d hari lagi", d.Days)
	default:
		return TierOK, fmt.Sprintf("%d hari lagi", d.Days)
	}
}
