// Package slots enumerates the bookable half-hour time slots of a meeting
// room day and derives the state of the start/end selectors.
package slots

import (
	"fmt"
	"time"
)

const (
	// FirstSlot is the earliest bookable start, in minutes after midnight.
	FirstSlot = 8 * 60
	// LastSlot is the latest selectable slot, in minutes after midnight.
	LastSlot = 17*60 + 30
	// Step is the slot granularity.
	Step = 30
	// AutoAdvance is how many slots the end selector jumps past a new start.
	AutoAdvance = 2
)

// Option is one entry of the end-time selector. Disabled options stay in the
// list so positions do not shift when the start changes.
type Option struct {
	Label    string
	Disabled bool
}

var day = build()

func build() []string {
	labels := make([]string, 0, (LastSlot-FirstSlot)/Step+1)
	for minutes := FirstSlot; minutes <= LastSlot; minutes += Step {
		labels = append(labels, fmt.Sprintf("%02d:%02d", minutes/60, minutes%60))
	}
	return labels
}

// Labels returns the ordered slot labels from 08:00 to 17:30.
func Labels() []string {
	out := make([]string, len(day))
	copy(out, day)
	return out
}

// Index returns the position of label, or -1 when it is not a slot.
func Index(label string) int {
	for i, slot := range day {
		if slot == label {
			return i
		}
	}
	return -1
}

// EndOptions lists every slot as an end option, disabling those at or before
// the selected start. An unknown or empty start disables nothing.
func EndOptions(start string) []Option {
	startIdx := Index(start)
	options := make([]Option, len(day))
	for i, label := range day {
		options[i] = Option{Label: label, Disabled: startIdx >= 0 && i <= startIdx}
	}
	return options
}

// AdvanceEnd returns the end slot to show after start is selected: the slot
// AutoAdvance positions later when it exists, otherwise the current end.
func AdvanceEnd(start, currentEnd string) string {
	idx := Index(start)
	if idx < 0 {
		return currentEnd
	}
	if next := idx + AutoAdvance; next < len(day) {
		return day[next]
	}
	return currentEnd
}

// Before reports whether slot a comes strictly before slot b. Unknown labels
// are never before anything.
func Before(a, b string) bool {
	ai, bi := Index(a), Index(b)
	return ai >= 0 && bi >= 0 && ai < bi
}

// On combines a calendar date with a slot label in loc.
func On(date time.Time, label string, loc *time.Location) (time.Time, error) {
	idx := Index(label)
	if idx < 0 {
		return time.Time{}, fmt.Errorf("slots: unknown slot %q", label)
	}
	if loc == nil {
		loc = time.UTC
	}
	minutes := FirstSlot + idx*Step
	y, m, d := date.Date()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, loc), nil
}
