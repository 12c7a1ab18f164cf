package engine

import (
	"strings"
	"time"

	"github.com/tartampluch/go-biorhythm/internal/config"
)

// CriticalEvent is a day on which at least one cycle crosses zero.
// It is recomputed for every view and never persisted.
type CriticalEvent struct {
	// Offset is the day offset relative to "today" the scan was anchored on.
	Offset int
	Date   time.Time
	Cycles []Cycle
}

// Labels returns the short labels of the crossing cycles.
func (e CriticalEvent) Labels() []string {
	labels := make([]string, 0, len(e.Cycles))
	for _, c := range e.Cycles {
		labels = append(labels, c.Label)
	}
	return labels
}

// LabelText joins the labels the way the sidebar shows them ("P + E").
func (e CriticalEvent) LabelText() string {
	return strings.Join(e.Labels(), config.CrossingJoiner)
}

// Severity is the number of cycles crossing on that day (1..3).
func (e CriticalEvent) Severity() int {
	return len(e.Cycles)
}

// SidebarWindow returns the half-open offset range [offset-5, offset+25)
// scanned for the critical-day list.
func SidebarWindow(offset int) (start, end int) {
	return offset - config.SidebarLeadDays, offset + config.SidebarTrailDays
}

// ScanCriticalDays inspects every offset in [start, end) relative to today and
// returns the days with at least one crossing, ordered by offset.
func ScanCriticalDays(reference, today time.Time, start, end int) []CriticalEvent {
	var events []CriticalEvent
	for off := start; off < end; off++ {
		date := TargetDate(today, off)
		crossing := CrossingCycles(ElapsedDays(date, reference))
		if len(crossing) == 0 {
			continue
		}
		events = append(events, CriticalEvent{Offset: off, Date: date, Cycles: crossing})
	}
	return events
}

// CriticalWindow is the sidebar scan around the current offset.
func CriticalWindow(reference, today time.Time, offset int) []CriticalEvent {
	start, end := SidebarWindow(offset)
	return ScanCriticalDays(reference, today, start, end)
}
