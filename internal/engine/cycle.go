package engine

import (
	"image/color"
	"math"

	"github.com/tartampluch/go-biorhythm/internal/config"
)

// Cycle is one of the three fixed sinusoidal signals.
type Cycle struct {
	// Label is the short tag used in the sidebar ("P", "E", "I").
	Label string

	// NameKey is the translation key of the full name.
	NameKey string

	// Period is the cycle length in days.
	Period float64

	Color color.NRGBA
}

// Cycles lists the Physical, Emotional and Intellectual cycles, in display order.
var Cycles = [3]Cycle{
	{Label: config.LabelPhysical, NameKey: config.TKeyLblPhysical, Period: config.PeriodPhysical, Color: config.ColorPhysical},
	{Label: config.LabelEmotional, NameKey: config.TKeyLblEmotional, Period: config.PeriodEmotional, Color: config.ColorEmotional},
	{Label: config.LabelIntellectual, NameKey: config.TKeyLblIntellectual, Period: config.PeriodIntellectual, Color: config.ColorIntellectual},
}

// Value returns sin(2π·elapsed/period), in [-1, 1].
func (c Cycle) Value(elapsedDays float64) float64 {
	return math.Sin(2 * math.Pi * elapsedDays / c.Period)
}

// CycleValue evaluates the cycle at index i of Cycles.
func CycleValue(i int, elapsedDays float64) float64 {
	return Cycles[i].Value(elapsedDays)
}

// CompositeTrend is the mean of the three cycle values.
func CompositeTrend(elapsedDays float64) float64 {
	var sum float64
	for _, c := range Cycles {
		sum += c.Value(elapsedDays)
	}
	return sum / float64(len(Cycles))
}

// IsCrossing reports whether the cycle changed sign between the previous day and this one.
func (c Cycle) IsCrossing(elapsedDays float64) bool {
	return crosses(c.Value(elapsedDays), c.Value(elapsedDays-1))
}

// crosses treats an exact zero on the current day as both signs, while the
// previous day must be strictly on the opposite side.
func crosses(now, prev float64) bool {
	return (now >= 0 && prev < 0) || (now <= 0 && prev > 0)
}

// CrossingCycles returns the cycles crossing zero on the given day, in display order.
func CrossingCycles(elapsedDays float64) []Cycle {
	var out []Cycle
	for _, c := range Cycles {
		if c.IsCrossing(elapsedDays) {
			out = append(out, c)
		}
	}
	return out
}

// IsCrossing evaluates the crossing test for the cycle at index i of Cycles.
func IsCrossing(i int, elapsedDays float64) bool {
	return Cycles[i].IsCrossing(elapsedDays)
}
