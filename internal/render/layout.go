package render

import (
	"image/color"
	"math"

	"github.com/tartampluch/go-biorhythm/internal/config"
)

// Layout holds the chart geometry for one surface size, in pixels.
type Layout struct {
	PadLeft float64
	PadTop  float64
	ChartW  float64
	ChartH  float64
	MidY    float64
	Scale   float64
}

// ComputeLayout keeps the fixed left/top padding and gives the rest of the
// surface to the plot. ok is false when nothing fits.
func ComputeLayout(width, height int, scale float64) (l Layout, ok bool) {
	if scale <= 0 {
		scale = 1
	}
	l.Scale = scale
	l.PadLeft = config.ChartPadLeft * scale
	l.PadTop = config.ChartPadTop * scale
	l.ChartW = float64(width) - l.PadLeft*config.ChartPadRightMul
	l.ChartH = float64(height) - l.PadTop*config.ChartPadBottomMul
	l.MidY = l.PadTop + l.ChartH/2
	return l, l.ChartW > 0 && l.ChartH > 0
}

// DayX maps a fractional day position in [0, WindowDays] to x.
func (l Layout) DayX(day float64) float64 {
	return l.PadLeft + day/config.WindowDays*l.ChartW
}

// ValueY maps a cycle value in [-1, 1] to y; positive values go up.
func (l Layout) ValueY(v float64) float64 {
	return l.MidY - v*(l.ChartH/2)
}

// ColumnSpacing is the width of one day column.
func (l Layout) ColumnSpacing() float64 {
	return l.ChartW / config.WindowDays
}

// Bar is one composite-trend rectangle in pixels.
type Bar struct {
	X, Y, W, H float64
	Color      color.Color
}

// TrendBar places the bar of day column i for the mean value avg. Its height
// is |avg| of the half chart, measured from the midline.
func (l Layout) TrendBar(i int, avg float64) Bar {
	spacing := l.ColumnSpacing()
	b := Bar{
		X:     l.PadLeft + float64(i)*spacing + spacing*config.BarInsetRatio,
		Y:     l.MidY,
		W:     spacing * config.BarWidthRatio,
		H:     math.Abs(avg * (l.ChartH / 2)),
		Color: config.ColorTrendDown,
	}
	if avg >= 0 {
		b.Y = l.MidY - b.H
		b.Color = config.ColorTrendUp
	}
	return b
}
