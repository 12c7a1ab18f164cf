package render

import (
	"image"
	"log/slog"
	"math"
	"time"

	"github.com/fogleman/gg"
	"github.com/tartampluch/go-biorhythm/internal/config"
	"github.com/tartampluch/go-biorhythm/internal/engine"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Frame is everything the chart depends on besides the surface size.
type Frame struct {
	Reference time.Time
	Today     time.Time
	Offset    int

	// HasReference is false while the date text does not parse. The zero
	// time is a valid reference date (0001-01-01), so it cannot stand in.
	HasReference bool
}

// Valid reports whether a chart can be drawn for this frame.
func (f Frame) Valid() bool {
	return f.HasReference
}

// Target is the day the view is centred on.
func (f Frame) Target() time.Time {
	return engine.TargetDate(f.Today, f.Offset)
}

// ViewStart is the first day column of the window.
func (f Frame) ViewStart() time.Time {
	return engine.AddDays(f.Target(), -config.WindowLeadDays)
}

// ChartRenderer draws the 30-day biorhythm window onto an RGBA image.
type ChartRenderer struct {
	// Scale multiplies padding and stroke widths (the canvas scale factor).
	Scale float64
	Face  font.Face
}

// NewChartRenderer returns a renderer using the built-in bitmap face.
func NewChartRenderer() *ChartRenderer {
	return &ChartRenderer{Scale: 1, Face: basicfont.Face7x13}
}

// Render draws the frame. Sizes below the padding yield a background-only
// image; an invalid frame yields the same.
func (r *ChartRenderer) Render(f Frame, width, height int) image.Image {
	start := time.Now()
	dc := gg.NewContext(max(width, 1), max(height, 1))
	dc.SetColor(config.ColorBackground)
	dc.Clear()

	if !f.Valid() {
		return dc.Image()
	}

	l, ok := ComputeLayout(width, height, r.Scale)
	if !ok {
		slog.Debug(config.ErrRenderEmptyFrame,
			config.LogKeyComponent, config.CompRender,
			config.LogKeyWidth, width,
			config.LogKeyHeight, height)
		return dc.Image()
	}

	if r.Face != nil {
		dc.SetFontFace(r.Face)
	}

	elapsedAtStart := engine.ElapsedDays(f.ViewStart(), f.Reference)

	r.drawAxes(dc, l)
	r.drawColumns(dc, l, f)
	r.drawBars(dc, l, elapsedAtStart)
	r.drawCurves(dc, l, elapsedAtStart)

	slog.Debug(config.MsgChartRendered,
		config.LogKeyComponent, config.CompRender,
		config.LogKeyOffset, f.Offset,
		config.LogKeyWidth, width,
		config.LogKeyHeight, height,
		config.LogKeyDuration, time.Since(start).Milliseconds())
	return dc.Image()
}

func (r *ChartRenderer) drawAxes(dc *gg.Context, l Layout) {
	dc.SetLineWidth(l.Scale)

	dc.SetColor(config.ColorAxis)
	dc.DrawLine(l.PadLeft, l.PadTop, l.PadLeft, l.PadTop+l.ChartH)
	dc.Stroke()

	dc.SetColor(config.ColorMidline)
	dc.DrawLine(l.PadLeft, l.MidY, l.PadLeft+l.ChartW, l.MidY)
	dc.Stroke()
}

// drawColumns draws one gridline per day with the date and weekday labels.
func (r *ChartRenderer) drawColumns(dc *gg.Context, l Layout, f Frame) {
	viewStart := f.ViewStart()
	target := f.Target()
	gap := config.DayLabelGap * l.Scale

	for i := 0; i <= config.WindowDays; i++ {
		x := l.DayX(float64(i))
		day := engine.AddDays(viewStart, i)
		isTarget := day.Equal(target)

		if isTarget {
			dc.SetColor(config.ColorTarget)
		} else {
			dc.SetColor(config.ColorGrid)
		}
		dc.SetLineWidth(l.Scale)
		dc.DrawLine(x, l.PadTop, x, l.PadTop+l.ChartH)
		dc.Stroke()

		if isTarget || i%config.LabelEveryDays == 0 {
			if isTarget {
				dc.SetColor(config.ColorTargetText)
			} else {
				dc.SetColor(config.ColorDayLabel)
			}
			dc.DrawStringAnchored(day.Format(config.DateFormatAxis), x, l.PadTop-gap, 0.5, 0.5)
		}

		switch {
		case isTarget:
			dc.SetColor(config.ColorTargetText)
		case day.Weekday() == time.Sunday:
			dc.SetColor(config.ColorSunday)
		default:
			dc.SetColor(config.ColorWeekday)
		}
		dc.DrawStringAnchored(day.Format(config.WeekdayFormat), x, l.PadTop+l.ChartH+gap, 0.5, 0.5)
	}
}

// drawBars fills one composite-trend bar per day column, growing away from
// the zero line.
func (r *ChartRenderer) drawBars(dc *gg.Context, l Layout, elapsedAtStart float64) {
	for i := 0; i < config.WindowDays; i++ {
		bar := l.TrendBar(i, engine.CompositeTrend(elapsedAtStart+float64(i)))
		dc.SetColor(bar.Color)
		dc.DrawRectangle(bar.X, bar.Y, bar.W, bar.H)
		dc.Fill()
	}
}

// drawCurves strokes each cycle and marks near-zero samples on the midline.
func (r *ChartRenderer) drawCurves(dc *gg.Context, l Layout, elapsedAtStart float64) {
	mark := config.CrossMarkSize * l.Scale
	points := make([]gg.Point, config.CurveSegments+1)

	for _, c := range engine.Cycles {
		for i := range points {
			dayOff := float64(i) / config.CurveSegments * config.WindowDays
			val := c.Value(elapsedAtStart + dayOff)
			x := l.DayX(dayOff)
			points[i] = gg.Point{X: x, Y: l.ValueY(val)}

			if math.Abs(val) < config.NearZeroEpsilon {
				dc.SetColor(config.ColorCrossMark)
				dc.DrawRectangle(x-mark/2, l.MidY-mark/2, mark, mark)
				dc.Fill()
			}
		}

		dc.MoveTo(points[0].X, points[0].Y)
		for _, p := range points[1:] {
			dc.LineTo(p.X, p.Y)
		}
		dc.SetColor(c.Color)
		dc.SetLineWidth(config.CurveWidth * l.Scale)
		dc.Stroke()
	}
}
