package render

import (
	"bytes"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-biorhythm/internal/config"
)

// 1091 px wide puts the target gridline (day 15 of 30) on a pixel centre.
const (
	testWidth  = 1091
	testHeight = 600
)

func testFrame(offset int) Frame {
	return Frame{
		Reference:    time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC),
		Today:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Offset:       offset,
		HasReference: true,
	}
}

// birthdayFrame puts the reference date on the target day: every cycle is 0
// in column 15 and the window runs from Thursday 2024-02-15.
func birthdayFrame() Frame {
	today := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return Frame{Reference: today, Today: today, HasReference: true}
}

func rgb8(img image.Image, x, y int) (r, g, b uint32) {
	r, g, b, _ = img.At(x, y).RGBA()
	return r >> 8, g >> 8, b >> 8
}

func isWhite(img image.Image, x, y int) bool {
	r, g, b := rgb8(img, x, y)
	return r > 230 && g > 230 && b > 230
}

// isTrendUp and isTrendDown match the translucent bar fills over the background.
func isTrendUp(img image.Image, x, y int) bool {
	r, g, b := rgb8(img, x, y)
	return g > r+20 && g > b+10
}

func isTrendDown(img image.Image, x, y int) bool {
	r, g, b := rgb8(img, x, y)
	return r > g+20 && r > b+20
}

func isSundayRed(img image.Image, x, y int) bool {
	r, g, b := rgb8(img, x, y)
	return r > 230 && g > 100 && g < 160 && b > 100 && b < 160
}

func countIn(img image.Image, rect image.Rectangle, match func(image.Image, int, int) bool) int {
	n := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if match(img, x, y) {
				n++
			}
		}
	}
	return n
}

func isYellow(img image.Image, x, y int) bool {
	r, g, b, _ := img.At(x, y).RGBA()
	return r>>8 > 180 && g>>8 > 180 && b>>8 < 60
}

func yellowInColumn(img image.Image, x int, l Layout) int {
	n := 0
	for y := int(l.PadTop) + 1; y < int(l.PadTop+l.ChartH); y++ {
		if isYellow(img, x, y) {
			n++
		}
	}
	return n
}

func pixelBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	rgba, ok := img.(*image.RGBA)
	require.True(t, ok, "renderer should produce *image.RGBA")
	return rgba.Pix
}

func TestComputeLayout(t *testing.T) {
	l, ok := ComputeLayout(testWidth, testHeight, 1)
	require.True(t, ok)
	assert.Equal(t, 60.0, l.PadLeft)
	assert.Equal(t, 1001.0, l.ChartW)
	assert.Equal(t, 480.0, l.ChartH)
	assert.Equal(t, 300.0, l.MidY)
	assert.Equal(t, 560.5, l.DayX(config.WindowLeadDays))
	assert.Equal(t, l.PadTop, l.ValueY(1))
	assert.Equal(t, l.PadTop+l.ChartH, l.ValueY(-1))

	scaled, ok := ComputeLayout(testWidth*2, testHeight*2, 2)
	require.True(t, ok)
	assert.Equal(t, 120.0, scaled.PadLeft)
	assert.Equal(t, 2*l.ChartW, scaled.ChartW)

	_, ok = ComputeLayout(80, 600, 1)
	assert.False(t, ok, "width below padding leaves no chart")
	_, ok = ComputeLayout(600, 100, 1)
	assert.False(t, ok)
}

func TestChartRenderer_TargetColumnHighlighted(t *testing.T) {
	r := NewChartRenderer()
	img := r.Render(testFrame(0), testWidth, testHeight)
	l, _ := ComputeLayout(testWidth, testHeight, 1)

	assert.Equal(t, image.Rect(0, 0, testWidth, testHeight), img.Bounds())

	target := yellowInColumn(img, 560, l)
	assert.Greater(t, target, int(l.ChartH*0.8), "target gridline spans the chart")

	other := yellowInColumn(img, int(l.DayX(14)), l)
	assert.Less(t, other, 10, "ordinary gridlines are faint")
}

func TestChartRenderer_InvalidFrameIsBlank(t *testing.T) {
	r := NewChartRenderer()
	img := r.Render(Frame{Today: time.Now()}, 200, 100)

	want := config.ColorBackground
	for _, p := range []image.Point{{0, 0}, {100, 50}, {199, 99}} {
		got := img.At(p.X, p.Y)
		wr, wg, wb, _ := want.RGBA()
		gr, gg, gb, _ := got.RGBA()
		assert.Equal(t, []uint32{wr, wg, wb}, []uint32{gr, gg, gb}, "pixel %v", p)
	}
}

func TestChartRenderer_ToleratesTinySurfaces(t *testing.T) {
	r := NewChartRenderer()
	sizes := []image.Point{{0, 0}, {1, 1}, {50, 50}, {91, 121}, {-5, 10}}
	for _, s := range sizes {
		assert.NotPanics(t, func() {
			img := r.Render(testFrame(0), s.X, s.Y)
			assert.NotNil(t, img)
			assert.GreaterOrEqual(t, img.Bounds().Dx(), 1)
		}, "size %v", s)
	}
}

func TestChartRenderer_OffsetChangesImage(t *testing.T) {
	r := NewChartRenderer()
	a := r.Render(testFrame(0), 400, 300)
	b := r.Render(testFrame(7), 400, 300)
	c := r.Render(testFrame(0), 400, 300)

	assert.NotEqual(t, pixelBytes(t, a), pixelBytes(t, b))
	assert.Equal(t, pixelBytes(t, a), pixelBytes(t, c), "rendering is deterministic")
}

func TestFrame_Window(t *testing.T) {
	f := testFrame(10)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), f.Target())
	assert.Equal(t, time.Date(2024, 2, 25, 0, 0, 0, 0, time.UTC), f.ViewStart())
	assert.True(t, f.Valid())
	assert.False(t, Frame{}.Valid())
}

func TestFrame_YearOneReference(t *testing.T) {
	ref, err := time.Parse(config.DateFormatInput, "0001-01-01")
	require.NoError(t, err)
	require.True(t, ref.IsZero())

	f := Frame{Reference: ref, Today: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), HasReference: true}
	assert.True(t, f.Valid())

	r := NewChartRenderer()
	drawn := r.Render(f, 400, 300)
	f.HasReference = false
	blank := r.Render(f, 400, 300)
	assert.NotEqual(t, pixelBytes(t, blank), pixelBytes(t, drawn))
}

func TestLayout_TrendBar(t *testing.T) {
	l, ok := ComputeLayout(testWidth, testHeight, 1)
	require.True(t, ok)

	up := l.TrendBar(20, 0.5)
	assert.Equal(t, config.ColorTrendUp, up.Color)
	assert.InDelta(t, 120.0, up.H, 1e-9, "half of the half chart")
	assert.InDelta(t, l.MidY, up.Y+up.H, 1e-9, "up bars rest on the midline")
	assert.InDelta(t, l.PadLeft+20.1*l.ColumnSpacing(), up.X, 1e-9)
	assert.InDelta(t, 0.8*l.ColumnSpacing(), up.W, 1e-9)

	down := l.TrendBar(10, -0.25)
	assert.Equal(t, config.ColorTrendDown, down.Color)
	assert.InDelta(t, 60.0, down.H, 1e-9)
	assert.Equal(t, l.MidY, down.Y, "down bars hang from the midline")

	flat := l.TrendBar(15, 0)
	assert.Zero(t, flat.H)
}

func TestChartRenderer_TrendBars(t *testing.T) {
	img := NewChartRenderer().Render(birthdayFrame(), testWidth, testHeight)

	// Column 20 is 5 days after the reference date: mean ~ +0.898, bar top ~84.4.
	assert.True(t, isTrendUp(img, 744, 192), "positive mean fills above the midline")
	assert.True(t, isTrendUp(img, 735, 88), "bar reaches its top")
	assert.False(t, isTrendUp(img, 735, 82), "bar stops at |mean| of the half chart")
	assert.False(t, isTrendUp(img, 744, 400), "nothing below the midline")

	// Column 10 mirrors it: mean ~ -0.898, bar bottom ~515.6.
	assert.True(t, isTrendDown(img, 410, 408), "negative mean fills below the midline")
	assert.True(t, isTrendDown(img, 410, 511))
	assert.False(t, isTrendDown(img, 410, 518))
	assert.False(t, isTrendDown(img, 410, 200))

	// Column 15 has a zero mean.
	assert.False(t, isTrendUp(img, 577, 295))
	assert.False(t, isTrendDown(img, 577, 305))
}

func TestChartRenderer_CrossMarkOnReferenceDay(t *testing.T) {
	img := NewChartRenderer().Render(birthdayFrame(), testWidth, testHeight)
	l, _ := ComputeLayout(testWidth, testHeight, 1)

	// All three cycles are 0 at x=560.5; the mark spans 557.5..563.5 around MidY.
	require.Equal(t, 560.5, l.DayX(config.WindowLeadDays))
	assert.True(t, isWhite(img, 558, 297))
	assert.True(t, isWhite(img, 562, 302))

	assert.False(t, isWhite(img, 558, 280), "marks sit on the midline only")
	assert.False(t, isWhite(img, 310, 298), "no mark where no cycle is near zero")
}

func TestChartRenderer_SundayLabel(t *testing.T) {
	img := NewChartRenderer().Render(birthdayFrame(), testWidth, testHeight)
	l, _ := ComputeLayout(testWidth, testHeight, 1)

	labelRow := func(col int) image.Rectangle {
		x := int(l.DayX(float64(col)))
		y := int(l.PadTop + l.ChartH + config.DayLabelGap)
		return image.Rect(x-15, y-12, x+16, y+13)
	}

	// Column 3 is Sunday 2024-02-18, column 4 the Monday after.
	sunday := labelRow(3)
	assert.Positive(t, countIn(img, sunday, isSundayRed))
	assert.Zero(t, countIn(img, sunday, isWhite))

	monday := labelRow(4)
	assert.Positive(t, countIn(img, monday, isWhite))
	assert.Zero(t, countIn(img, monday, isSundayRed))
}

func TestCache_HitAndInvalidate(t *testing.T) {
	var cache Cache
	r := NewChartRenderer()
	frame := testFrame(0)
	size := image.Pt(320, 240)
	render := func(w, h int) image.Image { return r.Render(frame, w, h) }

	first := cache.GetOrRender(size, render)
	second := cache.GetOrRender(size, render)
	assert.Same(t, first, second)
	assert.Equal(t, 1, cache.Renders())
	assert.True(t, cache.Valid())

	cache.Invalidate()
	assert.False(t, cache.Valid())
	third := cache.GetOrRender(size, render)
	assert.Equal(t, 2, cache.Renders())
	assert.Equal(t, pixelBytes(t, first), pixelBytes(t, third))
}

// TestCache_InvalidateIdempotent: two invalidations before a render behave
// like one.
func TestCache_InvalidateIdempotent(t *testing.T) {
	r := NewChartRenderer()
	size := image.Pt(320, 240)
	render := func(w, h int) image.Image { return r.Render(testFrame(3), w, h) }

	var once, twice Cache
	once.GetOrRender(size, render)
	twice.GetOrRender(size, render)

	once.Invalidate()
	twice.Invalidate()
	twice.Invalidate()

	a := once.GetOrRender(size, render)
	b := twice.GetOrRender(size, render)

	assert.Equal(t, once.Renders(), twice.Renders())
	assert.Equal(t, pixelBytes(t, a), pixelBytes(t, b))
}

func TestCache_SizeChangeRerenders(t *testing.T) {
	var cache Cache
	var calls []image.Point
	render := func(w, h int) image.Image {
		calls = append(calls, image.Pt(w, h))
		return image.NewRGBA(image.Rect(0, 0, w, h))
	}

	cache.GetOrRender(image.Pt(100, 100), render)
	cache.GetOrRender(image.Pt(100, 100), render)
	cache.GetOrRender(image.Pt(200, 100), render)

	assert.Equal(t, []image.Point{{100, 100}, {200, 100}}, calls)
}

func TestIcon(t *testing.T) {
	data, err := Icon(64)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 64, 64), img.Bounds())

	def, err := Icon(0)
	require.NoError(t, err)
	cfg, err := png.DecodeConfig(bytes.NewReader(def))
	require.NoError(t, err)
	assert.Equal(t, config.IconSize, cfg.Width)
}
