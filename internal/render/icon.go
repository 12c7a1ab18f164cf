package render

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fogleman/gg"
	"github.com/tartampluch/go-biorhythm/internal/config"
	"github.com/tartampluch/go-biorhythm/internal/engine"
)

// Icon draws the application icon (the three cycles over one period of the
// slowest wave) and returns it PNG-encoded.
func Icon(size int) ([]byte, error) {
	if size <= 0 {
		size = config.IconSize
	}
	s := float64(size)
	dc := gg.NewContext(size, size)

	dc.DrawRoundedRectangle(0, 0, s, s, s/6)
	dc.SetColor(config.ColorBackground)
	dc.Fill()

	margin := s / 8
	mid := s / 2
	amp := s/2 - margin

	dc.SetColor(config.ColorMidline)
	dc.SetLineWidth(s / 64)
	dc.DrawLine(margin, mid, s-margin, mid)
	dc.Stroke()

	const samples = 64
	span := engine.Cycles[len(engine.Cycles)-1].Period
	for _, c := range engine.Cycles {
		for i := 0; i <= samples; i++ {
			day := float64(i) / samples * span
			x := margin + float64(i)/samples*(s-2*margin)
			y := mid - c.Value(day)*amp
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.SetColor(c.Color)
		dc.SetLineWidth(math.Max(s/32, 1))
		dc.Stroke()
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrIconRender, err)
	}
	return buf.Bytes(), nil
}
