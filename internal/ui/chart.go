package ui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-biorhythm/internal/config"
)

// chartView hosts the raster chart and turns wheel input into day steps.
type chartView struct {
	widget.BaseWidget
	raster *canvas.Raster
	app    *BiorhythmApp
}

var _ fyne.Scrollable = (*chartView)(nil)

func newChartView(app *BiorhythmApp) *chartView {
	c := &chartView{app: app}
	c.raster = canvas.NewRaster(c.generate)
	c.ExtendBaseWidget(c)
	return c
}

// generate receives the surface size in device pixels.
func (c *chartView) generate(w, h int) image.Image {
	scale := 1.0
	if size := c.raster.Size(); size.Width > 0 {
		scale = float64(w) / float64(size.Width)
	}
	return c.app.chartImage(w, h, scale)
}

func (c *chartView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(c.raster)
}

func (c *chartView) MinSize() fyne.Size {
	return fyne.NewSize(config.ChartMinWidth, config.ChartMinHeight)
}

// Scrolled moves one day per event whatever the delta magnitude.
func (c *chartView) Scrolled(ev *fyne.ScrollEvent) {
	c.app.wheel(float64(ev.Scrolled.DY))
}
