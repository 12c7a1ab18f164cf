package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// portionLayout splits the width between its objects by fixed weights, like
// a row of fill-portion columns. Heights fill the container.
type portionLayout struct {
	weights []float32
}

func newPortionLayout(weights ...float32) fyne.Layout {
	return &portionLayout{weights: weights}
}

func (p *portionLayout) total(n int) float32 {
	var sum float32
	for i := 0; i < n; i++ {
		sum += p.weight(i)
	}
	return sum
}

func (p *portionLayout) weight(i int) float32 {
	if i < len(p.weights) && p.weights[i] > 0 {
		return p.weights[i]
	}
	return 1
}

func (p *portionLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) == 0 {
		return
	}
	pad := theme.Padding()
	avail := size.Width - pad*float32(len(objects)-1)
	if avail < 0 {
		avail = 0
	}
	total := p.total(len(objects))

	x := float32(0)
	for i, o := range objects {
		w := avail * p.weight(i) / total
		o.Move(fyne.NewPos(x, 0))
		o.Resize(fyne.NewSize(w, size.Height))
		x += w + pad
	}
}

// MinSize keeps every column at least at its own minimum under the ratio.
func (p *portionLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	var width, height float32
	total := p.total(len(objects))
	for i, o := range objects {
		ms := o.MinSize()
		if need := ms.Width * total / p.weight(i); need > width {
			width = need
		}
		if ms.Height > height {
			height = ms.Height
		}
	}
	if n := len(objects); n > 1 {
		width += theme.Padding() * float32(n-1)
	}
	return fyne.NewSize(width, height)
}
