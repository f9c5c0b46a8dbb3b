package ebitenselect

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/marquee/selection"
)

// Overlay draws the drag rectangle reported by an engine.
type Overlay struct {
	Fill        color.RGBA
	Stroke      color.RGBA
	StrokeWidth float32

	rect    selection.Rect
	visible bool
}

// NewOverlay returns an overlay with a translucent green fill.
func NewOverlay() *Overlay {
	return &Overlay{
		Fill:        color.RGBA{80, 200, 120, 48},
		Stroke:      color.RGBA{80, 200, 120, 220},
		StrokeWidth: 1,
	}
}

// Track keeps o in sync with engine's drag rectangle until the subscription is cancelled.
// The overlay is shown while the engine is dragging, so a degenerate drag at the
// screen origin stays visible even though its rectangle is the zero Rect.
func Track[T comparable](o *Overlay, engine *selection.Engine[T]) selection.Subscription {
	return engine.OnRectChanged(func(r selection.Rect) {
		o.rect = r
		o.visible = engine.Dragging()
	})
}

// SetRect replaces the rectangle to draw. The zero Rect hides the overlay.
func (o *Overlay) SetRect(r selection.Rect) {
	o.rect = r
	o.visible = !r.IsZero()
}

// Rect returns the rectangle that will be drawn.
func (o *Overlay) Rect() selection.Rect {
	return o.rect
}

// Visible reports whether Draw will draw anything.
func (o *Overlay) Visible() bool {
	return o.visible
}

// Draw renders the rectangle onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.Visible() {
		return
	}

	x := float32(o.rect.Min.X)
	y := float32(o.rect.Min.Y)
	w := float32(o.rect.Width())
	h := float32(o.rect.Height())

	vector.DrawFilledRect(screen, x, y, w, h, o.Fill, false)
	if o.StrokeWidth > 0 {
		vector.StrokeRect(screen, x, y, w, h, o.StrokeWidth, o.Stroke, false)
	}
}
