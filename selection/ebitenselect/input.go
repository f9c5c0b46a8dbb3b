// Package ebitenselect connects a selection engine to an ebiten game: it samples the
// mouse and keyboard and draws the drag rectangle.
package ebitenselect

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/marquee/selection"
	"github.com/plus3/marquee/selection/gesture"
)

// Input samples ebiten's mouse and keyboard state.
type Input struct {
	Button    ebiten.MouseButton
	CancelKey ebiten.Key
	// AdditiveKeys are the keys that make an area commit append instead of replace.
	AdditiveKeys []ebiten.Key
}

// NewInput selects with the left button, cancels with Escape and adds with Shift.
func NewInput() *Input {
	return &Input{
		Button:       ebiten.MouseButtonLeft,
		CancelKey:    ebiten.KeyEscape,
		AdditiveKeys: []ebiten.Key{ebiten.KeyShift, ebiten.KeyShiftLeft, ebiten.KeyShiftRight},
	}
}

// Pointer implements gesture.Source.
func (in *Input) Pointer() gesture.Pointer {
	x, y := ebiten.CursorPosition()
	return gesture.Pointer{
		Cursor:  selection.Pt(float64(x), float64(y)),
		Pressed: ebiten.IsMouseButtonPressed(in.Button),
		Cancel:  ebiten.IsKeyPressed(in.CancelKey),
	}
}

// Additive reports whether any of the additive keys is held. It is meant to be
// passed as the engine's AdditiveHeld capability.
func (in *Input) Additive() bool {
	for _, key := range in.AdditiveKeys {
		if ebiten.IsKeyPressed(key) {
			return true
		}
	}
	return false
}
