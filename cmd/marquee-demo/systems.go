package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/ooftn/ecs"

	"github.com/plus3/marquee/internal/config"
	"github.com/plus3/marquee/selection"
	"github.com/plus3/marquee/selection/ebitenselect"
	"github.com/plus3/marquee/selection/ecsselect"
)

type wanderView struct {
	*ecsselect.Position
	*Velocity
}

// WanderSystem drifts units around the world, bouncing off its edges.
type WanderSystem struct {
	Units *ecs.View[wanderView]
	World config.Demo
}

func (s *WanderSystem) Execute(frame *ecs.UpdateFrame) {
	dt := float32(frame.DeltaTime)
	w := float32(s.World.WorldWidth)
	h := float32(s.World.WorldHeight)

	for _, unit := range s.Units.Iter() {
		unit.Position.X += unit.Velocity.DX * dt
		unit.Position.Y += unit.Velocity.DY * dt

		if unit.Position.X < 0 || unit.Position.X > w {
			unit.Velocity.DX = -unit.Velocity.DX
			unit.Position.X = min(max(unit.Position.X, 0), w)
		}
		if unit.Position.Y < 0 || unit.Position.Y > h {
			unit.Velocity.DY = -unit.Velocity.DY
			unit.Position.Y = min(max(unit.Position.Y, 0), h)
		}
	}
}

// CameraSystem pans with the arrow keys and zooms with the mouse wheel.
type CameraSystem struct {
	Camera *ecsselect.Camera
}

const panSpeed = 20

func (s *CameraSystem) Execute(frame *ecs.UpdateFrame) {
	camera := s.Camera
	step := float32(frame.DeltaTime) * panSpeed / camera.Zoom

	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		camera.X -= step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		camera.X += step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		camera.Y -= step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		camera.Y += step
	}

	_, dy := ebiten.Wheel()
	if dy != 0 {
		mx, my := ebiten.CursorPosition()
		anchor, _ := camera.ScreenToWorld(selection.Pt(float64(mx), float64(my)))

		camera.Zoom = min(max(camera.Zoom+float32(dy)*0.2, 0.5), 4.0)

		// keep the world point under the cursor fixed
		camera.X = anchor.X - float32(mx)/(camera.Zoom*camera.CellSize)
		camera.Y = anchor.Y - float32(my)/(camera.Zoom*camera.CellSize)
	}
}

// CommandSystem handles keyboard commands on the selection: A adds every unit,
// Delete removes the selected units from the world, C clears.
type CommandSystem struct {
	Engine *selection.Engine[ecs.EntityId]
	Units  *ecs.View[struct{ *ecsselect.Selectable }]
}

func (s *CommandSystem) Execute(frame *ecs.UpdateFrame) {
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		for id := range s.Units.Iter() {
			s.Engine.AddToSelection(id)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyDelete) {
		for id := range s.Engine.All() {
			frame.Commands.Delete(id)
		}
		s.Engine.ClearSelection()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		s.Engine.ClearSelection()
	}
}

type renderView struct {
	*ecsselect.Position
	*ecsselect.Selectable
	*Unit
}

// Renderer draws the world each frame.
type Renderer struct {
	Units   *ecs.View[renderView]
	Camera  *ecsselect.Camera
	Overlay *ebitenselect.Overlay
	World   config.Demo
}

var (
	backgroundColor = color.RGBA{245, 245, 240, 255}
	borderColor     = color.RGBA{200, 200, 195, 255}
	highlightColor  = color.RGBA{40, 160, 90, 255}
)

func (r *Renderer) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	scale := r.Camera.Zoom * r.Camera.CellSize
	origin, _ := r.Camera.WorldToScreen(selection.Vec3{})
	vector.StrokeRect(screen,
		float32(origin.X), float32(origin.Y),
		float32(r.World.WorldWidth)*scale, float32(r.World.WorldHeight)*scale,
		1, borderColor, false)

	radius := scale * 0.4
	for _, unit := range r.Units.Iter() {
		p, ok := r.Camera.WorldToScreen(selection.Vec3{
			X: float64(unit.Position.X),
			Y: float64(unit.Position.Y),
		})
		if !ok {
			continue
		}

		x, y := float32(p.X), float32(p.Y)
		vector.DrawFilledCircle(screen, x, y, radius, unit.Unit.Color, true)
		if unit.Selectable.Highlighted {
			vector.StrokeCircle(screen, x, y, radius+2, 2, highlightColor, true)
		}
	}

	r.Overlay.Draw(screen)
}
