package main

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/ooftn/ecs"
)

// Game implements ebiten.Game. Systems and ImguiItem renders run in Update inside
// an ImGui frame; Draw renders the world, the drag overlay and then the ImGui windows.
type Game struct {
	scheduler *ecs.Scheduler
	ui        *ebitenbackend.EbitenBackend
	items     *ecs.View[imguiView]
	render    *Renderer
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	g.ui.BeginFrame()
	g.scheduler.Once(1.0 / 60.0)
	renderItems(g.items)
	g.ui.EndFrame()

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(screen)
	g.ui.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.ui.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

type imguiView struct {
	*ImguiItem
}

// renderItems runs every ImguiItem's Render. It must be called between the
// backend's BeginFrame and EndFrame.
func renderItems(items *ecs.View[imguiView]) {
	for _, item := range items.Iter() {
		if item.Render != nil {
			item.Render()
		}
	}
}
