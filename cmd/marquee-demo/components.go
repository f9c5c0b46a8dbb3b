package main

import (
	"image/color"
)

type Unit struct {
	Name  string
	Color color.RGBA
}

type Velocity struct {
	DX, DY float32
}

// ImguiItem is an entity that draws an ImGui window each frame.
type ImguiItem struct {
	Render func()
}

var palette = []color.RGBA{
	{255, 179, 186, 255},
	{179, 229, 252, 255},
	{255, 223, 186, 255},
	{186, 255, 201, 255},
	{217, 186, 255, 255},
}
