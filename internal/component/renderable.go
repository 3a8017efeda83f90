package component

import (
	"shadowcast-rogue/internal/ecs"

	"github.com/gdamore/tcell/v2"
)

const CRenderable ecs.ComponentType = 2

// Renderable is drawn only while its tile is in view.
type Renderable struct {
	Glyph       string
	Name        string
	FGColor     tcell.Color
	RenderOrder int
}

func (Renderable) Type() ecs.ComponentType { return CRenderable }
