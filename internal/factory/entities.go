package factory

import (
	"shadowcast-rogue/internal/component"
	"shadowcast-rogue/internal/ecs"

	"github.com/gdamore/tcell/v2"
)

// StalkerSightRange is how far a stalker notices a visible player.
const StalkerSightRange = 10

// NewPlayer creates the player entity at (x, y) with the given view radius.
func NewPlayer(w *ecs.World, x, y, viewRadius int) ecs.EntityID {
	id := w.CreateEntity()
	w.Add(id, component.Position{X: x, Y: y})
	w.Add(id, component.Renderable{
		Glyph:       "@",
		Name:        "you",
		FGColor:     tcell.ColorYellow,
		RenderOrder: 10,
	})
	w.Add(id, component.Vision{Radius: viewRadius})
	w.Add(id, component.TagPlayer{})
	w.Add(id, component.TagBlocking{})
	return id
}

// NewStalker creates a creature that follows the player while it is in view.
func NewStalker(w *ecs.World, x, y int) ecs.EntityID {
	id := w.CreateEntity()
	w.Add(id, component.Position{X: x, Y: y})
	w.Add(id, component.Renderable{
		Glyph:       "s",
		Name:        "stalker",
		FGColor:     tcell.ColorRed,
		RenderOrder: 5,
	})
	w.Add(id, component.AI{Behavior: component.BehaviorStalk, SightRange: StalkerSightRange})
	w.Add(id, component.TagBlocking{})
	return id
}

// NewPillar creates a stone pillar: it blocks movement and casts a shadow.
func NewPillar(w *ecs.World, x, y int) ecs.EntityID {
	id := w.CreateEntity()
	w.Add(id, component.Position{X: x, Y: y})
	w.Add(id, component.Renderable{
		Glyph:       "O",
		Name:        "pillar",
		FGColor:     tcell.ColorSilver,
		RenderOrder: 1,
	})
	w.Add(id, component.TagBlocking{})
	w.Add(id, component.TagOpaque{})
	return id
}
