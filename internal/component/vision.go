package component

import "shadowcast-rogue/internal/ecs"

const CVision ecs.ComponentType = 4

// Vision is the view radius used when this entity is the FOV origin.
type Vision struct {
	Radius int
}

func (Vision) Type() ecs.ComponentType { return CVision }
