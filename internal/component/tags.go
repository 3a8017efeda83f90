package component

import "shadowcast-rogue/internal/ecs"

const (
	CTagPlayer   ecs.ComponentType = 8
	CTagBlocking ecs.ComponentType = 9
	CTagOpaque   ecs.ComponentType = 10
)

// TagPlayer marks the player-controlled entity.
type TagPlayer struct{}

func (TagPlayer) Type() ecs.ComponentType { return CTagPlayer }

// TagBlocking marks an entity that occupies its tile (blocks movement).
type TagBlocking struct{}

func (TagBlocking) Type() ecs.ComponentType { return CTagBlocking }

// TagOpaque marks an entity that blocks sight through its tile, such as a
// pillar or a boulder. Its cell is registered as a wall on every FOV pass.
type TagOpaque struct{}

func (TagOpaque) Type() ecs.ComponentType { return CTagOpaque }
