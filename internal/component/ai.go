package component

import "shadowcast-rogue/internal/ecs"

const CAI ecs.ComponentType = 3

// AIBehavior describes how a creature acts each turn.
type AIBehavior uint8

const (
	BehaviorStalk      AIBehavior = iota // follow a path to the player while in view
	BehaviorStationary                   // watches, never moves
)

// AI drives a non-player creature. LastSeen remembers where the player was
// when last in view so a stalker keeps walking there after losing sight.
type AI struct {
	Behavior   AIBehavior
	SightRange int
	LastSeen   Position
	Tracking   bool
}

func (AI) Type() ecs.ComponentType { return CAI }
