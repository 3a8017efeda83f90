package system

import (
	"shadowcast-rogue/internal/component"
	"shadowcast-rogue/internal/ecs"
	"shadowcast-rogue/internal/gamemap"
)

// MoveResult describes the outcome of a TryMove call.
type MoveResult uint8

const (
	MoveOK      MoveResult = iota // position updated
	MoveBlocked                   // wall, opaque object or out-of-bounds
	MoveBump                      // bumped a blocking entity
)

func (r MoveResult) String() string {
	switch r {
	case MoveOK:
		return "ok"
	case MoveBlocked:
		return "blocked"
	case MoveBump:
		return "bump"
	}
	return "unknown"
}

// TryMove attempts to move entity id by (dx, dy) on gmap.
// Returns the outcome and, for MoveBump, the entity in the way.
func TryMove(w *ecs.World, gmap *gamemap.GameMap, id ecs.EntityID, dx, dy int) (MoveResult, ecs.EntityID) {
	pos, ok := ecs.Lookup[component.Position](w, id, component.CPosition)
	if !ok {
		return MoveBlocked, ecs.NilEntity
	}
	nx, ny := pos.X+dx, pos.Y+dy

	if other := BlockerAt(w, nx, ny, id); other != ecs.NilEntity {
		if w.Has(other, component.CTagOpaque) {
			return MoveBlocked, ecs.NilEntity
		}
		return MoveBump, other
	}

	if !gmap.IsWalkable(nx, ny) {
		return MoveBlocked, ecs.NilEntity
	}

	w.Add(id, component.Position{X: nx, Y: ny})
	return MoveOK, ecs.NilEntity
}

// BlockerAt returns the first blocking entity at (x, y) other than except.
func BlockerAt(w *ecs.World, x, y int, except ecs.EntityID) ecs.EntityID {
	for _, other := range w.Query(component.CTagBlocking, component.CPosition) {
		if other == except {
			continue
		}
		p, _ := ecs.Lookup[component.Position](w, other, component.CPosition)
		if p.X == x && p.Y == y {
			return other
		}
	}
	return ecs.NilEntity
}
