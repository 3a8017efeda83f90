package system

import (
	"shadowcast-rogue/internal/component"
	"shadowcast-rogue/internal/ecs"
	"shadowcast-rogue/internal/gamemap"
	"shadowcast-rogue/internal/logger"

	"github.com/sirupsen/logrus"
)

// ProcessAI runs one turn for every AI-controlled entity. It must run right
// after UpdateFOV for the player, whose visibility stands in for each
// creature's own line of sight. Returns the first creature that walked into
// the player, or ecs.NilEntity.
func ProcessAI(w *ecs.World, gmap *gamemap.GameMap, pf *Pathfinder, player ecs.EntityID) ecs.EntityID {
	playerPos, ok := ecs.Lookup[component.Position](w, player, component.CPosition)
	if !ok {
		return ecs.NilEntity
	}

	caughtBy := ecs.NilEntity
	for _, id := range w.Query(component.CAI, component.CPosition) {
		ai, _ := ecs.Lookup[component.AI](w, id, component.CAI)
		pos, _ := ecs.Lookup[component.Position](w, id, component.CPosition)

		if InView(w, gmap, id) && chebyshev(pos, playerPos) <= ai.SightRange {
			if !ai.Tracking {
				logger.Log.WithFields(logrus.Fields{
					"component": "ai_system",
					"entity":    id,
					"at":        pos,
				}).Debug("creature spotted the player")
			}
			ai.LastSeen = playerPos
			ai.Tracking = true
		}

		if ai.Behavior == component.BehaviorStalk && ai.Tracking {
			if stalk(w, gmap, pf, id, &ai) == player && caughtBy == ecs.NilEntity {
				caughtBy = id
			}
		}
		w.Add(id, ai)
	}
	return caughtBy
}

// stalk steps toward ai.LastSeen and returns whatever entity it bumped into.
func stalk(w *ecs.World, gmap *gamemap.GameMap, pf *Pathfinder, id ecs.EntityID, ai *component.AI) ecs.EntityID {
	dx, dy, ok := pf.NextStep(w, id, ai.LastSeen.X, ai.LastSeen.Y)
	if !ok {
		ai.Tracking = false
		return ecs.NilEntity
	}
	result, target := TryMove(w, gmap, id, dx, dy)
	switch result {
	case MoveBump:
		return target
	case MoveOK:
		if pos, _ := ecs.Lookup[component.Position](w, id, component.CPosition); pos == ai.LastSeen {
			ai.Tracking = false
		}
	}
	return ecs.NilEntity
}

func chebyshev(a, b component.Position) int {
	return max(abs(a.X-b.X), abs(a.Y-b.Y))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
