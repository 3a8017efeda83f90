package generate

import (
	"shadowcast-rogue/internal/gamemap"
)

// SpawnPoint holds a world coordinate where an entity should appear.
type SpawnPoint struct {
	X, Y int
}

// PopulateResult is returned by Populate with entity spawn data.
type PopulateResult struct {
	Pillars  []SpawnPoint
	Stalkers []SpawnPoint
}

// Populate picks spawn points for pillars and stalkers. The first room is
// left empty for the player, no two spawns share a tile and none lands on
// the stairs.
//
// Pillars go one per room, strictly inside the room's rim, so the floor
// ring around them keeps every exit connected.
func Populate(gmap *gamemap.GameMap, cfg *Config) PopulateResult {
	var result PopulateResult

	rooms := gmap.Rooms
	if len(rooms) <= 1 {
		return result
	}
	placeable := rooms[1:]

	occupied := make(map[SpawnPoint]bool)
	free := func(x, y int) bool {
		return !occupied[SpawnPoint{x, y}] && gmap.At(x, y).Kind == gamemap.TileFloor
	}

	order := cfg.Rand.Perm(len(placeable))
	for _, i := range order {
		if len(result.Pillars) >= cfg.PillarCount {
			break
		}
		room := placeable[i]
		inner := gamemap.Rect{X1: room.X1 + 1, Y1: room.Y1 + 1, X2: room.X2 - 1, Y2: room.Y2 - 1}
		if inner.X1 > inner.X2 || inner.Y1 > inner.Y2 {
			continue
		}
		if x, y, ok := pickFree(inner, cfg, free); ok {
			occupied[SpawnPoint{x, y}] = true
			result.Pillars = append(result.Pillars, SpawnPoint{x, y})
		}
	}

	for range cfg.StalkerCount {
		room := placeable[cfg.Rand.Intn(len(placeable))]
		if x, y, ok := pickFree(room, cfg, free); ok {
			occupied[SpawnPoint{x, y}] = true
			result.Stalkers = append(result.Stalkers, SpawnPoint{x, y})
		}
	}
	return result
}

// pickFree tries up to 20 random positions inside r and returns the first
// one accepted by free.
func pickFree(r gamemap.Rect, cfg *Config, free func(x, y int) bool) (int, int, bool) {
	const maxAttempts = 20
	w, h := r.X2-r.X1+1, r.Y2-r.Y1+1
	for range maxAttempts {
		x := r.X1 + cfg.Rand.Intn(w)
		y := r.Y1 + cfg.Rand.Intn(h)
		if free(x, y) {
			return x, y, true
		}
	}
	return 0, 0, false
}
