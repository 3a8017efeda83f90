package system

import (
	"shadowcast-rogue/internal/component"
	"shadowcast-rogue/internal/ecs"
	"shadowcast-rogue/internal/gamemap"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/paths"
)

// Pathfinder finds cardinal-move shortest paths on one map with A*.
// Cost is one per step and the estimate is Manhattan distance.
type Pathfinder struct {
	gmap *gamemap.GameMap
	pr   *paths.PathRange
	nb   paths.Neighbors

	// per-search state read by the paths.Astar callbacks
	w      *ecs.World
	mover  ecs.EntityID
	target gruid.Point
}

// NewPathfinder prepares a pathfinder for gmap. Rebuild it when the map
// changes size.
func NewPathfinder(gmap *gamemap.GameMap) *Pathfinder {
	return &Pathfinder{
		gmap: gmap,
		pr:   paths.NewPathRange(gruid.NewRange(0, 0, gmap.Width, gmap.Height)),
	}
}

// Path returns the cells from (fx, fy) to (tx, ty), both included, or nil
// when the target cannot be reached. Blocking entities other than mover are
// obstacles, except one standing on the target itself.
func (pf *Pathfinder) Path(w *ecs.World, mover ecs.EntityID, fx, fy, tx, ty int) []gruid.Point {
	if !pf.gmap.InBounds(fx, fy) || !pf.gmap.InBounds(tx, ty) {
		return nil
	}
	pf.w, pf.mover, pf.target = w, mover, gruid.Point{X: tx, Y: ty}
	defer func() { pf.w = nil }()

	from := gruid.Point{X: fx, Y: fy}
	if from == pf.target {
		return []gruid.Point{from}
	}
	path := pf.pr.AstarPath(pf, from, pf.target)
	if len(path) == 0 {
		return nil
	}
	if path[0] != from {
		path = append([]gruid.Point{from}, path...)
	}
	return path
}

// NextStep returns the unit move that starts the path from mover's position
// to (tx, ty).
func (pf *Pathfinder) NextStep(w *ecs.World, mover ecs.EntityID, tx, ty int) (dx, dy int, ok bool) {
	pos, found := ecs.Lookup[component.Position](w, mover, component.CPosition)
	if !found {
		return 0, 0, false
	}
	path := pf.Path(w, mover, pos.X, pos.Y, tx, ty)
	if len(path) < 2 {
		return 0, 0, false
	}
	return path[1].X - pos.X, path[1].Y - pos.Y, true
}

// Neighbors implements paths.Astar.
func (pf *Pathfinder) Neighbors(p gruid.Point) []gruid.Point {
	return pf.nb.Cardinal(p, pf.passable)
}

// Cost implements paths.Astar.
func (pf *Pathfinder) Cost(from, to gruid.Point) int {
	return 1
}

// Estimation implements paths.Astar.
func (pf *Pathfinder) Estimation(from, to gruid.Point) int {
	return paths.DistanceManhattan(from, to)
}

func (pf *Pathfinder) passable(p gruid.Point) bool {
	if !pf.gmap.IsWalkable(p.X, p.Y) {
		return false
	}
	if p == pf.target {
		return true
	}
	return BlockerAt(pf.w, p.X, p.Y, pf.mover) == ecs.NilEntity
}
