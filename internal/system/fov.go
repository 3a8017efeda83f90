package system

import (
	"shadowcast-rogue/internal/component"
	"shadowcast-rogue/internal/ecs"
	"shadowcast-rogue/internal/fov"
	"shadowcast-rogue/internal/gamemap"
	"shadowcast-rogue/internal/logger"

	"github.com/sirupsen/logrus"
)

// DefaultViewRadius is used for viewers without a Vision component.
const DefaultViewRadius = 8

// CastShadows rebuilds lm's walls from the map's opaque tiles and from every
// entity tagged opaque.
func CastShadows(w *ecs.World, gmap *gamemap.GameMap, lm *fov.LightMap) {
	lm.ClearWalls()
	gmap.CastWalls(lm)
	for _, id := range w.Query(component.CTagOpaque, component.CPosition) {
		pos, _ := ecs.Lookup[component.Position](w, id, component.CPosition)
		lm.SetWall(fov.Pos{X: pos.X, Y: pos.Y})
	}
}

// UpdateFOV recomputes what the viewer can see and writes it onto the map's
// Visible/Explored flags. A viewer without a position sees nothing.
func UpdateFOV(w *ecs.World, gmap *gamemap.GameMap, lm *fov.LightMap, viewer ecs.EntityID) {
	lm.ClearVisible()

	pos, ok := ecs.Lookup[component.Position](w, viewer, component.CPosition)
	if !ok {
		gmap.ApplyLight(lm)
		return
	}
	radius := ViewRadius(w, viewer)

	CastShadows(w, gmap, lm)
	lm.CalculatePOV(radius, fov.Pos{X: pos.X, Y: pos.Y})
	gmap.ApplyLight(lm)

	logger.Log.WithFields(logrus.Fields{
		"component": "fov_system",
		"viewer":    viewer,
		"origin":    pos,
		"radius":    radius,
		"visible":   lm.VisibleCount(),
	}).Debug("FOV updated")
}

// ViewRadius returns the viewer's Vision radius, or DefaultViewRadius.
func ViewRadius(w *ecs.World, id ecs.EntityID) int {
	if v, ok := ecs.Lookup[component.Vision](w, id, component.CVision); ok {
		return v.Radius
	}
	return DefaultViewRadius
}

// InView reports whether the entity stands on a tile the last UpdateFOV
// revealed. Visibility is symmetric between floor tiles, so this is also
// whether the entity can see the viewer.
func InView(w *ecs.World, gmap *gamemap.GameMap, id ecs.EntityID) bool {
	pos, ok := ecs.Lookup[component.Position](w, id, component.CPosition)
	if !ok || !gmap.InBounds(pos.X, pos.Y) {
		return false
	}
	return gmap.At(pos.X, pos.Y).Visible
}
