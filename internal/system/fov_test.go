package system

import (
	"testing"

	"shadowcast-rogue/internal/component"
	"shadowcast-rogue/internal/ecs"
	"shadowcast-rogue/internal/fov"
	"shadowcast-rogue/internal/gamemap"
)

// openMapFOV creates a fully-open (all floor) map for FOV tests.
func openMapFOV(width, height int) (*gamemap.GameMap, *fov.LightMap) {
	gmap := gamemap.New(width, height)
	for y := range height {
		for x := range width {
			gmap.Set(x, y, gamemap.MakeFloor())
		}
	}
	return gmap, fov.NewLightMap(width, height)
}

// makeViewerAt creates an entity with a position and the given view radius.
func makeViewerAt(w *ecs.World, px, py, radius int) ecs.EntityID {
	id := w.CreateEntity()
	w.Add(id, component.Position{X: px, Y: py})
	w.Add(id, component.Vision{Radius: radius})
	return id
}

func TestFOVOriginAlwaysVisible(t *testing.T) {
	gmap, lm := openMapFOV(20, 20)
	w := ecs.NewWorld()
	player := makeViewerAt(w, 5, 5, 5)

	UpdateFOV(w, gmap, lm, player)

	if !gmap.At(5, 5).Visible {
		t.Error("player's own tile must always be visible")
	}
	if !gmap.At(5, 5).Explored {
		t.Error("player's own tile must be marked explored")
	}
}

func TestFOVClearsOldVisibility(t *testing.T) {
	gmap, lm := openMapFOV(20, 20)
	w := ecs.NewWorld()
	player := makeViewerAt(w, 5, 5, 3)

	UpdateFOV(w, gmap, lm, player)
	if !gmap.At(8, 8).Visible {
		t.Fatal("(8,8) should be visible from (5,5) with radius 3")
	}

	w.Add(player, component.Position{X: 15, Y: 15})
	UpdateFOV(w, gmap, lm, player)
	if gmap.At(8, 8).Visible {
		t.Error("UpdateFOV should clear stale visibility before recalculating")
	}
	if !gmap.At(8, 8).Explored {
		t.Error("previously seen tiles stay explored")
	}
}

func TestFOVRadiusLimitsVisibility(t *testing.T) {
	gmap, lm := openMapFOV(20, 20)
	w := ecs.NewWorld()
	player := makeViewerAt(w, 10, 10, 4)

	UpdateFOV(w, gmap, lm, player)

	for _, pos := range [][2]int{{10, 6}, {14, 14}, {6, 10}} {
		if !gmap.At(pos[0], pos[1]).Visible {
			t.Errorf("tile %v at distance 4 should be visible with radius=4", pos)
		}
	}
	for _, pos := range [][2]int{{10, 15}, {10, 5}, {15, 10}, {5, 10}} {
		if gmap.At(pos[0], pos[1]).Visible {
			t.Errorf("tile %v at distance 5 should not be visible with radius=4", pos)
		}
	}
}

func TestFOVDefaultRadius(t *testing.T) {
	gmap, lm := openMapFOV(30, 1)
	w := ecs.NewWorld()
	player := w.CreateEntity()
	w.Add(player, component.Position{X: 0, Y: 0})

	UpdateFOV(w, gmap, lm, player)
	if !gmap.At(DefaultViewRadius, 0).Visible {
		t.Error("default radius should reach DefaultViewRadius cells")
	}
	if gmap.At(DefaultViewRadius+1, 0).Visible {
		t.Error("default radius should stop at DefaultViewRadius")
	}
}

func TestFOVWallBlocksLight(t *testing.T) {
	gmap, lm := openMapFOV(20, 20)
	gmap.Set(10, 8, gamemap.MakeWall())
	w := ecs.NewWorld()
	player := makeViewerAt(w, 10, 10, 8)

	UpdateFOV(w, gmap, lm, player)

	if !gmap.At(10, 8).Visible {
		t.Error("the wall tile at (10,8) should be visible")
	}
	if gmap.At(10, 7).Visible {
		t.Error("tile (10,7) behind the wall at (10,8) should not be visible")
	}
}

func TestFOVOpaqueEntityCastsShadow(t *testing.T) {
	gmap, lm := openMapFOV(20, 20)
	w := ecs.NewWorld()
	player := makeViewerAt(w, 10, 10, 8)

	pillar := w.CreateEntity()
	w.Add(pillar, component.Position{X: 12, Y: 10})
	w.Add(pillar, component.TagOpaque{})

	UpdateFOV(w, gmap, lm, player)
	if !gmap.At(12, 10).Visible {
		t.Error("the pillar's own tile should be visible")
	}
	if gmap.At(13, 10).Visible || gmap.At(16, 10).Visible {
		t.Error("tiles straight behind the pillar should be hidden")
	}

	// Once the pillar is gone the shadow goes with it.
	w.DestroyEntity(pillar)
	UpdateFOV(w, gmap, lm, player)
	if !gmap.At(13, 10).Visible {
		t.Error("walls must be rebuilt each pass")
	}
}

func TestFOVNoViewerPositionNoPanic(t *testing.T) {
	gmap, lm := openMapFOV(10, 10)
	gmap.At(3, 3).Visible = true
	w := ecs.NewWorld()
	player := w.CreateEntity() // no Position added

	UpdateFOV(w, gmap, lm, player)
	if gmap.At(3, 3).Visible {
		t.Error("a viewer without a position sees nothing")
	}
}

func TestInView(t *testing.T) {
	gmap, lm := openMapFOV(12, 5)
	gmap.Set(5, 2, gamemap.MakeWall())
	w := ecs.NewWorld()
	player := makeViewerAt(w, 2, 2, 10)

	seen := w.CreateEntity()
	w.Add(seen, component.Position{X: 4, Y: 0})
	hidden := w.CreateEntity()
	w.Add(hidden, component.Position{X: 8, Y: 2})
	nowhere := w.CreateEntity()

	UpdateFOV(w, gmap, lm, player)
	if !InView(w, gmap, seen) {
		t.Error("entity at (4,0) should be in view")
	}
	if InView(w, gmap, hidden) {
		t.Error("entity behind the wall should not be in view")
	}
	if InView(w, gmap, nowhere) {
		t.Error("entity without a position is never in view")
	}
}
