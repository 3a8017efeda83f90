package generate

import (
	"math/rand"
	"testing"

	"shadowcast-rogue/internal/gamemap"
)

func defaultTestConfig(seed int64) *Config {
	return &Config{
		MapWidth:      60,
		MapHeight:     30,
		MinLeafSize:   8,
		MaxLeafSize:   20,
		MinRoomSize:   4,
		RoomPadding:   1,
		CorridorStyle: CorridorLShaped,
		Doors:         true,
		PillarCount:   3,
		StalkerCount:  4,
		Rand:          rand.New(rand.NewSource(seed)),
	}
}

// TestGenerateAllRoomsConnected verifies that every floor tile is reachable
// from the first floor tile via BFS (flood-fill).
func TestGenerateAllRoomsConnected(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		cfg := defaultTestConfig(seed)
		gmap, _, _ := Generate(cfg)

		// Find the first floor tile.
		startX, startY := -1, -1
		for y := 0; y < gmap.Height && startY == -1; y++ {
			for x := 0; x < gmap.Width && startX == -1; x++ {
				if gmap.At(x, y).Walkable {
					startX, startY = x, y
				}
			}
		}
		if startX == -1 {
			t.Fatalf("seed=%d: no floor tiles found", seed)
		}

		// BFS from start.
		visited := make([][]bool, gmap.Height)
		for y := range visited {
			visited[y] = make([]bool, gmap.Width)
		}
		queue := [][2]int{{startX, startY}}
		visited[startY][startX] = true

		dirs := [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, d := range dirs {
				nx, ny := cur[0]+d[0], cur[1]+d[1]
				if !gmap.InBounds(nx, ny) || visited[ny][nx] {
					continue
				}
				t := gmap.At(nx, ny)
				if t.Walkable {
					visited[ny][nx] = true
					queue = append(queue, [2]int{nx, ny})
				}
			}
		}

		// Every walkable tile should have been visited.
		for y := 0; y < gmap.Height; y++ {
			for x := 0; x < gmap.Width; x++ {
				if gmap.At(x, y).Walkable && !visited[y][x] {
					t.Errorf("seed=%d: unreachable floor tile at (%d,%d)", seed, x, y)
				}
			}
		}
	}
}

// TestGenerateRoomsDoNotOverlap verifies that no two rooms share interior tiles.
func TestGenerateRoomsDoNotOverlap(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		cfg := defaultTestConfig(seed)
		gmap, _, _ := Generate(cfg)

		rooms := gmap.Rooms
		for i := 0; i < len(rooms); i++ {
			for j := i + 1; j < len(rooms); j++ {
				if rooms[i].Intersects(rooms[j]) {
					t.Errorf("seed=%d: room %d %v overlaps room %d %v",
						seed, i, rooms[i], j, rooms[j])
				}
			}
		}
	}
}

func TestGenerateStartAndStairs(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		gmap, px, py := Generate(defaultTestConfig(seed))
		if len(gmap.Rooms) < 2 {
			t.Fatalf("seed=%d: expected several rooms, got %d", seed, len(gmap.Rooms))
		}
		if !gmap.Rooms[0].Contains(px, py) {
			t.Errorf("seed=%d: start (%d,%d) is not in the first room", seed, px, py)
		}
		sx, sy := gmap.Rooms[len(gmap.Rooms)-1].Center()
		if gmap.At(sx, sy).Kind != gamemap.TileStairsDown {
			t.Errorf("seed=%d: no stairs at the centre of the last room", seed)
		}
	}
}

func TestGenerateKeepsWallBorder(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		gmap, _, _ := Generate(defaultTestConfig(seed))
		for x := range gmap.Width {
			if gmap.IsWalkable(x, 0) || gmap.IsWalkable(x, gmap.Height-1) {
				t.Fatalf("seed=%d: border row open at x=%d", seed, x)
			}
		}
		for y := range gmap.Height {
			if gmap.IsWalkable(0, y) || gmap.IsWalkable(gmap.Width-1, y) {
				t.Fatalf("seed=%d: border column open at y=%d", seed, y)
			}
		}
	}
}

func TestGenerateDoorsAreFramedGaps(t *testing.T) {
	doors := 0
	for seed := int64(0); seed < 10; seed++ {
		gmap, _, _ := Generate(defaultTestConfig(seed))
		for y := range gmap.Height {
			for x := range gmap.Width {
				if gmap.At(x, y).Kind != gamemap.TileDoor {
					continue
				}
				doors++
				wall := func(x, y int) bool { return gmap.At(x, y).Kind == gamemap.TileWall }
				if !(wall(x-1, y) && wall(x+1, y)) && !(wall(x, y-1) && wall(x, y+1)) {
					t.Errorf("seed=%d: door at (%d,%d) is not framed by walls", seed, x, y)
				}
				if gmap.IsTransparent(x, y) || !gmap.IsWalkable(x, y) {
					t.Errorf("seed=%d: door at (%d,%d) should be walkable and opaque", seed, x, y)
				}
			}
		}
	}
	if doors == 0 {
		t.Error("expected at least one door across ten seeds")
	}
}

func TestGenerateWithoutDoors(t *testing.T) {
	cfg := defaultTestConfig(1)
	cfg.Doors = false
	gmap, _, _ := Generate(cfg)
	for y := range gmap.Height {
		for x := range gmap.Width {
			if gmap.At(x, y).Kind == gamemap.TileDoor {
				t.Fatalf("door at (%d,%d) with Doors disabled", x, y)
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, ax, ay := Generate(defaultTestConfig(5))
	b, bx, by := Generate(defaultTestConfig(5))
	if ax != bx || ay != by {
		t.Fatalf("start differs: (%d,%d) vs (%d,%d)", ax, ay, bx, by)
	}
	for y := range a.Height {
		for x := range a.Width {
			if a.At(x, y).Kind != b.At(x, y).Kind {
				t.Fatalf("tile (%d,%d) differs for the same seed", x, y)
			}
		}
	}
}

func TestGenerateMinimumMapAlwaysHasStairs(t *testing.T) {
	for seed := int64(1); seed <= 400; seed++ {
		cfg := defaultTestConfig(seed)
		cfg.MapWidth, cfg.MapHeight = 20, 12
		gmap, px, py := Generate(cfg)

		stairs := 0
		for y := range gmap.Height {
			for x := range gmap.Width {
				if gmap.At(x, y).Kind == gamemap.TileStairsDown {
					stairs++
					if x == px && y == py {
						t.Errorf("seed=%d: stairs on the player start (%d,%d)", seed, x, y)
					}
				}
			}
		}
		if stairs != 1 {
			t.Fatalf("seed=%d: %d stairs on a 20x12 map with %d rooms; want 1", seed, stairs, len(gmap.Rooms))
		}
	}
}

func TestFarthestCorner(t *testing.T) {
	room := gamemap.Rect{X1: 2, Y1: 3, X2: 9, Y2: 7}
	cases := []struct {
		x, y   int
		wx, wy int
	}{
		{5, 5, 9, 7},
		{8, 6, 2, 3},
		{2, 7, 9, 3},
	}
	for _, tc := range cases {
		if x, y := farthestCorner(room, tc.x, tc.y); x != tc.wx || y != tc.wy {
			t.Errorf("farthestCorner from (%d,%d) = (%d,%d); want (%d,%d)", tc.x, tc.y, x, y, tc.wx, tc.wy)
		}
	}
}
