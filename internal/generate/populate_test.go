package generate

import (
	"math/rand"
	"testing"

	"shadowcast-rogue/internal/gamemap"
)

// makeRoomedMap builds a GameMap pre-populated with the given number of rooms.
func makeRoomedMap(rooms int) *gamemap.GameMap {
	gmap := gamemap.New(80, 40)
	for i := range rooms {
		x := 2 + i*10
		r := gamemap.Rect{X1: x, Y1: 2, X2: x + 6, Y2: 8}
		gmap.Rooms = append(gmap.Rooms, r)
		for y := r.Y1; y <= r.Y2; y++ {
			for rx := r.X1; rx <= r.X2; rx++ {
				gmap.Set(rx, y, gamemap.MakeFloor())
			}
		}
	}
	return gmap
}

func makePopulateConfig(pillars, stalkers int, seed int64) *Config {
	return &Config{
		PillarCount:  pillars,
		StalkerCount: stalkers,
		Rand:         rand.New(rand.NewSource(seed)),
	}
}

func TestPopulateNoopWithOneRoom(t *testing.T) {
	for rooms := range 2 {
		result := Populate(makeRoomedMap(rooms), makePopulateConfig(3, 3, 1))
		if len(result.Pillars) != 0 || len(result.Stalkers) != 0 {
			t.Errorf("rooms=%d: expected no spawns, got %+v", rooms, result)
		}
	}
}

func TestPopulateCounts(t *testing.T) {
	gmap := makeRoomedMap(6)
	result := Populate(gmap, makePopulateConfig(3, 5, 7))
	if len(result.Pillars) != 3 {
		t.Errorf("pillars = %d; want 3", len(result.Pillars))
	}
	if len(result.Stalkers) != 5 {
		t.Errorf("stalkers = %d; want 5", len(result.Stalkers))
	}
}

func TestPopulatePillarsCappedByRooms(t *testing.T) {
	// One pillar per room at most, and never in the start room.
	result := Populate(makeRoomedMap(4), makePopulateConfig(10, 0, 3))
	if len(result.Pillars) != 3 {
		t.Errorf("pillars = %d; want one for each of the 3 non-start rooms", len(result.Pillars))
	}
}

func TestPopulateSkipsStartRoom(t *testing.T) {
	for seed := range int64(20) {
		gmap := makeRoomedMap(4)
		result := Populate(gmap, makePopulateConfig(3, 6, seed))
		start := gmap.Rooms[0]
		for _, p := range append(result.Pillars, result.Stalkers...) {
			if start.Contains(p.X, p.Y) {
				t.Errorf("seed=%d: spawn %+v in the start room", seed, p)
			}
		}
	}
}

func TestPopulatePillarsAvoidRoomRim(t *testing.T) {
	for seed := range int64(20) {
		gmap := makeRoomedMap(5)
		result := Populate(gmap, makePopulateConfig(4, 0, seed))
		for _, p := range result.Pillars {
			inner := false
			for _, r := range gmap.Rooms {
				if p.X > r.X1 && p.X < r.X2 && p.Y > r.Y1 && p.Y < r.Y2 {
					inner = true
				}
			}
			if !inner {
				t.Errorf("seed=%d: pillar %+v touches a room rim", seed, p)
			}
		}
	}
}

func TestPopulateNoSharedTiles(t *testing.T) {
	for seed := range int64(20) {
		gmap := makeRoomedMap(3)
		result := Populate(gmap, makePopulateConfig(2, 30, seed))
		seen := make(map[SpawnPoint]bool)
		for _, p := range append(result.Pillars, result.Stalkers...) {
			if seen[p] {
				t.Fatalf("seed=%d: two spawns at %+v", seed, p)
			}
			seen[p] = true
		}
	}
}

func TestPopulateAvoidsStairs(t *testing.T) {
	gmap := makeRoomedMap(2)
	// Every tile of the second room is stairs.
	r := gmap.Rooms[1]
	for y := r.Y1; y <= r.Y2; y++ {
		for x := r.X1; x <= r.X2; x++ {
			gmap.Set(x, y, gamemap.MakeStairsDown())
		}
	}
	result := Populate(gmap, makePopulateConfig(1, 5, 9))
	if len(result.Pillars) != 0 || len(result.Stalkers) != 0 {
		t.Errorf("nothing may spawn on stairs, got %+v", result)
	}
}

func TestPopulateOnGeneratedMap(t *testing.T) {
	for seed := int64(0); seed < 5; seed++ {
		cfg := defaultTestConfig(seed)
		gmap, px, py := Generate(cfg)
		result := Populate(gmap, cfg)
		for _, p := range append(result.Pillars, result.Stalkers...) {
			if !gmap.IsWalkable(p.X, p.Y) {
				t.Errorf("seed=%d: spawn %+v on a non-walkable tile", seed, p)
			}
			if p.X == px && p.Y == py {
				t.Errorf("seed=%d: spawn on the player start", seed)
			}
		}
	}
}
