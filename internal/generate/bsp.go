package generate

import (
	"math/rand"

	"shadowcast-rogue/internal/gamemap"
)

// CorridorStyle selects the shape of connecting tunnels.
type CorridorStyle uint8

const (
	CorridorLShaped CorridorStyle = iota
	CorridorZShaped
	CorridorStraight
)

// Config drives procedural generation for one level.
type Config struct {
	MapWidth, MapHeight int
	MinLeafSize         int
	MaxLeafSize         int
	MinRoomSize         int
	RoomPadding         int
	CorridorStyle       CorridorStyle
	Doors               bool // hang doors in single-width room exits
	PillarCount         int
	StalkerCount        int
	Rand                *rand.Rand
}

// bspLeaf is a node in the BSP tree.
type bspLeaf struct {
	X, Y, W, H  int
	left, right *bspLeaf
	room        *gamemap.Rect
}

func (l *bspLeaf) isLeaf() bool {
	return l.left == nil && l.right == nil
}

// split divides the leaf into two children, returning false when leaf is too small.
func (l *bspLeaf) split(cfg *Config) bool {
	if !l.isLeaf() {
		return false
	}
	splitH := cfg.Rand.Intn(2) == 0
	if l.W > l.H && float64(l.W)/float64(l.H) >= 1.25 {
		splitH = false
	} else if l.H > l.W && float64(l.H)/float64(l.W) >= 1.25 {
		splitH = true
	}

	size := l.H
	if !splitH {
		size = l.W
	}
	lo := cfg.MinLeafSize
	hi := size - cfg.MinLeafSize
	if lo >= hi {
		return false
	}
	at := lo + cfg.Rand.Intn(hi-lo+1)

	if splitH {
		l.left = &bspLeaf{X: l.X, Y: l.Y, W: l.W, H: at}
		l.right = &bspLeaf{X: l.X, Y: l.Y + at, W: l.W, H: l.H - at}
	} else {
		l.left = &bspLeaf{X: l.X, Y: l.Y, W: at, H: l.H}
		l.right = &bspLeaf{X: l.X + at, Y: l.Y, W: l.W - at, H: l.H}
	}
	return true
}

// createRooms carves one room inside every terminal leaf.
func (l *bspLeaf) createRooms(gmap *gamemap.GameMap, cfg *Config) {
	if !l.isLeaf() {
		l.left.createRooms(gmap, cfg)
		l.right.createRooms(gmap, cfg)
		return
	}
	pad := cfg.RoomPadding
	minSize := max(3, cfg.MinRoomSize)
	availW := l.W - 2*pad
	availH := l.H - 2*pad
	if availW < minSize || availH < minSize {
		return
	}

	rw := minSize + cfg.Rand.Intn(availW-minSize+1)
	rh := minSize + cfg.Rand.Intn(availH-minSize+1)
	rx := l.X + pad + cfg.Rand.Intn(availW-rw+1)
	ry := l.Y + pad + cfg.Rand.Intn(availH-rh+1)

	// Keep a one-tile wall border around the map.
	rx, ry = max(rx, 1), max(ry, 1)
	if rx+rw >= gmap.Width {
		rw = gmap.Width - rx - 1
	}
	if ry+rh >= gmap.Height {
		rh = gmap.Height - ry - 1
	}
	if rw < 3 || rh < 3 {
		return
	}

	room := gamemap.Rect{X1: rx, Y1: ry, X2: rx + rw - 1, Y2: ry + rh - 1}
	l.room = &room
	for y := room.Y1; y <= room.Y2; y++ {
		for x := room.X1; x <= room.X2; x++ {
			gmap.Set(x, y, gamemap.MakeFloor())
		}
	}
	gmap.Rooms = append(gmap.Rooms, room)
}

// getRoom returns a room from this subtree, preferring the left side.
func (l *bspLeaf) getRoom() *gamemap.Rect {
	if l.room != nil || l.isLeaf() {
		return l.room
	}
	if r := l.left.getRoom(); r != nil {
		return r
	}
	return l.right.getRoom()
}

// connectChildren carves corridors between the two children of every split.
func (l *bspLeaf) connectChildren(gmap *gamemap.GameMap, cfg *Config) {
	if l.isLeaf() {
		return
	}
	l.left.connectChildren(gmap, cfg)
	l.right.connectChildren(gmap, cfg)

	lRoom, rRoom := l.left.getRoom(), l.right.getRoom()
	if lRoom == nil || rRoom == nil {
		return
	}
	lCX, lCY := lRoom.Center()
	rCX, rCY := rRoom.Center()
	carveCorridor(gmap, lCX, lCY, rCX, rCY, cfg)
}

// Generate runs BSP generation and returns the map plus the player start.
// The player starts in the centre of the first room and the stairs down sit
// in the centre of the last. A map that never split gets its stairs in the
// corner of its only room farthest from the start.
func Generate(cfg *Config) (*gamemap.GameMap, int, int) {
	gmap := gamemap.New(cfg.MapWidth, cfg.MapHeight)
	root := &bspLeaf{X: 0, Y: 0, W: cfg.MapWidth, H: cfg.MapHeight}

	leaves := []*bspLeaf{root}
	for splitAny := true; splitAny; {
		splitAny = false
		var next []*bspLeaf
		for _, leaf := range leaves {
			if !leaf.isLeaf() {
				next = append(next, leaf.left, leaf.right)
				continue
			}
			if leaf.W > cfg.MaxLeafSize || leaf.H > cfg.MaxLeafSize || cfg.Rand.Float64() > 0.25 {
				if leaf.split(cfg) {
					next = append(next, leaf.left, leaf.right)
					splitAny = true
					continue
				}
			}
			next = append(next, leaf)
		}
		leaves = next
	}

	root.createRooms(gmap, cfg)
	root.connectChildren(gmap, cfg)
	if cfg.Doors {
		placeDoors(gmap)
	}

	px, py := 1, 1
	if len(gmap.Rooms) > 0 {
		px, py = gmap.Rooms[0].Center()
	}
	switch n := len(gmap.Rooms); {
	case n > 1:
		sx, sy := gmap.Rooms[n-1].Center()
		gmap.Set(sx, sy, gamemap.MakeStairsDown())
	case n == 1:
		sx, sy := farthestCorner(gmap.Rooms[0], px, py)
		gmap.Set(sx, sy, gamemap.MakeStairsDown())
	}
	return gmap, px, py
}

func farthestCorner(r gamemap.Rect, x, y int) (int, int) {
	cx, cy := r.X1, r.Y1
	if x-r.X1 < r.X2-x {
		cx = r.X2
	}
	if y-r.Y1 < r.Y2-y {
		cy = r.Y2
	}
	return cx, cy
}
