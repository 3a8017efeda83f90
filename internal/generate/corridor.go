package generate

import "shadowcast-rogue/internal/gamemap"

// carveCorridor digs a tunnel between (x1,y1) and (x2,y2) in cfg's style.
func carveCorridor(gmap *gamemap.GameMap, x1, y1, x2, y2 int, cfg *Config) {
	switch cfg.CorridorStyle {
	case CorridorZShaped:
		carveZShaped(gmap, x1, y1, x2, y2)
	case CorridorStraight:
		carveH(gmap, x1, x2, y1)
		carveV(gmap, y1, y2, x2)
	default:
		if cfg.Rand.Intn(2) == 0 {
			carveH(gmap, x1, x2, y1)
			carveV(gmap, y1, y2, x2)
		} else {
			carveV(gmap, y1, y2, x1)
			carveH(gmap, x1, x2, y2)
		}
	}
}

func carveH(gmap *gamemap.GameMap, x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		if gmap.InBounds(x, y) {
			gmap.Set(x, y, gamemap.MakeFloor())
		}
	}
}

func carveV(gmap *gamemap.GameMap, y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		if gmap.InBounds(x, y) {
			gmap.Set(x, y, gamemap.MakeFloor())
		}
	}
}

func carveZShaped(gmap *gamemap.GameMap, x1, y1, x2, y2 int) {
	midY := (y1 + y2) / 2
	carveV(gmap, y1, midY, x1)
	carveH(gmap, x1, x2, midY)
	carveV(gmap, midY, y2, x2)
}

// placeDoors turns every corridor cell touching a room edge into a door when
// it is a one-tile gap: walls on both sides across the opening.
func placeDoors(gmap *gamemap.GameMap) {
	for _, room := range gmap.Rooms {
		for x := room.X1; x <= room.X2; x++ {
			hangDoor(gmap, x, room.Y1-1, true)
			hangDoor(gmap, x, room.Y2+1, true)
		}
		for y := room.Y1; y <= room.Y2; y++ {
			hangDoor(gmap, room.X1-1, y, false)
			hangDoor(gmap, room.X2+1, y, false)
		}
	}
}

// hangDoor places a door at (x, y) if it is floor framed by walls. A door in
// a horizontal room edge needs walls to its left and right, one in a
// vertical edge needs walls above and below.
func hangDoor(gmap *gamemap.GameMap, x, y int, horizontalEdge bool) {
	if !gmap.InBounds(x, y) || gmap.At(x, y).Kind != gamemap.TileFloor {
		return
	}
	if inAnyRoom(gmap, x, y) {
		return
	}
	isWall := func(x, y int) bool {
		return gmap.InBounds(x, y) && gmap.At(x, y).Kind == gamemap.TileWall
	}
	if horizontalEdge && isWall(x-1, y) && isWall(x+1, y) ||
		!horizontalEdge && isWall(x, y-1) && isWall(x, y+1) {
		gmap.Set(x, y, gamemap.MakeDoor())
	}
}

func inAnyRoom(gmap *gamemap.GameMap, x, y int) bool {
	for _, r := range gmap.Rooms {
		if r.Contains(x, y) {
			return true
		}
	}
	return false
}
