package gamemap

import (
	"fmt"

	"shadowcast-rogue/internal/fov"
)

// Rect is an axis-aligned rectangle used for rooms.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return (r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2
}

// Intersects reports whether r overlaps other (inclusive edges).
func (r Rect) Intersects(other Rect) bool {
	return r.X1 <= other.X2 && r.X2 >= other.X1 &&
		r.Y1 <= other.Y2 && r.Y2 >= other.Y1
}

// Contains reports whether (x, y) lies inside r (inclusive edges).
func (r Rect) Contains(x, y int) bool {
	return x >= r.X1 && x <= r.X2 && y >= r.Y1 && y <= r.Y2
}

// GameMap holds the tile grid and room list for one dungeon level.
type GameMap struct {
	Width, Height int
	Tiles         [][]Tile
	Rooms         []Rect
}

// New creates a GameMap filled with walls.
func New(width, height int) *GameMap {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = MakeWall()
		}
	}
	return &GameMap{Width: width, Height: height, Tiles: tiles}
}

// Parse builds a map from ASCII rows:
//
//	#  wall      .  floor     +  door
//	>  stairs    @  floor, returned as the start position
//
// Rows must all have the same length.
func Parse(rows []string) (*GameMap, int, int, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, 0, 0, fmt.Errorf("parse map: empty")
	}
	width := len(rows[0])
	gmap := New(width, len(rows))
	sx, sy := -1, -1
	for y, row := range rows {
		if len(row) != width {
			return nil, 0, 0, fmt.Errorf("parse map: row %d has %d cells, want %d", y, len(row), width)
		}
		for x := 0; x < width; x++ {
			switch ch := row[x]; ch {
			case '#':
				gmap.Set(x, y, MakeWall())
			case '.':
				gmap.Set(x, y, MakeFloor())
			case '+':
				gmap.Set(x, y, MakeDoor())
			case '>':
				gmap.Set(x, y, MakeStairsDown())
			case '@':
				gmap.Set(x, y, MakeFloor())
				sx, sy = x, y
			default:
				return nil, 0, 0, fmt.Errorf("parse map: unknown cell %q at (%d,%d)", ch, x, y)
			}
		}
	}
	return gmap, sx, sy, nil
}

// InBounds reports whether (x, y) is within the map boundaries.
func (m *GameMap) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// At returns a pointer to the tile at (x, y). Panics if out of bounds.
func (m *GameMap) At(x, y int) *Tile {
	return &m.Tiles[y][x]
}

// Set replaces the tile at (x, y).
func (m *GameMap) Set(x, y int, t Tile) {
	m.Tiles[y][x] = t
}

// IsWalkable returns true when (x, y) is in bounds and walkable.
func (m *GameMap) IsWalkable(x, y int) bool {
	if !m.InBounds(x, y) {
		return false
	}
	return m.Tiles[y][x].Walkable
}

// IsTransparent returns true when (x, y) is in bounds and transparent.
func (m *GameMap) IsTransparent(x, y int) bool {
	if !m.InBounds(x, y) {
		return false
	}
	return m.Tiles[y][x].Transparent
}

// CastWalls registers every opaque tile as a wall on lm. lm must have the
// map's dimensions.
func (m *GameMap) CastWalls(lm *fov.LightMap) {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if !m.Tiles[y][x].Transparent {
				lm.SetWall(fov.Pos{X: x, Y: y})
			}
		}
	}
}

// ApplyLight copies lm's visibility onto the tiles. Visible cells become
// explored; explored cells stay explored after they drop out of view.
func (m *GameMap) ApplyLight(lm *fov.LightMap) {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			t := &m.Tiles[y][x]
			t.Visible = lm.IsVisible(fov.Pos{X: x, Y: y})
			if t.Visible {
				t.Explored = true
			}
		}
	}
}

// ExploredCount returns how many walkable tiles have been seen.
func (m *GameMap) ExploredCount() (explored, walkable int) {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			t := m.Tiles[y][x]
			if !t.Walkable {
				continue
			}
			walkable++
			if t.Explored {
				explored++
			}
		}
	}
	return explored, walkable
}
