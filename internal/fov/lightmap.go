// Package fov computes symmetric shadow-casting field of view over a
// rectangular grid.
//
// The host marks opaque cells with SetWall, runs CalculatePOV from a viewer
// position, and reads the result back with IsVisible. A floor cell B is
// visible from floor cell A exactly when A is visible from B under the same
// walls and radius.
package fov

// MaxViewDistance caps the depth of any single pass.
const MaxViewDistance = 32

// Pos is a grid cell.
type Pos struct {
	X, Y int
}

// LightMap holds wall and visibility state for a width×height grid.
// It is not safe for concurrent use.
type LightMap struct {
	width, height int
	walled        []bool
	visible       []bool
}

// NewLightMap creates a grid with every cell unwalled and invisible.
// Non-positive dimensions produce an empty grid.
func NewLightMap(width, height int) *LightMap {
	if width <= 0 || height <= 0 {
		width, height = 0, 0
	}
	return &LightMap{
		width:   width,
		height:  height,
		walled:  make([]bool, width*height),
		visible: make([]bool, width*height),
	}
}

// Width returns the grid width.
func (m *LightMap) Width() int { return m.width }

// Height returns the grid height.
func (m *LightMap) Height() int { return m.height }

// InBounds reports whether p lies inside the grid.
func (m *LightMap) InBounds(p Pos) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < m.width && p.Y < m.height
}

func (m *LightMap) index(p Pos) int {
	return p.Y*m.width + p.X
}

// ClearWalls marks every cell as floor. Walls are not derived from anything
// else, so callers re-register them before each pass.
func (m *LightMap) ClearWalls() {
	clear(m.walled)
}

// ClearVisible hides every cell.
func (m *LightMap) ClearVisible() {
	clear(m.visible)
}

// SetWall marks p opaque. Out-of-bounds positions are ignored.
func (m *LightMap) SetWall(p Pos) {
	if m.InBounds(p) {
		m.walled[m.index(p)] = true
	}
}

// Reveal marks p visible. Out-of-bounds positions are ignored.
func (m *LightMap) Reveal(p Pos) {
	if m.InBounds(p) {
		m.visible[m.index(p)] = true
	}
}

// IsFloor reports whether p is in bounds and not walled.
func (m *LightMap) IsFloor(p Pos) bool {
	return m.InBounds(p) && !m.walled[m.index(p)]
}

// IsWall reports whether p is in bounds and walled.
func (m *LightMap) IsWall(p Pos) bool {
	return m.InBounds(p) && m.walled[m.index(p)]
}

// IsVisible reports whether p was revealed since the last ClearVisible.
func (m *LightMap) IsVisible(p Pos) bool {
	return m.InBounds(p) && m.visible[m.index(p)]
}

// VisibleCount returns the number of revealed cells.
func (m *LightMap) VisibleCount() int {
	n := 0
	for _, v := range m.visible {
		if v {
			n++
		}
	}
	return n
}

// CalculatePOV reveals every cell visible from origin within maxDepth rows.
// The origin itself is always revealed, walled or not. Visibility from
// earlier passes is kept; call ClearVisible first for a fresh view.
func (m *LightMap) CalculatePOV(maxDepth int, origin Pos) {
	m.Reveal(origin)

	if maxDepth > MaxViewDistance {
		maxDepth = MaxViewDistance
	}
	for _, dir := range directions {
		s := scanner{m: m, dir: dir, origin: origin, maxDepth: maxDepth}
		s.scan(newRow(1, Slope{-1, 1}, Slope{1, 1}))
	}
}

// cell classifies the previous tile of a row walk. cellNone means there was
// no previous in-bounds tile; it is neither a wall nor a floor.
type cell uint8

const (
	cellNone cell = iota
	cellWall
	cellFloor
)

func (m *LightMap) classify(p Pos) cell {
	switch {
	case m.IsWall(p):
		return cellWall
	case m.IsFloor(p):
		return cellFloor
	}
	return cellNone
}

// scanner carries the per-direction constants of one recursive sweep.
type scanner struct {
	m        *LightMap
	dir      Direction
	origin   Pos
	maxDepth int
}

func (s *scanner) scan(row Row) {
	if row.Depth > s.maxDepth {
		return
	}

	prev := cellNone
	for _, tile := range row.Tiles(s.origin, s.dir) {
		if !s.m.InBounds(tile) {
			continue
		}
		cur := s.m.classify(tile)

		if cur == cellWall || isSymmetric(row, s.dir, s.origin, tile) {
			s.m.Reveal(tile)
		}
		if prev == cellWall && cur == cellFloor {
			row.Start = slope(s.dir, s.origin, tile)
		}
		if prev == cellFloor && cur == cellWall {
			next := row.Next()
			next.End = slope(s.dir, s.origin, tile)
			s.scan(next)
		}
		prev = cur
	}

	if prev == cellFloor {
		s.scan(row.Next())
	}
}
