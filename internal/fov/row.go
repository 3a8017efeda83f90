package fov

import "fmt"

// Direction selects the quadrant a sweep covers.
type Direction uint8

const (
	North Direction = iota
	South
	East
	West
)

var directions = [4]Direction{North, South, East, West}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// Slope is the exact ratio Num/Den, with Den > 0. Slopes are measured as
// column offset over depth in the quadrant's own coordinates.
type Slope struct {
	Num, Den int
}

// Float64 returns the slope as a float, for display.
func (s Slope) Float64() float64 {
	return float64(s.Num) / float64(s.Den)
}

func (s Slope) String() string {
	return fmt.Sprintf("%d/%d", s.Num, s.Den)
}

// Row is one depth layer of a sweep, bounded by Start on the low-column side
// and End on the high-column side.
type Row struct {
	Depth      int
	Start, End Slope
}

func newRow(depth int, start, end Slope) Row {
	return Row{Depth: depth, Start: start, End: end}
}

// Next returns the row one step further out inside the same wedge.
func (r Row) Next() Row {
	return newRow(r.Depth+1, r.Start, r.End)
}

// Tiles lists the cells r covers, lowest column first.
func (r Row) Tiles(origin Pos, dir Direction) []Pos {
	first, last := getPos(origin, r.Depth, r.Start, r.End, dir)
	_, lo := toLocal(dir, origin, first)
	_, hi := toLocal(dir, origin, last)
	if hi < lo {
		return nil
	}
	tiles := make([]Pos, 0, hi-lo+1)
	for col := lo; col <= hi; col++ {
		tiles = append(tiles, toWorld(dir, origin, r.Depth, col))
	}
	return tiles
}

// toWorld maps quadrant coordinates to a grid cell. Depth runs away from the
// origin along the sweep axis; col runs along the other axis in the grid's
// own increasing direction.
func toWorld(dir Direction, origin Pos, depth, col int) Pos {
	switch dir {
	case North:
		return Pos{origin.X + col, origin.Y - depth}
	case South:
		return Pos{origin.X + col, origin.Y + depth}
	case East:
		return Pos{origin.X + depth, origin.Y + col}
	default:
		return Pos{origin.X - depth, origin.Y + col}
	}
}

// toLocal is the inverse of toWorld.
func toLocal(dir Direction, origin Pos, p Pos) (depth, col int) {
	switch dir {
	case North:
		return origin.Y - p.Y, p.X - origin.X
	case South:
		return p.Y - origin.Y, p.X - origin.X
	case East:
		return p.X - origin.X, p.Y - origin.Y
	default:
		return origin.X - p.X, p.Y - origin.Y
	}
}

// slope returns the slope from origin to the low-column corner of pos.
// Measuring to the corner rather than the centre lines shadow edges up with
// wall edges.
func slope(dir Direction, origin, pos Pos) Slope {
	depth, col := toLocal(dir, origin, pos)
	return Slope{Num: 2*col - 1, Den: 2 * depth}
}

// isSymmetric reports whether the centre of pos lies inside the row's
// sector, edges included. Floor cells outside it stay hidden even when the
// row reaches them.
func isSymmetric(row Row, dir Direction, origin, pos Pos) bool {
	_, col := toLocal(dir, origin, pos)
	return col*row.Start.Den >= row.Depth*row.Start.Num &&
		col*row.End.Den <= row.Depth*row.End.Num
}

// getPos returns the first and last cells of the row at depth. The first
// column is depth*start rounded half up, the last is depth*end rounded half
// down, so a cell is included once the wedge covers more than half of it.
func getPos(origin Pos, depth int, start, end Slope, dir Direction) (Pos, Pos) {
	lo := floorDiv(2*depth*start.Num+start.Den, 2*start.Den)
	hi := ceilDiv(2*depth*end.Num-end.Den, 2*end.Den)
	return toWorld(dir, origin, depth, lo), toWorld(dir, origin, depth, hi)
}

// floorDiv divides rounding toward negative infinity. b must be positive.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

// ceilDiv divides rounding toward positive infinity. b must be positive.
func ceilDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a > 0 {
		q++
	}
	return q
}
