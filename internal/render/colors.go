package render

import (
	"shadowcast-rogue/internal/gamemap"

	"github.com/gdamore/tcell/v2"
)

// TileStyle is how one tile kind is drawn.
type TileStyle struct {
	Glyph string
	Color tcell.Color
}

// Theme maps tile kinds to glyphs. Explored tiles out of view reuse the
// glyph and take the Dim color.
type Theme struct {
	Tiles      map[gamemap.TileKind]TileStyle
	Dim        tcell.Color
	Background tcell.Color
}

// DefaultTheme is the classic ASCII look.
var DefaultTheme = Theme{
	Tiles: map[gamemap.TileKind]TileStyle{
		gamemap.TileWall:       {Glyph: "#", Color: tcell.ColorWhite},
		gamemap.TileFloor:      {Glyph: ".", Color: tcell.ColorSilver},
		gamemap.TileDoor:       {Glyph: "+", Color: tcell.ColorOlive},
		gamemap.TileStairsDown: {Glyph: ">", Color: tcell.ColorYellow},
	},
	Dim:        tcell.ColorGray,
	Background: tcell.ColorBlack,
}

// tileStyle returns the glyph and style of a tile that is in view or has
// been explored.
func (t Theme) tileStyle(tile *gamemap.Tile) (string, tcell.Style) {
	ts, ok := t.Tiles[tile.Kind]
	if !ok {
		ts = TileStyle{Glyph: "?", Color: tcell.ColorFuchsia}
	}
	color := ts.Color
	if !tile.Visible {
		color = t.Dim
	}
	return ts.Glyph, tcell.StyleDefault.Foreground(color).Background(t.Background)
}
