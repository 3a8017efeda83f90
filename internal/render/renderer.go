package render

import (
	"sort"

	"shadowcast-rogue/internal/component"
	"shadowcast-rogue/internal/ecs"
	"shadowcast-rogue/internal/gamemap"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// HUDHeight is the number of rows reserved under the map.
const HUDHeight = 4

// Renderer draws the game world onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
	theme  Theme
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	w, h := screen.Size()
	return &Renderer{
		screen: screen,
		camera: NewCamera(0, 0, w, max(0, h-HUDHeight)),
		theme:  DefaultTheme,
	}
}

// SetTheme replaces the tile theme.
func (r *Renderer) SetTheme(t Theme) { r.theme = t }

// Resize re-reads the screen size, e.g. after an EventResize.
func (r *Renderer) Resize() {
	w, h := r.screen.Size()
	r.camera.Resize(w, max(0, h-HUDHeight))
}

// CenterOn recenters the camera on world position (x, y).
func (r *Renderer) CenterOn(x, y int) { r.camera.Center(x, y) }

// WorldToScreen converts world coordinates to screen coordinates.
// visible is false when the position falls outside the viewport.
func (r *Renderer) WorldToScreen(wx, wy int) (sx, sy int, visible bool) {
	return r.camera.WorldToScreen(wx, wy)
}

// DrawFrame clears the screen and renders tiles and entities. Call DrawHUD
// afterwards to finish the frame.
func (r *Renderer) DrawFrame(w *ecs.World, gmap *gamemap.GameMap) {
	r.screen.Clear()
	r.drawMap(gmap)
	r.drawEntities(w, gmap)
}

// drawMap renders visible tiles bright and explored tiles dim. Tiles never
// seen stay blank.
func (r *Renderer) drawMap(gmap *gamemap.GameMap) {
	for y := 0; y < gmap.Height; y++ {
		for x := 0; x < gmap.Width; x++ {
			tile := gmap.At(x, y)
			if !tile.Visible && !tile.Explored {
				continue
			}
			sx, sy, onScreen := r.camera.WorldToScreen(x, y)
			if !onScreen {
				continue
			}
			glyph, style := r.theme.tileStyle(tile)
			r.putGlyph(sx, sy, glyph, style)
		}
	}
}

// renderableEntity holds sorting info for entity rendering.
type renderableEntity struct {
	order int
	pos   component.Position
	rend  component.Renderable
}

// drawEntities renders entities standing on visible tiles, ordered by
// RenderOrder.
func (r *Renderer) drawEntities(w *ecs.World, gmap *gamemap.GameMap) {
	ids := w.Query(component.CRenderable, component.CPosition)
	entities := make([]renderableEntity, 0, len(ids))

	for _, id := range ids {
		pos, _ := ecs.Lookup[component.Position](w, id, component.CPosition)
		rend, _ := ecs.Lookup[component.Renderable](w, id, component.CRenderable)
		if !gmap.InBounds(pos.X, pos.Y) || !gmap.At(pos.X, pos.Y).Visible {
			continue
		}
		entities = append(entities, renderableEntity{order: rend.RenderOrder, pos: pos, rend: rend})
	}

	// Lower order is drawn first, so it ends up behind.
	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].order < entities[j].order
	})

	for _, e := range entities {
		sx, sy, onScreen := r.camera.WorldToScreen(e.pos.X, e.pos.Y)
		if !onScreen {
			continue
		}
		style := tcell.StyleDefault.Foreground(e.rend.FGColor).Background(r.theme.Background)
		r.putGlyph(sx, sy, e.rend.Glyph, style)
	}
}

// putGlyph draws a single glyph at screen position (x, y). Wide glyphs get
// their second column blanked.
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	r.screen.SetContent(x, y, runes[0], runes[1:], style)
	if runewidth.StringWidth(glyph) == 2 {
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}
