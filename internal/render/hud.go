package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Status is the data shown on the HUD status line.
type Status struct {
	Depth    int
	Turn     int
	Visible  int
	Explored int
	Walkable int
}

// DrawHUD renders the status line and the last messages under the map, then
// shows the frame.
func (r *Renderer) DrawHUD(st Status, messages []string) {
	_, screenH := r.screen.Size()
	hudY := screenH - HUDHeight

	r.drawHLine(hudY, tcell.ColorGray)

	pct := 0
	if st.Walkable > 0 {
		pct = st.Explored * 100 / st.Walkable
	}
	status := fmt.Sprintf("Depth: %d  Turn: %d  In view: %d  Explored: %d%%",
		st.Depth, st.Turn, st.Visible, pct)
	r.drawText(0, hudY+1, status, tcell.StyleDefault.Foreground(tcell.ColorWhite))

	start := max(0, len(messages)-(HUDHeight-2))
	for i, msg := range messages[start:] {
		r.drawText(0, hudY+2+i, msg, tcell.StyleDefault.Foreground(tcell.ColorLightYellow))
	}

	r.screen.Show()
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

// drawText writes text from column x, advancing by each rune's display width.
func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col += max(1, runewidth.RuneWidth(ch))
	}
}
