package render

// Camera translates between world coordinates and screen coordinates.
// Every tile is one terminal column wide.
type Camera struct {
	OffsetX    int
	OffsetY    int
	ViewWidth  int // in terminal columns
	ViewHeight int // in terminal rows
}

// NewCamera creates a camera centered on (cx, cy).
func NewCamera(cx, cy, viewW, viewH int) *Camera {
	c := &Camera{ViewWidth: viewW, ViewHeight: viewH}
	c.Center(cx, cy)
	return c
}

// Center repositions the camera so that world position (cx, cy) is in the middle.
func (c *Camera) Center(cx, cy int) {
	c.OffsetX = cx - c.ViewWidth/2
	c.OffsetY = cy - c.ViewHeight/2
}

// Resize changes the viewport without moving its centre.
func (c *Camera) Resize(viewW, viewH int) {
	cx, cy := c.OffsetX+c.ViewWidth/2, c.OffsetY+c.ViewHeight/2
	c.ViewWidth, c.ViewHeight = viewW, viewH
	c.Center(cx, cy)
}

// WorldToScreen converts world (wx, wy) to screen (sx, sy).
// visible is false when the result falls outside the viewport.
func (c *Camera) WorldToScreen(wx, wy int) (sx, sy int, visible bool) {
	sx = wx - c.OffsetX
	sy = wy - c.OffsetY
	visible = sx >= 0 && sx < c.ViewWidth && sy >= 0 && sy < c.ViewHeight
	return
}

// ScreenToWorld converts screen (sx, sy) to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy int) (int, int) {
	return sx + c.OffsetX, sy + c.OffsetY
}
