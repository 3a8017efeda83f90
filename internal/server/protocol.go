package server

import (
	"errors"
	"fmt"
	"strings"

	"shadowcast-rogue/internal/fov"
)

// MaxGridSide bounds the width and height a client may ask for.
const MaxGridSide = 256

// Message types.
const (
	TypeFOV   = "fov"
	TypeError = "error"
)

// Request asks for one field-of-view pass over a grid.
type Request struct {
	Type   string   `json:"type"`
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Walls  [][2]int `json:"walls"`
	Origin [2]int   `json:"origin"`
	Radius int      `json:"radius"`
}

// Response carries the visible cells as rows of 'x' (visible) and '.'.
// Clients can decode error replies into it as well; only Type and Error are
// set then.
type Response struct {
	Type    string   `json:"type"`
	Visible []string `json:"visible,omitempty"`
	Count   int      `json:"count"`
	Error   string   `json:"error,omitempty"`
}

// errorReply is what the server sends for a rejected request.
type errorReply struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

func (r Request) validate() error {
	if r.Type != TypeFOV {
		return fmt.Errorf("unknown request type %q", r.Type)
	}
	if r.Width < 1 || r.Height < 1 || r.Width > MaxGridSide || r.Height > MaxGridSide {
		return fmt.Errorf("grid %dx%d outside 1..%d", r.Width, r.Height, MaxGridSide)
	}
	if r.Radius < 0 {
		return errors.New("radius must not be negative")
	}
	return nil
}

// Compute runs the pass described by req. Walls outside the grid are
// ignored and radii past fov.MaxViewDistance are clamped.
func Compute(req Request) (Response, error) {
	if err := req.validate(); err != nil {
		return Response{}, err
	}
	lm := fov.NewLightMap(req.Width, req.Height)
	for _, w := range req.Walls {
		lm.SetWall(fov.Pos{X: w[0], Y: w[1]})
	}
	lm.CalculatePOV(req.Radius, fov.Pos{X: req.Origin[0], Y: req.Origin[1]})

	rows := make([]string, req.Height)
	for y := range req.Height {
		var sb strings.Builder
		sb.Grow(req.Width)
		for x := range req.Width {
			if lm.IsVisible(fov.Pos{X: x, Y: y}) {
				sb.WriteByte('x')
			} else {
				sb.WriteByte('.')
			}
		}
		rows[y] = sb.String()
	}
	return Response{Type: TypeFOV, Visible: rows, Count: lm.VisibleCount()}, nil
}

func errorResponse(err error) errorReply {
	return errorReply{Type: TypeError, Error: err.Error()}
}
