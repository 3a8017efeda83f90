// shadowcast prints one field-of-view pass as ASCII: O for visible cells,
// . for hidden ones.
//
//	shadowcast [-width 10] [-height 5] [-x 3] [-y 3] [-radius 3] [-walls "4,3 5,1"]
//	shadowcast -map level.txt [-radius 8]
//
// A map file uses # for walls, . for floor, + for doors, > for stairs and @
// for the origin.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"shadowcast-rogue/internal/fov"
	"shadowcast-rogue/internal/gamemap"
	"shadowcast-rogue/internal/logger"
)

func main() {
	width := flag.Int("width", 10, "grid width")
	height := flag.Int("height", 5, "grid height")
	x := flag.Int("x", 3, "origin column")
	y := flag.Int("y", 3, "origin row")
	radius := flag.Int("radius", 3, "view radius")
	walls := flag.String("walls", "", `space-separated wall cells, e.g. "4,3 5,1"`)
	mapFile := flag.String("map", "", "read the grid and origin from an ASCII map file")
	flag.Parse()

	if err := initLogging(); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}

	var (
		lm     *fov.LightMap
		origin fov.Pos
		err    error
	)
	if *mapFile != "" {
		lm, origin, err = loadMap(*mapFile)
	} else {
		lm, origin, err = buildGrid(*width, *height, *x, *y, *walls)
	}
	if err != nil {
		logger.Log.WithError(err).Fatal("cannot build grid")
	}

	lm.CalculatePOV(*radius, origin)
	logger.Log.WithField("visible", lm.VisibleCount()).Debug("pass complete")

	out := bufio.NewWriter(os.Stdout)
	draw(out, lm)
	out.Flush()
}

// initLogging keeps log lines off stdout, where the grid is printed.
func initLogging() error {
	if err := logger.Init(); err != nil {
		return err
	}
	if os.Getenv("LOG_FILE") == "" {
		logger.Log.SetOutput(os.Stderr)
	}
	return nil
}

func buildGrid(width, height, x, y int, walls string) (*fov.LightMap, fov.Pos, error) {
	cells, err := parseWalls(walls)
	if err != nil {
		return nil, fov.Pos{}, err
	}
	lm := fov.NewLightMap(width, height)
	for _, p := range cells {
		lm.SetWall(p)
	}
	return lm, fov.Pos{X: x, Y: y}, nil
}

// parseWalls reads "x,y" pairs separated by spaces.
func parseWalls(s string) ([]fov.Pos, error) {
	var cells []fov.Pos
	for _, field := range strings.Fields(s) {
		xs, ys, ok := strings.Cut(field, ",")
		if !ok {
			return nil, fmt.Errorf("wall %q: want x,y", field)
		}
		x, err := strconv.Atoi(xs)
		if err != nil {
			return nil, fmt.Errorf("wall %q: %w", field, err)
		}
		y, err := strconv.Atoi(ys)
		if err != nil {
			return nil, fmt.Errorf("wall %q: %w", field, err)
		}
		cells = append(cells, fov.Pos{X: x, Y: y})
	}
	return cells, nil
}

func loadMap(path string) (*fov.LightMap, fov.Pos, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fov.Pos{}, fmt.Errorf("read map: %w", err)
	}
	return parseMap(splitRows(string(data)))
}

// splitRows breaks a map file into rows, accepting LF or CRLF endings.
func splitRows(data string) []string {
	rows := strings.Split(strings.TrimRight(data, "\r\n"), "\n")
	for i, row := range rows {
		rows[i] = strings.TrimSuffix(row, "\r")
	}
	return rows
}

func parseMap(rows []string) (*fov.LightMap, fov.Pos, error) {
	gmap, sx, sy, err := gamemap.Parse(rows)
	if err != nil {
		return nil, fov.Pos{}, err
	}
	if sx < 0 {
		return nil, fov.Pos{}, fmt.Errorf("map has no @ origin")
	}
	lm := fov.NewLightMap(gmap.Width, gmap.Height)
	gmap.CastWalls(lm)
	return lm, fov.Pos{X: sx, Y: sy}, nil
}

// draw writes the grid one row per line, every cell followed by a space.
func draw(w io.Writer, lm *fov.LightMap) {
	for y := range lm.Height() {
		for x := range lm.Width() {
			if lm.IsVisible(fov.Pos{X: x, Y: y}) {
				io.WriteString(w, "O ")
			} else {
				io.WriteString(w, ". ")
			}
		}
		io.WriteString(w, "\n")
	}
}
