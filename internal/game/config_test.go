package game

import (
	"math/rand"
	"testing"

	"shadowcast-rogue/internal/gamemap"
	"shadowcast-rogue/internal/generate"

	"github.com/gdamore/tcell/v2"
)

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"default", func(*Config) {}, true},
		{"tiny map", func(c *Config) { c.MapWidth = 10 }, false},
		{"zero radius", func(c *Config) { c.ViewRadius = 0 }, false},
		{"radius over cap", func(c *Config) { c.ViewRadius = 33 }, false},
		{"no levels", func(c *Config) { c.Levels = 0 }, false},
		{"negative stalkers", func(c *Config) { c.StalkerCount = -1 }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); (err == nil) != tc.ok {
				t.Errorf("Validate() = %v; want ok=%v", err, tc.ok)
			}
		})
	}
}

func TestLevelConfigScalesWithDepth(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(1))

	first := levelConfig(1, cfg, rng)
	last := levelConfig(cfg.Levels, cfg, rng)

	if first.PillarCount != cfg.PillarCount || first.StalkerCount != cfg.StalkerCount {
		t.Errorf("first level counts = %d/%d; want %d/%d",
			first.PillarCount, first.StalkerCount, cfg.PillarCount, cfg.StalkerCount)
	}
	if last.PillarCount != cfg.PillarCount*2 || last.StalkerCount != cfg.StalkerCount*3 {
		t.Errorf("last level counts = %d/%d", last.PillarCount, last.StalkerCount)
	}
	if last.MaxLeafSize >= first.MaxLeafSize {
		t.Error("deeper levels should have smaller leaves")
	}
	if first.CorridorStyle != generate.CorridorLShaped {
		t.Errorf("first level corridors = %d; want L-shaped", first.CorridorStyle)
	}
}

func TestLevelConfigSingleLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Levels = 1
	lc := levelConfig(1, cfg, rand.New(rand.NewSource(1)))
	if lc.StalkerCount != cfg.StalkerCount {
		t.Errorf("stalkers = %d; want %d", lc.StalkerCount, cfg.StalkerCount)
	}
}

func TestMinimumMapLevelsHaveStairs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MapWidth, cfg.MapHeight = 20, 12
	if err := cfg.Validate(); err != nil {
		t.Fatalf("20x12 should be a valid map: %v", err)
	}
	for seed := int64(1); seed <= 200; seed++ {
		for depth := 1; depth <= cfg.Levels; depth++ {
			gmap, _, _ := generate.Generate(levelConfig(depth, cfg, rand.New(rand.NewSource(seed))))
			found := false
			for y := range gmap.Height {
				for x := range gmap.Width {
					found = found || gmap.At(x, y).Kind == gamemap.TileStairsDown
				}
			}
			if !found {
				t.Fatalf("seed %d depth %d: no stairs down", seed, depth)
			}
		}
	}
}

func TestKeyToAction(t *testing.T) {
	cases := []struct {
		ev   *tcell.EventKey
		want Action
	}{
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), ActionMoveN},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), ActionMoveW},
		{tcell.NewEventKey(tcell.KeyRune, 'l', tcell.ModNone), ActionMoveE},
		{tcell.NewEventKey(tcell.KeyRune, 'y', tcell.ModNone), ActionMoveNW},
		{tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone), ActionMoveSE},
		{tcell.NewEventKey(tcell.KeyRune, '>', tcell.ModNone), ActionDescend},
		{tcell.NewEventKey(tcell.KeyRune, '.', tcell.ModNone), ActionWait},
		{tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), ActionQuit},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), ActionQuit},
		{tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), ActionLook},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), ActionWait},
		{tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), ActionNone},
	}
	for _, tc := range cases {
		if got := keyToAction(tc.ev); got != tc.want {
			t.Errorf("keyToAction(%v) = %d; want %d", tc.ev.Name(), got, tc.want)
		}
	}
}

func TestActionToDelta(t *testing.T) {
	if dx, dy := actionToDelta(ActionMoveSW); dx != -1 || dy != 1 {
		t.Errorf("SW = (%d,%d)", dx, dy)
	}
	if dx, dy := actionToDelta(ActionWait); dx != 0 || dy != 0 {
		t.Errorf("wait = (%d,%d)", dx, dy)
	}
}
