package game

import (
	"math"
	"math/rand"

	"shadowcast-rogue/internal/generate"
)

// levelConfig builds a generate.Config for the given depth. Deeper levels
// have smaller rooms, more pillars and more stalkers.
func levelConfig(depth int, cfg Config, rng *rand.Rand) *generate.Config {
	t := 0.0
	if cfg.Levels > 1 {
		t = float64(depth-1) / float64(cfg.Levels-1)
	}

	return &generate.Config{
		MapWidth:      cfg.MapWidth,
		MapHeight:     cfg.MapHeight,
		MinLeafSize:   8,
		MaxLeafSize:   lerpi(20, 12, t),
		MinRoomSize:   4,
		RoomPadding:   1,
		CorridorStyle: generate.CorridorStyle((depth - 1) % 3),
		Doors:         cfg.Doors,
		PillarCount:   lerpi(cfg.PillarCount, cfg.PillarCount*2, t),
		StalkerCount:  lerpi(cfg.StalkerCount, cfg.StalkerCount*3, t),
		Rand:          rng,
	}
}

func lerpi(a, b int, t float64) int {
	return int(math.Round(float64(a) + t*float64(b-a)))
}
