package game

import (
	"errors"
	"fmt"

	"shadowcast-rogue/internal/fov"
)

// Config holds the settings of one run.
type Config struct {
	MapWidth, MapHeight int
	ViewRadius          int
	Levels              int // descending from the last level wins the run
	PillarCount         int // on the first level; deeper levels get more
	StalkerCount        int // on the first level; deeper levels get more
	Doors               bool
	Seed                int64 // 0 picks a time-based seed
	SaveRunLog          bool
}

// DefaultConfig returns the settings used when no flags are given.
func DefaultConfig() Config {
	return Config{
		MapWidth:     80,
		MapHeight:    40,
		ViewRadius:   8,
		Levels:       5,
		PillarCount:  3,
		StalkerCount: 2,
		Doors:        true,
		SaveRunLog:   true,
	}
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	switch {
	case c.MapWidth < 20 || c.MapHeight < 12:
		return fmt.Errorf("map %dx%d is smaller than 20x12", c.MapWidth, c.MapHeight)
	case c.ViewRadius < 1 || c.ViewRadius > fov.MaxViewDistance:
		return fmt.Errorf("view radius %d outside 1..%d", c.ViewRadius, fov.MaxViewDistance)
	case c.Levels < 1:
		return errors.New("need at least one level")
	case c.PillarCount < 0 || c.StalkerCount < 0:
		return errors.New("pillar and stalker counts must not be negative")
	}
	return nil
}
