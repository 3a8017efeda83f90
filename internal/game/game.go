package game

import (
	"fmt"
	"math/rand"
	"time"

	"shadowcast-rogue/internal/component"
	"shadowcast-rogue/internal/ecs"
	"shadowcast-rogue/internal/factory"
	"shadowcast-rogue/internal/fov"
	"shadowcast-rogue/internal/gamemap"
	"shadowcast-rogue/internal/generate"
	"shadowcast-rogue/internal/logger"
	"shadowcast-rogue/internal/render"
	"shadowcast-rogue/internal/system"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
)

// GameState tracks the main state machine.
type GameState uint8

const (
	StatePlaying GameState = iota
	StateCaught
	StateEscaped
	StateQuit
)

const maxMessages = 50

// Game is the top-level orchestrator of one run.
type Game struct {
	screen   tcell.Screen
	renderer *render.Renderer
	cfg      Config
	rng      *rand.Rand
	log      *logrus.Entry

	world    *ecs.World
	gmap     *gamemap.GameMap
	lm       *fov.LightMap
	pf       *system.Pathfinder
	playerID ecs.EntityID

	depth    int
	state    GameState
	messages []string
	runLog   RunLog
}

// New creates a Game on the local terminal.
func New(cfg Config) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return NewWithScreen(screen, cfg)
}

// NewWithScreen creates a Game drawing on an already initialised screen.
// The game owns the screen from here on and finalises it when Run returns.
func NewWithScreen(screen tcell.Screen, cfg Config) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := &Game{
		screen:   screen,
		renderer: render.NewRenderer(screen),
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(seed)),
		log:      logger.Log.WithFields(logrus.Fields{"component": "game", "seed": seed}),
		runLog:   RunLog{Seed: seed, Started: time.Now()},
	}
	g.loadLevel(1)
	return g, nil
}

// State reports where the run stands.
func (g *Game) State() GameState { return g.state }

// Depth returns the current level, starting at 1.
func (g *Game) Depth() int { return g.depth }

// loadLevel generates and populates the given level and places the player
// at its start.
func (g *Game) loadLevel(depth int) {
	g.depth = depth
	g.runLog.DepthReached = max(g.runLog.DepthReached, depth)

	cfg := levelConfig(depth, g.cfg, g.rng)
	gmap, px, py := generate.Generate(cfg)
	pop := generate.Populate(gmap, cfg)

	g.world = ecs.NewWorld()
	g.gmap = gmap
	g.lm = fov.NewLightMap(gmap.Width, gmap.Height)
	g.pf = system.NewPathfinder(gmap)

	for _, p := range pop.Pillars {
		factory.NewPillar(g.world, p.X, p.Y)
	}
	for _, s := range pop.Stalkers {
		factory.NewStalker(g.world, s.X, s.Y)
	}
	g.playerID = factory.NewPlayer(g.world, px, py, g.cfg.ViewRadius)

	system.UpdateFOV(g.world, g.gmap, g.lm, g.playerID)
	g.renderer.CenterOn(px, py)

	g.log.WithFields(logrus.Fields{
		"depth":    depth,
		"rooms":    len(gmap.Rooms),
		"pillars":  len(pop.Pillars),
		"stalkers": len(pop.Stalkers),
	}).Info("level loaded")

	if depth == 1 {
		g.addMessage("Use hjklyubn or arrow keys to move. > to descend, q to quit.")
	} else {
		g.addMessage(fmt.Sprintf("You descend to depth %d.", depth))
	}
}

// Run is the main loop. It returns when the player quits, is caught or
// escapes from the last level.
func (g *Game) Run() {
	defer g.screen.Fini()
	defer g.finish()

	for g.state == StatePlaying {
		g.draw()

		switch ev := g.screen.PollEvent().(type) {
		case nil:
			g.state = StateQuit
		case *tcell.EventResize:
			g.screen.Sync()
			g.renderer.Resize()
		case *tcell.EventKey:
			g.processAction(keyToAction(ev))
		}
	}

	if g.state != StateQuit {
		g.draw()
		g.waitForKey()
	}
}

// waitForKey blocks until any key is pressed or the screen goes away.
func (g *Game) waitForKey() {
	for {
		switch g.screen.PollEvent().(type) {
		case nil, *tcell.EventKey:
			return
		}
	}
}

func (g *Game) draw() {
	pos := g.playerPosition()
	g.renderer.CenterOn(pos.X, pos.Y)
	g.renderer.DrawFrame(g.world, g.gmap)
	g.renderer.DrawHUD(g.status(), g.messages)
}

func (g *Game) status() render.Status {
	explored, walkable := g.gmap.ExploredCount()
	return render.Status{
		Depth:    g.depth,
		Turn:     g.runLog.TurnsPlayed,
		Visible:  g.lm.VisibleCount(),
		Explored: explored,
		Walkable: walkable,
	}
}

// processAction handles one player action and, if it took a turn, lets the
// stalkers act.
func (g *Game) processAction(action Action) {
	turnUsed := false

	switch action {
	case ActionNone:
		return

	case ActionQuit:
		g.state = StateQuit
		return

	case ActionWait:
		turnUsed = true

	case ActionLook:
		g.addMessage(g.look())
		return

	case ActionDescend:
		pos := g.playerPosition()
		if g.gmap.At(pos.X, pos.Y).Kind != gamemap.TileStairsDown {
			g.addMessage("There are no stairs down here.")
			return
		}
		g.countExplored()
		if g.depth >= g.cfg.Levels {
			g.state = StateEscaped
			g.addMessage("You slip out of the deepest level unseen. You escaped!")
			return
		}
		g.loadLevel(g.depth + 1)
		return

	default:
		dx, dy := actionToDelta(action)
		result, target := system.TryMove(g.world, g.gmap, g.playerID, dx, dy)
		switch result {
		case system.MoveOK:
			turnUsed = true
			system.UpdateFOV(g.world, g.gmap, g.lm, g.playerID)
		case system.MoveBump:
			turnUsed = true
			g.addMessage(fmt.Sprintf("The %s stares back at you.", g.entityName(target)))
		case system.MoveBlocked:
			// no message for walking into walls
		}
	}

	if turnUsed {
		g.endTurn()
	}
}

// endTurn runs the stalkers and checks whether one reached the player.
func (g *Game) endTurn() {
	g.runLog.TurnsPlayed++

	tracking := g.trackingCount()
	caughtBy := system.ProcessAI(g.world, g.gmap, g.pf, g.playerID)
	if now := g.trackingCount(); now > tracking {
		g.runLog.TimesSpotted += now - tracking
		g.addMessage("Something has seen you.")
	}

	if caughtBy != ecs.NilEntity {
		g.countExplored()
		g.state = StateCaught
		g.addMessage(fmt.Sprintf("The %s catches you. Press any key.", g.entityName(caughtBy)))
		g.log.WithFields(logrus.Fields{"depth": g.depth, "turn": g.runLog.TurnsPlayed}).Info("player caught")
	}
}

func (g *Game) trackingCount() int {
	n := 0
	for _, id := range g.world.Query(component.CAI) {
		if ai, _ := ecs.Lookup[component.AI](g.world, id, component.CAI); ai.Tracking {
			n++
		}
	}
	return n
}

// look describes the stalkers standing on visible tiles. It takes no turn.
func (g *Game) look() string {
	seen := 0
	for _, id := range g.world.Query(component.CAI) {
		if system.InView(g.world, g.gmap, id) {
			seen++
		}
	}
	switch seen {
	case 0:
		return "Nothing stirs in sight."
	case 1:
		return "One stalker is in sight."
	}
	return fmt.Sprintf("%d stalkers are in sight.", seen)
}

// countExplored adds the current level's explored tiles to the run log.
func (g *Game) countExplored() {
	explored, _ := g.gmap.ExploredCount()
	g.runLog.TilesExplored += explored
}

// finish records the run once the loop ends.
func (g *Game) finish() {
	switch g.state {
	case StateCaught:
		g.runLog.Outcome = OutcomeCaught
	case StateEscaped:
		g.runLog.Outcome = OutcomeEscaped
	default:
		g.runLog.Outcome = OutcomeQuit
		g.countExplored()
	}
	entry := g.log.WithFields(logrus.Fields{
		"outcome": g.runLog.Outcome,
		"depth":   g.runLog.DepthReached,
		"turns":   g.runLog.TurnsPlayed,
	})
	entry.Info("run finished")

	if !g.cfg.SaveRunLog {
		return
	}
	if err := saveRunLog(g.runLog); err != nil {
		entry.WithError(err).Warn("could not save run log")
	}
}

func (g *Game) entityName(id ecs.EntityID) string {
	if r, ok := ecs.Lookup[component.Renderable](g.world, id, component.CRenderable); ok && r.Name != "" {
		return r.Name
	}
	return "thing"
}

func (g *Game) playerPosition() component.Position {
	pos, _ := ecs.Lookup[component.Position](g.world, g.playerID, component.CPosition)
	return pos
}

func (g *Game) addMessage(msg string) {
	g.messages = append(g.messages, msg)
	if len(g.messages) > maxMessages {
		g.messages = g.messages[len(g.messages)-maxMessages:]
	}
}
