package snake

import (
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// initialDirection is the heading of every new session.
const initialDirection = DirLeft

// Input is a direction change accepted while the engine had completed Tick ticks.
type Input struct {
	Tick uint64
	Dir  Direction
}

// Engine owns one snake session at a time: body, food, score, direction
// and lifecycle state. All methods are safe for concurrent use; a single
// mutex covers each whole operation, so Tick never interleaves with input.
type Engine struct {
	mu       sync.Mutex
	logger   *log.Logger
	seedFunc func() int64

	cfg     Config
	rng     *rand.Rand
	state   State
	reason  EndReason
	body    Body
	food    Address
	hasFood bool
	score   int
	dir     Direction // Direction of the last move
	nextDir Direction // Direction for the next move
	ticks   uint64
	inputs  []Input
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for lifecycle events (logged at debug level).
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithSeedFunc sets the source of seeds for sessions started with Config.Seed == 0.
func WithSeedFunc(f func() int64) Option {
	return func(e *Engine) {
		if f != nil {
			e.seedFunc = f
		}
	}
}

// NewEngine creates an idle engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		logger:   log.New(io.Discard),
		seedFunc: func() int64 { return time.Now().UnixNano() },
		dir:      initialDirection,
		nextDir:  initialDirection,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start begins a session. The engine must be Idle; configuration errors
// leave it Idle. The body is built at the grid center pointing left with
// its tail toward the right edge, and the first food is placed.
func (e *Engine) Start(cfg Config) (TickResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateIdle {
		return e.snapshotLocked(), ErrNotIdle
	}
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return e.snapshotLocked(), err
	}
	if cfg.Seed == 0 {
		cfg.Seed = e.seedFunc()
	}

	center := cfg.GridCount / 2
	e.cfg = cfg
	e.rng = rand.New(rand.NewSource(cfg.Seed))
	e.body = BuildBody(Address{Col: center, Row: center}, cfg.InitialLength, initialDirection)
	e.dir = initialDirection
	e.nextDir = initialDirection
	e.score = 0
	e.ticks = 0
	e.reason = ReasonNone
	e.inputs = nil
	e.hasFood = false
	e.state = StateRunning

	e.logger.Debug("session started",
		"grid", cfg.GridCount,
		"boundary", cfg.Boundary,
		"length", cfg.InitialLength,
		"interval", cfg.TickInterval,
		"seed", cfg.Seed,
	)

	e.placeFood()
	return e.snapshotLocked(), nil
}

// SetDirection queues the direction for the next tick. It is ignored unless
// the engine is Running, and ignored when d reverses the last move.
func (e *Engine) SetDirection(d Direction) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateRunning || !d.Valid() {
		return
	}
	// Compare with the last completed move, not the queued one, so two turns
	// between ticks cannot add up to a reversal.
	if d == e.dir.Opposite() {
		return
	}
	e.nextDir = d
	e.inputs = append(e.inputs, Input{Tick: e.ticks, Dir: d})
}

// Tick advances the session by one cell. Outside Running it changes nothing
// and returns the current view.
func (e *Engine) Tick() TickResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateRunning {
		return e.snapshotLocked()
	}

	e.dir = e.nextDir
	e.ticks++

	candidate, err := NextAddress(e.body.Head(), e.dir, e.cfg.GridCount, e.cfg.Boundary)
	if err != nil {
		e.endLocked(ReasonWall)
		return e.snapshotLocked()
	}

	// Self collision wins over food on the same cell.
	if SelfCollision(candidate, e.body) {
		e.endLocked(ReasonSelf)
		return e.snapshotLocked()
	}

	e.body.AdvanceHead(candidate)

	if FoodCollision(candidate, e.food, e.hasFood) {
		e.score++
		e.hasFood = false
		e.placeFood()
	} else {
		// AdvanceHead guarantees at least two segments here.
		_ = e.body.DropTail()
	}

	return e.snapshotLocked()
}

// Reset returns a Running or Ended engine to Idle and clears the session.
func (e *Engine) Reset() TickResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == StateIdle {
		return e.snapshotLocked()
	}

	e.logger.Debug("session reset", "state", e.state, "score", e.score)

	e.cfg = Config{}
	e.rng = nil
	e.body = Body{}
	e.food = Address{}
	e.hasFood = false
	e.score = 0
	e.ticks = 0
	e.reason = ReasonNone
	e.dir = initialDirection
	e.nextDir = initialDirection
	e.inputs = nil
	e.state = StateIdle
	return e.snapshotLocked()
}

// Snapshot returns the current view without changing anything.
func (e *Engine) Snapshot() TickResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// State returns the lifecycle state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Score returns the current score.
func (e *Engine) Score() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.score
}

// Direction returns the heading for the next move.
func (e *Engine) Direction() Direction {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.nextDir
}

// Config returns the active session config, including the seed in use.
func (e *Engine) Config() Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// TickInterval returns the session tick interval, or zero when Idle.
func (e *Engine) TickInterval() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg.TickInterval
}

// placeFood spawns food over the current body. A full board ends the
// session as a win.
func (e *Engine) placeFood() {
	addr, err := Spawn(e.cfg.GridCount, e.body.OccupiedSet(), e.rng)
	if err != nil {
		e.hasFood = false
		e.endLocked(ReasonBoardFull)
		return
	}
	e.food = addr
	e.hasFood = true
}

func (e *Engine) endLocked(reason EndReason) {
	e.state = StateEnded
	e.reason = reason
	e.logger.Debug("session ended",
		"reason", reason,
		"score", e.score,
		"ticks", e.ticks,
		"length", e.body.Len(),
	)
}

func (e *Engine) snapshotLocked() TickResult {
	cells := make([]Cell, len(e.body.segs))
	for i, seg := range e.body.segs {
		role := RoleBody
		if i == 0 {
			role = RoleHead
		}
		cells[i] = Cell{Addr: seg, Role: role}
	}

	return TickResult{
		Head:      e.body.Head(),
		Cells:     cells,
		Food:      e.food,
		HasFood:   e.hasFood,
		Score:     e.score,
		State:     e.state,
		Reason:    e.reason,
		Direction: e.nextDir,
		Tick:      e.ticks,
		GridCount: e.cfg.GridCount,
		Boundary:  e.cfg.Boundary,
	}
}
