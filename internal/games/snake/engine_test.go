package snake

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func testConfig(mode BoundaryMode) Config {
	return Config{
		GridCount:     12,
		TickInterval:  200 * time.Millisecond,
		Boundary:      mode,
		InitialLength: 5,
		Seed:          12345,
	}
}

// startEngine starts a session and moves the food to a far corner so the
// first moves are plain shifts.
func startEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	e := NewEngine()
	if _, err := e.Start(cfg); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	e.food = Address{Col: 0, Row: 0}
	e.hasFood = true
	return e
}

func checkFoodOffBody(t *testing.T, r TickResult) {
	t.Helper()
	if !r.HasFood {
		return
	}
	for _, c := range r.Cells {
		if c.Addr == r.Food {
			t.Fatalf("tick %d: food %v overlaps the body", r.Tick, r.Food)
		}
	}
}

func TestStartLayout(t *testing.T) {
	e := NewEngine()
	r, err := e.Start(testConfig(Wraparound))
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if r.State != StateRunning {
		t.Fatalf("State = %s, expected running", r.State)
	}
	want := []Address{{6, 6}, {7, 6}, {8, 6}, {9, 6}, {10, 6}}
	got := r.Body()
	if len(got) != len(want) {
		t.Fatalf("body length = %d, expected %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("segment %d = %v, expected %v", i, got[i], want[i])
		}
	}
	if r.Cells[0].Role != RoleHead || r.Cells[1].Role != RoleBody {
		t.Error("first cell should be tagged head, the rest body")
	}
	if r.Direction != DirLeft {
		t.Errorf("Direction = %s, expected left", r.Direction)
	}
	if r.Score != 0 {
		t.Errorf("Score = %d, expected 0", r.Score)
	}
	if !r.HasFood {
		t.Fatal("Start should place food")
	}
	checkFoodOffBody(t, r)
}

func TestFirstTickShifts(t *testing.T) {
	e := startEngine(t, testConfig(Wraparound))

	r := e.Tick()
	if r.Head != (Address{5, 6}) {
		t.Errorf("Head = %v, expected (5,6)", r.Head)
	}
	if r.Len() != 5 {
		t.Errorf("length = %d, expected 5", r.Len())
	}
	body := r.Body()
	if body[len(body)-1] != (Address{9, 6}) {
		t.Errorf("tail = %v, expected (9,6) after (10,6) is dropped", body[len(body)-1])
	}
	if r.Tick != 1 {
		t.Errorf("Tick = %d, expected 1", r.Tick)
	}
}

func TestEatFoodGrows(t *testing.T) {
	e := startEngine(t, testConfig(Wraparound))
	e.food = Address{Col: 5, Row: 6}

	before := e.Snapshot()
	r := e.Tick()

	if r.Score != before.Score+1 {
		t.Errorf("Score = %d, expected %d", r.Score, before.Score+1)
	}
	if r.Len() != before.Len()+1 {
		t.Errorf("length = %d, expected %d", r.Len(), before.Len()+1)
	}
	if r.Head != (Address{5, 6}) {
		t.Errorf("Head = %v, expected (5,6)", r.Head)
	}
	if !r.HasFood {
		t.Fatal("food should be respawned")
	}
	checkFoodOffBody(t, r)
}

func TestWalledLeftEdgeEnds(t *testing.T) {
	e := startEngine(t, testConfig(Walled))
	e.food = Address{Col: 11, Row: 11}

	r := e.Snapshot()
	for r.Head.Col > 0 {
		r = e.Tick()
		if r.State != StateRunning {
			t.Fatalf("session ended early at %v", r.Head)
		}
	}
	if r.Head != (Address{0, 6}) {
		t.Fatalf("Head = %v, expected (0,6)", r.Head)
	}

	r = e.Tick()
	if r.State != StateEnded {
		t.Fatalf("State = %s, expected ended", r.State)
	}
	if r.Reason != ReasonWall || !r.Crashed() || r.Won() {
		t.Errorf("Reason = %s, expected a wall crash", r.Reason)
	}
}

func TestWraparoundLeftEdge(t *testing.T) {
	e := startEngine(t, testConfig(Wraparound))
	e.food = Address{Col: 11, Row: 11}
	e.body = BuildBody(Address{Col: 0, Row: 6}, 5, DirLeft)

	r := e.Tick()
	if r.State != StateRunning {
		t.Fatalf("State = %s, expected running", r.State)
	}
	if r.Head != (Address{11, 6}) {
		t.Errorf("Head = %v, expected (11,6)", r.Head)
	}
}

func TestSelfCollisionEnds(t *testing.T) {
	e := startEngine(t, testConfig(Walled))
	e.body = Body{segs: []Address{{5, 5}, {5, 6}, {6, 6}, {6, 5}, {6, 4}}}
	e.dir = DirUp
	e.nextDir = DirRight

	r := e.Tick()
	if r.State != StateEnded {
		t.Fatalf("State = %s, expected ended", r.State)
	}
	if r.Reason != ReasonSelf {
		t.Errorf("Reason = %s, expected self", r.Reason)
	}
	if r.Len() != 5 {
		t.Errorf("length = %d, body must stay as it was before the crash", r.Len())
	}
}

func TestMoveIntoVacatingTail(t *testing.T) {
	e := startEngine(t, testConfig(Walled))
	e.body = Body{segs: []Address{{5, 5}, {5, 6}, {6, 6}, {6, 5}}}
	e.dir = DirUp
	e.nextDir = DirRight

	r := e.Tick()
	if r.State != StateRunning {
		t.Fatalf("State = %s, moving into the tail cell must not end the game", r.State)
	}
	if r.Head != (Address{6, 5}) || r.Len() != 4 {
		t.Errorf("Head = %v, length = %d; expected (6,5) and 4", r.Head, r.Len())
	}
}

func TestNoImmediateReversal(t *testing.T) {
	e := startEngine(t, testConfig(Wraparound))

	e.SetDirection(DirRight)
	if e.Direction() != DirLeft {
		t.Fatalf("Direction = %s, reversal should be ignored", e.Direction())
	}

	r := e.Tick()
	if r.Head != (Address{5, 6}) {
		t.Errorf("Head = %v, expected the snake to keep moving left", r.Head)
	}

	// Up then Right between ticks: Right still reverses the last move.
	e.SetDirection(DirUp)
	e.SetDirection(DirRight)
	if e.Direction() != DirUp {
		t.Errorf("Direction = %s, expected up", e.Direction())
	}
	r = e.Tick()
	if r.Head != (Address{5, 5}) {
		t.Errorf("Head = %v, expected (5,5)", r.Head)
	}
}

func TestShiftAndGrowthInvariants(t *testing.T) {
	e := NewEngine()
	cfg := testConfig(Wraparound)
	cfg.Seed = 2024
	r, err := e.Start(cfg)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	turns := []Direction{DirUp, DirRight, DirDown, DirRight, DirUp, DirLeft}
	for i := 0; i < 300 && r.State == StateRunning; i++ {
		if i%7 == 0 {
			e.SetDirection(turns[(i/7)%len(turns)])
		}
		before := r
		r = e.Tick()
		checkFoodOffBody(t, r)

		if r.State != StateRunning {
			break
		}
		switch r.Score - before.Score {
		case 0:
			if r.Len() != before.Len() {
				t.Fatalf("tick %d: length %d -> %d without food", r.Tick, before.Len(), r.Len())
			}
		case 1:
			if r.Len() != before.Len()+1 {
				t.Fatalf("tick %d: length %d -> %d after food", r.Tick, before.Len(), r.Len())
			}
		default:
			t.Fatalf("tick %d: score jumped from %d to %d", r.Tick, before.Score, r.Score)
		}
	}
}

func TestBoardFullWins(t *testing.T) {
	const n = 5
	e := NewEngine()
	if _, err := e.Start(Config{GridCount: n, TickInterval: time.Millisecond, Boundary: Walled, InitialLength: 3, Seed: 1}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// Serpentine over the whole grid; the body covers every cell but (0,0).
	var path []Address
	for row := range n {
		for i := range n {
			col := i
			if row%2 == 1 {
				col = n - 1 - i
			}
			path = append(path, Address{Col: col, Row: row})
		}
	}
	e.body = Body{segs: append([]Address(nil), path[1:]...)}
	e.food = path[0]
	e.hasFood = true
	e.dir = DirLeft
	e.nextDir = DirLeft

	r := e.Tick()
	if r.State != StateEnded {
		t.Fatalf("State = %s, expected ended", r.State)
	}
	if !r.Won() || r.Reason != ReasonBoardFull {
		t.Errorf("Reason = %s, expected board_full", r.Reason)
	}
	if r.Score != 1 || r.Len() != n*n {
		t.Errorf("Score = %d, length = %d; expected 1 and %d", r.Score, r.Len(), n*n)
	}
	if r.HasFood {
		t.Error("no food should be present on a full board")
	}
}

func TestStartConfigErrors(t *testing.T) {
	base := testConfig(Walled)
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"grid too small", func(c *Config) { c.GridCount = 4 }, ErrGridTooSmall},
		{"zero interval", func(c *Config) { c.TickInterval = 0 }, ErrInvalidInterval},
		{"bad boundary", func(c *Config) { c.Boundary = BoundaryMode(9) }, ErrInvalidBoundary},
		{"negative length", func(c *Config) { c.InitialLength = -1 }, ErrInvalidLength},
		{"length does not fit", func(c *Config) { c.InitialLength = 7 }, ErrInvalidLength},
		{"default length too long for grid", func(c *Config) { c.GridCount = 5; c.InitialLength = 0 }, ErrInvalidLength},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			tc.mutate(&cfg)

			e := NewEngine()
			r, err := e.Start(cfg)
			if !errors.Is(err, tc.want) {
				t.Errorf("Start() error = %v, expected %v", err, tc.want)
			}
			if r.State != StateIdle || e.State() != StateIdle {
				t.Errorf("engine should stay idle after a config error, got %s", e.State())
			}
		})
	}
}

func TestDefaultLength(t *testing.T) {
	cfg := testConfig(Walled)
	cfg.InitialLength = 0

	e := NewEngine()
	r, err := e.Start(cfg)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if r.Len() != DefaultInitialLength {
		t.Errorf("length = %d, expected %d", r.Len(), DefaultInitialLength)
	}
}

func TestLifecycle(t *testing.T) {
	e := NewEngine()

	// Idle: tick and direction are ignored.
	e.SetDirection(DirUp)
	if r := e.Tick(); r.State != StateIdle || r.Tick != 0 || r.Len() != 0 {
		t.Errorf("Tick() while idle = %+v, expected no change", r)
	}
	if r := e.Reset(); r.State != StateIdle {
		t.Errorf("Reset() while idle = %s, expected idle", r.State)
	}

	e2 := startEngine(t, testConfig(Walled))
	if _, err := e2.Start(testConfig(Walled)); !errors.Is(err, ErrNotIdle) {
		t.Errorf("second Start() error = %v, expected ErrNotIdle", err)
	}

	e2.body = BuildBody(Address{Col: 0, Row: 6}, 5, DirLeft)
	ended := e2.Tick()
	if ended.State != StateEnded {
		t.Fatalf("State = %s, expected ended", ended.State)
	}

	// Ended: tick and direction are ignored.
	e2.SetDirection(DirUp)
	again := e2.Tick()
	if again.Tick != ended.Tick || again.Head != ended.Head || again.Direction != ended.Direction {
		t.Error("Tick() after the session ended must not change state")
	}
	if _, err := e2.Start(testConfig(Walled)); !errors.Is(err, ErrNotIdle) {
		t.Errorf("Start() while ended error = %v, expected ErrNotIdle", err)
	}

	r := e2.Reset()
	if r.State != StateIdle || r.Score != 0 || r.Len() != 0 || r.HasFood {
		t.Errorf("Reset() = %+v, expected a cleared idle engine", r)
	}

	fresh, err := e2.Start(testConfig(Wraparound))
	if err != nil {
		t.Fatalf("Start() after Reset error = %v", err)
	}
	if fresh.Head != (Address{6, 6}) || fresh.Tick != 0 || fresh.Direction != DirLeft {
		t.Errorf("new session reused stale state: %+v", fresh)
	}
}

func TestDeterminism(t *testing.T) {
	// Two engines with the same seed and inputs produce identical results.
	run := func() TickResult {
		e := NewEngine()
		cfg := testConfig(Wraparound)
		cfg.Seed = 777
		r, err := e.Start(cfg)
		if err != nil {
			t.Fatalf("Start() error = %v", err)
		}
		for i := 0; i < 120 && r.State == StateRunning; i++ {
			switch i {
			case 10:
				e.SetDirection(DirDown)
			case 25:
				e.SetDirection(DirRight)
			case 60:
				e.SetDirection(DirUp)
			}
			r = e.Tick()
		}
		return r
	}

	a, b := run(), run()
	if a.Tick != b.Tick || a.Score != b.Score || a.Head != b.Head || a.Food != b.Food || a.State != b.State {
		t.Errorf("runs diverged: %+v vs %+v", a, b)
	}
}

func TestSeedFuncUsedWhenUnseeded(t *testing.T) {
	e := NewEngine(WithSeedFunc(func() int64 { return 42 }))
	cfg := testConfig(Walled)
	cfg.Seed = 0
	if _, err := e.Start(cfg); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if got := e.Config().Seed; got != 42 {
		t.Errorf("Config().Seed = %d, expected 42", got)
	}
}

func TestConcurrentInput(t *testing.T) {
	e := NewEngine()
	if _, err := e.Start(testConfig(Wraparound)); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		dirs := []Direction{DirUp, DirLeft, DirDown, DirLeft}
		for i := 0; i < 500; i++ {
			e.SetDirection(dirs[i%len(dirs)])
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			e.Tick()
		}
	}()
	wg.Wait()

	r := e.Snapshot()
	checkFoodOffBody(t, r)
	if r.State == StateIdle {
		t.Error("engine should not return to idle without Reset")
	}
}
