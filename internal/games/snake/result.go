package snake

// State is the engine lifecycle state.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// EndReason tells crashed endings apart from a full board.
type EndReason int

const (
	ReasonNone EndReason = iota
	ReasonWall
	ReasonSelf
	ReasonBoardFull
)

func (r EndReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonWall:
		return "wall"
	case ReasonSelf:
		return "self"
	case ReasonBoardFull:
		return "board_full"
	default:
		return "unknown"
	}
}

// ParseEndReason is the inverse of EndReason.String.
func ParseEndReason(s string) EndReason {
	switch s {
	case "wall":
		return ReasonWall
	case "self":
		return ReasonSelf
	case "board_full":
		return ReasonBoardFull
	default:
		return ReasonNone
	}
}

// Role tags a rendered cell.
type Role int

const (
	RoleHead Role = iota
	RoleBody
)

func (r Role) String() string {
	if r == RoleHead {
		return "head"
	}
	return "body"
}

// Cell is one occupied grid cell with its role.
type Cell struct {
	Addr Address
	Role Role
}

// TickResult is the view of the engine handed to the renderer after every
// Start, Tick and Reset.
type TickResult struct {
	Head      Address
	Cells     []Cell // Head first, then body in order
	Food      Address
	HasFood   bool
	Score     int
	State     State
	Reason    EndReason
	Direction Direction
	Tick      uint64 // Completed ticks in this session
	GridCount int
	Boundary  BoundaryMode
}

// Len returns the body length.
func (r TickResult) Len() int {
	return len(r.Cells)
}

// Body returns the occupied addresses, head first.
func (r TickResult) Body() []Address {
	out := make([]Address, len(r.Cells))
	for i, c := range r.Cells {
		out[i] = c.Addr
	}
	return out
}

// Won reports a session that ended because the board filled up.
func (r TickResult) Won() bool {
	return r.State == StateEnded && r.Reason == ReasonBoardFull
}

// Crashed reports a session that ended on a wall or self collision.
func (r TickResult) Crashed() bool {
	return r.State == StateEnded && (r.Reason == ReasonWall || r.Reason == ReasonSelf)
}
