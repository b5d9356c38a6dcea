package snake

import (
	"errors"
	"fmt"
)

// Recording captures everything needed to rebuild a session: its config
// (with the seed that was used), the accepted direction changes and the
// number of ticks that were run.
type Recording struct {
	Config Config
	Inputs []Input
	Ticks  uint64
}

// Recording returns the current session's recording. It is empty when Idle.
func (e *Engine) Recording() Recording {
	e.mu.Lock()
	defer e.mu.Unlock()

	inputs := make([]Input, len(e.inputs))
	copy(inputs, e.inputs)
	return Recording{
		Config: e.cfg,
		Inputs: inputs,
		Ticks:  e.ticks,
	}
}

// Replay runs a recording on a fresh engine and returns the final view.
// The session stops after rec.Ticks ticks or when it ends, whichever comes first.
func Replay(rec Recording, opts ...Option) (TickResult, error) {
	if rec.Config.Seed == 0 {
		return TickResult{}, errors.New("snake: recording has no seed")
	}

	e := NewEngine(opts...)
	result, err := e.Start(rec.Config)
	if err != nil {
		return result, fmt.Errorf("snake: replay start: %w", err)
	}

	next := 0
	for result.State == StateRunning && result.Tick < rec.Ticks {
		for next < len(rec.Inputs) && rec.Inputs[next].Tick <= result.Tick {
			e.SetDirection(rec.Inputs[next].Dir)
			next++
		}
		result = e.Tick()
	}
	return result, nil
}
