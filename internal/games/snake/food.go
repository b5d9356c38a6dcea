package snake

import "math/rand"

// Spawn picks a cell uniformly from the grid cells not in occupied.
// It samples the complement set directly, so it terminates even on a nearly
// full board, and returns ErrBoardFull when no free cell remains.
func Spawn(gridCount int, occupied map[Address]struct{}, rng *rand.Rand) (Address, error) {
	total := gridCount * gridCount
	if len(occupied) >= total {
		return Address{}, ErrBoardFull
	}

	free := make([]Address, 0, total-len(occupied))
	for row := range gridCount {
		for col := range gridCount {
			p := Address{Col: col, Row: row}
			if _, taken := occupied[p]; !taken {
				free = append(free, p)
			}
		}
	}

	if len(free) == 0 {
		return Address{}, ErrBoardFull
	}
	return free[rng.Intn(len(free))], nil
}
