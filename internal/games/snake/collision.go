package snake

// SelfCollision reports whether candidate hits a segment that will still be
// there after this tick. The current tail is excluded because it vacates its
// cell on a non-growing move, and food never sits on the tail at rest.
func SelfCollision(candidate Address, body Body) bool {
	for i := 0; i < len(body.segs)-1; i++ {
		if body.segs[i] == candidate {
			return true
		}
	}
	return false
}

// FoodCollision reports whether candidate lands on the food cell.
func FoodCollision(candidate, food Address, hasFood bool) bool {
	return hasFood && candidate == food
}
