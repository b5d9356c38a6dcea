package snake

import "github.com/vovakirdan/gridsnake/internal/registry"

// Mode IDs registered with the registry.
const (
	ModeClassic = "classic"
	ModeWrap    = "wrap"
)

func init() {
	registry.Register(registry.Mode{
		ID:          ModeClassic,
		Title:       "Classic",
		Description: "Walled grid: leaving the board ends the game",
		Boundary:    Walled.String(),
	})
	registry.Register(registry.Mode{
		ID:          ModeWrap,
		Title:       "Wraparound",
		Description: "Toroidal grid: edges wrap to the opposite side",
		Boundary:    Wraparound.String(),
	})
}

// BoundaryForMode resolves a registered mode to its boundary policy.
func BoundaryForMode(id string) (BoundaryMode, error) {
	m, err := registry.Get(id)
	if err != nil {
		return 0, err
	}
	return ParseBoundaryMode(m.Boundary)
}
