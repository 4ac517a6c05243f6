package director

import (
	"math/rand"
	"slices"
)

// ApplyOrder reorders steps in place. Generation order is already
// inner-to-outer. A nil rng leaves Randomized steps unshuffled.
func ApplyOrder(steps []CameraStep, order RenderOrder, rng *rand.Rand) {
	switch order {
	case OuterToInner:
		slices.Reverse(steps)
	case Randomized:
		if rng == nil {
			return
		}
		rng.Shuffle(len(steps), func(i, j int) {
			steps[i], steps[j] = steps[j], steps[i]
		})
	}
}
