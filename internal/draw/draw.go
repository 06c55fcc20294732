// Package draw renders scenes to terminals with coloured half-block
// characters.
package draw

// Point represents a 2D coordinate in logical space.
type Point struct {
	X, Y float64
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
