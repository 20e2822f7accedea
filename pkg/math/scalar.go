package math

import "github.com/chewxy/math32"

// Degree/radian conversion factors.
const (
	Deg2Rad = math32.Pi / 180
	Rad2Deg = 180 / math32.Pi
)

// Clamp limits v to [min, max].
func Clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// ApproxEqual reports whether a and b differ by at most eps.
func ApproxEqual(a, b, eps float32) bool {
	return math32.Abs(a-b) <= eps
}
