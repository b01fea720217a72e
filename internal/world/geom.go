package world

import (
	"math"
	"math/rand"
)

// Projectiles live in a cull box generously larger than the playable world
// so a camera scroll never destroys an in-flight shot.
const (
	CullMin = -100.0
	CullMax = 10000.0
)

// Dist returns the Euclidean distance between two points.
func Dist(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// Normalize returns the unit vector of (dx, dy), or (0, 0) for the zero
// vector.
func Normalize(dx, dy float64) (float64, float64) {
	d := math.Sqrt(dx*dx + dy*dy)
	if d == 0 {
		return 0, 0
	}
	return dx / d, dy / d
}

// CirclesOverlap reports whether two circular entities collide:
// distance strictly less than the radius sum. Touching exactly is not a hit.
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	return Dist(x1, y1, x2, y2) < r1+r2
}

// InCullBounds reports whether a projectile position is still worth
// simulating.
func InCullBounds(x, y float64) bool {
	return x >= CullMin && x <= CullMax && y >= CullMin && y <= CullMax
}

// EdgeSpawnPoint picks a hostile spawn position: one of the four world edges
// chosen uniformly, offset units outside the rectangle, uniform along the
// edge.
func EdgeSpawnPoint(rng *rand.Rand, width, height, offset float64) (float64, float64) {
	switch rng.Intn(4) {
	case 0: // top
		return rng.Float64() * width, -offset
	case 1: // right
		return width + offset, rng.Float64() * height
	case 2: // bottom
		return rng.Float64() * width, height + offset
	default: // left
		return -offset, rng.Float64() * height
	}
}
