package world

import (
	"math"
	"math/rand"
	"testing"
)

func TestNormalizeZeroVector(t *testing.T) {
	x, y := Normalize(0, 0)
	if x != 0 || y != 0 {
		t.Fatalf("Normalize(0,0) = (%v,%v), want (0,0)", x, y)
	}
}

func TestNormalizeUnitLength(t *testing.T) {
	x, y := Normalize(3, 4)
	if got := math.Hypot(x, y); math.Abs(got-1) > 1e-12 {
		t.Fatalf("normalized length = %v, want 1", got)
	}
	if x != 0.6 || y != 0.8 {
		t.Fatalf("Normalize(3,4) = (%v,%v), want (0.6,0.8)", x, y)
	}
}

func TestCirclesOverlapTouchingIsNotHit(t *testing.T) {
	// Distance exactly equal to radius sum: not a collision.
	if CirclesOverlap(0, 0, 3, 10, 0, 7) {
		t.Fatal("touching circles should not overlap")
	}
	if !CirclesOverlap(0, 0, 3, 9.99, 0, 7) {
		t.Fatal("circles closer than radius sum should overlap")
	}
}

func TestInCullBounds(t *testing.T) {
	cases := []struct {
		x, y float64
		want bool
	}{
		{0, 0, true},
		{CullMin, CullMin, true},
		{CullMax, CullMax, true},
		{CullMin - 1, 0, false},
		{0, CullMax + 1, false},
	}
	for _, c := range cases {
		if got := InCullBounds(c.x, c.y); got != c.want {
			t.Errorf("InCullBounds(%v,%v) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestEdgeSpawnPointOutsideWorld(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const w, h, off = 1280.0, 720.0, 50.0

	for i := 0; i < 200; i++ {
		x, y := EdgeSpawnPoint(rng, w, h, off)
		onTop := y == -off && x >= 0 && x <= w
		onBottom := y == h+off && x >= 0 && x <= w
		onLeft := x == -off && y >= 0 && y <= h
		onRight := x == w+off && y >= 0 && y <= h
		if !onTop && !onBottom && !onLeft && !onRight {
			t.Fatalf("spawn point (%v,%v) not on any edge band", x, y)
		}
	}
}

func TestEdgeSpawnPointCoversAllEdges(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		x, y := EdgeSpawnPoint(rng, 100, 100, 10)
		switch {
		case y == -10:
			seen["top"] = true
		case y == 110:
			seen["bottom"] = true
		case x == -10:
			seen["left"] = true
		case x == 110:
			seen["right"] = true
		}
	}
	if len(seen) != 4 {
		t.Fatalf("200 spawns hit %d edges, want 4", len(seen))
	}
}
