package world

import "github.com/arenago/server/internal/net/proto"

// HostileInfo holds in-memory data for one wave hostile.
// Accessed only from the game loop goroutine; no locks needed.
type HostileInfo struct {
	ID     string
	X      float64
	Y      float64
	Radius float64
	Speed  float64 // units per tick
	HP     int
	MaxHP  int
	Damage int // contact damage per tick of overlap
}

// ApplyDamage subtracts health, clamping at zero, and reports whether the
// hostile is now dead.
func (h *HostileInfo) ApplyDamage(dmg int) (died bool) {
	if dmg <= 0 {
		return h.HP <= 0
	}
	h.HP -= dmg
	if h.HP < 0 {
		h.HP = 0
	}
	return h.HP == 0
}

// Snap converts the hostile to its wire form.
func (h *HostileInfo) Snap() proto.HostileSnap {
	return proto.HostileSnap{
		ID:     h.ID,
		X:      h.X,
		Y:      h.Y,
		Radius: h.Radius,
		HP:     h.HP,
		MaxHP:  h.MaxHP,
	}
}
