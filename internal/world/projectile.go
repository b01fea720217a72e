package world

import "github.com/arenago/server/internal/net/proto"

// ProjectileInfo holds in-memory data for one in-flight projectile. It dies
// on its first hostile hit or when it leaves the cull box.
// Accessed only from the game loop goroutine; no locks needed.
type ProjectileInfo struct {
	ID      string
	X       float64
	Y       float64
	VX      float64
	VY      float64
	Radius  float64
	Damage  int
	OwnerID string // participant credited for kills; may be gone already
}

// Snap converts the projectile to its wire form.
func (b *ProjectileInfo) Snap() proto.ProjectileSnap {
	return proto.ProjectileSnap{
		ID:      b.ID,
		X:       b.X,
		Y:       b.Y,
		VX:      b.VX,
		VY:      b.VY,
		OwnerID: b.OwnerID,
	}
}
