package sim

import (
	"github.com/arenago/server/internal/core/event"
	"github.com/arenago/server/internal/world"
)

// stepProjectiles advances every projectile one tick, culls the ones that
// left the play area, and resolves hits. A projectile damages at most one
// hostile: the first overlap in scan order wins and the projectile is
// consumed, however many hostiles it happened to overlap that tick.
func (s *Simulator) stepProjectiles(r *world.RoomInfo) {
	kept := r.Projectiles[:0]
	for _, b := range r.Projectiles {
		b.X += b.VX
		b.Y += b.VY
		if !world.InCullBounds(b.X, b.Y) {
			continue
		}
		hit := false
		for _, h := range r.Hostiles {
			if !world.CirclesOverlap(b.X, b.Y, b.Radius, h.X, h.Y, h.Radius) {
				continue
			}
			hit = true
			if h.ApplyDamage(b.Damage) {
				s.killHostile(r, h, b.OwnerID)
			} else {
				event.Emit(r.Bus, event.HostileDamaged{
					HostileID: h.ID,
					HP:        h.HP,
					MaxHP:     h.MaxHP,
				})
			}
			break
		}
		if !hit {
			kept = append(kept, b)
		}
	}
	// Zero the tail so consumed projectiles don't linger in the backing array.
	for i := len(kept); i < len(r.Projectiles); i++ {
		r.Projectiles[i] = nil
	}
	r.Projectiles = kept
}

// killHostile removes a dead hostile and credits the shooter. A shooter who
// already left the room forfeits the reward; the kill still counts.
func (s *Simulator) killHostile(r *world.RoomInfo, h *world.HostileInfo, shooterID string) {
	r.RemoveHostile(h.ID)
	reward := s.cfg.Game.KillReward
	if owner := r.Players[shooterID]; owner != nil {
		owner.Cash += reward
	}
	event.Emit(r.Bus, event.HostileKilled{
		HostileID: h.ID,
		ShooterID: shooterID,
		Reward:    reward,
	})
}
