package sim

import (
	"github.com/arenago/server/internal/core/event"
	"github.com/arenago/server/internal/world"
)

// stepHostiles steers every hostile toward the nearest living player at its
// per-wave speed. With no living target a hostile idles in place.
func (s *Simulator) stepHostiles(r *world.RoomInfo) {
	for _, h := range r.Hostiles {
		target := nearestAlive(r, h.X, h.Y)
		if target == nil {
			continue
		}
		ux, uy := world.Normalize(target.X-h.X, target.Y-h.Y)
		h.X += ux * h.Speed
		h.Y += uy * h.Speed
	}
}

// stepContacts applies hostile touch damage. Each overlapping pair is
// visited exactly once per tick, so a player loses at most one bite per
// hostile per tick regardless of how long the overlap persists.
func (s *Simulator) stepContacts(r *world.RoomInfo) {
	practice := s.localAuthority()
	for _, h := range r.Hostiles {
		for _, p := range r.Players {
			if p.Dead {
				continue
			}
			if !world.CirclesOverlap(h.X, h.Y, h.Radius, p.X, p.Y, p.Radius) {
				continue
			}
			died := p.ApplyDamage(h.Damage)
			event.Emit(r.Bus, event.PlayerDamaged{PlayerID: p.ID, HP: p.HP})
			if died {
				event.Emit(r.Bus, event.PlayerDied{PlayerID: p.ID})
				if practice {
					// Practice mode resets in place instead of leaving a corpse.
					p.Respawn(s.cfg.Game.WorldWidth/2, s.cfg.Game.WorldHeight/2)
				}
			}
		}
	}
}

func nearestAlive(r *world.RoomInfo, x, y float64) *world.PlayerInfo {
	var best *world.PlayerInfo
	bestDist := 0.0
	for _, p := range r.Players {
		if p.Dead {
			continue
		}
		d := world.Dist(x, y, p.X, p.Y)
		if best == nil || d < bestDist {
			best = p
			bestDist = d
		}
	}
	return best
}
