package sim

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/arenago/server/internal/core/event"
	"github.com/arenago/server/internal/data"
	"github.com/arenago/server/internal/world"
)

// stepWeapons finishes due reloads for everyone, then applies the tick's
// queued fire intents in arrival order.
func (s *Simulator) stepWeapons(r *world.RoomInfo, fires []world.FireIntent) {
	for _, p := range r.Players {
		s.finishReload(p, r.Now)
	}
	for _, f := range fires {
		p := r.Players[f.PlayerID]
		if p == nil {
			continue
		}
		s.TryFire(r, p, f.Angle)
	}
}

// finishReload refills the equipped magazine once the reload window has
// elapsed.
func (s *Simulator) finishReload(p *world.PlayerInfo, now time.Time) {
	if p.ReloadUntil.IsZero() || now.Before(p.ReloadUntil) {
		return
	}
	if w := s.weapons.Get(p.Weapon); w != nil {
		p.Ammo[p.Weapon] = w.MagazineSize
	}
	p.ReloadUntil = time.Time{}
}

func (s *Simulator) beginReload(p *world.PlayerInfo, w *data.WeaponTemplate, now time.Time) {
	p.ReloadUntil = now.Add(time.Duration(w.ReloadMs) * time.Millisecond)
}

// TryFire validates a shot against the shooter's weapon state at the room
// clock and, if legal, spawns a projectile at the shooter's position along
// the given angle. A dry trigger pull starts the reload instead of firing.
// Every rejection is silent; the client's predicted shot simply never
// materializes in a snapshot.
func (s *Simulator) TryFire(r *world.RoomInfo, p *world.PlayerInfo, angle float64) {
	if p.Dead {
		return
	}
	w := s.weapons.Get(p.Weapon)
	if w == nil {
		return
	}
	now := r.Now
	s.finishReload(p, now)
	if p.Reloading(now) {
		return
	}
	cooldown := time.Duration(w.FireRateMs) * time.Millisecond
	if !p.LastShotAt.IsZero() && now.Sub(p.LastShotAt) < cooldown {
		return
	}
	if p.Ammo[p.Weapon] <= 0 {
		s.beginReload(p, w, now)
		return
	}
	p.Ammo[p.Weapon]--
	p.LastShotAt = now

	b := &world.ProjectileInfo{
		ID:      uuid.NewString(),
		X:       p.X,
		Y:       p.Y,
		VX:      math.Cos(angle) * ProjectileSpeed,
		VY:      math.Sin(angle) * ProjectileSpeed,
		Radius:  ProjectileRadius,
		Damage:  w.Damage,
		OwnerID: p.ID,
	}
	r.Projectiles = append(r.Projectiles, b)
	event.Emit(r.Bus, event.ProjectileFired{Projectile: b.Snap()})
}

// SwitchWeapon equips a weapon, buying it first if the player has never
// owned it. Purchase deducts the cost exactly once; re-equipping an owned
// weapon is always free. Insufficient cash rejects the switch outright and
// the equipped weapon stays. Switching cancels any reload in progress.
func (s *Simulator) SwitchWeapon(r *world.RoomInfo, p *world.PlayerInfo, weaponID string) bool {
	if p.Dead || p.Weapon == weaponID {
		return false
	}
	w := s.weapons.Get(weaponID)
	if w == nil {
		return false
	}
	if !p.Owned[weaponID] {
		if w.Cost > p.Cash {
			return false
		}
		p.Cash -= w.Cost
		p.Owned[weaponID] = true
		p.Ammo[weaponID] = w.MagazineSize
	}
	p.Weapon = weaponID
	p.ReloadUntil = time.Time{}
	event.Emit(r.Bus, event.WeaponChanged{
		PlayerID: p.ID,
		Weapon:   weaponID,
		Cash:     p.Cash,
	})
	return true
}
