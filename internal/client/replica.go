// Package client keeps a predicted replica of a room for headless clients.
// It mirrors the reconciliation rules a rendering client follows: predict
// your own movement locally, accept the server's word for everyone else,
// and interpolate hostiles between snapshots instead of teleporting them.
package client

import (
	"math"

	"github.com/arenago/server/internal/net/proto"
)

const (
	// ReconcileThreshold is the prediction error, in world units, beyond
	// which the replica abandons its predicted position and snaps exactly to
	// the authoritative one. Divergence at or below it is tolerated.
	ReconcileThreshold = 10.0

	// LerpFactor is the per-frame fraction a hostile closes toward its
	// latest authoritative position.
	LerpFactor = 0.3
)

// Hostile is a replicated hostile with its interpolation target. X/Y are the
// displayed position; TargetX/TargetY is where the last snapshot put it.
type Hostile struct {
	proto.HostileSnap
	TargetX float64
	TargetY float64
}

// Replica is a client-side mirror of one room. Not safe for concurrent use;
// callers own the read loop that feeds it.
type Replica struct {
	SelfID string

	Players     map[string]*proto.PlayerSnap
	Hostiles    map[string]*Hostile
	Projectiles map[string]*proto.ProjectileSnap

	Wave  int
	Phase string

	credited map[string]bool // hostile ids whose kill reward was already applied
}

func NewReplica(selfID string) *Replica {
	return &Replica{
		SelfID:      selfID,
		Players:     make(map[string]*proto.PlayerSnap, 8),
		Hostiles:    make(map[string]*Hostile, 32),
		Projectiles: make(map[string]*proto.ProjectileSnap, 32),
		credited:    make(map[string]bool, 32),
	}
}

// Self returns the replica's own player, or nil before the first snapshot.
func (r *Replica) Self() *proto.PlayerSnap {
	return r.Players[r.SelfID]
}

// PredictMove displaces the replica's own player by one tick of movement
// along (dx, dy) and returns the predicted position to send as a move
// intent. The direction is normalized so diagonals are no faster per axis.
func (r *Replica) PredictMove(dx, dy, speed float64) (x, y float64, ok bool) {
	self := r.Self()
	if self == nil || self.Dead {
		return 0, 0, false
	}
	n := math.Hypot(dx, dy)
	if n == 0 {
		return self.X, self.Y, true
	}
	self.X += dx / n * speed
	self.Y += dy / n * speed
	return self.X, self.Y, true
}

// ApplySnapshot reconciles the replica with an authoritative snapshot.
// The own player's predicted position survives unless it diverged past
// ReconcileThreshold, in which case it snaps exactly to the server's value.
// Every other field, and every other entity, is overwritten wholesale.
// Entities absent from the snapshot are removed.
func (r *Replica) ApplySnapshot(snap proto.SnapshotData) {
	r.Wave = snap.Wave
	r.Phase = snap.Phase

	seenPlayers := make(map[string]bool, len(snap.Players))
	for _, ps := range snap.Players {
		seenPlayers[ps.ID] = true
		if ps.ID == r.SelfID {
			if prev := r.Players[ps.ID]; prev != nil {
				if dist(prev.X, prev.Y, ps.X, ps.Y) <= ReconcileThreshold {
					ps.X, ps.Y = prev.X, prev.Y
				}
			}
		}
		p := ps
		r.Players[ps.ID] = &p
	}
	for id := range r.Players {
		if !seenPlayers[id] {
			delete(r.Players, id)
		}
	}

	seenHostiles := make(map[string]bool, len(snap.Hostiles))
	for _, hs := range snap.Hostiles {
		seenHostiles[hs.ID] = true
		if h := r.Hostiles[hs.ID]; h != nil {
			// Keep the displayed position; Interpolate chases the new target.
			x, y := h.X, h.Y
			h.HostileSnap = hs
			h.X, h.Y = x, y
			h.TargetX, h.TargetY = hs.X, hs.Y
			continue
		}
		r.Hostiles[hs.ID] = &Hostile{HostileSnap: hs, TargetX: hs.X, TargetY: hs.Y}
	}
	for id := range r.Hostiles {
		if !seenHostiles[id] {
			delete(r.Hostiles, id)
		}
	}

	seenProjectiles := make(map[string]bool, len(snap.Projectiles))
	for _, bs := range snap.Projectiles {
		seenProjectiles[bs.ID] = true
		b := bs
		r.Projectiles[bs.ID] = &b
	}
	for id := range r.Projectiles {
		if !seenProjectiles[id] {
			delete(r.Projectiles, id)
		}
	}
}

// Interpolate advances every hostile one display frame toward its snapshot
// target.
func (r *Replica) Interpolate() {
	for _, h := range r.Hostiles {
		h.X += (h.TargetX - h.X) * LerpFactor
		h.Y += (h.TargetY - h.Y) * LerpFactor
	}
}

// ApplyPlayerJoined adds a newly announced participant.
func (r *Replica) ApplyPlayerJoined(d proto.PlayerJoinedData) {
	p := d.Player
	r.Players[p.ID] = &p
}

func (r *Replica) ApplyPlayerLeft(d proto.PlayerLeftData) {
	delete(r.Players, d.ID)
}

func (r *Replica) ApplyProjectileFired(d proto.ProjectileFiredData) {
	b := d.Projectile
	r.Projectiles[b.ID] = &b
}

func (r *Replica) ApplyHostileDamaged(d proto.HostileDamagedData) {
	if h := r.Hostiles[d.ID]; h != nil {
		h.HP = d.HP
		h.MaxHP = d.MaxHP
	}
}

// ApplyHostileKilled removes a hostile and credits the reward if the replica
// owns the killing shot. Idempotent: the same kill id applied twice, or
// arriving after a snapshot already dropped the hostile, credits once and
// changes nothing further.
func (r *Replica) ApplyHostileKilled(d proto.HostileKilledData) {
	if r.credited[d.ID] {
		return
	}
	r.credited[d.ID] = true
	delete(r.Hostiles, d.ID)
	if d.ShooterID == r.SelfID {
		if self := r.Self(); self != nil {
			self.Cash += d.Reward
		}
	}
}

func (r *Replica) ApplyPlayerDamaged(d proto.PlayerDamagedData) {
	if p := r.Players[d.ID]; p != nil {
		p.HP = d.HP
	}
}

func (r *Replica) ApplyPlayerDied(d proto.PlayerDiedData) {
	if p := r.Players[d.ID]; p != nil {
		p.HP = 0
		p.Dead = true
	}
}

func (r *Replica) ApplyWeaponChanged(d proto.WeaponChangedData) {
	if p := r.Players[d.ID]; p != nil {
		p.Weapon = d.Weapon
		p.Cash = d.Cash
	}
}

// ApplyWaveAdvanced installs the new wave's hostiles at their spawn points.
func (r *Replica) ApplyWaveAdvanced(d proto.WaveAdvancedData) {
	r.Wave = d.Wave
	r.Phase = "combat"
	for _, hs := range d.Hostiles {
		r.Hostiles[hs.ID] = &Hostile{HostileSnap: hs, TargetX: hs.X, TargetY: hs.Y}
	}
}

func dist(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}
