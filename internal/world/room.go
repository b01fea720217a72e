package world

import (
	"math/rand"
	"time"

	"github.com/arenago/server/internal/core/event"
)

// Phase is the room's state-machine position.
type Phase int

const (
	PhaseWaiting Phase = iota // created, wave not seeded yet
	PhaseBuy                  // countdown before the next wave spawns
	PhaseCombat               // hostiles alive
)

func (p Phase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting"
	case PhaseBuy:
		return "buy"
	case PhaseCombat:
		return "combat"
	default:
		return "unknown"
	}
}

// MoveIntent is a queued client-predicted target position. The latest intent
// per player wins within one tick; application is all-or-nothing.
type MoveIntent struct {
	X float64
	Y float64
}

// FireIntent is a queued shot request, validated at tick time against the
// shooter's weapon state.
type FireIntent struct {
	PlayerID string
	Angle    float64
}

// RoomInfo is one isolated game session. All entities, intent queues, and
// the event bus are owned by the room; everything here is mutated only from
// the game loop goroutine; no locks needed (the registry enforces the
// single-owner contract).
type RoomInfo struct {
	Code string

	Players     map[string]*PlayerInfo
	Hostiles    []*HostileInfo
	Projectiles []*ProjectileInfo

	Wave         int
	Phase        Phase
	BuyTicksLeft int

	Bus *event.Bus
	Rng *rand.Rand

	// Simulation bookkeeping, advanced by the simulator.
	Now time.Time     // room-local simulated clock, steps by the fixed dt
	Acc time.Duration // fixed-timestep accumulator

	pendingMoves map[string]MoveIntent
	pendingFires []FireIntent
}

func NewRoom(code string, rng *rand.Rand, now time.Time) *RoomInfo {
	return &RoomInfo{
		Code:         code,
		Players:      make(map[string]*PlayerInfo, 8),
		Bus:          event.NewBus(),
		Rng:          rng,
		Now:          now,
		pendingMoves: make(map[string]MoveIntent, 8),
	}
}

func (r *RoomInfo) AddPlayer(p *PlayerInfo) {
	r.Players[p.ID] = p
}

// RemovePlayer detaches a player and clears any of their queued intents.
// Returns the removed player, or nil if the id was not present.
func (r *RoomInfo) RemovePlayer(id string) *PlayerInfo {
	p, ok := r.Players[id]
	if !ok {
		return nil
	}
	delete(r.Players, id)
	delete(r.pendingMoves, id)
	kept := r.pendingFires[:0]
	for _, f := range r.pendingFires {
		if f.PlayerID != id {
			kept = append(kept, f)
		}
	}
	r.pendingFires = kept
	return p
}

func (r *RoomInfo) Player(id string) *PlayerInfo {
	return r.Players[id]
}

func (r *RoomInfo) Empty() bool {
	return len(r.Players) == 0
}

// FindHostile returns the hostile with the given id, or nil. A miss is a
// benign race (already killed), never an error.
func (r *RoomInfo) FindHostile(id string) *HostileInfo {
	for _, h := range r.Hostiles {
		if h.ID == id {
			return h
		}
	}
	return nil
}

// RemoveHostile deletes a hostile by id, preserving slice order so collision
// scans stay deterministic.
func (r *RoomInfo) RemoveHostile(id string) bool {
	for i, h := range r.Hostiles {
		if h.ID == id {
			r.Hostiles = append(r.Hostiles[:i], r.Hostiles[i+1:]...)
			return true
		}
	}
	return false
}

// QueueMove records a move intent for the next tick. Later intents in the
// same tick replace earlier ones.
func (r *RoomInfo) QueueMove(playerID string, intent MoveIntent) {
	r.pendingMoves[playerID] = intent
}

// QueueFire records a fire intent for the next tick.
func (r *RoomInfo) QueueFire(intent FireIntent) {
	r.pendingFires = append(r.pendingFires, intent)
}

// TakeIntents hands the queued intents to the simulator and resets the
// queues for the next tick.
func (r *RoomInfo) TakeIntents() (map[string]MoveIntent, []FireIntent) {
	moves := r.pendingMoves
	fires := r.pendingFires
	r.pendingMoves = make(map[string]MoveIntent, len(moves))
	r.pendingFires = nil
	return moves, fires
}
