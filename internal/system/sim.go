package system

import (
	"time"

	coresys "github.com/arenago/server/internal/core/system"
	"github.com/arenago/server/internal/sim"
	"github.com/arenago/server/internal/world"
)

// SimSystem advances every room's fixed-step simulation by the frame's real
// elapsed time and dispatches each room's event bus right after, so delta
// events reach session buffers the same tick they occur. Phase 1 (Update).
type SimSystem struct {
	rooms *world.State
	sim   *sim.Simulator
}

func NewSimSystem(rooms *world.State, simulator *sim.Simulator) *SimSystem {
	return &SimSystem{rooms: rooms, sim: simulator}
}

func (s *SimSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *SimSystem) Update(dt time.Duration) {
	s.rooms.ForEachRoom(func(r *world.RoomInfo) {
		s.sim.Advance(r, dt)
		r.Bus.Dispatch()
	})
}
