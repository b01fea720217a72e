package system

import (
	"time"

	coresys "github.com/arenago/server/internal/core/system"
	"github.com/arenago/server/internal/handler"
	"github.com/arenago/server/internal/world"
)

// SnapshotSystem broadcasts the full room snapshot on its own cadence,
// slower than the tick rate. Delta events cover the ticks in between; the
// periodic snapshot is the ground truth clients reconcile against.
// Phase 2 (Output).
type SnapshotSystem struct {
	rooms    *world.State
	deps     *handler.Deps
	interval time.Duration
	acc      time.Duration
}

func NewSnapshotSystem(rooms *world.State, deps *handler.Deps, interval time.Duration) *SnapshotSystem {
	return &SnapshotSystem{rooms: rooms, deps: deps, interval: interval}
}

func (s *SnapshotSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *SnapshotSystem) Update(dt time.Duration) {
	s.acc += dt
	if s.acc < s.interval {
		return
	}
	s.acc = 0
	s.rooms.ForEachRoom(func(r *world.RoomInfo) {
		handler.SendSnapshot(r, s.deps)
	})
}
