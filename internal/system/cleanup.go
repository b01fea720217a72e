package system

import (
	"time"

	coresys "github.com/arenago/server/internal/core/system"
	"github.com/arenago/server/internal/world"
)

// CleanupSystem destroys rooms that emptied during the tick. Phase 4
// (Cleanup). Leave and disconnect already destroy eagerly; this is the
// backstop that also covers rooms emptied by any future path.
type CleanupSystem struct {
	rooms *world.State
}

func NewCleanupSystem(rooms *world.State) *CleanupSystem {
	return &CleanupSystem{rooms: rooms}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	for _, code := range s.rooms.RoomCodes() {
		s.rooms.DestroyIfEmpty(code)
	}
}
