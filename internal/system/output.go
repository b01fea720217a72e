package system

import (
	"time"

	coresys "github.com/arenago/server/internal/core/system"
	"github.com/arenago/server/internal/net"
)

// OutputSystem flushes every session's buffered frames to its writer
// goroutine at the end of the tick. Phase 3 (Flush).
type OutputSystem struct {
	store *net.SessionStore
}

func NewOutputSystem(store *net.SessionStore) *OutputSystem {
	return &OutputSystem{store: store}
}

func (s *OutputSystem) Phase() coresys.Phase { return coresys.PhaseFlush }

func (s *OutputSystem) Update(_ time.Duration) {
	s.store.ForEach(func(sess *net.Session) {
		sess.FlushOutput()
	})
}
