package system

import (
	"time"

	"go.uber.org/zap"

	coresys "github.com/arenago/server/internal/core/system"
	"github.com/arenago/server/internal/handler"
	"github.com/arenago/server/internal/net"
	"github.com/arenago/server/internal/net/proto"
)

// InputSystem adopts new sessions, reaps dead ones, and drains each live
// session's inbound queue through the message registry. Phase 0 (Input).
type InputSystem struct {
	netServer  *net.Server
	registry   *proto.Registry
	store      *net.SessionStore
	deps       *handler.Deps
	maxPerTick int
	log        *zap.Logger
}

func NewInputSystem(netServer *net.Server, registry *proto.Registry, store *net.SessionStore, deps *handler.Deps, maxPerTick int, log *zap.Logger) *InputSystem {
	return &InputSystem{
		netServer:  netServer,
		registry:   registry,
		store:      store,
		deps:       deps,
		maxPerTick: maxPerTick,
		log:        log,
	}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(_ time.Duration) {
	// Accept new sessions
	for {
		select {
		case sess := <-s.netServer.NewSessions():
			s.store.Add(sess)
		default:
			goto doneNew
		}
	}
doneNew:

	// Reap sessions the net layer already reported dead
	for {
		select {
		case id := <-s.netServer.DeadSessions():
			s.store.Remove(id)
		default:
			goto doneDead
		}
	}
doneDead:

	// Drain messages from each session (up to maxPerTick per session)
	for id, sess := range s.store.Raw() {
		if sess.IsClosed() {
			// Drain what the client managed to send before the socket died;
			// a leave sent just before disconnect should still be honored.
			for i := 0; i < s.maxPerTick; i++ {
				select {
				case frame := <-sess.InQueue:
					if err := s.registry.Dispatch(sess, sess.State(), frame); err != nil {
						s.log.Debug("訊息分派錯誤 (斷線中)",
							zap.Uint64("session", sess.ID),
							zap.Error(err),
						)
					}
				default:
					goto doneClosing
				}
			}
		doneClosing:
			s.handleDisconnect(sess)
			s.netServer.NotifyDead(id)
			s.store.Remove(id)
			continue
		}

	drain:
		for i := 0; i < s.maxPerTick; i++ {
			select {
			case frame := <-sess.InQueue:
				if err := s.registry.Dispatch(sess, sess.State(), frame); err != nil {
					s.log.Debug("訊息分派錯誤",
						zap.Uint64("session", sess.ID),
						zap.Error(err),
					)
				}
			default:
				break drain
			}
		}
	}
}

// handleDisconnect removes a dropped session's player from its room and
// announces the departure. Explicit leave goes through the same path via
// handler.RemoveFromRoom; here we just never got the message first.
func (s *InputSystem) handleDisconnect(sess *net.Session) {
	handler.RemoveFromRoom(sess.ID, s.deps)
	if sess.PlayerID != "" {
		s.log.Info("玩家斷線",
			zap.Uint64("session", sess.ID),
			zap.String("room", sess.RoomCode),
		)
	}
}

// SessionCount returns the current number of active sessions.
func (s *InputSystem) SessionCount() int {
	return s.store.Count()
}
