package sim

import (
	"math"

	"go.uber.org/zap"

	"github.com/arenago/server/internal/world"
)

// applyMoves applies the tick's queued move intents. Under remote authority
// the candidate position must lie within the speed-derived displacement cap
// of the current one; a violating intent is rejected wholesale, never
// partially applied. Players free-roam: positions are not clamped to the
// world rectangle.
func (s *Simulator) applyMoves(r *world.RoomInfo, moves map[string]world.MoveIntent) {
	trusted := s.localAuthority()
	for playerID, intent := range moves {
		p := r.Players[playerID]
		if p == nil || p.Dead {
			continue
		}
		if !trusted {
			if world.Dist(p.X, p.Y, intent.X, intent.Y) > moveCap(p.Speed) {
				s.log.Debug("移動距離超出上限，拒絕", zap.String("player", playerID))
				continue
			}
		}
		p.X = intent.X
		p.Y = intent.Y
	}
}

// moveCap is the largest legal per-tick displacement: full speed on both
// axes at once (diagonal), plus float slack.
func moveCap(speed float64) float64 {
	return speed*math.Sqrt2 + 1e-9
}
