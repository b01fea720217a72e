package handler

import (
	"encoding/json"
	"math"

	"github.com/arenago/server/internal/net"
	"github.com/arenago/server/internal/world"
)

// HandleMove queues a client-predicted position for the next tick. The
// simulator validates the displacement against the speed cap; here we only
// reject values that are not finite numbers at all. Later intents in the
// same tick replace earlier ones.
func HandleMove(sess *net.Session, data json.RawMessage, deps *Deps) {
	var req struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return
	}
	if !finite(req.X) || !finite(req.Y) {
		return
	}

	room := deps.Rooms.RoomBySession(sess.ID)
	p := deps.Rooms.BySession(sess.ID)
	if room == nil || p == nil {
		return
	}
	room.QueueMove(p.ID, world.MoveIntent{X: req.X, Y: req.Y})
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
