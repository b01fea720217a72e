package handler

import (
	"encoding/json"

	"github.com/arenago/server/internal/net"
	"github.com/arenago/server/internal/net/proto"
	"github.com/arenago/server/internal/world"
)

// HandleFire queues a shot for the next tick. The claimed weapon id is
// ignored; the simulator fires whatever the server says is equipped, so a
// client cannot shoot a weapon it never bought.
func HandleFire(sess *net.Session, data json.RawMessage, deps *Deps) {
	var req proto.FireData
	if err := json.Unmarshal(data, &req); err != nil {
		return
	}
	if !finite(req.Angle) {
		return
	}

	room := deps.Rooms.RoomBySession(sess.ID)
	p := deps.Rooms.BySession(sess.ID)
	if room == nil || p == nil || p.Dead {
		return
	}
	room.QueueFire(world.FireIntent{PlayerID: p.ID, Angle: req.Angle})
}
