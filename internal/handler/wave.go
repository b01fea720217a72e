package handler

import (
	"encoding/json"
	"fmt"

	"github.com/arenago/server/internal/net"
)

// HandleStartWave cuts the buy countdown short and launches the next wave.
// Any participant may pull the trigger; outside the buy phase it is a no-op.
func HandleStartWave(sess *net.Session, _ json.RawMessage, deps *Deps) {
	room := deps.Rooms.RoomBySession(sess.ID)
	if room == nil {
		return
	}
	if deps.Sim.BeginCombat(room) {
		deps.Log.Info(fmt.Sprintf("提前開波  room=%s  wave=%d  session=%d", room.Code, room.Wave, sess.ID))
	}
}
