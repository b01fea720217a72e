package handler

import (
	"encoding/json"
	"fmt"

	"github.com/arenago/server/internal/core/event"
	"github.com/arenago/server/internal/net"
)

// HandleLeave processes an explicit leave. Room cleanup is shared with the
// socket-drop path; the only difference is we close the session afterwards.
func HandleLeave(sess *net.Session, _ json.RawMessage, deps *Deps) {
	RemoveFromRoom(sess.ID, deps)
	deps.Log.Info(fmt.Sprintf("玩家離開  session=%d  room=%s", sess.ID, sess.RoomCode))
	sess.Close()
}

// RemoveFromRoom detaches a session's player from its room, announces the
// departure, and destroys the room if it emptied. Called for both explicit
// leave and socket drop; safe to call for sessions that never joined.
func RemoveFromRoom(sessionID uint64, deps *Deps) {
	p, room := deps.Rooms.Detach(sessionID)
	if p == nil || room == nil {
		return
	}
	event.Emit(room.Bus, event.PlayerLeft{PlayerID: p.ID})
	room.Bus.Dispatch()
	deps.Rooms.DestroyIfEmpty(room.Code)
}
