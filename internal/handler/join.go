package handler

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/arenago/server/internal/core/event"
	"github.com/arenago/server/internal/net"
	"github.com/arenago/server/internal/net/proto"
)

const maxNameLen = 24

// HandleJoin admits a session into a room. An empty or unknown code creates
// a fresh room (and seeds its first wave); a known code joins the running
// game in progress. The welcome reply carries the assigned participant id
// plus an immediate full snapshot, so the client renders without waiting for
// the broadcast cadence.
func HandleJoin(sess *net.Session, data json.RawMessage, deps *Deps) {
	var req proto.JoinData
	if err := json.Unmarshal(data, &req); err != nil {
		deps.Log.Debug("join 資料格式錯誤")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = fmt.Sprintf("player-%d", sess.ID)
	}
	if len(name) > maxNameLen {
		name = name[:maxNameLen]
	}

	room, created := deps.Rooms.GetOrCreate(strings.ToUpper(strings.TrimSpace(req.Room)), time.Now())
	if created {
		BindRoom(room, deps)
		deps.Sim.SeedRoom(room)
	}

	p := deps.Sim.NewPlayer(name, len(room.Players))
	p.SessionID = sess.ID
	p.Session = sess
	deps.Rooms.Attach(sess.ID, room, p)

	sess.PlayerID = p.ID
	sess.RoomCode = room.Code
	sess.SetState(proto.StateInRoom)

	welcome, err := proto.Encode(proto.MsgWelcome, proto.WelcomeData{
		PlayerID: p.ID,
		Room:     room.Code,
		Snapshot: BuildSnapshot(room),
	})
	if err != nil {
		deps.Log.Error("welcome 編碼失敗")
		return
	}
	sess.Send(welcome)

	event.Emit(room.Bus, event.PlayerJoined{Player: p.Snap()})
	deps.Log.Info(fmt.Sprintf("玩家加入房間  session=%d  room=%s  name=%s", sess.ID, room.Code, name))
}
