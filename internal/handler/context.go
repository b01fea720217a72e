package handler

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/arenago/server/internal/config"
	"github.com/arenago/server/internal/data"
	"github.com/arenago/server/internal/net"
	"github.com/arenago/server/internal/net/proto"
	"github.com/arenago/server/internal/sim"
	"github.com/arenago/server/internal/world"
)

// Deps holds shared dependencies injected into all message handlers.
type Deps struct {
	Config   *config.Config
	Log      *zap.Logger
	Rooms    *world.State
	Weapons  *data.WeaponTable
	Hostiles *data.HostileTable
	Sim      *sim.Simulator
}

// RegisterAll registers all message handlers into the registry.
func RegisterAll(reg *proto.Registry, deps *Deps) {
	reg.Register(proto.MsgJoin,
		[]proto.SessionState{proto.StateConnected},
		func(sess any, data json.RawMessage) {
			HandleJoin(sess.(*net.Session), data, deps)
		},
	)

	inRoom := []proto.SessionState{proto.StateInRoom}

	reg.Register(proto.MsgMove, inRoom,
		func(sess any, data json.RawMessage) {
			HandleMove(sess.(*net.Session), data, deps)
		},
	)
	reg.Register(proto.MsgFire, inRoom,
		func(sess any, data json.RawMessage) {
			HandleFire(sess.(*net.Session), data, deps)
		},
	)
	reg.Register(proto.MsgWeaponSwitch, inRoom,
		func(sess any, data json.RawMessage) {
			HandleWeaponSwitch(sess.(*net.Session), data, deps)
		},
	)
	reg.Register(proto.MsgStartWave, inRoom,
		func(sess any, data json.RawMessage) {
			HandleStartWave(sess.(*net.Session), data, deps)
		},
	)
	reg.Register(proto.MsgLeave,
		[]proto.SessionState{proto.StateConnected, proto.StateInRoom},
		func(sess any, data json.RawMessage) {
			HandleLeave(sess.(*net.Session), data, deps)
		},
	)
}
