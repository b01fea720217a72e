package handler

import (
	"github.com/arenago/server/internal/core/event"
	"github.com/arenago/server/internal/net/proto"
	"github.com/arenago/server/internal/sim"
	"github.com/arenago/server/internal/world"
)

// BindRoom subscribes the room's event bus to the wire: each delta event is
// encoded once and fanned out to every participant the tick it is
// dispatched. Called exactly once, when the room is created.
func BindRoom(room *world.RoomInfo, deps *Deps) {
	event.Subscribe(room.Bus, func(ev event.PlayerJoined) {
		broadcast(room, deps, proto.MsgPlayerJoined, proto.PlayerJoinedData{Player: ev.Player})
	})
	event.Subscribe(room.Bus, func(ev event.PlayerLeft) {
		broadcast(room, deps, proto.MsgPlayerLeft, proto.PlayerLeftData{ID: ev.PlayerID})
	})
	event.Subscribe(room.Bus, func(ev event.ProjectileFired) {
		broadcast(room, deps, proto.MsgProjectileFired, proto.ProjectileFiredData{Projectile: ev.Projectile})
	})
	event.Subscribe(room.Bus, func(ev event.HostileDamaged) {
		broadcast(room, deps, proto.MsgHostileDamaged, proto.HostileDamagedData{
			ID:    ev.HostileID,
			HP:    ev.HP,
			MaxHP: ev.MaxHP,
		})
	})
	event.Subscribe(room.Bus, func(ev event.HostileKilled) {
		broadcast(room, deps, proto.MsgHostileKilled, proto.HostileKilledData{
			ID:        ev.HostileID,
			ShooterID: ev.ShooterID,
			Reward:    ev.Reward,
		})
	})
	event.Subscribe(room.Bus, func(ev event.PlayerDamaged) {
		broadcast(room, deps, proto.MsgPlayerDamaged, proto.PlayerDamagedData{ID: ev.PlayerID, HP: ev.HP})
	})
	event.Subscribe(room.Bus, func(ev event.PlayerDied) {
		broadcast(room, deps, proto.MsgPlayerDied, proto.PlayerDiedData{ID: ev.PlayerID})
	})
	event.Subscribe(room.Bus, func(ev event.WeaponChanged) {
		broadcast(room, deps, proto.MsgWeaponChanged, proto.WeaponChangedData{
			ID:     ev.PlayerID,
			Weapon: ev.Weapon,
			Cash:   ev.Cash,
		})
	})
	event.Subscribe(room.Bus, func(ev event.WaveAdvanced) {
		broadcast(room, deps, proto.MsgWaveAdvanced, proto.WaveAdvancedData{
			Wave:     ev.Wave,
			Hostiles: ev.Hostiles,
		})
	})
}

// broadcast encodes once and buffers the frame to every live participant.
func broadcast(room *world.RoomInfo, deps *Deps, msgType string, payload any) {
	frame, err := proto.Encode(msgType, payload)
	if err != nil {
		deps.Log.Error("事件編碼失敗")
		return
	}
	for _, p := range room.Players {
		if p.Session != nil {
			p.Session.Send(frame)
		}
	}
}

// BuildSnapshot captures the room's full authoritative state in wire form.
func BuildSnapshot(room *world.RoomInfo) proto.SnapshotData {
	snap := proto.SnapshotData{
		Players:     make([]proto.PlayerSnap, 0, len(room.Players)),
		Hostiles:    make([]proto.HostileSnap, 0, len(room.Hostiles)),
		Projectiles: make([]proto.ProjectileSnap, 0, len(room.Projectiles)),
		Wave:        room.Wave,
		Phase:       room.Phase.String(),
	}
	for _, p := range room.Players {
		snap.Players = append(snap.Players, p.Snap())
	}
	for _, h := range room.Hostiles {
		snap.Hostiles = append(snap.Hostiles, h.Snap())
	}
	for _, b := range room.Projectiles {
		snap.Projectiles = append(snap.Projectiles, b.Snap())
	}
	if room.Phase == world.PhaseBuy {
		snap.BuySecsLeft = float64(room.BuyTicksLeft) / float64(sim.TicksPerSecond)
	}
	return snap
}

// SendSnapshot broadcasts the periodic full snapshot to everyone in the room.
func SendSnapshot(room *world.RoomInfo, deps *Deps) {
	frame, err := proto.Encode(proto.MsgSnapshot, BuildSnapshot(room))
	if err != nil {
		deps.Log.Error("快照編碼失敗")
		return
	}
	for _, p := range room.Players {
		if p.Session != nil {
			p.Session.Send(frame)
		}
	}
}
