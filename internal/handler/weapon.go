package handler

import (
	"encoding/json"
	"fmt"

	"github.com/arenago/server/internal/net"
	"github.com/arenago/server/internal/net/proto"
)

// HandleWeaponSwitch equips (buying if needed) the requested weapon.
// Runs immediately rather than queueing: purchases touch only the player's
// own wallet and loadout, never another entity, so applying mid-tick cannot
// race the simulation.
func HandleWeaponSwitch(sess *net.Session, data json.RawMessage, deps *Deps) {
	var req proto.WeaponSwitchData
	if err := json.Unmarshal(data, &req); err != nil {
		return
	}

	room := deps.Rooms.RoomBySession(sess.ID)
	p := deps.Rooms.BySession(sess.ID)
	if room == nil || p == nil {
		return
	}
	if deps.Sim.SwitchWeapon(room, p, req.Weapon) {
		deps.Log.Debug(fmt.Sprintf("武器切換  player=%s  weapon=%s  cash=%d", p.ID, p.Weapon, p.Cash))
	}
}
