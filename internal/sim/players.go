package sim

import (
	"github.com/google/uuid"

	"github.com/arenago/server/internal/world"
)

// NewPlayer builds a fresh participant at the world center with the default
// loadout. occupants is the room's population before this join; it picks the
// palette slot.
func (s *Simulator) NewPlayer(name string, occupants int) *world.PlayerInfo {
	color, border := world.PlayerColor(occupants)
	weaponID := s.weapons.DefaultID()

	p := &world.PlayerInfo{
		ID:          uuid.NewString(),
		Name:        name,
		Color:       color,
		BorderColor: border,
		X:           s.cfg.Game.WorldWidth / 2,
		Y:           s.cfg.Game.WorldHeight / 2,
		Radius:      PlayerRadius,
		Speed:       PlayerSpeed,
		HP:          PlayerMaxHP,
		MaxHP:       PlayerMaxHP,
		Cash:        s.cfg.Game.StartCash,
		Weapon:      weaponID,
		Ammo:        make(map[string]int, 4),
		Owned:       make(map[string]bool, 4),
	}
	if w := s.weapons.Get(weaponID); w != nil {
		p.Ammo[weaponID] = w.MagazineSize
	}
	p.Owned[weaponID] = true
	return p
}
