package world

import (
	"time"

	gonet "github.com/arenago/server/internal/net"
	"github.com/arenago/server/internal/net/proto"
)

// PlayerInfo holds in-memory data for a participant currently in a room.
// Accessed only from the game loop goroutine; no locks needed.
type PlayerInfo struct {
	ID          string // opaque participant id (uuid)
	SessionID   uint64
	Session     *gonet.Session // nil in headless tests
	Name        string
	Color       string
	BorderColor string

	X      float64
	Y      float64
	Radius float64
	Speed  float64 // max displacement per tick per axis

	HP    int
	MaxHP int
	Cash  int
	Dead  bool // multiplayer death leaves the entity until leave/respawn

	Weapon      string          // equipped weapon id
	Ammo        map[string]int  // rounds left in each owned weapon's magazine
	Owned       map[string]bool // weapons already paid for
	LastShotAt  time.Time       // zero value = never fired
	ReloadUntil time.Time       // zero value = not reloading
}

// ApplyDamage subtracts health, clamping at zero, and reports whether this
// hit was lethal. A dead player takes no further damage.
func (p *PlayerInfo) ApplyDamage(dmg int) (died bool) {
	if p.Dead || dmg <= 0 {
		return false
	}
	p.HP -= dmg
	if p.HP <= 0 {
		p.HP = 0
		p.Dead = true
		return true
	}
	return false
}

// Respawn restores the player at the given position with full health.
func (p *PlayerInfo) Respawn(x, y float64) {
	p.X = x
	p.Y = y
	p.HP = p.MaxHP
	p.Dead = false
}

// Reloading reports whether a reload is still in progress at the given time.
func (p *PlayerInfo) Reloading(now time.Time) bool {
	return !p.ReloadUntil.IsZero() && now.Before(p.ReloadUntil)
}

// Snap converts the player to its wire form.
func (p *PlayerInfo) Snap() proto.PlayerSnap {
	return proto.PlayerSnap{
		ID:          p.ID,
		Name:        p.Name,
		Color:       p.Color,
		BorderColor: p.BorderColor,
		X:           p.X,
		Y:           p.Y,
		Radius:      p.Radius,
		HP:          p.HP,
		MaxHP:       p.MaxHP,
		Cash:        p.Cash,
		Weapon:      p.Weapon,
		Dead:        p.Dead,
	}
}
