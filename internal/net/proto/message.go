package proto

import (
	"encoding/json"
	"fmt"
)

// SessionState represents the session's current protocol phase.
type SessionState int

const (
	StateConnected     SessionState = iota // websocket open, not yet in a room
	StateInRoom                            // joined a room, playing
	StateDisconnecting
)

func (s SessionState) String() string {
	switch s {
	case StateConnected:
		return "Connected"
	case StateInRoom:
		return "InRoom"
	case StateDisconnecting:
		return "Disconnecting"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// Client → server message types.
const (
	MsgJoin         = "join"
	MsgMove         = "move"
	MsgFire         = "fire"
	MsgWeaponSwitch = "weapon-switch"
	MsgStartWave    = "start-wave"
	MsgLeave        = "leave"
)

// Server → client message types.
const (
	MsgWelcome         = "welcome"
	MsgSnapshot        = "snapshot"
	MsgPlayerJoined    = "player-joined"
	MsgPlayerLeft      = "player-left"
	MsgProjectileFired = "projectile-fired"
	MsgHostileDamaged  = "hostile-damaged"
	MsgHostileKilled   = "hostile-killed"
	MsgPlayerDamaged   = "player-damaged"
	MsgPlayerDied      = "player-died"
	MsgWeaponChanged   = "weapon-changed"
	MsgWaveAdvanced    = "wave-advanced"
)

// Envelope is the wire frame for every message in both directions.
// The payload stays raw until the registry routes it to a typed decoder, so
// malformed data is rejected at the boundary and never reaches game logic.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Encode wraps a typed payload into an envelope frame.
func Encode(msgType string, payload any) ([]byte, error) {
	var raw json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal %s payload: %w", msgType, err)
		}
		raw = b
	}
	return json.Marshal(Envelope{Type: msgType, Data: raw})
}

// ── Client payloads ────────────────────────────────────────────────

type JoinData struct {
	Room string `json:"room"`
	Name string `json:"name"`
}

// MoveData carries the client-predicted target position for the next tick.
type MoveData struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type FireData struct {
	Weapon string  `json:"weapon"`
	Angle  float64 `json:"angle"` // radians, from the shooter's position
}

type WeaponSwitchData struct {
	Weapon string `json:"weapon"`
}

// ── Server payloads ────────────────────────────────────────────────

type PlayerSnap struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Color       string  `json:"color"`
	BorderColor string  `json:"borderColor"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Radius      float64 `json:"radius"`
	HP          int     `json:"health"`
	MaxHP       int     `json:"maxHealth"`
	Cash        int     `json:"cash"`
	Weapon      string  `json:"weapon"`
	Dead        bool    `json:"dead,omitempty"`
}

type HostileSnap struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	HP     int     `json:"health"`
	MaxHP  int     `json:"maxHealth"`
}

type ProjectileSnap struct {
	ID      string  `json:"id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	VX      float64 `json:"vx"`
	VY      float64 `json:"vy"`
	OwnerID string  `json:"ownerId"`
}

// WelcomeData is the first message after a successful join: the assigned
// participant identity plus an immediate full snapshot so the client can
// render before the periodic broadcast catches up.
type WelcomeData struct {
	PlayerID string       `json:"playerId"`
	Room     string       `json:"room"`
	Snapshot SnapshotData `json:"snapshot"`
}

type SnapshotData struct {
	Players     []PlayerSnap     `json:"players"`
	Hostiles    []HostileSnap    `json:"hostiles"`
	Projectiles []ProjectileSnap `json:"projectiles"`
	Wave        int              `json:"wave"`
	Phase       string           `json:"phase"`
	BuySecsLeft float64          `json:"buySecsLeft,omitempty"`
}

type PlayerJoinedData struct {
	Player PlayerSnap `json:"player"`
}

type PlayerLeftData struct {
	ID string `json:"id"`
}

type ProjectileFiredData struct {
	Projectile ProjectileSnap `json:"projectile"`
}

type HostileDamagedData struct {
	ID    string `json:"id"`
	HP    int    `json:"health"`
	MaxHP int    `json:"maxHealth"`
}

type HostileKilledData struct {
	ID        string `json:"id"`
	ShooterID string `json:"shooterId"`
	Reward    int    `json:"reward"`
}

type PlayerDamagedData struct {
	ID string `json:"id"`
	HP int    `json:"health"`
}

type PlayerDiedData struct {
	ID string `json:"id"`
}

type WeaponChangedData struct {
	ID     string `json:"id"`
	Weapon string `json:"weapon"`
	Cash   int    `json:"cash"`
}

type WaveAdvancedData struct {
	Wave     int           `json:"wave"`
	Hostiles []HostileSnap `json:"hostiles"`
}
