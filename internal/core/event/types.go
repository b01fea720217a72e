package event

import "github.com/arenago/server/internal/net/proto"

// Room-scoped delta events. Each is pushed to every participant the same
// tick it occurs, independent of the snapshot cadence.

type PlayerJoined struct {
	Player proto.PlayerSnap
}

type PlayerLeft struct {
	PlayerID string
}

type ProjectileFired struct {
	Projectile proto.ProjectileSnap
}

type HostileDamaged struct {
	HostileID string
	HP        int
	MaxHP     int
}

type HostileKilled struct {
	HostileID string
	ShooterID string
	Reward    int
}

type PlayerDamaged struct {
	PlayerID string
	HP       int
}

type PlayerDied struct {
	PlayerID string
}

type WeaponChanged struct {
	PlayerID string
	Weapon   string
	Cash     int
}

type WaveAdvanced struct {
	Wave     int
	Hostiles []proto.HostileSnap
}
