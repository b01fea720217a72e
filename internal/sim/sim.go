package sim

import (
	"time"

	"go.uber.org/zap"

	"github.com/arenago/server/internal/config"
	"github.com/arenago/server/internal/data"
	"github.com/arenago/server/internal/scripting"
	"github.com/arenago/server/internal/world"
)

const (
	// TickStep is the fixed simulation timestep (60 Hz).
	TickStep = time.Second / 60

	// MaxFrameTime caps how much real time one frame may feed into the
	// accumulator, so a stalled scheduler cannot spiral into an unbounded
	// catch-up burst.
	MaxFrameTime = 250 * time.Millisecond

	TicksPerSecond = 60

	PlayerRadius = 20.0
	PlayerSpeed  = 5.0 // max displacement per axis per tick
	PlayerMaxHP  = 100

	ProjectileSpeed  = 10.0
	ProjectileRadius = 3.0
)

// Simulator advances rooms through fixed ticks. It is the sole writer of
// room entity state; handlers only queue intents and call the explicit
// entry points (SwitchWeapon, BeginCombat), which also run on the game loop.
type Simulator struct {
	cfg      *config.Config
	weapons  *data.WeaponTable
	hostiles *data.HostileTable
	scripts  *scripting.Engine // nil = built-in wave formulas only
	log      *zap.Logger
}

func NewSimulator(cfg *config.Config, weapons *data.WeaponTable, hostiles *data.HostileTable, scripts *scripting.Engine, log *zap.Logger) *Simulator {
	return &Simulator{
		cfg:      cfg,
		weapons:  weapons,
		hostiles: hostiles,
		scripts:  scripts,
		log:      log,
	}
}

// localAuthority reports whether player positions are client-owned
// (practice mode): moves are trusted and death resets in place.
func (s *Simulator) localAuthority() bool {
	return s.cfg.Game.PlayerAuthority == "local"
}

// SeedRoom spawns the first wave into a freshly created room.
func (s *Simulator) SeedRoom(r *world.RoomInfo) {
	r.Wave = 1
	s.spawnWave(r)
	r.Phase = world.PhaseCombat
	s.log.Info("首波已生成",
		zap.String("room", r.Code),
		zap.Int("hostiles", len(r.Hostiles)),
	)
}

// Advance feeds elapsed real time into the room's accumulator and runs as
// many fixed steps as it covers. The leftover fraction carries to the
// next frame, so the simulation rate stays independent of scheduler jitter.
func (s *Simulator) Advance(r *world.RoomInfo, elapsed time.Duration) {
	if elapsed > MaxFrameTime {
		elapsed = MaxFrameTime
	}
	r.Acc += elapsed
	for r.Acc >= TickStep {
		s.Step(r)
		r.Acc -= TickStep
	}
}

// Step runs exactly one fixed tick over the room. Memory-local only, no
// I/O in here.
func (s *Simulator) Step(r *world.RoomInfo) {
	r.Now = r.Now.Add(TickStep)
	moves, fires := r.TakeIntents()
	s.applyMoves(r, moves)
	s.stepHostiles(r)
	s.stepContacts(r)
	s.stepProjectiles(r)
	s.stepWeapons(r, fires)
	s.stepPhase(r)
}
