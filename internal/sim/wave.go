package sim

import (
	"go.uber.org/zap"

	"github.com/google/uuid"

	"github.com/arenago/server/internal/core/event"
	"github.com/arenago/server/internal/net/proto"
	"github.com/arenago/server/internal/world"
)

// stepPhase drives the wave state machine: combat cleared opens the buy
// window, the buy countdown expiring (or an explicit start) launches the
// next wave.
func (s *Simulator) stepPhase(r *world.RoomInfo) {
	switch r.Phase {
	case world.PhaseCombat:
		if len(r.Hostiles) > 0 {
			return
		}
		if s.cfg.Game.BuyPhaseSeconds <= 0 {
			s.nextWave(r)
			return
		}
		r.Phase = world.PhaseBuy
		r.BuyTicksLeft = s.cfg.Game.BuyPhaseSeconds * TicksPerSecond
	case world.PhaseBuy:
		r.BuyTicksLeft--
		if r.BuyTicksLeft <= 0 {
			s.nextWave(r)
		}
	}
}

// BeginCombat cuts the buy window short and launches the next wave now.
// A no-op outside the buy phase.
func (s *Simulator) BeginCombat(r *world.RoomInfo) bool {
	if r.Phase != world.PhaseBuy {
		return false
	}
	s.nextWave(r)
	return true
}

// nextWave increments the counter, spawns the new wave's hostiles, and
// announces it.
func (s *Simulator) nextWave(r *world.RoomInfo) {
	r.Wave++
	s.spawnWave(r)
	r.Phase = world.PhaseCombat
	r.BuyTicksLeft = 0

	snaps := make([]proto.HostileSnap, 0, len(r.Hostiles))
	for _, h := range r.Hostiles {
		snaps = append(snaps, h.Snap())
	}
	event.Emit(r.Bus, event.WaveAdvanced{Wave: r.Wave, Hostiles: snaps})
	s.log.Info("波次推進",
		zap.String("room", r.Code),
		zap.Int("wave", r.Wave),
		zap.Int("hostiles", len(r.Hostiles)),
	)
}

// spawnWave places wave N's hostiles just outside the world rectangle, with
// health and speed scaled to the wave number from the data table.
func (s *Simulator) spawnWave(r *world.RoomInfo) {
	tmpl := s.hostiles.Default()
	if tmpl == nil {
		s.log.Warn("缺少敵人模板，本波不生成", zap.String("room", r.Code))
		return
	}
	count := s.waveCount(r.Wave)
	for i := 0; i < count; i++ {
		x, y := world.EdgeSpawnPoint(r.Rng, s.cfg.Game.WorldWidth, s.cfg.Game.WorldHeight, s.cfg.Game.SpawnEdgeOffset)
		hp := tmpl.HealthAt(r.Wave)
		r.Hostiles = append(r.Hostiles, &world.HostileInfo{
			ID:     uuid.NewString(),
			X:      x,
			Y:      y,
			Radius: tmpl.Radius,
			Speed:  tmpl.SpeedAt(r.Wave),
			HP:     hp,
			MaxHP:  hp,
			Damage: tmpl.Damage,
		})
	}
	if s.scripts != nil {
		s.scripts.OnWaveStart(r.Wave, count)
	}
}

// waveCount asks the tuning script for wave N's hostile count, falling back
// to the linear formula from config when no script overrides it.
func (s *Simulator) waveCount(wave int) int {
	base, growth := s.cfg.Game.WaveBase, s.cfg.Game.WaveGrowth
	if s.scripts != nil {
		return s.scripts.WaveHostileCount(wave, base, growth)
	}
	return base + wave*growth
}
