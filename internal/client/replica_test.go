package client

import (
	"math"
	"testing"

	"github.com/arenago/server/internal/net/proto"
)

func snapshotWithSelf(x, y float64) proto.SnapshotData {
	return proto.SnapshotData{
		Players: []proto.PlayerSnap{
			{ID: "me", X: x, Y: y, HP: 100, MaxHP: 100, Cash: 500, Weapon: "pistol"},
		},
		Wave:  1,
		Phase: "combat",
	}
}

func TestReconcileKeepsPredictionWithinThreshold(t *testing.T) {
	r := NewReplica("me")
	r.ApplySnapshot(snapshotWithSelf(100, 100))

	// Predicted position 9 units from authoritative: under the threshold.
	r.Self().X, r.Self().Y = 109, 100
	r.ApplySnapshot(snapshotWithSelf(100, 100))

	if r.Self().X != 109 || r.Self().Y != 100 {
		t.Fatalf("self at (%v,%v), want predicted (109,100) kept", r.Self().X, r.Self().Y)
	}
}

func TestReconcileSnapsBeyondThreshold(t *testing.T) {
	r := NewReplica("me")
	r.ApplySnapshot(snapshotWithSelf(100, 100))

	// 11 units of divergence: snap exactly to authoritative, no partial blend.
	r.Self().X, r.Self().Y = 111, 100
	r.ApplySnapshot(snapshotWithSelf(100, 100))

	if r.Self().X != 100 || r.Self().Y != 100 {
		t.Fatalf("self at (%v,%v), want exact authoritative (100,100)", r.Self().X, r.Self().Y)
	}
}

func TestSnapshotOverwritesOthersWholesale(t *testing.T) {
	r := NewReplica("me")
	r.ApplySnapshot(proto.SnapshotData{
		Players: []proto.PlayerSnap{
			{ID: "me", X: 1, Y: 1},
			{ID: "other", X: 50, Y: 50, HP: 80},
		},
	})

	r.ApplySnapshot(proto.SnapshotData{
		Players: []proto.PlayerSnap{
			{ID: "me", X: 1, Y: 1},
			{ID: "other", X: 70, Y: 70, HP: 60},
		},
	})

	o := r.Players["other"]
	if o.X != 70 || o.Y != 70 || o.HP != 60 {
		t.Fatalf("other = %+v, want fully overwritten", o)
	}
}

func TestSnapshotRemovesAbsentEntities(t *testing.T) {
	r := NewReplica("me")
	r.ApplySnapshot(proto.SnapshotData{
		Players:     []proto.PlayerSnap{{ID: "me"}, {ID: "gone"}},
		Hostiles:    []proto.HostileSnap{{ID: "h1"}},
		Projectiles: []proto.ProjectileSnap{{ID: "b1"}},
	})

	r.ApplySnapshot(proto.SnapshotData{
		Players: []proto.PlayerSnap{{ID: "me"}},
	})

	if _, ok := r.Players["gone"]; ok {
		t.Fatal("player absent from snapshot should be removed")
	}
	if len(r.Hostiles) != 0 || len(r.Projectiles) != 0 {
		t.Fatal("entities absent from snapshot should be removed")
	}
}

func TestHostileInterpolation(t *testing.T) {
	r := NewReplica("me")
	r.ApplySnapshot(proto.SnapshotData{
		Hostiles: []proto.HostileSnap{{ID: "h1", X: 0, Y: 0}},
	})

	// New authoritative position: displayed position chases it, 30% per frame.
	r.ApplySnapshot(proto.SnapshotData{
		Hostiles: []proto.HostileSnap{{ID: "h1", X: 100, Y: 0}},
	})
	h := r.Hostiles["h1"]
	if h.X != 0 {
		t.Fatalf("displayed x = %v, want 0 until Interpolate runs", h.X)
	}

	r.Interpolate()
	if math.Abs(h.X-30) > 1e-9 {
		t.Fatalf("after one frame x = %v, want 30", h.X)
	}
	r.Interpolate()
	if math.Abs(h.X-51) > 1e-9 {
		t.Fatalf("after two frames x = %v, want 51", h.X)
	}
}

func TestHostileKilledIdempotent(t *testing.T) {
	r := NewReplica("me")
	r.ApplySnapshot(proto.SnapshotData{
		Players:  []proto.PlayerSnap{{ID: "me", Cash: 500}},
		Hostiles: []proto.HostileSnap{{ID: "h1", X: 10, Y: 10}},
	})

	kill := proto.HostileKilledData{ID: "h1", ShooterID: "me", Reward: 25}
	r.ApplyHostileKilled(kill)
	r.ApplyHostileKilled(kill) // duplicate delivery

	if _, ok := r.Hostiles["h1"]; ok {
		t.Fatal("killed hostile should be removed")
	}
	if r.Self().Cash != 525 {
		t.Fatalf("cash = %d, want 525 with the reward credited exactly once", r.Self().Cash)
	}
}

func TestHostileKilledOtherShooterNoCredit(t *testing.T) {
	r := NewReplica("me")
	r.ApplySnapshot(proto.SnapshotData{
		Players:  []proto.PlayerSnap{{ID: "me", Cash: 500}},
		Hostiles: []proto.HostileSnap{{ID: "h1"}},
	})

	r.ApplyHostileKilled(proto.HostileKilledData{ID: "h1", ShooterID: "other", Reward: 25})
	if r.Self().Cash != 500 {
		t.Fatalf("cash = %d, want 500 after someone else's kill", r.Self().Cash)
	}
}

func TestPredictMoveNormalizesDirection(t *testing.T) {
	r := NewReplica("me")
	r.ApplySnapshot(snapshotWithSelf(100, 100))

	x, y, ok := r.PredictMove(1, 1, 5)
	if !ok {
		t.Fatal("alive self should predict")
	}
	want := 5 / math.Sqrt2
	if math.Abs(x-(100+want)) > 1e-9 || math.Abs(y-(100+want)) > 1e-9 {
		t.Fatalf("predicted (%v,%v), want diagonal components of %v", x, y, want)
	}
}

func TestPredictMoveDeadSelf(t *testing.T) {
	r := NewReplica("me")
	r.ApplySnapshot(snapshotWithSelf(100, 100))
	r.Self().Dead = true

	if _, _, ok := r.PredictMove(1, 0, 5); ok {
		t.Fatal("dead self must not predict movement")
	}
}

func TestWaveAdvancedInstallsHostiles(t *testing.T) {
	r := NewReplica("me")
	r.ApplyWaveAdvanced(proto.WaveAdvancedData{
		Wave:     3,
		Hostiles: []proto.HostileSnap{{ID: "h1", X: 5, Y: 5}, {ID: "h2", X: 9, Y: 9}},
	})

	if r.Wave != 3 || r.Phase != "combat" {
		t.Fatalf("wave=%d phase=%q, want 3/combat", r.Wave, r.Phase)
	}
	if len(r.Hostiles) != 2 {
		t.Fatalf("hostiles = %d, want 2", len(r.Hostiles))
	}
	if h := r.Hostiles["h1"]; h.TargetX != 5 || h.X != 5 {
		t.Fatal("new hostiles appear at their spawn point, no interpolation lag")
	}
}
