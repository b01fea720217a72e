package sim

import (
	"testing"
	"time"
)

func TestFireRateWindow(t *testing.T) {
	s, r := newTestSim(t, "remote")
	p := addPlayer(s, r, "p1")
	base := r.Now

	s.TryFire(r, p, 0)
	if len(r.Projectiles) != 1 {
		t.Fatalf("projectiles = %d, want 1 after first shot", len(r.Projectiles))
	}

	// 400ms later: inside the pistol's 500ms cooldown.
	r.Now = base.Add(400 * time.Millisecond)
	s.TryFire(r, p, 0)
	if len(r.Projectiles) != 1 {
		t.Fatalf("projectiles = %d, want still 1 at t=400ms", len(r.Projectiles))
	}

	// 520ms later: cooldown elapsed.
	r.Now = base.Add(520 * time.Millisecond)
	s.TryFire(r, p, 0)
	if len(r.Projectiles) != 2 {
		t.Fatalf("projectiles = %d, want 2 at t=520ms", len(r.Projectiles))
	}
}

func TestFireConsumesAmmoAndSpawnsAtShooter(t *testing.T) {
	s, r := newTestSim(t, "remote")
	p := addPlayer(s, r, "p1")
	p.X, p.Y = 300, 200

	s.TryFire(r, p, 0) // angle 0: straight along +X

	if p.Ammo["pistol"] != 11 {
		t.Fatalf("ammo = %d, want 11", p.Ammo["pistol"])
	}
	b := r.Projectiles[0]
	if b.X != 300 || b.Y != 200 {
		t.Fatalf("projectile spawned at (%v,%v), want shooter position", b.X, b.Y)
	}
	if b.VX != ProjectileSpeed || b.VY != 0 {
		t.Fatalf("velocity (%v,%v), want (%v,0)", b.VX, b.VY, ProjectileSpeed)
	}
	if b.OwnerID != "p1" || b.Damage != 25 {
		t.Fatalf("owner=%q damage=%d, want p1 / 25", b.OwnerID, b.Damage)
	}
}

func TestEmptyMagazineStartsReload(t *testing.T) {
	s, r := newTestSim(t, "remote")
	p := addPlayer(s, r, "p1")
	p.Ammo["pistol"] = 0
	base := r.Now

	s.TryFire(r, p, 0)
	if len(r.Projectiles) != 0 {
		t.Fatal("dry trigger pull must not fire")
	}
	if !p.Reloading(base) {
		t.Fatal("dry trigger pull should start the reload")
	}

	// Mid-reload attempts are rejected.
	r.Now = base.Add(700 * time.Millisecond)
	s.TryFire(r, p, 0)
	if len(r.Projectiles) != 0 {
		t.Fatal("firing mid-reload must be rejected")
	}

	// Reload window (1500ms) elapsed: magazine refills and the shot goes out.
	r.Now = base.Add(1500 * time.Millisecond)
	s.TryFire(r, p, 0)
	if len(r.Projectiles) != 1 {
		t.Fatal("shot after reload should fire")
	}
	if p.Ammo["pistol"] != 11 {
		t.Fatalf("ammo = %d, want 11 (full magazine minus the shot)", p.Ammo["pistol"])
	}
}

func TestReloadCompletesWithoutFiring(t *testing.T) {
	s, r := newTestSim(t, "remote")
	p := addPlayer(s, r, "p1")
	p.Ammo["pistol"] = 0
	s.TryFire(r, p, 0) // start reload

	// Step past the reload window; stepWeapons finishes it with no trigger pull.
	for i := 0; i < 91; i++ { // 91 ticks ≈ 1516ms
		s.Step(r)
	}
	if p.Ammo["pistol"] != 12 {
		t.Fatalf("ammo = %d, want full 12 after passive reload", p.Ammo["pistol"])
	}
	if p.Reloading(r.Now) {
		t.Fatal("reload should be finished")
	}
}

func TestDeadPlayerCannotFire(t *testing.T) {
	s, r := newTestSim(t, "remote")
	p := addPlayer(s, r, "p1")
	p.Dead = true

	s.TryFire(r, p, 0)
	if len(r.Projectiles) != 0 {
		t.Fatal("dead player must not fire")
	}
}

func TestPurchaseRejectedWithoutCash(t *testing.T) {
	s, r := newTestSim(t, "remote")
	p := addPlayer(s, r, "p1") // starts with 500

	if s.SwitchWeapon(r, p, "shotgun") {
		t.Fatal("500 cash cannot buy a 1000 shotgun")
	}
	if p.Weapon != "pistol" || p.Cash != 500 {
		t.Fatalf("weapon=%q cash=%d, want untouched pistol/500", p.Weapon, p.Cash)
	}
}

func TestPurchaseDeductsOnce(t *testing.T) {
	s, r := newTestSim(t, "remote")
	p := addPlayer(s, r, "p1")
	p.Cash = 1200

	if !s.SwitchWeapon(r, p, "shotgun") {
		t.Fatal("1200 cash should buy the shotgun")
	}
	if p.Cash != 200 {
		t.Fatalf("cash = %d, want 200 after purchase", p.Cash)
	}
	if p.Ammo["shotgun"] != 6 || !p.Owned["shotgun"] {
		t.Fatalf("shotgun not provisioned: ammo=%d owned=%v", p.Ammo["shotgun"], p.Owned["shotgun"])
	}

	// Swap away and back: owned weapons re-equip for free.
	if !s.SwitchWeapon(r, p, "pistol") {
		t.Fatal("switching back to the starter should succeed")
	}
	if !s.SwitchWeapon(r, p, "shotgun") {
		t.Fatal("re-equipping an owned weapon should succeed")
	}
	if p.Cash != 200 {
		t.Fatalf("cash = %d, want 200, purchase deducts exactly once", p.Cash)
	}
}

func TestSwitchUnknownWeapon(t *testing.T) {
	s, r := newTestSim(t, "remote")
	p := addPlayer(s, r, "p1")

	if s.SwitchWeapon(r, p, "railgun") {
		t.Fatal("unknown weapon id must be rejected")
	}
	if p.Weapon != "pistol" {
		t.Fatalf("weapon = %q, want pistol", p.Weapon)
	}
}

func TestSwitchCancelsReload(t *testing.T) {
	s, r := newTestSim(t, "remote")
	p := addPlayer(s, r, "p1")
	p.Cash = 2000
	p.Ammo["pistol"] = 0
	s.TryFire(r, p, 0) // start pistol reload

	if !s.SwitchWeapon(r, p, "shotgun") {
		t.Fatal("switch during reload should succeed")
	}
	if p.Reloading(r.Now.Add(time.Millisecond)) {
		t.Fatal("switching weapons should cancel the reload in progress")
	}
}
