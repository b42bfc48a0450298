package system

import (
	"math"
	"testing"

	"github.com/milk9111/rakesh/ecs"
	"github.com/milk9111/rakesh/ecs/component"
)

func TestMuzzle(t *testing.T) {
	cases := []struct {
		name       string
		aimX, aimY float64
		wantX      float64
		wantY      float64
		wantAngle  float64
	}{
		{"right", 500, 100, 130, 100, 0},
		{"up", 100, -400, 100, 70, -math.Pi / 2},
		{"left", -50, 100, 70, 100, math.Pi},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			x, y, angle := muzzle(100, 100, 40, 60, c.aimX, c.aimY)
			if math.Abs(x-c.wantX) > 1e-9 || math.Abs(y-c.wantY) > 1e-9 || math.Abs(angle-c.wantAngle) > 1e-9 {
				t.Fatalf("muzzle = (%v, %v, %v), want (%v, %v, %v)", x, y, angle, c.wantX, c.wantY, c.wantAngle)
			}
		})
	}
}

func TestBulletSystemFiresOnClick(t *testing.T) {
	w := ecs.NewWorld()
	bank := addTestSoundBank(t, w)
	player := addTestPlayer(t, w, 100, 100)
	in, _ := ecs.Get(w, player, component.InputComponent.Kind())
	in.Fire = true
	in.AimX, in.AimY = 100, 500

	var calls int
	var gotX, gotY, gotAngle float64
	sys := NewBulletSystem(0, func(w *ecs.World, x, y, angle float64) (ecs.Entity, error) {
		calls++
		gotX, gotY, gotAngle = x, y, angle
		return w.CreateEntity(), nil
	})
	sys.Update(w)

	if calls != 1 {
		t.Fatalf("spawn calls = %d, want 1", calls)
	}
	if math.Abs(gotX-100) > 1e-9 || math.Abs(gotY-130) > 1e-9 || math.Abs(gotAngle-math.Pi/2) > 1e-9 {
		t.Fatalf("spawned at (%v, %v, %v)", gotX, gotY, gotAngle)
	}
	if !queued(bank, "shoot") {
		t.Fatal("shoot sound should be queued")
	}

	in.Fire = false
	sys.Update(w)
	if calls != 1 {
		t.Fatalf("spawn calls = %d, want no shot without a click", calls)
	}
}

func TestBulletCleanupBelowLevel(t *testing.T) {
	w := ecs.NewWorld()
	addTestProgress(t, w, component.LevelProgress{Height: 640})

	keep := w.CreateEntity()
	mustAdd(t, w, keep, component.BulletComponent.Kind(), &component.Bullet{})
	mustAdd(t, w, keep, component.TransformComponent.Kind(), &component.Transform{Y: 700})
	drop := w.CreateEntity()
	mustAdd(t, w, drop, component.BulletComponent.Kind(), &component.Bullet{})
	mustAdd(t, w, drop, component.TransformComponent.Kind(), &component.Transform{Y: 741})

	NewBulletSystem(100, func(*ecs.World, float64, float64, float64) (ecs.Entity, error) {
		t.Fatal("unexpected spawn")
		return 0, nil
	}).Update(w)

	if !w.IsAlive(keep) {
		t.Fatal("bullet within the padding should stay")
	}
	if w.IsAlive(drop) {
		t.Fatal("bullet below the padding should be removed")
	}
}
