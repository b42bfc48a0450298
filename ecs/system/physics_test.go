package system

import (
	"errors"
	"testing"

	"github.com/milk9111/rakesh/ecs"
	"github.com/milk9111/rakesh/ecs/component"
	"github.com/milk9111/rakesh/prefabs"
)

func addTestBullet(t *testing.T, w *ecs.World, x, y float64) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	mustAdd(t, w, e, component.BulletComponent.Kind(), &component.Bullet{})
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1})
	mustAdd(t, w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:       component.BodyDynamic,
		Category:   component.CategoryBullet,
		Width:      20,
		Height:     5,
		Mass:       0.1,
		Friction:   0.6,
		Elasticity: 0.9,
	})
	mustAdd(t, w, e, component.BodyDynamicsComponent.Kind(), &component.BodyDynamics{OverrideGravity: true, OverrideDamping: true, Damping: 1})
	mustAdd(t, w, e, component.PendingForceComponent.Kind(), &component.PendingForce{X: 9000, Local: true})
	return e
}

func TestPhysicsPlayerLandsAndIsGrounded(t *testing.T) {
	w := ecs.NewWorld()
	player := addTestPlayer(t, w, 100, 100)
	addStaticBox(t, w, 100, 200, 400, 40)

	ps := NewPhysicsSystem(prefabs.DefaultWorldSpec())
	ps.Update(w)

	pc, _ := ecs.Get(w, player, component.PlayerCollisionComponent.Kind())
	if pc.Grounded {
		t.Fatal("player should not be grounded in the air")
	}
	if pc.DY <= 0 {
		t.Fatalf("DY = %v, want the player falling", pc.DY)
	}

	for i := 0; i < 120; i++ {
		ps.Update(w)
	}

	pc, _ = ecs.Get(w, player, component.PlayerCollisionComponent.Kind())
	if !pc.Grounded {
		t.Fatal("player should be grounded after landing")
	}
	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	if tr.Y < 140 || tr.Y > 152 {
		t.Fatalf("player y = %v, want resting on the floor top at 180", tr.Y)
	}
}

func TestPhysicsBulletRemovedByWall(t *testing.T) {
	w := ecs.NewWorld()
	bullet := addTestBullet(t, w, 100, 100)
	wall := addStaticBox(t, w, 200, 100, 40, 200)

	ps := NewPhysicsSystem(prefabs.DefaultWorldSpec())
	ps.Update(w)
	if ecs.Has(w, bullet, component.PendingForceComponent.Kind()) {
		t.Fatal("pending force should be consumed after one step")
	}

	for i := 0; i < 30 && w.IsAlive(bullet); i++ {
		ps.Update(w)
	}
	if w.IsAlive(bullet) {
		t.Fatal("bullet should be destroyed on hitting a wall")
	}
	if !w.IsAlive(wall) {
		t.Fatal("wall must survive a bullet")
	}
}

func TestPhysicsBulletDestroysItem(t *testing.T) {
	w := ecs.NewWorld()
	bullet := addTestBullet(t, w, 100, 100)
	item := w.CreateEntity()
	mustAdd(t, w, item, component.TransformComponent.Kind(), &component.Transform{X: 200, Y: 100, ScaleX: 1, ScaleY: 1})
	mustAdd(t, w, item, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:     component.BodyDynamic,
		Category: component.CategoryItem,
		Width:    40,
		Height:   40,
		Mass:     1,
		Friction: 0.6,
	})

	ps := NewPhysicsSystem(prefabs.DefaultWorldSpec())
	for i := 0; i < 30 && w.IsAlive(bullet); i++ {
		ps.Update(w)
	}
	if w.IsAlive(bullet) || w.IsAlive(item) {
		t.Fatalf("bullet alive=%v item alive=%v, want both removed", w.IsAlive(bullet), w.IsAlive(item))
	}
}

func TestPhysicsResetDropsBodies(t *testing.T) {
	w := ecs.NewWorld()
	addStaticBox(t, w, 0, 0, 10, 10)
	ps := NewPhysicsSystem(prefabs.DefaultWorldSpec())
	ps.Update(w)
	if len(ps.entities) != 1 {
		t.Fatalf("entities = %d, want 1", len(ps.entities))
	}
	old := ps.Space()
	ps.Reset()
	if ps.Space() == old || len(ps.entities) != 0 {
		t.Fatal("Reset should start a fresh space")
	}
}

func TestPhysicsResetRereadsWorldSpec(t *testing.T) {
	cases := []struct {
		name        string
		err         error
		wantGravity float64
		wantIters   uint
	}{
		{"edited spec applies", nil, 900, 7},
		{"failed read keeps previous", errors.New("bad yaml"), prefabs.DefaultWorldSpec().Gravity, uint(prefabs.DefaultWorldSpec().Iterations)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ps := NewPhysicsSystem(prefabs.DefaultWorldSpec())
			ps.SpecSource = func() (prefabs.WorldSpec, error) {
				spec := prefabs.DefaultWorldSpec()
				spec.Gravity = 900
				spec.Iterations = 7
				return spec, c.err
			}
			ps.Reset()
			if ps.spec.Gravity != c.wantGravity {
				t.Fatalf("gravity = %v, want %v", ps.spec.Gravity, c.wantGravity)
			}
			if ps.Space().Iterations != c.wantIters {
				t.Fatalf("iterations = %d, want %d", ps.Space().Iterations, c.wantIters)
			}
		})
	}
}

func TestPhysicsRemovesBodyOfDestroyedEntity(t *testing.T) {
	w := ecs.NewWorld()
	lock := addStaticBox(t, w, 0, 0, 64, 64)
	ps := NewPhysicsSystem(prefabs.DefaultWorldSpec())
	ps.Update(w)
	w.DestroyEntity(lock)
	ps.Update(w)
	if len(ps.entities) != 0 || len(ps.shapeOwners) != 0 {
		t.Fatalf("entities=%d shapes=%d, want none", len(ps.entities), len(ps.shapeOwners))
	}
}
