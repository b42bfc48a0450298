package system

import (
	"testing"

	"github.com/milk9111/rakesh/common"
	"github.com/milk9111/rakesh/ecs"
	"github.com/milk9111/rakesh/ecs/component"
)

func floatPtr(f float64) *float64 {
	return &f
}

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], v *T) {
	t.Helper()
	if err := ecs.Add(w, e, kind, v); err != nil {
		t.Fatalf("add %T: %v", v, err)
	}
}

func testPlayerTuning() *component.Player {
	return &component.Player{
		MoveForce:      common.PlayerMoveForce,
		MoveForceAir:   common.PlayerMoveForceAir,
		LadderForce:    common.PlayerMoveForce,
		JumpImpulse:    common.PlayerJumpImpulse,
		MovingFriction: 0,
		IdleFriction:   common.PlayerFriction,
		Damping:        common.PlayerDamping,
		LadderDamping:  common.PlayerLadderDamping,
		MaxSpeedX:      common.PlayerMaxSpeedX,
		MaxSpeedY:      common.PlayerMaxSpeedY,
		DeadZone:       common.DeadZone,
		StrideDistance: common.StrideDistance,
	}
}

// addTestPlayer builds a sprite-less player centred on (x, y).
func addTestPlayer(t *testing.T, w *ecs.World, x, y float64) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	mustAdd(t, w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	mustAdd(t, w, e, component.PlayerComponent.Kind(), testPlayerTuning())
	mustAdd(t, w, e, component.InputComponent.Kind(), &component.Input{})
	mustAdd(t, w, e, component.PlayerCollisionComponent.Kind(), &component.PlayerCollision{})
	mustAdd(t, w, e, component.PlayerStateComponent.Kind(), &component.PlayerState{})
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1})
	mustAdd(t, w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:          component.BodyDynamic,
		Category:      component.CategoryPlayer,
		Width:         40,
		Height:        60,
		Mass:          common.PlayerMass,
		Friction:      common.PlayerFriction,
		FixedRotation: true,
	})
	mustAdd(t, w, e, component.BodyDynamicsComponent.Kind(), &component.BodyDynamics{
		OverrideDamping: true,
		Damping:         common.PlayerDamping,
		MaxSpeedX:       common.PlayerMaxSpeedX,
		MaxSpeedY:       common.PlayerMaxSpeedY,
	})
	return e
}

// addTrigger places an entity with an area of size w×h centred on (x, y)
// and attaches c to it.
func addTrigger[T any](t *testing.T, w *ecs.World, kind component.ComponentKind[T], c *T, x, y, width, height float64) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1})
	mustAdd(t, w, e, component.AreaComponent.Kind(), &component.Area{Width: width, Height: height})
	mustAdd(t, w, e, kind, c)
	return e
}

func addTestProgress(t *testing.T, w *ecs.World, p component.LevelProgress) *component.LevelProgress {
	t.Helper()
	e := w.CreateEntity()
	mustAdd(t, w, e, component.LevelProgressComponent.Kind(), &p)
	got, _ := ecs.Get(w, e, component.LevelProgressComponent.Kind())
	return got
}

// addStaticBox adds a static wall of the given size centred on (x, y).
func addStaticBox(t *testing.T, w *ecs.World, x, y, width, height float64) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1})
	mustAdd(t, w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:     component.BodyStatic,
		Category: component.CategoryWall,
		Width:    width,
		Height:   height,
		Friction: common.WallFriction,
	})
	return e
}
