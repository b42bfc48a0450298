package system

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/milk9111/rakesh/common"
	"github.com/milk9111/rakesh/ecs"
	"github.com/milk9111/rakesh/ecs/component"
	"github.com/milk9111/rakesh/ecs/entity"
)

// BulletSpawner builds a bullet centred on (x, y) heading along angle.
type BulletSpawner func(w *ecs.World, x, y, angle float64) (ecs.Entity, error)

// BulletSystem fires a bullet toward the aim point on each click and removes
// bullets that have fallen out of the level.
type BulletSystem struct {
	spawn   BulletSpawner
	padding float64
}

func NewBulletSystem(padding float64, spawn BulletSpawner) *BulletSystem {
	if spawn == nil {
		spawn = entity.NewBulletAt
	}
	if padding <= 0 {
		padding = common.BulletCleanupPadding
	}
	return &BulletSystem{spawn: spawn, padding: padding}
}

func (b *BulletSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	b.fire(w)
	b.cleanup(w)
}

func (b *BulletSystem) fire(w *ecs.World) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	input, ok := ecs.Get(w, player, component.InputComponent.Kind())
	if !ok || !input.Fire {
		return
	}
	t, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	bodyComp, ok := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
	if !ok {
		return
	}

	x, y, angle := muzzle(t.X, t.Y, bodyComp.Width, bodyComp.Height, input.AimX, input.AimY)
	if _, err := b.spawn(w, x, y, angle); err != nil {
		log.Error("spawn bullet", "err", err)
		return
	}
	playSound(w, "shoot")
}

// muzzle places a bullet on the edge of the shooter's bounding circle,
// facing the aim point.
func muzzle(px, py, width, height, aimX, aimY float64) (float64, float64, float64) {
	angle := common.Angle(px, py, aimX, aimY)
	size := math.Max(width, height) / 2
	return px + size*math.Cos(angle), py + size*math.Sin(angle), angle
}

func (b *BulletSystem) cleanup(w *ecs.World) {
	_, progress, ok := levelProgress(w)
	if !ok {
		return
	}
	floor := progress.Height + b.padding
	ecs.ForEach2(w, component.BulletComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Bullet, t *component.Transform) {
		if t.Y > floor {
			w.DestroyEntity(e)
		}
	})
}
