package system

import (
	"github.com/milk9111/rakesh/common"
	"github.com/milk9111/rakesh/ecs"
	"github.com/milk9111/rakesh/ecs/component"
)

// areaRect returns the trigger box of e, centred on its transform.
func areaRect(w *ecs.World, e ecs.Entity) (common.Rect, bool) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return common.Rect{}, false
	}
	area, ok := ecs.Get(w, e, component.AreaComponent.Kind())
	if !ok || area.Width <= 0 || area.Height <= 0 {
		return common.Rect{}, false
	}
	return common.RectAround(t.X, t.Y, area.Width, area.Height), true
}

// bodyRect returns the collider box of e, centred on its transform.
func bodyRect(w *ecs.World, e ecs.Entity) (common.Rect, bool) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return common.Rect{}, false
	}
	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok || body.Width <= 0 || body.Height <= 0 {
		return common.Rect{}, false
	}
	return common.RectAround(t.X, t.Y, body.Width, body.Height), true
}

// playerRect finds the player and its collider box.
func playerRect(w *ecs.World) (ecs.Entity, common.Rect, bool) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return 0, common.Rect{}, false
	}
	r, ok := bodyRect(w, player)
	return player, r, ok
}

// touching lists the entities carrying kind whose area overlaps r.
func touching[T any](w *ecs.World, kind component.ComponentKind[T], r common.Rect) []ecs.Entity {
	var hits []ecs.Entity
	ecs.ForEach(w, kind, func(e ecs.Entity, _ *T) {
		if other, ok := areaRect(w, e); ok && r.Intersects(other) {
			hits = append(hits, e)
		}
	})
	return hits
}

// playSound queues a clip on the shared sound bank.
func playSound(w *ecs.World, name string) {
	if name == "" {
		return
	}
	bank, ok := ecs.First(w, component.SoundBankComponent.Kind())
	if !ok {
		return
	}
	if a, ok := ecs.Get(w, bank, component.AudioComponent.Kind()); ok {
		a.Queue(name)
	}
}

func levelProgress(w *ecs.World) (ecs.Entity, *component.LevelProgress, bool) {
	e, ok := ecs.First(w, component.LevelProgressComponent.Kind())
	if !ok {
		return 0, nil, false
	}
	p, ok := ecs.Get(w, e, component.LevelProgressComponent.Kind())
	return e, p, ok
}
