package system

import (
	"github.com/milk9111/rakesh/ecs"
	"github.com/milk9111/rakesh/ecs/component"
)

// LadderSystem tracks whether the player overlaps a ladder. On a ladder the
// player floats with no gravity and near-total damping.
type LadderSystem struct{}

func NewLadderSystem() *LadderSystem {
	return &LadderSystem{}
}

func (l *LadderSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	player, rect, ok := playerRect(w)
	if !ok {
		return
	}
	state, ok := ecs.Get(w, player, component.PlayerStateComponent.Kind())
	if !ok {
		return
	}
	tune, ok := ecs.Get(w, player, component.PlayerComponent.Kind())
	if !ok {
		return
	}

	onLadder := len(touching(w, component.LadderComponent.Kind(), rect)) > 0
	if onLadder == state.OnLadder {
		return
	}
	state.OnLadder = onLadder

	dyn, ok := ecs.Get(w, player, component.BodyDynamicsComponent.Kind())
	if !ok {
		dyn = &component.BodyDynamics{}
		if err := ecs.Add(w, player, component.BodyDynamicsComponent.Kind(), dyn); err != nil {
			return
		}
	}
	if onLadder {
		dyn.OverrideGravity = true
		dyn.GravityX, dyn.GravityY = 0, 0
		dyn.OverrideDamping = true
		dyn.Damping = tune.LadderDamping
		dyn.MaxSpeedY = tune.MaxSpeedX
		return
	}
	dyn.OverrideGravity = false
	dyn.OverrideDamping = true
	dyn.Damping = tune.Damping
	dyn.MaxSpeedY = tune.MaxSpeedY
}
