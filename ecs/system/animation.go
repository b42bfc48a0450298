package system

import (
	"math"

	"github.com/milk9111/rakesh/ecs"
	"github.com/milk9111/rakesh/ecs/component"
)

const (
	walkFrames  = 8
	climbFrames = 2
)

// PlayerAnimationSystem picks the player's texture from how far the body
// moved during the last physics step.
type PlayerAnimationSystem struct{}

func NewPlayerAnimationSystem() *PlayerAnimationSystem {
	return &PlayerAnimationSystem{}
}

func (a *PlayerAnimationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	entities := w.Query(
		component.PlayerComponent.Kind(),
		component.PlayerStateComponent.Kind(),
		component.PlayerCollisionComponent.Kind(),
		component.AnimationComponent.Kind(),
	)
	for _, e := range entities {
		tune, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
		state, _ := ecs.Get(w, e, component.PlayerStateComponent.Kind())
		pc, _ := ecs.Get(w, e, component.PlayerCollisionComponent.Kind())
		anim, _ := ecs.Get(w, e, component.AnimationComponent.Kind())

		stepAnimation(state, anim, pc.DX, pc.DY, pc.Grounded, tune.DeadZone, tune.StrideDistance)

		sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
		if !ok {
			continue
		}
		sprite.FacingLeft = state.FacingLeft
		if clip := anim.Clips[anim.Current]; len(clip) > 0 {
			sprite.Image = clip[anim.Frame%len(clip)]
		}
	}
}

// stepAnimation advances facing, odometers and the pose for one step of
// movement (dx, dy). Walk and climb frames only change after the body has
// covered stride pixels along the matching axis, so a slow start keeps the
// previous pose.
func stepAnimation(state *component.PlayerState, anim *component.Animation, dx, dy float64, grounded bool, dead, stride float64) {
	if dx < -dead && !state.FacingLeft {
		state.FacingLeft = true
	} else if dx > dead && state.FacingLeft {
		state.FacingLeft = false
	}

	state.OdometerX += dx
	state.OdometerY += dy

	if state.OnLadder && !grounded {
		if math.Abs(state.OdometerY) > stride {
			state.OdometerY = 0
			anim.Frame++
		}
		if anim.Frame >= climbFrames {
			anim.Frame = 0
		}
		anim.Current = component.PoseClimb
		return
	}

	if !grounded {
		if dy < -dead {
			anim.Current = component.PoseJump
			return
		}
		if dy > dead {
			anim.Current = component.PoseFall
			return
		}
	}

	if math.Abs(dx) <= dead {
		anim.Current = component.PoseIdle
		return
	}

	if math.Abs(state.OdometerX) > stride {
		state.OdometerX = 0
		anim.Frame++
		if anim.Frame >= walkFrames {
			anim.Frame = 0
		}
		anim.Current = component.PoseWalk
	}
}
