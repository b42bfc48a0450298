package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rakesh/ecs"
	"github.com/milk9111/rakesh/ecs/component"
)

// PlayerControllerSystem turns the frame's input into forces on the player
// body. It runs after the ladder system so OnLadder is current.
type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	entities := w.Query(
		component.PlayerTagComponent.Kind(),
		component.PlayerComponent.Kind(),
		component.InputComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
	)
	for _, e := range entities {
		player, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
		input, _ := ecs.Get(w, e, component.InputComponent.Kind())
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok || bodyComp.Body == nil {
			continue
		}

		grounded := false
		if pc, ok := ecs.Get(w, e, component.PlayerCollisionComponent.Kind()); ok {
			grounded = pc.Grounded
		}
		onLadder := false
		if st, ok := ecs.Get(w, e, component.PlayerStateComponent.Kind()); ok {
			onLadder = st.OnLadder
		}

		cmd := steer(*input, *player, grounded, onLadder)
		if cmd.Force != (cp.Vector{}) {
			bodyComp.Body.ApplyForceAtLocalPoint(cmd.Force, cp.Vector{})
		}
		if cmd.SetFriction {
			setFriction(bodyComp, cmd.Friction)
		}
		if cmd.Jump {
			bodyComp.Body.ApplyImpulseAtLocalPoint(cp.Vector{X: 0, Y: -player.JumpImpulse}, cp.Vector{})
		}
	}
}

// steerCommand is what one frame of input asks of the player body.
type steerCommand struct {
	Force       cp.Vector
	SetFriction bool
	Friction    float64
	Jump        bool
}

// steer picks the horizontal move first, then ladder climbing, then braking.
// Up and down do nothing off a ladder.
func steer(in component.Input, p component.Player, grounded, onLadder bool) steerCommand {
	var cmd steerCommand

	force := p.MoveForceAir
	if grounded || onLadder {
		force = p.MoveForce
	}

	switch {
	case in.Left && !in.Right:
		cmd.Force = cp.Vector{X: -force}
		cmd.SetFriction, cmd.Friction = true, p.MovingFriction
	case in.Right && !in.Left:
		cmd.Force = cp.Vector{X: force}
		cmd.SetFriction, cmd.Friction = true, p.MovingFriction
	case in.Up && !in.Down:
		if onLadder {
			cmd.Force = cp.Vector{Y: -p.LadderForce}
			cmd.SetFriction, cmd.Friction = true, p.MovingFriction
		}
	case in.Down && !in.Up:
		if onLadder {
			cmd.Force = cp.Vector{Y: p.LadderForce}
			cmd.SetFriction, cmd.Friction = true, p.MovingFriction
		}
	default:
		cmd.SetFriction, cmd.Friction = true, p.IdleFriction
	}

	cmd.Jump = in.JumpPressed && grounded && !onLadder
	return cmd
}

func setFriction(bodyComp *component.PhysicsBody, friction float64) {
	bodyComp.Friction = friction
	if bodyComp.Shape != nil {
		bodyComp.Shape.SetFriction(friction)
	}
}
