package system

import (
	"github.com/charmbracelet/log"
	"github.com/milk9111/rakesh/common"
	"github.com/milk9111/rakesh/ecs"
	"github.com/milk9111/rakesh/ecs/component"
)

// MoverSystem drives moving platforms and moving spikes. Each mover either
// bounces between its boundaries or runs a tengo script that picks its
// velocity.
type MoverSystem struct {
	scripts map[ecs.Entity]*moverScriptRuntime
}

func NewMoverSystem() *MoverSystem {
	return &MoverSystem{scripts: map[ecs.Entity]*moverScriptRuntime{}}
}

func (s *MoverSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	s.cleanup(w)

	ecs.ForEach2(w, component.MoverComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, m *component.Mover, t *component.Transform) {
		r, ok := bodyRect(w, e)
		if !ok {
			if r, ok = areaRect(w, e); !ok {
				return
			}
		}

		vx, vy, scripted := s.scripted(e, m, r)
		if !scripted {
			bounceMover(m, r)
			vx, vy = m.ChangeX*common.TPS, m.ChangeY*common.TPS
		}

		if bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && bodyComp.Body != nil {
			bodyComp.Body.SetVelocity(vx, vy)
			return
		}
		t.X += vx * common.FixedStep
		t.Y += vy * common.FixedStep
	})
}

// scripted runs the mover's script, if it has a working one.
func (s *MoverSystem) scripted(e ecs.Entity, m *component.Mover, r common.Rect) (float64, float64, bool) {
	if m.Script == "" {
		return 0, 0, false
	}
	rt, ok := s.scripts[e]
	if !ok || rt.scriptPath != m.Script {
		var err error
		rt, err = newMoverScriptRuntime(m.Script)
		if err != nil {
			log.Warn("mover script load failed, bouncing instead", "entity", e, "script", m.Script, "err", err)
			rt = &moverScriptRuntime{scriptPath: m.Script, failed: true}
		}
		s.scripts[e] = rt
	}
	if rt.failed {
		return 0, 0, false
	}

	vx, vy, err := rt.run(m, r)
	if err != nil {
		log.Warn("mover script failed, bouncing instead", "entity", e, "script", m.Script, "err", err)
		rt.failed = true
		return 0, 0, false
	}
	return vx, vy, true
}

func (s *MoverSystem) cleanup(w *ecs.World) {
	for e := range s.scripts {
		if !w.IsAlive(e) || !ecs.Has(w, e, component.MoverComponent.Kind()) {
			delete(s.scripts, e)
		}
	}
}

// bounceMover reverses the mover on any axis where it has passed a boundary
// while still heading toward it.
func bounceMover(m *component.Mover, r common.Rect) {
	if m.BoundaryRight != nil && m.ChangeX > 0 && r.Right() > *m.BoundaryRight {
		m.ChangeX = -m.ChangeX
	} else if m.BoundaryLeft != nil && m.ChangeX < 0 && r.X < *m.BoundaryLeft {
		m.ChangeX = -m.ChangeX
	}

	if m.BoundaryBottom != nil && m.ChangeY > 0 && r.Bottom() > *m.BoundaryBottom {
		m.ChangeY = -m.ChangeY
	} else if m.BoundaryTop != nil && m.ChangeY < 0 && r.Y < *m.BoundaryTop {
		m.ChangeY = -m.ChangeY
	}
}
