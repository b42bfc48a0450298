package system

import (
	"testing"

	"github.com/milk9111/rakesh/ecs"
	"github.com/milk9111/rakesh/ecs/component"
)

type fakeInput struct {
	state InputState
}

func (f fakeInput) Poll() InputState { return f.state }

func TestInputAimIsInWorldSpace(t *testing.T) {
	w := ecs.NewWorld()
	player := addTestPlayer(t, w, 0, 0)
	cam := w.CreateEntity()
	mustAdd(t, w, cam, component.CameraComponent.Kind(), &component.Camera{X: 640, Y: 128})

	NewInputSystem(fakeInput{state: InputState{Right: true, Fire: true, CursorX: 100, CursorY: 50}}).Update(w)

	in, _ := ecs.Get(w, player, component.InputComponent.Kind())
	if !in.Right || in.Left || !in.Fire {
		t.Fatalf("buttons not copied: %+v", *in)
	}
	if in.AimX != 740 || in.AimY != 178 {
		t.Fatalf("aim = (%v, %v), want (740, 178)", in.AimX, in.AimY)
	}
}
