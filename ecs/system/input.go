package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/rakesh/ecs"
	"github.com/milk9111/rakesh/ecs/component"
)

// InputState is one frame of raw input. CursorX and CursorY are in screen
// pixels.
type InputState struct {
	Left        bool
	Right       bool
	Up          bool
	Down        bool
	JumpPressed bool
	Fire        bool
	CursorX     float64
	CursorY     float64
}

type InputSource interface {
	Poll() InputState
}

// KeyboardMouse reads arrow keys or WASD and the left mouse button.
type KeyboardMouse struct{}

func (KeyboardMouse) Poll() InputState {
	cx, cy := ebiten.CursorPosition()
	return InputState{
		Left:  ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right: ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Up:    ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Down:  ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		JumpPressed: inpututil.IsKeyJustPressed(ebiten.KeyW) ||
			inpututil.IsKeyJustPressed(ebiten.KeyArrowUp),
		Fire:    inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		CursorX: float64(cx),
		CursorY: float64(cy),
	}
}

type InputSystem struct {
	source InputSource
}

func NewInputSystem(source InputSource) *InputSystem {
	if source == nil {
		source = KeyboardMouse{}
	}
	return &InputSystem{source: source}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	state := i.source.Poll()

	// The cursor is aimed in world space, so add the scrolled viewport.
	camX, camY := cameraOffset(w)

	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		input.Left = state.Left
		input.Right = state.Right
		input.Up = state.Up
		input.Down = state.Down
		input.JumpPressed = state.JumpPressed
		input.Fire = state.Fire
		input.AimX = state.CursorX + camX
		input.AimY = state.CursorY + camY
	})
}
