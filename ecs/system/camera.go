package system

import (
	"math"

	"github.com/milk9111/rakesh/common"
	"github.com/milk9111/rakesh/ecs"
	"github.com/milk9111/rakesh/ecs/component"
)

// CameraSystem scrolls the viewport so the player stays inside the margins.
type CameraSystem struct{}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return
	}
	cam, ok := ecs.Get(w, camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}
	_, rect, ok := playerRect(w)
	if !ok {
		return
	}

	levelW, levelH := 0.0, 0.0
	if _, progress, ok := levelProgress(w); ok {
		levelW, levelH = progress.Width, progress.Height
	}
	cam.X, cam.Y = scrollCamera(*cam, rect, levelW, levelH)

	if t, ok := ecs.Get(w, camEntity, component.TransformComponent.Kind()); ok {
		t.X, t.Y = cam.X, cam.Y
	}
}

// scrollCamera returns the new top-left of the viewport after pushing it
// toward any margin the player box crossed. The result is truncated to whole
// pixels and kept inside the level when the level size is known.
func scrollCamera(cam component.Camera, player common.Rect, levelW, levelH float64) (float64, float64) {
	x, y := cam.X, cam.Y

	if left := x + cam.MarginLeft; player.X < left {
		x -= left - player.X
	}
	if right := x + cam.Width - cam.MarginRight; player.Right() > right {
		x += player.Right() - right
	}
	if top := y + cam.MarginTop; player.Y < top {
		y -= top - player.Y
	}
	if bottom := y + cam.Height - cam.MarginBottom; player.Bottom() > bottom {
		y += player.Bottom() - bottom
	}

	x, y = math.Trunc(x), math.Trunc(y)
	if levelW > 0 {
		x = common.Clamp(x, 0, math.Max(0, levelW-cam.Width))
	}
	if levelH > 0 {
		y = common.Clamp(y, 0, math.Max(0, levelH-cam.Height))
	}
	return x, y
}

// cameraOffset is the world position of the viewport's top-left corner.
func cameraOffset(w *ecs.World) (float64, float64) {
	camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return 0, 0
	}
	cam, ok := ecs.Get(w, camEntity, component.CameraComponent.Kind())
	if !ok {
		return 0, 0
	}
	return cam.X, cam.Y
}
