package system

import (
	"testing"

	"github.com/milk9111/rakesh/common"
	"github.com/milk9111/rakesh/ecs"
	"github.com/milk9111/rakesh/ecs/component"
)

func testCamera(x, y float64) component.Camera {
	return component.Camera{
		X: x, Y: y,
		Width: 800, Height: 600,
		MarginLeft: 200, MarginRight: 200, MarginTop: 100, MarginBottom: 150,
	}
}

func TestScrollCamera(t *testing.T) {
	cases := []struct {
		name           string
		cam            component.Camera
		player         common.Rect
		levelW, levelH float64
		wantX, wantY   float64
	}{
		{"inside margins", testCamera(0, 0), common.Rect{X: 300, Y: 200, W: 40, H: 60}, 0, 0, 0, 0},
		{"past right margin", testCamera(0, 0), common.Rect{X: 620, Y: 200, W: 40, H: 60}, 0, 0, 60, 0},
		{"past left margin", testCamera(500, 0), common.Rect{X: 650, Y: 200, W: 40, H: 60}, 0, 0, 450, 0},
		{"past bottom margin", testCamera(0, 0), common.Rect{X: 300, Y: 420, W: 40, H: 60}, 0, 0, 0, 30},
		{"past top margin", testCamera(0, 400), common.Rect{X: 300, Y: 450, W: 40, H: 60}, 0, 0, 0, 350},
		{"truncates", testCamera(0, 0), common.Rect{X: 620.7, Y: 200, W: 40, H: 60}, 0, 0, 60, 0},
		{"clamped at level left", testCamera(0, 0), common.Rect{X: 10, Y: 200, W: 40, H: 60}, 2000, 1000, 0, 0},
		{"clamped at level right", testCamera(1190, 0), common.Rect{X: 1980, Y: 200, W: 20, H: 60}, 2000, 1000, 1200, 0},
		{"clamped at level bottom", testCamera(0, 380), common.Rect{X: 300, Y: 940, W: 40, H: 60}, 2000, 1000, 0, 400},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			x, y := scrollCamera(c.cam, c.player, c.levelW, c.levelH)
			if x != c.wantX || y != c.wantY {
				t.Fatalf("scrollCamera = (%v, %v), want (%v, %v)", x, y, c.wantX, c.wantY)
			}
		})
	}
}

func TestCameraSystemFollowsPlayer(t *testing.T) {
	w := ecs.NewWorld()
	addTestPlayer(t, w, 1000, 300)
	addTestProgress(t, w, component.LevelProgress{Width: 3000, Height: 600})

	cam := w.CreateEntity()
	c := testCamera(0, 0)
	mustAdd(t, w, cam, component.CameraComponent.Kind(), &c)
	mustAdd(t, w, cam, component.TransformComponent.Kind(), &component.Transform{})

	NewCameraSystem().Update(w)

	got, _ := ecs.Get(w, cam, component.CameraComponent.Kind())
	// Player right edge 1020 against boundary 600.
	if got.X != 420 || got.Y != 0 {
		t.Fatalf("camera = (%v, %v), want (420, 0)", got.X, got.Y)
	}
	tr, _ := ecs.Get(w, cam, component.TransformComponent.Kind())
	if tr.X != got.X || tr.Y != got.Y {
		t.Fatalf("transform not synced: (%v, %v)", tr.X, tr.Y)
	}
}
