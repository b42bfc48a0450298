package system

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/rakesh/ecs"
	"github.com/milk9111/rakesh/ecs/component"
)

// RenderSystem draws every sprite in render-layer order, offset by the
// camera.
type RenderSystem struct{}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}

	camX, camY := cameraOffset(w)

	entities := w.Query(component.TransformComponent.Kind(), component.SpriteComponent.Kind())
	layers := make(map[ecs.Entity]int, len(entities))
	for _, e := range entities {
		if layer, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
			layers[e] = layer.Index
		}
	}
	sort.SliceStable(entities, func(i, j int) bool {
		li, lj := layers[entities[i]], layers[entities[j]]
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	sw, sh := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	for _, e := range entities {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		s, _ := ecs.Get(w, e, component.SpriteComponent.Kind())
		if s.Image == nil || s.Hidden {
			continue
		}

		sx := t.ScaleX
		if sx == 0 {
			sx = 1
		}
		sy := t.ScaleY
		if sy == 0 {
			sy = 1
		}

		x, y := t.X-camX, t.Y-camY
		reach := (float64(s.Image.Bounds().Dx()) + float64(s.Image.Bounds().Dy())) * max(sx, sy)
		if x+reach < 0 || y+reach < 0 || x-reach > sw || y-reach > sh {
			continue
		}

		if s.FacingLeft {
			sx = -sx
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-s.OriginX, -s.OriginY)
		op.GeoM.Scale(sx, sy)
		op.GeoM.Rotate(t.Rotation)
		op.GeoM.Translate(x, y)
		screen.DrawImage(s.Image, op)
	}
}
