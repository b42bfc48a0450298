package component

import "github.com/hajimehoshi/ebiten/v2"

type Sprite struct {
	Image      *ebiten.Image
	OriginX    float64
	OriginY    float64
	FacingLeft bool
	Hidden     bool
}

var SpriteComponent = NewComponent[Sprite]()

// RenderLayer sorts draw order; lower indices draw first.
type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[RenderLayer]()
