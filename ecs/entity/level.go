package entity

import (
	"fmt"
	"math"

	"github.com/milk9111/rakesh/assets"
	"github.com/milk9111/rakesh/common"
	"github.com/milk9111/rakesh/ecs"
	"github.com/milk9111/rakesh/ecs/component"
	"github.com/milk9111/rakesh/levels"
	"github.com/milk9111/rakesh/prefabs"
)

// LoadLevelToWorld builds the tiles, triggers, movers, player and camera of
// lvl. index is the 1-based level number used for progression.
func LoadLevelToWorld(world *ecs.World, lvl *levels.Level, index int) error {
	if world == nil || lvl == nil {
		return fmt.Errorf("load level: nil world or level")
	}
	tiles, err := prefabs.LoadTilesSpec()
	if err != nil {
		return fmt.Errorf("load level: tiles spec: %w", err)
	}

	if lvl.TileSize <= 0 {
		return fmt.Errorf("load level %s: tile size %d, level was not expanded", lvl.Name, lvl.TileSize)
	}
	tileSize := float64(lvl.TileSize)
	levelW, levelH := lvl.PixelSize()

	for _, layer := range lvl.Layers {
		spec := tiles.Tiles[string(layer.Kind)]
		key := "tile/" + string(layer.Kind)
		if layer.Kind.Paired() {
			key = fmt.Sprintf("tile/%s%d", layer.Kind, layer.Pair)
		}
		img, err := assets.Image(key, int(tileSize), int(tileSize))
		if err != nil {
			return fmt.Errorf("load level %s: layer %s: %w", lvl.Name, layer.Name, err)
		}

		for _, cell := range layer.Cells(lvl.Width) {
			cx := (float64(cell.Col) + 0.5) * tileSize
			cy := (float64(cell.Row) + 0.5) * tileSize

			e := world.CreateEntity()
			if err := addTile(world, e, cx, cy, spec.RenderLayer); err != nil {
				return err
			}
			if err := ecs.Add(world, e, component.SpriteComponent.Kind(), &component.Sprite{
				Image:   img,
				OriginX: tileSize / 2,
				OriginY: tileSize / 2,
			}); err != nil {
				return err
			}
			if lvl.Decorative {
				continue
			}
			if err := addTileBehaviour(world, e, layer, spec, tileSize); err != nil {
				return fmt.Errorf("load level %s: %s at %d,%d: %w", lvl.Name, layer.Name, cell.Col, cell.Row, err)
			}
		}

		if !lvl.Decorative && spec.Solid && !spec.Dynamic && layer.Kind != levels.KindLock {
			if err := addMergedTileColliders(world, layer.Tiles, lvl.Width, lvl.Height, tileSize, spec); err != nil {
				return err
			}
		}
	}

	if lvl.Decorative {
		return nil
	}

	movers, err := prefabs.LoadMoversSpec()
	if err != nil {
		return fmt.Errorf("load level: movers spec: %w", err)
	}
	for _, ent := range lvl.Entities {
		switch ent.Type {
		case levels.EntityPlayer:
			x := (ent.X + 0.5) * tileSize
			y := (ent.Y + 0.5) * tileSize
			if _, err := NewPlayerAt(world, x, y); err != nil {
				return err
			}
		case levels.EntityMovingPlatform:
			if _, err := newMover(world, ent, tileSize, movers.MovingPlatform, false); err != nil {
				return err
			}
		case levels.EntityMovingSpikes:
			if _, err := newMover(world, ent, tileSize, movers.MovingSpikes, true); err != nil {
				return err
			}
		}
	}

	camY := math.Max(0, levelH-common.BaseHeight)
	if _, err := NewCameraAt(world, 0, camY); err != nil {
		return err
	}

	progress := world.CreateEntity()
	return ecs.Add(world, progress, component.LevelProgressComponent.Kind(), &component.LevelProgress{
		Index:          index,
		Name:           lvl.Name,
		StarsRemaining: lvl.Count(levels.KindStars),
		Width:          levelW,
		Height:         levelH,
		LastLevel:      index >= levels.Count(),
	})
}

func addTile(world *ecs.World, e ecs.Entity, cx, cy float64, layer int) error {
	if err := ecs.Add(world, e, component.TransformComponent.Kind(), &component.Transform{
		X:      cx,
		Y:      cy,
		ScaleX: 1,
		ScaleY: 1,
	}); err != nil {
		return err
	}
	return ecs.Add(world, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: layer})
}

// addTileBehaviour attaches the gameplay components of one tile.
func addTileBehaviour(world *ecs.World, e ecs.Entity, layer levels.Layer, spec prefabs.TileSpec, size float64) error {
	inset := math.Max(0, math.Min(spec.Inset, size/2-1))
	trigger := &component.Area{Width: size - 2*inset, Height: size - 2*inset}
	full := &component.Area{Width: size, Height: size}

	switch layer.Kind {
	case levels.KindCoins, levels.KindStars:
		kind := component.PickupCoin
		if layer.Kind == levels.KindStars {
			kind = component.PickupStar
		}
		if err := ecs.Add(world, e, component.PickupComponent.Kind(), &component.Pickup{Kind: kind, Sound: spec.Sound}); err != nil {
			return err
		}
		return ecs.Add(world, e, component.AreaComponent.Kind(), trigger)
	case levels.KindSpikes, levels.KindBombs, levels.KindLava:
		if err := ecs.Add(world, e, component.HazardComponent.Kind(), &component.Hazard{Sound: spec.Sound}); err != nil {
			return err
		}
		return ecs.Add(world, e, component.AreaComponent.Kind(), trigger)
	case levels.KindKey:
		if err := ecs.Add(world, e, component.KeyComponent.Kind(), &component.Key{Pair: layer.Pair}); err != nil {
			return err
		}
		return ecs.Add(world, e, component.AreaComponent.Kind(), full)
	case levels.KindLock:
		if err := ecs.Add(world, e, component.LockComponent.Kind(), &component.Lock{Pair: layer.Pair}); err != nil {
			return err
		}
		if err := ecs.Add(world, e, component.AreaComponent.Kind(), full); err != nil {
			return err
		}
		return ecs.Add(world, e, component.PhysicsBodyComponent.Kind(), tileBody(spec, size, component.BodyStatic))
	case levels.KindExit, levels.KindPrize:
		if err := ecs.Add(world, e, component.ExitComponent.Kind(), &component.Exit{Prize: layer.Kind == levels.KindPrize}); err != nil {
			return err
		}
		return ecs.Add(world, e, component.AreaComponent.Kind(), full)
	case levels.KindLadders:
		if err := ecs.Add(world, e, component.LadderComponent.Kind(), &component.Ladder{}); err != nil {
			return err
		}
		return ecs.Add(world, e, component.AreaComponent.Kind(), full)
	}

	if spec.Dynamic {
		return ecs.Add(world, e, component.PhysicsBodyComponent.Kind(), tileBody(spec, size, component.BodyDynamic))
	}
	return nil
}

func tileBody(spec prefabs.TileSpec, size float64, kind component.BodyKind) *component.PhysicsBody {
	category, err := ParseCategory(spec.Category)
	if err != nil {
		category = component.CategoryDefault
	}
	mass := spec.Mass
	if mass <= 0 {
		mass = 1
	}
	return &component.PhysicsBody{
		Kind:       kind,
		Category:   category,
		Width:      size,
		Height:     size,
		Mass:       mass,
		Friction:   spec.Friction,
		Elasticity: spec.Elasticity,
	}
}

// addMergedTileColliders covers the filled cells of a solid layer with as few
// static boxes as a greedy row-then-column sweep finds.
func addMergedTileColliders(world *ecs.World, layer []int, width, height int, tileSize float64, spec prefabs.TileSpec) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	visited := make([]bool, width*height)
	index := func(x, y int) int { return y*width + x }
	filled := func(x, y int) bool {
		idx := index(x, y)
		return idx < len(layer) && !visited[idx] && layer[idx] > 0
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !filled(x, y) {
				continue
			}

			maxW := 0
			for x2 := x; x2 < width && filled(x2, y); x2++ {
				maxW++
			}

			maxH := 1
			for y2 := y + 1; y2 < height; y2++ {
				rowOK := true
				for x2 := x; x2 < x+maxW; x2++ {
					if !filled(x2, y2) {
						rowOK = false
						break
					}
				}
				if !rowOK {
					break
				}
				maxH++
			}

			for yy := y; yy < y+maxH; yy++ {
				for xx := x; xx < x+maxW; xx++ {
					visited[index(xx, yy)] = true
				}
			}

			w := float64(maxW) * tileSize
			h := float64(maxH) * tileSize
			e := world.CreateEntity()
			if err := ecs.Add(world, e, component.TransformComponent.Kind(), &component.Transform{
				X:      float64(x)*tileSize + w/2,
				Y:      float64(y)*tileSize + h/2,
				ScaleX: 1,
				ScaleY: 1,
			}); err != nil {
				return err
			}
			body := tileBody(spec, tileSize, component.BodyStatic)
			body.Width = w
			body.Height = h
			if err := ecs.Add(world, e, component.PhysicsBodyComponent.Kind(), body); err != nil {
				return err
			}
		}
	}

	return nil
}

// newMover places a moving platform or moving spikes. Platforms get a
// kinematic body; spikes are a hazard area moved through their transform.
func newMover(world *ecs.World, ent levels.Entity, tileSize float64, spec prefabs.MoverSpec, spikes bool) (ecs.Entity, error) {
	w := ent.FloatOr("w", 1) * tileSize
	h := ent.FloatOr("h", 1) * tileSize
	if w <= 0 || h <= 0 {
		return 0, fmt.Errorf("mover at %v,%v: bad size %vx%v", ent.X, ent.Y, w, h)
	}

	mover := &component.Mover{
		ChangeX: ent.FloatOr("change_x", 0),
		ChangeY: ent.FloatOr("change_y", 0),
		Script:  ent.Text("script"),
	}
	bound := func(name string) *float64 {
		v, ok := ent.Float(name)
		if !ok {
			return nil
		}
		px := v * tileSize
		return &px
	}
	mover.BoundaryLeft = bound("boundary_left")
	mover.BoundaryRight = bound("boundary_right")
	mover.BoundaryTop = bound("boundary_top")
	mover.BoundaryBottom = bound("boundary_bottom")

	key := "mover/platform"
	if spikes {
		key = "mover/spikes"
	}
	img, err := assets.Image(key, int(w), int(h))
	if err != nil {
		return 0, err
	}

	e := world.CreateEntity()
	if err := addTile(world, e, ent.X*tileSize+w/2, ent.Y*tileSize+h/2, spec.RenderLayer); err != nil {
		return 0, err
	}
	if err := ecs.Add(world, e, component.SpriteComponent.Kind(), &component.Sprite{Image: img, OriginX: w / 2, OriginY: h / 2}); err != nil {
		return 0, err
	}
	if err := ecs.Add(world, e, component.MoverComponent.Kind(), mover); err != nil {
		return 0, err
	}

	if spikes {
		if err := ecs.Add(world, e, component.HazardComponent.Kind(), &component.Hazard{Sound: spec.Sound}); err != nil {
			return 0, err
		}
		return e, ecs.Add(world, e, component.AreaComponent.Kind(), &component.Area{Width: w, Height: h})
	}

	return e, ecs.Add(world, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:     component.BodyKinematic,
		Category: component.CategoryPlatform,
		Width:    w,
		Height:   h,
		Friction: spec.Friction,
	})
}
