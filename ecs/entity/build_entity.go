package entity

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/rakesh/assets"
	"github.com/milk9111/rakesh/common"
	"github.com/milk9111/rakesh/ecs"
	"github.com/milk9111/rakesh/ecs/component"
	"github.com/milk9111/rakesh/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":       addPlayerTag,
	"camera_tag":       addCameraTag,
	"sound_bank":       addSoundBank,
	"persistent":       addPersistent,
	"bullet":           addBullet,
	"player":           addPlayer,
	"input":            addInput,
	"player_collision": addPlayerCollision,
	"player_state":     addPlayerState,
	"transform":        addTransform,
	"sprite":           addSprite,
	"render_layer":     addRenderLayer,
	"animation":        addAnimation,
	"camera":           addCamera,
	"audio":            addAudio,
	"area":             addArea,
	"physics_body":     addPhysicsBody,
	"body_dynamics":    addBodyDynamics,
	"pending_force":    addPendingForce,
	"ttl":              addTTL,
}

// componentBuildOrder runs sprite before animation so frames take the sprite
// size, and transform before physics_body.
var componentBuildOrder = []string{
	"player_tag",
	"camera_tag",
	"sound_bank",
	"persistent",
	"bullet",
	"player",
	"input",
	"player_collision",
	"player_state",
	"transform",
	"sprite",
	"render_layer",
	"animation",
	"camera",
	"audio",
	"area",
	"physics_body",
	"body_dynamics",
	"pending_force",
	"ttl",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	build := func(name string) error {
		builder, ok := componentRegistry[name]
		if !ok {
			return fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
		if err := builder(w, e, remaining[name], ctx); err != nil {
			return fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
		return nil
	}

	for _, name := range componentBuildOrder {
		if _, ok := remaining[name]; !ok {
			continue
		}
		if err := build(name); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, err
		}
	}

	names := make([]string, 0, len(remaining))
	for name := range remaining {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := build(name); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, err
		}
	}

	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

func addSoundBank(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.SoundBankComponent.Kind(), &component.SoundBank{})
}

func addPersistent(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PersistentComponent.Kind(), &component.Persistent{})
}

func addBullet(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.BulletComponent.Kind(), &component.Bullet{})
}

func addPlayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PlayerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	return ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		MoveForce:      orDefault(spec.MoveForce, common.PlayerMoveForce),
		MoveForceAir:   orDefault(spec.MoveForceAir, common.PlayerMoveForceAir),
		LadderForce:    orDefault(spec.LadderForce, common.PlayerMoveForce),
		JumpImpulse:    orDefault(spec.JumpImpulse, common.PlayerJumpImpulse),
		MovingFriction: spec.MovingFriction,
		IdleFriction:   orDefault(spec.IdleFriction, common.PlayerFriction),
		Damping:        orDefault(spec.Damping, common.PlayerDamping),
		LadderDamping:  orDefault(spec.LadderDamping, common.PlayerLadderDamping),
		MaxSpeedX:      orDefault(spec.MaxSpeedX, common.PlayerMaxSpeedX),
		MaxSpeedY:      orDefault(spec.MaxSpeedY, common.PlayerMaxSpeedY),
		DeadZone:       orDefault(spec.DeadZone, common.DeadZone),
		StrideDistance: orDefault(spec.StrideDistance, common.StrideDistance),
	})
}

func orDefault(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return v
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addPlayerCollision(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerCollisionComponent.Kind(), &component.PlayerCollision{})
}

func addPlayerState(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerStateComponent.Kind(), &component.PlayerState{})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	})
}

func addSprite(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.SpriteComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}
	if spec.Width <= 0 {
		spec.Width = common.TileSize
	}
	if spec.Height <= 0 {
		spec.Height = common.TileSize
	}
	img, err := assets.Image(spec.Image, spec.Width, spec.Height)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Image:      img,
		OriginX:    spec.OriginX,
		OriginY:    spec.OriginY,
		FacingLeft: spec.FacingLeft,
	})
}

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.RenderLayerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

func addAnimation(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.AnimationComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode animation spec: %w", err)
	}
	if spec.Set != "player" {
		return fmt.Errorf("unknown animation set %q", spec.Set)
	}

	width, height := common.TileSize, common.TileSize
	if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok && sprite.Image != nil {
		width = sprite.Image.Bounds().Dx()
		height = sprite.Image.Bounds().Dy()
	}

	clips := make(map[component.Pose][]*ebiten.Image)
	for pose, keys := range assets.PlayerFrames() {
		for _, key := range keys {
			img, err := assets.Image(key, width, height)
			if err != nil {
				return err
			}
			clips[component.Pose(pose)] = append(clips[component.Pose(pose)], img)
		}
	}

	current := component.Pose(strings.TrimSpace(spec.Current))
	if current == "" {
		current = component.PoseIdle
	}
	if _, ok := clips[current]; !ok {
		return fmt.Errorf("animation set %q has no pose %q", spec.Set, current)
	}
	return ecs.Add(w, e, component.AnimationComponent.Kind(), &component.Animation{
		Clips:   clips,
		Current: current,
	})
}

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		Width:        common.BaseWidth,
		Height:       common.BaseHeight,
		MarginLeft:   orDefault(spec.MarginLeft, common.MarginLeft),
		MarginRight:  orDefault(spec.MarginRight, common.MarginRight),
		MarginTop:    orDefault(spec.MarginTop, common.MarginTop),
		MarginBottom: orDefault(spec.MarginBottom, common.MarginBottom),
	})
}

func addAudio(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.AudioComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode audio spec: %w", err)
	}
	if len(spec.Clips) == 0 {
		return nil
	}
	comp, err := buildAudioComponent(spec.Clips)
	if err != nil {
		return fmt.Errorf("build audio component from spec: %w", err)
	}
	return ecs.Add(w, e, component.AudioComponent.Kind(), comp)
}

func addArea(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.AreaComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode area spec: %w", err)
	}
	return ecs.Add(w, e, component.AreaComponent.Kind(), &component.Area{Width: spec.Width, Height: spec.Height})
}

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PhysicsBodyComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}
	kind, err := ParseBodyKind(spec.Kind)
	if err != nil {
		return err
	}
	category, err := ParseCategory(spec.Category)
	if err != nil {
		return err
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return fmt.Errorf("physics body needs a positive size, got %vx%v", spec.Width, spec.Height)
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:          kind,
		Category:      category,
		Width:         spec.Width,
		Height:        spec.Height,
		Mass:          spec.Mass,
		Friction:      spec.Friction,
		Elasticity:    spec.Elasticity,
		FixedRotation: spec.FixedRotation,
	})
}

func addBodyDynamics(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.BodyDynamicsComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode body dynamics spec: %w", err)
	}
	dyn := &component.BodyDynamics{
		MaxSpeedX: spec.MaxSpeedX,
		MaxSpeedY: spec.MaxSpeedY,
	}
	if spec.GravityX != nil || spec.GravityY != nil {
		dyn.OverrideGravity = true
		if spec.GravityX != nil {
			dyn.GravityX = *spec.GravityX
		}
		if spec.GravityY != nil {
			dyn.GravityY = *spec.GravityY
		}
	}
	if spec.Damping != nil {
		dyn.OverrideDamping = true
		dyn.Damping = *spec.Damping
	}
	return ecs.Add(w, e, component.BodyDynamicsComponent.Kind(), dyn)
}

func addPendingForce(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PendingForceComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode pending force spec: %w", err)
	}
	return ecs.Add(w, e, component.PendingForceComponent.Kind(), &component.PendingForce{
		X:     spec.X,
		Y:     spec.Y,
		Local: spec.Local,
	})
}

func addTTL(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TTLComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode ttl spec: %w", err)
	}
	return ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Frames: spec.Frames})
}

func ParseBodyKind(s string) (component.BodyKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dynamic":
		return component.BodyDynamic, nil
	case "static":
		return component.BodyStatic, nil
	case "kinematic":
		return component.BodyKinematic, nil
	}
	return 0, fmt.Errorf("unknown body kind %q", s)
}

func ParseCategory(s string) (component.Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return component.CategoryDefault, nil
	case "wall":
		return component.CategoryWall, nil
	case "item":
		return component.CategoryItem, nil
	case "platform":
		return component.CategoryPlatform, nil
	case "player":
		return component.CategoryPlayer, nil
	case "bullet":
		return component.CategoryBullet, nil
	}
	return 0, fmt.Errorf("unknown collision category %q", s)
}
