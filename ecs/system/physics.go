package system

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rakesh/common"
	"github.com/milk9111/rakesh/ecs"
	"github.com/milk9111/rakesh/ecs/component"
	"github.com/milk9111/rakesh/prefabs"
)

const (
	collisionTypeDefault cp.CollisionType = iota + 1
	collisionTypeWall
	collisionTypeItem
	collisionTypePlatform
	collisionTypePlayer
	collisionTypePlayerGround
	collisionTypeBullet
)

func collisionTypeFor(c component.Category) cp.CollisionType {
	switch c {
	case component.CategoryWall:
		return collisionTypeWall
	case component.CategoryItem:
		return collisionTypeItem
	case component.CategoryPlatform:
		return collisionTypePlatform
	case component.CategoryPlayer:
		return collisionTypePlayer
	case component.CategoryBullet:
		return collisionTypeBullet
	}
	return collisionTypeDefault
}

type PhysicsSystem struct {
	// SpecSource, when set, is re-read on every Reset so edits to the world
	// spec apply on the next level load.
	SpecSource func() (prefabs.WorldSpec, error)

	spec          prefabs.WorldSpec
	space         *cp.Space
	handlersReady bool

	// world is the world being stepped; velocity callbacks read it.
	world *ecs.World

	entities     map[ecs.Entity]*bodyInfo
	shapeOwners  map[*cp.Shape]ecs.Entity
	groundShapes map[*cp.Shape]ecs.Entity
	grounded     map[ecs.Entity]bool
	doomed       map[ecs.Entity]struct{}
}

type bodyInfo struct {
	body        *cp.Body
	mainShape   *cp.Shape
	groundShape *cp.Shape
	shapes      []*cp.Shape
	static      bool
}

func NewPhysicsSystem(spec prefabs.WorldSpec) *PhysicsSystem {
	ps := &PhysicsSystem{spec: spec}
	ps.Reset()
	return ps
}

// Reset drops every body and starts an empty space. The level flow calls it
// before rebuilding a level.
func (ps *PhysicsSystem) Reset() {
	if ps.SpecSource != nil {
		if spec, err := ps.SpecSource(); err != nil {
			log.Warn("world spec reload failed, keeping previous", "err", err)
		} else {
			ps.spec = spec
		}
	}

	space := cp.NewSpace()
	space.Iterations = uint(ps.spec.Iterations)
	space.SetGravity(cp.Vector{X: 0, Y: ps.spec.Gravity})
	space.SetDamping(ps.spec.Damping)

	ps.space = space
	ps.handlersReady = false
	ps.entities = make(map[ecs.Entity]*bodyInfo)
	ps.shapeOwners = make(map[*cp.Shape]ecs.Entity)
	ps.groundShapes = make(map[*cp.Shape]ecs.Entity)
	ps.grounded = make(map[ecs.Entity]bool)
	ps.doomed = make(map[ecs.Entity]struct{})
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	ps.world = w

	ps.ensureHandlers()
	ps.syncEntities(w)
	ps.applyPendingForces(w)

	before := make(map[ecs.Entity]cp.Vector)
	for e := range ps.grounded {
		delete(ps.grounded, e)
	}
	ecs.ForEach(w, component.PlayerCollisionComponent.Kind(), func(e ecs.Entity, _ *component.PlayerCollision) {
		if info := ps.entities[e]; info != nil && info.body != nil {
			before[e] = info.body.Position()
		}
	})

	ps.space.Step(common.FixedStep)

	ps.removeDoomed(w)
	ps.syncTransforms(w)

	ecs.ForEach(w, component.PlayerCollisionComponent.Kind(), func(e ecs.Entity, pc *component.PlayerCollision) {
		pc.Grounded = ps.grounded[e]
		pc.DX, pc.DY = 0, 0
		info := ps.entities[e]
		start, ok := before[e]
		if info == nil || info.body == nil || !ok {
			return
		}
		pos := info.body.Position()
		pc.DX = pos.X - start.X
		pc.DY = pos.Y - start.Y
	})
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}

	for _, other := range []cp.CollisionType{collisionTypeWall, collisionTypeItem, collisionTypePlatform, collisionTypeDefault} {
		groundHandler := ps.space.NewCollisionHandler(collisionTypePlayerGround, other)
		groundHandler.UserData = ps
		groundHandler.PreSolveFunc = groundPreSolve
	}

	wallHandler := ps.space.NewCollisionHandler(collisionTypeBullet, collisionTypeWall)
	wallHandler.UserData = ps
	wallHandler.PostSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		sys, ok := userData.(*PhysicsSystem)
		if !ok {
			return
		}
		a, b := arb.Shapes()
		sys.doomShape(a, true)
		sys.doomShape(b, true)
	}

	itemHandler := ps.space.NewCollisionHandler(collisionTypeBullet, collisionTypeItem)
	itemHandler.UserData = ps
	itemHandler.PostSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		sys, ok := userData.(*PhysicsSystem)
		if !ok {
			return
		}
		a, b := arb.Shapes()
		sys.doomShape(a, false)
		sys.doomShape(b, false)
	}

	// Bullets leave from inside the player's reach and must not shove them.
	playerHandler := ps.space.NewCollisionHandler(collisionTypeBullet, collisionTypePlayer)
	playerHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		return false
	}

	ps.handlersReady = true
}

func groundPreSolve(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
	sys, ok := userData.(*PhysicsSystem)
	if !ok || sys == nil {
		return true
	}
	shapeA, shapeB := arb.Shapes()
	player, okA := sys.groundShapes[shapeA]
	if !okA {
		var okB bool
		player, okB = sys.groundShapes[shapeB]
		if !okB {
			return true
		}
	}

	n := arb.Normal()
	if !okA {
		n = n.Neg()
	}
	// Ground lies below the sensor, which is +Y in screen coordinates.
	if n.Y > 0.5 {
		sys.grounded[player] = true
	}
	return true
}

// doomShape marks the owner of shape for removal after the step. With
// bulletsOnly set, non-bullet owners are left alone.
func (ps *PhysicsSystem) doomShape(shape *cp.Shape, bulletsOnly bool) {
	e, ok := ps.shapeOwners[shape]
	if !ok {
		return
	}
	if bulletsOnly && !ecs.Has(ps.world, e, component.BulletComponent.Kind()) {
		return
	}
	ps.doomed[e] = struct{}{}
}

func (ps *PhysicsSystem) removeDoomed(w *ecs.World) {
	for e := range ps.doomed {
		ps.removeBody(e)
		w.DestroyEntity(e)
		delete(ps.doomed, e)
	}
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if info := ps.entities[e]; info != nil {
			bodyComp.Body = info.body
			bodyComp.Shape = info.mainShape
			return
		}

		isPlayer := ecs.Has(w, e, component.PlayerTagComponent.Kind())
		info := ps.createBodyInfo(e, transform, bodyComp, isPlayer)
		if info == nil {
			return
		}
		ps.entities[e] = info
		for _, shape := range info.shapes {
			ps.shapeOwners[shape] = e
		}
		if info.groundShape != nil {
			ps.groundShapes[info.groundShape] = e
		}
		bodyComp.Body = info.body
		bodyComp.Shape = info.mainShape
	})
}

func (ps *PhysicsSystem) createBodyInfo(e ecs.Entity, transform *component.Transform, bodyComp *component.PhysicsBody, isPlayer bool) *bodyInfo {
	width, height := bodyComp.Width, bodyComp.Height
	if width <= 0 || height <= 0 {
		return nil
	}
	ctype := collisionTypeFor(bodyComp.Category)
	if isPlayer {
		ctype = collisionTypePlayer
	}

	info := &bodyInfo{}
	var body *cp.Body
	switch bodyComp.Kind {
	case component.BodyStatic:
		bb := cp.BB{
			L: transform.X - width/2,
			B: transform.Y - height/2,
			R: transform.X + width/2,
			T: transform.Y + height/2,
		}
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetFriction(bodyComp.Friction)
		shape.SetElasticity(bodyComp.Elasticity)
		shape.SetCollisionType(ctype)
		ps.space.AddShape(shape)

		info.static = true
		info.body = ps.space.StaticBody
		info.mainShape = shape
		info.shapes = []*cp.Shape{shape}
		return info
	case component.BodyKinematic:
		body = cp.NewKinematicBody()
	default:
		mass := bodyComp.Mass
		if mass <= 0 {
			mass = 1
		}
		moment := cp.MomentForBox(mass, width, height)
		if bodyComp.FixedRotation {
			moment = math.Inf(1)
		}
		body = cp.NewBody(mass, moment)
		body.SetVelocityUpdateFunc(ps.velocityFunc(e))
	}

	body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
	body.SetAngle(transform.Rotation)

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetCollisionType(ctype)

	ps.space.AddBody(body)
	ps.space.AddShape(shape)

	info.body = body
	info.mainShape = shape
	info.shapes = []*cp.Shape{shape}

	if isPlayer {
		groundShape := createGroundSensor(bodyComp, body)
		ps.space.AddShape(groundShape)
		info.groundShape = groundShape
		info.shapes = append(info.shapes, groundShape)
	}

	return info
}

// createGroundSensor adds a thin sensor under the collider; any solid contact
// it makes from above counts as standing on ground.
func createGroundSensor(bodyComp *component.PhysicsBody, body *cp.Body) *cp.Shape {
	groundBB := cp.BB{
		L: -bodyComp.Width * 0.45,
		B: bodyComp.Height / 2.0,
		R: bodyComp.Width * 0.45,
		T: bodyComp.Height/2.0 + 2,
	}
	groundShape := cp.NewBox2(body, groundBB, 0)
	groundShape.SetSensor(true)
	groundShape.SetCollisionType(collisionTypePlayerGround)
	return groundShape
}

// velocityFunc integrates one body with its BodyDynamics overrides and then
// caps its speed on each axis.
func (ps *PhysicsSystem) velocityFunc(e ecs.Entity) func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
	return func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
		dyn, ok := ecs.Get(ps.world, e, component.BodyDynamicsComponent.Kind())
		if !ok {
			cp.BodyUpdateVelocity(body, gravity, damping, dt)
			return
		}
		if dyn.OverrideGravity {
			gravity = cp.Vector{X: dyn.GravityX, Y: dyn.GravityY}
		}
		if dyn.OverrideDamping {
			damping = math.Pow(dyn.Damping, dt)
		}
		cp.BodyUpdateVelocity(body, gravity, damping, dt)

		v := body.Velocity()
		if dyn.MaxSpeedX > 0 {
			v.X = common.Clamp(v.X, -dyn.MaxSpeedX, dyn.MaxSpeedX)
		}
		if dyn.MaxSpeedY > 0 {
			v.Y = common.Clamp(v.Y, -dyn.MaxSpeedY, dyn.MaxSpeedY)
		}
		body.SetVelocityVector(v)
	}
}

func (ps *PhysicsSystem) applyPendingForces(w *ecs.World) {
	ecs.ForEach2(w, component.PendingForceComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, f *component.PendingForce, bodyComp *component.PhysicsBody) {
		if bodyComp.Body == nil || bodyComp.Kind != component.BodyDynamic {
			return
		}
		force := cp.Vector{X: f.X, Y: f.Y}
		if f.Local {
			bodyComp.Body.ApplyForceAtLocalPoint(force, cp.Vector{})
		} else {
			bodyComp.Body.ApplyForceAtWorldPoint(force, bodyComp.Body.Position())
		}
		ecs.Remove(w, e, component.PendingForceComponent.Kind())
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if bodyComp.Body == nil || bodyComp.Kind == component.BodyStatic {
			return
		}
		pos := bodyComp.Body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
		transform.Rotation = bodyComp.Body.Angle()
	})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		ps.removeBody(e)
	}
}

func (ps *PhysicsSystem) removeBody(e ecs.Entity) {
	info := ps.entities[e]
	if info == nil {
		return
	}
	for _, shape := range info.shapes {
		ps.space.RemoveShape(shape)
		delete(ps.shapeOwners, shape)
		delete(ps.groundShapes, shape)
	}
	if info.body != nil && !info.static {
		ps.space.RemoveBody(info.body)
	}
	delete(ps.entities, e)
	delete(ps.grounded, e)
}
