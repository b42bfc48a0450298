package component

import "github.com/jakecoffman/cp"

type BodyKind int

const (
	BodyDynamic BodyKind = iota
	BodyStatic
	BodyKinematic
)

// Category selects the collision handlers that apply to a shape.
type Category int

const (
	CategoryDefault Category = iota
	CategoryWall
	CategoryItem
	CategoryPlatform
	CategoryPlayer
	CategoryBullet
)

// PhysicsBody is the collider configuration plus the Chipmunk objects the
// physics system creates for it.
type PhysicsBody struct {
	Body          *cp.Body
	Shape         *cp.Shape
	Kind          BodyKind
	Category      Category
	Width         float64
	Height        float64
	Mass          float64
	Friction      float64
	Elasticity    float64
	FixedRotation bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// BodyDynamics overrides the space-wide gravity and damping for one body and
// caps its velocity. Zero max speeds mean unlimited.
type BodyDynamics struct {
	OverrideGravity bool
	GravityX        float64
	GravityY        float64
	OverrideDamping bool
	Damping         float64
	MaxSpeedX       float64
	MaxSpeedY       float64
}

var BodyDynamicsComponent = NewComponent[BodyDynamics]()

// PendingForce is applied for exactly one physics step, then removed.
type PendingForce struct {
	X     float64
	Y     float64
	Local bool
}

var PendingForceComponent = NewComponent[PendingForce]()
