package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// Player holds the tunables the controller and ladder logic read each frame.
type Player struct {
	MoveForce      float64
	MoveForceAir   float64
	LadderForce    float64
	JumpImpulse    float64
	MovingFriction float64
	IdleFriction   float64
	Damping        float64
	LadderDamping  float64
	MaxSpeedX      float64
	MaxSpeedY      float64
	DeadZone       float64
	StrideDistance float64
}

var PlayerComponent = NewComponent[Player]()

// PlayerCollision is rewritten by the physics system after every step.
type PlayerCollision struct {
	Grounded bool
	// DX and DY are the displacement over the last step.
	DX float64
	DY float64
}

var PlayerCollisionComponent = NewComponent[PlayerCollision]()

type PlayerState struct {
	OnLadder   bool
	FacingLeft bool
	OdometerX  float64
	OdometerY  float64
}

var PlayerStateComponent = NewComponent[PlayerState]()
